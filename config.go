package landcover

const (
	FILE_EXT_SHP  = ".shp"
	FILE_EXT_TIF  = ".tif"
	FILE_EXT_JSON = ".json"

	SHAPE_ENCODING  = "UTF-8"
	SHP_DRIVER_NAME = "ESRI Shapefile"
	ENCODING_OPTION = "ENCODING=" + SHAPE_ENCODING
	GTIFF_LZW       = "COMPRESS=LZW"

	UNIVERSAL_SRID = 4326
	GEOJSON_SRID   = 4326
	// 默认工作坐标系为Lambert-93（法国本土投影）
	WORKING_SRID = 2154

	SHP_FIELD_CLASS = "classe"
	SHP_FIELD_TYPE  = "type"

	// 栅格化默认参数
	DEFAULT_BURN_COLUMN = SHP_FIELD_TYPE
	DEFAULT_RESOLUTION  = 1.0

	// 0为保留背景值，不属于任何分类
	BACKGROUND_CODE = 0

	// 流水线默认输出文件名
	OUT_SHP_NAME = "cosia_landcover" + FILE_EXT_SHP
	OUT_TIF_NAME = "landcover" + FILE_EXT_TIF

	META_KEY_DESCRIPTION = "description"
	META_KEY_RESOLUTION  = "resolution"
	META_KEY_CLASSES     = "classes"
	RASTER_DESCRIPTION   = "COSIA Land Cover Classification (UMEP format)"

	ErrColumnMissingTemplate = `shp文件中缺失【%s】字段`
	ErrColumnEmptyTemplate   = `shp文件图斑中【%s】字段为空`

	SQ_METERS_PER_HA = 10000.0

	TMP_GEOJSON = "geo_%s.json"
)
