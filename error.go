package landcover

import "errors"

var (
	ErrGdalDriverCreate = errors.New("gdal driver create err")
	ErrGdalDriverOpen   = errors.New("gdal driver open err")
	ErrVoidSrid         = errors.New("void srid")
	ErrInvalidWKT       = errors.New("invalid WKT")
	ErrGdalWrongGeoJSON = errors.New("gdal wrong GeoJSON")
	ErrInvalidTif       = errors.New("invalid tif")
	ErrWrongTif         = errors.New("malformed tif")
	ErrTifReadFailed    = errors.New("tif read failed")

	// 色彩码表错误（重名、缺失映射、非法颜色），构造时校验
	ErrBadCodebook = errors.New("bad color codebook")
	// 栅格化输入为空
	ErrEmptyInput = errors.New("empty geometry input")
	// 依据范围和分辨率计算出的栅格宽高非法
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
)
