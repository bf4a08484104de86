package landcover

import (
	"fmt"

	"github.com/wgdzlh/landcover/log"
	"github.com/wgdzlh/landcover/utils"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 获取shp的srid
func (g *Toolbox) GetSridOfShapefile(shp string) (srid int, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	return g.getSrid(layer.SpatialReference())
}

func (g *Toolbox) getShpDriver(shp string, srid int) (ds gdal.DataSource, ref gdal.SpatialReference, layer gdal.Layer, err error) {
	log.Info(g.logTag+"output shp files", zap.String("shp", shp), zap.Int("srid", srid))
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Create(shp, nil)
	if !ok {
		err = ErrGdalDriverCreate
		return
	}
	if ref, err = g.getSridRef(srid); err != nil {
		return
	}
	layer = ds.CreateLayer("", ref, gdal.GT_Unknown, []string{ENCODING_OPTION})
	return
}

func (g *Toolbox) initClassifiedLayer(layer gdal.Layer) (err error) {
	classField := gdal.CreateFieldDefinition(SHP_FIELD_CLASS, gdal.FT_String)
	classField.SetWidth(64)
	if err = layer.CreateField(classField, false); err != nil {
		return
	}
	typeField := gdal.CreateFieldDefinition(SHP_FIELD_TYPE, gdal.FT_Integer)
	err = layer.CreateField(typeField, false)
	return
}

// 将分类图斑写入shp，携带classe（类名）与type（UMEP分类码）两个字段
func (g *Toolbox) WriteClassifiedShapefile(shp string, srid int, polys []ClassifiedPolygon) (err error) {
	ds, ref, layer, err := g.getShpDriver(shp, srid)
	if err != nil {
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	if err = g.initClassifiedLayer(layer); err != nil {
		return
	}
	var (
		def      = layer.Definition()
		classIdx = def.FieldIndex(SHP_FIELD_CLASS)
		typeIdx  = def.FieldIndex(SHP_FIELD_TYPE)
		feature  gdal.Feature
		geo      gdal.Geometry
		cnt      int
		e        error
		gc       = make([]destroyable, len(polys))
	)
	for i, p := range polys {
		feature = def.Create()
		gc[i] = feature
		if e = feature.SetFID(int64(i)); e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		feature.SetFieldString(classIdx, p.ClassName)
		feature.SetFieldInteger(typeIdx, int(p.TypeCode))
		if geo, e = g.parseWKB(p.Geom, ref); e != nil {
			continue
		}
		if e = feature.SetGeometryDirectly(geo); e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		cnt++
	}
	for _, v := range gc {
		if v != nil {
			v.Destroy()
		}
	}
	log.Info(g.logTag+"classified shp created", zap.String("shp", shp), zap.Int("total", len(polys)), zap.Int("valid", cnt))
	return
}

// 从shp中按指定整型字段解析出(几何,分类码)对，字段名默认type；
// 亦可用于一般烧录输入（如建筑高度栅格的矢量源）
func (g *Toolbox) ReadShapesFromShapefile(shp, column string) (shapes []LandCoverShape, srid int, err error) {
	if column == "" {
		column = DEFAULT_BURN_COLUMN
	}
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	if srid, err = g.getSrid(layer.SpatialReference()); err != nil {
		return
	}
	typeIdx := layer.Definition().FieldIndex(column)
	if typeIdx < 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, column)
		return
	}
	shapes = make([]LandCoverShape, 0, 128)
	var (
		feature *gdal.Feature
		wkb     GdalGeo
		e       error
		gc      []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		if wkb, e = feature.Geometry().ToWKB(); e != nil {
			log.Error(g.logTag+"err in wkb convert", zap.Error(e))
			continue
		}
		shapes = append(shapes, LandCoverShape{
			Geom:     wkb,
			TypeCode: uint8(feature.FieldAsInteger(typeIdx)),
		})
	}
	log.Info(g.logTag+"shapes read from shp", zap.String("shp", shp), zap.String("column", column),
		zap.Int("cnt", len(shapes)), zap.Int("srid", srid))
	return
}

// 获取shp文件中的类名集合；非UTF-8编码的字段值按Latin-1解码
func (g *Toolbox) GetClassNamesFromShapefile(shp, labelField string) (labels []string, err error) {
	if labelField == "" {
		labelField = SHP_FIELD_CLASS
	}
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	labelIdx := layer.Definition().FieldIndex(labelField)
	if labelIdx < 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, labelField)
		return
	}
	var (
		labelSet = map[string]struct{}{}
		feature  *gdal.Feature
		label    string
		cnt      int
		gc       []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		label = utils.NormalizeFieldText(feature.FieldAsString(labelIdx))
		if label == "" {
			err = fmt.Errorf(ErrColumnEmptyTemplate, labelField)
			return
		}
		labelSet[label] = struct{}{}
		cnt++
	}
	for k := range labelSet {
		labels = append(labels, k)
	}
	log.Info(g.logTag+"got class names from shp", zap.String("file", shp), zap.Any("labels", labels), zap.Int("cnt", cnt))
	return
}
