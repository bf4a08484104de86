package landcover

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/wgdzlh/landcover/log"
	"github.com/wgdzlh/landcover/utils"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

var godalRegOnce sync.Once

// 地表分类工具箱，持有坐标系缓存与色彩码表；码表只读，可跨并发任务共享
type Toolbox struct {
	codebook *Codebook
	refMap   map[int]gdal.SpatialReference
	rLock    sync.Mutex
	tmpDir   string
	logTag   string
}

// 由GDAL库C语言创建的内存对象，需要手动调用Destroy回收
type destroyable interface {
	Destroy()
}

// 初始化工具箱；codebook为nil时使用默认COSIA码表，tmpDir为可选的临时目录路径（未提供的话为当前目录）
func NewToolbox(codebook *Codebook, tmpDir ...string) *Toolbox {
	godalRegOnce.Do(godal.RegisterAll)
	g := &Toolbox{
		codebook: codebook,
		refMap:   map[int]gdal.SpatialReference{},
		logTag:   "Toolbox:",
	}
	if g.codebook == nil {
		g.codebook = DefaultCodebook()
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

func (g *Toolbox) Codebook() *Codebook {
	return g.codebook
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *Toolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 数据轴次序固定为传统GIS坐标序（经度,纬度），避免转换坐标系或转GeoJSON时次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

func (g *Toolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		err = ErrVoidSrid
		return
	}
	srid, err = strconv.Atoi(rawId)
	return
}

// 从投影WKT解析srid（如栅格数据集的Projection）
func (g *Toolbox) getSridFromProj(proj string) (srid int, err error) {
	if proj == "" {
		err = ErrVoidSrid
		return
	}
	sp := gdal.CreateSpatialReference(proj)
	defer sp.Destroy()
	if srid, err = g.getSrid(sp); err != nil {
		// 投影未带AUTHORITY节点时尝试自动识别
		if e := sp.AutoIdentifyEPSG(); e == nil {
			srid, err = g.getSrid(sp)
		}
	}
	return
}

func (g *Toolbox) parseWKB(wkb GdalGeo, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKB(wkb, ref, len(wkb))
	if err != nil {
		log.Error(g.logTag+"parse wkb failed", zap.Error(err))
	}
	return
}

func (g *Toolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ErrInvalidWKT
	}
	return
}

// 转换WKB坐标系
func (g *Toolbox) TransformWkb(wkb GdalGeo, srid, tSrid int) (ret GdalGeo, err error) {
	if tSrid == srid {
		ret = wkb
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	ret, err = geo.ToWKB()
	return
}

// WKT转WKB
func (g *Toolbox) WktToWkb(wkt string, srid int) (wkb GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	wkb, err = geo.ToWKB()
	geo.Destroy()
	return
}

// WKB转WKT
func (g *Toolbox) WkbToWkt(wkb GdalGeo, srid int) (wkt string, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	wkt, err = geo.ToWKT()
	geo.Destroy()
	return
}

// GeoJSON转WKB
func (g *Toolbox) GeoJSONToWkb(geoJson AnyJson) (ret GdalGeo, err error) {
	geo := gdal.CreateFromJson(utils.B2S(geoJson))
	defer geo.Destroy()
	if geo.WKBSize() == 0 {
		err = ErrGdalWrongGeoJSON
		return
	}
	ret, err = geo.ToWKB()
	return
}

// WKB转GeoJSON
func (g *Toolbox) WkbToGeoJSON(wkb GdalGeo, srid int) (ret AnyJson, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	ret = utils.S2B(geo.ToJSON())
	geo.Destroy()
	return
}

// 合并多个WKB矢量面
func (g *Toolbox) Union(gs []GdalGeo, srid int) (ret GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	var (
		geo      gdal.Geometry
		unionGeo = gdal.Create(gdal.GT_Polygon)
		gc       = []destroyable{unionGeo}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for _, a := range gs {
		if geo, err = g.parseWKB(a, ref); err != nil {
			return
		}
		gc = append(gc, geo)
		unionGeo = unionGeo.Union(geo)
		gc = append(gc, unionGeo)
	}
	ret, err = unionGeo.ToWKB()
	return
}

// 按掩膜WKB裁剪矢量面集合，保留原分类码；与掩膜无交集的图形被剔除
func (g *Toolbox) ClipShapes(shapes []LandCoverShape, mask GdalGeo, srid int) (ret []LandCoverShape, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	maskGeo, err := g.parseWKB(mask, ref)
	if err != nil {
		return
	}
	var (
		geo, clipped gdal.Geometry
		wkb          GdalGeo
		e            error
		gc           = []destroyable{maskGeo}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	ret = make([]LandCoverShape, 0, len(shapes))
	for _, s := range shapes {
		if geo, e = g.parseWKB(s.Geom, ref); e != nil {
			continue
		}
		gc = append(gc, geo)
		clipped = geo.Intersection(maskGeo)
		gc = append(gc, clipped)
		if clipped.IsEmpty() {
			continue
		}
		if wkb, e = clipped.ToWKB(); e != nil {
			log.Error(g.logTag+"clipped geo to wkb failed", zap.Error(e))
			continue
		}
		ret = append(ret, LandCoverShape{Geom: wkb, TypeCode: s.TypeCode})
	}
	log.Info(g.logTag+"shapes clipped to mask", zap.Int("in", len(shapes)), zap.Int("out", len(ret)))
	return
}

// 获取WKT经纬度范围
func (g *Toolbox) GetWktSpan(wkt string, srid int) (span [4]float64, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	envelop := geo.Envelope()
	span[0] = envelop.MinX()
	span[1] = envelop.MaxX()
	span[2] = envelop.MinY()
	span[3] = envelop.MaxY()
	return
}

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}
