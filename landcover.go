package landcover

import (
	"fmt"

	"github.com/wgdzlh/landcover/log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// 地表覆盖图层组装器：将建筑、植被、水体、步行区等矢量源按固定分类码汇入
// 单个图层，可选掩膜裁剪，最终烧录为单波段分类栅格。
// 图形按加入顺序烧录，后加入者在重叠像元上覆盖先加入者。
type LandCover struct {
	tb     *Toolbox
	srid   int
	shapes []LandCoverShape
	mask   GdalGeo
	logTag string
}

// 新建组装器；srid为工作坐标系（<=0时取默认Lambert-93）
func NewLandCover(tb *Toolbox, srid int) *LandCover {
	if srid <= 0 {
		srid = WORKING_SRID
	}
	return &LandCover{tb: tb, srid: srid, logTag: "LandCover:"}
}

func (lc *LandCover) Srid() int {
	return lc.srid
}

// 添加建筑要素集合（type=2）
func (lc *LandCover) AddBuildings(fc AnyJson) error {
	return lc.addFixed(fc, TYPE_BUILDING)
}

// 添加植被要素集合（type=5）
func (lc *LandCover) AddVegetation(fc AnyJson) error {
	return lc.addFixed(fc, TYPE_GRASS)
}

// 添加水体要素集合（type=7）
func (lc *LandCover) AddWater(fc AnyJson) error {
	return lc.addFixed(fc, TYPE_WATER)
}

// 添加步行/裸土要素集合（type=6）
func (lc *LandCover) AddPedestrian(fc AnyJson) error {
	return lc.addFixed(fc, TYPE_BARE_SOIL)
}

// 添加已带分类码属性的要素集合（如COSIA分类结果），字段名默认type
func (lc *LandCover) AddTyped(fc AnyJson, column string) error {
	if column == "" {
		column = DEFAULT_BURN_COLUMN
	}
	return lc.add(fc, func(f *geojson.Feature) (uint8, bool) {
		v, ok := f.Properties[column]
		if !ok {
			return 0, false
		}
		switch n := v.(type) {
		case float64:
			return uint8(n), true
		case int:
			return uint8(n), true
		case int64:
			return uint8(n), true
		}
		return 0, false
	})
}

// 添加已分类的COSIA图斑
func (lc *LandCover) AddClassified(polys []ClassifiedPolygon) {
	lc.shapes = append(lc.shapes, ToShapes(polys)...)
}

func (lc *LandCover) addFixed(fc AnyJson, code uint8) error {
	return lc.add(fc, func(*geojson.Feature) (uint8, bool) { return code, true })
}

func (lc *LandCover) add(raw AnyJson, codeOf func(*geojson.Feature) (uint8, bool)) (err error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrGdalWrongGeoJSON, err)
		return
	}
	added, skipped := 0, 0
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			skipped++
			continue
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			// 线要素等无面积几何不参与烧录
			skipped++
			continue
		}
		code, ok := codeOf(f)
		if !ok || code == BACKGROUND_CODE {
			skipped++
			continue
		}
		data, e := wkb.Marshal(f.Geometry)
		if e != nil {
			log.Error(lc.logTag+"feature wkb marshal failed", zap.Error(e))
			skipped++
			continue
		}
		lc.shapes = append(lc.shapes, LandCoverShape{Geom: data, TypeCode: code})
		added++
	}
	log.Info(lc.logTag+"features added", zap.Int("added", added), zap.Int("skipped", skipped))
	return
}

// 设定掩膜WKB
func (lc *LandCover) SetMask(mask GdalGeo) {
	lc.mask = mask
}

// 以GeoJSON几何设定掩膜
func (lc *LandCover) SetMaskGeoJSON(mask AnyJson) (err error) {
	lc.mask, err = lc.tb.GeoJSONToWkb(mask)
	return
}

// 合并多个WKB面作为掩膜
func (lc *LandCover) SetMaskUnion(masks []GdalGeo) (err error) {
	lc.mask, err = lc.tb.Union(masks, lc.srid)
	return
}

// 汇总全部图形；有掩膜时先按掩膜裁剪
func (lc *LandCover) Shapes() ([]LandCoverShape, error) {
	if len(lc.mask) == 0 {
		return lc.shapes, nil
	}
	return lc.tb.ClipShapes(lc.shapes, lc.mask, lc.srid)
}

// 栅格化并落盘
func (lc *LandCover) Rasterize(tif string, opts RasterizeOptions) (band []uint8, report *ClassReport, err error) {
	shapes, err := lc.Shapes()
	if err != nil {
		return
	}
	return lc.tb.RasterizeShapes(shapes, tif, lc.srid, opts)
}
