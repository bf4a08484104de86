package landcover

import (
	"fmt"
	"math"
	"os"

	"github.com/wgdzlh/landcover/log"

	godal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

type RasterizeOptions struct {
	Resolution  float64 // 像元边长（坐标系线性单位），默认1.0
	AllTouched  bool    // 接触即烧录；默认仅像元中心落在面内时烧录
	Description string  // 元数据description，默认RASTER_DESCRIPTION
}

// 将(几何,分类码)集合烧录为单波段LZW压缩GTiff，并返回波段数据与统计报告。
// 范围取所有几何的联合外包框，transform锚定在(minX,maxY)；
// 按输入顺序逐个烧录，重叠像元后写覆盖先写；未覆盖像元保持背景值0。
// 任何失败都不会留下输出文件。
func (g *Toolbox) RasterizeShapes(shapes []LandCoverShape, tif string, srid int, opts RasterizeOptions) (band []uint8, report *ClassReport, err error) {
	if len(shapes) == 0 {
		err = ErrEmptyInput
		return
	}
	res := opts.Resolution
	if res <= 0 {
		res = DEFAULT_RESOLUTION
	}
	sr, err := godal.NewSpatialRefFromEPSG(srid)
	if err != nil {
		return
	}
	defer sr.Close()
	var (
		geos   = make([]*godal.Geometry, 0, len(shapes))
		bounds = [4]float64{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
		geo    *godal.Geometry
		gb     [4]float64
	)
	defer func() {
		for _, v := range geos {
			v.Close()
		}
	}()
	for _, s := range shapes {
		if geo, err = godal.NewGeometryFromWKB(s.Geom, sr); err != nil {
			return
		}
		geos = append(geos, geo)
		if gb, err = geo.Bounds(); err != nil {
			return
		}
		bounds[0] = math.Min(bounds[0], gb[0])
		bounds[1] = math.Min(bounds[1], gb[1])
		bounds[2] = math.Max(bounds[2], gb[2])
		bounds[3] = math.Max(bounds[3], gb[3])
	}
	width := int(math.Ceil((bounds[2] - bounds[0]) / res))
	height := int(math.Ceil((bounds[3] - bounds[1]) / res))
	if width <= 0 || height <= 0 {
		err = fmt.Errorf("%w: width=%d, height=%d, bounds=%v, resolution=%g",
			ErrInvalidDimensions, width, height, bounds, res)
		return
	}
	log.Info(g.logTag+"rasterize shapes", zap.Int("shapes", len(shapes)), zap.String("tif", tif),
		zap.Int("width", width), zap.Int("height", height), zap.Float64("resolution", res))
	ds, err := godal.Create(godal.GTiff, tif, 1, godal.Byte, width, height, godal.CreationOption(GTIFF_LZW))
	if err != nil {
		log.Error(g.logTag+"create tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrGdalDriverCreate
		return
	}
	defer func() {
		if ds != nil {
			ds.Close()
		}
		if err != nil {
			os.Remove(tif)
		}
	}()
	if err = ds.SetGeoTransform([6]float64{bounds[0], res, 0, bounds[3], 0, -res}); err != nil {
		return
	}
	if err = ds.SetSpatialRef(sr); err != nil {
		return
	}
	if err = ds.SetNoData(BACKGROUND_CODE); err != nil {
		return
	}
	for i, v := range geos {
		burn := []godal.RasterizeGeometryOption{godal.Values(float64(shapes[i].TypeCode))}
		if opts.AllTouched {
			burn = append(burn, godal.AllTouched())
		}
		if err = ds.RasterizeGeometry(v, burn...); err != nil {
			log.Error(g.logTag+"rasterize geometry failed", zap.Int("idx", i),
				zap.Uint8("code", shapes[i].TypeCode), zap.Error(err))
			return
		}
	}
	band = make([]uint8, width*height)
	if err = ds.Bands()[0].Read(0, 0, band, width, height); err != nil {
		log.Error(g.logTag+"read burned band failed", zap.Error(err))
		band = nil
		err = ErrTifReadFailed
		return
	}
	report = buildClassReport(band, width, height, res, g.codebook)
	desc := opts.Description
	if desc == "" {
		desc = RASTER_DESCRIPTION
	}
	if err = ds.SetMetadata(META_KEY_DESCRIPTION, desc); err != nil {
		return
	}
	if err = ds.SetMetadata(META_KEY_RESOLUTION, fmt.Sprintf("%gm", res)); err != nil {
		return
	}
	if err = ds.SetMetadata(META_KEY_CLASSES, g.codebook.LabelsTag()); err != nil {
		return
	}
	// Close负责落盘，其错误必须上抛
	err = ds.Close()
	ds = nil
	if err != nil {
		log.Error(g.logTag+"persist tif failed", zap.String("tif", tif), zap.Error(err))
		band, report = nil, nil
		return
	}
	log.Info(g.logTag+"landcover raster written", zap.String("tif", tif), zap.String("report", report.String()))
	return
}
