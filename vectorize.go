package landcover

import (
	"github.com/wgdzlh/landcover/log"

	godal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 矢量化结果中承载像元编码值的字段名
const PIX_VALUE_FIELD = "px"

// 矢量化输出序列：单次遍历、不可重置，消费完毕后必须Close回收GDAL资源
type ShapeSeq struct {
	layer  godal.Layer
	src    *godal.Dataset
	mem    *godal.Dataset
	vec    *godal.Dataset
	srid   int
	count  int
	err    error
	closed bool
}

// 将3波段8位RGB栅格矢量化为(几何,颜色)序列。
// 每个像元的RGB编码为24位整数后做连通域追踪（8连通，保证类别边界连续），
// 每个同色连通块输出一个面（可能带洞）。
func (g *Toolbox) VectorizeRaster(tif string) (seq *ShapeSeq, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer func() {
		if err != nil {
			sds.Close()
		}
	}()
	bands := sds.Bands()
	if len(bands) < 3 {
		log.Error(g.logTag+"tif bands not enough", zap.Int("bands", len(bands)))
		err = ErrWrongTif
		return
	}
	st := bands[0].Structure()
	if st.DataType != godal.Byte {
		log.Error(g.logTag+"tif is not 8bit", zap.String("dataType", st.DataType.String()))
		err = ErrWrongTif
		return
	}
	x, y := st.SizeX, st.SizeY
	var rgb [3][]uint8
	for i := 0; i < 3; i++ {
		rgb[i] = make([]uint8, x*y)
		if err = bands[i].Read(0, 0, rgb[i], x, y); err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifReadFailed
			return
		}
	}
	packed := make([]int32, x*y)
	for j := range packed {
		packed[j] = EncodeRGB(RGB{rgb[0][j], rgb[1][j], rgb[2][j]})
	}
	gt, err := sds.GeoTransform()
	if err != nil {
		return
	}
	srid, err := g.getSridFromProj(sds.Projection())
	if err != nil {
		return
	}
	sr := sds.SpatialRef()

	mem, err := godal.Create(godal.Memory, "", 1, godal.Int32, x, y)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			mem.Close()
		}
	}()
	if err = mem.SetGeoTransform(gt); err != nil {
		return
	}
	if err = mem.SetSpatialRef(sr); err != nil {
		return
	}
	if err = mem.Bands()[0].Write(0, 0, packed, x, y); err != nil {
		return
	}

	vec, err := godal.CreateVector(godal.Memory, "")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			vec.Close()
		}
	}()
	layer, err := vec.CreateLayer("shapes", sr, godal.GTPolygon,
		godal.NewFieldDefinition(PIX_VALUE_FIELD, godal.FTInt))
	if err != nil {
		return
	}
	if err = mem.Bands()[0].Polygonize(layer, godal.PixelValueFieldIndex(0), godal.EightConnected()); err != nil {
		log.Error(g.logTag+"polygonize failed", zap.Error(err))
		return
	}
	cnt, _ := layer.FeatureCount()
	log.Info(g.logTag+"raster vectorized", zap.String("tif", tif),
		zap.Int("width", x), zap.Int("height", y), zap.Int("shapes", cnt), zap.Int("srid", srid))
	layer.ResetReading()
	seq = &ShapeSeq{
		layer: layer,
		src:   sds,
		mem:   mem,
		vec:   vec,
		srid:  srid,
		count: cnt,
	}
	return
}

// 源栅格坐标系srid
func (s *ShapeSeq) Srid() int {
	return s.srid
}

// 序列总长
func (s *ShapeSeq) Count() int {
	return s.count
}

// 取下一个图形；序列耗尽或出错时ok为false，出错原因见Err
func (s *ShapeSeq) Next() (shape VectorizedShape, ok bool) {
	if s.closed || s.err != nil {
		return
	}
	f := s.layer.NextFeature()
	if f == nil {
		return
	}
	defer f.Close()
	wkb, err := f.Geometry().WKB()
	if err != nil {
		s.err = err
		return
	}
	px := f.Fields()[PIX_VALUE_FIELD].Int()
	shape = VectorizedShape{Geom: wkb, Color: DecodeRGB(int32(px))}
	ok = true
	return
}

func (s *ShapeSeq) Err() error {
	return s.err
}

// 回收底层GDAL数据集，可重复调用
func (s *ShapeSeq) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.vec.Close()
	s.mem.Close()
	s.src.Close()
}
