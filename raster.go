package landcover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgdzlh/landcover/log"

	godal "github.com/airbusgeo/godal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 读取一般Tif，返回前bands个波段的原始字节与单像元字节数
func (g *Toolbox) ParseRaster(tif string, bands int) (buf [][]byte, dtSize int, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tifBands := sds.Bands()
	bc := len(tifBands)
	if bc < bands {
		log.Error(g.logTag+"tif bands not enough", zap.Int("bands", bc))
		err = ErrWrongTif
		return
	}
	log.Info(g.logTag+"start read tif", zap.Int("bands", bc), zap.Int("bufBn", bands))
	buf = make([][]byte, bands)
	for i := 0; i < bands; i++ {
		band := tifBands[i]
		bandStruct := band.Structure()
		dt := bandStruct.DataType
		x := bandStruct.SizeX
		y := bandStruct.SizeY
		dtSize = dt.Size()
		buf[i] = make([]byte, x*y*dtSize)
		err = band.IO(godal.IORead, 0, 0, buf[i], x, y)
		if err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifReadFailed
			return
		}
	}
	return
}

// 按bbox剪切栅格，输出LZW压缩GTiff（矢量化前的瓦片预裁剪）
func (g *Toolbox) ClipRasterToSpan(tif string, span [4]float64, srid int, out string) (err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(SpanToWkt(span), ref)
	if err != nil {
		return
	}
	geoJson := geo.ToJSON()
	geo.Destroy()
	tmpGeoJson := filepath.Join(g.tmpDir, fmt.Sprintf(TMP_GEOJSON, uuid.NewString()))
	if err = os.WriteFile(tmpGeoJson, []byte(geoJson), os.ModePerm); err != nil {
		return
	}
	defer os.Remove(tmpGeoJson)
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	log.Info(g.logTag+"clip raster", zap.String("tif", tif), zap.Any("span", span), zap.String("out", out))
	ods, err := godal.Warp(out, []*godal.Dataset{sds},
		[]string{"-cutline", tmpGeoJson, "-crop_to_cutline", "-overwrite", "-co", GTIFF_LZW})
	if err != nil {
		log.Error(g.logTag+"failed to clip raster", zap.Error(err))
		return
	}
	err = ods.Close()
	return
}
