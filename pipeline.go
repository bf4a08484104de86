package landcover

import (
	"os"
	"path/filepath"

	"github.com/wgdzlh/landcover/log"
	"github.com/wgdzlh/landcover/utils"

	"go.uber.org/zap"
)

type PipelineOptions struct {
	Column      string      // 从shp烧录时读取分类码的字段，默认type
	Resolution  float64     // 输出栅格像元边长，默认1.0
	WorkingSrid int         // 栅格化工作坐标系，默认Lambert-93
	OutputDir   string      // 输出目录，默认当前目录
	AllTouched  bool        // 烧录时接触即置值
	Description string      // 输出栅格的description元数据
	ClipSpan    *[4]float64 // 可选的预裁剪bbox（minX,maxX,minY,maxY）
	ClipSrid    int         // 预裁剪bbox的坐标系，默认同WorkingSrid
}

type PipelineResult struct {
	Shapefile string               // 分类图斑shp路径
	RasterTif string               // 分类栅格路径
	Polygons  []ClassifiedPolygon  // 分类图斑（源栅格坐标系）
	Band      []uint8              // 输出栅格波段数据
	Report    *ClassReport         // 各分类面积统计
}

// 执行完整流水线：COSIA RGB栅格 -> 矢量化 -> 最近色分类 -> 分类图斑shp
// -> 重投影到工作坐标系 -> 烧录分类栅格（LZW + 元数据标签）。
// shp保留源栅格坐标系，tif使用工作坐标系。
func (g *Toolbox) RunPipeline(cosiaTif string, opts PipelineOptions) (res *PipelineResult, err error) {
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	workingSrid := opts.WorkingSrid
	if workingSrid <= 0 {
		workingSrid = WORKING_SRID
	}
	srcTif := cosiaTif
	if opts.ClipSpan != nil {
		clipSrid := opts.ClipSrid
		if clipSrid <= 0 {
			clipSrid = workingSrid
		}
		var tmpDir string
		if tmpDir, err = utils.GetUniqSubDir(g.tmpDir); err != nil {
			return
		}
		defer os.RemoveAll(tmpDir)
		srcTif = filepath.Join(tmpDir, utils.GetFilenameWithoutExt(cosiaTif)+FILE_EXT_TIF)
		if err = g.ClipRasterToSpan(cosiaTif, *opts.ClipSpan, clipSrid, srcTif); err != nil {
			return
		}
	}
	seq, err := g.VectorizeRaster(srcTif)
	if err != nil {
		return
	}
	defer seq.Close()
	srcSrid := seq.Srid()
	polys, err := g.Classify(seq)
	if err != nil {
		return
	}
	shp := filepath.Join(outDir, OUT_SHP_NAME)
	if err = g.WriteClassifiedShapefile(shp, srcSrid, polys); err != nil {
		return
	}
	shapes := ToShapes(polys)
	if srcSrid != workingSrid {
		log.Info(g.logTag+"reproject shapes", zap.Int("from", srcSrid), zap.Int("to", workingSrid))
		for i := range shapes {
			if shapes[i].Geom, err = g.TransformWkb(shapes[i].Geom, srcSrid, workingSrid); err != nil {
				return
			}
		}
	}
	tif := filepath.Join(outDir, OUT_TIF_NAME)
	band, report, err := g.RasterizeShapes(shapes, tif, workingSrid, RasterizeOptions{
		Resolution:  opts.Resolution,
		AllTouched:  opts.AllTouched,
		Description: opts.Description,
	})
	if err != nil {
		return
	}
	res = &PipelineResult{
		Shapefile: shp,
		RasterTif: tif,
		Polygons:  polys,
		Band:      band,
		Report:    report,
	}
	log.Info(g.logTag+"pipeline done", zap.String("shp", shp), zap.String("tif", tif),
		zap.Int("polygons", len(polys)))
	return
}

// 从已分类的shp直接烧录分类栅格（跳过矢量化与分类步骤），
// 分类码取自opts.Column指定的整型字段
func (g *Toolbox) RunFromShapefile(shp string, opts PipelineOptions) (res *PipelineResult, err error) {
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	workingSrid := opts.WorkingSrid
	if workingSrid <= 0 {
		workingSrid = WORKING_SRID
	}
	shapes, srcSrid, err := g.ReadShapesFromShapefile(shp, opts.Column)
	if err != nil {
		return
	}
	if srcSrid != workingSrid {
		log.Info(g.logTag+"reproject shapes", zap.Int("from", srcSrid), zap.Int("to", workingSrid))
		for i := range shapes {
			if shapes[i].Geom, err = g.TransformWkb(shapes[i].Geom, srcSrid, workingSrid); err != nil {
				return
			}
		}
	}
	tif := filepath.Join(outDir, OUT_TIF_NAME)
	band, report, err := g.RasterizeShapes(shapes, tif, workingSrid, RasterizeOptions{
		Resolution:  opts.Resolution,
		AllTouched:  opts.AllTouched,
		Description: opts.Description,
	})
	if err != nil {
		return
	}
	res = &PipelineResult{
		Shapefile: shp,
		RasterTif: tif,
		Band:      band,
		Report:    report,
	}
	return
}
