package landcover

import (
	"github.com/wgdzlh/landcover/log"

	"go.uber.org/zap"
)

// 按码表为矢量化序列中的每个图形附加最近色类名与UMEP分类码。
// 序列只遍历一次，遍历结束后由调用方Close。
func (g *Toolbox) Classify(seq *ShapeSeq) (ret []ClassifiedPolygon, err error) {
	ret = make([]ClassifiedPolygon, 0, seq.Count())
	counts := map[string]int{}
	for {
		shape, ok := seq.Next()
		if !ok {
			break
		}
		ent := g.codebook.Match(shape.Color)
		ret = append(ret, ClassifiedPolygon{
			Geom:      shape.Geom,
			SourceRGB: shape.Color,
			ClassName: ent.Name,
			TypeCode:  ent.TypeCode,
		})
		counts[ent.Name]++
	}
	if err = seq.Err(); err != nil {
		log.Error(g.logTag+"classify aborted", zap.Error(err))
		return
	}
	log.Info(g.logTag+"shapes classified", zap.Int("total", len(ret)), zap.Any("classes", counts))
	return
}

// 剥离分类信息，得到可直接烧录的(几何,分类码)对
func ToShapes(polys []ClassifiedPolygon) []LandCoverShape {
	shapes := make([]LandCoverShape, len(polys))
	for i, p := range polys {
		shapes[i] = LandCoverShape{Geom: p.Geom, TypeCode: p.TypeCode}
	}
	return shapes
}
