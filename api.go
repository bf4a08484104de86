package landcover

import "encoding/json"

type AnyJson = json.RawMessage

type GdalGeo = []byte

// 像元RGB三元组
type RGB [3]uint8

// 矢量化输出的单个图形（几何 + 源颜色编码）
type VectorizedShape struct {
	Geom  GdalGeo // 矢量面WKB
	Color RGB     // 源栅格区块的颜色
}

// 分类后的图斑矢量
type ClassifiedPolygon struct {
	Geom      GdalGeo // 矢量面WKB
	SourceRGB RGB     // 源栅格区块的颜色
	ClassName string  // COSIA类名
	TypeCode  uint8   // UMEP地表分类码（1~7）
}

// 待烧录的矢量面
type LandCoverShape struct {
	Geom     GdalGeo // 矢量面WKB
	TypeCode uint8   // 烧录值（0为保留背景值，不应出现）
}
