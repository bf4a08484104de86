package landcover

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UMEP地表分类码
const (
	TYPE_PAVED     uint8 = 1
	TYPE_BUILDING  uint8 = 2
	TYPE_EVERGREEN uint8 = 3
	TYPE_DECIDUOUS uint8 = 4
	TYPE_GRASS     uint8 = 5
	TYPE_BARE_SOIL uint8 = 6
	TYPE_WATER     uint8 = 7
)

type CodebookEntry struct {
	Name     string // COSIA类名
	Hex      string // 参考颜色（十六进制，形如 #ce7079）
	Color    RGB    // 参考颜色，构造时由Hex解析
	TypeCode uint8  // 映射到的UMEP分类码
}

// COSIA色彩码表，顺序固定（最近色并列时取先出现者）
type Codebook struct {
	entries []CodebookEntry
	index   map[string]int
	labels  map[uint8]string
}

// IGN COSIA图例颜色及其到UMEP分类的映射
var cosiaTable = []CodebookEntry{
	{Name: "Bâtiment", Hex: "#ce7079", TypeCode: TYPE_BUILDING},
	{Name: "Zone imperméable", Hex: "#a6aab7", TypeCode: TYPE_PAVED},
	{Name: "Zone perméable", Hex: "#987752", TypeCode: TYPE_BARE_SOIL},
	{Name: "Piscine", Hex: "#62d0ff", TypeCode: TYPE_WATER},
	{Name: "Serre", Hex: "#b9e2d4", TypeCode: TYPE_PAVED},
	{Name: "Sol nu", Hex: "#bbb096", TypeCode: TYPE_BARE_SOIL},
	{Name: "Surface eau", Hex: "#3375a1", TypeCode: TYPE_WATER},
	{Name: "Neige", Hex: "#e9effe", TypeCode: TYPE_WATER},
	{Name: "Conifère", Hex: "#216e2e", TypeCode: TYPE_BARE_SOIL},
	{Name: "Feuillu", Hex: "#4c9129", TypeCode: TYPE_BARE_SOIL},
	{Name: "Coupe", Hex: "#e48e4d", TypeCode: TYPE_GRASS},
	{Name: "Broussaille", Hex: "#b5c335", TypeCode: TYPE_GRASS},
	{Name: "Pelouse", Hex: "#8cd76a", TypeCode: TYPE_GRASS},
	{Name: "Culture", Hex: "#decf55", TypeCode: TYPE_GRASS},
	{Name: "Terre labourée", Hex: "#d0a349", TypeCode: TYPE_BARE_SOIL},
	{Name: "Vigne", Hex: "#b08290", TypeCode: TYPE_GRASS},
	{Name: "Autre", Hex: "#222222", TypeCode: TYPE_PAVED},
}

var umepLabels = map[uint8]string{
	TYPE_PAVED:     "Paved",
	TYPE_BUILDING:  "Building",
	TYPE_EVERGREEN: "Evergreen Trees",
	TYPE_DECIDUOUS: "Deciduous Trees",
	TYPE_GRASS:     "Grass",
	TYPE_BARE_SOIL: "Bare Soil",
	TYPE_WATER:     "Water",
}

var defaultCodebook = MustCodebook(cosiaTable, umepLabels)

// 默认COSIA码表，进程内共享只读
func DefaultCodebook() *Codebook {
	return defaultCodebook
}

// 构造并校验码表；码表非法属配置错误，应在初始化时立即失败
func NewCodebook(entries []CodebookEntry, labels map[uint8]string) (cb *Codebook, err error) {
	if len(entries) == 0 {
		err = fmt.Errorf("%w: no entries", ErrBadCodebook)
		return
	}
	cb = &Codebook{
		entries: make([]CodebookEntry, len(entries)),
		index:   make(map[string]int, len(entries)),
		labels:  make(map[uint8]string, len(labels)),
	}
	for k, v := range labels {
		cb.labels[k] = v
	}
	for i, ent := range entries {
		if ent.Name == "" {
			err = fmt.Errorf("%w: empty class name at entry %d", ErrBadCodebook, i)
			return
		}
		if _, ok := cb.index[ent.Name]; ok {
			err = fmt.Errorf("%w: duplicate class name %q", ErrBadCodebook, ent.Name)
			return
		}
		if ent.Hex != "" {
			if ent.Color, err = ParseHexColor(ent.Hex); err != nil {
				err = fmt.Errorf("%w: class %q: %s", ErrBadCodebook, ent.Name, err)
				return
			}
		}
		if ent.TypeCode == BACKGROUND_CODE {
			err = fmt.Errorf("%w: class %q maps to reserved background code", ErrBadCodebook, ent.Name)
			return
		}
		if _, ok := cb.labels[ent.TypeCode]; !ok {
			err = fmt.Errorf("%w: class %q maps to unlabeled code %d", ErrBadCodebook, ent.Name, ent.TypeCode)
			return
		}
		cb.entries[i] = ent
		cb.index[ent.Name] = i
	}
	return
}

func MustCodebook(entries []CodebookEntry, labels map[uint8]string) *Codebook {
	cb, err := NewCodebook(entries, labels)
	if err != nil {
		panic(err)
	}
	return cb
}

// 最近色匹配：RGB空间欧氏距离平方最小的码表项，严格小于保证并列时取先出现者
func (cb *Codebook) Match(c RGB) CodebookEntry {
	best := 0
	bestDist := colorDist(c, cb.entries[0].Color)
	for i := 1; i < len(cb.entries); i++ {
		if d := colorDist(c, cb.entries[i].Color); d < bestDist {
			best, bestDist = i, d
		}
	}
	return cb.entries[best]
}

func (cb *Codebook) Entry(name string) (ent CodebookEntry, ok bool) {
	i, ok := cb.index[name]
	if ok {
		ent = cb.entries[i]
	}
	return
}

func (cb *Codebook) Label(code uint8) string {
	if label, ok := cb.labels[code]; ok {
		return label
	}
	return "Unknown"
}

func (cb *Codebook) Len() int {
	return len(cb.entries)
}

// 码表项的只读遍历
func (cb *Codebook) Each(fn func(ent CodebookEntry)) {
	for _, ent := range cb.entries {
		fn(ent)
	}
}

// 序列化标签表（升序），作为classes元数据标签写入栅格
func (cb *Codebook) LabelsTag() string {
	codes := make([]int, 0, len(cb.labels))
	for c := range cb.labels {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range codes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: '%s'", c, cb.labels[uint8(c)])
	}
	b.WriteByte('}')
	return b.String()
}

func colorDist(a, b RGB) int {
	dr := int(a[0]) - int(b[0])
	dg := int(a[1]) - int(b[1])
	db := int(a[2]) - int(b[2])
	return dr*dr + dg*dg + db*db
}

// 将RGB编码为24位整数（R<<16 | G<<8 | B），保证矢量化时每像元单值
func EncodeRGB(c RGB) int32 {
	return int32(c[0])<<16 | int32(c[1])<<8 | int32(c[2])
}

func DecodeRGB(v int32) RGB {
	return RGB{uint8(v >> 16 & 255), uint8(v >> 8 & 255), uint8(v & 255)}
}

func ParseHexColor(hex string) (c RGB, err error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		err = fmt.Errorf("invalid hex color %q", hex)
		return
	}
	for i := 0; i < 3; i++ {
		v, e := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if e != nil {
			err = fmt.Errorf("invalid hex color %q", hex)
			return
		}
		c[i] = uint8(v)
	}
	return
}
