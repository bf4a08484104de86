package landcover

import (
	"fmt"
	"strings"
)

// 单个分类的面积统计
type ClassStat struct {
	Code    uint8
	Label   string
	Pixels  int
	AreaHa  float64 // 公顷
	Percent float64 // 占整幅栅格面积百分比
}

// 分类栅格统计报告，Stats按分类码升序
type ClassReport struct {
	Width      int
	Height     int
	Resolution float64
	TotalHa    float64
	Stats      []ClassStat
}

func buildClassReport(band []uint8, width, height int, res float64, cb *Codebook) *ClassReport {
	var counts [256]int
	for _, v := range band {
		counts[v]++
	}
	r := &ClassReport{
		Width:      width,
		Height:     height,
		Resolution: res,
		TotalHa:    float64(width) * float64(height) * res * res / SQ_METERS_PER_HA,
	}
	total := float64(width * height)
	for code := BACKGROUND_CODE + 1; code < len(counts); code++ {
		if counts[code] == 0 {
			continue
		}
		pixels := counts[code]
		r.Stats = append(r.Stats, ClassStat{
			Code:    uint8(code),
			Label:   cb.Label(uint8(code)),
			Pixels:  pixels,
			AreaHa:  float64(pixels) * res * res / SQ_METERS_PER_HA,
			Percent: float64(pixels) / total * 100,
		})
	}
	return r
}

// 背景（无分类）像元数
func (r *ClassReport) BackgroundPixels() int {
	n := r.Width * r.Height
	for _, s := range r.Stats {
		n -= s.Pixels
	}
	return n
}

func (r *ClassReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dimensions: %dx%d pixels\n", r.Width, r.Height)
	fmt.Fprintf(&b, "Resolution: %gm/pixel\n", r.Resolution)
	fmt.Fprintf(&b, "Total area: %.2f ha\n", r.TotalHa)
	for _, s := range r.Stats {
		fmt.Fprintf(&b, "  %d - %-20s: %8.2f ha (%5.2f%%)\n", s.Code, s.Label, s.AreaHa, s.Percent)
	}
	return b.String()
}
