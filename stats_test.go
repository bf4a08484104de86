package landcover

import (
	"math"
	"strings"
	"testing"
)

func TestBuildClassReport(t *testing.T) {
	band := []uint8{TYPE_BUILDING, TYPE_BUILDING, TYPE_GRASS, BACKGROUND_CODE}
	r := buildClassReport(band, 2, 2, 1, DefaultCodebook())
	if len(r.Stats) != 2 {
		t.Fatalf("got %d stats", len(r.Stats))
	}
	if r.Stats[0].Code != TYPE_BUILDING || r.Stats[1].Code != TYPE_GRASS {
		t.Fatalf("stats not in ascending code order: %+v", r.Stats)
	}
	if r.Stats[0].Pixels != 2 || r.Stats[0].Percent != 50 {
		t.Fatalf("building stat: %+v", r.Stats[0])
	}
	if math.Abs(r.Stats[0].AreaHa-2.0/SQ_METERS_PER_HA) > 1e-12 {
		t.Fatalf("building area: %g", r.Stats[0].AreaHa)
	}
	if math.Abs(r.TotalHa-4.0/SQ_METERS_PER_HA) > 1e-12 {
		t.Fatalf("total area: %g", r.TotalHa)
	}
	if r.BackgroundPixels() != 1 {
		t.Fatalf("background pixels: %d", r.BackgroundPixels())
	}
}

func TestClassReportPercentSum(t *testing.T) {
	band := make([]uint8, 100)
	for i := range band {
		band[i] = uint8(i%7) + 1
	}
	r := buildClassReport(band, 10, 10, 0.5, DefaultCodebook())
	sum := 0.0
	for _, s := range r.Stats {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percent sum: %g", sum)
	}
	if r.BackgroundPixels() != 0 {
		t.Fatal("no background expected")
	}
}

func TestClassReportString(t *testing.T) {
	band := []uint8{TYPE_WATER, TYPE_WATER, TYPE_WATER, TYPE_WATER}
	out := buildClassReport(band, 2, 2, 1, DefaultCodebook()).String()
	for _, want := range []string{
		"Dimensions: 2x2 pixels",
		"Resolution: 1m/pixel",
		"Total area: 0.00 ha",
		"7 - Water",
		"(100.00%)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
