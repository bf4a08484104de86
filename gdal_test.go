package landcover

import (
	"math"
	"testing"
)

func TestSpanWktRoundTrip(t *testing.T) {
	g := NewToolbox(nil)
	span := [4]float64{843000, 844000, 6520000, 6521000}
	got, err := g.GetWktSpan(SpanToWkt(span), WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	for i := range span {
		if math.Abs(got[i]-span[i]) > 1e-6 {
			t.Fatalf("span round trip: got %v, want %v", got, span)
		}
	}
}

func TestTransformWkbSameSrid(t *testing.T) {
	g := NewToolbox(nil)
	wkb, err := g.WktToWkb("POLYGON((0 0, 0 1, 1 1, 1 0, 0 0))", WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	ret, err := g.TransformWkb(wkb, WORKING_SRID, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ret) != len(wkb) {
		t.Fatal("same srid transform should be passthrough")
	}
}

func TestTransformWkb(t *testing.T) {
	g := NewToolbox(nil)
	wkb, err := g.WktToWkb(PointsToWkt(2.29, 2.30, 48.85, 48.86), GEOJSON_SRID)
	if err != nil {
		t.Fatal(err)
	}
	ret, err := g.TransformWkb(wkb, GEOJSON_SRID, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	wkt, err := g.WkbToWkt(ret, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	// 巴黎附近Lambert-93坐标应在数十万米量级
	span, err := g.GetWktSpan(wkt, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if span[0] < 500000 || span[0] > 800000 {
		t.Fatalf("unexpected easting: %v", span)
	}
}

func TestUnionAndClipShapes(t *testing.T) {
	g := NewToolbox(nil)
	a, err := g.WktToWkb("POLYGON((0 0, 0 2, 2 2, 2 0, 0 0))", WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.WktToWkb("POLYGON((2 0, 2 2, 4 2, 4 0, 2 0))", WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	mask, err := g.Union([]GdalGeo{a, b}, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	inside, err := g.WktToWkb("POLYGON((1 0, 1 1, 3 1, 3 0, 1 0))", WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	outside, err := g.WktToWkb("POLYGON((10 10, 10 11, 11 11, 11 10, 10 10))", WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	clipped, err := g.ClipShapes([]LandCoverShape{
		{Geom: inside, TypeCode: TYPE_GRASS},
		{Geom: outside, TypeCode: TYPE_WATER},
	}, mask, WORKING_SRID)
	if err != nil {
		t.Fatal(err)
	}
	// 掩膜外的图形被剔除
	if len(clipped) != 1 || clipped[0].TypeCode != TYPE_GRASS {
		t.Fatalf("got %d shapes", len(clipped))
	}
}

func TestGeoJSONConvert(t *testing.T) {
	g := NewToolbox(nil)
	wkb, err := g.GeoJSONToWkb(AnyJson(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	ret, err := g.WkbToGeoJSON(wkb, GEOJSON_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ret) == 0 {
		t.Fatal("empty geojson")
	}
	if _, err = g.GeoJSONToWkb(AnyJson(`{"type":"Nonsense"}`)); err == nil {
		t.Fatal("bad geojson should fail")
	}
}
