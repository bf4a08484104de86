package landcover

import (
	"errors"
	"testing"
)

const buildingsFC = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[0,10],[10,10],[10,0],[0,0]]]}},
	{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[5,5]]}},
	{"type":"Feature","properties":{},"geometry":null}
]}`

const typedFC = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"type":5},"geometry":{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}},
	{"type":"Feature","properties":{"type":7},"geometry":{"type":"MultiPolygon","coordinates":[[[[2,0],[2,1],[3,1],[3,0],[2,0]]]]}},
	{"type":"Feature","properties":{"type":0},"geometry":{"type":"Polygon","coordinates":[[[4,0],[4,1],[5,1],[5,0],[4,0]]]}},
	{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[6,0],[6,1],[7,1],[7,0],[6,0]]]}}
]}`

func TestLandCoverAddFixed(t *testing.T) {
	lc := NewLandCover(NewToolbox(nil), WORKING_SRID)
	if err := lc.AddBuildings(AnyJson(buildingsFC)); err != nil {
		t.Fatal(err)
	}
	shapes, err := lc.Shapes()
	if err != nil {
		t.Fatal(err)
	}
	// 线要素与空几何被跳过
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	if shapes[0].TypeCode != TYPE_BUILDING {
		t.Fatalf("got code %d", shapes[0].TypeCode)
	}
	if len(shapes[0].Geom) == 0 {
		t.Fatal("empty wkb")
	}
}

func TestLandCoverAddTyped(t *testing.T) {
	lc := NewLandCover(NewToolbox(nil), 0)
	if lc.Srid() != WORKING_SRID {
		t.Fatalf("default srid: %d", lc.Srid())
	}
	if err := lc.AddTyped(AnyJson(typedFC), ""); err != nil {
		t.Fatal(err)
	}
	shapes, err := lc.Shapes()
	if err != nil {
		t.Fatal(err)
	}
	// 背景码与缺失字段的要素被跳过
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	if shapes[0].TypeCode != TYPE_GRASS || shapes[1].TypeCode != TYPE_WATER {
		t.Fatalf("got codes %d, %d", shapes[0].TypeCode, shapes[1].TypeCode)
	}
}

func TestLandCoverBadGeoJSON(t *testing.T) {
	lc := NewLandCover(NewToolbox(nil), WORKING_SRID)
	if err := lc.AddWater(AnyJson(`{"not":"geojson"}`)); !errors.Is(err, ErrGdalWrongGeoJSON) {
		t.Fatalf("got err %v", err)
	}
}

func TestLandCoverAddClassified(t *testing.T) {
	lc := NewLandCover(NewToolbox(nil), WORKING_SRID)
	lc.AddClassified([]ClassifiedPolygon{
		{Geom: GdalGeo{1}, ClassName: "Pelouse", TypeCode: TYPE_GRASS},
	})
	shapes, err := lc.Shapes()
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes) != 1 || shapes[0].TypeCode != TYPE_GRASS {
		t.Fatalf("got %+v", shapes)
	}
}
