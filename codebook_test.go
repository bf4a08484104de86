package landcover

import (
	"errors"
	"testing"
)

func TestMatchExactColors(t *testing.T) {
	cb := DefaultCodebook()
	cb.Each(func(ent CodebookEntry) {
		got := cb.Match(ent.Color)
		if got.Name != ent.Name {
			t.Fatalf("exact color %s matched %q, want %q", ent.Hex, got.Name, ent.Name)
		}
	})
}

func TestMatchNearest(t *testing.T) {
	cb := DefaultCodebook()
	// (166,211,212) 离 Serre #b9e2d4 最近
	got := cb.Match(RGB{166, 211, 212})
	if got.Name != "Serre" || got.TypeCode != TYPE_PAVED {
		t.Fatalf("got %q (code %d), want Serre (code %d)", got.Name, got.TypeCode, TYPE_PAVED)
	}
	got = cb.Match(RGB{0, 0, 0})
	if got.Name != "Autre" {
		t.Fatalf("black matched %q, want Autre", got.Name)
	}
}

func TestMatchTieBreakFirstEntry(t *testing.T) {
	cb, err := NewCodebook([]CodebookEntry{
		{Name: "a", Hex: "#000000", TypeCode: TYPE_PAVED},
		{Name: "b", Hex: "#000002", TypeCode: TYPE_WATER},
	}, umepLabels)
	if err != nil {
		t.Fatal(err)
	}
	// #000001 到两项距离相等，取先出现者
	if got := cb.Match(RGB{0, 0, 1}); got.Name != "a" {
		t.Fatalf("tie matched %q, want a", got.Name)
	}
}

func TestEncodeDecodeRGB(t *testing.T) {
	for _, c := range []RGB{{0, 0, 0}, {255, 255, 255}, {206, 112, 121}, {1, 2, 3}} {
		v := EncodeRGB(c)
		if got := DecodeRGB(v); got != c {
			t.Fatalf("round trip of %v got %v (encoded %d)", c, got, v)
		}
	}
	if v := EncodeRGB(RGB{1, 2, 3}); v != 1<<16|2<<8|3 {
		t.Fatalf("encode got %d", v)
	}
}

func TestNewCodebookValidation(t *testing.T) {
	cases := []struct {
		name    string
		entries []CodebookEntry
	}{
		{"empty", nil},
		{"dup name", []CodebookEntry{
			{Name: "x", Hex: "#000000", TypeCode: TYPE_PAVED},
			{Name: "x", Hex: "#ffffff", TypeCode: TYPE_WATER},
		}},
		{"background code", []CodebookEntry{{Name: "x", Hex: "#000000", TypeCode: BACKGROUND_CODE}}},
		{"unlabeled code", []CodebookEntry{{Name: "x", Hex: "#000000", TypeCode: 99}}},
		{"bad hex", []CodebookEntry{{Name: "x", Hex: "#zzzzzz", TypeCode: TYPE_PAVED}}},
		{"short hex", []CodebookEntry{{Name: "x", Hex: "#fff", TypeCode: TYPE_PAVED}}},
	}
	for _, c := range cases {
		if _, err := NewCodebook(c.entries, umepLabels); !errors.Is(err, ErrBadCodebook) {
			t.Fatalf("%s: got err %v, want ErrBadCodebook", c.name, err)
		}
	}
}

func TestLabelsTag(t *testing.T) {
	want := "{1: 'Paved', 2: 'Building', 3: 'Evergreen Trees', 4: 'Deciduous Trees', 5: 'Grass', 6: 'Bare Soil', 7: 'Water'}"
	if got := DefaultCodebook().LabelsTag(); got != want {
		t.Fatalf("labels tag got %s", got)
	}
}

func TestLabelFallback(t *testing.T) {
	cb := DefaultCodebook()
	if cb.Label(TYPE_GRASS) != "Grass" {
		t.Fatal("known code")
	}
	if cb.Label(200) != "Unknown" {
		t.Fatal("unknown code")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ce7079")
	if err != nil || c != (RGB{206, 112, 121}) {
		t.Fatalf("got %v, %v", c, err)
	}
	if _, err = ParseHexColor("ce7079"); err != nil {
		t.Fatal("bare hex should parse")
	}
	if _, err = ParseHexColor("#ce70"); err == nil {
		t.Fatal("short hex should fail")
	}
}
