package utils

import "testing"

func TestLatin1RoundTrip(t *testing.T) {
	src := "Bâtiment"
	enc, err := Utf8ToLatin1([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) >= len(src) {
		t.Fatalf("latin-1 should be shorter: %d vs %d", len(enc), len(src))
	}
	dec, err := Latin1ToUtf8(enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != src {
		t.Fatalf("got %q", dec)
	}
}

func TestNormalizeFieldText(t *testing.T) {
	if got := NormalizeFieldText("Pelouse"); got != "Pelouse" {
		t.Fatalf("valid utf-8 changed: %q", got)
	}
	// Latin-1编码的"Bâtiment"
	raw := string([]byte{'B', 0xe2, 't', 'i', 'm', 'e', 'n', 't'})
	if got := NormalizeFieldText(raw); got != "Bâtiment" {
		t.Fatalf("latin-1 fallback: %q", got)
	}
}

func TestPurifyForUtf8(t *testing.T) {
	if got := PurifyForUtf8("a\x00b\xffc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestB2S(t *testing.T) {
	if B2S([]byte("abc")) != "abc" || string(S2B("abc")) != "abc" {
		t.Fatal("unsafe conversions broken")
	}
}
