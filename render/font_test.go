package render

import "testing"

func TestLoadFontInvalidData(t *testing.T) {
	_, err := LoadFont([]byte("not a TTF file"), 16)
	if err == nil {
		t.Fatal("expected an error decoding garbage font data")
	}
}
