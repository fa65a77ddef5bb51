package text

import (
	"bytes"
	"testing"
)

func TestStringArrayRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := []string{"hello", "world"}
	if err := WriteStringArray(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ReadStringArray(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %v, want %v", got, in)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], in[i])
		}
	}
}

func TestStringArrayEmptyEncoding(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStringArray(&buf, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x01, 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("empty array encoded to % x, want % x", buf.Bytes(), want)
	}
}

func TestSJisStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSJisString(&buf, "konnichiwa"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ReadSJisString(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "konnichiwa" {
		t.Errorf("got %q, want %q", got, "konnichiwa")
	}
}

func TestReadSJisStringRejectsZeroLength(t *testing.T) {
	_, err := ReadSJisString(bytes.NewReader([]byte{0x00, 0x00}))
	if err == nil {
		t.Fatal("expected an error for a zero-length string")
	}
}
