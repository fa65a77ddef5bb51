package scenario

import (
	"bytes"
	"testing"
)

func TestNumberSpecDecodeLiterals(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want int32
	}{
		{"7-bit positive", []byte{0x3F}, 63},
		{"class0 negative", []byte{0x8F, 0x00}, -256},
		{"class1", []byte{0x9F, 0xFE, 0x34}, -460},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ns, err := ReadNumberSpec(bytes.NewReader(c.in))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if ns.IsRegister {
				t.Fatalf("expected literal, got register")
			}
			if ns.Literal != c.want {
				t.Errorf("got %d, want %d", ns.Literal, c.want)
			}
		})
	}
}

func TestNumberSpecDecodeRegister(t *testing.T) {
	ns, err := ReadNumberSpec(bytes.NewReader([]byte{0xB3}))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !ns.IsRegister || ns.Reg.Kind != RegR || ns.Reg.Index != 3 {
		t.Fatalf("got %+v, want R[3]", ns)
	}
}

func TestNumberSpecRoundTrip(t *testing.T) {
	vals := []int32{0, 1, -1, 63, -64, 64, -65, 2047, -2048, 2048, -2049,
		524287, -524288, 524288, -524289, 1<<26 - 1, -(1 << 26)}
	for _, v := range vals {
		var buf bytes.Buffer
		if err := WriteNumberSpec(&buf, Lit(v)); err != nil {
			t.Fatalf("encode(%d): %v", v, err)
		}
		got, err := ReadNumberSpec(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode(encode(%d)): %v", v, err)
		}
		if got.IsRegister || got.Literal != v {
			t.Errorf("round trip %d -> %+v", v, got)
		}
	}
}

func TestNumberSpecRejectsInvalidClass(t *testing.T) {
	// p=6 -> t = 0x80 | 6<<4 | 0 = 0xE0
	_, err := ReadNumberSpec(bytes.NewReader([]byte{0xE0}))
	if err == nil {
		t.Fatal("expected error for invalid class p=6")
	}
}

// String/StringArray codec round trips now live in format/text; see
// format/text/text_test.go.
