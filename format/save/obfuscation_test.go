package save

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestDecodeOnePassFixture pins decodeOnePass against a known-good trace:
// the first word's key-XOR result is independently verifiable by hand
// (0x01234567 ^ 0x00001337 == 0x01235650), and the fixture carries the rest
// of the rolling-key trace through the second word.
func TestDecodeOnePassFixture(t *testing.T) {
	in, err := hex.DecodeString("0123456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	want, err := hex.DecodeString("01235650b1e1c6a2")
	if err != nil {
		t.Fatal(err)
	}
	decodeOnePass(in, 0x1337)
	if !bytes.Equal(in, want) {
		t.Errorf("decodeOnePass = % x, want % x", in, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	plaintexts := [][]byte{
		[]byte("Hello, world!"),
		[]byte(""),
		bytes.Repeat([]byte{0xAB}, 97),
	}
	for _, pt := range plaintexts {
		enc := Encode(pt, 0xDEADBEEF)
		dec, err := Decode(enc, 0xDEADBEEF)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", pt, err)
		}
		padded := make([]byte, (len(pt)+3)&^3)
		copy(padded, pt)
		if !bytes.Equal(dec, padded) {
			t.Errorf("round trip %q -> % x, want % x", pt, dec, padded)
		}
	}
}

func TestDecodeDetectsTampering(t *testing.T) {
	enc := Encode([]byte("Hello, world!"), 0xDEADBEEF)
	enc[0] ^= 0x01
	if _, err := Decode(enc, 0xDEADBEEF); err == nil {
		t.Fatal("expected checksum mismatch after tampering")
	}
}

func TestKeyFromSeedDeterministic(t *testing.T) {
	a := KeyFromSeed("shin-save")
	b := KeyFromSeed("shin-save")
	if a != b {
		t.Fatal("KeyFromSeed should be deterministic")
	}
}
