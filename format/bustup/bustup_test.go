package bustup

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func u32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

func buildPicture(t *testing.T, origins [][2]uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("PIC4")
	buf.Write(u32(64))
	buf.Write(u32(64))
	buf.Write(u32(uint32(len(origins))))
	for _, o := range origins {
		buf.Write(u32(o[0]))
		buf.Write(u32(o[1]))
		buf.Write(u32(1)) // width
		buf.Write(u32(1)) // height
		buf.Write(u32(0)) // compressedSize = raw
		buf.Write(u32(0)) // rect count
		buf.Write([]byte{1, 2, 3, 4})
	}
	return buf.Bytes()
}

func TestSkeletonAndBuilder(t *testing.T) {
	data := buildPicture(t, [][2]uint32{{0, 0}, {10, 0}, {0, 10}})
	table := map[string][]string{
		"smile": {"0,0", "10,0"},
	}
	sk, err := Decode(data, table)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(sk.Expressions) != 1 || sk.Expressions[0].Name != "smile" {
		t.Fatalf("got %+v", sk.Expressions)
	}

	b := NewBuilder(sk)
	blocks, err := b.Build(sk.Expressions[0].Promises)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].OriginX != 0 || blocks[1].OriginX != 10 {
		t.Errorf("unexpected block order: %+v", blocks)
	}
}

func TestDecodeRejectsUnknownBlockName(t *testing.T) {
	data := buildPicture(t, [][2]uint32{{0, 0}})
	_, err := Decode(data, map[string][]string{"bad": {"99,99"}})
	if err == nil {
		t.Fatal("expected error for unknown block reference")
	}
}
