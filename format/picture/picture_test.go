package picture

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func u32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

func TestDecodeSingleRawBlock(t *testing.T) {
	pixels := bytes.Repeat([]byte{0x10, 0x20, 0x30, 0xff}, 2*2)

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write(u32(4))
	buf.Write(u32(4))
	buf.Write(u32(1)) // block count

	buf.Write(u32(0)) // originX
	buf.Write(u32(0)) // originY
	buf.Write(u32(2)) // width
	buf.Write(u32(2)) // height
	buf.Write(u32(0)) // compressedSize = 0 (raw)
	buf.Write(u32(1)) // rect count
	buf.Write(pixels)
	buf.Write(u32(0))
	buf.Write(u32(0))
	buf.Write(u32(2))
	buf.Write(u32(2))
	buf.WriteByte(1) // opaque

	pic, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if pic.CanvasWidth != 4 || pic.CanvasHeight != 4 || len(pic.Blocks) != 1 {
		t.Fatalf("got %+v", pic)
	}
	block := pic.Blocks[0]
	if !bytes.Equal(block.Pixels, pixels) {
		t.Errorf("pixels = % x, want % x", block.Pixels, pixels)
	}
	if len(block.Rects) != 1 || !block.Rects[0].Opaque {
		t.Errorf("rects = %+v", block.Rects)
	}
}
