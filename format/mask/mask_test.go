package mask

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func u32le(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }
func u16le(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }

func buildMask(t *testing.T, width, height uint16, texels []byte, vertices []byte) []byte {
	t.Helper()
	stride := int(padTo16(uint32(width)))
	if len(texels) != stride*int(height) {
		t.Fatalf("test setup: texel buffer is %d bytes, want %d", len(texels), stride*int(height))
	}

	var dataSection bytes.Buffer
	dataSection.Write(u32le(0)) // compressedSize=0 => raw texels follow
	dataSection.Write(texels)

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write(u32le(1)) // version
	buf.Write(u32le(0)) // file_size, unused by Decode
	buf.Write(u32le(7)) // mask_id
	buf.Write(u16le(width))
	buf.Write(u16le(height))

	dataOffset := uint32(headerSize)
	buf.Write(u32le(dataOffset))
	buf.Write(u32le(uint32(dataSection.Len())))
	verticesOffset := dataOffset + uint32(dataSection.Len())
	buf.Write(u32le(verticesOffset))
	buf.Write(u32le(uint32(len(vertices))))

	buf.Write(dataSection.Bytes())
	buf.Write(vertices)
	return buf.Bytes()
}

func TestDecodeRawTexels(t *testing.T) {
	width, height := uint16(8), uint16(2)
	stride := int(padTo16(uint32(width)))
	texels := make([]byte, stride*int(height))
	for i := range texels {
		texels[i] = byte(i)
	}
	file := buildMask(t, width, height, texels, []byte{0xAA, 0xBB})

	tex, err := Decode(file)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tex.ID != 7 || tex.Width != 8 || tex.Height != 2 {
		t.Fatalf("got %+v", tex)
	}
	if !bytes.Equal(tex.Texels, texels) {
		t.Errorf("texels = % x, want % x", tex.Texels, texels)
	}
	if !bytes.Equal(tex.VerticesRaw, []byte{0xAA, 0xBB}) {
		t.Errorf("vertices = % x", tex.VerticesRaw)
	}
	if tex.At(3, 1) != texels[1*tex.Stride+3] {
		t.Errorf("At(3,1) mismatch")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	bad := make([]byte, headerSize)
	copy(bad, "NOPE")
	if _, err := Decode(bad); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
