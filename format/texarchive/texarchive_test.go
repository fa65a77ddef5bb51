package texarchive

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func u16(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

func TestDecodeAndLookup(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write(u32(1))

	name := "button_ok"
	buf.Write(u16(uint16(len(name))))
	buf.WriteString(name)
	buf.Write(u32(0))
	buf.Write(u32(0))
	buf.Write(u32(2))
	buf.Write(u32(2))
	buf.Write(u32(0)) // compressedSize = raw
	buf.Write(u32(0)) // rect count
	buf.Write(bytes.Repeat([]byte{9}, 2*2*4))

	arc, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	block, ok := arc.Lookup("button_ok")
	if !ok {
		t.Fatal("Lookup(button_ok) not found")
	}
	if block.Width != 2 || block.Height != 2 {
		t.Errorf("got %+v", block)
	}
	if _, ok := arc.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not be found")
	}
}
