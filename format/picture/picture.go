// Package picture decodes the PIC sub-block container shared by the
// picture, bustup and texture-archive formats: a list of origin-positioned
// blocks, each optionally LZ77-compressed, each carrying the opaque/
// transparent rectangle list the compositor uses to skip fully-transparent
// regions.
package picture

import (
	"encoding/binary"
	"fmt"

	"github.com/DCNick3/shin-go/format/lz77"
)

const windowBits = 12

// Rect is an opaque or transparent rectangle used at composition time to
// discard fully-transparent pixels without touching them.
type Rect struct {
	X, Y, Width, Height uint32
	Opaque              bool
}

// Block is one decoded sub-picture: pixel data positioned at (OriginX,
// OriginY) in the composed image, plus its opacity rectangle list.
type Block struct {
	OriginX, OriginY uint32
	Width, Height    uint32
	Pixels           []byte // RGBA8, row-major, Width*Height*4 bytes
	Rects            []Rect
}

// Picture is a full decoded container: every block plus the canvas size
// they compose onto.
type Picture struct {
	CanvasWidth, CanvasHeight uint32
	Blocks                    []Block
}

var magic = [4]byte{'P', 'I', 'C', '4'}

// Decode parses a complete PIC container from data.
func Decode(data []byte) (*Picture, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("picture: file too short")
	}
	if string(data[:4]) != string(magic[:]) {
		return nil, fmt.Errorf("picture: bad magic % x", data[:4])
	}
	canvasW := binary.LittleEndian.Uint32(data[4:8])
	canvasH := binary.LittleEndian.Uint32(data[8:12])
	blockCount := binary.LittleEndian.Uint32(data[12:16])

	pos := 16
	blocks := make([]Block, blockCount)
	for i := range blocks {
		b, next, err := DecodeBlockAt(data, pos)
		if err != nil {
			return nil, fmt.Errorf("picture: block %d: %w", i, err)
		}
		blocks[i] = b
		pos = next
	}

	return &Picture{CanvasWidth: canvasW, CanvasHeight: canvasH, Blocks: blocks}, nil
}

// DecodeBlockAt decodes one Block starting at byte offset pos in data,
// returning it along with the offset immediately following it. Exported so
// texarchive (a sibling container format using the same block encoding) can
// reuse it without duplicating the layout.
func DecodeBlockAt(data []byte, pos int) (Block, int, error) {
	if pos+24 > len(data) {
		return Block{}, 0, fmt.Errorf("truncated block header")
	}
	originX := binary.LittleEndian.Uint32(data[pos : pos+4])
	originY := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
	width := binary.LittleEndian.Uint32(data[pos+8 : pos+12])
	height := binary.LittleEndian.Uint32(data[pos+12 : pos+16])
	compressedSize := binary.LittleEndian.Uint32(data[pos+16 : pos+20])
	rectCount := binary.LittleEndian.Uint32(data[pos+20 : pos+24])
	pos += 24

	rawSize := int(width) * int(height) * 4
	var pixels []byte
	if compressedSize == 0 {
		if pos+rawSize > len(data) {
			return Block{}, 0, fmt.Errorf("truncated raw pixel data")
		}
		pixels = append([]byte(nil), data[pos:pos+rawSize]...)
		pos += rawSize
	} else {
		if pos+int(compressedSize) > len(data) {
			return Block{}, 0, fmt.Errorf("truncated compressed pixel data")
		}
		decoded, err := lz77.Decompress(data[pos:pos+int(compressedSize)], rawSize, windowBits)
		if err != nil {
			return Block{}, 0, fmt.Errorf("decompress pixels: %w", err)
		}
		pixels = decoded
		pos += int(compressedSize)
	}

	rects := make([]Rect, rectCount)
	for i := range rects {
		if pos+17 > len(data) {
			return Block{}, 0, fmt.Errorf("truncated rect %d", i)
		}
		rects[i] = Rect{
			X:      binary.LittleEndian.Uint32(data[pos : pos+4]),
			Y:      binary.LittleEndian.Uint32(data[pos+4 : pos+8]),
			Width:  binary.LittleEndian.Uint32(data[pos+8 : pos+12]),
			Height: binary.LittleEndian.Uint32(data[pos+12 : pos+16]),
			Opaque: data[pos+16] != 0,
		}
		pos += 17
	}

	return Block{OriginX: originX, OriginY: originY, Width: width, Height: height, Pixels: pixels, Rects: rects}, pos, nil
}
