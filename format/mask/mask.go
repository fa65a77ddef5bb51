// Package mask decodes the MSK mask-wipe texture format: an 8-bit
// grayscale texel grid used by masked layer wipes.
package mask

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/DCNick3/shin-go/format/lz77"
)

var magic = [4]byte{'M', 'S', 'K', '4'}

const maskWindowBits = 12

// headerSize is magic(4) + version(4) + file_size(4) + mask_id(4) +
// width(2) + height(2) + data_offset(4) + data_size(4) + vertices_data(4) +
// vertices_size(4).
const headerSize = 4 + 4 + 4 + 4 + 2 + 2 + 4 + 4 + 4 + 4

// Texture is a decoded mask: a Width x Height grid of single-byte alpha
// texels, row stride padded up to a multiple of 16 bytes. VerticesRaw
// carries the format's vertex-region payload unparsed, matching the
// original engine's own scope (it reads the byte range but never
// interprets it).
type Texture struct {
	ID          uint32
	Width       uint32
	Height      uint32
	Stride      uint32
	Texels      []byte // Height * Stride bytes
	VerticesRaw []byte
}

// At returns the texel value at (x, y).
func (t *Texture) At(x, y uint32) byte {
	return t.Texels[y*t.Stride+x]
}

func padTo16(n uint32) uint32 {
	return (n + 15) &^ 15
}

// Decode parses a whole MSK4 mask file. Unlike a pure io.Reader codec, mask
// offsets are absolute from file start (the original format's data/vertex
// sections aren't necessarily contiguous with the header), so Decode needs
// random access over the complete file contents.
func Decode(data []byte) (*Texture, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("mask: file too short for header (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("mask: bad magic % x", data[:4])
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 1 {
		return nil, fmt.Errorf("mask: unsupported version %d", version)
	}

	maskID := binary.LittleEndian.Uint32(data[12:16])
	width := uint32(binary.LittleEndian.Uint16(data[16:18]))
	height := uint32(binary.LittleEndian.Uint16(data[18:20]))
	dataOffset := binary.LittleEndian.Uint32(data[20:24])
	dataSize := binary.LittleEndian.Uint32(data[24:28])
	verticesOffset := binary.LittleEndian.Uint32(data[28:32])
	verticesSize := binary.LittleEndian.Uint32(data[32:36])

	if uint64(dataOffset)+uint64(dataSize) > uint64(len(data)) {
		return nil, fmt.Errorf("mask: texel data range out of bounds")
	}
	texelSection := data[dataOffset : dataOffset+dataSize]

	texels, err := decodeTexels(texelSection, width, height)
	if err != nil {
		return nil, err
	}

	var verticesRaw []byte
	if verticesSize > 0 {
		if uint64(verticesOffset)+uint64(verticesSize) > uint64(len(data)) {
			return nil, fmt.Errorf("mask: vertex data range out of bounds")
		}
		verticesRaw = append([]byte(nil), data[verticesOffset:verticesOffset+verticesSize]...)
	}

	stride := padTo16(width)
	return &Texture{
		ID:          maskID,
		Width:       width,
		Height:      height,
		Stride:      stride,
		Texels:      texels,
		VerticesRaw: verticesRaw,
	}, nil
}

// decodeTexels reads the u32 compressed-size prefix and either LZ77-inflates
// or (when the size is 0) takes the remaining bytes as already-raw texels.
func decodeTexels(section []byte, width, height uint32) ([]byte, error) {
	if len(section) < 4 {
		return nil, fmt.Errorf("mask: texel section too short")
	}
	compressedSize := binary.LittleEndian.Uint32(section[:4])
	rest := section[4:]
	stride := padTo16(width)
	wantSize := int(stride * height)

	if compressedSize == 0 {
		if len(rest) != wantSize {
			return nil, fmt.Errorf("mask: raw texel size %d, want %d", len(rest), wantSize)
		}
		return append([]byte(nil), rest...), nil
	}
	if int(compressedSize) > len(rest) {
		return nil, fmt.Errorf("mask: compressed size %d exceeds available %d bytes", compressedSize, len(rest))
	}
	out, err := lz77.Decompress(rest[:compressedSize], wantSize, maskWindowBits)
	if err != nil {
		return nil, fmt.Errorf("mask: decompress texels: %w", err)
	}
	return out, nil
}
