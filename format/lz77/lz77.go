// Package lz77 implements the sliding-window decompressor shared by the
// picture, bustup, mask and texture-archive codecs: a byte-oriented LZ77
// variant with an explicit window-size parameter (the codecs differ only in
// how many window bits they use).
package lz77

import "fmt"

// Decompress expands src (an LZ77 bitstream with a window of 2^windowBits
// bytes) into exactly outSize bytes.
//
// The stream is a sequence of 8-flag control bytes, each flag bit selecting
// either a literal byte (flag set) or a back-reference (flag clear) encoded
// as a little-endian pair: low windowBits bits are the back-distance minus
// one, the remaining bits of the 16-bit word are the match length minus
// threshold (a fixed 3-byte minimum match).
func Decompress(src []byte, outSize int, windowBits uint) ([]byte, error) {
	out := make([]byte, 0, outSize)
	pos := 0

	readByte := func() (byte, bool) {
		if pos >= len(src) {
			return 0, false
		}
		b := src[pos]
		pos++
		return b, true
	}

	for len(out) < outSize {
		flags, ok := readByte()
		if !ok {
			return nil, fmt.Errorf("lz77: truncated stream (flags) at out=%d/%d", len(out), outSize)
		}
		for bit := 0; bit < 8 && len(out) < outSize; bit++ {
			if flags&(1<<uint(bit)) != 0 {
				b, ok := readByte()
				if !ok {
					return nil, fmt.Errorf("lz77: truncated stream (literal) at out=%d/%d", len(out), outSize)
				}
				out = append(out, b)
				continue
			}

			lo, ok := readByte()
			if !ok {
				return nil, fmt.Errorf("lz77: truncated stream (match lo) at out=%d/%d", len(out), outSize)
			}
			hi, ok := readByte()
			if !ok {
				return nil, fmt.Errorf("lz77: truncated stream (match hi) at out=%d/%d", len(out), outSize)
			}
			word := uint32(lo) | uint32(hi)<<8
			windowMask := uint32(1<<windowBits) - 1
			distance := int(word&windowMask) + 1
			length := int(word>>windowBits) + 3

			start := len(out) - distance
			if start < 0 {
				return nil, fmt.Errorf("lz77: back-reference distance %d exceeds output so far (%d)", distance, len(out))
			}
			for i := 0; i < length && len(out) < outSize; i++ {
				out = append(out, out[start+i])
			}
		}
	}
	return out, nil
}
