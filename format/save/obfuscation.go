// Package save implements the savedata container format: a two-pass
// XOR-with-rolling-key obfuscation over 4-byte big-endian words, with a
// trailing CRC32 checksum of the plaintext.
package save

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// decodeOnePass reverses one XOR-with-rolling-key pass: each 4-byte
// big-endian word is XORed with the current key, then the key is XORed
// with the CRC32 of the encrypted word (the word as read, taken as 4
// little-endian bytes) for the next word.
func decodeOnePass(data []byte, key uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		word := binary.BigEndian.Uint32(data[i : i+4])
		binary.BigEndian.PutUint32(data[i:i+4], word^key)
		key ^= crc32.ChecksumIEEE(binary.LittleEndian.AppendUint32(nil, word))
	}
}

// encodeOnePass is the inverse of decodeOnePass: the key rolls from each
// encrypted word, which on this side is the result of the XOR.
func encodeOnePass(data []byte, key uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		word := binary.BigEndian.Uint32(data[i:i+4]) ^ key
		binary.BigEndian.PutUint32(data[i:i+4], word)
		key ^= crc32.ChecksumIEEE(binary.LittleEndian.AppendUint32(nil, word))
	}
}

// Decode reverses the savedata obfuscation: an inner pass keyed by the CRC32
// of the plaintext (recovered from the trailing checksum) and an outer pass
// keyed by the caller-supplied game key. Returns the inner plaintext with
// the trailing CRC32 already verified and stripped.
func Decode(data []byte, key uint32) ([]byte, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("save: obfuscated body length %d is not a positive multiple of 4", len(data))
	}

	outer := make([]byte, len(data))
	copy(outer, data)
	decodeOnePass(outer, key)

	body := outer[:len(outer)-4]
	trailerBytes := outer[len(outer)-4:]
	wantCRC := binary.BigEndian.Uint32(trailerBytes)

	inner := make([]byte, len(body))
	copy(inner, body)
	decodeOnePass(inner, wantCRC)

	gotCRC := crc32.ChecksumIEEE(inner)
	if gotCRC != wantCRC {
		return nil, fmt.Errorf("save: %w", ErrChecksumMismatch)
	}
	return inner, nil
}

// Encode produces the obfuscated form of plaintext: plaintext padded to a
// multiple of 4 bytes, obfuscated with an inner pass keyed by its own CRC32,
// followed by that CRC32 as a 4-byte trailer, then obfuscated again with an
// outer pass keyed by key.
func Encode(plaintext []byte, key uint32) []byte {
	padded := make([]byte, (len(plaintext)+3)&^3)
	copy(padded, plaintext)

	crc := crc32.ChecksumIEEE(padded)

	inner := make([]byte, len(padded))
	copy(inner, padded)
	encodeOnePass(inner, crc)

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], crc)

	out := append(inner, trailer[:]...)
	encodeOnePass(out, key)
	return out
}

// ErrChecksumMismatch is returned by Decode when the inner CRC32 trailer
// doesn't match the recovered plaintext, meaning the data was tampered with
// or the wrong key was supplied.
var ErrChecksumMismatch = fmt.Errorf("checksum mismatch")

// KeyFromSeed derives the game-specific outer key from a human-readable
// seed string, for titles that key savedata off a name rather than a raw
// u32 constant.
func KeyFromSeed(seed string) uint32 {
	return crc32.ChecksumIEEE([]byte(seed))
}
