// Package text implements the Shift-JIS string codec the scenario format's
// string tables and engine-command text operands are built on, plus the
// StringArray encoding shared by both.
package text

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"
)

// ReadSJisString reads a u16-length-prefixed, null-terminated Shift-JIS
// string and decodes it to a Go string. The length counts encoded bytes
// including the trailing NUL.
func ReadSJisString(r io.Reader) (string, error) {
	s, err := readSJisString(r)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("text: zero-length string (terminator is length 1, a lone NUL)")
	}
	return s, nil
}

// WriteSJisString encodes s to Shift-JIS, appends a NUL terminator, and
// writes the u16 length prefix (length includes the terminator).
func WriteSJisString(w io.Writer, s string) error {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(s)
	if err != nil {
		return fmt.Errorf("text: shift-jis encode: %w", err)
	}
	body := append([]byte(encoded), 0)
	n := len(body)
	if n > 0xFFFF {
		return fmt.Errorf("text: encoded string too long (%d bytes)", n)
	}
	if _, err := w.Write([]byte{byte(n), byte(n >> 8)}); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// ReadStringArray decodes a sequence of SJIS strings terminated by a
// length-1 entry holding a lone NUL byte (which decodes to ""); an empty
// array is just that terminator on its own, encoding to `01 00 00`.
func ReadStringArray(r io.Reader) ([]string, error) {
	var out []string
	for {
		s, err := readSJisString(r)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return out, nil
		}
		out = append(out, s)
	}
}

// WriteStringArray encodes xs followed by the length-1 NUL terminator.
func WriteStringArray(w io.Writer, xs []string) error {
	for _, s := range xs {
		if err := WriteSJisString(w, s); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{0x01, 0x00, 0x00})
	return err
}

func readSJisString(r io.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", fmt.Errorf("text: read string length: %w", err)
	}
	n := int(lenBuf[0]) | int(lenBuf[1])<<8
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", fmt.Errorf("text: read string body: %w", err)
	}
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return "", nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("text: shift-jis decode: %w", err)
	}
	return string(decoded), nil
}
