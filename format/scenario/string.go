package scenario

import (
	"io"

	"github.com/DCNick3/shin-go/format/text"
)

// ReadSJisString, WriteSJisString, ReadStringArray, and WriteStringArray
// decode/encode the Shift-JIS string tables scenario bytecode embeds
// (instruction string operands, jump-table labels). The codec itself lives
// in format/text, since it's shared with anything else that reads the
// engine's Shift-JIS strings, not just scenario bytecode; these are thin
// re-exports so scenario's own decoders don't need an extra import alias.
func ReadSJisString(r io.Reader) (string, error) { return text.ReadSJisString(r) }

func WriteSJisString(w io.Writer, s string) error { return text.WriteSJisString(w, s) }

func ReadStringArray(r io.Reader) ([]string, error) { return text.ReadStringArray(r) }

func WriteStringArray(w io.Writer, xs []string) error { return text.WriteStringArray(w, xs) }
