package scenario

import (
	"fmt"
	"io"
)

// JumpCondType names the eight comparisons a `jc` instruction can perform.
type JumpCondType uint8

const (
	JumpEqual JumpCondType = iota
	JumpNotEqual
	JumpGreaterEqual
	JumpGreater
	JumpLessEqual
	JumpLess
	JumpAndNonzero
	JumpBitSet
)

const jumpCondNegateBit = 0x80

// JumpCond is a `jc` comparator: a JumpCondType plus a negation flag, packed
// into a single byte with bit 0x80 as the negation flag.
type JumpCond struct {
	Type    JumpCondType
	Negated bool
}

// ReadJumpCond decodes one byte into a JumpCond.
func ReadJumpCond(r io.ByteReader) (JumpCond, error) {
	b, err := r.ReadByte()
	if err != nil {
		return JumpCond{}, fmt.Errorf("scenario: read jump cond: %w", err)
	}
	t := JumpCondType(b &^ jumpCondNegateBit)
	if t > JumpBitSet {
		return JumpCond{}, fmt.Errorf("scenario: invalid jump cond type %d", t)
	}
	return JumpCond{Type: t, Negated: b&jumpCondNegateBit != 0}, nil
}

// WriteJumpCond encodes c back to its single byte form.
func WriteJumpCond(w io.ByteWriter, c JumpCond) error {
	b := byte(c.Type)
	if c.Negated {
		b |= jumpCondNegateBit
	}
	return w.WriteByte(b)
}

// Eval applies the comparison to (a, b), honoring the negation flag.
func (c JumpCond) Eval(a, b int32) bool {
	var v bool
	switch c.Type {
	case JumpEqual:
		v = a == b
	case JumpNotEqual:
		v = a != b
	case JumpGreaterEqual:
		v = a >= b
	case JumpGreater:
		v = a > b
	case JumpLessEqual:
		v = a <= b
	case JumpLess:
		v = a < b
	case JumpAndNonzero:
		v = a&b != 0
	case JumpBitSet:
		v = a&(1<<uint32(b)) != 0
	}
	if c.Negated {
		return !v
	}
	return v
}
