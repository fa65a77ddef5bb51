package scenario

import (
	"fmt"
	"io"
)

// UnaryOperationType names the transform a `uo` instruction applies.
type UnaryOperationType uint8

const (
	UnaryZero     UnaryOperationType = iota // destination <- 0, source unused
	UnaryNegate                             // destination <- -source
	UnaryNot                                // destination <- source == 0
	UnaryAbs                                // destination <- abs(source)
	UnaryIdentity                           // destination <- source
)

const unarySeparateSourceBit = 0x80

// UnaryOperation is a `uo` instruction body: a destination register, an
// operation type, and a source NumberSpec. The encoding packs a
// "separate source" flag into the type byte: when clear, the source
// NumberSpec is omitted from the stream and implicitly aliases the
// destination register (reading it back in as the operand).
type UnaryOperation struct {
	Destination    Register
	Type           UnaryOperationType
	SeparateSource bool
	Source         NumberSpec
}

// ReadUnaryOperation decodes a destination register followed by the packed
// type/source-flag byte, and then the source NumberSpec only if the
// separate-source bit is set.
func ReadUnaryOperation(r io.ByteReader) (UnaryOperation, error) {
	destSpec, err := ReadNumberSpec(r)
	if err != nil {
		return UnaryOperation{}, fmt.Errorf("scenario: read uo destination: %w", err)
	}
	if !destSpec.IsRegister {
		return UnaryOperation{}, fmt.Errorf("scenario: uo destination must be a register")
	}

	tb, err := r.ReadByte()
	if err != nil {
		return UnaryOperation{}, fmt.Errorf("scenario: read uo type byte: %w", err)
	}
	op := UnaryOperation{
		Destination:    destSpec.Reg,
		Type:           UnaryOperationType(tb &^ unarySeparateSourceBit),
		SeparateSource: tb&unarySeparateSourceBit != 0,
	}
	if op.Type > UnaryIdentity {
		return UnaryOperation{}, fmt.Errorf("scenario: invalid unary operation type %d", op.Type)
	}

	if op.SeparateSource {
		src, err := ReadNumberSpec(r)
		if err != nil {
			return UnaryOperation{}, fmt.Errorf("scenario: read uo source: %w", err)
		}
		op.Source = src
	} else {
		op.Source = RegSpec(op.Destination)
	}
	return op, nil
}

// Apply evaluates the operation given the resolved source value.
func (op UnaryOperation) Apply(src int32) int32 {
	switch op.Type {
	case UnaryZero:
		return 0
	case UnaryNegate:
		return -src
	case UnaryNot:
		return boolInt(src == 0)
	case UnaryAbs:
		if src < 0 {
			return -src
		}
		return src
	case UnaryIdentity:
		return src
	default:
		return src
	}
}
