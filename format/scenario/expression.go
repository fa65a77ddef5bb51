package scenario

import (
	"fmt"
	"io"
)

// ExpressionTerm is one RPN opcode of an Expression. The byte values mirror
// the scenario format exactly, so a decoded term re-encodes to the same
// bytes it was read from.
type ExpressionTerm uint8

const (
	TermPush ExpressionTerm = 0x00 // followed by a NumberSpec, pushes its value
	TermAdd  ExpressionTerm = 0x01
	TermSub  ExpressionTerm = 0x02
	TermMul  ExpressionTerm = 0x03
	TermDiv  ExpressionTerm = 0x04
	TermMod  ExpressionTerm = 0x05
	TermAnd  ExpressionTerm = 0x08
	TermOr   ExpressionTerm = 0x09
	TermXor  ExpressionTerm = 0x0a
	TermShl  ExpressionTerm = 0x0b
	TermShr  ExpressionTerm = 0x0c
	TermShrA ExpressionTerm = 0x0d // arithmetic (sign-preserving) shift right

	TermEqual        ExpressionTerm = 0x10
	TermNotEqual     ExpressionTerm = 0x11
	TermGreaterEqual ExpressionTerm = 0x12
	TermGreater      ExpressionTerm = 0x13
	TermLessEqual    ExpressionTerm = 0x14
	TermLess         ExpressionTerm = 0x15
	TermLogicalAnd   ExpressionTerm = 0x16
	TermLogicalOr    ExpressionTerm = 0x17
	TermNot          ExpressionTerm = 0x18
	TermNegate       ExpressionTerm = 0x19
	TermAbs          ExpressionTerm = 0x1a

	TermMultiplyReal ExpressionTerm = 0x1b // fixed-point (x1000) multiply
	TermDivideReal   ExpressionTerm = 0x1c // fixed-point (x1000) divide
	TermSin          ExpressionTerm = 0x1d // angle-encoded (x1000 of a full turn)
	TermSelect       ExpressionTerm = 0x1e // ternary: cond, a, b -> cond ? a : b
	TermMax          ExpressionTerm = 0x1f

	termSentinel ExpressionTerm = 0xff
)

// Expression is a postfix (RPN) term list, decoded until the 0xFF sentinel.
type Expression struct {
	Terms []ExpressionOp
}

// ExpressionOp is one decoded term: an opcode plus its NumberSpec operand
// when the opcode is TermPush (every other term operates on the value stack
// and carries no inline operand).
type ExpressionOp struct {
	Term  ExpressionTerm
	Value NumberSpec // only meaningful when Term == TermPush
}

// ReadExpression decodes terms until the 0xFF terminator byte.
func ReadExpression(r io.ByteReader) (Expression, error) {
	var expr Expression
	for {
		b, err := r.ReadByte()
		if err != nil {
			return Expression{}, fmt.Errorf("scenario: read expression term: %w", err)
		}
		term := ExpressionTerm(b)
		if term == termSentinel {
			return expr, nil
		}
		op := ExpressionOp{Term: term}
		if term == TermPush {
			ns, err := ReadNumberSpec(r)
			if err != nil {
				return Expression{}, fmt.Errorf("scenario: read pushed value: %w", err)
			}
			op.Value = ns
		}
		expr.Terms = append(expr.Terms, op)
	}
}

// Eval reduces the expression against a stack-machine value source, where
// resolve supplies the concrete int32 for a NumberSpec (register lookups
// happen there; this function is otherwise pure arithmetic).
func (e Expression) Eval(resolve func(NumberSpec) int32) (int32, error) {
	var stack []int32
	push := func(v int32) { stack = append(stack, v) }
	pop := func() (int32, error) {
		if len(stack) == 0 {
			return 0, fmt.Errorf("scenario: expression stack underflow")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}
	binary := func(f func(a, b int32) int32) error {
		b, err := pop()
		if err != nil {
			return err
		}
		a, err := pop()
		if err != nil {
			return err
		}
		push(f(a, b))
		return nil
	}

	for _, op := range e.Terms {
		switch op.Term {
		case TermPush:
			push(resolve(op.Value))
		case TermAdd:
			if err := binary(func(a, b int32) int32 { return a + b }); err != nil {
				return 0, err
			}
		case TermSub:
			if err := binary(func(a, b int32) int32 { return a - b }); err != nil {
				return 0, err
			}
		case TermMul:
			if err := binary(func(a, b int32) int32 { return a * b }); err != nil {
				return 0, err
			}
		case TermDiv:
			if err := binary(func(a, b int32) int32 {
				if b == 0 {
					return 0
				}
				return a / b
			}); err != nil {
				return 0, err
			}
		case TermMod:
			if err := binary(func(a, b int32) int32 {
				if b == 0 {
					return 0
				}
				return a % b
			}); err != nil {
				return 0, err
			}
		case TermAnd:
			if err := binary(func(a, b int32) int32 { return a & b }); err != nil {
				return 0, err
			}
		case TermOr:
			if err := binary(func(a, b int32) int32 { return a | b }); err != nil {
				return 0, err
			}
		case TermXor:
			if err := binary(func(a, b int32) int32 { return a ^ b }); err != nil {
				return 0, err
			}
		case TermShl:
			if err := binary(func(a, b int32) int32 { return a << uint32(b) }); err != nil {
				return 0, err
			}
		case TermShr:
			if err := binary(func(a, b int32) int32 { return int32(uint32(a) >> uint32(b)) }); err != nil {
				return 0, err
			}
		case TermShrA:
			if err := binary(func(a, b int32) int32 { return a >> uint32(b) }); err != nil {
				return 0, err
			}
		case TermEqual:
			if err := binary(func(a, b int32) int32 { return boolInt(a == b) }); err != nil {
				return 0, err
			}
		case TermNotEqual:
			if err := binary(func(a, b int32) int32 { return boolInt(a != b) }); err != nil {
				return 0, err
			}
		case TermGreaterEqual:
			if err := binary(func(a, b int32) int32 { return boolInt(a >= b) }); err != nil {
				return 0, err
			}
		case TermGreater:
			if err := binary(func(a, b int32) int32 { return boolInt(a > b) }); err != nil {
				return 0, err
			}
		case TermLessEqual:
			if err := binary(func(a, b int32) int32 { return boolInt(a <= b) }); err != nil {
				return 0, err
			}
		case TermLess:
			if err := binary(func(a, b int32) int32 { return boolInt(a < b) }); err != nil {
				return 0, err
			}
		case TermLogicalAnd:
			if err := binary(func(a, b int32) int32 { return boolInt(a != 0 && b != 0) }); err != nil {
				return 0, err
			}
		case TermLogicalOr:
			if err := binary(func(a, b int32) int32 { return boolInt(a != 0 || b != 0) }); err != nil {
				return 0, err
			}
		case TermNot:
			a, err := pop()
			if err != nil {
				return 0, err
			}
			push(boolInt(a == 0))
		case TermNegate:
			a, err := pop()
			if err != nil {
				return 0, err
			}
			push(-a)
		case TermAbs:
			a, err := pop()
			if err != nil {
				return 0, err
			}
			if a < 0 {
				a = -a
			}
			push(a)
		case TermMultiplyReal:
			if err := binary(func(a, b int32) int32 { return int32(int64(a) * int64(b) / 1000) }); err != nil {
				return 0, err
			}
		case TermDivideReal:
			if err := binary(func(a, b int32) int32 {
				if b == 0 {
					return 0
				}
				return int32(int64(a) * 1000 / int64(b))
			}); err != nil {
				return 0, err
			}
		case TermSin:
			a, err := pop()
			if err != nil {
				return 0, err
			}
			push(fixedSin1000(a))
		case TermSelect:
			b, err := pop()
			if err != nil {
				return 0, err
			}
			a, err := pop()
			if err != nil {
				return 0, err
			}
			cond, err := pop()
			if err != nil {
				return 0, err
			}
			if cond != 0 {
				push(a)
			} else {
				push(b)
			}
		case TermMax:
			if err := binary(func(a, b int32) int32 {
				if a > b {
					return a
				}
				return b
			}); err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("scenario: unknown expression term 0x%02x", byte(op.Term))
		}
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("scenario: expression left %d values on stack, want 1", len(stack))
	}
	return stack[0], nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
