package scenario

import (
	"fmt"
	"io"
)

// Opcode is the first byte of an Instruction. Values 0x40 through 0x50 are
// the fixed control set; 0x43 and 0x4b are reserved (never emitted); everything
// from 0x51 up indexes into the command dispatch table built at decode time
// and is carried as a CommandOp.
type Opcode uint8

const (
	OpUnaryOperation  Opcode = 0x40
	OpBinaryOperation Opcode = 0x41
	OpExpression      Opcode = 0x42
	OpJumpTable       Opcode = 0x44 // `gt`: defines a table of code addresses
	OpJumpCond        Opcode = 0x46
	OpJump            Opcode = 0x47
	OpGosub           Opcode = 0x48
	OpReturnSub       Opcode = 0x49
	OpComputedJump    Opcode = 0x4a // `jt`: jump via NumberSpec index into the table
	OpRandom          Opcode = 0x4c
	OpPush            Opcode = 0x4d
	OpPop             Opcode = 0x4e
	OpCall            Opcode = 0x4f
	OpReturn          Opcode = 0x50
	opCommandBase     Opcode = 0x51
)

// BinaryOperationType mirrors ExpressionTerm's binary operator set for the
// two-operand `bo` instruction, which writes its result to a register
// rather than leaving it on an expression stack.
type BinaryOperationType = ExpressionTerm

// BinaryOperation is a `bo` instruction body: destination register plus two
// source NumberSpecs and the operator to combine them with.
type BinaryOperation struct {
	Destination Register
	Op          BinaryOperationType
	Left        NumberSpec
	Right       NumberSpec
}

func readBinaryOperation(r io.ByteReader) (BinaryOperation, error) {
	destSpec, err := ReadNumberSpec(r)
	if err != nil {
		return BinaryOperation{}, err
	}
	if !destSpec.IsRegister {
		return BinaryOperation{}, fmt.Errorf("scenario: bo destination must be a register")
	}
	opByte, err := r.ReadByte()
	if err != nil {
		return BinaryOperation{}, err
	}
	left, err := ReadNumberSpec(r)
	if err != nil {
		return BinaryOperation{}, err
	}
	right, err := ReadNumberSpec(r)
	if err != nil {
		return BinaryOperation{}, err
	}
	return BinaryOperation{Destination: destSpec.Reg, Op: BinaryOperationType(opByte), Left: left, Right: right}, nil
}

// Eval combines the two resolved source values per Op.
func (b BinaryOperation) Eval(left, right int32) (int32, error) {
	expr := Expression{Terms: []ExpressionOp{
		{Term: TermPush, Value: Lit(left)},
		{Term: TermPush, Value: Lit(right)},
		{Term: b.Op},
	}}
	return expr.Eval(func(ns NumberSpec) int32 { return ns.Literal })
}

// JumpTableEntry is one `gt` row: a Pad4-forced 4-byte code address.
type JumpTableEntry struct {
	Address uint32
}

func readPad4Address(r io.ByteReader) (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (8 * i)
	}
	return v, nil
}

// Instruction is one decoded bytecode instruction. Exactly one of the typed
// fields is populated, selected by Op.
type Instruction struct {
	Op Opcode

	UnaryOp  UnaryOperation
	BinaryOp BinaryOperation
	Expr     Expression

	JumpTable     []JumpTableEntry // OpJumpTable ('gt')
	JumpTableSpec NumberSpec       // OpComputedJump ('jt'): index into JumpTable

	Cond   JumpCond   // OpJumpCond
	Target NumberSpec // OpJumpCond, OpJump, OpGosub: destination address

	RandomDest Register   // OpRandom
	RandomMax  NumberSpec // OpRandom

	StackValue NumberSpec // OpPush

	CommandOp  Opcode // opCommandBase and above: raw opcode for dispatch
	CommandRaw []byte // not set by ReadInstruction; the command layer re-reads the payload itself
}

// ReadInstruction decodes one instruction from r. For command opcodes
// (>= 0x51) only the opcode itself is consumed here; the command layer
// (package command) re-reads the operand payload using the per-command
// argument tables it owns, since those are engine-call specific rather than
// part of the fixed control ISA.
func ReadInstruction(r io.ByteReader) (Instruction, error) {
	opByte, err := r.ReadByte()
	if err != nil {
		return Instruction{}, fmt.Errorf("scenario: read opcode: %w", err)
	}
	op := Opcode(opByte)

	switch op {
	case OpUnaryOperation:
		uo, err := ReadUnaryOperation(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, UnaryOp: uo}, nil
	case OpBinaryOperation:
		bo, err := readBinaryOperation(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, BinaryOp: bo}, nil
	case OpExpression:
		expr, err := ReadExpression(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Expr: expr}, nil
	case OpJumpTable:
		count, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		n := int(count.Literal)
		if n < 0 || n > 1<<16 {
			return Instruction{}, fmt.Errorf("scenario: implausible jump table length %d", n)
		}
		entries := make([]JumpTableEntry, n)
		for i := range entries {
			addr, err := readPad4Address(r)
			if err != nil {
				return Instruction{}, err
			}
			entries[i] = JumpTableEntry{Address: addr}
		}
		return Instruction{Op: op, JumpTable: entries}, nil
	case OpComputedJump:
		idx, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, JumpTableSpec: idx}, nil
	case OpJumpCond:
		cond, err := ReadJumpCond(r)
		if err != nil {
			return Instruction{}, err
		}
		a, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		b, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		target, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		inst := Instruction{Op: op, Cond: cond, Target: target}
		inst.BinaryOp = BinaryOperation{Left: a, Right: b}
		return inst, nil
	case OpJump, OpGosub:
		target, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Target: target}, nil
	case OpReturnSub, OpPop, OpCall, OpReturn:
		return Instruction{Op: op}, nil
	case OpRandom:
		destSpec, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		if !destSpec.IsRegister {
			return Instruction{}, fmt.Errorf("scenario: rnd destination must be a register")
		}
		max, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, RandomDest: destSpec.Reg, RandomMax: max}, nil
	case OpPush:
		val, err := ReadNumberSpec(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, StackValue: val}, nil
	case 0x43, 0x4b:
		return Instruction{}, fmt.Errorf("scenario: reserved opcode 0x%02x", opByte)
	default:
		if op < opCommandBase {
			return Instruction{}, fmt.Errorf("scenario: unknown control opcode 0x%02x", opByte)
		}
		return Instruction{Op: op, CommandOp: op}, nil
	}
}
