package vm

import (
	"bytes"
	"fmt"

	"github.com/DCNick3/shin-go/format/scenario"
)

// Program is the decoded, addressable code section an Interpreter steps
// through. Addresses are byte offsets into Code, matching the scenario
// format's convention that jump targets are absolute-from-code-start
// offsets baked into the bytecode by the original compiler.
type Program struct {
	Code []byte
}

// codeCursor is a seekable io.ByteReader over a Program's code, letting
// ReadInstruction consume bytes while the interpreter tracks PC itself
// (rather than trusting the cursor's internal position, since jumps need to
// reset position to an arbitrary target).
type codeCursor struct {
	code []byte
	pos  int
}

func (c *codeCursor) ReadByte() (byte, error) {
	if c.pos >= len(c.code) {
		return 0, fmt.Errorf("vm: read past end of code section")
	}
	b := c.code[c.pos]
	c.pos++
	return b, nil
}

// Signal is returned from Step when it decodes an engine-command
// instruction (opcode >= 0x51) instead of a control-ISA one. The command
// layer (package command) is responsible for interpreting CommandOp and,
// once it completes, resuming the interpreter from the already-advanced PC.
type Signal struct {
	Instruction scenario.Instruction
}

// Interpreter runs the fetch-decode-execute loop against a Program and a
// State. It owns no I/O and no command dispatch: those live in package
// command. The caller drives Step in a loop and hands each Signal it
// returns to command.Decode.
type Interpreter struct {
	prog  *Program
	state *State
}

// New returns an Interpreter over prog starting execution at entryPoint.
func New(prog *Program, state *State, entryPoint uint32) *Interpreter {
	state.PC = entryPoint
	return &Interpreter{prog: prog, state: state}
}

// State exposes the interpreter's register/stack state for inspection (e.g.
// by the command layer resolving a command's own NumberSpec arguments) and
// for save/load.
func (in *Interpreter) State() *State { return in.state }

// CommandArgs returns a reader positioned right after the command opcode
// byte a Signal was just raised for, so the command layer can decode its
// opcode-specific operand payload (NumberSpecs, strings, raw bytes) with
// the same ReadNumberSpec/ReadSJisString helpers the control ISA uses.
// Pair with Commit once decoding is done.
func (in *Interpreter) CommandArgs() *bytes.Reader {
	return bytes.NewReader(in.prog.Code[in.state.PC:])
}

// Commit advances PC past whatever args was read from, so the next Step
// resumes immediately after the command's operand bytes.
func (in *Interpreter) Commit(args *bytes.Reader) {
	consumed := len(in.prog.Code[in.state.PC:]) - args.Len()
	in.state.PC += uint32(consumed)
}

// Step decodes and executes control-ISA instructions starting at the
// current PC until it either decodes an engine-command instruction (which
// it returns as a Signal without executing) or hits a fatal *Error.
func (in *Interpreter) Step() (*Signal, error) {
	for {
		cur := &codeCursor{code: in.prog.Code, pos: int(in.state.PC)}
		inst, err := scenario.ReadInstruction(cur)
		if err != nil {
			return nil, fmt.Errorf("vm: decode at pc=%d: %w", in.state.PC, err)
		}
		in.state.PC = uint32(cur.pos)

		if inst.CommandOp != 0 {
			return &Signal{Instruction: inst}, nil
		}

		halt, err := in.execute(inst)
		if err != nil {
			return nil, err
		}
		if halt {
			return nil, nil
		}
	}
}

// execute runs one decoded control-ISA instruction, returning halt=true
// only for OpReturn at the outermost call depth (scenario end).
func (in *Interpreter) execute(inst scenario.Instruction) (halt bool, err error) {
	s := in.state
	switch inst.Op {
	case scenario.OpUnaryOperation:
		src := s.Get(inst.UnaryOp.Source)
		if err := s.Set(scenario.RegSpec(inst.UnaryOp.Destination), inst.UnaryOp.Apply(src)); err != nil {
			return false, err
		}
	case scenario.OpBinaryOperation:
		left := s.Get(inst.BinaryOp.Left)
		right := s.Get(inst.BinaryOp.Right)
		v, err := inst.BinaryOp.Eval(left, right)
		if err != nil {
			return false, fault(KindBadRegister, "%v", err)
		}
		if err := s.Set(scenario.RegSpec(inst.BinaryOp.Destination), v); err != nil {
			return false, err
		}
	case scenario.OpExpression:
		v, err := inst.Expr.Eval(s.Get)
		if err != nil {
			return false, fault(KindBadRegister, "%v", err)
		}
		if err := s.pushValue(v); err != nil {
			return false, err
		}
	case scenario.OpJumpCond:
		a := s.Get(inst.BinaryOp.Left)
		b := s.Get(inst.BinaryOp.Right)
		if inst.Cond.Eval(a, b) {
			s.PC = uint32(s.Get(inst.Target))
		}
	case scenario.OpJump:
		s.PC = uint32(s.Get(inst.Target))
	case scenario.OpGosub:
		if err := s.pushCall(frame{returnAddr: s.PC}); err != nil {
			return false, err
		}
		s.PC = uint32(s.Get(inst.Target))
	case scenario.OpReturnSub:
		f, err := s.popCall()
		if err != nil {
			return false, err
		}
		s.PC = f.returnAddr
	case scenario.OpJumpTable:
		s.jumpTable = inst.JumpTable
	case scenario.OpComputedJump:
		idx := int(s.Get(inst.JumpTableSpec))
		if idx < 0 || idx >= len(s.jumpTable) {
			return false, fault(KindBadRegister, "computed jump index %d out of range (table has %d entries)", idx, len(s.jumpTable))
		}
		s.PC = s.jumpTable[idx].Address
	case scenario.OpRandom:
		max := s.Get(inst.RandomMax)
		var v int32
		if max > 0 {
			v = int32(s.rng.IntN(int(max)))
		}
		s.SetRegister(inst.RandomDest, v)
	case scenario.OpPush:
		if err := s.pushValue(s.Get(inst.StackValue)); err != nil {
			return false, err
		}
	case scenario.OpPop:
		if _, err := s.popValue(); err != nil {
			return false, err
		}
	case scenario.OpCall:
		// Unlike gosub, call carries no inline target operand: it takes its
		// destination from the top of the value stack, pushed there by a
		// preceding `push`/`exp`.
		target, err := s.popValue()
		if err != nil {
			return false, err
		}
		if err := s.pushCall(frame{returnAddr: s.PC}); err != nil {
			return false, err
		}
		s.PC = uint32(target)
	case scenario.OpReturn:
		if len(s.callStack) == 0 {
			return true, nil
		}
		f, err := s.popCall()
		if err != nil {
			return false, err
		}
		s.PC = f.returnAddr
	default:
		return false, fault(KindUnknownOpcode, "opcode 0x%02x", byte(inst.Op))
	}
	return false, nil
}
