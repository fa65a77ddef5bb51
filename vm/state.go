// Package vm executes decoded scenario bytecode: register/global state, the
// call stack, and the fetch-decode-execute loop. It stops and hands control
// back to the caller whenever it decodes an engine-command instruction,
// which belongs to package command rather than to the control ISA here.
package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/DCNick3/shin-go/format/scenario"
)

const (
	numRRegisters = 4096
	numARegisters = 16
	numGlobals    = 256
	maxCallDepth  = 64
	maxValueStack = 256
)

// Kind names the class of fatal error that halts the interpreter.
type Kind int

const (
	KindStackOverflow Kind = iota
	KindStackUnderflow
	KindUnknownOpcode
	KindBadRegister
)

func (k Kind) String() string {
	switch k {
	case KindStackOverflow:
		return "stack overflow"
	case KindStackUnderflow:
		return "stack underflow"
	case KindUnknownOpcode:
		return "unknown opcode"
	case KindBadRegister:
		return "bad register"
	default:
		return "vm error"
	}
}

// Error is a fatal VM fault. Unlike codec or asset errors, an Error always
// halts the owning Interpreter — there is no recoverable path.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("vm: %s: %s", e.Kind, e.Msg) }

func fault(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// frame is one call-stack entry pushed by `gosub`/`call` and popped by
// `retsub`/`return`.
type frame struct {
	returnAddr uint32
}

// State holds all mutable interpreter state: registers, the call stack, the
// value stack used by `push`/`pop`, and the global slots shared across
// scenario loads (save/load persists Globals verbatim).
type State struct {
	R       [numRRegisters]int32
	A       [numARegisters]int32
	Globals [numGlobals]int32

	callStack  []frame
	valueStack []int32
	jumpTable  []scenario.JumpTableEntry

	rng *rand.Rand

	PC uint32
}

// NewState returns a State with all registers zeroed and a PRNG seeded from
// seed (deterministic, for reproducible playback/replay).
func NewState(seed uint64) *State {
	return &State{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Get resolves a NumberSpec to a concrete value against this State's
// registers; literals pass through unchanged.
func (s *State) Get(n scenario.NumberSpec) int32 {
	if !n.IsRegister {
		return n.Literal
	}
	return s.GetRegister(n.Reg)
}

// GetRegister reads one register by kind/index.
func (s *State) GetRegister(r scenario.Register) int32 {
	switch r.Kind {
	case scenario.RegA:
		return s.A[int(r.Index)%numARegisters]
	default:
		return s.R[int(r.Index)%numRRegisters]
	}
}

// SetRegister writes one register by kind/index.
func (s *State) SetRegister(r scenario.Register, v int32) {
	switch r.Kind {
	case scenario.RegA:
		s.A[int(r.Index)%numARegisters] = v
	default:
		s.R[int(r.Index)%numRRegisters] = v
	}
}

// Set writes v to the register n refers to; n must be a register spec.
func (s *State) Set(n scenario.NumberSpec, v int32) error {
	if !n.IsRegister {
		return fault(KindBadRegister, "cannot write to a literal NumberSpec")
	}
	s.SetRegister(n.Reg, v)
	return nil
}

func (s *State) pushCall(f frame) error {
	if len(s.callStack) >= maxCallDepth {
		return fault(KindStackOverflow, "call stack depth %d exceeded", maxCallDepth)
	}
	s.callStack = append(s.callStack, f)
	return nil
}

func (s *State) popCall() (frame, error) {
	if len(s.callStack) == 0 {
		return frame{}, fault(KindStackUnderflow, "retsub/return with empty call stack")
	}
	f := s.callStack[len(s.callStack)-1]
	s.callStack = s.callStack[:len(s.callStack)-1]
	return f, nil
}

func (s *State) pushValue(v int32) error {
	if len(s.valueStack) >= maxValueStack {
		return fault(KindStackOverflow, "value stack depth %d exceeded", maxValueStack)
	}
	s.valueStack = append(s.valueStack, v)
	return nil
}

func (s *State) popValue() (int32, error) {
	if len(s.valueStack) == 0 {
		return 0, fault(KindStackUnderflow, "pop with empty value stack")
	}
	v := s.valueStack[len(s.valueStack)-1]
	s.valueStack = s.valueStack[:len(s.valueStack)-1]
	return v, nil
}
