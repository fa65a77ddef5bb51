package scenario

import (
	"bytes"
	"testing"
)

func TestReadInstructionPush(t *testing.T) {
	buf := []byte{byte(OpPush), 0x80, 0x7F}
	inst, err := ReadInstruction(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inst.Op != OpPush || inst.StackValue.Literal != 127 {
		t.Fatalf("got %+v", inst)
	}
}

func TestReadInstructionCommandOpcode(t *testing.T) {
	buf := []byte{0x51}
	inst, err := ReadInstruction(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inst.CommandOp != 0x51 {
		t.Fatalf("got %+v, want CommandOp 0x51", inst)
	}
}

func TestReadInstructionReservedOpcodeRejected(t *testing.T) {
	for _, b := range []byte{0x43, 0x4b} {
		if _, err := ReadInstruction(bytes.NewReader([]byte{b})); err == nil {
			t.Errorf("opcode 0x%02x should be rejected as reserved", b)
		}
	}
}

func TestExpressionEvalArithmetic(t *testing.T) {
	// push 3, push 4, add -> 7
	expr := Expression{Terms: []ExpressionOp{
		{Term: TermPush, Value: Lit(3)},
		{Term: TermPush, Value: Lit(4)},
		{Term: TermAdd},
	}}
	got, err := expr.Eval(func(ns NumberSpec) int32 { return ns.Literal })
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestExpressionSelect(t *testing.T) {
	expr := Expression{Terms: []ExpressionOp{
		{Term: TermPush, Value: Lit(1)},  // cond
		{Term: TermPush, Value: Lit(10)}, // a
		{Term: TermPush, Value: Lit(20)}, // b
		{Term: TermSelect},
	}}
	got, err := expr.Eval(func(ns NumberSpec) int32 { return ns.Literal })
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestJumpCondNegation(t *testing.T) {
	c := JumpCond{Type: JumpEqual, Negated: true}
	if c.Eval(1, 1) {
		t.Error("negated Equal(1,1) should be false")
	}
	if !c.Eval(1, 2) {
		t.Error("negated Equal(1,2) should be true")
	}
}

func TestJumpCondRoundTrip(t *testing.T) {
	for _, typ := range []JumpCondType{JumpEqual, JumpNotEqual, JumpGreaterEqual, JumpGreater, JumpLessEqual, JumpLess, JumpAndNonzero, JumpBitSet} {
		for _, neg := range []bool{false, true} {
			var buf bytes.Buffer
			c := JumpCond{Type: typ, Negated: neg}
			if err := WriteJumpCond(&buf, c); err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := ReadJumpCond(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != c {
				t.Errorf("round trip %+v -> %+v", c, got)
			}
		}
	}
}

func TestUnaryOperationImplicitSource(t *testing.T) {
	// destination R[5], type Negate, separate-source bit clear.
	buf := []byte{0xB5 /* R[5] */, byte(UnaryNegate)}
	op, err := ReadUnaryOperation(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if op.SeparateSource {
		t.Fatal("expected implicit (non-separate) source")
	}
	if !op.Source.IsRegister || op.Source.Reg != op.Destination {
		t.Fatalf("source should alias destination, got %+v", op.Source)
	}
	if op.Apply(5) != -5 {
		t.Errorf("Apply(5) = %d, want -5", op.Apply(5))
	}
}

func TestUnaryOperationSeparateSource(t *testing.T) {
	buf := []byte{0xB5, byte(UnaryAbs) | unarySeparateSourceBit, 0x05 /* literal 5, 7-bit form */}
	op, err := ReadUnaryOperation(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !op.SeparateSource {
		t.Fatal("expected separate source")
	}
	if op.Source.IsRegister {
		t.Fatalf("expected literal source, got %+v", op.Source)
	}
}
