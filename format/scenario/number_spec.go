// Package scenario decodes the SNR scenario bytecode format: number/register
// references, expressions, and instructions. It owns no execution state —
// that belongs to package vm, which consumes the types decoded here.
package scenario

import (
	"bufio"
	"fmt"
	"io"
)

// RegisterKind distinguishes the two register spaces NumberSpec can address.
type RegisterKind uint8

const (
	RegR RegisterKind = iota // general-purpose register, R[0..4095]
	RegA                     // argument register, A[0..15]
)

func (k RegisterKind) String() string {
	if k == RegA {
		return "A"
	}
	return "R"
}

// Register is an index into one of the two register spaces.
type Register struct {
	Kind  RegisterKind
	Index uint16
}

func (r Register) String() string {
	return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
}

// NumberSpec is either a signed literal constant or a register reference,
// decoded from the compact 1-to-4-byte tagged encoding in the bytecode
// stream (see the scenario format's NumberSpec bit layout).
type NumberSpec struct {
	IsRegister bool
	Literal    int32
	Reg        Register
}

// Lit builds a literal NumberSpec.
func Lit(v int32) NumberSpec { return NumberSpec{Literal: v} }

// RegSpec builds a register-reference NumberSpec.
func RegSpec(r Register) NumberSpec { return NumberSpec{IsRegister: true, Reg: r} }

func (n NumberSpec) String() string {
	if n.IsRegister {
		return n.Reg.String()
	}
	return fmt.Sprintf("%d", n.Literal)
}

// signExtend sign-extends the low `bits` bits of v.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// ReadNumberSpec decodes one NumberSpec from r, per the bit layout:
//
//	t = first byte
//	t&0x80 == 0  => literal = sign_extend(t, 7)
//	else p=(t>>4)&7, k=t&0xF, ke=sign_extend(k,4):
//	  p=0: literal = (ke<<8)  | byte1
//	  p=1: literal = (ke<<16) | (byte1<<8) | byte2
//	  p=2: literal = (ke<<24) | (byte1<<16) | (byte2<<8) | byte3
//	  p=3: register R[k]
//	  p=4: register R[(k<<8) | byte1]
//	  p=5: register A[k]
//	  p=6,7: invalid
func ReadNumberSpec(r io.ByteReader) (NumberSpec, error) {
	t, err := r.ReadByte()
	if err != nil {
		return NumberSpec{}, fmt.Errorf("scenario: read number spec tag: %w", err)
	}
	if t&0x80 == 0 {
		return Lit(signExtend(uint32(t), 7)), nil
	}

	p := (t >> 4) & 7
	k := uint32(t & 0xF)
	ke := signExtend(k, 4)

	switch p {
	case 0:
		b1, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, fmt.Errorf("scenario: read number spec byte1: %w", err)
		}
		return Lit(ke<<8 | int32(b1)), nil
	case 1:
		b1, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		b2, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		return Lit(ke<<16 | int32(b1)<<8 | int32(b2)), nil
	case 2:
		b1, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		b2, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		b3, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		return Lit(ke<<24 | int32(b1)<<16 | int32(b2)<<8 | int32(b3)), nil
	case 3:
		return RegSpec(Register{Kind: RegR, Index: uint16(k)}), nil
	case 4:
		b1, err := r.ReadByte()
		if err != nil {
			return NumberSpec{}, err
		}
		return RegSpec(Register{Kind: RegR, Index: uint16(k<<8 | uint32(b1))}), nil
	case 5:
		return RegSpec(Register{Kind: RegA, Index: uint16(k)}), nil
	default:
		return NumberSpec{}, fmt.Errorf("scenario: invalid number spec class %d", p)
	}
}

// WriteNumberSpec encodes n using the minimal-length form for its value,
// matching ReadNumberSpec's layout exactly (decode(encode(v)) == v).
func WriteNumberSpec(w io.ByteWriter, n NumberSpec) error {
	if n.IsRegister {
		switch n.Reg.Kind {
		case RegA:
			if n.Reg.Index > 0xF {
				return fmt.Errorf("scenario: A register index %d out of range", n.Reg.Index)
			}
			return w.WriteByte(0x80 | 5<<4 | byte(n.Reg.Index))
		case RegR:
			if n.Reg.Index <= 0xF {
				return w.WriteByte(0x80 | 3<<4 | byte(n.Reg.Index))
			}
			if n.Reg.Index <= 0xFFF {
				if err := w.WriteByte(0x80 | 4<<4 | byte(n.Reg.Index>>8)); err != nil {
					return err
				}
				return w.WriteByte(byte(n.Reg.Index))
			}
			return fmt.Errorf("scenario: R register index %d out of range", n.Reg.Index)
		}
	}

	v := n.Literal
	if v >= -64 && v <= 63 {
		return w.WriteByte(byte(v) & 0x7F)
	}
	return writeLiteral(w, v)
}

func writeBytes(w io.ByteWriter, bs ...byte) error {
	for _, b := range bs {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// writeLiteral selects the minimal class (0, 1 or 2) for a non-register literal.
func writeLiteral(w io.ByteWriter, v int32) error {
	switch {
	case v >= -(1<<11) && v < (1<<11):
		ke := (v >> 8) & 0xF
		return writeBytes(w, 0x80|byte(ke&0xF), byte(v))
	case v >= -(1<<19) && v < (1<<19):
		ke := (v >> 16) & 0xF
		return writeBytes(w, 0x80|1<<4|byte(ke&0xF), byte(v>>8), byte(v))
	case v >= -(1<<27) && v < (1<<27):
		ke := (v >> 24) & 0xF
		return writeBytes(w, 0x80|2<<4|byte(ke&0xF), byte(v>>16), byte(v>>8), byte(v))
	default:
		return fmt.Errorf("scenario: literal %d out of encodable range", v)
	}
}

// ByteReader adapts an io.Reader to io.ByteReader when it doesn't already
// implement it, the same way bufio.NewReader would but without forcing a
// buffer size choice on every call site that already has a *bytes.Reader.
func ByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}
