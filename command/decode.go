package command

import (
	"bytes"
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/DCNick3/shin-go/format/scenario"
	"github.com/DCNick3/shin-go/tick"
	"github.com/DCNick3/shin-go/vm"
)

// Command opcode assignment below the fixed control ISA (format/scenario's
// opCommandBase and up) is not recoverable from the retrieved sources: the
// original's numbering lives in a table this module's sources don't carry.
// The constants below assign one opcode per StartableCommand this package
// implements, in the order the original's vm/commands/mod.rs lists its
// command modules. This is an internally consistent scheme sufficient to
// drive the interpreter end-to-end, not a byte-accurate reproduction of the
// original numbering.
const (
	opWait scenario.Opcode = 0x51 + iota
	opLayerLoad
	opLayerCtrl
	opLayerWait
	opMaskLoad
	opMsgInit
	opMsgSet
	opMsgClose
	opSePlay
	opSeWait
	opBgmPlay
	opBgmStop
	opSGet
	opSSet
)

// readOperand reads one NumberSpec and resolves it against s immediately,
// matching the original's convention of resolving a command's operands
// against live VM state at dispatch time rather than leaving them as
// late-bound register references.
func readOperand(r *bytes.Reader, s *vm.State) (int32, error) {
	ns, err := scenario.ReadNumberSpec(r)
	if err != nil {
		return 0, err
	}
	return s.Get(ns), nil
}

func readRegisterOperand(r *bytes.Reader) (scenario.Register, error) {
	ns, err := scenario.ReadNumberSpec(r)
	if err != nil {
		return scenario.Register{}, err
	}
	if !ns.IsRegister {
		return scenario.Register{}, fmt.Errorf("command: decode: expected a register operand")
	}
	return ns.Reg, nil
}

// Decode reads op's operand payload from r (positioned right after the
// opcode byte by Interpreter.CommandArgs) against the live state s, and
// returns the StartableCommand ready for Scheduler.Dispatch. The caller
// must call Interpreter.Commit(r) afterward to advance PC past whatever
// Decode consumed.
func Decode(op scenario.Opcode, r *bytes.Reader, s *vm.State) (StartableCommand, error) {
	switch op {
	case opWait:
		amount, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		allowInterrupt, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &Wait{Amount: tick.Ticks(amount), AllowInterrupt: allowInterrupt != 0}, nil

	case opLayerLoad:
		id, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		kind, err := scenario.ReadSJisString(r)
		if err != nil {
			return nil, err
		}
		params, err := scenario.ReadSJisString(r)
		if err != nil {
			return nil, err
		}
		return &LayerLoad{ID: id, Kind: kind, Params: []byte(params)}, nil

	case opLayerCtrl:
		vlayer, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		prop, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		target, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		duration, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		// The original's LAYERCTRL hardcodes a linear curve regardless of
		// its flags operand (adv/command/layerctrl.rs), so flags is read
		// and discarded here rather than threaded through.
		if _, err := readOperand(r, s); err != nil {
			return nil, err
		}
		return &LayerCtrl{
			VLayer:   vlayer,
			Prop:     int(prop),
			Target:   float64(target),
			Duration: tick.Ticks(duration),
			Easing:   ease.Linear,
		}, nil

	case opLayerWait:
		vlayer, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		count, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		props := make([]int, count)
		for i := range props {
			p, err := readOperand(r, s)
			if err != nil {
				return nil, err
			}
			props[i] = int(p)
		}
		return &LayerWait{VLayer: vlayer, Props: props}, nil

	case opMaskLoad:
		planeID, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		maskID, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		flags, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &MaskLoad{PlaneID: planeID, MaskID: maskID, Flags: uint32(flags)}, nil

	case opMsgInit:
		style, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &MsgInit{Style: style}, nil

	case opMsgSet:
		text, err := scenario.ReadSJisString(r)
		if err != nil {
			return nil, err
		}
		autoWait, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &MsgSet{Text: text, AutoWait: autoWait != 0}, nil

	case opMsgClose:
		return &MsgClose{}, nil

	case opSePlay:
		slot, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		path, err := scenario.ReadSJisString(r)
		if err != nil {
			return nil, err
		}
		return &SePlay{Slot: slot, Params: []byte(path)}, nil

	case opSeWait:
		slot, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		mask, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &SeWait{Slot: slot, Mask: uint32(mask)}, nil

	case opBgmPlay:
		path, err := scenario.ReadSJisString(r)
		if err != nil {
			return nil, err
		}
		return &BgmPlay{Params: []byte(path)}, nil

	case opBgmStop:
		fadeDuration, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &BgmStop{FadeDuration: tick.Ticks(fadeDuration)}, nil

	case opSGet:
		global, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		dest, err := readRegisterOperand(r)
		if err != nil {
			return nil, err
		}
		return &SGet{Global: int(global), Destination: dest}, nil

	case opSSet:
		global, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		value, err := readOperand(r, s)
		if err != nil {
			return nil, err
		}
		return &SSet{Global: int(global), Value: value}, nil

	default:
		return nil, fmt.Errorf("command: decode: unknown command opcode 0x%02x", byte(op))
	}
}
