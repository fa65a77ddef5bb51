// Package layer implements the layer tree: the scene-graph of drawable
// layers organized into groups, the 90-scalar tweened property set each
// layer carries, the scarce layerbank slot arena, and the wipe transitions
// that cross-fade or mask-blend between two renders of a group.
package layer

import "fmt"

// Id names one real layer slot, 0..255, or the sentinel None.
type Id int16

// None is the sentinel Id meaning "no layer".
const None Id = -1

const maxLayerId = 256

// NewId validates and returns a real layer Id.
func NewId(v int) (Id, error) {
	if v < 0 || v >= maxLayerId {
		return None, fmt.Errorf("layer: id %d out of range [0,%d)", v, maxLayerId)
	}
	return Id(v), nil
}

// BankId names one layerbank slot, the scarce GPU-backed resource shared by
// every plane; 0..47, or the sentinel NoBank.
type BankId int8

// NoBank is the sentinel BankId meaning "unallocated".
const NoBank BankId = -1

const maxBankId = 48

// NewBankId validates and returns a real BankId.
func NewBankId(v int) (BankId, error) {
	if v < 0 || v >= maxBankId {
		return NoBank, fmt.Errorf("layer: bank id %d out of range [0,%d)", v, maxBankId)
	}
	return BankId(v), nil
}

// PlaneId names one of the engine's five drawing planes; exactly one is
// "current" at a time.
type PlaneId int8

const maxPlaneId = 5

// NewPlaneId validates and returns a PlaneId.
func NewPlaneId(v int) (PlaneId, error) {
	if v < 0 || v >= maxPlaneId {
		return 0, fmt.Errorf("layer: plane id %d out of range [0,%d)", v, maxPlaneId)
	}
	return PlaneId(v), nil
}

// VLayerId is the extended layer reference LAYERCTRL-family commands take:
// either a real Id, or one of five virtual targets addressing a
// well-known group instead of a leaf layer.
type VLayerId int32

const (
	VLayerRootLayerGroup  VLayerId = -1
	VLayerScreenLayer     VLayerId = -2
	VLayerPageLayer       VLayerId = -3
	VLayerPlaneLayerGroup VLayerId = -4
	VLayerSelected        VLayerId = -5
)

// IsVirtual reports whether v addresses one of the five virtual targets
// rather than a real layer Id.
func (v VLayerId) IsVirtual() bool {
	return v < 0
}

// Resolve returns the real Id a non-virtual VLayerId addresses. Callers
// must check IsVirtual first.
func (v VLayerId) Resolve() Id {
	return Id(v)
}
