package layer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// bankSlot holds one layerbank's backing texture and the set of layer Ids
// currently referencing it.
type bankSlot struct {
	texture *ebiten.Image
	refs    map[Id]struct{}
}

// Bank is the 48-slot arena of layerbank render targets shared by every
// plane. Allocation is reference-counted by the layer Ids assigned to a
// slot: the texture is released only once its last referencing Id is
// freed.
type Bank struct {
	slots [maxBankId]*bankSlot
}

// NewBank returns an empty Bank with no slots allocated.
func NewBank() *Bank {
	return &Bank{}
}

// Acquire returns the slot id already references, if any; otherwise it
// allocates the first free slot with a fresh width x height texture
// (existing slots are not matched by size) and returns its id. It returns
// an error once every slot is occupied.
func (b *Bank) Acquire(id Id, width, height int) (BankId, error) {
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		if _, already := s.refs[id]; already {
			return BankId(i), nil
		}
	}
	for i, s := range b.slots {
		if s == nil {
			b.slots[i] = &bankSlot{
				texture: ebiten.NewImage(width, height),
				refs:    map[Id]struct{}{id: {}},
			}
			return BankId(i), nil
		}
	}
	return NoBank, fmt.Errorf("layer: no free layerbank slot for id %d", id)
}

// Share adds id as an additional reference to bank (multiple layers may
// render into the same bank, e.g. a mask shared across planes).
func (b *Bank) Share(bank BankId, id Id) error {
	s := b.slots[bank]
	if s == nil {
		return fmt.Errorf("layer: bank %d is not allocated", bank)
	}
	s.refs[id] = struct{}{}
	return nil
}

// Release drops id's reference to bank, freeing the slot's texture once no
// Id references it any longer.
func (b *Bank) Release(bank BankId, id Id) {
	s := b.slots[bank]
	if s == nil {
		return
	}
	delete(s.refs, id)
	if len(s.refs) == 0 {
		b.slots[bank] = nil
	}
}

// Texture returns the render target backing bank, or nil if unallocated.
func (b *Bank) Texture(bank BankId) *ebiten.Image {
	s := b.slots[bank]
	if s == nil {
		return nil
	}
	return s.texture
}
