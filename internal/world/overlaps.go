package world

import (
	"fmt"

	"github.com/dcrodman/slash/internal/weapon"
)

// OverlapTarget is anything that wants to know which item it is standing on.
type OverlapTarget interface {
	SetOverlappingItem(h weapon.Handle)
	ClearOverlappingItem()
}

// Overlaps tracks which pickup volumes each target is inside of. The most
// recently entered volume is the one reported to the target.
type Overlaps struct {
	registry *Registry
	inside   map[OverlapTarget][]weapon.Handle
}

func NewOverlaps(registry *Registry) *Overlaps {
	return &Overlaps{
		registry: registry,
		inside:   make(map[OverlapTarget][]weapon.Handle),
	}
}

// Enter records target walking into the pickup volume of h. Held weapons
// have no active pickup volume and are ignored.
func (o *Overlaps) Enter(target OverlapTarget, h weapon.Handle) error {
	w, ok := o.registry.Lookup(h)
	if !ok {
		return fmt.Errorf("%s: %w", h, ErrUnknownWeapon)
	}
	if w.ItemState != weapon.Unequipped && w.ItemState != weapon.Dropped {
		return nil
	}

	o.remove(target, h)
	o.inside[target] = append(o.inside[target], h)
	target.SetOverlappingItem(h)
	return nil
}

// Exit records target leaving the pickup volume of h. If target is still
// inside another volume, that item becomes the overlapping one.
func (o *Overlaps) Exit(target OverlapTarget, h weapon.Handle) {
	if !o.remove(target, h) {
		return
	}
	o.refresh(target)
}

// Forget drops every volume that h was tracked in, for example after the
// weapon was picked up or destroyed.
func (o *Overlaps) Forget(h weapon.Handle) {
	for target := range o.inside {
		if o.remove(target, h) {
			o.refresh(target)
		}
	}
}

// Inside lists the handles target is currently overlapping, oldest first.
func (o *Overlaps) Inside(target OverlapTarget) []weapon.Handle {
	return append([]weapon.Handle(nil), o.inside[target]...)
}

func (o *Overlaps) refresh(target OverlapTarget) {
	handles := o.inside[target]
	for len(handles) > 0 {
		last := handles[len(handles)-1]
		if w, ok := o.registry.Lookup(last); ok && (w.ItemState == weapon.Unequipped || w.ItemState == weapon.Dropped) {
			o.inside[target] = handles
			target.SetOverlappingItem(last)
			return
		}
		handles = handles[:len(handles)-1]
	}
	delete(o.inside, target)
	target.ClearOverlappingItem()
}

func (o *Overlaps) remove(target OverlapTarget, h weapon.Handle) bool {
	handles := o.inside[target]
	for i, existing := range handles {
		if existing == h {
			o.inside[target] = append(handles[:i], handles[i+1:]...)
			return true
		}
	}
	return false
}
