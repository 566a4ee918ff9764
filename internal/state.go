package internal

import (
	"github.com/dcrodman/slash/internal/character"
	"github.com/dcrodman/slash/internal/core/data"
	"github.com/dcrodman/slash/internal/kinematics"
	"github.com/dcrodman/slash/internal/weapon"
)

func weaponRecord(w *weapon.Weapon) *data.Weapon {
	return &data.Weapon{
		ID:          uint64(w.ID),
		Name:        w.Name,
		ItemState:   uint8(w.ItemState),
		ActionState: uint8(w.ActionState()),
		Skeleton:    w.Skeleton,
		Socket:      w.Socket,
		LocationX:   w.Location.X,
		LocationY:   w.Location.Y,
		LocationZ:   w.Location.Z,
		FacingX:     w.Facing.X,
		FacingY:     w.Facing.Y,
		FacingZ:     w.Facing.Z,
	}
}

// weaponFromRecord rebuilds a weapon from storage. Montages don't survive a
// restart, so a weapon saved mid-draw comes back Equipped and one saved
// mid-swing comes back Unoccupied.
func weaponFromRecord(rec data.Weapon) *weapon.Weapon {
	w := weapon.New(
		weapon.Handle(rec.ID),
		rec.Name,
		kinematics.Vec3{X: rec.LocationX, Y: rec.LocationY, Z: rec.LocationZ},
	)
	w.ItemState = weapon.ItemState(rec.ItemState)
	if w.ItemState == weapon.Equipping {
		w.ItemState = weapon.Equipped
	}
	w.Skeleton = rec.Skeleton
	w.Socket = rec.Socket
	w.Facing = kinematics.Vec3{X: rec.FacingX, Y: rec.FacingY, Z: rec.FacingZ}
	w.SetActionState(weapon.Unoccupied)
	return w
}

func characterRecord(s character.Snapshot, location kinematics.Vec3) *data.Character {
	rec := &data.Character{
		Name:       s.Name,
		State:      uint8(s.State),
		ZoomFactor: s.ZoomFactor,
		LocationX:  location.X,
		LocationY:  location.Y,
		LocationZ:  location.Z,
	}
	if s.Equipped != weapon.NoHandle {
		id := uint64(s.Equipped)
		rec.EquippedWeaponID = &id
	}
	return rec
}

func snapshotFromRecord(rec *data.Character) (character.Snapshot, kinematics.Vec3) {
	s := character.Snapshot{
		Name:       rec.Name,
		State:      character.State(rec.State),
		ZoomFactor: rec.ZoomFactor,
	}
	if rec.EquippedWeaponID != nil {
		s.Equipped = weapon.Handle(*rec.EquippedWeaponID)
	}
	return s, kinematics.Vec3{X: rec.LocationX, Y: rec.LocationY, Z: rec.LocationZ}
}
