package character

import (
	"errors"
	"fmt"

	"github.com/dcrodman/slash/internal/anim"
	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/weapon"
)

// ErrNoWeaponEquipped is returned by Attack when there is nothing to swing.
var ErrNoWeaponEquipped = errors.New("no weapon equipped")

// Equip montage sections and the notifies they raise.
const (
	sectionEquip   = "Equip"
	sectionUnequip = "Unequip"

	notifyArm              = "Arm"
	notifyDisarm           = "Disarm"
	notifyArmEnd           = "ArmEnd"
	notifyAttackEnd        = "AttackEnd"
	notifyEnableCollision  = "EnableCollision"
	notifyDisableCollision = "DisableCollision"
)

// CanDisarm reports whether the drawn weapon may be sheathed.
func (c *Character) CanDisarm() bool {
	return c.readyWeapon() && c.state != Unequipped
}

// CanArm reports whether the sheathed weapon may be drawn.
func (c *Character) CanArm() bool {
	return c.readyWeapon() && c.state == Unequipped
}

// readyWeapon is the part of CanArm and CanDisarm they share: a weapon is
// held, settled in its socket and not attacking.
func (c *Character) readyWeapon() bool {
	w, ok := c.equippedWeapon()
	return ok && w.ItemState == weapon.Equipped && w.ActionState() == weapon.Unoccupied
}

// ToggleEquip services one press of the equip action. If the character is
// standing on a weapon it picks it up, dropping whatever it held first.
// Otherwise it draws or sheathes the held weapon.
func (c *Character) ToggleEquip() error {
	overlapping, hasOverlap := c.overlappingWeapon()

	if held, ok := c.equippedWeapon(); ok && hasOverlap {
		c.dropHeld(held)
	}

	if hasOverlap {
		c.pickUp(overlapping)
		return nil
	}

	switch {
	case c.CanDisarm():
		return c.playEquipMontage(sectionUnequip, Unequipped)
	case c.CanArm():
		return c.playEquipMontage(sectionEquip, EquippedOneHanded)
	}
	c.logger.Debug("equip ignored: nothing to pick up, draw or sheathe")
	return nil
}

// Drop throws the drawn weapon on the ground in front of the character. It is
// a no-op unless the weapon could be sheathed right now.
func (c *Character) Drop() {
	w, ok := c.equippedWeapon()
	if !ok || w.ItemState == weapon.Equipping || !c.CanDisarm() {
		c.logger.Debug("drop ignored")
		return
	}
	c.dropHeld(w)
	c.state = Unequipped
}

// Attack hands the input over to the held weapon's own attack logic. A
// sheathed weapon can't swing.
func (c *Character) Attack(v input.Value) error {
	w, ok := c.equippedWeapon()
	if !ok {
		return ErrNoWeaponEquipped
	}
	if c.state == Unequipped {
		c.logger.Debug("attack ignored: weapon is sheathed")
		return nil
	}
	if err := w.Attack(v, c.anims); err != nil {
		return err
	}
	if w.ActionState() == weapon.Occupied {
		c.attacking = w.ID
	}
	return nil
}

// AttackEnd frees the held weapon for the next attack, draw or sheathe.
func (c *Character) AttackEnd() {
	if w, ok := c.equippedWeapon(); ok {
		w.SetActionState(weapon.Unoccupied)
	}
	c.attacking = weapon.NoHandle
}

// SetWeaponCollision toggles the hit volume of the held weapon.
func (c *Character) SetWeaponCollision(enabled bool) {
	if w, ok := c.equippedWeapon(); ok {
		w.SetCollision(enabled)
	}
}

func (c *Character) dropHeld(w *weapon.Weapon) {
	w.Drop(c.pawn.Location(), c.pawn.Forward())
	c.logger.WithField("weapon", w.ID).Infof("dropped %s", w.Name)
	c.equipped = weapon.NoHandle
	c.transition = weapon.NoHandle
	c.attacking = weapon.NoHandle
}

func (c *Character) pickUp(w *weapon.Weapon) {
	w.Equip(c.skeleton(), c.cfg.HandSocket)
	w.SetActionState(weapon.Unoccupied)
	c.state = EquippedOneHanded
	c.equipped = w.ID
	c.overlapping = weapon.NoHandle
	c.logger.WithField("weapon", w.ID).Infof("picked up %s", w.Name)
}

// playEquipMontage starts a draw or sheathe. The weapon stays Equipping, which
// fails both guards, until the montage resolves it.
func (c *Character) playEquipMontage(section string, next State) error {
	w, _ := c.equippedWeapon()
	if err := c.anims.Play(c.cfg.EquipMontage, section); err != nil {
		return fmt.Errorf("playing %s: %w", section, err)
	}
	w.ItemState = weapon.Equipping
	c.transition = w.ID
	c.state = next
	c.logger.WithField("weapon", w.ID).Debugf("%s -> %s", section, next)
	return nil
}

// OnNotify reacts to animation notifies. Register it with the animator.
func (c *Character) OnNotify(n anim.Notify) {
	switch n.Name {
	case notifyArm:
		if w, ok := c.transitioning(); ok {
			w.AttachMeshToSocket(c.skeleton(), c.cfg.HandSocket)
		}
	case notifyDisarm:
		if w, ok := c.transitioning(); ok {
			w.ItemState = weapon.Equipped
			w.AttachMeshToSocket(c.skeleton(), c.cfg.SheathSocket)
			c.transition = weapon.NoHandle
		}
	case notifyArmEnd:
		if w, ok := c.transitioning(); ok {
			w.ItemState = weapon.Equipped
			c.transition = weapon.NoHandle
		}
	case notifyAttackEnd:
		if _, ok := c.swinging(); ok {
			c.AttackEnd()
		}
	case notifyEnableCollision:
		if w, ok := c.swinging(); ok {
			w.SetCollision(true)
		}
	case notifyDisableCollision:
		if w, ok := c.swinging(); ok {
			w.SetCollision(false)
		}
	case anim.MontageEnded:
		c.onMontageEnded(n)
	}
}

// onMontageEnded settles anything the montage's own notifies left open, so a
// montage without an ArmEnd or AttackEnd notify can't wedge the weapon.
func (c *Character) onMontageEnded(n anim.Notify) {
	switch n.Montage {
	case c.cfg.EquipMontage:
		w, ok := c.transitioning()
		if !ok {
			return
		}
		socket := c.cfg.HandSocket
		if c.state == Unequipped {
			socket = c.cfg.SheathSocket
		}
		w.ItemState = weapon.Equipped
		w.AttachMeshToSocket(c.skeleton(), socket)
		c.transition = weapon.NoHandle
	case c.cfg.AttackMontage:
		if w, ok := c.swinging(); ok {
			w.SetCollision(false)
			c.AttackEnd()
		}
	}
}

// transitioning returns the held weapon if its draw or sheathe is in flight.
func (c *Character) transitioning() (*weapon.Weapon, bool) {
	if c.transition == weapon.NoHandle {
		return nil, false
	}
	w, ok := c.equippedWeapon()
	if !ok || w.ID != c.transition {
		c.transition = weapon.NoHandle
		return nil, false
	}
	return w, true
}

// swinging returns the held weapon if it started the attack in flight.
// Attack notifies for a weapon that was dropped or swapped mid-swing are
// ignored.
func (c *Character) swinging() (*weapon.Weapon, bool) {
	if c.attacking == weapon.NoHandle {
		return nil, false
	}
	w, ok := c.equippedWeapon()
	if !ok || w.ID != c.attacking {
		c.attacking = weapon.NoHandle
		return nil, false
	}
	return w, true
}
