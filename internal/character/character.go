// Package character implements the player character: locomotion and camera
// zoom forwarding, plus the state machine that governs picking up, drawing,
// sheathing and dropping a weapon.
package character

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/slash/internal/core"
	"github.com/dcrodman/slash/internal/kinematics"
	"github.com/dcrodman/slash/internal/weapon"
)

// State tells whether the character has a weapon drawn, and of which class.
type State uint8

const (
	Unequipped State = iota
	EquippedOneHanded
)

func (s State) String() string {
	switch s {
	case Unequipped:
		return "Unequipped"
	case EquippedOneHanded:
		return "EquippedOneHanded"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Pawn is the body the character drives: movement, controller and camera.
type Pawn interface {
	HasController() bool
	Location() kinematics.Vec3
	Forward() kinematics.Vec3
	ControlRotation() kinematics.Rotator
	AddMovementInput(direction kinematics.Vec3, scale float64)
	AddControllerYawInput(v float64)
	AddControllerPitchInput(v float64)
	Jump() bool
	SetFieldOfView(fov float64)
}

// Weapons resolves weapon handles. The world registry owns the weapons.
type Weapons interface {
	Lookup(h weapon.Handle) (*weapon.Weapon, bool)
}

// Animator plays montage sections.
type Animator interface {
	Play(montage, section string) error
}

type Options struct {
	Config   core.CharacterConfig
	Weapons  Weapons
	Animator Animator
	Pawn     Pawn
	Logger   *logrus.Logger
}

// Character is not safe for concurrent use. It is driven from a single logic
// goroutine together with its weapons and animator.
type Character struct {
	cfg    core.CharacterConfig
	logger *logrus.Entry

	weapons Weapons
	anims   Animator
	pawn    Pawn

	state       State
	equipped    weapon.Handle
	overlapping weapon.Handle
	// Weapon whose draw or sheathe montage is still playing.
	transition weapon.Handle
	// Weapon whose attack montage is still playing.
	attacking  weapon.Handle
	zoomFactor float64
}

func New(opts Options) *Character {
	return &Character{
		cfg:     opts.Config,
		logger:  opts.Logger.WithField("character", opts.Config.Name),
		weapons: opts.Weapons,
		anims:   opts.Animator,
		pawn:    opts.Pawn,
	}
}

func (c *Character) Name() string { return c.cfg.Name }

func (c *Character) State() State { return c.state }

// EquippedWeapon returns the handle of the held weapon, drawn or sheathed.
func (c *Character) EquippedWeapon() weapon.Handle {
	if _, ok := c.equippedWeapon(); !ok {
		return weapon.NoHandle
	}
	return c.equipped
}

func (c *Character) OverlappingItem() weapon.Handle { return c.overlapping }

func (c *Character) ZoomFactor() float64 { return c.zoomFactor }

// SetOverlappingItem is called by the pickup volume tracker when the character
// walks into an item's pickup volume.
func (c *Character) SetOverlappingItem(h weapon.Handle) {
	c.overlapping = h
}

// ClearOverlappingItem is called when the character leaves the last pickup volume.
func (c *Character) ClearOverlappingItem() {
	c.overlapping = weapon.NoHandle
}

// skeleton names the mesh weapons are attached to.
func (c *Character) skeleton() string {
	return c.cfg.Name
}

// equippedWeapon resolves the held weapon. A weapon that was destroyed while
// held is forgotten and the character falls back to Unequipped.
func (c *Character) equippedWeapon() (*weapon.Weapon, bool) {
	if c.equipped == weapon.NoHandle {
		return nil, false
	}
	w, ok := c.weapons.Lookup(c.equipped)
	if !ok {
		c.logger.WithField("weapon", c.equipped).Warn("held weapon no longer exists")
		c.equipped = weapon.NoHandle
		c.transition = weapon.NoHandle
		c.state = Unequipped
		return nil, false
	}
	return w, true
}

func (c *Character) overlappingWeapon() (*weapon.Weapon, bool) {
	if c.overlapping == weapon.NoHandle {
		return nil, false
	}
	w, ok := c.weapons.Lookup(c.overlapping)
	if !ok {
		c.overlapping = weapon.NoHandle
		return nil, false
	}
	return w, true
}

// Snapshot is the persistent part of a character.
type Snapshot struct {
	Name       string
	State      State
	Equipped   weapon.Handle
	ZoomFactor float64
}

func (c *Character) Snapshot() Snapshot {
	return Snapshot{
		Name:       c.cfg.Name,
		State:      c.state,
		Equipped:   c.EquippedWeapon(),
		ZoomFactor: c.zoomFactor,
	}
}

// Restore applies a snapshot. A referenced weapon that no longer exists is
// dropped from the snapshot, leaving the character unarmed.
func (c *Character) Restore(s Snapshot) {
	c.state = s.State
	c.equipped = s.Equipped
	c.transition = weapon.NoHandle
	c.attacking = weapon.NoHandle
	c.zoomFactor = kinematics.Clamp(s.ZoomFactor, 0, 1)

	if w, ok := c.equippedWeapon(); ok {
		socket := c.cfg.SheathSocket
		if c.state != Unequipped {
			socket = c.cfg.HandSocket
		}
		w.Equip(c.skeleton(), socket)
	} else {
		c.state = Unequipped
	}
	c.applyFieldOfView()
}
