package weapon

import (
	"fmt"

	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/kinematics"
)

// Handle identifies a weapon in the world registry. Characters hold handles
// rather than pointers so that a weapon destroyed elsewhere simply stops
// resolving instead of dangling.
type Handle uint64

// NoHandle is the zero Handle and never refers to a weapon.
const NoHandle Handle = 0

func (h Handle) String() string {
	return fmt.Sprintf("weapon#%d", uint64(h))
}

// ItemState is the pickup lifecycle of a weapon.
type ItemState uint8

const (
	Unequipped ItemState = iota
	Equipping
	Equipped
	Dropped
)

func (s ItemState) String() string {
	switch s {
	case Unequipped:
		return "Unequipped"
	case Equipping:
		return "Equipping"
	case Equipped:
		return "Equipped"
	case Dropped:
		return "Dropped"
	}
	return fmt.Sprintf("ItemState(%d)", uint8(s))
}

// ActionState reports whether the weapon is mid-attack.
type ActionState uint8

const (
	Unoccupied ActionState = iota
	Occupied
)

func (s ActionState) String() string {
	switch s {
	case Unoccupied:
		return "Unoccupied"
	case Occupied:
		return "Occupied"
	}
	return fmt.Sprintf("ActionState(%d)", uint8(s))
}

// MontagePlayer is the slice of the animation system a weapon needs to play
// its attack sections.
type MontagePlayer interface {
	Play(montage, section string) error
}

// Weapon is a pickup-able item that a character can hold. Weapons are owned
// by the world; characters only mutate their state while holding them.
type Weapon struct {
	ID   Handle
	Name string

	ItemState ItemState

	// Skeleton and Socket describe where the mesh is attached. Both are empty
	// while the weapon lies in the world.
	Skeleton string
	Socket   string

	Location kinematics.Vec3
	Facing   kinematics.Vec3

	CollisionEnabled bool

	// AttackMontage and AttackSections drive Attack. Sections are played in
	// rotation.
	AttackMontage  string
	AttackSections []string

	actionState ActionState
	nextSection int
}

// New returns a weapon resting in the world at location.
func New(id Handle, name string, location kinematics.Vec3) *Weapon {
	return &Weapon{
		ID:             id,
		Name:           name,
		ItemState:      Unequipped,
		Location:       location,
		AttackMontage:  "AttackMontage",
		AttackSections: []string{"Attack1", "Attack2"},
	}
}

func (w *Weapon) ActionState() ActionState { return w.actionState }

func (w *Weapon) SetActionState(s ActionState) { w.actionState = s }

// Equip attaches the weapon to socket on skeleton and marks it as held.
func (w *Weapon) Equip(skeleton, socket string) {
	w.AttachMeshToSocket(skeleton, socket)
	w.ItemState = Equipped
}

// AttachMeshToSocket moves the mesh to another socket without changing the
// item state.
func (w *Weapon) AttachMeshToSocket(skeleton, socket string) {
	w.Skeleton = skeleton
	w.Socket = socket
}

// Drop detaches the weapon and leaves it at location facing the given direction.
func (w *Weapon) Drop(location, facing kinematics.Vec3) {
	w.Skeleton = ""
	w.Socket = ""
	w.Location = location
	w.Facing = facing
	w.ItemState = Dropped
	w.actionState = Unoccupied
	w.CollisionEnabled = false
}

// Attack starts the next attack section if the weapon is drawn and idle. The
// weapon stays Occupied until the owner calls SetActionState(Unoccupied),
// normally from the end-of-attack animation notify.
func (w *Weapon) Attack(value input.Value, anims MontagePlayer) error {
	if !value.Pressed() {
		return nil
	}
	if w.ItemState != Equipped || w.actionState != Unoccupied || len(w.AttackSections) == 0 {
		return nil
	}

	section := w.AttackSections[w.nextSection%len(w.AttackSections)]
	if err := anims.Play(w.AttackMontage, section); err != nil {
		return fmt.Errorf("playing %s for %s: %w", section, w.Name, err)
	}
	w.nextSection = (w.nextSection + 1) % len(w.AttackSections)
	w.actionState = Occupied
	return nil
}

// SetCollision toggles the blade's hit volume.
func (w *Weapon) SetCollision(enabled bool) {
	w.CollisionEnabled = enabled
}
