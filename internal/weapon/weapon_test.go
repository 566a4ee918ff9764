package weapon

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/kinematics"
)

type fakeMontages struct {
	played []string
	err    error
}

func (f *fakeMontages) Play(montage, section string) error {
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, montage+"/"+section)
	return nil
}

func TestWeapon_EquipAndDrop(t *testing.T) {
	w := New(1, "Sword", kinematics.Vec3{X: 5})

	w.Equip("Slash", "RightHandSocket")
	if w.ItemState != Equipped || w.Socket != "RightHandSocket" {
		t.Fatalf("Equip() left state=%v socket=%s", w.ItemState, w.Socket)
	}

	w.ItemState = Equipping
	w.AttachMeshToSocket("Slash", "WeaponSocket")
	if w.ItemState != Equipping {
		t.Fatalf("AttachMeshToSocket() changed the item state to %v", w.ItemState)
	}

	w.SetActionState(Occupied)
	w.SetCollision(true)
	w.Drop(kinematics.Vec3{X: 1, Y: 2}, kinematics.Vec3{X: 1})

	want := struct {
		ItemState   ItemState
		ActionState ActionState
		Socket      string
		Location    kinematics.Vec3
		Collision   bool
	}{Dropped, Unoccupied, "", kinematics.Vec3{X: 1, Y: 2}, false}
	got := struct {
		ItemState   ItemState
		ActionState ActionState
		Socket      string
		Location    kinematics.Vec3
		Collision   bool
	}{w.ItemState, w.ActionState(), w.Socket, w.Location, w.CollisionEnabled}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Drop() result did not match expected; diff:\n%s", diff)
	}
}

func TestWeapon_Attack(t *testing.T) {
	tests := []struct {
		name       string
		item       ItemState
		action     ActionState
		value      input.Value
		wantPlayed []string
		wantAction ActionState
	}{
		{
			name: "swings when drawn and idle", item: Equipped, action: Unoccupied,
			value: input.TriggerValue(true), wantPlayed: []string{"AttackMontage/Attack1"}, wantAction: Occupied,
		},
		{
			name: "released trigger", item: Equipped, action: Unoccupied,
			value: input.TriggerValue(false), wantAction: Unoccupied,
		},
		{
			name: "already attacking", item: Equipped, action: Occupied,
			value: input.TriggerValue(true), wantAction: Occupied,
		},
		{
			name: "mid draw", item: Equipping, action: Unoccupied,
			value: input.TriggerValue(true), wantAction: Unoccupied,
		},
		{
			name: "lying on the ground", item: Dropped, action: Unoccupied,
			value: input.TriggerValue(true), wantAction: Unoccupied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(1, "Sword", kinematics.Vec3{})
			w.ItemState = tt.item
			w.SetActionState(tt.action)
			montages := &fakeMontages{}

			if err := w.Attack(tt.value, montages); err != nil {
				t.Fatalf("Attack() returned an unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantPlayed, montages.played); diff != "" {
				t.Errorf("played sections did not match expected; diff:\n%s", diff)
			}
			if w.ActionState() != tt.wantAction {
				t.Errorf("ActionState() want = %v, got = %v", tt.wantAction, w.ActionState())
			}
		})
	}
}

func TestWeapon_AttackRotatesSections(t *testing.T) {
	w := New(1, "Sword", kinematics.Vec3{})
	w.ItemState = Equipped
	montages := &fakeMontages{}

	for i := 0; i < 3; i++ {
		if err := w.Attack(input.TriggerValue(true), montages); err != nil {
			t.Fatal(err)
		}
		w.SetActionState(Unoccupied)
	}

	want := []string{"AttackMontage/Attack1", "AttackMontage/Attack2", "AttackMontage/Attack1"}
	if diff := cmp.Diff(want, montages.played); diff != "" {
		t.Errorf("played sections did not match expected; diff:\n%s", diff)
	}
}

func TestWeapon_AttackPlayFailure(t *testing.T) {
	w := New(1, "Sword", kinematics.Vec3{})
	w.ItemState = Equipped
	boom := errors.New("boom")

	if err := w.Attack(input.TriggerValue(true), &fakeMontages{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Attack() want err = %v, got = %v", boom, err)
	}
	if w.ActionState() != Unoccupied {
		t.Errorf("failed attack left the weapon %v", w.ActionState())
	}
}

func TestStateStrings(t *testing.T) {
	if Equipping.String() != "Equipping" || Occupied.String() != "Occupied" || Handle(3).String() != "weapon#3" {
		t.Error("unexpected enum names")
	}
	if ItemState(9).String() != "ItemState(9)" {
		t.Errorf("unexpected fallback name %s", ItemState(9))
	}
}
