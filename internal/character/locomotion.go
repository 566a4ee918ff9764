package character

import (
	"math"

	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/kinematics"
)

// Move walks relative to the direction the controller is looking, ignoring pitch.
func (c *Character) Move(v input.Value) {
	if !c.pawn.HasController() || v.IsZero() {
		return
	}
	yaw := kinematics.Rotator{Yaw: c.pawn.ControlRotation().Yaw}
	c.pawn.AddMovementInput(yaw.Forward(), v.Y)
	c.pawn.AddMovementInput(yaw.Right(), v.X)
}

func (c *Character) Look(v input.Value) {
	if !c.pawn.HasController() || v.IsZero() {
		return
	}
	c.pawn.AddControllerYawInput(v.X)
	c.pawn.AddControllerPitchInput(v.Y)
}

func (c *Character) Jump(v input.Value) {
	if !c.pawn.HasController() || !v.Pressed() {
		return
	}
	c.pawn.Jump()
}

// Zoom accumulates scroll input into the zoom factor, which always stays in
// [0,1], and narrows the field of view as it grows.
func (c *Character) Zoom(v input.Value) {
	delta := v.Scalar() * c.cfg.ZoomRate
	if math.IsNaN(delta) {
		return
	}
	c.zoomFactor = kinematics.Clamp(c.zoomFactor+delta, 0, 1)
	c.applyFieldOfView()
}

func (c *Character) applyFieldOfView() {
	if c.pawn.HasController() {
		c.pawn.SetFieldOfView(kinematics.Lerp(c.cfg.MaxFOV, c.cfg.MinFOV, c.zoomFactor))
	}
}
