package kinematics

import "math"

const (
	gravity  = -980.0
	maxPitch = 89.0
)

// Pawn is a minimal kinematic body driven by movement and look input. It
// keeps a control rotation (where the player looks) separate from the actor
// rotation, which turns towards the movement direction at RotationRate.
type Pawn struct {
	WalkSpeed    float64
	JumpVelocity float64
	// Degrees per second.
	RotationRate float64

	// Possessed reports whether a controller currently drives the pawn.
	Possessed bool

	location        Vec3
	velocity        Vec3
	rotation        Rotator
	controlRotation Rotator
	fieldOfView     float64

	pendingInput Vec3
}

// NewPawn returns a possessed pawn standing at location.
func NewPawn(location Vec3, walkSpeed, jumpVelocity, rotationRate float64) *Pawn {
	return &Pawn{
		WalkSpeed:    walkSpeed,
		JumpVelocity: jumpVelocity,
		RotationRate: rotationRate,
		Possessed:    true,
		location:     location,
		fieldOfView:  90,
	}
}

func (p *Pawn) HasController() bool { return p.Possessed }

func (p *Pawn) Location() Vec3 { return p.location }

func (p *Pawn) SetLocation(l Vec3) { p.location = l }

func (p *Pawn) Velocity() Vec3 { return p.velocity }

func (p *Pawn) Rotation() Rotator { return p.rotation }

// Forward is the direction the actor is facing.
func (p *Pawn) Forward() Vec3 { return p.rotation.Forward() }

func (p *Pawn) ControlRotation() Rotator { return p.controlRotation }

func (p *Pawn) FieldOfView() float64 { return p.fieldOfView }

func (p *Pawn) SetFieldOfView(fov float64) { p.fieldOfView = fov }

// AddMovementInput queues movement along direction for the next Tick.
func (p *Pawn) AddMovementInput(direction Vec3, scale float64) {
	p.pendingInput = p.pendingInput.Add(direction.Scale(scale))
}

func (p *Pawn) AddControllerYawInput(v float64) {
	p.controlRotation.Yaw = NormalizeAxis(p.controlRotation.Yaw + v)
}

func (p *Pawn) AddControllerPitchInput(v float64) {
	p.controlRotation.Pitch = Clamp(p.controlRotation.Pitch+v, -maxPitch, maxPitch)
}

func (p *Pawn) IsGrounded() bool { return p.location.Z <= 0 && p.velocity.Z <= 0 }

// Jump launches the pawn if it is standing on the ground.
func (p *Pawn) Jump() bool {
	if !p.IsGrounded() {
		return false
	}
	p.velocity.Z = p.JumpVelocity
	return true
}

// Tick integrates queued input, gravity and facing over dt seconds.
func (p *Pawn) Tick(dt float64) {
	input := Vec3{X: p.pendingInput.X, Y: p.pendingInput.Y}
	p.pendingInput = Vec3{}

	scale := math.Min(input.Length(), 1)
	dir := input.Normalize()
	p.velocity.X = dir.X * p.WalkSpeed * scale
	p.velocity.Y = dir.Y * p.WalkSpeed * scale

	if !p.IsGrounded() || p.velocity.Z > 0 {
		p.velocity.Z += gravity * dt
	}
	p.location = p.location.Add(p.velocity.Scale(dt))
	if p.location.Z < 0 {
		p.location.Z = 0
		p.velocity.Z = 0
	}

	if scale > 0 {
		p.turnTowards(math.Atan2(dir.Y, dir.X)*180/math.Pi, dt)
	}
}

func (p *Pawn) turnTowards(yaw, dt float64) {
	delta := NormalizeAxis(yaw - p.rotation.Yaw)
	step := p.RotationRate * dt
	if math.Abs(delta) <= step {
		p.rotation.Yaw = NormalizeAxis(yaw)
		return
	}
	p.rotation.Yaw = NormalizeAxis(p.rotation.Yaw + math.Copysign(step, delta))
}
