package input

import (
	"fmt"
	"math"
)

// Kind is the shape of the payload an input action carries.
type Kind uint8

const (
	Trigger Kind = iota
	Axis
	Vector2
)

func (k Kind) String() string {
	switch k {
	case Trigger:
		return "trigger"
	case Axis:
		return "axis"
	case Vector2:
		return "vector2"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is the payload delivered with an input action. Only the fields
// matching Kind are meaningful.
type Value struct {
	Kind Kind
	X, Y float64
	On   bool
}

func TriggerValue(on bool) Value { return Value{Kind: Trigger, On: on} }

func AxisValue(v float64) Value { return Value{Kind: Axis, X: v} }

func Vector2Value(x, y float64) Value { return Value{Kind: Vector2, X: x, Y: y} }

// Pressed reports whether the value counts as an active trigger. Axis and
// vector values are active whenever they are non-zero.
func (v Value) Pressed() bool {
	switch v.Kind {
	case Trigger:
		return v.On
	default:
		return !v.IsZero()
	}
}

// IsZero reports whether the axis or vector payload is zero.
func (v Value) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Scalar returns the axis value. Triggers map onto 0 or 1.
func (v Value) Scalar() float64 {
	if v.Kind == Trigger {
		if v.On {
			return 1
		}
		return 0
	}
	return v.X
}

func (v Value) String() string {
	switch v.Kind {
	case Trigger:
		return fmt.Sprintf("%t", v.On)
	case Axis:
		return fmt.Sprintf("%g", v.X)
	default:
		return fmt.Sprintf("(%g, %g)", v.X, v.Y)
	}
}

func (v Value) valid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
