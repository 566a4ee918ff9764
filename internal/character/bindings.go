package character

import "github.com/dcrodman/slash/internal/input"

// Endpoints exposes the character's input handlers by name, for binding
// through an input.Dispatcher.
func (c *Character) Endpoints() map[string]input.Endpoint {
	return map[string]input.Endpoint{
		"Move": {Kind: input.Vector2, Handler: func(v input.Value) error {
			c.Move(v)
			return nil
		}},
		"Look": {Kind: input.Vector2, Handler: func(v input.Value) error {
			c.Look(v)
			return nil
		}},
		"Jump": {Kind: input.Trigger, Handler: func(v input.Value) error {
			c.Jump(v)
			return nil
		}},
		"Zoom": {Kind: input.Axis, Handler: func(v input.Value) error {
			c.Zoom(v)
			return nil
		}},
		"Equip": {Kind: input.Trigger, Handler: func(v input.Value) error {
			if !c.pawn.HasController() || !v.Pressed() {
				return nil
			}
			return c.ToggleEquip()
		}},
		"Attack": {Kind: input.Trigger, Handler: c.Attack},
		"Drop": {Kind: input.Trigger, Handler: func(v input.Value) error {
			if c.pawn.HasController() && v.Pressed() {
				c.Drop()
			}
			return nil
		}},
	}
}
