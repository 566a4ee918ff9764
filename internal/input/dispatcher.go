package input

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

var (
	ErrUnknownAction  = errors.New("unknown input action")
	ErrUnknownHandler = errors.New("unknown input handler")
	ErrWrongValueKind = errors.New("wrong value kind for action")
	ErrInvalidValue   = errors.New("input value is not finite")
)

// Handler services one input action.
type Handler func(Value) error

// Endpoint is a handler together with the value kind it accepts.
type Endpoint struct {
	Kind    Kind
	Handler Handler
}

// Dispatcher routes named input actions to handlers. The action table is
// supplied at construction rather than registered globally, so two
// characters can be bound to different layouts.
//
// Action and handler names are matched case-insensitively since config keys
// arrive lowercased.
type Dispatcher struct {
	routes map[string]route
}

type route struct {
	action   string
	handler  string
	endpoint Endpoint
}

// NewDispatcher binds each action in bindings (action -> handler name) to the
// endpoint of that name. Every binding must resolve.
func NewDispatcher(bindings map[string]string, endpoints map[string]Endpoint) (*Dispatcher, error) {
	byName := make(map[string]Endpoint, len(endpoints))
	for name, e := range endpoints {
		byName[fold(name)] = e
	}

	d := &Dispatcher{routes: make(map[string]route, len(bindings))}
	for action, handlerName := range bindings {
		e, ok := byName[fold(handlerName)]
		if !ok {
			return nil, fmt.Errorf("binding %s to %s: %w", action, handlerName, ErrUnknownHandler)
		}
		d.routes[fold(action)] = route{action: action, handler: handlerName, endpoint: e}
	}
	return d, nil
}

// fold maps a name onto its case-folded form for lookups.
func fold(name string) string {
	return cases.Fold().String(name)
}

// Dispatch delivers value to the handler bound to action.
func (d *Dispatcher) Dispatch(action string, value Value) error {
	r, ok := d.routes[fold(action)]
	if !ok {
		return fmt.Errorf("%s: %w", action, ErrUnknownAction)
	}
	if r.endpoint.Kind != value.Kind {
		return fmt.Errorf("%s expects %s, got %s: %w", action, r.endpoint.Kind, value.Kind, ErrWrongValueKind)
	}
	if !value.valid() {
		return fmt.Errorf("%s: %w", action, ErrInvalidValue)
	}
	return r.endpoint.Handler(value)
}

// KindOf returns the value kind expected by action.
func (d *Dispatcher) KindOf(action string) (Kind, bool) {
	r, ok := d.routes[fold(action)]
	return r.endpoint.Kind, ok
}

// Actions lists the bound action names in sorted order.
func (d *Dispatcher) Actions() []string {
	actions := make([]string, 0, len(d.routes))
	for _, r := range d.routes {
		actions = append(actions, r.action)
	}
	sort.Strings(actions)
	return actions
}
