// Package script reads replay files: ordered lists of input actions and world
// events that drive a character without a live player.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/kinematics"
)

// StepType identifies what a step does.
type StepType uint8

const (
	ActionStep StepType = iota
	SpawnStep
	OverlapStep
	LeaveStep
	DestroyStep
	WaitStep
)

func (t StepType) String() string {
	switch t {
	case ActionStep:
		return "action"
	case SpawnStep:
		return "spawn"
	case OverlapStep:
		return "overlap"
	case LeaveStep:
		return "leave"
	case DestroyStep:
		return "destroy"
	case WaitStep:
		return "wait"
	}
	return fmt.Sprintf("StepType(%d)", uint8(t))
}

var ErrBadValue = errors.New("value does not fit action")

// Step is a single entry of a script. Exactly one of the verbs is set.
type Step struct {
	// Dispatch an input action with Value.
	Action string      `yaml:"action"`
	Value  interface{} `yaml:"value"`

	// Create a weapon named Spawn at At.
	Spawn string    `yaml:"spawn"`
	At    []float64 `yaml:"at"`

	// Enter or leave the pickup volume of the named weapon.
	Overlap string `yaml:"overlap"`
	Leave   string `yaml:"leave"`

	// Remove the named weapon from the world.
	Destroy string `yaml:"destroy"`

	// Let the simulation run for Wait seconds.
	Wait float64 `yaml:"wait"`

	typ StepType
}

func (s Step) Type() StepType { return s.typ }

// Script is a parsed replay file.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(b)
}

// Parse decodes a script and checks that every step names exactly one verb.
func Parse(b []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.UnmarshalStrict(b, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i := range s.Steps {
		if err := s.Steps[i].classify(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

func (s *Step) classify() error {
	var verbs []StepType
	if s.Action != "" {
		verbs = append(verbs, ActionStep)
	}
	if s.Spawn != "" {
		verbs = append(verbs, SpawnStep)
	}
	if s.Overlap != "" {
		verbs = append(verbs, OverlapStep)
	}
	if s.Leave != "" {
		verbs = append(verbs, LeaveStep)
	}
	if s.Destroy != "" {
		verbs = append(verbs, DestroyStep)
	}
	if s.Wait != 0 {
		verbs = append(verbs, WaitStep)
	}

	switch {
	case len(verbs) == 0:
		return errors.New("no action, spawn, overlap, leave, destroy or wait")
	case len(verbs) > 1:
		return fmt.Errorf("more than one verb (%v)", verbs)
	}
	s.typ = verbs[0]

	if s.typ == WaitStep && s.Wait < 0 {
		return fmt.Errorf("negative wait %v", s.Wait)
	}
	if s.typ == SpawnStep && len(s.At) != 0 && len(s.At) != 3 {
		return fmt.Errorf("spawn location needs 3 coordinates, got %d", len(s.At))
	}
	return nil
}

// Location is where a spawn step places its weapon. It defaults to the origin.
func (s Step) Location() kinematics.Vec3 {
	if len(s.At) != 3 {
		return kinematics.Vec3{}
	}
	return kinematics.Vec3{X: s.At[0], Y: s.At[1], Z: s.At[2]}
}

// InputValue converts the step's raw value into the kind the action expects.
// Triggers default to pressed when no value is given.
func (s Step) InputValue(kind input.Kind) (input.Value, error) {
	switch kind {
	case input.Trigger:
		switch v := s.Value.(type) {
		case nil:
			return input.TriggerValue(true), nil
		case bool:
			return input.TriggerValue(v), nil
		}
	case input.Axis:
		if f, ok := number(s.Value); ok {
			return input.AxisValue(f), nil
		}
	case input.Vector2:
		if list, ok := s.Value.([]interface{}); ok && len(list) == 2 {
			x, okX := number(list[0])
			y, okY := number(list[1])
			if okX && okY {
				return input.Vector2Value(x, y), nil
			}
		}
	}
	return input.Value{}, fmt.Errorf("%s wants a %s, got %v: %w", s.Action, kind, s.Value, ErrBadValue)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
