// Package anim plays montages, named clips with addressable sections, and
// reports timed notifies to observers as the clock advances.
package anim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/slash/internal/core"
)

// MontageEnded is delivered once a section plays to completion.
const MontageEnded = "MontageEnded"

var (
	ErrUnknownMontage = errors.New("unknown montage")
	ErrUnknownSection = errors.New("unknown montage section")
	ErrNotPlaying     = errors.New("no montage is playing")
)

// Notify is an event raised by a playing section.
type Notify struct {
	Montage string
	Section string
	Name    string
}

// Observer receives notifies. Observers run synchronously on the goroutine
// calling Tick and may start another montage.
type Observer func(Notify)

type section struct {
	name     string
	length   float64
	notifies []core.NotifyConfig
}

type montage struct {
	name     string
	sections map[string]section
}

type playback struct {
	montage string
	section section
	elapsed float64
	next    int
}

// Animator plays at most one montage at a time. Starting a montage interrupts
// the current one without delivering its outstanding notifies.
type Animator struct {
	logger    *logrus.Entry
	montages  map[string]montage
	observers []Observer
	current   *playback
}

// NewAnimator builds an animator from montage definitions.
func NewAnimator(defs []core.MontageConfig, logger *logrus.Logger) (*Animator, error) {
	a := &Animator{
		logger:   logger.WithField("component", "animator"),
		montages: make(map[string]montage, len(defs)),
	}
	for _, def := range defs {
		m := montage{name: def.Name, sections: make(map[string]section, len(def.Sections))}
		for _, s := range def.Sections {
			if s.Length <= 0 {
				return nil, fmt.Errorf("section %s of %s must have a positive length", s.Name, def.Name)
			}
			notifies := append([]core.NotifyConfig(nil), s.Notifies...)
			sort.SliceStable(notifies, func(i, j int) bool { return notifies[i].At < notifies[j].At })
			m.sections[s.Name] = section{name: s.Name, length: s.Length, notifies: notifies}
		}
		a.montages[def.Name] = m
	}
	return a, nil
}

// Subscribe registers an observer for every notify.
func (a *Animator) Subscribe(o Observer) {
	a.observers = append(a.observers, o)
}

// Play starts section of the named montage from its beginning.
func (a *Animator) Play(montageName, sectionName string) error {
	m, ok := a.montages[montageName]
	if !ok {
		return fmt.Errorf("%s: %w", montageName, ErrUnknownMontage)
	}
	s, ok := m.sections[sectionName]
	if !ok {
		return fmt.Errorf("%s in %s: %w", sectionName, montageName, ErrUnknownSection)
	}
	if a.current != nil {
		a.logger.Debugf("interrupting %s/%s", a.current.montage, a.current.section.name)
	}
	a.current = &playback{montage: montageName, section: s}
	a.logger.Debugf("playing %s/%s", montageName, sectionName)
	return nil
}

// JumpToSection restarts the playing montage at another of its sections.
func (a *Animator) JumpToSection(sectionName string) error {
	if a.current == nil {
		return ErrNotPlaying
	}
	return a.Play(a.current.montage, sectionName)
}

// Playing returns the active montage and section, if any.
func (a *Animator) Playing() (montage, section string, ok bool) {
	if a.current == nil {
		return "", "", false
	}
	return a.current.montage, a.current.section.name, true
}

// Stop abandons the current montage without notifying observers.
func (a *Animator) Stop() {
	a.current = nil
}

// Tick advances the playing section by dt seconds and delivers every notify
// whose time has been reached, followed by MontageEnded at the section end.
func (a *Animator) Tick(dt float64) {
	p := a.current
	if p == nil {
		return
	}
	p.elapsed += dt

	for p.next < len(p.section.notifies) && p.section.notifies[p.next].At <= p.elapsed {
		n := p.section.notifies[p.next]
		p.next++
		a.emit(Notify{Montage: p.montage, Section: p.section.name, Name: n.Name})
		if a.current != p {
			// An observer started something else.
			return
		}
	}

	if p.elapsed >= p.section.length {
		a.current = nil
		a.emit(Notify{Montage: p.montage, Section: p.section.name, Name: MontageEnded})
	}
}

func (a *Animator) emit(n Notify) {
	for _, o := range a.observers {
		o(n)
	}
}
