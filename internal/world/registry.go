// Package world owns the weapons lying around in (or held within) a scene and
// the pickup volumes that let characters reach them.
package world

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/slash/internal/kinematics"
	"github.com/dcrodman/slash/internal/weapon"
)

var (
	ErrUnknownWeapon   = errors.New("unknown weapon")
	ErrDuplicateHandle = errors.New("weapon handle already registered")
)

// Registry is the owner of every weapon in the scene. Everything else refers
// to weapons by handle and resolves them through Lookup.
type Registry struct {
	logger *logrus.Entry
	store  *cache
	nextID weapon.Handle
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		logger: logger.WithField("component", "registry"),
		store:  newCache(),
		nextID: 1,
	}
}

func key(h weapon.Handle) string {
	return strconv.FormatUint(uint64(h), 10)
}

// Spawn creates a new weapon at location and registers it.
func (r *Registry) Spawn(name string, location kinematics.Vec3) *weapon.Weapon {
	w := weapon.New(r.nextID, name, location)
	r.nextID++
	r.store.put(key(w.ID), w, -1)
	r.logger.WithField("weapon", w.ID).Debugf("spawned %s", name)
	return w
}

// Add registers an existing weapon, such as one loaded from the database. A
// weapon without a handle is assigned the next free one.
func (r *Registry) Add(w *weapon.Weapon) error {
	if w.ID == weapon.NoHandle {
		w.ID = r.nextID
	}
	if _, ok := r.store.get(key(w.ID)); ok {
		return fmt.Errorf("%s: %w", w.ID, ErrDuplicateHandle)
	}
	if w.ID >= r.nextID {
		r.nextID = w.ID + 1
	}
	r.store.put(key(w.ID), w, -1)
	return nil
}

// Lookup resolves a handle. Destroyed or unknown handles are not found.
func (r *Registry) Lookup(h weapon.Handle) (*weapon.Weapon, bool) {
	if h == weapon.NoHandle {
		return nil, false
	}
	v, ok := r.store.get(key(h))
	if !ok {
		return nil, false
	}
	return v.(*weapon.Weapon), true
}

// Find returns the lowest-handled weapon with the given name.
func (r *Registry) Find(name string) (*weapon.Weapon, bool) {
	for _, w := range r.All() {
		if w.Name == name {
			return w, true
		}
	}
	return nil, false
}

// Destroy removes a weapon from the scene. Outstanding handles stop resolving.
func (r *Registry) Destroy(h weapon.Handle) error {
	if _, ok := r.Lookup(h); !ok {
		return fmt.Errorf("%s: %w", h, ErrUnknownWeapon)
	}
	r.store.remove(key(h))
	r.logger.WithField("weapon", h).Debug("destroyed")
	return nil
}

// All returns every registered weapon ordered by handle.
func (r *Registry) All() []*weapon.Weapon {
	values := r.store.values()
	weapons := make([]*weapon.Weapon, 0, len(values))
	for _, v := range values {
		weapons = append(weapons, v.(*weapon.Weapon))
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].ID < weapons[j].ID })
	return weapons
}

// Reserve makes sure no handle below next is handed out by Spawn. Handles of
// weapons deleted from storage must not be reused.
func (r *Registry) Reserve(next weapon.Handle) {
	if next > r.nextID {
		r.nextID = next
	}
}
