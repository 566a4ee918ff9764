package internal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dcrodman/slash/internal/anim"
	"github.com/dcrodman/slash/internal/character"
	"github.com/dcrodman/slash/internal/core"
	"github.com/dcrodman/slash/internal/core/data"
	"github.com/dcrodman/slash/internal/core/debug"
	"github.com/dcrodman/slash/internal/input"
	"github.com/dcrodman/slash/internal/kinematics"
	"github.com/dcrodman/slash/internal/script"
	"github.com/dcrodman/slash/internal/weapon"
	"github.com/dcrodman/slash/internal/world"
)

// Controller is the main entrypoint for slash. It's responsible for initializing
// any shared resources (such as database and logging), restoring the scene and
// running the simulation. Everything it owns is driven from the goroutine that
// calls Start.
type Controller struct {
	Config *core.Config
	// Logger is created from Config when left nil.
	Logger *logrus.Logger

	db         *gorm.DB
	registry   *world.Registry
	overlaps   *world.Overlaps
	animator   *anim.Animator
	pawn       *kinematics.Pawn
	character  *character.Character
	dispatcher *input.Dispatcher
	dumper     *debug.Dumper

	// Weapons destroyed during this run, deleted from storage on shutdown.
	destroyed []weapon.Handle
}

// Start restores the scene from the database, plays s against it and saves
// the resulting state, also when ctx is cancelled part way through.
func (c *Controller) Start(ctx context.Context, s *script.Script) (err error) {
	if err := c.init(); err != nil {
		c.closeDatabase()
		return err
	}
	defer func() {
		if shutdownErr := c.Shutdown(); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	c.Logger.Infof("running %d script steps at %d ticks per second", len(s.Steps), c.Config.Simulation.TickRate)
	return c.run(ctx, s)
}

func (c *Controller) init() error {
	if c.Logger == nil {
		logger, err := core.NewLogger(c.Config)
		if err != nil {
			return fmt.Errorf("error initializing logger: %w", err)
		}
		c.Logger = logger
	}

	// Start any debug utilities if we're configured to do so.
	debug.StartUtilities(c.Logger, c.Config)
	c.dumper = debug.NewDumper(c.Logger, c.Config)

	var err error
	c.db, err = data.Initialize(
		c.Config.Database.Engine,
		c.Config.DataSource(),
		c.Config.Debugging.DatabaseLoggingEnabled,
	)
	if err != nil {
		return err
	}

	if err := c.loadWeapons(); err != nil {
		return err
	}

	c.animator, err = anim.NewAnimator(c.Config.Montages, c.Logger)
	if err != nil {
		return fmt.Errorf("error loading montages: %w", err)
	}

	return c.loadCharacter()
}

func (c *Controller) loadWeapons() error {
	c.registry = world.NewRegistry(c.Logger)
	c.overlaps = world.NewOverlaps(c.registry)

	records, err := data.FindWeapons(c.db)
	if err != nil {
		return fmt.Errorf("error loading weapons: %w", err)
	}
	for _, rec := range records {
		w := weaponFromRecord(rec)
		c.configureWeapon(w)
		if err := c.registry.Add(w); err != nil {
			return fmt.Errorf("error registering weapon %d: %w", rec.ID, err)
		}
	}

	next, err := data.NextWeaponID(c.db)
	if err != nil {
		return fmt.Errorf("error reading next weapon id: %w", err)
	}
	c.registry.Reserve(weapon.Handle(next))

	c.Logger.Infof("loaded %d weapons", len(records))
	return nil
}

// configureWeapon points a weapon's attack at the configured attack montage.
func (c *Controller) configureWeapon(w *weapon.Weapon) {
	w.AttackMontage = c.Config.Character.AttackMontage
	for _, m := range c.Config.Montages {
		if m.Name != w.AttackMontage || len(m.Sections) == 0 {
			continue
		}
		w.AttackSections = w.AttackSections[:0]
		for _, s := range m.Sections {
			w.AttackSections = append(w.AttackSections, s.Name)
		}
	}
}

func (c *Controller) loadCharacter() error {
	cfg := c.Config.Character

	rec, err := data.FindCharacter(c.db, cfg.Name)
	if err != nil {
		return fmt.Errorf("error loading character %s: %w", cfg.Name, err)
	}
	if rec == nil {
		rec = &data.Character{Name: cfg.Name}
		if err := data.UpsertCharacter(c.db, rec); err != nil {
			return fmt.Errorf("error creating character %s: %w", cfg.Name, err)
		}
		c.Logger.Infof("created character %s", cfg.Name)
	}
	snapshot, location := snapshotFromRecord(rec)

	c.pawn = kinematics.NewPawn(location, cfg.WalkSpeed, cfg.JumpVelocity, cfg.RotationRate)
	c.character = character.New(character.Options{
		Config:   cfg,
		Weapons:  c.registry,
		Animator: c.animator,
		Pawn:     c.pawn,
		Logger:   c.Logger,
	})
	c.animator.Subscribe(c.character.OnNotify)
	c.character.Restore(snapshot)

	bindings, err := c.loadBindings(rec.ID)
	if err != nil {
		return err
	}
	c.dispatcher, err = input.NewDispatcher(bindings, c.character.Endpoints())
	if err != nil {
		return fmt.Errorf("error binding input actions: %w", err)
	}
	return nil
}

// loadBindings overlays the character's stored key config on the configured
// bindings, creating an empty key config on first use.
func (c *Controller) loadBindings(characterID uint64) (map[string]string, error) {
	bindings := make(map[string]string, len(c.Config.Input.Bindings))
	for action, handler := range c.Config.Input.Bindings {
		bindings[strings.ToLower(action)] = handler
	}

	options, err := data.FindPlayerOptions(c.db, characterID)
	if err != nil {
		return nil, fmt.Errorf("error loading player options: %w", err)
	}
	if options == nil {
		options = &data.PlayerOptions{CharacterID: characterID, KeyConfig: map[string]string{}}
		if err := data.CreatePlayerOptions(c.db, options); err != nil {
			return nil, fmt.Errorf("error creating player options: %w", err)
		}
	}
	for action, handler := range options.KeyConfig {
		bindings[strings.ToLower(action)] = handler
	}
	return bindings, nil
}

func (c *Controller) run(ctx context.Context, s *script.Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.runStep(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Type(), err)
		}
	}
	return nil
}

func (c *Controller) runStep(ctx context.Context, step script.Step) error {
	switch step.Type() {
	case script.ActionStep:
		return c.dispatch(step)
	case script.SpawnStep:
		w := c.registry.Spawn(step.Spawn, step.Location())
		c.configureWeapon(w)
		c.Logger.Infof("spawned %s as %s", w.Name, w.ID)
	case script.OverlapStep:
		w, err := c.findWeapon(step.Overlap)
		if err != nil {
			return err
		}
		return c.overlaps.Enter(c.character, w.ID)
	case script.LeaveStep:
		w, err := c.findWeapon(step.Leave)
		if err != nil {
			return err
		}
		c.overlaps.Exit(c.character, w.ID)
	case script.DestroyStep:
		w, err := c.findWeapon(step.Destroy)
		if err != nil {
			return err
		}
		if err := c.registry.Destroy(w.ID); err != nil {
			return err
		}
		c.overlaps.Forget(w.ID)
		c.destroyed = append(c.destroyed, w.ID)
	case script.WaitStep:
		return c.wait(ctx, step.Wait)
	}
	return nil
}

func (c *Controller) findWeapon(name string) (*weapon.Weapon, error) {
	w, ok := c.registry.Find(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, world.ErrUnknownWeapon)
	}
	return w, nil
}

// dispatch feeds an action to the character. Actions the character refuses
// are logged and the script carries on.
func (c *Controller) dispatch(step script.Step) error {
	kind, ok := c.dispatcher.KindOf(step.Action)
	if !ok {
		return fmt.Errorf("%s: %w", step.Action, input.ErrUnknownAction)
	}
	value, err := step.InputValue(kind)
	if err != nil {
		return err
	}

	if err := c.dispatcher.Dispatch(step.Action, value); err != nil {
		if !errors.Is(err, character.ErrNoWeaponEquipped) {
			c.Logger.Warnf("%s(%s): %v", step.Action, value, err)
		} else {
			c.Logger.Infof("%s(%s): %v", step.Action, value, err)
		}
	}

	// A held weapon no longer offers a pickup volume.
	if held := c.character.EquippedWeapon(); held != weapon.NoHandle {
		c.overlaps.Forget(held)
	}

	c.dumper.Dump("after "+step.Action, c.character.Snapshot(), c.registry.All())
	return nil
}

// wait advances the simulation by seconds, rounded up to whole ticks.
func (c *Controller) wait(ctx context.Context, seconds float64) error {
	rate := c.Config.Simulation.TickRate
	ticks := int(math.Ceil(seconds * float64(rate)))
	dt := 1 / float64(rate)

	var ticker *time.Ticker
	if c.Config.Simulation.Realtime {
		ticker = time.NewTicker(c.Config.TickInterval())
		defer ticker.Stop()
	}

	for i := 0; i < ticks; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		c.tick(dt)
	}
	return nil
}

func (c *Controller) tick(dt float64) {
	c.pawn.Tick(dt)
	c.animator.Tick(dt)
}

// Shutdown saves the scene and closes the database.
func (c *Controller) Shutdown() error {
	if c.db == nil {
		return nil
	}
	defer c.closeDatabase()
	if c.character == nil {
		return nil
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		for _, w := range c.registry.All() {
			if err := data.UpsertWeapon(tx, weaponRecord(w)); err != nil {
				return fmt.Errorf("error saving weapon %s: %w", w.ID, err)
			}
		}
		for _, h := range c.destroyed {
			if err := data.DeleteWeapon(tx, uint64(h)); err != nil {
				return fmt.Errorf("error deleting weapon %s: %w", h, err)
			}
		}
		rec := characterRecord(c.character.Snapshot(), c.pawn.Location())
		if err := data.UpsertCharacter(tx, rec); err != nil {
			return fmt.Errorf("error saving character %s: %w", rec.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.Logger.Infof("saved %d weapons and character %s", len(c.registry.All()), c.character.Name())
	return nil
}

func (c *Controller) closeDatabase() {
	if c.db == nil {
		return
	}
	if err := data.Shutdown(c.db); err != nil && c.Logger != nil {
		c.Logger.Errorf("%v", err)
	}
	c.db = nil
}
