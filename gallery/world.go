// Package gallery implements the shooting-gallery frame loop: edge-triggered
// fire, projectile flight and expiry, hit detection against targets, score
// keeping, and the timed shrink/relocate/regrow sequence of a hit target.
//
// The loop is a set of ECS systems run by a World once per host frame:
//
//	FireSystem -> TweenSystem -> ProjectileSystem -> ScoreSystem
//
// Structural changes (new and removed projectiles) are applied at the end of
// the frame in which they were decided; target phase changes run on the
// scheduler's simulation-time timers after that.
package gallery

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// Input is what the host samples from its devices each frame.
type Input struct {
	// Trigger is the current level of the fire button; the world detects edges.
	Trigger bool
	// Origin is the firing controller's world pose.
	Origin xr.Pose
}

// ProjectileState is a read-only snapshot of a live projectile.
type ProjectileState struct {
	Id       ecs.EntityId
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	TTL      float64
}

// TargetState is a read-only snapshot of a target.
type TargetState struct {
	Id       ecs.EntityId
	Slot     int
	Position mgl64.Vec3
	Scale    float64
	Visible  bool
	Active   bool
}

// World owns the gallery's storage, scheduler and systems.
type World struct {
	cfg    Config
	collab Collaborators

	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	trigger *ecs.Singleton[Trigger]
	score   *ecs.Singleton[Score]
	stats   *ecs.Singleton[Stats]

	projectiles *ecs.View[projectileView]
	targets     *ecs.View[targetView]
}

// NewWorld validates cfg, spawns cfg.TargetCount targets at random positions
// and wires the systems.
func NewWorld(cfg Config, collab Collaborators) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		cfg:         cfg,
		collab:      collab,
		registry:    registry,
		storage:     storage,
		scheduler:   ecs.NewScheduler(storage),
		trigger:     ecs.NewSingleton[Trigger](storage, Trigger{Origin: xr.IdentityPose()}),
		score:       ecs.NewSingleton[Score](storage),
		stats:       ecs.NewSingleton[Stats](storage),
		projectiles: ecs.NewView[projectileView](storage),
		targets:     ecs.NewView[targetView](storage),
	}

	hits := &hitSequence{
		cfg:     &w.cfg,
		rng:     rng,
		timers:  w.scheduler.Timers(),
		targets: w.targets,
		stats:   w.stats,
	}

	for slot := 0; slot < cfg.TargetCount; slot++ {
		storage.Spawn(
			xr.NewTransform(xr.Pose{
				Position:    hits.randomPosition(cfg.TargetY + float64(slot)*cfg.TargetYStep),
				Orientation: mgl64.QuatIdent(),
			}),
			Target{Slot: slot, Visible: true, Active: true},
			ScaleTween{},
		)
	}

	w.scheduler.Register(&FireSystem{cfg: &w.cfg, collab: &w.collab})
	w.scheduler.Register(&TweenSystem{})
	w.scheduler.Register(&ProjectileSystem{cfg: &w.cfg, collab: &w.collab, hits: hits})
	scoreSystem := &ScoreSystem{display: collab.Display}
	scoreSystem.render(0)
	w.scheduler.Register(scoreSystem)

	return w, nil
}

// Step runs one frame. Non-finite, zero and negative dt are treated as zero
// so state never moves backwards. Does nothing after Close.
func (w *World) Step(dt float64, in Input) {
	if w.scheduler.Closed() {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	trigger := w.trigger.Get()
	trigger.Pressed = in.Trigger
	trigger.Origin = in.Origin

	w.scheduler.Once(dt)
}

// Close tears the world down. Pending target sequences are dropped and
// further Steps are ignored.
func (w *World) Close() {
	w.scheduler.Close()
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Score returns the raw, unclamped score.
func (w *World) Score() int {
	return w.score.Get().Value
}

// ScoreText returns the score as the display shows it.
func (w *World) ScoreText() string {
	return FormatScore(w.Score())
}

// Stats returns a copy of the gameplay counters.
func (w *World) Stats() Stats {
	return *w.stats.Get()
}

// Now returns the simulation time in seconds.
func (w *World) Now() float64 {
	return w.scheduler.Now()
}

// Projectiles returns the live projectiles in storage order.
func (w *World) Projectiles() []ProjectileState {
	var out []ProjectileState
	for id, p := range w.projectiles.Iter() {
		out = append(out, ProjectileState{
			Id:       id,
			Position: p.Transform.Position,
			Velocity: p.Projectile.Velocity,
			TTL:      p.Projectile.TTL,
		})
	}
	return out
}

// Targets returns every target in slot order.
func (w *World) Targets() []TargetState {
	var out []TargetState
	for id, t := range w.targets.Iter() {
		out = append(out, TargetState{
			Id:       id,
			Slot:     t.Target.Slot,
			Position: t.Transform.Position,
			Scale:    t.Transform.Scale,
			Visible:  t.Target.Visible,
			Active:   t.Target.Active,
		})
	}
	return out
}

// SpawnProjectile inserts a projectile directly, bypassing the trigger.
// It takes part in the next Step.
func (w *World) SpawnProjectile(position, velocity mgl64.Vec3, ttl float64) ecs.EntityId {
	return w.storage.Spawn(
		xr.NewTransform(xr.Pose{Position: position, Orientation: mgl64.QuatIdent()}),
		Projectile{Velocity: velocity, TTL: ttl},
	)
}

// PlaceTarget moves the target in slot to position.
func (w *World) PlaceTarget(slot int, position mgl64.Vec3) error {
	for _, t := range w.targets.Iter() {
		if t.Target.Slot == slot {
			t.Transform.Position = position
			return nil
		}
	}
	return fmt.Errorf("no target in slot %d", slot)
}

// Registry, Storage and Scheduler expose the ECS so hosts can add their own
// components and systems (debug overlays, renderers).
func (w *World) Registry() *ecs.ComponentRegistry { return w.registry }

func (w *World) Storage() *ecs.Storage { return w.storage }

func (w *World) Scheduler() *ecs.Scheduler { return w.scheduler }
