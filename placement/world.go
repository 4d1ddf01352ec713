// Package placement implements the AR placement loop: a reticle follows the
// host's hit-test results and each select drops a cube where it points.
package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// Frame is what the host samples each frame.
type Frame struct {
	// HitResults are this frame's hit-test poses, nearest first.
	HitResults []xr.Pose
	// Select is the current level of the select action; the world detects edges.
	Select bool
}

// PlacedState is a read-only snapshot of a placed cube.
type PlacedState struct {
	Id     ecs.EntityId
	Pose   xr.Pose
	Size   float64
	Anchor bool
}

// World owns the placement storage and systems.
type World struct {
	cfg       Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	hits    *ecs.Singleton[HitTest]
	sel     *ecs.Singleton[Select]
	reticle *ecs.Singleton[Reticle]
	placed  *ecs.View[struct{ *Placed }]
}

// NewWorld validates cfg and spawns the anchor cube.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		cfg:       cfg,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		hits:      ecs.NewSingleton[HitTest](storage),
		sel:       ecs.NewSingleton[Select](storage),
		reticle:   ecs.NewSingleton[Reticle](storage),
		placed:    ecs.NewView[struct{ *Placed }](storage),
	}

	if cfg.AnchorSize > 0 {
		storage.Spawn(Placed{
			Pose:   xr.Pose{Position: cfg.AnchorPosition, Orientation: mgl64.QuatIdent()},
			Size:   cfg.AnchorSize,
			Anchor: true,
		})
	}

	w.scheduler.Register(&ReticleSystem{})
	w.scheduler.Register(&PlacementSystem{cfg: &w.cfg})
	return w, nil
}

// Step runs one frame. Objects placed this frame are visible to Placed once Step returns.
func (w *World) Step(dt float64, f Frame) {
	w.hits.Get().Results = append(w.hits.Get().Results[:0], f.HitResults...)
	w.sel.Get().Pressed = f.Select
	w.scheduler.Once(dt)
}

// Close stops the world; further Steps are ignored.
func (w *World) Close() {
	w.scheduler.Close()
}

// Reticle returns the reticle as of the last Step.
func (w *World) Reticle() Reticle {
	return *w.reticle.Get()
}

// Placed returns every cube in placement order, the anchor first.
func (w *World) Placed() []PlacedState {
	var out []PlacedState
	for id, p := range w.placed.Iter() {
		out = append(out, PlacedState{
			Id:     id,
			Pose:   p.Placed.Pose,
			Size:   p.Placed.Size,
			Anchor: p.Placed.Anchor,
		})
	}
	return out
}

func (w *World) Storage() *ecs.Storage { return w.storage }

func (w *World) Scheduler() *ecs.Scheduler { return w.scheduler }
