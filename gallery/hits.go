package gallery

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
)

// hitSequence runs shrink -> hidden/relocate -> regrow for a hit target. The
// phases are chained on the scheduler's timers and look the target up again
// through an EntityRef, so a callback for a removed target or a closed world
// does nothing.
type hitSequence struct {
	cfg     *Config
	rng     *rand.Rand
	timers  *ecs.Timers
	targets *ecs.View[targetView]
	stats   *ecs.Singleton[Stats]
}

func (h *hitSequence) start(frame *ecs.UpdateFrame, id ecs.EntityId, t targetView) {
	t.Target.Active = false
	t.ScaleTween.start(t.Transform.Scale, 0, h.cfg.ShrinkDuration)

	ref := frame.Storage.CreateEntityRef(id)
	h.timers.After(h.cfg.ShrinkDuration, func() { h.hide(ref) })
}

func (h *hitSequence) hide(ref *ecs.EntityRef) {
	t := h.targets.GetRef(ref)
	if t == nil {
		return
	}

	t.Target.Visible = false
	t.Transform.Scale = 0
	t.ScaleTween.Running = false

	h.timers.After(h.cfg.RespawnDelay, func() { h.respawn(ref) })
}

func (h *hitSequence) respawn(ref *ecs.EntityRef) {
	t := h.targets.GetRef(ref)
	if t == nil {
		return
	}

	t.Transform.Position = h.randomPosition(t.Transform.Position.Y())
	t.Target.Visible = true
	t.Target.Active = true
	t.ScaleTween.start(0, 1, h.cfg.GrowDuration)
	h.stats.Get().Respawns++
}

func (h *hitSequence) randomPosition(y float64) mgl64.Vec3 {
	return mgl64.Vec3{
		uniform(h.rng, h.cfg.SpawnMinX, h.cfg.SpawnMaxX),
		y,
		uniform(h.rng, h.cfg.SpawnMinZ, h.cfg.SpawnMaxZ),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
