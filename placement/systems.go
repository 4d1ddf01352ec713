package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// ReticleSystem shows the reticle at the first hit-test result and hides it
// when there is none. Only the hit position is used; the reticle stays level.
type ReticleSystem struct {
	Hits    ecs.Singleton[HitTest]
	Reticle ecs.Singleton[Reticle]
}

func (s *ReticleSystem) Execute(frame *ecs.UpdateFrame) {
	reticle := s.Reticle.Get()
	results := s.Hits.Get().Results
	if len(results) == 0 {
		reticle.Visible = false
		return
	}

	reticle.Visible = true
	reticle.Pose = xr.Pose{Position: results[0].Position, Orientation: mgl64.QuatIdent()}
}

// PlacementSystem places an object at the reticle on each rising edge of
// select. Selecting while the reticle is hidden does nothing.
type PlacementSystem struct {
	Select  ecs.Singleton[Select]
	Reticle ecs.Singleton[Reticle]

	cfg *Config
}

func (s *PlacementSystem) Execute(frame *ecs.UpdateFrame) {
	sel := s.Select.Get()
	edge := sel.Pressed && !sel.Held
	sel.Held = sel.Pressed
	if !edge {
		return
	}

	reticle := s.Reticle.Get()
	if !reticle.Visible {
		return
	}
	frame.Commands.Spawn(Placed{Pose: reticle.Pose, Size: s.cfg.ObjectSize})
}
