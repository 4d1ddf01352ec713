package gallery

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// Projectile is a bullet in flight. Its position lives in the entity's xr.Transform.
type Projectile struct {
	Velocity mgl64.Vec3
	// TTL is the remaining lifetime in seconds.
	TTL float64
}

// Target is a shootable object. Targets are never deleted, only hidden and moved.
type Target struct {
	// Slot is the spawn order; collision tests visit targets by ascending slot.
	Slot    int
	Visible bool
	// Active is false from the moment of a hit until the target reappears.
	Active bool
}

// Hittable reports whether projectiles may collide with the target.
func (t *Target) Hittable() bool {
	return t.Visible && t.Active
}

// ScaleTween animates xr.Transform.Scale linearly.
type ScaleTween struct {
	From, To float64
	Elapsed  float64
	Duration float64
	Running  bool
}

func (tw *ScaleTween) start(from, to, duration float64) {
	*tw = ScaleTween{From: from, To: to, Duration: duration, Running: true}
}

// Trigger is the input singleton written by the host before every frame.
type Trigger struct {
	Pressed bool
	Origin  xr.Pose
	// Held is the level seen on the previous frame, for edge detection.
	Held bool
}

// Score is the player's running score. It is never clamped; FormatScore clamps for display.
type Score struct {
	Value int
}

// Stats counts gameplay events since the world was created.
type Stats struct {
	Fired    int
	Hits     int
	Expired  int
	Misfires int
	Respawns int
}

// RegisterComponents registers every gallery component type with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[xr.Transform](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[ScaleTween](registry)
	ecs.RegisterComponent[Trigger](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Stats](registry)
}

type projectileView = struct {
	*xr.Transform
	*Projectile
}

type targetView = struct {
	*xr.Transform
	*Target
	*ScaleTween
}
