package placement

import (
	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/xr"
)

// Reticle marks where a select would place an object.
type Reticle struct {
	Visible bool
	Pose    xr.Pose
}

// Placed is a cube standing in the world.
type Placed struct {
	Pose xr.Pose
	Size float64
	// Anchor is set on the cube the world starts with.
	Anchor bool
}

// HitTest holds this frame's hit-test results, nearest first.
type HitTest struct {
	Results []xr.Pose
}

// Select is the input singleton for the select action.
type Select struct {
	Pressed bool
	Held    bool
}

// RegisterComponents registers every placement component type with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Reticle](registry)
	ecs.RegisterComponent[Placed](registry)
	ecs.RegisterComponent[HitTest](registry)
	ecs.RegisterComponent[Select](registry)
}
