package ecs_test

import "github.com/plus3/xrgallery/ecs"

type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	DX, DY, DZ float64
}

type Lifetime struct {
	Remaining float64
}

type Marker struct{}

type Counter struct {
	Value int
}

type Tag string

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Counter](registry)
	ecs.RegisterComponent[Tag](registry)
	return registry
}
