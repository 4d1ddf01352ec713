package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/xrgallery/ecs"
)

func TestViewIterOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	// Two archetypes; iteration follows archetype creation then slot order.
	a := storage.Spawn(Position{X: 1}, Velocity{})
	b := storage.Spawn(Position{X: 2})
	c := storage.Spawn(Position{X: 3}, Velocity{})

	view := ecs.NewView[struct{ *Position }](storage)

	var ids []ecs.EntityId
	var xs []float64
	for id, item := range view.Iter() {
		ids = append(ids, id)
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []ecs.EntityId{a, c, b}, ids)
	assert.Equal(t, []float64{1, 3, 2}, xs)
	assert.Equal(t, 3, view.Count())
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withVel := storage.Spawn(Position{}, Velocity{DX: 1})
	without := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	got := view.Get(withVel)
	require.NotNil(t, got)
	require.NotNil(t, got.Velocity)
	assert.Equal(t, 1.0, got.Velocity.DX)

	got = view.Get(without)
	require.NotNil(t, got)
	assert.Nil(t, got.Velocity)

	required := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)
	assert.Nil(t, required.Get(without))
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct{ *Position }](storage)
	view.Get(id).Position.X = 10

	assert.Equal(t, 10.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4})
	ref := storage.CreateEntityRef(id)

	view := ecs.NewView[struct{ *Position }](storage)
	require.NotNil(t, view.GetRef(ref))

	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
	assert.Nil(t, view.Get(id))
}

func TestViewRejectsBadShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Values() })

	storage.Spawn(Position{X: 1})
	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{X: 2}, Velocity{})
	assert.Equal(t, 1, query.Len(), "snapshot is stable until Execute")

	query.Execute()
	var xs []float64
	for item := range query.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float64{1, 2}, xs)
}
