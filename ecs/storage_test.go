package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/xrgallery/ecs"
)

func TestStorageSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2, Z: 3}, Velocity{DZ: -1})
	require.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, *pos)

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Lifetime]()))
	assert.Nil(t, ecs.ReadComponent[Lifetime](storage, id))
}

func TestStorageSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.Panics(t, func() { storage.Spawn(Position{}) })
	assert.Panics(t, func() { storage.Spawn() })
}

func TestStorageDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	storage.Delete(first)
	assert.False(t, storage.Alive(first))

	second := storage.Spawn(Position{X: 2})
	assert.Equal(t, first, second, "freed slot is reused")
	assert.Equal(t, 2.0, ecs.ReadComponent[Position](storage, second).X)

	// Deleting twice or deleting an unknown id is harmless.
	storage.Delete(ecs.NewEntityId(12345, 9))
}

func TestStoragePointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Counter{Value: 1})
	ptr := ecs.ReadComponent[Counter](storage, id)

	for i := 0; i < 500; i++ {
		storage.Spawn(Counter{Value: i})
	}

	ptr.Value = 42
	assert.Equal(t, 42, ecs.ReadComponent[Counter](storage, id).Value)
}

func TestStorageAddRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5})
	ref := storage.CreateEntityRef(id)

	moved := storage.AddComponent(id, Velocity{DX: 1})
	require.NotZero(t, moved)
	assert.False(t, storage.Alive(id))
	assert.Equal(t, moved, ref.Id, "ref follows the entity")
	assert.Equal(t, 5.0, ecs.ReadComponent[Position](storage, moved).X)
	assert.Equal(t, 1.0, ecs.ReadComponent[Velocity](storage, moved).DX)

	same := storage.AddComponent(moved, Velocity{DX: 7})
	assert.Equal(t, moved, same, "adding an existing component overwrites it")
	assert.Equal(t, 7.0, ecs.ReadComponent[Velocity](storage, moved).DX)

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	assert.Equal(t, back, ref.Id)
	assert.False(t, storage.HasComponent(back, reflect.TypeFor[Velocity]()))

	gone := storage.RemoveComponent(back, reflect.TypeFor[Position]())
	assert.Zero(t, gone)
	assert.False(t, ref.Valid())
}

func TestEntityRefInvalidatedOnDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)
	require.True(t, ref.Valid())
	assert.Same(t, ref, storage.CreateEntityRef(id), "refs are shared per entity")

	storage.Delete(id)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.False(t, ref.Valid())
	assert.Nil(t, storage.CreateEntityRef(id))

	var nilRef *ecs.EntityRef
	assert.False(t, nilRef.Valid())
}

func TestStorageSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var counter *Counter
	assert.False(t, storage.ReadSingleton(&counter))

	storage.AddSingleton(Counter{Value: 3})
	require.True(t, storage.ReadSingleton(&counter))
	assert.Equal(t, 3, counter.Value)

	storage.AddSingleton(Counter{Value: 9})
	assert.Equal(t, 9, counter.Value, "replacement keeps the pointer")

	accessor := ecs.NewSingleton[Counter](storage, Counter{Value: 100})
	assert.Equal(t, 9, accessor.Get().Value, "initializer ignored when present")

	fresh := ecs.NewSingleton[Tag](storage, Tag("hello"))
	assert.Equal(t, Tag("hello"), *fresh.Get())
	assert.True(t, fresh.Exists())

	var unbound ecs.Singleton[Lifetime]
	assert.Nil(t, unbound.Get())
	assert.False(t, unbound.Exists())
}

func TestStorageCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	dead := storage.Spawn(Position{})
	storage.Delete(dead)
	ecs.NewSingleton[Counter](storage)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 0, stats.ArchetypeBreakdown[1].EntityCount)
	assert.Equal(t, []string{"ecs_test.Counter"}, stats.SingletonTypes)
}
