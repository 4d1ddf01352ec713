package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage has its own registry, so independent worlds (the gallery and
// the placement sketch, or parallel tests) never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a component type with the registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are allocated individually so component pointers stay valid while the
// column grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var concrete T
	if ptr, ok := item.(*T); ok {
		concrete = *ptr
	} else if val, ok := item.(T); ok {
		concrete = val
	} else {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	blockIdx, slotIdx := index/genericBlockSize, index%genericBlockSize
	cs.blocks[blockIdx][slotIdx] = concrete
	cs.filled[blockIdx][slotIdx] = true
	cs.count++
	return index
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty and zeroes it.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx, slotIdx := index/genericBlockSize, index%genericBlockSize
	var zero T
	cs.filled[blockIdx][slotIdx] = false
	cs.blocks[blockIdx][slotIdx] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.filled) {
		return false
	}
	return cs.filled[blockIdx][index%genericBlockSize]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields live slot indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/genericBlockSize][i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
