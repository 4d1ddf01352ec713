package debugui

import "github.com/plus3/xrgallery/ecs"

// Spawn registers ImguiSystem with scheduler and adds the storage and entity
// panels. Component types must already be registered with RegisterComponents.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)
	perf := NewPerformancePanel(storage, scheduler, 120)
	entities := NewEntityPanel(storage)

	storage.Spawn(ImguiItem{Name: "Performance", Render: perf.Render})
	storage.Spawn(ImguiItem{Name: "Entities", Hidden: true, Render: entities.Render})
	scheduler.Register(&ImguiSystem{})
	scheduler.Register(perf)
}
