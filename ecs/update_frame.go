package ecs

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the elapsed simulation time for this frame in seconds. Never negative.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Timers    *Timers
}

func newUpdateFrame(dt float64, storage *Storage, timers *Timers) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
		Timers:    timers,
	}
}
