package ecs

// System is a unit of per-frame behavior. Query and Singleton fields on a
// system struct are initialized by the Scheduler on registration, and every
// Query field is refreshed right before Execute is called.
type System interface {
	Execute(frame *UpdateFrame)
}
