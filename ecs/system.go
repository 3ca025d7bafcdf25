package ecs

// System is a unit of game behaviour run by a Scheduler. Systems declare
// Query and Singleton fields; the scheduler binds them to its storage on
// Register and refreshes every query right before Execute is called.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Frame     int64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, frame int64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  commands,
		Storage:   storage,
	}
}
