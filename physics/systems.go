package physics

import "github.com/plus3/arcade/ecs"

// ContactResetSystem clears Contacts at the start of every step.
type ContactResetSystem struct {
	Contacts ecs.Query[struct{ *Contacts }]
}

func (s *ContactResetSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Contacts.Values() {
		item.Contacts.Reset()
	}
}

// IntegrateSystem moves every non-static Body.
type IntegrateSystem struct {
	Bodies ecs.Query[struct{ *Body }]
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Bodies.Values() {
		item.Body.Integrate(dt)
	}
}
