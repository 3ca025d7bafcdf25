// Package debugui draws Dear ImGui panels over a running game: frame and
// scheduler timings, the entity store, and every physics body.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
)

// Item is a component holding a Dear ImGui render function. Attach it to
// entities that should draw widgets every frame.
type Item struct {
	Render func()
}

// Capture mirrors whether ImGui wants the mouse or keyboard this frame.
type Capture struct {
	Mouse    bool
	Keyboard bool
}

// PanelSystem refreshes Capture and defers every Item's render function so
// widgets are built after the systems of the frame have run.
type PanelSystem struct {
	Items   ecs.Query[struct{ *Item }]
	Capture ecs.Singleton[Capture]
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	c := s.Capture.Get()
	c.Mouse = io.WantCaptureMouse()
	c.Keyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Panels is the set of windows the overlay shows for one game world.
type Panels struct {
	Performance *Performance
	Entities    *EntityBrowser
	Bodies      *BodyInspector
}

// NewPanels returns the default panels for world.
func NewPanels(world *core.World) *Panels {
	return &Panels{
		Performance: NewPerformance(world, 120),
		Entities:    NewEntityBrowser(world.Storage, 100),
		Bodies:      NewBodyInspector(world.Storage),
	}
}

// Spawn adds one Item per panel to storage.
func (p *Panels) Spawn(storage *ecs.Storage) {
	storage.Spawn(Item{Render: p.Performance.Render})
	storage.Spawn(Item{Render: p.Entities.Render})
	storage.Spawn(Item{Render: func() { p.Bodies.Render(p.Entities.Selected()) }})
}
