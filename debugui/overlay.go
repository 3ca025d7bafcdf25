package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
)

// Overlay runs the debug panels of one game on the ImGui ebiten backend.
// It keeps its own storage so panel entities never show up in the game.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	capture   *ecs.Singleton[Capture]
	panels    *Panels
}

// NewOverlay creates the ImGui context for a window of the given size and
// spawns the panels for world.
func NewOverlay(title string, width, height int, world *core.World) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Item](registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		backend:   backend,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		capture:   ecs.NewSingleton[Capture](storage),
		panels:    NewPanels(world),
	}
	o.scheduler.Register(&PanelSystem{})
	o.panels.Spawn(storage)
	return o
}

// Update builds one ImGui frame. dt is the wall time since the last call.
func (o *Overlay) Update(dt float64) {
	o.panels.Performance.Record(dt)
	o.backend.BeginFrame()
	o.scheduler.Once(dt)
	o.backend.EndFrame()
}

// Draw renders the panels over screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

// Layout forwards the outside size to the backend.
func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// WantsKeyboard reports whether a panel has keyboard focus, in which case
// game input should be ignored.
func (o *Overlay) WantsKeyboard() bool {
	return o.capture.Get().Keyboard
}
