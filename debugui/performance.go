package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/games/core"
)

// Performance shows frame times, per-system timings of the simulation and
// render schedulers, and a storage summary.
type Performance struct {
	world   *core.World
	history []float32
	next    int
	filled  int
}

// NewPerformance keeps the last frames frame times.
func NewPerformance(world *core.World, frames int) *Performance {
	return &Performance{world: world, history: make([]float32, max(frames, 1))}
}

// Record stores one frame time in seconds.
func (p *Performance) Record(dt float64) {
	p.history[p.next] = float32(dt * 1000)
	p.next = (p.next + 1) % len(p.history)
	p.filled = min(p.filled+1, len(p.history))
}

// Average returns the mean recorded frame time in milliseconds.
func (p *Performance) Average() float32 {
	if p.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range p.history {
		sum += ms
	}
	return sum / float32(p.filled)
}

func (p *Performance) Render() {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := p.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Simulated: %.2f s", p.world.Now()))
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	imgui.Separator()
	stats := p.world.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if imgui.TreeNodeStr("Simulation systems") {
		systemTable("SimTable", p.world.Scheduler.GetStats())
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Render systems") {
		systemTable("RenderTable", p.world.Renderer.GetStats())
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func systemTable(id string, stats *ecs.SchedulerStats) {
	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV(id, 4, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()
	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.String())
	}
	imgui.EndTable()
}
