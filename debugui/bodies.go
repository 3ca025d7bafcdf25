package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/physics"
)

type bodyItem struct {
	ecs.EntityId
	*physics.Body
	*physics.Collider
}

// BodyInspector lists every physics body and edits the selected one.
type BodyInspector struct {
	storage *ecs.Storage
	bodies  *ecs.Query[bodyItem]
}

// NewBodyInspector watches the bodies in storage.
func NewBodyInspector(storage *ecs.Storage) *BodyInspector {
	return &BodyInspector{storage: storage, bodies: ecs.NewQuery[bodyItem](storage)}
}

// Contacts describes the contact flags of id, or "-" when it has none.
func (b *BodyInspector) Contacts(id ecs.EntityId) string {
	c := ecs.ReadComponent[physics.Contacts](b.storage, id)
	if c == nil {
		return "-"
	}
	out := ""
	for _, side := range []struct {
		set  bool
		name string
	}{{c.Top, "T"}, {c.Bottom, "B"}, {c.Left, "L"}, {c.Right, "R"}} {
		if side.set {
			out += side.name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Render draws the table of bodies; selected, when it has a Body, gets
// editable fields below it.
func (b *BodyInspector) Render(selected ecs.EntityId) {
	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	b.bodies.Execute()
	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodyTable", 4, flags, imgui.NewVec2(0, 250), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Velocity")
		imgui.TableSetupColumn("Contacts")
		imgui.TableHeadersRow()
		for id, item := range b.bodies.Iter() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", id))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f, %.2f", item.Position.X(), item.Position.Y()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f, %.2f", item.Velocity.X(), item.Velocity.Y()))
			imgui.TableNextColumn()
			imgui.Text(b.Contacts(id))
		}
		imgui.EndTable()
	}

	body := ecs.ReadComponent[physics.Body](b.storage, selected)
	if selected == 0 || body == nil {
		imgui.Text("Select an entity with a body to edit it")
		imgui.End()
		return
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entity %d", selected))
	imgui.InputFloat("x", &body.Position[0])
	imgui.InputFloat("y", &body.Position[1])
	imgui.InputFloat("vx", &body.Velocity[0])
	imgui.InputFloat("vy", &body.Velocity[1])
	imgui.Checkbox("static", &body.Static)
	if c := ecs.ReadComponent[physics.Collider](b.storage, selected); c != nil {
		imgui.Text(fmt.Sprintf("size %.2f x %.2f", c.Size.X(), c.Size.Y()))
	}
	imgui.End()
}
