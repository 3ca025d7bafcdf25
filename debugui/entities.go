package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID         ecs.EntityId
	Archetype  uint32
	Components []string
}

// EntityBrowser lists every entity with its archetype and components.
type EntityBrowser struct {
	storage  *ecs.Storage
	perPage  int
	page     int
	filter   string
	selected ecs.EntityId
	sortCol  int
	desc     bool
}

// NewEntityBrowser shows perPage rows at a time.
func NewEntityBrowser(storage *ecs.Storage, perPage int) *EntityBrowser {
	return &EntityBrowser{storage: storage, perPage: max(perPage, 1)}
}

// Selected returns the entity last clicked, or 0.
func (b *EntityBrowser) Selected() ecs.EntityId {
	if b.selected != 0 && !b.storage.Alive(b.selected) {
		b.selected = 0
	}
	return b.selected
}

// Rows returns the entities matching the filter in the current sort order.
// The filter matches ids, archetype ids and component names.
func (b *EntityBrowser) Rows() []EntityInfo {
	var rows []EntityInfo
	needle := strings.ToLower(b.filter)
	for _, arch := range b.storage.Archetypes() {
		names := make([]string, len(arch.Types()))
		for i, t := range arch.Types() {
			names[i] = t.String()
		}
		joined := strings.ToLower(strings.Join(names, " "))
		for id := range arch.Iter() {
			if needle != "" &&
				!strings.Contains(fmt.Sprintf("%d", id), needle) &&
				!strings.Contains(fmt.Sprintf("0x%x", arch.ID()), needle) &&
				!strings.Contains(joined, needle) {
				continue
			}
			rows = append(rows, EntityInfo{ID: id, Archetype: arch.ID(), Components: names})
		}
	}

	slices.SortStableFunc(rows, func(x, y EntityInfo) int {
		var c int
		switch b.sortCol {
		case 1:
			c = cmp.Compare(x.Archetype, y.Archetype)
		case 2:
			c = cmp.Compare(len(x.Components), len(y.Components))
		}
		if c == 0 {
			c = cmp.Compare(x.ID, y.ID)
		}
		if b.desc {
			return -c
		}
		return c
	})
	return rows
}

// SetFilter replaces the search text and returns to the first page.
func (b *EntityBrowser) SetFilter(text string) {
	b.filter = text
	b.page = 0
}

// SortBy orders rows by column: 0 id, 1 archetype, 2 component count.
func (b *EntityBrowser) SortBy(col int, descending bool) {
	b.sortCol = col
	b.desc = descending
}

func (b *EntityBrowser) Render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	filter := b.filter
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		b.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		b.SetFilter("")
	}

	rows := b.Rows()
	pages := max((len(rows)+b.perPage-1)/b.perPage, 1)
	b.page = min(b.page, pages-1)

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, flags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			b.SortBy(int(spec.ColumnIndex()), spec.SortDirection() != imgui.SortDirectionAscending)
			specs.SetSpecsDirty(false)
		}

		start := b.page * b.perPage
		for _, row := range rows[start:min(start+b.perPage, len(rows))] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", row.ID)
			if imgui.SelectableBoolV(label, b.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.Archetype))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", b.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && b.page > 0 {
		b.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && b.page < pages-1 {
		b.page++
	}

	imgui.End()
}
