// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"floorplan-viewer/internal/analysis"
	"floorplan-viewer/internal/app"
	"floorplan-viewer/internal/render"
	"floorplan-viewer/internal/scene"
	"floorplan-viewer/ui/canvas"
)

// Thumbnail bounds for the plan preview in the stats tab.
const (
	previewWidth  = 220
	previewHeight = 160
)

// SidePanel provides the side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.FloorplanCanvas
	container *container.AppTabs

	layersPanel *LayersPanel
	desksPanel  *DesksPanel
	statsPanel  *StatsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.FloorplanCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.layersPanel = NewLayersPanel(state, cvs)
	sp.desksPanel = NewDesksPanel(state)
	sp.statsPanel = NewStatsPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Layers", sp.layersPanel.Container()),
		container.NewTabItem("Desks", sp.desksPanel.Container()),
		container.NewTabItem("Stats", sp.statsPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SyncPlan refreshes all tabs from the currently loaded plan.
func (sp *SidePanel) SyncPlan() {
	sp.layersPanel.SyncPlan()
	sp.desksPanel.SyncPlan()
	sp.statsPanel.SyncPlan()
}

// OnDeskSelected sets a callback invoked when a desk row is selected in the
// desks tab.
func (sp *SidePanel) OnDeskSelected(callback func(desk *scene.Desk)) {
	sp.desksPanel.OnDeskSelected = callback
}

// LayersPanel lists scene layers with visibility checkboxes.
type LayersPanel struct {
	state     *app.State
	canvas    *canvas.FloorplanCanvas
	container *fyne.Container
}

// NewLayersPanel creates a new layers panel.
func NewLayersPanel(state *app.State, cvs *canvas.FloorplanCanvas) *LayersPanel {
	lp := &LayersPanel{
		state:     state,
		canvas:    cvs,
		container: container.NewVBox(widget.NewLabel("No plan loaded")),
	}
	return lp
}

// Container returns the panel container.
func (lp *LayersPanel) Container() fyne.CanvasObject {
	return lp.container
}

// SyncPlan rebuilds the layer list from the loaded plan.
func (lp *LayersPanel) SyncPlan() {
	lp.container.RemoveAll()

	plan := lp.state.CurrentPlan()
	if plan == nil {
		lp.container.Add(widget.NewLabel("No plan loaded"))
		lp.container.Refresh()
		return
	}

	for i, layer := range plan.Layers {
		index := i
		label := fmt.Sprintf("Layer %d (%d elements)", i+1, len(layer.Children))
		check := widget.NewCheck(label, func(visible bool) {
			lp.canvas.SetLayerHidden(index, !visible)
		})
		check.SetChecked(!lp.canvas.LayerHidden(i))
		lp.container.Add(check)
	}
	lp.container.Refresh()
}

// DesksPanel lists all desks with their positions.
type DesksPanel struct {
	state *app.State
	list  *widget.List
	desks []*scene.Desk

	// OnDeskSelected is called when a desk row is selected.
	OnDeskSelected func(desk *scene.Desk)
}

// NewDesksPanel creates a new desks panel.
func NewDesksPanel(state *app.State) *DesksPanel {
	dp := &DesksPanel{state: state}

	dp.list = widget.NewList(
		func() int { return len(dp.desks) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			desk := dp.desks[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  (%.0f, %.0f)", desk.DeskID, desk.X, desk.Y))
		},
	)
	dp.list.OnSelected = func(id widget.ListItemID) {
		if dp.OnDeskSelected != nil && id >= 0 && id < len(dp.desks) {
			dp.OnDeskSelected(dp.desks[id])
		}
	}
	return dp
}

// Container returns the panel container.
func (dp *DesksPanel) Container() fyne.CanvasObject {
	return dp.list
}

// SyncPlan reloads the desk list from the loaded plan.
func (dp *DesksPanel) SyncPlan() {
	if plan := dp.state.CurrentPlan(); plan != nil {
		dp.desks = plan.Desks()
	} else {
		dp.desks = nil
	}
	dp.list.Refresh()
}

// StatsPanel shows a plan preview with extent and desk placement statistics.
type StatsPanel struct {
	state   *app.State
	preview *fynecanvas.Image
	label   *widget.Label
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(state *app.State) *StatsPanel {
	sp := &StatsPanel{
		state:   state,
		preview: &fynecanvas.Image{FillMode: fynecanvas.ImageFillContain},
		label:   widget.NewLabel("No plan loaded"),
	}
	sp.preview.SetMinSize(fyne.NewSize(previewWidth, previewHeight))
	sp.label.Wrapping = fyne.TextWrapWord
	return sp
}

// Container returns the panel container.
func (sp *StatsPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(container.NewVBox(sp.preview, sp.label))
}

// SyncPlan recomputes the preview and statistics for the loaded plan.
func (sp *StatsPanel) SyncPlan() {
	plan := sp.state.CurrentPlan()
	if plan == nil {
		sp.preview.Image = nil
		sp.preview.Refresh()
		sp.label.SetText("No plan loaded")
		return
	}

	if thumb, err := render.Thumbnail(plan, previewWidth, previewHeight); err == nil {
		sp.preview.Image = thumb
		sp.preview.Refresh()
	}

	extent := plan.Extent()
	stats := analysis.ComputeDeskStats(plan)

	sp.label.SetText(fmt.Sprintf(
		"Location: %s\n"+
			"Layers: %d\n"+
			"Extent: %.0f x %.0f (origin %.0f, %.0f)\n\n"+
			"Desks: %d\n"+
			"Mean spacing: %.1f\n"+
			"Spacing stddev: %.1f\n"+
			"Density: %.4f desks/unit²",
		plan.LocationID,
		len(plan.Layers),
		extent.Width, extent.Height, extent.X, extent.Y,
		stats.Count,
		stats.MeanSpacing,
		stats.SpacingStdDev,
		stats.Density,
	))
}
