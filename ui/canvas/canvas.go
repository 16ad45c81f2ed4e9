// Package canvas provides the floorplan canvas with pan, zoom, and hit-testing.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"floorplan-viewer/internal/render"
	"floorplan-viewer/internal/scene"
	"floorplan-viewer/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// FloorplanCanvas displays a scene tree with pan, zoom, and element picking.
// The canvas never mutates the tree; per-layer visibility is view state.
type FloorplanCanvas struct {
	widget.BaseWidget

	// Scene
	plan   *scene.Root
	extent geometry.Rect

	// View state
	hiddenLayers map[int]bool
	zoom         float64

	// Display
	raster  *fynecanvas.Raster
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange   func(zoom float64)
	onElementClick func(element scene.Element)
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *FloorplanCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *FloorplanCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// ScrollTo sets the scroll container's offset.
func (zs *zoomScroll) ScrollTo(pos fyne.Position) {
	zs.scroll.Offset = pos
	zs.scroll.Refresh()
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *FloorplanCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(fc *FloorplanCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{canvas: fc, raster: raster}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// Dragged pans the viewport.
func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	offset := dc.canvas.scroll.Offset()
	dc.canvas.scroll.ScrollTo(fyne.Position{
		X: offset.X - ev.Dragged.DX,
		Y: offset.Y - ev.Dragged.DY,
	})
}

func (dc *draggableContent) DragEnd() {}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// Tapped picks the topmost element under the cursor.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if dc.canvas.onElementClick == nil {
		return
	}

	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	scrollOffset := dc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + scrollOffset.X)
	canvasY := float64(ev.Position.Y + scrollOffset.Y)

	world := dc.canvas.CanvasToWorld(canvasX, canvasY)
	if element := dc.canvas.hitTest(world); element != nil {
		dc.canvas.onElementClick(element)
	}
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewFloorplanCanvas creates an empty floorplan canvas.
func NewFloorplanCanvas() *FloorplanCanvas {
	fc := &FloorplanCanvas{
		zoom:         1.0,
		hiddenLayers: make(map[int]bool),
		imgSize:      fyne.NewSize(400, 300),
	}

	fc.raster = fynecanvas.NewRaster(fc.draw)
	fc.raster.ScaleMode = fynecanvas.ImageScalePixels
	fc.raster.SetMinSize(fc.imgSize)

	fc.content = newDraggableContent(fc, fc.raster)
	fc.scroll = newZoomScroll(fc.content, fc)

	fc.ExtendBaseWidget(fc)
	return fc
}

// Container returns the canvas container for embedding in layouts.
func (fc *FloorplanCanvas) Container() fyne.CanvasObject {
	return fc.scroll
}

// SetPlan sets the scene tree to display. The extent is computed once here;
// the tree is immutable, so it cannot go stale.
func (fc *FloorplanCanvas) SetPlan(plan *scene.Root) {
	fc.plan = plan
	fc.hiddenLayers = make(map[int]bool)
	if plan != nil {
		fc.extent = plan.Extent()
	} else {
		fc.extent = geometry.Rect{}
	}
	fc.updateContentSize()
}

// Plan returns the currently displayed scene tree.
func (fc *FloorplanCanvas) Plan() *scene.Root {
	return fc.plan
}

// SetLayerHidden toggles visibility for the layer at the given index.
func (fc *FloorplanCanvas) SetLayerHidden(index int, hidden bool) {
	if hidden {
		fc.hiddenLayers[index] = true
	} else {
		delete(fc.hiddenLayers, index)
	}
	fc.Refresh()
}

// LayerHidden reports whether the layer at the given index is hidden.
func (fc *FloorplanCanvas) LayerHidden(index int) bool {
	return fc.hiddenLayers[index]
}

// SetZoom sets the zoom level, clamped to [minZoom, maxZoom].
func (fc *FloorplanCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	fc.zoom = zoom
	fc.updateContentSize()

	if fc.onZoomChange != nil {
		fc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (fc *FloorplanCanvas) Zoom() float64 {
	return fc.zoom
}

// ZoomIn increases the zoom level.
func (fc *FloorplanCanvas) ZoomIn() {
	fc.SetZoom(fc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (fc *FloorplanCanvas) ZoomOut() {
	fc.SetZoom(fc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the plan extent fits the visible area.
func (fc *FloorplanCanvas) FitToWindow() {
	if fc.extent.IsEmpty() {
		return
	}

	viewSize := fc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / fc.extent.Width
	zoomY := float64(viewSize.Height) / fc.extent.Height

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	fc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (fc *FloorplanCanvas) SetFitToWindow(fit bool) {
	fc.fitToWindow = fit
	if fit {
		fc.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (fc *FloorplanCanvas) GetFitToWindow() bool {
	return fc.fitToWindow
}

// CheckResize checks if the scroll container was resized and auto-fits if enabled.
func (fc *FloorplanCanvas) CheckResize(size fyne.Size) {
	if !fc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != fc.lastScrollSize {
		fc.lastScrollSize = size
		fc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (fc *FloorplanCanvas) OnZoomChange(callback func(zoom float64)) {
	fc.onZoomChange = callback
}

// OnElementClick sets a callback for clicks on a scene element.
func (fc *FloorplanCanvas) OnElementClick(callback func(element scene.Element)) {
	fc.onElementClick = callback
}

// Refresh refreshes the canvas display.
func (fc *FloorplanCanvas) Refresh() {
	fc.raster.Refresh()
}

// WorldToCanvas converts plan coordinates to canvas coordinates.
func (fc *FloorplanCanvas) WorldToCanvas(p geometry.Point2D) (canvasX, canvasY float64) {
	return (p.X - fc.extent.X) * fc.zoom, (p.Y - fc.extent.Y) * fc.zoom
}

// CanvasToWorld converts canvas coordinates to plan coordinates.
func (fc *FloorplanCanvas) CanvasToWorld(canvasX, canvasY float64) geometry.Point2D {
	return geometry.Point2D{
		X: canvasX/fc.zoom + fc.extent.X,
		Y: canvasY/fc.zoom + fc.extent.Y,
	}
}

// hitTest returns the topmost visible element at the given plan position,
// or nil. Later layers and later children paint on top, so the search runs
// back to front. Desks get a small pick tolerance around their point.
func (fc *FloorplanCanvas) hitTest(world geometry.Point2D) scene.Element {
	if fc.plan == nil {
		return nil
	}
	tolerance := 6.0 / fc.zoom

	for i := len(fc.plan.Layers) - 1; i >= 0; i-- {
		if fc.hiddenLayers[i] {
			continue
		}
		children := fc.plan.Layers[i].Children
		for j := len(children) - 1; j >= 0; j-- {
			switch e := children[j].(type) {
			case *scene.Desk:
				if e.Position().Distance(world) <= tolerance {
					return e
				}
			case *scene.Rect:
				if e.Extent().Contains(world) {
					return e
				}
			}
		}
	}
	return nil
}

// updateContentSize updates the content size based on the extent and zoom.
func (fc *FloorplanCanvas) updateContentSize() {
	if fc.extent.IsEmpty() {
		fc.imgSize = fyne.NewSize(400, 300)
	} else {
		width := float32(fc.extent.Width * fc.zoom)
		height := float32(fc.extent.Height * fc.zoom)
		fc.imgSize = fyne.NewSize(width, height)
	}

	fc.raster.SetMinSize(fc.imgSize)
	fc.raster.Resize(fc.imgSize)
	if fc.content != nil {
		fc.content.Resize(fc.imgSize)
		fc.content.Refresh()
	}
	fc.raster.Refresh()
	if fc.scroll != nil {
		fc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (fc *FloorplanCanvas) draw(w, h int) image.Image {
	// Check for size change and auto-fit if enabled
	currentSize := fyne.NewSize(float32(w), float32(h))
	if fc.fitToWindow && currentSize != fc.lastScrollSize && w > 0 && h > 0 {
		fc.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go func() {
			fc.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	if fc.plan == nil {
		return output
	}

	opts := render.Options{
		Zoom:         fc.zoom,
		OffsetX:      fc.extent.X,
		OffsetY:      fc.extent.Y,
		HiddenLayers: fc.hiddenLayers,
	}
	// The decoder guarantees the variant set, so a draw error here is an
	// internal inconsistency; render an empty canvas rather than panic.
	if err := render.Draw(output, fc.plan, opts); err != nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return output
}

// CreateRenderer implements fyne.Widget.
func (fc *FloorplanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &floorplanCanvasRenderer{canvas: fc}
}

type floorplanCanvasRenderer struct {
	canvas *FloorplanCanvas
}

func (r *floorplanCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	// Check for resize and auto-fit if enabled
	r.canvas.CheckResize(size)
}

func (r *floorplanCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *floorplanCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *floorplanCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *floorplanCanvasRenderer) Destroy() {}
