// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"floorplan-viewer/internal/app"
	"floorplan-viewer/internal/render"
	"floorplan-viewer/internal/scene"
	"floorplan-viewer/internal/version"
	"floorplan-viewer/ui/canvas"
	"floorplan-viewer/ui/panels"
	"floorplan-viewer/ui/prefs"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.FloorplanCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Floorplan Viewer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewFloorplanCanvas()
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnElementClick(mw.reportElement)
	mw.sidePanel.OnDeskSelected(func(desk *scene.Desk) {
		mw.reportElement(desk)
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.prefs.SetFloat(prefs.KeyLastZoom, zoom)
	})

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Plan...", mw.onOpenPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPlanLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Floorplan Viewer - " + filepath.Base(path))
			mw.syncPlan()
			mw.updateStatus("Plan loaded: " + path)
		}
	})

	mw.state.On(app.EventPlanReloaded, func(data interface{}) {
		mw.syncPlan()
		mw.updateStatus("Plan reloaded")
	})

	mw.state.On(app.EventPlanFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Load failed: " + err.Error())
		}
	})
}

// syncPlan pushes the loaded plan into the canvas and panels.
func (mw *MainWindow) syncPlan() {
	mw.canvas.SetPlan(mw.state.CurrentPlan())
	mw.sidePanel.SyncPlan()
	mw.canvas.Refresh()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// reportElement shows the description of a picked element in the status bar.
// Both canvas clicks and desk-list selections land here.
func (mw *MainWindow) reportElement(element scene.Element) {
	mw.updateStatus(describeElement(element))
}

// describeElement builds the status line for a clicked element. The variant
// set is closed; anything else is an internal inconsistency.
func describeElement(element scene.Element) string {
	switch e := element.(type) {
	case *scene.Desk:
		return fmt.Sprintf("Desk %s at (%.0f, %.0f)", e.DeskID, e.X, e.Y)
	case *scene.Rect:
		return fmt.Sprintf("Rect (%.0f, %.0f) %g x %g", e.X, e.Y, e.Width, e.Height)
	default:
		return (&scene.InvariantError{Element: element}).Error()
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// Menu action handlers

func (mw *MainWindow) onOpenPlan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadPlan(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastPlan, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	plan := mw.state.CurrentPlan()
	if plan == nil {
		mw.updateStatus("Nothing to export")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		img, err := render.Render(plan, mw.canvas.Zoom())
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if err := png.Encode(writer, img); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + writer.URI().Path())
	}, mw.Window)
	fd.SetFileName("floorplan.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)
	mw.prefs.SetBool(prefs.KeyFitToWindow, enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
		mw.prefs.SetBool(prefs.KeyFitToWindow, false)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Floorplan Viewer",
		fmt.Sprintf("Floorplan Viewer v%s\n\n"+
			"An interactive viewer for JSON floorplan documents.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// RestoreView applies persisted zoom and fit settings.
func (mw *MainWindow) RestoreView() {
	if mw.prefs.Bool(prefs.KeyFitToWindow, false) {
		mw.onToggleFitToWindow()
		return
	}
	if zoom := mw.prefs.FloatWithFallback(prefs.KeyLastZoom, 1.0); zoom != 1.0 {
		mw.canvas.SetZoom(zoom)
	}
}
