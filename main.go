// Package main provides the entry point for the Floorplan Viewer application.
package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"floorplan-viewer/internal/app"
	"floorplan-viewer/internal/version"
	"floorplan-viewer/ui/mainwindow"
	"floorplan-viewer/ui/prefs"
)

const watchInterval = 2 * time.Second

func main() {
	log.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)
	log.Infof("Starting Floorplan Viewer v%s", version.Version)

	fyneApp := fyneapp.NewWithID("io.floorplan.viewer")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.Resize(fyne.NewSize(1200, 800))
	win.RestoreView()

	// Open the plan from the command line, falling back to the last one.
	planPath := appPrefs.String(prefs.KeyLastPlan)
	if len(os.Args) > 1 {
		planPath = os.Args[1]
	}
	if planPath != "" {
		if err := appState.LoadPlan(planPath); err != nil {
			log.WithError(err).Warnf("failed to load plan %s", planPath)
		} else {
			appPrefs.SetString(prefs.KeyLastPlan, planPath)
		}
	}

	setupPlanWatcher(appState, appPrefs)

	win.ShowAndRun()

	if err := appPrefs.Save(); err != nil {
		log.WithError(err).Warn("failed to save preferences")
	}
}

// setupPlanWatcher reloads the open document when it changes on disk.
func setupPlanWatcher(state *app.State, appPrefs *prefs.Prefs) {
	if !appPrefs.Bool(prefs.KeyWatchEnabled, true) {
		return
	}

	watcher := app.NewPlanWatcher(watchInterval)
	watcher.OnChange(func(path string) {
		log.Infof("plan changed on disk, reloading: %s", path)
		if err := state.LoadPlan(path); err != nil {
			log.WithError(err).Warn("reload failed, keeping previous plan")
		}
	})

	retarget := func(data interface{}) {
		if path, ok := data.(string); ok {
			watcher.Watch(path)
		}
	}
	state.On(app.EventPlanLoaded, retarget)
	state.On(app.EventPlanReloaded, retarget)

	if state.PlanPath != "" {
		watcher.Watch(state.PlanPath)
	}
	watcher.Start()
}
