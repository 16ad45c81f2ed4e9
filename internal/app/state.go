// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"floorplan-viewer/internal/scene"
	"floorplan-viewer/pkg/geometry"
)

// State holds the application state: the loaded floorplan and listeners.
// The scene tree itself is immutable after load; State swaps whole trees.
type State struct {
	mu sync.RWMutex

	// Current plan
	PlanPath string
	Plan     *scene.Root

	// SessionID identifies one successful load, carried as a log field so
	// reloads of the same file are distinguishable in the logs.
	SessionID uuid.UUID

	// Event listeners
	listeners map[EventType][]EventListener

	log *logrus.Entry
}

// EventType identifies different application events.
type EventType int

const (
	EventPlanLoaded EventType = iota
	EventPlanReloaded
	EventPlanFailed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
		log:       logrus.WithField("prefix", "app"),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadPlan loads a floorplan document from the specified path. On failure
// the previously loaded plan, if any, is kept.
func (s *State) LoadPlan(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.Emit(EventPlanFailed, err)
		return err
	}

	root, err := scene.Load(data)
	if err != nil {
		err = fmt.Errorf("load %s: %w", path, err)
		s.Emit(EventPlanFailed, err)
		return err
	}

	session := uuid.New()
	extent := root.Extent()

	s.mu.Lock()
	reload := s.PlanPath == path && s.Plan != nil
	s.PlanPath = path
	s.Plan = root
	s.SessionID = session
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"plan":    path,
		"session": session,
		"layers":  len(root.Layers),
		"desks":   len(root.Desks()),
		"extent":  fmt.Sprintf("%.0fx%.0f", extent.Width, extent.Height),
	}).Info("plan loaded")

	if reload {
		s.Emit(EventPlanReloaded, path)
	} else {
		s.Emit(EventPlanLoaded, path)
	}
	return nil
}

// CurrentPlan returns the loaded plan, or nil.
func (s *State) CurrentPlan() *scene.Root {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Plan
}

// PlanExtent returns the extent of the loaded plan, or the zero rectangle.
func (s *State) PlanExtent() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Plan == nil {
		return geometry.Rect{}
	}
	return s.Plan.Extent()
}
