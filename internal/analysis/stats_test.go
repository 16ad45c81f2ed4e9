package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floorplan-viewer/internal/scene"
)

func planWithDesks(desks ...*scene.Desk) *scene.Root {
	children := make([]scene.Element, 0, len(desks)+1)
	children = append(children, &scene.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	for _, d := range desks {
		children = append(children, d)
	}
	return &scene.Root{
		LocationID: "test",
		Layers:     []*scene.Layer{{Children: children}},
	}
}

func TestComputeDeskStatsEvenRow(t *testing.T) {
	root := planWithDesks(
		&scene.Desk{DeskID: "A", X: 10, Y: 10},
		&scene.Desk{DeskID: "B", X: 20, Y: 10},
		&scene.Desk{DeskID: "C", X: 30, Y: 10},
	)

	stats := ComputeDeskStats(root)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 10.0, stats.MeanSpacing, 1e-9)
	assert.InDelta(t, 0.0, stats.SpacingStdDev, 1e-9)
	assert.InDelta(t, 3.0/10000.0, stats.Density, 1e-12)
}

func TestComputeDeskStatsUnevenSpacing(t *testing.T) {
	root := planWithDesks(
		&scene.Desk{DeskID: "A", X: 0, Y: 0},
		&scene.Desk{DeskID: "B", X: 10, Y: 0},
		&scene.Desk{DeskID: "C", X: 50, Y: 0},
	)

	stats := ComputeDeskStats(root)
	// Nearest-neighbor distances: A->B 10, B->A 10, C->B 40.
	assert.InDelta(t, 20.0, stats.MeanSpacing, 1e-9)
	assert.Greater(t, stats.SpacingStdDev, 0.0)
}

func TestComputeDeskStatsDegenerate(t *testing.T) {
	empty := ComputeDeskStats(&scene.Root{LocationID: "empty"})
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.MeanSpacing)
	assert.Zero(t, empty.Density)

	single := ComputeDeskStats(planWithDesks(&scene.Desk{DeskID: "A", X: 5, Y: 5}))
	assert.Equal(t, 1, single.Count)
	assert.Zero(t, single.MeanSpacing)
	assert.Zero(t, single.SpacingStdDev)
	assert.InDelta(t, 1.0/10000.0, single.Density, 1e-12)
}
