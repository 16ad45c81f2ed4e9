// Package analysis computes read-only statistics over a loaded floorplan.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"floorplan-viewer/internal/scene"
)

// DeskStats summarizes desk placement for a floorplan.
type DeskStats struct {
	Count         int
	MeanSpacing   float64 // mean nearest-neighbor distance between desks
	SpacingStdDev float64
	Density       float64 // desks per unit area of the root extent
}

// ComputeDeskStats traverses the scene and returns desk placement statistics.
// Plans with fewer than two desks yield zeroed spacing values.
func ComputeDeskStats(root *scene.Root) DeskStats {
	desks := root.Desks()
	stats := DeskStats{Count: len(desks)}

	extent := root.Extent()
	area := extent.Width * extent.Height
	if area > 0 {
		stats.Density = float64(len(desks)) / area
	}

	if len(desks) < 2 {
		return stats
	}

	spacings := nearestNeighborDistances(desks)
	stats.MeanSpacing = stat.Mean(spacings, nil)
	stats.SpacingStdDev = stat.StdDev(spacings, nil)
	if math.IsNaN(stats.SpacingStdDev) {
		stats.SpacingStdDev = 0
	}
	return stats
}

// nearestNeighborDistances returns, for each desk, the distance to its
// closest other desk. Quadratic in the desk count, which is fine at
// floorplan scale.
func nearestNeighborDistances(desks []*scene.Desk) []float64 {
	distances := make([]float64, len(desks))
	for i, d := range desks {
		nearest := math.Inf(1)
		for j, other := range desks {
			if i == j {
				continue
			}
			if dist := d.Position().Distance(other.Position()); dist < nearest {
				nearest = dist
			}
		}
		distances[i] = nearest
	}
	return distances
}
