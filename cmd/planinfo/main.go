// Command planinfo loads a floorplan JSON document and prints its structure,
// extent, and desk placement statistics without starting the UI.
package main

import (
	"fmt"
	"log"
	"os"

	"floorplan-viewer/internal/analysis"
	"floorplan-viewer/internal/scene"
	"floorplan-viewer/internal/version"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		log.Fatalf("usage: planinfo <plan.json>")
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}

	root, err := scene.Load(data)
	if err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}

	fmt.Printf("planinfo v%s\n\n", version.Version)
	fmt.Printf("Location: %s\n", root.LocationID)

	extent := root.Extent()
	fmt.Printf("Extent:   (%.1f, %.1f) - (%.1f, %.1f)  [%g x %g]\n",
		extent.Left(), extent.Top(), extent.Right(), extent.Bottom(),
		extent.Width, extent.Height)

	fmt.Printf("Layers:   %d\n", len(root.Layers))
	for i, layer := range root.Layers {
		var rects, desks int
		for _, child := range layer.Children {
			switch child.(type) {
			case *scene.Rect:
				rects++
			case *scene.Desk:
				desks++
			}
		}
		layerExtent := layer.Extent()
		fmt.Printf("  layer %d: %d rects, %d desks, extent %g x %g\n",
			i+1, rects, desks, layerExtent.Width, layerExtent.Height)
	}

	stats := analysis.ComputeDeskStats(root)
	fmt.Printf("\nDesks:    %d\n", stats.Count)
	if stats.Count > 1 {
		fmt.Printf("Spacing:  mean %.1f, stddev %.1f\n", stats.MeanSpacing, stats.SpacingStdDev)
		fmt.Printf("Density:  %.4f desks/unit²\n", stats.Density)
	}

	for _, desk := range root.Desks() {
		fmt.Printf("  %s  (%.0f, %.0f)\n", desk.DeskID, desk.X, desk.Y)
	}
}
