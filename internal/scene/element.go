// Package scene provides the typed floorplan scene tree and its JSON decoder.
//
// A scene is an immutable Root -> Layer -> {Rect, Desk} hierarchy produced
// once by Load and read-only afterwards. Every element reports its bounding
// extent; container extents are aggregated from their children and always
// include the coordinate origin.
package scene

import (
	"image/color"

	"floorplan-viewer/pkg/geometry"
)

// Element is any scene node able to report its own bounding extent.
// The variant set is closed: layer children are *Rect or *Desk, root
// children are *Layer. The decoder is the sole producer of elements,
// so consumers dispatch with an exhaustive type switch and treat any
// other variant as an InvariantError.
type Element interface {
	Extent() geometry.Rect
}

// Rect is an axis-aligned box with optional fill and stroke colors.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Fill   *color.RGBA // nil = no fill
	Stroke *color.RGBA // nil = no stroke
}

// Extent returns the rectangle's own box.
func (r *Rect) Extent() geometry.Rect {
	return geometry.NewRect(r.X, r.Y, r.Width, r.Height)
}

// Desk is a point-of-interest marker with an identifier. Its model extent
// is a zero-size box at its position; any visual inflation is the
// renderer's concern.
type Desk struct {
	DeskID string
	X      float64
	Y      float64
}

// Extent returns a zero-width, zero-height box at the desk position.
func (d *Desk) Extent() geometry.Rect {
	return geometry.NewRect(d.X, d.Y, 0, 0)
}

// Position returns the desk location as a point.
func (d *Desk) Position() geometry.Point2D {
	return geometry.NewPoint2D(d.X, d.Y)
}

// Layer holds an ordered sequence of leaf elements. Order is paint order.
type Layer struct {
	Children []Element
}

// Extent returns the aggregate extent of the layer's children.
func (l *Layer) Extent() geometry.Rect {
	return aggregateExtent(l.Children)
}

// Root is the top of a floorplan scene: a location identifier and an
// ordered sequence of layers.
type Root struct {
	LocationID string
	Layers     []*Layer
}

// Extent returns the aggregate extent over all layers.
func (r *Root) Extent() geometry.Rect {
	return aggregateExtent(r.Layers)
}

// Desks returns all desks in the scene in paint order.
func (r *Root) Desks() []*Desk {
	var desks []*Desk
	for _, layer := range r.Layers {
		for _, child := range layer.Children {
			if d, ok := child.(*Desk); ok {
				desks = append(desks, d)
			}
		}
	}
	return desks
}

// aggregateExtent folds child extents into one bounding rectangle.
// The fold starts from the zero rectangle, so the result always covers
// the origin. It is a pure function of the subtree and safe to call
// repeatedly; nothing is cached.
func aggregateExtent[E Element](children []E) geometry.Rect {
	var extent geometry.Rect
	for _, child := range children {
		extent = extent.Union(child.Extent())
	}
	return extent
}
