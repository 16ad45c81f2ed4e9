// Package render rasterizes a floorplan scene tree into an RGBA image.
//
// The renderer dispatches on the concrete element variant; the decoder
// guarantees only known variants appear, so the dispatch default is a
// defensive InvariantError rather than a silent skip.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"floorplan-viewer/internal/scene"
	"floorplan-viewer/pkg/colorutil"
)

const (
	// Desk markers are drawn as discs. The model extent of a desk is a
	// point; the visual radius scales with zoom but is clamped so desks
	// stay visible when zoomed out and don't balloon when zoomed in.
	deskBaseRadius = 4.0
	deskMinRadius  = 3.0
	deskMaxRadius  = 12.0
)

// Options controls a draw pass.
type Options struct {
	Zoom    float64
	OffsetX float64 // world X of the output's left edge
	OffsetY float64 // world Y of the output's top edge

	// HiddenLayers holds indices of layers to skip. Nil means draw all.
	HiddenLayers map[int]bool
}

// Render rasterizes the whole plan at the given zoom into a new image sized
// to the root extent.
func Render(root *scene.Root, zoom float64) (*image.RGBA, error) {
	extent := root.Extent()
	w := int(extent.Width * zoom)
	h := int(extent.Height * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	opts := Options{Zoom: zoom, OffsetX: extent.X, OffsetY: extent.Y}
	if err := Draw(output, root, opts); err != nil {
		return nil, err
	}
	return output, nil
}

// Draw paints the plan into dst. Layers are painted in document order;
// children within a layer likewise, so later elements cover earlier ones.
func Draw(dst *image.RGBA, root *scene.Root, opts Options) error {
	fillBackground(dst)

	for i, layer := range root.Layers {
		if opts.HiddenLayers[i] {
			continue
		}
		for _, element := range layer.Children {
			if err := drawElement(dst, element, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// Thumbnail renders the plan and scales it to fit within the given bounds,
// preserving aspect ratio.
func Thumbnail(root *scene.Root, width, height int) (*image.RGBA, error) {
	full, err := Render(root, 1.0)
	if err != nil {
		return nil, err
	}

	srcW := full.Bounds().Dx()
	srcH := full.Bounds().Dy()
	scale := float64(width) / float64(srcW)
	if s := float64(height) / float64(srcH); s < scale {
		scale = s
	}
	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	thumb := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), full, full.Bounds(), xdraw.Src, nil)
	return thumb, nil
}

// drawElement dispatches on the concrete variant.
func drawElement(dst *image.RGBA, element scene.Element, opts Options) error {
	switch e := element.(type) {
	case *scene.Rect:
		drawRect(dst, e, opts)
	case *scene.Desk:
		drawDesk(dst, e, opts)
	default:
		return &scene.InvariantError{Element: element}
	}
	return nil
}

func drawRect(dst *image.RGBA, r *scene.Rect, opts Options) {
	x1 := int((r.X - opts.OffsetX) * opts.Zoom)
	y1 := int((r.Y - opts.OffsetY) * opts.Zoom)
	x2 := int((r.X + r.Width - opts.OffsetX) * opts.Zoom)
	y2 := int((r.Y + r.Height - opts.OffsetY) * opts.Zoom)

	if r.Fill != nil {
		fillRect(dst, x1, y1, x2, y2, *r.Fill)
	}
	stroke := colorutil.Outline
	if r.Stroke != nil {
		stroke = *r.Stroke
	}
	strokeRect(dst, x1, y1, x2, y2, stroke)
}

func drawDesk(dst *image.RGBA, d *scene.Desk, opts Options) {
	cx := int((d.X - opts.OffsetX) * opts.Zoom)
	cy := int((d.Y - opts.OffsetY) * opts.Zoom)

	radius := deskBaseRadius * opts.Zoom
	if radius < deskMinRadius {
		radius = deskMinRadius
	}
	if radius > deskMaxRadius {
		radius = deskMaxRadius
	}

	fillCircle(dst, cx, cy, int(radius), colorutil.DeskDot)
}

func fillBackground(dst *image.RGBA) {
	bg := colorutil.Background
	bounds := dst.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetRGBA(x, y, bg)
		}
	}
}

func fillRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	bounds := dst.Bounds()
	for y := y1; y < y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x1; x < x2; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dst.SetRGBA(x, y, col)
		}
	}
}

func strokeRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	bounds := dst.Bounds()
	for x := x1; x <= x2; x++ {
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		if y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			dst.SetRGBA(x, y1, col)
		}
		if y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			dst.SetRGBA(x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		if x1 >= bounds.Min.X && x1 < bounds.Max.X {
			dst.SetRGBA(x1, y, col)
		}
		if x2 >= bounds.Min.X && x2 < bounds.Max.X {
			dst.SetRGBA(x2, y, col)
		}
	}
}

func fillCircle(dst *image.RGBA, cx, cy, radius int, col color.RGBA) {
	bounds := dst.Bounds()
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			dst.SetRGBA(x, y, col)
		}
	}
}
