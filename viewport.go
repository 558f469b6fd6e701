package plot

import (
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Viewport is a rectangular region on a canvas. Grob coordinates in
// [0,1] x [0,1] are mapped to this region; coordinates outside [0,1]
// address points outside the region, e.g. axis labels in the margin.
type Viewport struct {
	X0, Y0        vg.Length
	Width, Height vg.Length
	Canvas        draw.Canvas
}

// NewViewport returns a viewport covering all of c.
func NewViewport(c draw.Canvas) Viewport {
	return Viewport{
		X0:     c.Min.X,
		Y0:     c.Min.Y,
		Width:  c.Max.X - c.Min.X,
		Height: c.Max.Y - c.Min.Y,
		Canvas: c,
	}
}

// X maps the grob x coordinate to a position on the canvas.
func (vp Viewport) X(x float64) vg.Length {
	return vp.X0 + vg.Length(x)*vp.Width
}

// Y maps the grob y coordinate to a position on the canvas.
func (vp Viewport) Y(y float64) vg.Length {
	return vp.Y0 + vg.Length(y)*vp.Height
}

// Point maps grob coordinates to a point on the canvas.
func (vp Viewport) Point(x, y float64) vg.Point {
	return vg.Point{X: vp.X(x), Y: vp.Y(y)}
}

func (vp Viewport) String() string {
	return fmt.Sprintf("Viewport{%.1f+%.1f x %.1f+%.1f}",
		vp.X0.Points(), vp.Width.Points(), vp.Y0.Points(), vp.Height.Points())
}

// SubViewport returns the part of vp given by the fractional coordinates
// x0, y0, width and height.
func SubViewport(vp Viewport, x0, y0, width, height float64) Viewport {
	return Viewport{
		X0:     vp.X(x0),
		Y0:     vp.Y(y0),
		Width:  vg.Length(width) * vp.Width,
		Height: vg.Length(height) * vp.Height,
		Canvas: vp.Canvas,
	}
}
