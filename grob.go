package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Grob is a graphical object which can draw itself to a viewport.
// Grob coordinates are in [0,1] as produced by the position scales.
type Grob interface {
	Draw(vp Viewport)
	String() string
}

// dashesFor returns the vg dash pattern for lt.
func dashesFor(lt LineType) []vg.Length {
	switch lt {
	case DashedLine:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case DottedLine:
		return []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	case DotDashLine:
		return []vg.Length{vg.Points(1.5), vg.Points(2.5), vg.Points(6), vg.Points(2.5)}
	case LongdashLine:
		return []vg.Length{vg.Points(9), vg.Points(3)}
	case TwodashLine:
		return []vg.Length{vg.Points(6), vg.Points(3), vg.Points(2), vg.Points(3)}
	}
	return nil
}

// glyphFor returns the vg glyph drawer for shape, nil for BlankPoint.
func glyphFor(shape PointShape) draw.GlyphDrawer {
	switch shape {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint, DiamondPoint:
		return draw.SquareGlyph{}
	case DeltaPoint, NablaPoint:
		return draw.TriangleGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint, SolidDiamondPoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint, SolidNablaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint, StarPoint:
		return draw.CrossGlyph{}
	case PlusPoint:
		return draw.PlusGlyph{}
	}
	return nil
}

// -------------------------------------------------------------------------
// Grob Point

type GrobPoint struct {
	x, y  float64
	size  float64
	shape PointShape
	color color.Color
}

func (point GrobPoint) Draw(vp Viewport) {
	glyph := glyphFor(point.shape)
	if glyph == nil || point.color == nil {
		return
	}
	sty := draw.GlyphStyle{
		Color:  point.color,
		Radius: vg.Points(point.size),
		Shape:  glyph,
	}
	vp.Canvas.DrawGlyph(sty, vp.Point(point.x, point.y))
}

func (point GrobPoint) String() string {
	return fmt.Sprintf("Point(%.3f,%.3f %v %.1f)", point.x, point.y, point.color, point.size)
}

// -------------------------------------------------------------------------
// Grob Line

type GrobLine struct {
	x0, y0, x1, y1 float64
	size           float64
	linetype       LineType
	color          color.Color
}

func (line GrobLine) Draw(vp Viewport) {
	if line.linetype == BlankLine || line.color == nil {
		return
	}
	sty := draw.LineStyle{
		Color:  line.color,
		Width:  vg.Points(line.size),
		Dashes: dashesFor(line.linetype),
	}
	vp.Canvas.StrokeLine2(sty,
		vp.X(line.x0), vp.Y(line.y0),
		vp.X(line.x1), vp.Y(line.y1))
}

func (line GrobLine) String() string {
	return fmt.Sprintf("Line(%.3f,%.3f - %.3f,%.3f %v %.1f)",
		line.x0, line.y0, line.x1, line.y1, line.color, line.size)
}

// -------------------------------------------------------------------------
// Grob Path

type GrobPath struct {
	points   []struct{ x, y float64 }
	size     float64
	linetype LineType
	color    color.Color
}

func (path GrobPath) Draw(vp Viewport) {
	if path.linetype == BlankLine || path.color == nil || len(path.points) < 2 {
		return
	}
	sty := draw.LineStyle{
		Color:  path.color,
		Width:  vg.Points(path.size),
		Dashes: dashesFor(path.linetype),
	}
	ps := make([]vg.Point, len(path.points))
	for i, p := range path.points {
		ps[i] = vp.Point(p.x, p.y)
	}
	vp.Canvas.StrokeLines(sty, vp.Canvas.ClipLinesXY(ps)...)
}

func (path GrobPath) String() string {
	s := "Path("
	for i, p := range path.points {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.3f,%.3f", p.x, p.y)
	}
	return s + fmt.Sprintf(" %v %.1f)", path.color, path.size)
}

// -------------------------------------------------------------------------
// Grob Rect

type GrobRect struct {
	xmin, ymin float64
	xmax, ymax float64
	fill       color.Color
}

func (rect GrobRect) Draw(vp Viewport) {
	if rect.fill == nil {
		return
	}
	vp.Canvas.FillPolygon(rect.fill, []vg.Point{
		vp.Point(rect.xmin, rect.ymin),
		vp.Point(rect.xmax, rect.ymin),
		vp.Point(rect.xmax, rect.ymax),
		vp.Point(rect.xmin, rect.ymax),
	})
}

func (rect GrobRect) String() string {
	return fmt.Sprintf("Rect(%.3f,%.3f - %.3f,%.3f %v)",
		rect.xmin, rect.ymin, rect.xmax, rect.ymax, rect.fill)
}

// -------------------------------------------------------------------------
// Grob Text

type GrobText struct {
	x, y  float64
	text  string
	size  float64
	color color.Color
	angle float64 // in radian
}

func (text GrobText) Draw(vp Viewport) {
	if text.text == "" || text.color == nil {
		return
	}
	size := text.size
	if size == 0 {
		size = 10
	}
	font, err := vg.MakeFont("Helvetica", vg.Points(size))
	if err != nil {
		return
	}
	sty := draw.TextStyle{
		Color:    text.color,
		Font:     font,
		Rotation: text.angle,
		XAlign:   draw.XCenter,
		YAlign:   draw.YCenter,
	}
	vp.Canvas.FillText(sty, vp.Point(text.x, text.y), text.text)
}

func (text GrobText) String() string {
	return fmt.Sprintf("Text(%.3f,%.3f %q %v %.1f)", text.x, text.y, text.text, text.color, text.size)
}
