package plot

import (
	"image/color"
	"math"
	"strings"
)

// Geom is a geometrical object, a type of visual for the plot.
type Geom interface {
	Name() string            // The name of the geom.
	NeededSlots() []string   // The needed slots to construct this geom.
	OptionalSlots() []string // The optional slots this geom understands.

	// Aes returns the merged default (fixed) aesthetics.
	Aes(plot *Plot) AesMapping

	// Construct prepares the data for rendering, trains the panel
	// scales and may reparametrize the geom to fundamental geoms.
	Construct(df *DataFrame, p *Panel) []Fundamental

	// Render interpretes data as the specific geom and produces Grobs.
	Render(p *Panel, data *DataFrame, aes AesMapping) []Grob

	// Bounds reports the data range the geom covers on the scale of
	// the given aesthetic. Reparametrized geoms may cover more than
	// the column of that name, e.g. a rect covers xmin and xmax.
	Bounds(aes string, df *DataFrame) (min, max float64)

	// DrawKey draws the legend key for this geom into vp.
	DrawKey(vp Viewport, aes AesMapping)
}

// A Fundamental is a geom together with the data it should render.
type Fundamental struct {
	Geom Geom
	Data *DataFrame
}

// trainScales is a helper for geom construction: Some scales of p are
// trained on some fields of data. The spec argument is of the form
//     "x:xmin,xmax y:ylow,yhigh"
// and determines which scales (here x and y) are trained on which
// fields. A missing scale is created from the first present field, so
// stat generated aesthetics get a scale too.
func trainScales(p *Panel, data *DataFrame, spec string) {
	for _, scaleSpec := range strings.Split(spec, " ") {
		t := strings.Split(scaleSpec, ":")
		scale := p.Scales[t[0]]
		for _, field := range strings.Split(t[1], ",") {
			if !data.Has(field) {
				continue
			}
			if scale == nil {
				scale = NewScale(t[0], data.Columns[field])
				p.Scales[t[0]] = scale
			}
			scale.Train(data.Columns[field])
		}
	}
}

// defaultBounds reports the range of the column aes in df, NaN if the
// column is missing or empty.
func defaultBounds(aes string, df *DataFrame) (float64, float64) {
	return boundsOver(df, aes)
}

// boundsOver reports the combined range of the given columns of df.
func boundsOver(df *DataFrame, fields ...string) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	if df == nil {
		return lo, hi
	}
	for _, field := range fields {
		if !df.Has(field) {
			continue
		}
		min, max, mini, maxi := df.Columns[field].MinMax()
		if mini != -1 && (math.IsNaN(lo) || min < lo) {
			lo = min
		}
		if maxi != -1 && (math.IsNaN(hi) || max > hi) {
			hi = max
		}
	}
	return lo, hi
}

// -------------------------------------------------------------------------
// Aesthetic resolution
//
// The make*Func helpers turn an aesthetic into a per-row accessor. A
// mapped aesthetic (a column in the data) is run through the panel
// scale; a fixed aesthetic (an entry in the merged style) is parsed
// once and returned for every row.

func makeColorFunc(aes string, data *DataFrame, panel *Panel, style AesMapping) func(i int) color.Color {
	if data.Has(aes) {
		if scale, ok := panel.Scales[aes]; ok && scale.Color != nil {
			d := data.Columns[aes].Data
			return func(i int) color.Color { return scale.Color(d[i]) }
		}
	}
	c := String2Color(styleValue(style, aes, "#222222"))
	return func(int) color.Color { return c }
}

func makePosFunc(aes string, data *DataFrame, panel *Panel, style AesMapping, low, high float64) func(i int) float64 {
	if data.Has(aes) {
		if scale, ok := panel.Scales[aes]; ok && scale.Pos != nil {
			d := data.Columns[aes].Data
			return func(i int) float64 { return low + scale.Pos(d[i])*(high-low) }
		}
	}
	v := String2Float(styleValue(style, aes, "1"), low, high)
	return func(int) float64 { return v }
}

func makeStyleFunc(aes string, data *DataFrame, panel *Panel, style AesMapping) func(i int) int {
	if data.Has(aes) {
		if scale, ok := panel.Scales[aes]; ok && scale.Style != nil {
			d := data.Columns[aes].Data
			return func(i int) int { return scale.Style(d[i]) }
		}
	}
	var v int
	switch aes {
	case "linetype":
		v = int(String2LineType(styleValue(style, aes, "solid")))
	default:
		v = int(String2PointShape(styleValue(style, aes, "circle")))
	}
	return func(int) int { return v }
}

// styleValue returns the first usable value: the fixed aesthetic from
// style if set, the fallback otherwise.
func styleValue(style AesMapping, aes, fallback string) string {
	if v, ok := style[aes]; ok && v != "" {
		return v
	}
	return fallback
}

// -------------------------------------------------------------------------
// Legend keys

func drawPathKey(vp Viewport, style AesMapping) {
	GrobLine{
		x0: 0.1, y0: 0.5, x1: 0.9, y1: 0.5,
		size:     String2Float(styleValue(style, "size", "1"), 0, 10),
		linetype: String2LineType(styleValue(style, "linetype", "solid")),
		color:    String2Color(styleValue(style, "color", "#222222")),
	}.Draw(vp)
}

func drawPointKey(vp Viewport, style AesMapping) {
	GrobPoint{
		x: 0.5, y: 0.5,
		size:  String2Float(styleValue(style, "size", "5"), 0, 10),
		shape: String2PointShape(styleValue(style, "shape", "circle")),
		color: String2Color(styleValue(style, "color", "#222222")),
	}.Draw(vp)
}

func drawRectKey(vp Viewport, style AesMapping) {
	GrobRect{
		xmin: 0.15, ymin: 0.15, xmax: 0.85, ymax: 0.85,
		fill: String2Color(styleValue(style, "fill", "gray20")),
	}.Draw(vp)
}

// -------------------------------------------------------------------------
// Geom Point

type GeomPoint struct {
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomPoint{}

func (p GeomPoint) Name() string            { return "GeomPoint" }
func (p GeomPoint) NeededSlots() []string   { return []string{"x", "y"} }
func (p GeomPoint) OptionalSlots() []string { return []string{"color", "size", "shape", "alpha"} }

func (p GeomPoint) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.PointStyle, DefaultTheme.PointStyle)
}

func (p GeomPoint) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return []Fundamental{{Geom: p, Data: df}}
}

func (p GeomPoint) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y := data.Columns["x"], data.Columns["y"]
	xf, yf := panel.Scales["x"].Pos, panel.Scales["y"].Pos

	colFunc := makeColorFunc("color", data, panel, style)
	sizeFunc := makePosFunc("size", data, panel, style, 1, 10)
	alphaFunc := makePosFunc("alpha", data, panel, style, 0, 1)
	shapeFunc := makeStyleFunc("shape", data, panel, style)

	grobs := make([]Grob, data.N)
	for i := 0; i < data.N; i++ {
		grobs[i] = GrobPoint{
			x:     xf(x.Data[i]),
			y:     yf(y.Data[i]),
			color: SetAlpha(colFunc(i), alphaFunc(i)),
			size:  sizeFunc(i),
			shape: PointShape(shapeFunc(i)),
		}
	}
	return grobs
}

func (p GeomPoint) Bounds(aes string, df *DataFrame) (float64, float64) {
	return defaultBounds(aes, df)
}

func (p GeomPoint) DrawKey(vp Viewport, style AesMapping) { drawPointKey(vp, style) }

// -------------------------------------------------------------------------
// Geom Line

type GeomLine struct {
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomLine{}

func (p GeomLine) Name() string          { return "GeomLine" }
func (p GeomLine) NeededSlots() []string { return []string{"x", "y"} }
func (p GeomLine) OptionalSlots() []string {
	return []string{"color", "size", "linetype", "alpha", "group"}
}

func (p GeomLine) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.LineStyle, DefaultTheme.LineStyle)
}

func (p GeomLine) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return []Fundamental{{Geom: p, Data: df}}
}

func (p GeomLine) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	return renderPaths(panel, data, style, false)
}

func (p GeomLine) Bounds(aes string, df *DataFrame) (float64, float64) {
	return defaultBounds(aes, df)
}

func (p GeomLine) DrawKey(vp Viewport, style AesMapping) { drawPathKey(vp, style) }

// -------------------------------------------------------------------------
// Geom Path
//
// GeomPath is the generic path renderer: it draws the rows of the data
// frame in order, partitioned by the optional group column. A NaN
// coordinate lifts the pen, so one group can carry several disconnected
// strokes. Derived geoms (boxplot whiskers, error bars) reparametrize
// into this geom.

type GeomPath struct {
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomPath{}

func (p GeomPath) Name() string          { return "GeomPath" }
func (p GeomPath) NeededSlots() []string { return []string{"x", "y"} }
func (p GeomPath) OptionalSlots() []string {
	return []string{"color", "size", "linetype", "alpha", "group"}
}

func (p GeomPath) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.LineStyle, DefaultTheme.LineStyle)
}

func (p GeomPath) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return []Fundamental{{Geom: p, Data: df}}
}

func (p GeomPath) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	return renderPaths(panel, data, style, true)
}

func (p GeomPath) Bounds(aes string, df *DataFrame) (float64, float64) {
	return defaultBounds(aes, df)
}

func (p GeomPath) DrawKey(vp Viewport, style AesMapping) { drawPathKey(vp, style) }

// renderPaths renders data as strokes, one per group. A NaN x or y
// coordinate is never drawn; with penUp it additionally breaks the
// stroke into disconnected segments.
func renderPaths(panel *Panel, data *DataFrame, style AesMapping, penUp bool) []Grob {
	scaleX, scaleY := panel.Scales["x"], panel.Scales["y"]
	grobs := make([]Grob, 0)

	var partitions []*DataFrame
	if data.Has("group") {
		levels := Levels(data, "group").Elements()
		partitions = Partition(data, "group", levels)
	} else {
		partitions = []*DataFrame{data}
	}

	for _, part := range partitions {
		x, y := part.Columns["x"], part.Columns["y"]
		colFunc := makeColorFunc("color", part, panel, style)
		sizeFunc := makePosFunc("size", part, panel, style, 0, 10)
		alphaFunc := makePosFunc("alpha", part, panel, style, 0, 1)
		typeFunc := makeStyleFunc("linetype", part, panel, style)

		broken := func(i int) bool {
			return math.IsNaN(x.Data[i]) || math.IsNaN(y.Data[i])
		}

		if part.Has("color") || part.Has("size") ||
			part.Has("alpha") || part.Has("linetype") {
			// Some of the optional aesthetics are mapped (not set).
			// Cannot represent safely as a GrobPath; thus use lots
			// of GrobLine.
			for i := 0; i < part.N-1; i++ {
				if broken(i) || broken(i+1) {
					continue
				}
				grobs = append(grobs, GrobLine{
					x0:       scaleX.Pos(x.Data[i]),
					y0:       scaleY.Pos(y.Data[i]),
					x1:       scaleX.Pos(x.Data[i+1]),
					y1:       scaleY.Pos(y.Data[i+1]),
					color:    SetAlpha(colFunc(i), alphaFunc(i)),
					size:     sizeFunc(i),
					linetype: LineType(typeFunc(i)),
				})
			}
			continue
		}

		// All segments have same color, linetype and size: use one
		// GrobPath per contiguous run of defined points.
		var points []struct{ x, y float64 }
		flush := func() {
			if len(points) >= 2 {
				grobs = append(grobs, GrobPath{
					points:   points,
					color:    SetAlpha(colFunc(0), alphaFunc(0)),
					size:     sizeFunc(0),
					linetype: LineType(typeFunc(0)),
				})
			}
			points = nil
		}
		for i := 0; i < part.N; i++ {
			if broken(i) {
				// Never emit a NaN point. Without penUp the stroke
				// continues across the gap.
				if penUp {
					flush()
				}
				continue
			}
			points = append(points, struct{ x, y float64 }{
				x: scaleX.Pos(x.Data[i]),
				y: scaleY.Pos(y.Data[i]),
			})
		}
		flush()
	}

	return grobs
}

// -------------------------------------------------------------------------
// Geom ABLine

type GeomABLine struct {
	Intercept, Slope float64
	Style            AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomABLine{}

func (p GeomABLine) Name() string            { return "GeomABLine" }
func (p GeomABLine) NeededSlots() []string   { return []string{"intercept", "slope"} }
func (p GeomABLine) OptionalSlots() []string { return []string{"color", "size", "linetype", "alpha"} }

func (p GeomABLine) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.LineStyle, DefaultTheme.LineStyle)
}

func (p GeomABLine) Construct(df *DataFrame, panel *Panel) []Fundamental {
	// Only scale training as rendering an abline is dead simple.
	ic, sc := df.Columns["intercept"].Data, df.Columns["slope"].Data
	scaleX, scaleY := panel.Scales["x"], panel.Scales["y"]
	xmin, xmax := scaleX.DomainMin, scaleX.DomainMax

	for i := 0; i < df.N; i++ {
		intercept, slope := ic[i], sc[i]
		scaleY.TrainByValue(slope*xmin+intercept, slope*xmax+intercept)
	}

	return []Fundamental{{Geom: p, Data: df}}
}

func (p GeomABLine) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	ic, sc := data.Columns["intercept"].Data, data.Columns["slope"].Data
	grobs := make([]Grob, data.N)
	colFunc := makeColorFunc("color", data, panel, style)
	sizeFunc := makePosFunc("size", data, panel, style, 0, 10)
	alphaFunc := makePosFunc("alpha", data, panel, style, 0, 1)
	typeFunc := makeStyleFunc("linetype", data, panel, style)

	scaleX, scaleY := panel.Scales["x"], panel.Scales["y"]
	xmin, xmax := scaleX.DomainMin, scaleX.DomainMax
	sxmin, sxmax := scaleX.Pos(xmin), scaleX.Pos(xmax)

	for i := 0; i < data.N; i++ {
		intercept, slope := ic[i], sc[i]
		grobs[i] = GrobLine{
			x0:       sxmin,
			y0:       scaleY.Pos(xmin*slope + intercept),
			x1:       sxmax,
			y1:       scaleY.Pos(xmax*slope + intercept),
			color:    SetAlpha(colFunc(i), alphaFunc(i)),
			size:     sizeFunc(i),
			linetype: LineType(typeFunc(i)),
		}
	}

	return grobs
}

func (p GeomABLine) Bounds(aes string, df *DataFrame) (float64, float64) {
	// An abline spans whatever range the other layers establish.
	return math.NaN(), math.NaN()
}

func (p GeomABLine) DrawKey(vp Viewport, style AesMapping) { drawPathKey(vp, style) }

// -------------------------------------------------------------------------
// Geom Text

type GeomText struct {
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomText{}

func (t GeomText) Name() string            { return "GeomText" }
func (t GeomText) NeededSlots() []string   { return []string{"x", "y", "text"} }
func (t GeomText) OptionalSlots() []string { return []string{"color", "size", "angle", "alpha"} }

func (t GeomText) Aes(plot *Plot) AesMapping {
	return MergeStyles(t.Style, plot.Theme.TextStyle, DefaultTheme.TextStyle)
}

func (t GeomText) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return []Fundamental{{Geom: t, Data: df}}
}

func (t GeomText) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y, s := data.Columns["x"], data.Columns["y"], data.Columns["text"]
	xf, yf := panel.Scales["x"].Pos, panel.Scales["y"].Pos

	colFunc := makeColorFunc("color", data, panel, style)
	sizeFunc := makePosFunc("size", data, panel, style, 1, 40)
	alphaFunc := makePosFunc("alpha", data, panel, style, 0, 1)
	angleFunc := makePosFunc("angle", data, panel, style, 0, 360)

	grobs := make([]Grob, data.N)
	for i := 0; i < data.N; i++ {
		grobs[i] = GrobText{
			x:     xf(x.Data[i]),
			y:     yf(y.Data[i]),
			text:  s.String(s.Data[i]),
			color: SetAlpha(colFunc(i), alphaFunc(i)),
			size:  sizeFunc(i),
			angle: angleFunc(i) * math.Pi / 180,
		}
	}
	return grobs
}

func (t GeomText) Bounds(aes string, df *DataFrame) (float64, float64) {
	return defaultBounds(aes, df)
}

func (t GeomText) DrawKey(vp Viewport, style AesMapping) {
	GrobText{
		x: 0.5, y: 0.5, text: "a",
		size:  String2Float(styleValue(style, "size", "12"), 1, 40),
		color: String2Color(styleValue(style, "color", "#222222")),
	}.Draw(vp)
}

// -------------------------------------------------------------------------
// Geom Bar

type GeomBar struct {
	Style    AesMapping // The individual fixed, aka non-mapped aesthetics
	Position PositionAdjust
}

var _ Geom = GeomBar{}

func (b GeomBar) Name() string            { return "GeomBar" }
func (b GeomBar) NeededSlots() []string   { return []string{"x", "y"} }
func (b GeomBar) OptionalSlots() []string { return []string{"fill", "color", "size", "linetype", "alpha"} }

func (b GeomBar) Aes(plot *Plot) AesMapping {
	return MergeStyles(b.Style, plot.Theme.BarStyle, DefaultTheme.BarStyle)
}

func (b GeomBar) Construct(df *DataFrame, panel *Panel) []Fundamental {
	xf := df.Columns["x"]
	xd := xf.Data
	if !df.Has("width") {
		width := 0.9
		if r, ok := xf.Resolution(); ok {
			width = r * 0.9
		}
		df.Columns["width"] = xf.Const(width, df.N)
	}
	yd, wd := df.Columns["y"].Data, df.Columns["width"].Data

	pool := df.Pool
	xminf, yminf := NewField(df.N, Float, pool), NewField(df.N, Float, pool)
	xmaxf, ymaxf := NewField(df.N, Float, pool), NewField(df.N, Float, pool)
	xmin, ymin := xminf.Data, yminf.Data
	xmax, ymax := xmaxf.Data, ymaxf.Data

	runningYmax := make(map[float64]float64)
	barsAt := make(map[float64]float64) // Number of bars at each x pos.
	for i := 0; i < df.N; i++ {
		if y := yd[i]; y > 0 {
			ymin[i] = 0
			ymax[i] = y
		} else {
			ymin[i] = y
			ymax[i] = 0
		}
		x, wh := xd[i], wd[i]/2
		xmin[i] = x - wh
		xmax[i] = x + wh

		switch b.Position {
		case PosStack, PosFill:
			r := runningYmax[x]
			h := ymax[i] - ymin[i]
			runningYmax[x] = r + h
			ymax[i] += r
			ymin[i] += r
		case PosDodge:
			barsAt[x] = barsAt[x] + 1
		}
	}

	switch b.Position {
	case PosFill:
		for x, sum := range runningYmax {
			for i := 0; i < df.N; i++ {
				if x != xd[i] {
					continue
				}
				ymin[i] /= sum
				ymax[i] /= sum
			}
		}
	case PosDodge:
		for x, n := range barsAt {
			j := 0.0
			for i := 0; i < df.N; i++ {
				if x != xd[i] {
					continue
				}
				wh := wd[i] / 2
				we := wd[i] / n
				xmin[i] = x - wh + j*we
				xmax[i] = x - wh + (j+1)*we
				j++
			}
		}
	}

	df.Columns["xmin"] = xminf
	df.Columns["ymin"] = yminf
	df.Columns["xmax"] = xmaxf
	df.Columns["ymax"] = ymaxf
	df.Delete("width")
	df.Delete("x")
	df.Delete("y")

	trainScales(panel, df, "x:xmin,xmax y:ymin,ymax")

	return []Fundamental{{
		Geom: GeomRect{Style: b.Style.Copy()},
		Data: df,
	}}
}

func (b GeomBar) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	panic("GeomBar renders via GeomRect")
}

func (b GeomBar) Bounds(aes string, df *DataFrame) (float64, float64) {
	return GeomRect{}.Bounds(aes, df)
}

func (b GeomBar) DrawKey(vp Viewport, style AesMapping) { drawRectKey(vp, style) }

// -------------------------------------------------------------------------
// Geom Rect

type GeomRect struct {
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomRect{}

func (r GeomRect) Name() string          { return "GeomRect" }
func (r GeomRect) NeededSlots() []string { return []string{"xmin", "ymin", "xmax", "ymax"} }
func (r GeomRect) OptionalSlots() []string {
	return []string{"color", "fill", "linetype", "alpha", "size"}
}

func (r GeomRect) Aes(plot *Plot) AesMapping {
	return MergeStyles(r.Style, plot.Theme.RectStyle, DefaultTheme.RectStyle)
}

func (r GeomRect) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:xmin,xmax y:ymin,ymax")
	return []Fundamental{{Geom: r, Data: df}}
}

func (r GeomRect) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	xmin, ymin := data.Columns["xmin"].Data, data.Columns["ymin"].Data
	xmax, ymax := data.Columns["xmax"].Data, data.Columns["ymax"].Data
	xf, yf := panel.Scales["x"].Pos, panel.Scales["y"].Pos

	colFunc := makeColorFunc("color", data, panel, style)
	fillFunc := makeColorFunc("fill", data, panel, style)
	linetypeFunc := makeStyleFunc("linetype", data, panel, style)
	alphaFunc := makePosFunc("alpha", data, panel, style, 0, 1)
	sizeFunc := makePosFunc("size", data, panel, style, 0, 10)

	grobs := make([]Grob, 0)
	for i := 0; i < data.N; i++ {
		alpha := alphaFunc(i)
		if alpha == 0 {
			continue // Won't be visible anyway.
		}

		// Coordinates of diagonal corners.
		x0, y0 := xf(xmin[i]), yf(ymin[i])
		x1, y1 := xf(xmax[i]), yf(ymax[i])
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		if y0 > y1 {
			y0, y1 = y1, y0
		}

		grobs = append(grobs, GrobRect{
			xmin: x0,
			ymin: y0,
			xmax: x1,
			ymax: y1,
			fill: SetAlpha(fillFunc(i), alpha),
		})

		// Draw a border only if linetype != blank.
		lt := LineType(linetypeFunc(i))
		if lt == BlankLine {
			continue
		}
		points := make([]struct{ x, y float64 }, 5)
		points[0].x, points[0].y = x0, y0
		points[1].x, points[1].y = x1, y0
		points[2].x, points[2].y = x1, y1
		points[3].x, points[3].y = x0, y1
		points[4].x, points[4].y = x0, y0
		grobs = append(grobs, GrobPath{
			points:   points,
			linetype: lt,
			color:    SetAlpha(colFunc(i), alpha),
			size:     sizeFunc(i),
		})
	}

	return grobs
}

func (r GeomRect) Bounds(aes string, df *DataFrame) (float64, float64) {
	switch aes {
	case "x":
		return boundsOver(df, "xmin", "xmax")
	case "y":
		return boundsOver(df, "ymin", "ymax")
	}
	return defaultBounds(aes, df)
}

func (r GeomRect) DrawKey(vp Viewport, style AesMapping) { drawRectKey(vp, style) }

// -------------------------------------------------------------------------
// Geom Boxplot

type GeomBoxplot struct {
	Style    AesMapping // The individual fixed, aka non-mapped aesthetics
	Position PositionAdjust
}

var _ Geom = GeomBoxplot{}

func (b GeomBoxplot) Name() string { return "GeomBoxplot" }
func (b GeomBoxplot) NeededSlots() []string {
	return []string{"x", "min", "low", "q1", "mid", "q3", "high", "max"}
}
func (b GeomBoxplot) OptionalSlots() []string { return []string{"fill"} }

func (b GeomBoxplot) Aes(plot *Plot) AesMapping {
	return MergeStyles(b.Style, plot.Theme.RectStyle, DefaultTheme.RectStyle)
}

// Construct reparametrizes a boxplot into a rect (the box) and grouped
// path segments (whiskers and median line) per data point.
func (b GeomBoxplot) Construct(data *DataFrame, panel *Panel) []Fundamental {
	low, high := data.Columns["low"].Data, data.Columns["high"].Data
	q1, q3 := data.Columns["q1"].Data, data.Columns["q3"].Data
	x, mid := data.Columns["x"].Data, data.Columns["mid"].Data

	width := 0.9
	if r, ok := data.Columns["x"].Resolution(); ok {
		width = r * 0.9
	}

	pool := data.Pool
	rects := NewDataFrame("Boxes of "+data.Name, pool)
	rects.N = data.N
	xmin, xmax := NewField(data.N, Float, pool), NewField(data.N, Float, pool)
	ymin, ymax := NewField(data.N, Float, pool), NewField(data.N, Float, pool)

	lines := NewDataFrame("Whiskers of "+data.Name, pool)
	lines.N = 6 * data.N
	xx := NewField(6*data.N, Float, pool)
	yy := NewField(6*data.N, Float, pool)
	gg := NewField(6*data.N, Int, pool)

	// Count how many boxes are drawn at each x value.
	barsAt := make(map[float64]float64)
	drawnAt := make(map[float64]float64)
	for i := 0; i < data.N; i++ {
		barsAt[x[i]]++
	}

	for i := 0; i < data.N; i++ {
		xc := x[i]
		wh := width / 2

		if b.Position == PosDodge {
			total := barsAt[xc]
			drawn := drawnAt[xc]
			drawnAt[xc]++
			wh /= total
			xc += (2*drawn - (total - 1)) * wh
		}

		xmin.Data[i], xmax.Data[i] = xc-wh, xc+wh
		ymin.Data[i], ymax.Data[i] = q1[i], q3[i]

		// Lower whisker, upper whisker, median stroke.
		xx.Data[6*i], xx.Data[6*i+1] = xc, xc
		xx.Data[6*i+2], xx.Data[6*i+3] = xc, xc
		yy.Data[6*i], yy.Data[6*i+1] = low[i], q1[i]
		yy.Data[6*i+2], yy.Data[6*i+3] = q3[i], high[i]

		xx.Data[6*i+4], xx.Data[6*i+5] = xc-wh, xc+wh
		yy.Data[6*i+4], yy.Data[6*i+5] = mid[i], mid[i]

		group := float64(3 * i)
		gg.Data[6*i], gg.Data[6*i+1] = group, group
		gg.Data[6*i+2], gg.Data[6*i+3] = group+1, group+1
		gg.Data[6*i+4], gg.Data[6*i+5] = group+2, group+2
	}

	rects.Columns["xmin"] = xmin
	rects.Columns["xmax"] = xmax
	rects.Columns["ymin"] = ymin
	rects.Columns["ymax"] = ymax
	if data.Has("fill") {
		rects.Columns["fill"] = data.Columns["fill"]
	}

	lines.Columns["x"] = xx
	lines.Columns["y"] = yy
	lines.Columns["group"] = gg

	trainScales(panel, rects, "x:xmin,xmax")
	trainScales(panel, lines, "y:y")
	trainScales(panel, data, "y:min,max")

	return []Fundamental{
		{
			Geom: GeomRect{Style: b.Style.Copy()},
			Data: rects,
		},
		{
			Geom: GeomPath{Style: b.Style.Copy()},
			Data: lines,
		},
	}
}

func (b GeomBoxplot) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	panic("GeomBoxplot renders via GeomRect and GeomPath")
}

func (b GeomBoxplot) Bounds(aes string, df *DataFrame) (float64, float64) {
	return defaultBounds(aes, df)
}

func (b GeomBoxplot) DrawKey(vp Viewport, style AesMapping) { drawRectKey(vp, style) }
