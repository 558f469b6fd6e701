package plot

import "math"

// DefaultErrorbarWidth is the total cap width used when neither the
// data, the layer parameter nor the x resolution provide one.
const DefaultErrorbarWidth = 0.5

// GeomUpErrorbar draws an error indicator extending only upward from a
// data point: a horizontal cap at ymax and a vertical stem from ymax
// down to y. There is no downward extension, which makes the geom
// suitable for bar charts where a full error bar would poke into the
// bar.
//
// Each observation needs x, y and ymax. The cap width comes from a
// width column in the data, the Width field below or 0.9 times the
// resolution of x, in this order.
type GeomUpErrorbar struct {
	Width float64    // Layer-level cap width, 0 means unset.
	Style AesMapping // The individual fixed, aka non-mapped aesthetics
}

var _ Geom = GeomUpErrorbar{}

func (e GeomUpErrorbar) Name() string          { return "GeomUpErrorbar" }
func (e GeomUpErrorbar) NeededSlots() []string { return []string{"x", "y", "ymax"} }
func (e GeomUpErrorbar) OptionalSlots() []string {
	return []string{"color", "size", "linetype", "alpha", "group", "width"}
}

func (e GeomUpErrorbar) Aes(plot *Plot) AesMapping {
	return MergeStyles(e.Style, plot.Theme.ErrorbarStyle, DefaultTheme.ErrorbarStyle)
}

// Construct resolves the cap width of each row and reparametrizes it to
// the cap interval: xmin = x - width/2 and xmax = x + width/2. The
// width column is consumed. Rows are neither added nor removed.
func (e GeomUpErrorbar) Construct(df *DataFrame, panel *Panel) []Fundamental {
	xf := df.Columns["x"]
	if !df.Has("width") {
		width := e.Width
		if width == 0 {
			if r, ok := xf.Resolution(); ok {
				width = r * 0.9
			} else {
				// All x values identical: the resolution is
				// undefined, fall back to the fixed default.
				width = DefaultErrorbarWidth
			}
		}
		df.Columns["width"] = xf.Const(width, df.N)
	}

	wd := df.Columns["width"].Data
	xminf, xmaxf := NewField(df.N, Float, df.Pool), NewField(df.N, Float, df.Pool)
	for i := 0; i < df.N; i++ {
		wh := wd[i] / 2
		xminf.Data[i] = xf.Data[i] - wh
		xmaxf.Data[i] = xf.Data[i] + wh
	}
	df.Columns["xmin"] = xminf
	df.Columns["xmax"] = xmaxf
	df.Delete("width")

	trainScales(panel, df, "x:xmin,xmax y:y,ymax")

	return []Fundamental{{Geom: e, Data: df}}
}

// Render expands each prepared row into the 5-vertex path
//     (xmin,ymax) (xmax,ymax) (NaN,NaN) (x,ymax) (x,y)
// and hands the result to the generic path renderer. The NaN vertex
// lifts the pen, so cap and stem are disconnected strokes of the same
// group.
func (e GeomUpErrorbar) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	return GeomPath{Style: e.Style}.Render(panel, e.vertices(data), style)
}

// vertices builds the path representation of the prepared rows. Every
// optional aesthetic of a row is replicated to its 5 vertices and each
// row gets its own group, so strokes of different rows are never
// connected.
func (e GeomUpErrorbar) vertices(data *DataFrame) *DataFrame {
	n := data.N
	pool := data.Pool
	verts := NewDataFrame("Segments of "+data.Name, pool)
	verts.N = 5 * n

	x := data.Columns["x"].Data
	y := data.Columns["y"].Data
	ymax := data.Columns["ymax"].Data
	xmin := data.Columns["xmin"].Data
	xmax := data.Columns["xmax"].Data

	xx := NewField(5*n, Float, pool)
	yy := NewField(5*n, Float, pool)
	gg := NewField(5*n, Int, pool)

	nan := math.NaN()
	for i := 0; i < n; i++ {
		k := 5 * i
		xx.Data[k+0], yy.Data[k+0] = xmin[i], ymax[i]
		xx.Data[k+1], yy.Data[k+1] = xmax[i], ymax[i]
		xx.Data[k+2], yy.Data[k+2] = nan, nan
		xx.Data[k+3], yy.Data[k+3] = x[i], ymax[i]
		xx.Data[k+4], yy.Data[k+4] = x[i], y[i]

		group := float64(i + 1)
		for j := 0; j < 5; j++ {
			gg.Data[k+j] = group
		}
	}

	verts.Columns["x"] = xx
	verts.Columns["y"] = yy
	verts.Columns["group"] = gg

	for _, aes := range []string{"color", "alpha", "size", "linetype"} {
		if !data.Has(aes) {
			continue
		}
		src := data.Columns[aes]
		rep := NewField(5*n, src.Type, pool)
		for i := 0; i < n; i++ {
			for j := 0; j < 5; j++ {
				rep.Data[5*i+j] = src.Data[i]
			}
		}
		verts.Columns[aes] = rep
	}

	return verts
}

func (e GeomUpErrorbar) Bounds(aes string, df *DataFrame) (float64, float64) {
	switch aes {
	case "x":
		return boundsOver(df, "xmin", "xmax")
	case "y":
		return boundsOver(df, "y", "ymax")
	}
	return defaultBounds(aes, df)
}

func (e GeomUpErrorbar) DrawKey(vp Viewport, style AesMapping) { drawPathKey(vp, style) }

// -------------------------------------------------------------------------
// Layer factory

// LayerOpts are the options understood by the layer factories. The zero
// value is usable: identity statistic, identity position, plot mapping
// inherited, missing values dropped with a warning and legend
// visibility determined from the mapped aesthetics.
type LayerOpts struct {
	Name        string
	Data        *DataFrame // nil: use the data of the plot
	DataMapping AesMapping
	Stat        Stat // nil: identity
	StatMapping AesMapping
	Position    PositionAdjust
	DropNA      bool  // drop rows with missing needed slots silently
	ShowLegend  *bool // nil: determined from the mapped aesthetics
	OmitPlotAes bool  // do not inherit the aesthetic mapping of the plot
	Style       AesMapping

	// Width is the cap width of the error bars. A value of 0 means
	// unset: the width then comes from a width column in the data or
	// from the resolution of x, so an explicit zero width cannot be
	// requested through this option.
	Width float64
}

// UpErrorbarLayer returns a layer rendering upward error bars. All
// options are forwarded unchanged; nothing is drawn before the plot is
// rendered.
func UpErrorbarLayer(o LayerOpts) *Layer {
	name := o.Name
	if name == "" {
		name = "Up-Errorbar"
	}
	return &Layer{
		Name:        name,
		Data:        o.Data,
		DataMapping: o.DataMapping,
		Stat:        o.Stat,
		StatMapping: o.StatMapping,
		Position:    o.Position,
		DropNA:      o.DropNA,
		ShowLegend:  o.ShowLegend,
		OmitPlotAes: o.OmitPlotAes,
		Geom: GeomUpErrorbar{
			Width: o.Width,
			Style: o.Style,
		},
	}
}
