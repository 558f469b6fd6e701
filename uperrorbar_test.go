package plot

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// newErrbarDF builds a data frame of float columns for geom level tests.
func newErrbarDF(cols map[string][]float64) *DataFrame {
	pool := NewStringPool()
	df := NewDataFrame("errbar-test", pool)
	for name, vals := range cols {
		f := NewField(len(vals), Float, pool)
		copy(f.Data, vals)
		df.Columns[name] = f
		df.N = len(vals)
	}
	return df
}

// identityPanel returns a panel whose x and y scales map positions
// unchanged, so grob coordinates equal data coordinates.
func identityPanel() *Panel {
	id := func(x float64) float64 { return x }
	return &Panel{
		Scales: map[string]*Scale{
			"x": {Aesthetic: "x", Pos: id},
			"y": {Aesthetic: "y", Pos: id},
		},
	}
}

func TestUpErrorbarConstruct(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":     {1},
		"y":     {2},
		"ymax":  {5},
		"width": {0.4},
	})

	fund := GeomUpErrorbar{}.Construct(df, &Panel{Scales: map[string]*Scale{}})
	if len(fund) != 1 {
		t.Fatalf("Got %d fundamentals, want 1", len(fund))
	}
	prep := fund[0].Data

	if prep.N != 1 {
		t.Errorf("Got %d rows, want 1", prep.N)
	}
	if prep.Has("width") {
		t.Errorf("Width column not consumed")
	}
	if got := prep.Columns["xmin"].Data[0]; got != 0.8 {
		t.Errorf("xmin = %g, want 0.8", got)
	}
	if got := prep.Columns["xmax"].Data[0]; got != 1.2 {
		t.Errorf("xmax = %g, want 1.2", got)
	}
}

func TestUpErrorbarWidthResolution(t *testing.T) {
	// No width column, no layer width: 0.9 times the x resolution.
	df := newErrbarDF(map[string][]float64{
		"x":    {1, 3},
		"y":    {2, 3},
		"ymax": {5, 6},
	})

	prep := GeomUpErrorbar{}.Construct(df, &Panel{Scales: map[string]*Scale{}})[0].Data
	for i := 0; i < prep.N; i++ {
		w := prep.Columns["xmax"].Data[i] - prep.Columns["xmin"].Data[i]
		if math.Abs(w-1.8) > 1e-12 {
			t.Errorf("Row %d: width = %g, want 1.8", i, w)
		}
	}
}

func TestUpErrorbarWidthParam(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":    {1, 3},
		"y":    {2, 3},
		"ymax": {5, 6},
	})

	prep := GeomUpErrorbar{Width: 0.5}.Construct(df, &Panel{Scales: map[string]*Scale{}})[0].Data
	for i := 0; i < prep.N; i++ {
		w := prep.Columns["xmax"].Data[i] - prep.Columns["xmin"].Data[i]
		if w != 0.5 {
			t.Errorf("Row %d: width = %g, want 0.5", i, w)
		}
	}
}

func TestUpErrorbarWidthFallback(t *testing.T) {
	// All x identical: resolution is undefined, fixed default applies.
	df := newErrbarDF(map[string][]float64{
		"x":    {2, 2, 2},
		"y":    {1, 2, 3},
		"ymax": {4, 5, 6},
	})

	prep := GeomUpErrorbar{}.Construct(df, &Panel{Scales: map[string]*Scale{}})[0].Data
	for i := 0; i < prep.N; i++ {
		w := prep.Columns["xmax"].Data[i] - prep.Columns["xmin"].Data[i]
		if w != DefaultErrorbarWidth {
			t.Errorf("Row %d: width = %g, want %g", i, w, DefaultErrorbarWidth)
		}
	}
}

func TestUpErrorbarWidthPriority(t *testing.T) {
	// A width column in the data wins over the layer parameter.
	df := newErrbarDF(map[string][]float64{
		"x":     {1, 3},
		"y":     {2, 3},
		"ymax":  {5, 6},
		"width": {0.2, 0.6},
	})

	prep := GeomUpErrorbar{Width: 1}.Construct(df, &Panel{Scales: map[string]*Scale{}})[0].Data
	want := []float64{0.2, 0.6}
	for i := 0; i < prep.N; i++ {
		w := prep.Columns["xmax"].Data[i] - prep.Columns["xmin"].Data[i]
		if math.Abs(w-want[i]) > 1e-12 {
			t.Errorf("Row %d: width = %g, want %g", i, w, want[i])
		}
	}
}

func TestUpErrorbarVertices(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":    {1},
		"y":    {2},
		"ymax": {5},
		"xmin": {0.8},
		"xmax": {1.2},
	})

	verts := GeomUpErrorbar{}.vertices(df)
	if verts.N != 5 {
		t.Fatalf("Got %d vertices, want 5", verts.N)
	}

	nan := math.NaN()
	wantX := []float64{0.8, 1.2, nan, 1, 1}
	wantY := []float64{5, 5, nan, 5, 2}
	eq := cmpopts.EquateNaNs()
	if d := cmp.Diff(wantX, verts.Columns["x"].Data, eq); d != "" {
		t.Errorf("x vertices differ (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantY, verts.Columns["y"].Data, eq); d != "" {
		t.Errorf("y vertices differ (-want +got):\n%s", d)
	}

	group := verts.Columns["group"]
	if group.Type != Int {
		t.Errorf("Group type = %s, want Int", group.Type)
	}
	for i, g := range group.Data {
		if g != 1 {
			t.Errorf("Vertex %d: group = %g, want 1", i, g)
		}
	}
}

func TestUpErrorbarVertexGroups(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":     {1, 2, 3},
		"y":     {1, 1, 1},
		"ymax":  {2, 3, 4},
		"xmin":  {0.9, 1.9, 2.9},
		"xmax":  {1.1, 2.1, 3.1},
		"color": {10, 20, 30},
	})

	verts := GeomUpErrorbar{}.vertices(df)
	if verts.N != 15 {
		t.Fatalf("Got %d vertices, want 15", verts.N)
	}

	for i := 0; i < 15; i++ {
		row := i / 5
		if g := verts.Columns["group"].Data[i]; g != float64(row+1) {
			t.Errorf("Vertex %d: group = %g, want %d", i, g, row+1)
		}
		want := []float64{10, 20, 30}[row]
		if c := verts.Columns["color"].Data[i]; c != want {
			t.Errorf("Vertex %d: color = %g, want %g", i, c, want)
		}
		if i%5 == 2 && !math.IsNaN(verts.Columns["x"].Data[i]) {
			t.Errorf("Vertex %d: expected pen up", i)
		}
	}
}

func TestUpErrorbarRender(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":    {1},
		"y":    {2},
		"ymax": {5},
		"xmin": {0.8},
		"xmax": {1.2},
	})

	style := DefaultTheme.ErrorbarStyle
	grobs := GeomUpErrorbar{}.Render(identityPanel(), df, style)

	// The pen up vertex splits each bar into cap and stem.
	if len(grobs) != 2 {
		t.Fatalf("Got %d grobs, want 2", len(grobs))
	}

	bar, ok := grobs[0].(GrobPath)
	if !ok {
		t.Fatalf("Got %T, want GrobPath", grobs[0])
	}
	wantCap := []struct{ x, y float64 }{{0.8, 5}, {1.2, 5}}
	if d := cmp.Diff(wantCap, bar.points, cmp.AllowUnexported(struct{ x, y float64 }{})); d != "" {
		t.Errorf("Cap differs (-want +got):\n%s", d)
	}
	if bar.color != (color.NRGBA{0xff, 0x00, 0x00, 0xff}) {
		t.Errorf("Cap color = %v, want red", bar.color)
	}
	if bar.linetype != SolidLine {
		t.Errorf("Cap linetype = %d, want solid", bar.linetype)
	}

	stem, ok := grobs[1].(GrobPath)
	if !ok {
		t.Fatalf("Got %T, want GrobPath", grobs[1])
	}
	wantStem := []struct{ x, y float64 }{{1, 5}, {1, 2}}
	if d := cmp.Diff(wantStem, stem.points, cmp.AllowUnexported(struct{ x, y float64 }{})); d != "" {
		t.Errorf("Stem differs (-want +got):\n%s", d)
	}
}

func TestUpErrorbarBounds(t *testing.T) {
	df := newErrbarDF(map[string][]float64{
		"x":    {1, 3},
		"y":    {2, 3},
		"ymax": {5, 6},
		"xmin": {0.8, 2.8},
		"xmax": {1.2, 3.2},
	})

	g := GeomUpErrorbar{}
	if lo, hi := g.Bounds("x", df); lo != 0.8 || hi != 3.2 {
		t.Errorf("x bounds = [%g,%g], want [0.8,3.2]", lo, hi)
	}
	if lo, hi := g.Bounds("y", df); lo != 2 || hi != 6 {
		t.Errorf("y bounds = [%g,%g], want [2,6]", lo, hi)
	}
}

type trial struct {
	X, Y, Ymax float64
	Run        string
}

func TestUpErrorbarLayerFactory(t *testing.T) {
	show := false
	layer := UpErrorbarLayer(LayerOpts{
		DataMapping: AesMapping{"ymax": "Upper"},
		Position:    PosIdentity,
		DropNA:      true,
		ShowLegend:  &show,
		OmitPlotAes: true,
		Style:       AesMapping{"color": "blue"},
		Width:       0.25,
	})

	if layer.Name != "Up-Errorbar" {
		t.Errorf("Name = %q, want Up-Errorbar", layer.Name)
	}
	geom, ok := layer.Geom.(GeomUpErrorbar)
	if !ok {
		t.Fatalf("Geom is %T, want GeomUpErrorbar", layer.Geom)
	}
	if geom.Width != 0.25 || geom.Style["color"] != "blue" {
		t.Errorf("Options not forwarded: %+v", geom)
	}
	if !layer.DropNA || !layer.OmitPlotAes || layer.ShowLegend != &show {
		t.Errorf("Options not forwarded: %+v", layer)
	}
	if layer.DataMapping["ymax"] != "Upper" {
		t.Errorf("DataMapping not forwarded: %v", layer.DataMapping)
	}
}

func TestUpErrorbarPipeline(t *testing.T) {
	data := []trial{
		{X: 1, Y: 2, Ymax: 5, Run: "a"},
		{X: 3, Y: 3, Ymax: 6, Run: "b"},
	}
	df, err := NewDataFrameFrom(data)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	p := &Plot{
		Data: df,
		Aes:  AesMapping{"x": "X", "y": "Y", "ymax": "Ymax"},
		Layers: []*Layer{
			UpErrorbarLayer(LayerOpts{Width: 0.4}),
		},
	}
	p.Simple()

	layer := p.Layers[0]
	if len(layer.Fundamentals) != 1 {
		t.Fatalf("Got %d fundamentals, want 1", len(layer.Fundamentals))
	}
	prep := layer.Fundamentals[0].Data
	if prep.N != 2 {
		t.Errorf("Got %d prepared rows, want 2", prep.N)
	}
	if !prep.Has("xmin") || !prep.Has("xmax") {
		t.Fatalf("Prepared data lacks cap interval: %v", prep.FieldNames())
	}
	if got := prep.Columns["xmin"].Data[0]; got != 0.8 {
		t.Errorf("xmin = %g, want 0.8", got)
	}

	// Scales cover the bars, not only the raw x and y values.
	if sx := p.Scales["x"]; sx.DomainMin > 0.8 || sx.DomainMax < 3.2 {
		t.Errorf("x domain = [%g,%g], want to cover [0.8,3.2]", sx.DomainMin, sx.DomainMax)
	}
	if sy := p.Scales["y"]; sy.DomainMax < 6 {
		t.Errorf("y domain max = %g, want >= 6", sy.DomainMax)
	}

	// Two disconnected strokes per observation.
	if len(layer.Grobs) != 4 {
		t.Errorf("Got %d grobs, want 4", len(layer.Grobs))
	}
}

func TestUpErrorbarPipelineMapped(t *testing.T) {
	// A mapped color forces per segment rendering.
	data := []trial{
		{X: 1, Y: 2, Ymax: 5, Run: "a"},
		{X: 3, Y: 3, Ymax: 6, Run: "b"},
	}
	df, _ := NewDataFrameFrom(data)

	p := &Plot{
		Data: df,
		Aes:  AesMapping{"x": "X", "y": "Y", "ymax": "Ymax", "color": "Run"},
		Layers: []*Layer{
			UpErrorbarLayer(LayerOpts{Width: 0.4}),
		},
	}
	p.Simple()

	layer := p.Layers[0]
	// Cap and stem of each observation, one line each.
	if len(layer.Grobs) != 4 {
		t.Fatalf("Got %d grobs, want 4", len(layer.Grobs))
	}
	for i, g := range layer.Grobs {
		if _, ok := g.(GrobLine); !ok {
			t.Errorf("Grob %d is %T, want GrobLine", i, g)
		}
	}
}
