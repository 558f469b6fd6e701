package plot

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Plot is a layered plot: data, an aesthetics mapping, faceting and the
// layers to draw.
type Plot struct {
	// Data is the data to draw.
	Data *DataFrame

	// Faceting describes the used faceting.
	Faceting Faceting

	// Aes describes how fields in data are mapped to aesthetics.
	Aes AesMapping

	// Layers contains all the layers displayed in the plot.
	Layers []*Layer

	// Panels are the different panels for faceting.
	Panels [][]Panel

	Scales map[string]*Scale

	Theme Theme
}

// Layer represents one layer of data.
type Layer struct {
	Plot *Plot
	Name string

	// A nil Data will use the Data from the plot this Layer belongs to.
	Data        *DataFrame
	DataMapping AesMapping

	// Stat is the statistical transformation used in this layer,
	// nil is the identity transformation.
	Stat        Stat
	StatMapping AesMapping

	// Geom is the geom to use for this layer.
	Geom        Geom
	GeomMapping AesMapping

	Position PositionAdjust

	// DropNA controls the handling of rows with missing values in
	// the needed slots of the geom: drop silently if set, drop with
	// a warning otherwise.
	DropNA bool

	// ShowLegend overrides the automatic legend visibility which
	// shows a key iff a legend-relevant aesthetic is mapped.
	ShowLegend *bool

	// OmitPlotAes prevents inheriting the aesthetics mapping of the
	// plot.
	OmitPlotAes bool

	// Fundamentals are the constructed geoms with their data, set up
	// by ConstructGeoms.
	Fundamentals []Fundamental

	Grobs []Grob
}

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "plot"})

// SetLogger replaces the package level logger used for warnings.
func SetLogger(l *log.Logger) { logger = l }

func (p *Plot) Warnf(f string, args ...interface{}) {
	logger.Warnf(strings.TrimSuffix(f, "\n"), args...)
}

func contains(s []string, t string) bool {
	for _, ss := range s {
		if t == ss {
			return true
		}
	}
	return false
}

func same(s []string, t []string) bool {
	if len(s) != len(t) {
		return false
	}
	for _, x := range s {
		if !contains(t, x) {
			return false
		}
	}
	return true
}

// PrepareData is the first step in generating a plot.
// After preparing the data frame the following holds:
//   - Each layer has an own data frame (maybe a copy of the plot data
//     frame).
//   - This data frame has no unused (aka not mapped to aesthetics)
//     columns, except the faceting columns.
//   - The column names are the aesthetics (e.g. x, y, size, color...).
//   - The columns have been transformed according to the
//     ScaleTransform associated with x, y, size, ....
func (p *Plot) PrepareData() {
	for _, layer := range p.Layers {
		layer.Plot = p
		if layer.Data == nil {
			layer.Data = p.Data.Copy()
		} else {
			layer.Data = layer.Data.Copy()
		}
		aes := layer.DataMapping
		if !layer.OmitPlotAes {
			aes = MergeAes(layer.DataMapping, p.Aes)
		} else {
			aes = MergeAes(layer.DataMapping)
		}

		// Drop all unused (unmapped) fields in the data frame.
		_, fields := aes.Used(false)
		for _, f := range layer.Data.FieldNames() {
			if contains(fields, f) || f == p.Faceting.Rows || f == p.Faceting.Columns {
				continue
			}
			layer.Data.Delete(f)
		}

		// Rename mapped fields to their aesthetic name.
		for a, f := range aes {
			layer.Data.Rename(f, a)
		}

		p.PrepareScales(layer.Data, aes)
	}
}

// scaleable are the aesthetics driven by a scale.
var scaleable = map[string]bool{
	"x":        true,
	"y":        true,
	"color":    true,
	"fill":     true,
	"alpha":    true,
	"size":     true,
	"linetype": true,
	"shape":    true,
}

// PrepareScales makes sure the plot contains all scales needed for the
// aesthetics in aes, the data is scale transformed if requested by the
// scale and the scales are pre-trained.
func (p *Plot) PrepareScales(data *DataFrame, aes AesMapping) {
	if p.Scales == nil {
		p.Scales = make(map[string]*Scale)
	}
	for a := range aes {
		if !scaleable[a] || !data.Has(a) {
			continue
		}

		scale, ok := p.Scales[a]
		if !ok {
			scale = NewScale(a, data.Columns[a])
			p.Scales[a] = scale
		}

		// Transform the data if the scale requests it.
		if t := scale.Transform; t != nil && t != &IdentityScale {
			data.Columns[a].Apply(t.Trans)
		}

		// Pre-train the scale.
		scale.Train(data.Columns[a])
	}
}

// ComputeStatistics computes the statistical transform of each layer of
// the panel. Might be the identity.
func (p *Plot) ComputeStatistics(panel *Panel) {
	for _, layer := range panel.Layers {
		layer.ComputeStatistics(panel)
	}
}

func (layer *Layer) ComputeStatistics(panel *Panel) {
	if layer.Stat == nil {
		return // The identity statistical transformation.
	}

	// Make sure all needed aesthetics (columns) are present in
	// our data frame.
	info := layer.Stat.Info()
	for _, aes := range info.NeededAes {
		if !layer.Data.Has(aes) {
			layer.Plot.Warnf("Stat %s in layer %s needs column %s",
				layer.Stat.Name(), layer.Name, aes)
			layer.Geom = nil // Don't draw anything.
			return
		}
	}

	// Handling of excess fields.
	usedByStat := NewStringSetFrom(info.NeededAes)
	usedByStat.Join(NewStringSetFrom(info.OptionalAes))
	fields := NewStringSetFrom(layer.Data.FieldNames())
	fields.Remove(usedByStat)
	if len(fields) == 0 || info.ExtraFieldHandling == IgnoreExtraFields {
		layer.Data = layer.Stat.Apply(layer.Data, panel)
	} else {
		if info.ExtraFieldHandling == FailOnExtraFields {
			layer.Plot.Warnf("Stat %s in layer %s cannot cope with excess fields %v",
				layer.Stat.Name(), layer.Name, fields.Elements())
			layer.Geom = nil // Don't draw anything.
			return
		}

		// Make sure all excess fields are discrete and apply the
		// statistic per group.
		for _, f := range fields.Elements() {
			if !layer.Data.Columns[f].Discrete() {
				layer.Plot.Warnf("Stat %s in layer %s cannot cope with continuous excess field %s",
					layer.Stat.Name(), layer.Name, f)
				layer.Geom = nil // Don't draw anything.
				return
			}
		}

		var combined *DataFrame
		err := partitionOn(layer.Data, fields.Elements(), func(df *DataFrame, levels map[string]float64) {
			res := layer.Stat.Apply(df, panel)
			if res == nil {
				return
			}
			for f, level := range levels {
				res.Columns[f] = layer.Data.Columns[f].Const(level, res.N)
			}
			if combined == nil {
				combined = res
			} else {
				combined.Append(res)
			}
		})
		if err != nil {
			layer.Plot.Warnf("Stat %s in layer %s: %s", layer.Stat.Name(), layer.Name, err)
			layer.Geom = nil
			return
		}
		layer.Data = combined
	}

	if layer.Data == nil {
		layer.Geom = nil // Nothing to draw.
		return
	}

	// The statistic produced a new data frame with possibly new
	// columns. These may be mapped to plot aesthetics by StatMapping.
	if len(layer.StatMapping) == 0 {
		return
	}
	for a, f := range layer.StatMapping {
		layer.Data.Rename(f, a)
	}
	layer.Plot.PrepareScales(layer.Data, layer.StatMapping)
}

// partitionOn calls fn for each combination of levels of the given
// discrete fields, with df filtered to that combination. Combinations
// without data are skipped.
func partitionOn(df *DataFrame, fields []string, fn func(part *DataFrame, levels map[string]float64)) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to partition on")
	}
	field := fields[0]
	rest := fields[1:]
	for _, level := range Levels(df, field).Elements() {
		part := Filter(df, field, level)
		part.Delete(field)
		if part.N == 0 {
			continue
		}
		if len(rest) == 0 {
			fn(part, map[string]float64{field: level})
			continue
		}
		err := partitionOn(part, rest, func(sub *DataFrame, levels map[string]float64) {
			levels[field] = level
			fn(sub, levels)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ConstructGeoms sets up the geoms of all layers of panel so that they
// can be rendered. This includes an optional renaming of stat-generated
// fields to geom-understandable fields, removal of rows with missing
// values in needed slots and reparametrization to fundamental geoms.
func (p *Plot) ConstructGeoms(panel *Panel) {
	for _, layer := range panel.Layers {
		layer.ConstructGeoms(panel)
	}
}

func (layer *Layer) ConstructGeoms(panel *Panel) {
	if layer.Geom == nil {
		layer.Plot.Warnf("No geom specified in layer %s.", layer.Name)
		return
	}

	// Rename fields produced by the statistical transform to names
	// the geom understands.
	for aes, field := range layer.GeomMapping {
		layer.Data.Rename(field, aes)
	}

	// Make sure all needed slots are present in the data frame.
	slots := NewStringSetFrom(layer.Geom.NeededSlots())
	dfSlots := NewStringSetFrom(layer.Data.FieldNames())
	slots.Remove(dfSlots)
	if len(slots) > 0 {
		layer.Plot.Warnf("Missing slots in geom %s in layer %s: %v",
			layer.Geom.Name(), layer.Name, slots.Elements())
		layer.Geom = nil
		return
	}

	layer.removeMissing()

	layer.Fundamentals = layer.Geom.Construct(layer.Data, panel)
}

// removeMissing drops rows with a NaN in any needed slot of the geom.
// A warning reports the number of dropped rows unless DropNA is set.
func (layer *Layer) removeMissing() {
	needed := layer.Geom.NeededSlots()
	df := layer.Data
	keep := make([]int, 0, df.N)
	for i := 0; i < df.N; i++ {
		ok := true
		for _, slot := range needed {
			if math.IsNaN(df.Columns[slot].Data[i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}
	if len(keep) == df.N {
		return
	}
	if !layer.DropNA {
		layer.Plot.Warnf("Removed %d rows containing missing values in layer %s.",
			df.N-len(keep), layer.Name)
	}
	for name, c := range df.Columns {
		nc := NewField(len(keep), c.Type, c.Pool)
		for j, i := range keep {
			nc.Data[j] = c.Data[i]
		}
		df.Columns[name] = nc
	}
	df.N = len(keep)
}

// RetrainScales trains the scales on the constructed geoms of the given
// panels and prepares the position and style mapping functions.
func (p *Plot) RetrainScales(panels ...*Panel) {
	for aes, scale := range p.Scales {
		for _, panel := range panels {
			for _, layer := range panel.Layers {
				for _, f := range layer.Fundamentals {
					scale.Retrain(aes, f.Geom, f.Data)
				}
			}
		}
		scale.Prepare()
	}
}

// RenderGeoms renders the constructed geoms of all layers of panel to
// grobs.
func (p *Plot) RenderGeoms(panel *Panel) {
	for _, layer := range panel.Layers {
		layer.Grobs = layer.Grobs[:0]
		for _, f := range layer.Fundamentals {
			aes := f.Geom.Aes(p)
			layer.Grobs = append(layer.Grobs, f.Geom.Render(panel, f.Data, aes)...)
		}
	}
}

// Simple runs the whole pipeline for an unfaceted plot: prepare the
// data, compute statistics, construct and render the geoms. It returns
// the single panel.
func (p *Plot) Simple() *Panel {
	p.PrepareData()
	panel := &Panel{Plot: p, Data: p.Data, Scales: p.Scales, Layers: p.Layers}
	p.ComputeStatistics(panel)
	p.ConstructGeoms(panel)
	p.RetrainScales(panel)
	p.RenderGeoms(panel)
	p.Panels = [][]Panel{{*panel}}
	return panel
}

// Facetted runs the whole pipeline for a facetted plot. All panels
// share the scales of the plot.
func (p *Plot) Facetted() {
	p.PrepareData()
	p.CreatePanels()

	panels := []*Panel{}
	for r := range p.Panels {
		for c := range p.Panels[r] {
			panels = append(panels, &p.Panels[r][c])
		}
	}
	for _, panel := range panels {
		p.ComputeStatistics(panel)
		p.ConstructGeoms(panel)
	}
	p.RetrainScales(panels...)
	for _, panel := range panels {
		p.RenderGeoms(panel)
	}
}

// CreatePanels populates p.Panels, governed by p.Faceting. The prepared
// layer data is filtered by the faceting columns; layers are cloned per
// panel.
func (p *Plot) CreatePanels() {
	rows, cols := 1, 1
	var runq, cunq []float64

	if f := p.Faceting.Columns; f != "" {
		if !p.Data.Has(f) || !p.Data.Columns[f].Discrete() {
			panic(fmt.Sprintf("Cannot facet over %s", f))
		}
		cunq = Levels(p.Data, f).Elements()
		cols = len(cunq)
	}

	if f := p.Faceting.Rows; f != "" {
		if !p.Data.Has(f) || !p.Data.Columns[f].Discrete() {
			panic(fmt.Sprintf("Cannot facet over %s", f))
		}
		runq = Levels(p.Data, f).Elements()
		rows = len(runq)
	}

	p.Panels = make([][]Panel, rows)
	for r := 0; r < rows; r++ {
		p.Panels[r] = make([]Panel, cols)
		for c := 0; c < cols; c++ {
			panel := Panel{Plot: p, Scales: p.Scales}
			for _, layer := range p.Layers {
				cl := layer.clone()
				if p.Faceting.Rows != "" {
					cl.Data = Filter(cl.Data, p.Faceting.Rows, runq[r])
					panel.RowName = p.Data.Columns[p.Faceting.Rows].String(runq[r])
				}
				if p.Faceting.Columns != "" {
					cl.Data = Filter(cl.Data, p.Faceting.Columns, cunq[c])
					panel.ColName = p.Data.Columns[p.Faceting.Columns].String(cunq[c])
				}
				panel.Layers = append(panel.Layers, cl)
			}
			p.Panels[r][c] = panel
		}
	}
}

// clone returns a copy of layer with its own data frame.
func (layer *Layer) clone() *Layer {
	cl := *layer
	if layer.Data != nil {
		cl.Data = layer.Data.Copy()
	}
	cl.Fundamentals = nil
	cl.Grobs = nil
	return &cl
}

// Panel is one facet of a plot with its own data but shared scales.
type Panel struct {
	Data *DataFrame

	RowName string
	ColName string

	// Plot is the plot this panel belongs to.
	Plot *Plot

	Scales map[string]*Scale

	Layers []*Layer
}

// Faceting describes the faceting of a plot. Columns and Rows name
// discrete fields of the data; the empty string means no faceting in
// this dimension.
type Faceting struct {
	Columns, Rows string
}

// -------------------------------------------------------------------------
// Drawing

// DrawTo draws all panels of the plot into vp: background, grid lines
// at the scale breaks, the layer grobs and axis labels on the outer
// panels.
func (p *Plot) DrawTo(vp Viewport) {
	rows := len(p.Panels)
	if rows == 0 {
		return
	}
	cols := len(p.Panels[0])
	w, h := 1/float64(cols), 1/float64(rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sub := SubViewport(vp, float64(c)*w+0.01*w, float64(rows-1-r)*h+0.01*h, 0.98*w, 0.98*h)
			p.Panels[r][c].drawTo(sub, r == rows-1, c == 0)
		}
	}
}

func (panel *Panel) drawTo(vp Viewport, xAxis, yAxis bool) {
	GrobRect{xmin: 0, ymin: 0, xmax: 1, ymax: 1, fill: BuiltinColors["gray80"]}.Draw(vp)

	white := BuiltinColors["white"]
	black := BuiltinColors["black"]
	sx, sy := panel.Scales["x"], panel.Scales["y"]
	if sx != nil && sx.Pos != nil {
		for i, b := range sx.Breaks {
			x := sx.Pos(b)
			if x < 0 || x > 1 {
				continue
			}
			GrobLine{x0: x, y0: 0, x1: x, y1: 1, size: 1, linetype: SolidLine, color: white}.Draw(vp)
			if xAxis {
				GrobText{x: x, y: -0.035, text: sx.Levels[i], size: 8, color: black}.Draw(vp)
			}
		}
	}
	if sy != nil && sy.Pos != nil {
		for i, b := range sy.Breaks {
			y := sy.Pos(b)
			if y < 0 || y > 1 {
				continue
			}
			GrobLine{x0: 0, y0: y, x1: 1, y1: y, size: 1, linetype: SolidLine, color: white}.Draw(vp)
			if yAxis {
				GrobText{x: -0.045, y: y, text: sy.Levels[i], size: 8, color: black}.Draw(vp)
			}
		}
	}

	for _, layer := range panel.Layers {
		for _, grob := range layer.Grobs {
			grob.Draw(vp)
		}
	}

	if strip := panel.stripLabel(); strip != "" {
		GrobText{x: 0.5, y: 1.03, text: strip, size: 9, color: black}.Draw(vp)
	}
}

func (panel *Panel) stripLabel() string {
	switch {
	case panel.RowName != "" && panel.ColName != "":
		return panel.ColName + " / " + panel.RowName
	case panel.RowName != "":
		return panel.RowName
	default:
		return panel.ColName
	}
}

// DrawLegend draws the legend keys of all layers with a visible legend
// into vp, stacked from the top.
func (p *Plot) DrawLegend(vp Viewport) {
	shown := []*Layer{}
	for _, layer := range p.Layers {
		if layer.legendShown() {
			shown = append(shown, layer)
		}
	}
	if len(shown) == 0 {
		return
	}
	keyH := 1 / float64(len(shown))
	if keyH > 0.12 {
		keyH = 0.12
	}
	black := BuiltinColors["black"]
	for i, layer := range shown {
		y0 := 1 - float64(i+1)*keyH
		key := SubViewport(vp, 0, y0, 0.3, keyH)
		layer.Geom.DrawKey(key, layer.Geom.Aes(p))
		GrobText{x: 0.65, y: y0 + keyH/2, text: layer.Name, size: 9, color: black}.Draw(vp)
	}
}

// legendShown implements the legend visibility tri-state: an explicit
// ShowLegend wins, otherwise a key is shown iff a legend-relevant
// aesthetic is mapped in this layer.
func (layer *Layer) legendShown() bool {
	if layer.ShowLegend != nil {
		return *layer.ShowLegend
	}
	if layer.Data == nil || layer.Geom == nil {
		return false
	}
	for _, aes := range []string{"color", "fill", "shape", "linetype", "size", "alpha"} {
		if layer.Data.Has(aes) {
			return true
		}
	}
	return false
}

// -------------------------------------------------------------------------
// Aesthetics mapping

// AesMapping controls the mapping of fields of a data frame to
// aesthetics. The zero value of AesMapping is the identity mapping.
type AesMapping map[string]string

// Used returns the aesthetics and the mapped field names in m, sorted.
func (m AesMapping) Used(includeAll bool) (aes, names []string) {
	for a, n := range m {
		aes = append(aes, a)
		if includeAll || strings.Index(n, ":") == -1 {
			names = append(names, n)
		}
	}
	sort.Strings(aes)
	sort.Strings(names)
	return aes, names
}

func (m AesMapping) Copy() AesMapping {
	c := make(AesMapping, len(m))
	for a, n := range m {
		c[a] = n
	}
	return c
}

// MergeStyles merges the given mappings. Earlier mappings take
// precedence over later ones.
func MergeStyles(styles ...AesMapping) AesMapping {
	merged := make(AesMapping)
	for _, style := range styles {
		for aes, value := range style {
			if _, ok := merged[aes]; !ok {
				merged[aes] = value
			}
		}
	}
	return merged
}

// MergeAes merges the given mappings like MergeStyles and drops entries
// mapped to the empty field name: an empty name in an early mapping
// clears a mapping made later, e.g. the plot-default mapping.
func MergeAes(ams ...AesMapping) AesMapping {
	merged := MergeStyles(ams...)
	for k, v := range merged {
		if v == "" {
			delete(merged, k)
		}
	}
	return merged
}

// Combine merges set values in all the ams into m and returns the
// merged mapping. Later values in ams overwrite earlier ones or values
// in m.
func (m AesMapping) Combine(ams ...AesMapping) AesMapping {
	merged := m.Copy()
	for _, am := range ams {
		for aes, fname := range am {
			merged[aes] = fname
		}
	}
	return merged
}

// -------------------------------------------------------------------------
// Scale Transformations

type ScaleTransform struct {
	Trans   func(float64) float64
	Inverse func(float64) float64
	Format  func(float64, string) string
}

var Log10Scale = ScaleTransform{
	Trans:   func(x float64) float64 { return math.Log10(x) },
	Inverse: func(y float64) float64 { return math.Pow(10, y) },
	Format:  func(y float64, s string) string { return fmt.Sprintf("10^{%s}", s) },
}

var IdentityScale = ScaleTransform{
	Trans:   func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
	Format:  func(y float64, s string) string { return s },
}

// -------------------------------------------------------------------------
// Position Adjustments

type PositionAdjust int

const (
	PosIdentity PositionAdjust = iota
	PosJitter
	PosStack
	PosFill
	PosDodge
)
