package plot

import (
	"fmt"
	"sort"
)

// Stat is the interface of statistical transforms.
//
// Statistical transforms take a data frame and produce an other data
// frame. This is typically done by "summarizing", "modeling" or
// "transforming" the data in a statistically significant way.
type Stat interface {
	// Name returns the name of this statistic.
	Name() string

	// Apply this statistic to data. The panel can be used to
	// access the current scales, e.g. if the x-range is needed.
	Apply(data *DataFrame, panel *Panel) *DataFrame

	// Info returns the StatInfo which describes how this
	// statistic can be used.
	Info() StatInfo
}

// StatInfo contains information about how a stat can be used.
type StatInfo struct {
	// NeededAes are the aesthetics which must be present in the
	// data frame. If not all needed aesthetics are mapped this
	// statistic cannot be applied.
	NeededAes []string

	// OptionalAes are the aesthetics which are used by this
	// statistic if present, but it is no error if they are
	// not mapped.
	OptionalAes []string

	ExtraFieldHandling ExtraFieldHandling
}

// ExtraFieldHandling determines how a statistic treats fields beyond
// its needed and optional aesthetics.
type ExtraFieldHandling int

const (
	IgnoreExtraFields ExtraFieldHandling = iota
	FailOnExtraFields
	GroupOnExtraFields
)

// -------------------------------------------------------------------------
// StatBin

type StatBin struct {
	BinWidth float64
	Drop     bool
	Origin   *float64
}

var _ Stat = StatBin{}

func (StatBin) Name() string { return "StatBin" }

func (StatBin) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{"x"},
		OptionalAes:        []string{"weight"},
		ExtraFieldHandling: GroupOnExtraFields,
	}
}

func (s StatBin) Apply(data *DataFrame, _ *Panel) *DataFrame {
	if data == nil || data.N == 0 {
		return nil
	}

	min, max, mini, maxi := MinMax(data, "x")
	if mini == -1 && maxi == -1 {
		return nil
	}
	if min == max {
		min--
		max++
	}

	binWidth := s.BinWidth
	var numBins int
	if binWidth == 0 {
		binWidth = (max - min) / 30
		numBins = 30
	} else {
		numBins = int((max-min)/binWidth + 0.5)
	}
	var origin float64
	if s.Origin != nil {
		origin = *s.Origin
	} else {
		origin = RoundDownTo(min, binWidth)
	}

	x2bin := func(x float64) int { return int((x - origin) / binWidth) }
	bin2x := func(b int) float64 { return float64(b)*binWidth + binWidth/2 + origin }

	counts := make([]int64, numBins+1)
	column := data.Columns["x"].Data
	maxcount := int64(0)
	for i := 0; i < data.N; i++ {
		bin := x2bin(column[i])
		if bin < 0 || bin >= len(counts) {
			continue
		}
		counts[bin]++
		if counts[bin] > maxcount {
			maxcount = counts[bin]
		}
	}

	pool := data.Pool
	result := NewDataFrame(fmt.Sprintf("%s binned by x", data.Name), pool)
	nr := 0
	for _, count := range counts {
		if count == 0 && s.Drop {
			continue
		}
		nr++
	}

	result.N = nr
	X := NewField(nr, data.Columns["x"].Type, pool)
	Count := NewField(nr, Float, pool)
	NCount := NewField(nr, Float, pool)
	Density := NewField(nr, Float, pool)
	NDensity := NewField(nr, Float, pool)
	i := 0
	maxDensity := float64(0)
	for bin, count := range counts {
		if count == 0 && s.Drop {
			continue
		}
		X.Data[i] = bin2x(bin)
		Count.Data[i] = float64(count)
		NCount.Data[i] = float64(count) / float64(maxcount)
		density := float64(count) / binWidth / float64(data.N)
		Density.Data[i] = density
		if density > maxDensity {
			maxDensity = density
		}
		i++
	}
	for i := range Density.Data {
		NDensity.Data[i] = Density.Data[i] / maxDensity
	}

	result.Columns["x"] = X
	result.Columns["count"] = Count
	result.Columns["ncount"] = NCount
	result.Columns["density"] = Density
	result.Columns["ndensity"] = NDensity

	return result
}

// -------------------------------------------------------------------------
// StatLinReq

type StatLinReq struct {
	A, B float64 // Intercept and slope of the fitted line.
}

var _ Stat = &StatLinReq{}

func (StatLinReq) Name() string { return "StatLinReq" }

func (StatLinReq) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{"x", "y"},
		OptionalAes:        []string{"weight"},
		ExtraFieldHandling: GroupOnExtraFields,
	}
}

// fit computes the least squares line through the x/y columns of data.
func (s *StatLinReq) fit(data *DataFrame) {
	xc, yc := data.Columns["x"].Data, data.Columns["y"].Data

	xm, ym := float64(0), float64(0)
	for i := 0; i < data.N; i++ {
		xm += xc[i]
		ym += yc[i]
	}
	xm /= float64(data.N)
	ym /= float64(data.N)

	sy, sx := float64(0), float64(0)
	for i := 0; i < data.N; i++ {
		dx := xc[i] - xm
		sx += dx * dx
		sy += dx * (yc[i] - ym)
	}

	s.B = sy / sx
	s.A = ym - s.B*xm
}

func (s *StatLinReq) Apply(data *DataFrame, _ *Panel) *DataFrame {
	if data == nil || data.N == 0 {
		return nil
	}
	s.fit(data)
	// TODO: proper confidence intervals for A and B, see
	// http://en.wikipedia.org/wiki/Simple_linear_regression
	aErr, bErr := s.A*0.2, s.B*0.1

	pool := data.Pool
	result := NewDataFrame(fmt.Sprintf("linear regression of %s", data.Name), pool)
	result.N = 1

	intercept, slope := NewField(1, Float, pool), NewField(1, Float, pool)
	intercept.Data[0], slope.Data[0] = s.A, s.B

	interceptErr, slopeErr := NewField(1, Float, pool), NewField(1, Float, pool)
	interceptErr.Data[0], slopeErr.Data[0] = aErr, bErr

	result.Columns["intercept"] = intercept
	result.Columns["slope"] = slope
	result.Columns["interceptErr"] = interceptErr
	result.Columns["slopeErr"] = slopeErr
	return result
}

// -------------------------------------------------------------------------
// Stat Smooth

// StatSmooth fits a linear model and samples it over the x range,
// including a crude error band in ymin/ymax.
type StatSmooth struct {
	N int // Number of sample points, 0 means 100.
}

var _ Stat = &StatSmooth{}

func (StatSmooth) Name() string { return "StatSmooth" }

func (StatSmooth) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{"x", "y"},
		OptionalAes:        []string{"weight"},
		ExtraFieldHandling: GroupOnExtraFields,
	}
}

func (s *StatSmooth) Apply(data *DataFrame, _ *Panel) *DataFrame {
	if data == nil || data.N == 0 {
		return nil
	}
	lin := &StatLinReq{}
	lin.fit(data)
	aErr, bErr := lin.A*0.2, lin.B*0.1

	n := s.N
	if n == 0 {
		n = 100
	}

	pool := data.Pool
	result := NewDataFrame(fmt.Sprintf("linear smooth of %s", data.Name), pool)
	result.N = n
	xf := NewField(n, Float, pool)
	yf := NewField(n, Float, pool)
	yminf := NewField(n, Float, pool)
	ymaxf := NewField(n, Float, pool)

	minx, maxx, _, _ := MinMax(data, "x")
	xrange := maxx - minx
	for i := 0; i < n; i++ {
		x := minx + float64(i)*xrange/float64(n-1)
		xf.Data[i] = x
		yf.Data[i] = lin.A + lin.B*x
		yminf.Data[i] = (lin.A - aErr) + (lin.B-bErr)*x
		ymaxf.Data[i] = (lin.A + aErr) + (lin.B+bErr)*x
	}

	result.Columns["x"] = xf
	result.Columns["y"] = yf
	result.Columns["ymin"] = yminf
	result.Columns["ymax"] = ymaxf

	return result
}

// -------------------------------------------------------------------------
// StatLabel

type StatLabel struct {
	Format string
}

var _ Stat = StatLabel{}

func (StatLabel) Name() string { return "StatLabel" }

func (StatLabel) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{"x", "y", "value"},
		OptionalAes:        []string{"color"},
		ExtraFieldHandling: IgnoreExtraFields,
	}
}

func (s StatLabel) Apply(data *DataFrame, _ *Panel) *DataFrame {
	if data == nil || data.N == 0 {
		return nil
	}
	pool := data.Pool
	result := NewDataFrame(fmt.Sprintf("labeling %s", data.Name), pool)
	result.N = data.N
	textf := NewField(result.N, String, pool)

	value := data.Columns["value"].Data
	for i := 0; i < result.N; i++ {
		t := fmt.Sprintf(s.Format, value[i])
		textf.Data[i] = float64(pool.Add(t))
	}

	result.Columns["x"] = data.Columns["x"].Copy()
	result.Columns["y"] = data.Columns["y"].Copy()
	result.Columns["text"] = textf

	return result
}

// -------------------------------------------------------------------------
// StatFunction

// StatFunction draws the function F interpolating it by N points.
type StatFunction struct {
	F func(x float64) float64
	N int
}

var _ Stat = StatFunction{}

func (StatFunction) Name() string { return "StatFunction" }

func (StatFunction) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{},
		OptionalAes:        []string{},
		ExtraFieldHandling: IgnoreExtraFields,
	}
}

func (s StatFunction) Apply(data *DataFrame, panel *Panel) *DataFrame {
	sx := panel.Scales["x"]
	n := s.N
	if n == 0 {
		n = 101
	}
	xmin, xmax := sx.DomainMin, sx.DomainMax
	delta := (xmax - xmin) / float64(n-1)

	result := NewDataFrame("function", data.Pool)
	result.N = n
	xf := NewField(n, Float, data.Pool)
	yf := NewField(n, Float, data.Pool)

	for i := 0; i < n; i++ {
		x := xmin + float64(i)*delta
		xf.Data[i] = x
		yf.Data[i] = s.F(x)
	}

	result.Columns["x"] = xf
	result.Columns["y"] = yf

	return result
}

// -------------------------------------------------------------------------
// StatBoxplot

type StatBoxplot struct{}

var _ Stat = StatBoxplot{}

func (StatBoxplot) Name() string { return "StatBoxplot" }

func (StatBoxplot) Info() StatInfo {
	return StatInfo{
		NeededAes:          []string{"x", "y"},
		OptionalAes:        []string{},
		ExtraFieldHandling: GroupOnExtraFields,
	}
}

type boxplot struct {
	min, low, q1, med, q3, high, max float64
}

// computeBoxplot determines the five boxplot values of d plus the
// whisker ends (the extreme values within 1.5 IQR of the box).
func computeBoxplot(d []float64) (b boxplot) {
	n := len(d)
	sort.Float64s(d)

	b.min, b.max = d[0], d[n-1]
	if n%2 == 1 {
		b.med = d[(n-1)/2]
	} else {
		b.med = (d[n/2] + d[n/2-1]) / 2
	}
	b.q1, b.q3 = d[n/4], d[3*n/4]

	iqr := b.q3 - b.q1
	lo, hi := b.q1-1.5*iqr, b.q3+1.5*iqr
	b.low, b.high = b.max, b.min
	for _, y := range d {
		if y >= lo && y < b.low {
			b.low = y
		}
		if y <= hi && y > b.high {
			b.high = y
		}
	}

	return b
}

func (s StatBoxplot) Apply(data *DataFrame, _ *Panel) *DataFrame {
	if data == nil || data.N == 0 {
		return nil
	}
	xd, yd := data.Columns["x"].Data, data.Columns["y"].Data

	ys := make(map[float64][]float64)
	for i := 0; i < data.N; i++ {
		ys[xd[i]] = append(ys[xd[i]], yd[i])
	}
	xs := make([]float64, 0, len(ys))
	for x := range ys {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	n := len(xs)

	pool := data.Pool
	xf := NewField(n, data.Columns["x"].Type, pool)
	medf := NewField(n, Float, pool)
	minf, maxf := NewField(n, Float, pool), NewField(n, Float, pool)
	lowf, highf := NewField(n, Float, pool), NewField(n, Float, pool)
	q1f, q3f := NewField(n, Float, pool), NewField(n, Float, pool)

	for i, x := range xs {
		b := computeBoxplot(ys[x])
		xf.Data[i] = x
		minf.Data[i] = b.min
		lowf.Data[i] = b.low
		q1f.Data[i] = b.q1
		medf.Data[i] = b.med
		q3f.Data[i] = b.q3
		highf.Data[i] = b.high
		maxf.Data[i] = b.max
	}

	result := NewDataFrame(fmt.Sprintf("boxplot of %s", data.Name), pool)
	result.N = n
	result.Columns["x"] = xf
	result.Columns["min"] = minf
	result.Columns["low"] = lowf
	result.Columns["q1"] = q1f
	result.Columns["mid"] = medf
	result.Columns["q3"] = q3f
	result.Columns["high"] = highf
	result.Columns["max"] = maxf

	return result
}
