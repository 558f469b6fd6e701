package plot

import (
	"fmt"
	"image/color"
	"math"
)

// Scale provides position scales like x- and y-axis as well as color
// or other scales.
type Scale struct {
	Aesthetic string // "x", "y", "color", "fill", "size", "linetype", "shape", "alpha"
	Discrete  bool
	FieldType FieldType
	Pool      *StringPool

	DomainMin    float64
	DomainMax    float64
	DomainLevels FloatSet

	Transform *ScaleTransform

	// Set up by Prepare.
	Breaks []float64 // empty: auto
	Levels []string  // labels for the breaks

	Color func(x float64) color.Color // color, fill. Any color
	Pos   func(x float64) float64     // x, y, size, alpha. In [0,1]
	Style func(x float64) int         // point and line type
}

// NewScale sets up a new scale for the given aesthetic, suitable for
// the data in field.
func NewScale(aesthetic string, field Field) *Scale {
	return &Scale{
		Aesthetic:    aesthetic,
		Discrete:     field.Discrete(),
		FieldType:    field.Type,
		Pool:         field.Pool,
		DomainMin:    math.Inf(+1),
		DomainMax:    math.Inf(-1),
		DomainLevels: NewFloatSet(),
		Transform:    &IdentityScale,
	}
}

func (s *Scale) String() string {
	if s.Discrete {
		return fmt.Sprintf("Scale{%s discrete levels=%v}", s.Aesthetic, s.DomainLevels.Elements())
	}
	return fmt.Sprintf("Scale{%s [%g,%g]}", s.Aesthetic, s.DomainMin, s.DomainMax)
}

// Train updates the domain of s according to the data found in f.
func (s *Scale) Train(f Field) {
	if f.Discrete() {
		s.DomainLevels.Join(f.Levels())
		return
	}
	min, max, mini, maxi := f.MinMax()
	if mini != -1 && min < s.DomainMin {
		s.DomainMin = min
	}
	if maxi != -1 && max > s.DomainMax {
		s.DomainMax = max
	}
}

// TrainByValue updates the domain of a continuous scale by the given
// values. NaN values are ignored.
func (s *Scale) TrainByValue(xs ...float64) {
	if s.Discrete {
		for _, x := range xs {
			if !math.IsNaN(x) {
				s.DomainLevels.Add(x)
			}
		}
		return
	}
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if x < s.DomainMin {
			s.DomainMin = x
		}
		if x > s.DomainMax {
			s.DomainMax = x
		}
	}
}

// Retrain updates the domain of s from the constructed geom data. The
// geom reports its bounds as geoms may use reparametrized slots, e.g. a
// rectangle covers xmin/xmax instead of x.
func (s *Scale) Retrain(aes string, geom Geom, df *DataFrame) {
	if s.Discrete {
		if df.Has(aes) {
			s.DomainLevels.Join(df.Columns[aes].Levels())
		}
		return
	}
	min, max := geom.Bounds(aes, df)
	if !math.IsNaN(min) && min < s.DomainMin {
		s.DomainMin = min
	}
	if !math.IsNaN(max) && max > s.DomainMax {
		s.DomainMax = max
	}
}

// Prepare initialises the remaining fields after training.
func (s *Scale) Prepare() {
	if s.Discrete {
		s.PrepareDiscrete()
	} else {
		s.PrepareContinous()
	}
}

// PrepareDiscrete places the levels of the domain evenly spread over
// [0,1] and labels the breaks with the level values.
func (s *Scale) PrepareDiscrete() {
	levels := s.DomainLevels.Elements()
	n := len(levels)
	s.Breaks = make([]float64, n)
	s.Levels = make([]string, n)
	pos := make(map[float64]int, n)
	for i, x := range levels {
		s.Breaks[i] = x
		pos[x] = i
		if s.FieldType == String {
			s.Levels[i] = s.Pool.Get(int(x))
		} else {
			s.Levels[i] = fmt.Sprintf("%g", x)
		}
	}

	s.Pos = func(x float64) float64 {
		i, ok := pos[x]
		if !ok || n == 0 {
			return math.NaN()
		}
		return (float64(i) + 0.5) / float64(n)
	}
	s.Style = func(x float64) int {
		i := pos[x]
		return i + 1 // 0 is the blank line / point
	}
	s.Color = func(x float64) color.Color {
		return rainbow(s.Pos(x))
	}
}

// PrepareContinous expands the trained domain by 5%, computes breaks at
// multiples of a nice step and sets up the mapping functions.
func (s *Scale) PrepareContinous() {
	if s.DomainMin > s.DomainMax {
		s.DomainMin, s.DomainMax = 0, 1 // untrained scale
	} else if s.DomainMin == s.DomainMax {
		s.DomainMin--
		s.DomainMax++
	}
	fullRange := s.DomainMax - s.DomainMin
	expand := fullRange * 0.05
	min, max := s.DomainMin-expand, s.DomainMax+expand
	fullRange = max - min

	// Breaks at multiples of a 1/2/5 step inside the unexpanded domain.
	step := niceStep(s.DomainMax-s.DomainMin, 5)
	s.Breaks = s.Breaks[:0]
	s.Levels = s.Levels[:0]
	format := func(x float64, lab string) string { return fmt.Sprintf("%g", x) }
	if s.Transform != nil && s.Transform.Format != nil {
		format = s.Transform.Format
	}
	for x := RoundUpTo(s.DomainMin, step); x <= s.DomainMax; x += step {
		s.Breaks = append(s.Breaks, x)
		s.Levels = append(s.Levels, format(x, fmt.Sprintf("%g", x)))
	}

	s.Pos = func(x float64) float64 {
		return (x - min) / fullRange
	}
	s.Color = func(x float64) color.Color {
		return rainbow(s.Pos(x))
	}
	s.Style = func(x float64) int {
		return int(s.Pos(x) * float64(StarPoint))
	}
}

// rainbow maps c in [0,1] to a color from a simple green/blue/red wheel.
func rainbow(c float64) color.Color {
	if math.IsNaN(c) {
		return color.NRGBA{0x88, 0x88, 0x88, 0xff}
	}
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	switch {
	case c < 1.0/3:
		r := uint8(c * 3 * 255)
		return color.NRGBA{r, 0xff - r, 0, 0xff}
	case c < 2.0/3:
		r := uint8((c - 1.0/3) * 3 * 255)
		return color.NRGBA{0, r, 0xff - r, 0xff}
	default:
		r := uint8((c - 2.0/3) * 3 * 255)
		return color.NRGBA{0xff - r, 0, r, 0xff}
	}
}
