package plot

import (
	"io"
	"testing"
)

type Ops struct {
	Age     int
	Origin  string
	Weight  float64
	Height  float64
	Special []byte
}

func (o Ops) BMI() float64 {
	return o.Weight / (o.Height * o.Height)
}

func (o Ops) Group() int {
	return 10*(o.Age/10) + 5
}

func (o Ops) Country() string {
	o2c := map[string]string{
		"ch": "Schweiz",
		"de": "Deutschland",
		"uk": "England",
	}
	return o2c[o.Origin]
}

func (o Ops) Other() bool {
	return true
}

func (o Ops) Other2(a int) int {
	return 0
}

var measurement = []Ops{
	Ops{Age: 20, Origin: "de", Weight: 80, Height: 1.88},
	Ops{Age: 22, Origin: "de", Weight: 85, Height: 1.85},
	Ops{Age: 20, Origin: "de", Weight: 90, Height: 1.95},
	Ops{Age: 25, Origin: "de", Weight: 90, Height: 1.72},

	Ops{Age: 20, Origin: "ch", Weight: 77, Height: 1.78},
	Ops{Age: 20, Origin: "ch", Weight: 82, Height: 1.75},
	Ops{Age: 28, Origin: "ch", Weight: 85, Height: 1.80},
	Ops{Age: 20, Origin: "ch", Weight: 84, Height: 1.62},

	Ops{Age: 31, Origin: "de", Weight: 85, Height: 1.88},
	Ops{Age: 30, Origin: "de", Weight: 90, Height: 1.85},
	Ops{Age: 30, Origin: "de", Weight: 99, Height: 1.95},
	Ops{Age: 42, Origin: "de", Weight: 95, Height: 1.72},

	Ops{Age: 30, Origin: "ch", Weight: 80, Height: 1.78},
	Ops{Age: 30, Origin: "ch", Weight: 85, Height: 1.75},
	Ops{Age: 37, Origin: "ch", Weight: 87, Height: 1.80},
	Ops{Age: 47, Origin: "ch", Weight: 90, Height: 1.62},

	Ops{Age: 42, Origin: "uk", Weight: 60, Height: 1.68},
	Ops{Age: 42, Origin: "uk", Weight: 65, Height: 1.65},
	Ops{Age: 44, Origin: "uk", Weight: 55, Height: 1.52},
	Ops{Age: 44, Origin: "uk", Weight: 70, Height: 1.72},
}

func TestNewDataFrameFrom(t *testing.T) {
	df, err := NewDataFrameFrom(measurement)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if df.N != 20 {
		t.Errorf("Got %d elements, want 20", df.N)
	}

	// Age, Origin, Weight, Height plus BMI, Group and Country.
	// Special, Other and Other2 have unsuitable types.
	if len(df.Columns) != 7 {
		t.Errorf("Got %d fields %v, want 7", len(df.Columns), df.FieldNames())
	}

	if ft := df.Columns["Age"].Type; ft != Int {
		t.Errorf("Age has type %s, want Int", ft)
	}
	if ft := df.Columns["Origin"].Type; ft != String {
		t.Errorf("Origin has type %s, want String", ft)
	}
	if ft := df.Columns["BMI"].Type; ft != Float {
		t.Errorf("BMI has type %s, want Float", ft)
	}
}

func TestFilter(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	exactly20 := Filter(df, "Age", 20)
	if exactly20.N != 5 {
		t.Errorf("Got %d, want 5", exactly20.N)
	}
	for i, a := range exactly20.Columns["Age"].Data {
		if a != 20 {
			t.Errorf("Element %d has age %v (want 20)", i, a)
		}
	}

	age30to39 := Filter(df, "Group", 35)
	if age30to39.N != 6 {
		t.Errorf("Got %d, want 6", age30to39.N)
	}
	for i, a := range age30to39.Columns["Age"].Data {
		if a < 30 || a > 39 {
			t.Errorf("Element %d has age %v (want 30-39)", i, a)
		}
	}

	ukOnly := Filter(df, "Origin", "uk")
	if ukOnly.N != 4 {
		t.Errorf("Got %d, want 4", ukOnly.N)
	}
	ukIdx := float64(df.Pool.Find("uk"))
	for i, o := range ukOnly.Columns["Origin"].Data {
		if o != ukIdx {
			t.Errorf("Element %d has origin %v (want uk)", i, o)
		}
	}
}

func TestLevels(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	ageLevels := Levels(df, "Age").Elements()
	if len(ageLevels) != 10 || ageLevels[0] != 20 || ageLevels[9] != 47 {
		t.Errorf("Got %v", ageLevels)
	}

	origLevels := Levels(df, "Origin").Elements()
	if len(origLevels) != 3 {
		t.Fatalf("Got %v", origLevels)
	}
	origin := df.Columns["Origin"]
	names := []string{}
	for _, l := range origLevels {
		names = append(names, origin.String(l))
	}
	if !contains(names, "ch") || !contains(names, "de") || !contains(names, "uk") {
		t.Errorf("Got %v", names)
	}
}

func TestMinMax(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	min, max, a, b := MinMax(df, "Weight")
	if min != 55 || a != 18 {
		t.Errorf("Min: Got %f/%d, want 55.00/18", min, a)
	}
	if max != 99.0 || b != 10 {
		t.Errorf("Max: Got %f/%d, want 99.00/10", max, b)
	}
}

func TestResolution(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	res, ok := df.Columns["Age"].Resolution()
	if !ok || res != 1 {
		t.Errorf("Got %v/%t, want 1/true", res, ok)
	}

	all20 := Filter(df, "Age", 20)
	if _, ok := all20.Columns["Age"].Resolution(); ok {
		t.Errorf("Resolution of constant field should be undefined")
	}
}

func TestPrint(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	df.Print(io.Discard)
}
