package plot

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func TestGrobDrawing(t *testing.T) {
	img := vgimg.New(5*vg.Inch, 4*vg.Inch)
	allVP := NewViewport(draw.New(img))
	innerVP := SubViewport(allVP, 0.1, 0.1, 0.8, 0.8)

	GrobRect{xmin: 0, ymin: 0, xmax: 1, ymax: 1, fill: BuiltinColors["gray80"]}.Draw(innerVP)

	cols := []string{"red", "green", "blue", "cyan", "magenta", "yellow", "gray", "black"}
	x := 0.1
	for shape := CirclePoint; shape <= StarPoint; shape++ {
		y := 0.05
		for _, col := range cols {
			GrobPoint{
				x:     x,
				y:     y,
				size:  4,
				shape: shape,
				color: BuiltinColors[col],
			}.Draw(innerVP)
			y += 0.1
		}
		x += 0.06
	}

	for i, lt := range []LineType{SolidLine, DashedLine, DottedLine, DotDashLine} {
		GrobLine{
			x0: 0.05, y0: 0.9 - float64(i)*0.04, x1: 0.95, y1: 0.9 - float64(i)*0.04,
			size: 2, linetype: lt, color: BuiltinColors["black"],
		}.Draw(innerVP)
	}

	GrobPath{
		points: []struct{ x, y float64 }{
			{0.1, 0.6}, {0.3, 0.75}, {0.5, 0.6}, {0.7, 0.75}, {0.9, 0.6},
		},
		size: 1.5, linetype: SolidLine, color: BuiltinColors["blue"],
	}.Draw(innerVP)

	GrobText{
		x: 0.5, y: 0.45, text: "grob zoo", size: 12,
		color: BuiltinColors["black"],
	}.Draw(innerVP)

	writeTestPNG(t, img, "grobs.png")
}

func TestPlotDrawTo(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	p := &Plot{
		Data: df,
		Aes:  AesMapping{"x": "Height", "y": "Weight"},
		Layers: []*Layer{
			{Name: "Points", Geom: GeomPoint{}},
			UpErrorbarLayer(LayerOpts{
				DataMapping: AesMapping{"y": "Weight", "ymax": "BMI"},
			}),
		},
	}
	// BMI is far below Weight, so the bars extend downward on screen.
	// DrawTo must still produce a valid image.
	p.Simple()

	img := vgimg.New(6*vg.Inch, 4*vg.Inch)
	vp := NewViewport(draw.New(img))
	p.DrawTo(SubViewport(vp, 0.1, 0.1, 0.85, 0.85))
	writeTestPNG(t, img, "plot.png")
}

func writeTestPNG(t *testing.T, img *vgimg.Canvas, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	defer file.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Empty image %s", name)
	}
}
