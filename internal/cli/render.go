package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	plot "github.com/plotgg/uperrorbar"
)

type renderOptions struct {
	input  string
	output string
	width  float64
	theme  string
	size   int
}

// observation is one CSV row. Group is empty when the input has no
// group column.
type observation struct {
	X     float64
	Y     float64
	Ymax  float64
	Group string
}

// render reads the CSV input, builds the plot and writes the PNG.
func render(ctx context.Context, opts renderOptions) error {
	logger := loggerFromContext(ctx)

	obs, grouped, err := readObservations(opts.input)
	if err != nil {
		return err
	}
	logger.Debug("read observations", "file", opts.input, "rows", len(obs), "grouped", grouped)

	df, err := plot.NewDataFrameFrom(obs)
	if err != nil {
		return fmt.Errorf("importing %s: %w", opts.input, err)
	}
	if !grouped {
		df.Delete("Group")
	}

	theme := plot.DefaultTheme
	if opts.theme != "" {
		theme, err = plot.LoadTheme(opts.theme)
		if err != nil {
			return err
		}
		logger.Debug("loaded theme", "file", opts.theme)
	}

	aes := plot.AesMapping{"x": "X", "y": "Y", "ymax": "Ymax"}
	if grouped {
		aes["color"] = "Group"
	}
	p := &plot.Plot{
		Data:  df,
		Aes:   aes,
		Theme: theme,
		Layers: []*plot.Layer{
			{Name: "Observations", Geom: plot.GeomPoint{}},
			plot.UpErrorbarLayer(plot.LayerOpts{Width: opts.width}),
		},
	}
	p.Simple()

	if err := writePNG(p, opts.output, opts.size); err != nil {
		return err
	}
	logger.Info("wrote plot", "file", opts.output)
	return nil
}

// readObservations parses the CSV file. The header must name x, y and
// ymax columns, case insensitive; a group column is optional.
func readObservations(path string) ([]observation, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, false, fmt.Errorf("%s: need a header and at least one data row", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"x", "y", "ymax"} {
		if _, ok := col[name]; !ok {
			return nil, false, fmt.Errorf("%s: missing column %q", path, name)
		}
	}
	gi, grouped := col["group"]

	obs := make([]observation, 0, len(records)-1)
	for ln, rec := range records[1:] {
		var o observation
		for name, dst := range map[string]*float64{"x": &o.X, "y": &o.Y, "ymax": &o.Ymax} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[col[name]]), 64)
			if err != nil {
				return nil, false, fmt.Errorf("%s line %d: bad %s value %q", path, ln+2, name, rec[col[name]])
			}
			*dst = v
		}
		if grouped {
			o.Group = strings.TrimSpace(rec[gi])
		}
		obs = append(obs, o)
	}
	return obs, grouped, nil
}

func writePNG(p *plot.Plot, path string, size int) error {
	img := vgimg.New(vg.Length(size), vg.Length(size))
	vp := plot.NewViewport(draw.New(img))

	// Margins for axis labels and the legend.
	p.DrawTo(plot.SubViewport(vp, 0.08, 0.07, 0.76, 0.88))
	p.DrawLegend(plot.SubViewport(vp, 0.86, 0.07, 0.13, 0.88))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
