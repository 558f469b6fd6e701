package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %s", err)
	}
	return path
}

func TestReadObservations(t *testing.T) {
	path := writeCSV(t, "x,y,ymax\n1,2,5\n3,3,6\n")

	obs, grouped, err := readObservations(path)
	if err != nil {
		t.Fatalf("readObservations: %s", err)
	}
	if grouped {
		t.Errorf("no group column expected")
	}
	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if obs[0].X != 1 || obs[0].Y != 2 || obs[0].Ymax != 5 {
		t.Errorf("got %+v", obs[0])
	}
}

func TestReadObservationsGrouped(t *testing.T) {
	path := writeCSV(t, "x,y,ymax,group\n1,2,5,a\n3,3,6, b\n")

	obs, grouped, err := readObservations(path)
	if err != nil {
		t.Fatalf("readObservations: %s", err)
	}
	if !grouped {
		t.Errorf("group column not detected")
	}
	if obs[1].Group != "b" {
		t.Errorf("got %+v", obs[1])
	}
}

func TestReadObservationsErrors(t *testing.T) {
	cases := map[string]string{
		"missing column": "x,y\n1,2\n",
		"no data rows":   "x,y,ymax\n",
		"bad value":      "x,y,ymax\n1,two,3\n",
	}
	for name, content := range cases {
		path := writeCSV(t, content)
		if _, _, err := readObservations(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestRender(t *testing.T) {
	csv := writeCSV(t, "x,y,ymax,group\n1,2,5,a\n3,3,6,b\n")
	out := filepath.Join(t.TempDir(), "out.png")

	err := render(context.Background(), renderOptions{
		input:  csv,
		output: out,
		size:   300,
	})
	if err != nil {
		t.Fatalf("render: %s", err)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Errorf("no image written")
	}
}
