package plot

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme collects the default styles of the geoms. The styles are
// aesthetics mappings with fixed values, consulted for any aesthetic a
// layer does not map or set itself.
type Theme struct {
	PointStyle    AesMapping
	LineStyle     AesMapping
	BarStyle      AesMapping
	RectStyle     AesMapping
	TextStyle     AesMapping
	ErrorbarStyle AesMapping
}

var DefaultTheme = Theme{
	PointStyle: AesMapping{
		"size":  "5pt",
		"shape": "circle",
		"color": "#222222",
		"alpha": "1",
	},
	LineStyle: AesMapping{
		"size":     "2pt",
		"linetype": "solid",
		"color":    "#222222",
		"alpha":    "1",
	},
	BarStyle: AesMapping{
		"linetype": "blank",
		"color":    "gray20",
		"fill":     "gray20",
		"alpha":    "1",
	},
	RectStyle: AesMapping{
		"linetype": "blank",
		"color":    "gray20",
		"fill":     "gray50",
		"alpha":    "1",
	},
	TextStyle: AesMapping{
		"size":   "10pt",
		"color":  "black",
		"alpha":  "1",
		"angle":  "0",
		"family": "Helvetica",
	},
	ErrorbarStyle: AesMapping{
		"color":    "red",
		"size":     "0.5",
		"linetype": "solid",
		"alpha":    "1",
	},
}

// themeFile mirrors the on-disk TOML representation of a theme. Only
// the set tables and keys override the defaults.
type themeFile struct {
	Point    map[string]string `toml:"point"`
	Line     map[string]string `toml:"line"`
	Bar      map[string]string `toml:"bar"`
	Rect     map[string]string `toml:"rect"`
	Text     map[string]string `toml:"text"`
	Errorbar map[string]string `toml:"errorbar"`
}

// LoadTheme reads a theme from the TOML file at path. Unset keys keep
// their value from DefaultTheme.
func LoadTheme(path string) (Theme, error) {
	var tf themeFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		return Theme{}, fmt.Errorf("loading theme %s: %w", path, err)
	}
	theme := Theme{
		PointStyle:    MergeStyles(AesMapping(tf.Point), DefaultTheme.PointStyle),
		LineStyle:     MergeStyles(AesMapping(tf.Line), DefaultTheme.LineStyle),
		BarStyle:      MergeStyles(AesMapping(tf.Bar), DefaultTheme.BarStyle),
		RectStyle:     MergeStyles(AesMapping(tf.Rect), DefaultTheme.RectStyle),
		TextStyle:     MergeStyles(AesMapping(tf.Text), DefaultTheme.TextStyle),
		ErrorbarStyle: MergeStyles(AesMapping(tf.Errorbar), DefaultTheme.ErrorbarStyle),
	}
	return theme, nil
}
