// Package plot provides layered, declarative plots in the style of R's
// ggplot2, rendered through gonum.org/v1/plot's vector graphics canvases.
//
// # Data Representation
//
// Data is imported from a "slice of measurements":
//
//	var DataSOM []Measurement
//	type Measurement struct {
//	    Height float64
//	    Weight float64
//	    Age    int
//	}
//
// NewDataFrameFrom turns such a slice into a DataFrame. Internally all
// values are stored as float64; plot distinguishes
//
//	Float   continuous data
//	Int     discrete data
//	String  discrete data, interned in a string pool
//	Time    time data
//
// A NaN marks a missing value.
//
// # Calculated Values
//
// The data frame need not contain every plotted quantity as a struct
// field. Niladic methods with a single return value are imported as
// columns too:
//
//	func (m Measurement) BMI() float64 { return m.Weight / (m.Height * m.Height) }
//
// # Layers and Geoms
//
// A Plot combines a data frame, an aesthetics mapping and a list of
// layers. Each layer pairs an optional statistical transform (StatBin,
// StatLinReq, ...) with a geom (GeomPoint, GeomLine, GeomBar,
// GeomBoxplot, GeomUpErrorbar, ...). UpErrorbarLayer is a convenience
// constructor for layers drawing upward-pointing error bars.
package plot
