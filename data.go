package plot

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"text/tabwriter"
	"time"
)

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Int FieldType = iota
	Float
	String
	Time
)

func (ft FieldType) String() string {
	return []string{"Int", "Float", "String", "Time"}[ft]
}

// Discrete reports whether this field type has discrete values.
func (ft FieldType) Discrete() bool {
	return ft == Int || ft == String
}

// Field is a column of a data frame. All values are stored as float64:
// integers and times are converted, strings are kept as the index into
// the pool. Missing values are NaN.
type Field struct {
	Type FieldType
	Pool *StringPool
	Data []float64
}

// NewField returns a field of type t with n zero elements.
func NewField(n int, t FieldType, pool *StringPool) Field {
	return Field{
		Type: t,
		Pool: pool,
		Data: make([]float64, n),
	}
}

// Discrete reports whether f contains discrete data.
func (f Field) Discrete() bool { return f.Type.Discrete() }

// Copy returns a deep copy of f.
func (f Field) Copy() Field {
	c := NewField(len(f.Data), f.Type, f.Pool)
	copy(c.Data, f.Data)
	return c
}

// Const returns a new field with n elements, all set to x. The returned
// field has the same type and pool as f.
func (f Field) Const(x float64, n int) Field {
	c := NewField(n, f.Type, f.Pool)
	for i := range c.Data {
		c.Data[i] = x
	}
	return c
}

// Apply replaces each element of f by fn(element).
func (f Field) Apply(fn func(float64) float64) {
	for i, x := range f.Data {
		f.Data[i] = fn(x)
	}
}

// MinMax returns the minimum and maximum value in f together with their
// indices. NaN elements are skipped; if no value remains both indices
// are -1.
func (f Field) MinMax() (min, max float64, mini, maxi int) {
	mini, maxi = -1, -1
	for i, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		if mini == -1 || x < min {
			min, mini = x, i
		}
		if maxi == -1 || x > max {
			max, maxi = x, i
		}
	}
	return min, max, mini, maxi
}

// Levels returns the set of distinct non-NaN values in f.
func (f Field) Levels() FloatSet {
	levels := NewFloatSet()
	for _, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		levels.Add(x)
	}
	return levels
}

// Resolution returns the smallest difference between two distinct values
// in f. The second return value is false if f contains fewer than two
// distinct values.
func (f Field) Resolution() (float64, bool) {
	vals := f.Levels().Elements()
	if len(vals) < 2 {
		return 0, false
	}
	res := vals[1] - vals[0]
	for i := 2; i < len(vals); i++ {
		if d := vals[i] - vals[i-1]; d < res {
			res = d
		}
	}
	return res, true
}

// String formats the value x according to the type of f.
func (f Field) String(x float64) string {
	if math.IsNaN(x) {
		return "NA"
	}
	switch f.Type {
	case Int:
		return fmt.Sprintf("%d", int64(x))
	case String:
		return f.Pool.Get(int(x))
	case Time:
		return time.Unix(int64(x), 0).Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%g", x)
}

// DataFrame is a collection of equal-length columns indexed by name.
type DataFrame struct {
	Name    string
	N       int
	Columns map[string]Field
	Pool    *StringPool
}

// NewDataFrame returns an empty data frame using pool for its string
// values.
func NewDataFrame(name string, pool *StringPool) *DataFrame {
	return &DataFrame{
		Name:    name,
		Columns: make(map[string]Field),
		Pool:    pool,
	}
}

// Has reports whether df contains the column field.
func (df *DataFrame) Has(field string) bool {
	_, ok := df.Columns[field]
	return ok
}

// FieldNames returns the sorted column names of df.
func (df *DataFrame) FieldNames() []string {
	names := make([]string, 0, len(df.Columns))
	for name := range df.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rename renames column o to n. Renaming a nonexistent column is a no-op.
func (df *DataFrame) Rename(o, n string) {
	if o == n {
		return
	}
	f, ok := df.Columns[o]
	if !ok {
		return
	}
	df.Columns[n] = f
	delete(df.Columns, o)
}

// Delete removes the column field from df.
func (df *DataFrame) Delete(field string) {
	delete(df.Columns, field)
}

// Copy returns a deep copy of df.
func (df *DataFrame) Copy() *DataFrame {
	c := NewDataFrame(df.Name, df.Pool)
	c.N = df.N
	for name, f := range df.Columns {
		c.Columns[name] = f.Copy()
	}
	return c
}

// Append appends the rows of other to df. Columns missing in other are
// filled with NaN.
func (df *DataFrame) Append(other *DataFrame) {
	if other == nil || other.N == 0 {
		return
	}
	for name, f := range df.Columns {
		o, ok := other.Columns[name]
		if !ok {
			o = f.Const(math.NaN(), other.N)
		}
		f.Data = append(f.Data, o.Data...)
		df.Columns[name] = f
	}
	df.N += other.N
}

// Print writes a tabular representation of df to w.
func (df *DataFrame) Print(w io.Writer) {
	names := df.FieldNames()
	tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%d rows)\n", df.Name, df.N)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)
	for i := 0; i < df.N; i++ {
		for _, name := range names {
			f := df.Columns[name]
			fmt.Fprintf(tw, "%s\t", f.String(f.Data[i]))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// NewDataFrameFrom constructs a data frame from a slice of measurements,
// i.e. a slice of structs. Each struct field and each niladic method with
// a single return value of a suitable type (integer, float, string or
// time.Time) becomes a column. Unsuitable fields and methods are ignored.
func NewDataFrameFrom(data interface{}) (*DataFrame, error) {
	t := reflect.TypeOf(data)
	if t == nil || t.Kind() != reflect.Slice {
		return nil, fmt.Errorf("cannot convert %T to data frame", data)
	}

	et := t.Elem()
	if et.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot convert %T to data frame: element type is not a struct", data)
	}

	v := reflect.ValueOf(data)
	n := v.Len()
	df := NewDataFrame(et.Name(), NewStringPool())
	df.N = n

	for i := 0; i < et.NumField(); i++ {
		sf := et.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		ft, conv := converter(sf.Type, df.Pool)
		if conv == nil {
			continue
		}
		field := NewField(n, ft, df.Pool)
		for j := 0; j < n; j++ {
			field.Data[j] = conv(v.Index(j).Field(i))
		}
		df.Columns[sf.Name] = field
	}

	for i := 0; i < et.NumMethod(); i++ {
		m := et.Method(i)
		mt := m.Type
		// Only methods of the form func(elemtype) <suitable type>.
		if mt.NumIn() != 1 || mt.NumOut() != 1 {
			continue
		}
		ft, conv := converter(mt.Out(0), df.Pool)
		if conv == nil {
			continue
		}
		field := NewField(n, ft, df.Pool)
		for j := 0; j < n; j++ {
			field.Data[j] = conv(m.Func.Call([]reflect.Value{v.Index(j)})[0])
		}
		df.Columns[m.Name] = field
	}

	return df, nil
}

// converter returns the field type for t and a function turning a value
// of type t into the float64 representation. A nil converter marks an
// unsuitable type.
func converter(t reflect.Type, pool *StringPool) (FieldType, func(reflect.Value) float64) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int, func(v reflect.Value) float64 { return float64(v.Int()) }
	case reflect.Float32, reflect.Float64:
		return Float, func(v reflect.Value) float64 { return v.Float() }
	case reflect.String:
		return String, func(v reflect.Value) float64 { return float64(pool.Add(v.String())) }
	case reflect.Struct:
		if t.Name() == "Time" && t.PkgPath() == "time" {
			return Time, func(v reflect.Value) float64 {
				return float64(v.Interface().(time.Time).Unix())
			}
		}
	}
	return Float, nil
}

// Filter extracts all rows from df where field==value. Value may be a
// float64, an int or a string; strings are looked up in the pool of df.
// A nonexistent field selects all rows.
func Filter(df *DataFrame, field string, value interface{}) *DataFrame {
	if df == nil {
		return nil
	}
	f, ok := df.Columns[field]
	if !ok {
		return df.Copy()
	}

	var val float64
	switch v := value.(type) {
	case float64:
		val = v
	case int:
		val = float64(v)
	case string:
		i := df.Pool.Find(v)
		if i == -1 {
			res := df.Copy()
			res.N = 0
			for name, c := range res.Columns {
				c.Data = c.Data[:0]
				res.Columns[name] = c
			}
			return res
		}
		val = float64(i)
	default:
		panic(fmt.Sprintf("plot: bad type %T of value in Filter", value))
	}

	keep := make([]int, 0, df.N)
	for i := 0; i < df.N; i++ {
		if f.Data[i] == val {
			keep = append(keep, i)
		}
	}

	res := NewDataFrame(df.Name, df.Pool)
	res.N = len(keep)
	for name, c := range df.Columns {
		nc := NewField(len(keep), c.Type, c.Pool)
		for j, i := range keep {
			nc.Data[j] = c.Data[i]
		}
		res.Columns[name] = nc
	}
	return res
}

// Levels returns the set of distinct values of field in df.
func Levels(df *DataFrame, field string) FloatSet {
	if df == nil || !df.Has(field) {
		return NewFloatSet()
	}
	return df.Columns[field].Levels()
}

// Partition splits df into one data frame per level of field.
func Partition(df *DataFrame, field string, levels []float64) []*DataFrame {
	parts := make([]*DataFrame, len(levels))
	for i, level := range levels {
		parts[i] = Filter(df, field, level)
	}
	return parts
}

// MinMax returns the minimum and maximum of field in df together with
// their indices. Both indices are -1 if the field is missing or empty.
func MinMax(df *DataFrame, field string) (min, max float64, mini, maxi int) {
	if df == nil || !df.Has(field) {
		return 0, 0, -1, -1
	}
	return df.Columns[field].MinMax()
}
