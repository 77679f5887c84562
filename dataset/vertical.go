package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/forest/pkg/errors"
)

// VerticalDataset stores rows column by column. Missing values are NaN in
// numerical columns and -1 in categorical and boolean columns.
type VerticalDataset struct {
	spec        *DataSpec
	numerical   map[int][]float64
	categorical map[int][]int
	boolean     map[int][]int8
	nrow        int
}

// NewVerticalDataset creates an empty dataset with one column per entry of spec.
func NewVerticalDataset(spec *DataSpec) *VerticalDataset {
	ds := &VerticalDataset{
		spec:        spec,
		numerical:   make(map[int][]float64),
		categorical: make(map[int][]int),
		boolean:     make(map[int][]int8),
	}
	for i, c := range spec.Columns {
		switch c.Type {
		case Numerical:
			ds.numerical[i] = nil
		case Categorical:
			ds.categorical[i] = nil
		case Boolean:
			ds.boolean[i] = nil
		}
	}
	return ds
}

// DataSpec returns the schema of the dataset.
func (d *VerticalDataset) DataSpec() *DataSpec { return d.spec }

// NumRows implements RowSource.
func (d *VerticalDataset) NumRows() int { return d.nrow }

// NumColumns implements RowSource.
func (d *VerticalDataset) NumColumns() int { return len(d.spec.Columns) }

// Value implements RowSource.
func (d *VerticalDataset) Value(row, col int) Value {
	if row < 0 || row >= d.nrow {
		return MissingValue()
	}
	if c, ok := d.numerical[col]; ok {
		return NumericalValue(c[row])
	}
	if c, ok := d.categorical[col]; ok {
		return CategoricalValue(c[row])
	}
	if c, ok := d.boolean[col]; ok {
		if c[row] < 0 {
			return MissingValue()
		}
		return BooleanValue(c[row] == 1)
	}
	return MissingValue()
}

// AppendRow appends one row. values are given in column order and must have
// one entry per column.
func (d *VerticalDataset) AppendRow(values ...Value) error {
	if len(values) != len(d.spec.Columns) {
		return errors.NewDimensionError("VerticalDataset.AppendRow", len(d.spec.Columns), len(values), 1)
	}
	for col, v := range values {
		if err := d.checkKind(col, v); err != nil {
			return err
		}
	}
	for col, v := range values {
		switch d.spec.Columns[col].Type {
		case Numerical:
			d.numerical[col] = append(d.numerical[col], v.Float())
		case Categorical:
			d.categorical[col] = append(d.categorical[col], v.Int())
		case Boolean:
			b := int8(-1)
			if !v.IsMissing() {
				b = 0
				if v.Bool() {
					b = 1
				}
			}
			d.boolean[col] = append(d.boolean[col], b)
		}
	}
	d.nrow++
	return nil
}

// AppendExample appends the values of ex as a new row.
func (d *VerticalDataset) AppendExample(ex *Example) error {
	return d.AppendRow(ex.Values...)
}

// ExtractExample copies row into a new Example.
func (d *VerticalDataset) ExtractExample(row int) (*Example, error) {
	if err := CheckRow("VerticalDataset.ExtractExample", d, row); err != nil {
		return nil, err
	}
	ex := NewExample(len(d.spec.Columns))
	for col := range ex.Values {
		ex.Values[col] = d.Value(row, col)
	}
	return ex, nil
}

// NumericalColumn returns the raw values of a numerical column.
func (d *VerticalDataset) NumericalColumn(col int) ([]float64, error) {
	c, ok := d.numerical[col]
	if !ok {
		return nil, errors.NewValueError("VerticalDataset.NumericalColumn", "column is not numerical")
	}
	return c, nil
}

// CategoricalColumn returns the raw values of a categorical column.
func (d *VerticalDataset) CategoricalColumn(col int) ([]int, error) {
	c, ok := d.categorical[col]
	if !ok {
		return nil, errors.NewValueError("VerticalDataset.CategoricalColumn", "column is not categorical")
	}
	return c, nil
}

func (d *VerticalDataset) checkKind(col int, v Value) error {
	if v.IsMissing() {
		return nil
	}
	c := &d.spec.Columns[col]
	want := map[ColumnType]ValueKind{
		Numerical:   KindNumerical,
		Categorical: KindCategorical,
		Boolean:     KindBoolean,
	}[c.Type]
	if v.Kind() != want {
		return errors.NewConversionError(-1, c.Name, c.Type.String(), v.Kind().String())
	}
	return nil
}

// String returns the name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNumerical:
		return "NUMERICAL"
	case KindCategorical:
		return "CATEGORICAL"
	case KindBoolean:
		return "BOOLEAN"
	default:
		return "MISSING"
	}
}

// FromMatrix builds a dataset from a gonum matrix whose column j holds schema
// column j. NaN cells are missing. Categorical cells are truncated to int and
// boolean cells are true when non zero.
func FromMatrix(spec *DataSpec, X mat.Matrix) (*VerticalDataset, error) {
	rows, cols := X.Dims()
	if cols != spec.NumColumns() {
		return nil, errors.NewDimensionError("FromMatrix", spec.NumColumns(), cols, 1)
	}

	ds := NewVerticalDataset(spec)
	values := make([]Value, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := X.At(i, j)
			if math.IsNaN(x) {
				values[j] = MissingValue()
				continue
			}
			switch spec.Columns[j].Type {
			case Numerical:
				values[j] = NumericalValue(x)
			case Categorical:
				values[j] = CategoricalValue(int(x))
			case Boolean:
				values[j] = BooleanValue(x != 0)
			}
		}
		if err := ds.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
