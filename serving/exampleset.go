package serving

import (
	"math"

	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// ExampleSet is a pre-allocated row-major buffer of examples. Numerical
// features are NaN when missing; categorical and boolean features are -1.
type ExampleSet struct {
	features    *FeaturesDefinition
	numExamples int
	numerical   []float64
	categorical []int
}

// NewExampleSet allocates a buffer of numExamples rows, all values missing.
func NewExampleSet(features *FeaturesDefinition, numExamples int) *ExampleSet {
	n := numExamples * features.NumFeatures()
	e := &ExampleSet{
		features:    features,
		numExamples: numExamples,
		numerical:   make([]float64, n),
		categorical: make([]int, n),
	}
	e.Clear()
	return e
}

// Features returns the feature definition of the buffer.
func (e *ExampleSet) Features() *FeaturesDefinition { return e.features }

// Clear sets every value to missing.
func (e *ExampleSet) Clear() {
	for i := range e.numerical {
		e.numerical[i] = math.NaN()
		e.categorical[i] = -1
	}
}

// NumRows implements dataset.RowSource.
func (e *ExampleSet) NumRows() int { return e.numExamples }

// NumColumns implements dataset.RowSource. Columns are schema columns.
func (e *ExampleSet) NumColumns() int { return e.features.spec.NumColumns() }

// Value implements dataset.RowSource. Columns outside the feature definition
// are missing.
func (e *ExampleSet) Value(row, col int) dataset.Value {
	slot, ok := e.features.Slot(col)
	if !ok || row < 0 || row >= e.numExamples {
		return dataset.MissingValue()
	}
	i := e.index(row, slot)
	switch e.features.spec.Columns[col].Type {
	case dataset.Numerical:
		return dataset.NumericalValue(e.numerical[i])
	case dataset.Categorical:
		return dataset.CategoricalValue(e.categorical[i])
	case dataset.Boolean:
		if e.categorical[i] < 0 {
			return dataset.MissingValue()
		}
		return dataset.BooleanValue(e.categorical[i] == 1)
	default:
		return dataset.MissingValue()
	}
}

// Set stores v at (row, col). v must match the column type or be missing.
func (e *ExampleSet) Set(row, col int, v dataset.Value) error {
	i, c, err := e.locate(row, col)
	if err != nil {
		return err
	}
	if v.IsMissing() {
		e.numerical[i] = math.NaN()
		e.categorical[i] = -1
		return nil
	}

	want := map[dataset.ColumnType]dataset.ValueKind{
		dataset.Numerical:   dataset.KindNumerical,
		dataset.Categorical: dataset.KindCategorical,
		dataset.Boolean:     dataset.KindBoolean,
	}[c.Type]
	if v.Kind() != want {
		return errors.NewConversionError(-1, c.Name, c.Type.String(), v.Kind().String())
	}

	switch c.Type {
	case dataset.Numerical:
		e.numerical[i] = v.Float()
	default:
		e.categorical[i] = v.Int()
	}
	return nil
}

// SetNumerical stores a numerical value.
func (e *ExampleSet) SetNumerical(row, col int, v float64) error {
	return e.Set(row, col, dataset.NumericalValue(v))
}

// SetCategorical stores a categorical value.
func (e *ExampleSet) SetCategorical(row, col int, v int) error {
	return e.Set(row, col, dataset.CategoricalValue(v))
}

// SetBoolean stores a boolean value.
func (e *ExampleSet) SetBoolean(row, col int, v bool) error {
	return e.Set(row, col, dataset.BooleanValue(v))
}

// SetMissing marks (row, col) as missing.
func (e *ExampleSet) SetMissing(row, col int) error {
	return e.Set(row, col, dataset.MissingValue())
}

// CopyExample copies ex into row.
func (e *ExampleSet) CopyExample(row int, ex *dataset.Example) error {
	for slot, col := range e.features.columns {
		if err := e.Set(row, col, ex.Value(0, col)); err != nil {
			return errors.Wrapf(err, "slot %d", slot)
		}
	}
	return nil
}

func (e *ExampleSet) locate(row, col int) (int, *dataset.Column, error) {
	if row < 0 || row >= e.numExamples {
		return 0, nil, errors.NewDimensionError("ExampleSet.Set", e.numExamples, row+1, 0)
	}
	slot, ok := e.features.Slot(col)
	if !ok {
		return 0, nil, errors.NewValueError("ExampleSet.Set", "column is not an input feature")
	}
	return e.index(row, slot), &e.features.spec.Columns[col], nil
}

func (e *ExampleSet) index(row, slot int) int {
	return row*e.features.NumFeatures() + slot
}
