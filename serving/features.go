// Package serving provides batch inference over a forest: a row-major
// ExampleSet buffer, the feature definition mapping schema columns to buffer
// slots, and an Engine that predicts batches in parallel.
package serving

import (
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// FeaturesDefinition maps the schema columns used by a model to the slots of
// an ExampleSet.
type FeaturesDefinition struct {
	spec    *dataset.DataSpec
	columns []int
	slots   map[int]int
}

// NewFeaturesDefinition creates a definition over the given columns, in slot
// order.
func NewFeaturesDefinition(spec *dataset.DataSpec, columns []int) (*FeaturesDefinition, error) {
	f := &FeaturesDefinition{
		spec:    spec,
		columns: append([]int(nil), columns...),
		slots:   make(map[int]int, len(columns)),
	}
	for slot, col := range columns {
		if spec.Column(col) == nil {
			return nil, errors.NewDimensionError("NewFeaturesDefinition", spec.NumColumns(), col+1, 1)
		}
		if _, dup := f.slots[col]; dup {
			return nil, errors.NewValidationError("columns", "duplicate column", col)
		}
		f.slots[col] = slot
	}
	return f, nil
}

// DataSpec returns the schema of the features.
func (f *FeaturesDefinition) DataSpec() *dataset.DataSpec { return f.spec }

// NumFeatures returns the number of slots.
func (f *FeaturesDefinition) NumFeatures() int { return len(f.columns) }

// Columns returns the schema column of every slot.
func (f *FeaturesDefinition) Columns() []int { return f.columns }

// Slot returns the slot of a schema column.
func (f *FeaturesDefinition) Slot(col int) (int, bool) {
	slot, ok := f.slots[col]
	return slot, ok
}

// ColumnByName returns the schema column and slot of a feature.
func (f *FeaturesDefinition) ColumnByName(name string) (col, slot int, ok bool) {
	col, ok = f.spec.ColumnIndex(name)
	if !ok {
		return -1, -1, false
	}
	slot, ok = f.slots[col]
	return col, slot, ok
}
