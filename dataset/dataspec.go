// Package dataset provides the schema descriptor and the row sources consumed
// by the forest: a single Example, a columnar VerticalDataset, and adapters
// from gonum matrices.
package dataset

import (
	"strconv"

	"github.com/YuminosukeSato/forest/pkg/errors"
)

// ColumnType is the semantic type of a column.
type ColumnType int

const (
	Numerical ColumnType = iota
	Categorical
	Boolean
)

// String returns the upper-case type name used in reports and model files.
func (t ColumnType) String() string {
	switch t {
	case Numerical:
		return "NUMERICAL"
	case Categorical:
		return "CATEGORICAL"
	case Boolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseColumnType converts a type name produced by ColumnType.String.
func ParseColumnType(name string) (ColumnType, error) {
	switch name {
	case "NUMERICAL":
		return Numerical, nil
	case "CATEGORICAL":
		return Categorical, nil
	case "BOOLEAN":
		return Boolean, nil
	default:
		return Numerical, errors.NewValidationError("type", "must be NUMERICAL, CATEGORICAL or BOOLEAN", name)
	}
}

// OutOfVocabularyItem is the item stored at index 0 of a non integerized
// categorical vocabulary.
const OutOfVocabularyItem = "<OOD>"

// CategoricalSpec holds the vocabulary of a categorical column.
type CategoricalSpec struct {
	// NumUniqueValues is the number of possible values, including the
	// out-of-vocabulary value 0.
	NumUniqueValues int
	// IsAlreadyIntegerized is true when values are used as-is and Items is empty.
	IsAlreadyIntegerized bool
	// Items maps a value to its string. Items[0] is the out-of-vocabulary item.
	Items []string
}

// ItemIndex returns the value of item, or (0, false) for an unknown item.
func (c *CategoricalSpec) ItemIndex(item string) (int, bool) {
	for i, it := range c.Items {
		if it == item {
			return i, true
		}
	}
	return 0, false
}

// ItemString returns the string of value, or its decimal form when the column
// is integerized or the value is outside the vocabulary.
func (c *CategoricalSpec) ItemString(value int) string {
	if c.IsAlreadyIntegerized || value < 0 || value >= len(c.Items) {
		return strconv.Itoa(value)
	}
	return c.Items[value]
}

// NumericalSpec holds summary statistics of a numerical column.
type NumericalSpec struct {
	Mean float64
	Min  float64
	Max  float64
}

// Column is one entry of the schema.
type Column struct {
	Name        string
	Type        ColumnType
	Categorical *CategoricalSpec
	Numerical   *NumericalSpec
}

// DataSpec is the ordered list of columns. The position of a column is its
// identifier everywhere else (conditions, importances, row sources).
type DataSpec struct {
	Columns []Column
}

// NumColumns returns the number of columns.
func (s *DataSpec) NumColumns() int {
	return len(s.Columns)
}

// Column returns the column at index col, or nil when col is out of range.
func (s *DataSpec) Column(col int) *Column {
	if col < 0 || col >= len(s.Columns) {
		return nil
	}
	return &s.Columns[col]
}

// ColumnIndex returns the index of the column with the given name.
func (s *DataSpec) ColumnIndex(name string) (int, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks column names are unique and categorical columns carry a
// vocabulary.
func (s *DataSpec) Validate() error {
	seen := make(map[string]int, len(s.Columns))
	for i := range s.Columns {
		c := &s.Columns[i]
		if c.Name == "" {
			return errors.NewValidationError("columns", "empty column name", i)
		}
		if prev, ok := seen[c.Name]; ok {
			return errors.NewValidationError("columns", "duplicate column name "+strconv.Quote(c.Name)+" at index "+strconv.Itoa(prev), i)
		}
		seen[c.Name] = i

		if c.Type != Categorical {
			continue
		}
		if c.Categorical == nil {
			return errors.NewValidationError(c.Name, "categorical column without vocabulary", nil)
		}
		if !c.Categorical.IsAlreadyIntegerized && len(c.Categorical.Items) != c.Categorical.NumUniqueValues {
			return errors.NewValidationError(c.Name, "vocabulary size does not match number of unique values", len(c.Categorical.Items))
		}
	}
	return nil
}
