package dataset

import (
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// RowSource supplies feature values by row and column index.
type RowSource interface {
	NumRows() int
	NumColumns() int
	Value(row, col int) Value
}

// Example is a single row. Values is indexed by column.
type Example struct {
	Values []Value
}

// NewExample returns an example of numColumns missing values.
func NewExample(numColumns int) *Example {
	return &Example{Values: make([]Value, numColumns)}
}

// NumRows implements RowSource. An example always has one row.
func (e *Example) NumRows() int { return 1 }

// NumColumns implements RowSource.
func (e *Example) NumColumns() int { return len(e.Values) }

// Value implements RowSource. row is ignored.
func (e *Example) Value(_, col int) Value {
	if col < 0 || col >= len(e.Values) {
		return MissingValue()
	}
	return e.Values[col]
}

// Set sets the value of column col.
func (e *Example) Set(col int, v Value) error {
	if col < 0 || col >= len(e.Values) {
		return errors.NewDimensionError("Example.Set", len(e.Values), col+1, 1)
	}
	e.Values[col] = v
	return nil
}

// CheckRow returns a DimensionError when row is outside src.
func CheckRow(op string, src RowSource, row int) error {
	if row < 0 || row >= src.NumRows() {
		return errors.NewDimensionError(op, src.NumRows(), row+1, 0)
	}
	return nil
}
