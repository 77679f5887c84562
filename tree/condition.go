// Package tree provides decision tree nodes, split conditions and the per-tree
// traversals used by the forest.
package tree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// Condition is the split test of a SplitNode. It also carries the split
// statistics recorded at training time.
type Condition struct {
	// Attribute is the index of the tested column in the dataspec.
	Attribute int
	Test      ConditionTest
	// NAValue is the branch taken when the value is missing.
	NAValue bool

	SplitScore                          float32
	NumTrainingExamplesWithoutWeight    int64
	NumPosTrainingExamplesWithoutWeight int64
}

// Evaluate returns true when v goes to the positive child.
func (c *Condition) Evaluate(v dataset.Value) bool {
	if v.IsMissing() {
		return c.NAValue
	}
	return c.Test.Eval(v)
}

// Validate checks the condition against the dataspec.
func (c *Condition) Validate(spec *dataset.DataSpec) error {
	col := spec.Column(c.Attribute)
	if col == nil {
		return errors.NewInvalidModelError("Condition.Validate", "condition references a column outside the dataspec", c.Attribute)
	}
	if c.Test == nil {
		return errors.NewInvalidModelError("Condition.Validate", "condition without test", c.Attribute)
	}
	return c.Test.Validate(col)
}

// Describe renders the predicate, e.g. "a">=1.
func (c *Condition) Describe(spec *dataset.DataSpec) string {
	col := spec.Column(c.Attribute)
	if col == nil {
		return "#" + strconv.Itoa(c.Attribute) + " " + c.Test.Kind()
	}
	return c.Test.Describe(col)
}

// ConditionTest is the variant part of a condition.
type ConditionTest interface {
	// Kind is the name of the test, e.g. "HigherCondition".
	Kind() string
	// Eval tests a present value.
	Eval(v dataset.Value) bool
	// Describe renders the predicate on col.
	Describe(col *dataset.Column) string
	// Validate checks the test can be applied to col.
	Validate(col *dataset.Column) error
}

func requireType(kind string, col *dataset.Column, types ...dataset.ColumnType) error {
	for _, t := range types {
		if col.Type == t {
			return nil
		}
	}
	return errors.NewInvalidModelError("Condition.Validate", kind+" cannot be applied to "+col.Type.String()+" column "+strconv.Quote(col.Name), -1)
}

// HigherCondition is positive when value >= Threshold. Values are compared
// in float32, the precision thresholds are stored with.
type HigherCondition struct {
	Threshold float32
}

func (HigherCondition) Kind() string { return "HigherCondition" }

func (t HigherCondition) Eval(v dataset.Value) bool {
	return float32(v.Float()) >= t.Threshold
}

func (t HigherCondition) Describe(col *dataset.Column) string {
	return strconv.Quote(col.Name) + ">=" + strconv.FormatFloat(float64(t.Threshold), 'g', -1, 32)
}

func (t HigherCondition) Validate(col *dataset.Column) error {
	return requireType(t.Kind(), col, dataset.Numerical)
}

// ContainsCondition is positive when the categorical value is one of Elements.
type ContainsCondition struct {
	Elements []int
}

func (ContainsCondition) Kind() string { return "ContainsCondition" }

func (t ContainsCondition) Eval(v dataset.Value) bool {
	x := v.Int()
	for _, e := range t.Elements {
		if e == x {
			return true
		}
	}
	return false
}

func (t ContainsCondition) Describe(col *dataset.Column) string {
	return describeSet(col, t.Elements)
}

func (t ContainsCondition) Validate(col *dataset.Column) error {
	return requireType(t.Kind(), col, dataset.Categorical)
}

// ContainsBitmapCondition is ContainsCondition with the set stored as a bitmap
// indexed by category.
type ContainsBitmapCondition struct {
	Bitmap []byte
}

// NewContainsBitmapCondition builds the bitmap of elements.
func NewContainsBitmapCondition(numUniqueValues int, elements []int) ContainsBitmapCondition {
	bitmap := make([]byte, (numUniqueValues+7)/8)
	for _, e := range elements {
		SetBit(bitmap, e)
	}
	return ContainsBitmapCondition{Bitmap: bitmap}
}

func (ContainsBitmapCondition) Kind() string { return "ContainsBitmapCondition" }

func (t ContainsBitmapCondition) Eval(v dataset.Value) bool {
	return GetBit(t.Bitmap, v.Int())
}

// Elements returns the categories set in the bitmap, in increasing order.
func (t ContainsBitmapCondition) Elements() []int {
	var out []int
	for i := 0; i < len(t.Bitmap)*8; i++ {
		if GetBit(t.Bitmap, i) {
			out = append(out, i)
		}
	}
	return out
}

func (t ContainsBitmapCondition) Describe(col *dataset.Column) string {
	return describeSet(col, t.Elements())
}

func (t ContainsBitmapCondition) Validate(col *dataset.Column) error {
	if err := requireType(t.Kind(), col, dataset.Categorical); err != nil {
		return err
	}
	if col.Categorical != nil && len(t.Bitmap)*8 < col.Categorical.NumUniqueValues {
		return errors.NewInvalidModelError("Condition.Validate", "bitmap smaller than the vocabulary of "+strconv.Quote(col.Name), -1)
	}
	return nil
}

// TrueValueCondition is positive when the boolean value is true.
type TrueValueCondition struct{}

func (TrueValueCondition) Kind() string { return "TrueValueCondition" }

func (TrueValueCondition) Eval(v dataset.Value) bool { return v.Bool() }

func (TrueValueCondition) Describe(col *dataset.Column) string {
	return strconv.Quote(col.Name) + " is true"
}

func (t TrueValueCondition) Validate(col *dataset.Column) error {
	return requireType(t.Kind(), col, dataset.Boolean)
}

// NACondition is positive when the value is missing. Present values are
// always negative, so NAValue should be true.
type NACondition struct{}

func (NACondition) Kind() string { return "NACondition" }

func (NACondition) Eval(dataset.Value) bool { return false }

func (NACondition) Describe(col *dataset.Column) string {
	return strconv.Quote(col.Name) + " is NA"
}

func (NACondition) Validate(*dataset.Column) error { return nil }

func describeSet(col *dataset.Column, elements []int) string {
	sorted := append([]int(nil), elements...)
	sort.Ints(sorted)

	items := make([]string, len(sorted))
	for i, e := range sorted {
		if col.Categorical != nil {
			items[i] = col.Categorical.ItemString(e)
		} else {
			items[i] = strconv.Itoa(e)
		}
	}
	return strconv.Quote(col.Name) + " in {" + strings.Join(items, ", ") + "}"
}

// GetBit returns bit i of a little-endian bitmap. Out of range bits are unset.
func GetBit(bitmap []byte, i int) bool {
	if i < 0 || i/8 >= len(bitmap) {
		return false
	}
	return bitmap[i/8]&(1<<(uint(i)%8)) != 0
}

// SetBit sets bit i of a little-endian bitmap. Out of range bits are ignored.
func SetBit(bitmap []byte, i int) {
	if i < 0 || i/8 >= len(bitmap) {
		return
	}
	bitmap[i/8] |= 1 << (uint(i) % 8)
}
