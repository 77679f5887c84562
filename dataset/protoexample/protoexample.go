// Package protoexample converts external example records, protobuf
// structpb.Struct messages keyed by column name, into forest rows.
package protoexample

import (
	"math"
	"strconv"

	"go.uber.org/multierr"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/serving"
)

// ToExample converts rec into an Example. Fields that are not columns of spec
// are ignored and columns without field are missing.
func ToExample(rec *structpb.Struct, spec *dataset.DataSpec) (*dataset.Example, error) {
	return toExample(-1, rec, spec)
}

// ToExamples converts every record. A record that fails is left nil in the
// result and its error is combined into the returned error, the other
// records are still converted.
func ToExamples(recs []*structpb.Struct, spec *dataset.DataSpec) ([]*dataset.Example, error) {
	out := make([]*dataset.Example, len(recs))
	var err error
	for i, rec := range recs {
		ex, convErr := toExample(i, rec, spec)
		if convErr != nil {
			err = multierr.Append(err, convErr)
			continue
		}
		out[i] = ex
	}
	return out, err
}

// FromExample converts ex back into a record. Missing values are omitted and
// categorical values use the vocabulary when the column has one.
func FromExample(ex *dataset.Example, spec *dataset.DataSpec) (*structpb.Struct, error) {
	if ex.NumColumns() != spec.NumColumns() {
		return nil, errors.NewDimensionError("FromExample", spec.NumColumns(), ex.NumColumns(), 1)
	}
	fields := make(map[string]*structpb.Value, len(spec.Columns))
	for col := range spec.Columns {
		c := &spec.Columns[col]
		v := ex.Value(0, col)
		if v.IsMissing() {
			continue
		}
		switch c.Type {
		case dataset.Numerical:
			fields[c.Name] = structpb.NewNumberValue(v.Float())
		case dataset.Categorical:
			if c.Categorical == nil || c.Categorical.IsAlreadyIntegerized {
				fields[c.Name] = structpb.NewNumberValue(float64(v.Int()))
			} else {
				fields[c.Name] = structpb.NewStringValue(c.Categorical.ItemString(v.Int()))
			}
		case dataset.Boolean:
			fields[c.Name] = structpb.NewBoolValue(v.Bool())
		}
	}
	return &structpb.Struct{Fields: fields}, nil
}

// CopyToExampleSet converts rec directly into row of dst. Only the columns of
// the feature definition of dst are read.
func CopyToExampleSet(rec *structpb.Struct, row int, dst *serving.ExampleSet) error {
	return copyToExampleSet(-1, rec, row, dst)
}

// CopyAllToExampleSet copies recs[i] into row i of dst. Rows whose record
// fails are left missing and the errors are combined.
func CopyAllToExampleSet(recs []*structpb.Struct, dst *serving.ExampleSet) error {
	if len(recs) > dst.NumRows() {
		return errors.NewDimensionError("CopyAllToExampleSet", dst.NumRows(), len(recs), 0)
	}
	var err error
	for i, rec := range recs {
		if copyErr := copyToExampleSet(i, rec, i, dst); copyErr != nil {
			err = multierr.Append(err, copyErr)
			for _, col := range dst.Features().Columns() {
				_ = dst.SetMissing(i, col)
			}
		}
	}
	return err
}

func toExample(record int, rec *structpb.Struct, spec *dataset.DataSpec) (*dataset.Example, error) {
	ex := dataset.NewExample(spec.NumColumns())
	for col := range spec.Columns {
		v, err := convertField(record, rec, &spec.Columns[col])
		if err != nil {
			return nil, err
		}
		ex.Values[col] = v
	}
	return ex, nil
}

func copyToExampleSet(record int, rec *structpb.Struct, row int, dst *serving.ExampleSet) error {
	spec := dst.Features().DataSpec()
	for _, col := range dst.Features().Columns() {
		v, err := convertField(record, rec, &spec.Columns[col])
		if err != nil {
			return err
		}
		if err := dst.Set(row, col, v); err != nil {
			return err
		}
	}
	return nil
}

func convertField(record int, rec *structpb.Struct, c *dataset.Column) (dataset.Value, error) {
	field, ok := rec.GetFields()[c.Name]
	if !ok {
		return dataset.MissingValue(), nil
	}
	if _, null := field.GetKind().(*structpb.Value_NullValue); null {
		return dataset.MissingValue(), nil
	}

	fail := func() (dataset.Value, error) {
		return dataset.MissingValue(), errors.NewConversionError(record, c.Name, c.Type.String(), kindName(field))
	}

	switch c.Type {
	case dataset.Numerical:
		if x, ok := field.GetKind().(*structpb.Value_NumberValue); ok {
			return dataset.NumericalValue(x.NumberValue), nil
		}
		return fail()

	case dataset.Categorical:
		switch x := field.GetKind().(type) {
		case *structpb.Value_NumberValue:
			if x.NumberValue != math.Trunc(x.NumberValue) {
				return fail()
			}
			return categoricalIndex(record, c, x.NumberValue, strconv.FormatFloat(x.NumberValue, 'g', -1, 64))
		case *structpb.Value_StringValue:
			return categoricalFromString(record, c, x.StringValue)
		}
		return fail()

	case dataset.Boolean:
		if x, ok := field.GetKind().(*structpb.Value_BoolValue); ok {
			return dataset.BooleanValue(x.BoolValue), nil
		}
		return fail()
	}
	return fail()
}

func categoricalFromString(record int, c *dataset.Column, s string) (dataset.Value, error) {
	if c.Categorical == nil || c.Categorical.IsAlreadyIntegerized {
		v, err := strconv.Atoi(s)
		if err != nil {
			return dataset.MissingValue(), errors.NewConversionError(record, c.Name, "integerized CATEGORICAL", strconv.Quote(s))
		}
		return categoricalIndex(record, c, float64(v), strconv.Quote(s))
	}
	if idx, ok := c.Categorical.ItemIndex(s); ok {
		return dataset.CategoricalValue(idx), nil
	}
	errors.Warn(errors.NewDataConversionWarning("string", "CATEGORICAL",
		"unknown item "+strconv.Quote(s)+" of column "+strconv.Quote(c.Name)+" mapped to "+dataset.OutOfVocabularyItem))
	return dataset.CategoricalValue(0), nil
}

// categoricalIndex checks that v is a valid category of c: non negative and
// below the number of unique values when the column declares one.
func categoricalIndex(record int, c *dataset.Column, v float64, got string) (dataset.Value, error) {
	limit := float64(math.MaxInt32)
	expected := "CATEGORICAL index"
	if c.Categorical != nil && c.Categorical.NumUniqueValues > 0 {
		limit = float64(c.Categorical.NumUniqueValues)
		expected = "CATEGORICAL index in [0, " + strconv.Itoa(c.Categorical.NumUniqueValues) + ")"
	}
	if v < 0 || v >= limit {
		return dataset.MissingValue(), errors.NewConversionError(record, c.Name, expected, got)
	}
	return dataset.CategoricalValue(int(v)), nil
}

func kindName(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return "number"
	case *structpb.Value_StringValue:
		return "string"
	case *structpb.Value_BoolValue:
		return "bool"
	case *structpb.Value_ListValue:
		return "list"
	case *structpb.Value_StructValue:
		return "struct"
	default:
		return "null"
	}
}
