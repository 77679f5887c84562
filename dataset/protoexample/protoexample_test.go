package protoexample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/serving"
)

func testSpec() *dataset.DataSpec {
	return &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "age", Type: dataset.Numerical},
		{Name: "color", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues: 3,
			Items:           []string{dataset.OutOfVocabularyItem, "red", "blue"},
		}},
		{Name: "member", Type: dataset.Boolean},
		{Name: "bucket", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues:      5,
			IsAlreadyIntegerized: true,
		}},
	}}
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestToExample(t *testing.T) {
	rec := mustStruct(t, map[string]interface{}{
		"age":    31.5,
		"color":  "blue",
		"member": true,
		"bucket": 3,
		"extra":  "ignored",
	})

	ex, err := ToExample(rec, testSpec())
	require.NoError(t, err)
	assert.Equal(t, []dataset.Value{
		dataset.NumericalValue(31.5),
		dataset.CategoricalValue(2),
		dataset.BooleanValue(true),
		dataset.CategoricalValue(3),
	}, ex.Values)
}

func TestToExampleMissingAndNull(t *testing.T) {
	rec := mustStruct(t, map[string]interface{}{"age": nil})

	ex, err := ToExample(rec, testSpec())
	require.NoError(t, err)
	for _, v := range ex.Values {
		assert.True(t, v.IsMissing())
	}
}

func TestToExampleUnknownItem(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	ex, err := ToExample(mustStruct(t, map[string]interface{}{"color": "green"}), testSpec())
	require.NoError(t, err)
	assert.Equal(t, dataset.CategoricalValue(0), ex.Values[1])

	require.Len(t, warnings, 1)
	var warning *errors.DataConversionWarning
	require.True(t, errors.As(warnings[0], &warning))
	assert.Contains(t, warning.Reason, `"green"`)
}

func TestToExampleConversionErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
		column string
		got    string
	}{
		{name: "string for numerical", fields: map[string]interface{}{"age": "old"}, column: "age", got: "string"},
		{name: "bool for categorical", fields: map[string]interface{}{"color": true}, column: "color", got: "bool"},
		{name: "number for boolean", fields: map[string]interface{}{"member": 1}, column: "member", got: "number"},
		{name: "fraction for categorical", fields: map[string]interface{}{"bucket": 1.5}, column: "bucket", got: "number"},
		{name: "negative category", fields: map[string]interface{}{"bucket": -1}, column: "bucket", got: "-1"},
		{name: "category above vocabulary", fields: map[string]interface{}{"color": 3}, column: "color", got: "3"},
		{name: "category overflow", fields: map[string]interface{}{"bucket": 1e300}, column: "bucket", got: "1e+300"},
		{name: "integerized string out of range", fields: map[string]interface{}{"bucket": "5"}, column: "bucket", got: `"5"`},
		{name: "list for numerical", fields: map[string]interface{}{"age": []interface{}{1.0}}, column: "age", got: "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToExample(mustStruct(t, tt.fields), testSpec())
			var convErr *errors.ConversionError
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.column, convErr.Column)
			assert.Equal(t, tt.got, convErr.Got)
			assert.Equal(t, -1, convErr.Record)
		})
	}
}

func TestToExamples(t *testing.T) {
	recs := []*structpb.Struct{
		mustStruct(t, map[string]interface{}{"age": 1}),
		mustStruct(t, map[string]interface{}{"age": "bad"}),
		mustStruct(t, map[string]interface{}{"age": 3}),
		mustStruct(t, map[string]interface{}{"member": "bad"}),
	}

	examples, err := ToExamples(recs, testSpec())
	require.Error(t, err)
	require.Len(t, examples, 4)
	assert.NotNil(t, examples[0])
	assert.Nil(t, examples[1])
	assert.NotNil(t, examples[2])
	assert.Nil(t, examples[3])
	assert.Equal(t, dataset.NumericalValue(3), examples[2].Values[0])

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	var convErr *errors.ConversionError
	require.True(t, errors.As(errs[1], &convErr))
	assert.Equal(t, 3, convErr.Record)
	assert.Contains(t, err.Error(), "record 1")
}

func TestFromExample(t *testing.T) {
	spec := testSpec()
	ex := &dataset.Example{Values: []dataset.Value{
		dataset.NumericalValue(2),
		dataset.CategoricalValue(1),
		dataset.MissingValue(),
		dataset.CategoricalValue(4),
	}}

	rec, err := FromExample(ex, spec)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"age":    2.0,
		"color":  "red",
		"bucket": 4.0,
	}, rec.AsMap())

	back, err := ToExample(rec, spec)
	require.NoError(t, err)
	assert.Equal(t, ex.Values, back.Values)

	_, err = FromExample(dataset.NewExample(1), spec)
	assert.Error(t, err)
}

func TestCopyToExampleSet(t *testing.T) {
	spec := testSpec()
	features, err := serving.NewFeaturesDefinition(spec, []int{1, 0})
	require.NoError(t, err)
	set := serving.NewExampleSet(features, 3)

	require.NoError(t, CopyToExampleSet(mustStruct(t, map[string]interface{}{"age": 7, "color": "red", "member": "not read"}), 1, set))
	assert.Equal(t, dataset.NumericalValue(7), set.Value(1, 0))
	assert.Equal(t, dataset.CategoricalValue(1), set.Value(1, 1))
	assert.True(t, set.Value(1, 2).IsMissing())

	err = CopyAllToExampleSet([]*structpb.Struct{
		mustStruct(t, map[string]interface{}{"age": 1}),
		mustStruct(t, map[string]interface{}{"age": "x"}),
	}, set)
	var convErr *errors.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, 1, convErr.Record)
	assert.Equal(t, dataset.NumericalValue(1), set.Value(0, 0))
	assert.True(t, set.Value(1, 0).IsMissing())

	err = CopyAllToExampleSet(make([]*structpb.Struct, 4), set)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
