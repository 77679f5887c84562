package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// tablePredictor returns the prediction stored for each row.
type tablePredictor struct {
	task  model.Task
	preds []model.Prediction
}

func (p *tablePredictor) Task() model.Task { return p.task }

func (p *tablePredictor) Predict(_ dataset.RowSource, row int) (model.Prediction, error) {
	if row >= len(p.preds) {
		return nil, errors.NewDimensionError("tablePredictor.Predict", len(p.preds), row+1, 0)
	}
	return p.preds[row], nil
}

func classification(value int, counts ...float64) *model.ClassificationPrediction {
	d := model.NewDistribution(len(counts))
	for c, n := range counts {
		d.Add(c, n)
	}
	return &model.ClassificationPrediction{Value: value, Distribution: *d}
}

func TestEvaluateClassification(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "label", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{NumUniqueValues: 3, IsAlreadyIntegerized: true}},
	}}
	ds := dataset.NewVerticalDataset(spec)
	for _, v := range []dataset.Value{
		dataset.CategoricalValue(1), dataset.CategoricalValue(2), dataset.MissingValue(), dataset.CategoricalValue(1),
	} {
		require.NoError(t, ds.AppendRow(v))
	}

	p := &tablePredictor{task: model.TaskClassification, preds: []model.Prediction{
		classification(1, 0, 1, 1),
		classification(1, 0, 1, 1),
		classification(0, 1, 0, 0),
		classification(2, 0, 0, 1),
	}}

	results, err := Evaluate(p, ds, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, results.CountPredictions)
	assert.Equal(t, 1.0, results.Classification.Confusion.At(1, 1))
	assert.Equal(t, 1.0, results.Classification.Confusion.At(2, 1))
	assert.Equal(t, 1.0, results.Classification.Confusion.At(1, 2))

	accuracy, err := results.Accuracy()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, accuracy, 1e-12)

	logLoss, err := results.LogLoss()
	require.NoError(t, err)
	want := (2*math.Log(2) - math.Log(minProbability)) / 3
	assert.InDelta(t, want, logLoss, 1e-9)

	_, err = results.RMSE()
	assert.Error(t, err)
	_, err = results.MAE()
	assert.Error(t, err)
}

func TestEvaluateRegression(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{{Name: "y", Type: dataset.Numerical}}}
	ds := dataset.NewVerticalDataset(spec)
	for _, y := range []float64{1, 2, 3, 4} {
		require.NoError(t, ds.AppendRow(dataset.NumericalValue(y)))
	}

	p := &tablePredictor{task: model.TaskRegression}
	for _, v := range []float64{1.5, 2.5, 2.5, 3.5} {
		p.preds = append(p.preds, &model.RegressionPrediction{Value: v})
	}

	results, err := Evaluate(p, ds, 0, 0)
	require.NoError(t, err)

	rmse, err := results.RMSE()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rmse, 1e-12)

	mae, err := results.MAE()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mae, 1e-12)

	r2, err := results.R2()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, r2, 1e-12)

	_, err = results.Accuracy()
	assert.Error(t, err)
}

func TestEvaluateErrors(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{{Name: "y", Type: dataset.Numerical}}}
	ds := dataset.NewVerticalDataset(spec)
	require.NoError(t, ds.AppendRow(dataset.NumericalValue(1)))

	_, err := Evaluate(&tablePredictor{task: model.TaskRegression}, ds, 3, 0)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = Evaluate(&tablePredictor{task: model.TaskUndefined}, ds, 0, 0)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = Evaluate(&tablePredictor{task: model.TaskRegression}, ds, 0, 0)
	assert.True(t, errors.As(err, &dimErr))

	empty, err := Evaluate(&tablePredictor{task: model.TaskRegression}, dataset.NewVerticalDataset(spec), 0, 0)
	require.NoError(t, err)
	_, err = empty.RMSE()
	assert.Error(t, err)
	_, err = empty.R2()
	assert.Error(t, err)
}

func TestAddClassificationOutOfRange(t *testing.T) {
	results := NewClassificationResults(2)

	err := results.AddClassification(3, classification(0, 1, 0))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	err = NewRegressionResults().AddClassification(0, classification(0, 1, 0))
	assert.Error(t, err)
}
