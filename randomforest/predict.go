package randomforest

import (
	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/tree"
)

// Predict aggregates the leaves reached by row in every tree.
//
// Classification sums one vote per tree (or the normalized leaf
// distributions when WinnerTakeAll is false) and predicts the class with the
// most votes, the lowest index on ties. Regression averages the leaf values.
func (m *Model) Predict(src dataset.RowSource, row int) (model.Prediction, error) {
	if err := m.checkNotEmpty("Model.Predict"); err != nil {
		return nil, err
	}
	if err := dataset.CheckRow("Model.Predict", src, row); err != nil {
		return nil, err
	}

	switch m.task {
	case model.TaskClassification:
		return m.predictClassification(src, row)
	case model.TaskRegression:
		return m.predictRegression(src, row)
	default:
		return nil, errors.NewInvalidModelError("Model.Predict", "unsupported task "+m.task.String(), -1)
	}
}

// PredictExample predicts a single example.
func (m *Model) PredictExample(ex *dataset.Example) (model.Prediction, error) {
	return m.Predict(ex, 0)
}

func (m *Model) predictClassification(src dataset.RowSource, row int) (model.Prediction, error) {
	dist := model.NewDistribution(m.NumClasses())
	for _, t := range m.trees {
		leaf, err := t.GetLeaf(src, row)
		if err != nil {
			return nil, err
		}
		v, ok := leaf.Value.(*tree.ClassifierValue)
		if !ok {
			return nil, errors.NewInvalidModelError("Model.Predict", "leaf value does not match the classification task", -1)
		}
		if v.TopValue < 0 || v.TopValue >= dist.NumClasses() {
			return nil, errors.NewInvalidModelError("Model.Predict", "leaf class outside the label vocabulary", -1)
		}
		if !m.winnerTakeAll && v.Distribution != nil && v.Distribution.Sum > 0 {
			dist.AddDistribution(v.Distribution.Normalized(), 1)
		} else {
			dist.Add(v.TopValue, 1)
		}
	}
	return &model.ClassificationPrediction{Value: dist.TopClass(), Distribution: *dist}, nil
}

func (m *Model) predictRegression(src dataset.RowSource, row int) (model.Prediction, error) {
	var sum float64
	for _, t := range m.trees {
		leaf, err := t.GetLeaf(src, row)
		if err != nil {
			return nil, err
		}
		v, ok := leaf.Value.(*tree.RegressorValue)
		if !ok {
			return nil, errors.NewInvalidModelError("Model.Predict", "leaf value does not match the regression task", -1)
		}
		sum += v.TopValue
	}
	return &model.RegressionPrediction{Value: sum / float64(len(m.trees))}, nil
}

// CallOnAllLeafs calls fn on the leaf reached by row in each tree, in tree order.
func (m *Model) CallOnAllLeafs(src dataset.RowSource, row int, fn func(leaf *tree.LeafNode)) error {
	if err := dataset.CheckRow("Model.CallOnAllLeafs", src, row); err != nil {
		return err
	}
	for _, t := range m.trees {
		leaf, err := t.GetLeaf(src, row)
		if err != nil {
			return err
		}
		fn(leaf)
	}
	return nil
}
