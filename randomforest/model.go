// Package randomforest implements the random forest model: an ordered list of
// decision trees with prediction, visitation, structural statistics, variable
// importances and text reports.
package randomforest

import (
	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/tree"
)

// ModelName is the type tag of the model in reports and model files.
const ModelName = "RANDOM_FOREST"

// Model is a random forest. Trees are appended with AddTree and then read
// concurrently. IterateOnMutableNodes needs external synchronization.
type Model struct {
	spec          *dataset.DataSpec
	task          model.Task
	labelCol      int
	inputFeatures []int
	winnerTakeAll bool
	trees         []*tree.Tree
}

var _ model.Model = (*Model)(nil)

// New creates a model without trees.
func New(spec *dataset.DataSpec, task model.Task, labelCol int, opts ...Option) (*Model, error) {
	if spec == nil {
		return nil, errors.NewValidationError("spec", "dataspec is required", nil)
	}
	label := spec.Column(labelCol)
	if label == nil {
		return nil, errors.NewInvalidModelError("New", "label column outside the dataspec", labelCol)
	}
	switch task {
	case model.TaskClassification:
		if label.Type != dataset.Categorical || label.Categorical == nil {
			return nil, errors.NewInvalidModelError("New", "classification label must be a categorical column", labelCol)
		}
	case model.TaskRegression:
		if label.Type != dataset.Numerical {
			return nil, errors.NewInvalidModelError("New", "regression label must be a numerical column", labelCol)
		}
	default:
		return nil, errors.NewValidationError("task", "unsupported task", task.String())
	}

	m := &Model{
		spec:          spec,
		task:          task,
		labelCol:      labelCol,
		winnerTakeAll: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.inputFeatures == nil {
		for i := range spec.Columns {
			if i != labelCol {
				m.inputFeatures = append(m.inputFeatures, i)
			}
		}
	}
	for _, f := range m.inputFeatures {
		if spec.Column(f) == nil {
			return nil, errors.NewInvalidModelError("New", "input feature outside the dataspec", f)
		}
	}
	return m, nil
}

// AddTree validates t against the dataspec and the task, then appends it.
func (m *Model) AddTree(t *tree.Tree) error {
	if t == nil {
		return errors.NewInvalidModelError("AddTree", "nil tree", -1)
	}
	if err := t.Validate(m.spec, m.task, m.labelCol); err != nil {
		return errors.Wrapf(err, "tree #%d", len(m.trees))
	}
	m.trees = append(m.trees, t)
	return nil
}

// Task implements model.Predictor.
func (m *Model) Task() model.Task { return m.task }

// DataSpec returns the schema shared with the caller.
func (m *Model) DataSpec() *dataset.DataSpec { return m.spec }

// LabelColumn returns the index of the label column.
func (m *Model) LabelColumn() int { return m.labelCol }

// InputFeatures returns the input feature columns.
func (m *Model) InputFeatures() []int { return m.inputFeatures }

// WinnerTakeAll reports whether classification uses one vote per tree.
func (m *Model) WinnerTakeAll() bool { return m.winnerTakeAll }

// Trees returns the trees in order. The slice must not be modified.
func (m *Model) Trees() []*tree.Tree { return m.trees }

// NumTrees returns the number of trees.
func (m *Model) NumTrees() int { return len(m.trees) }

// NumClasses returns the size of the label vocabulary, or 0 for regression.
func (m *Model) NumClasses() int {
	if m.task != model.TaskClassification {
		return 0
	}
	return m.spec.Columns[m.labelCol].Categorical.NumUniqueValues
}

func (m *Model) checkNotEmpty(op string) error {
	if len(m.trees) == 0 {
		return errors.Wrap(errors.ErrEmptyModel, op)
	}
	return nil
}
