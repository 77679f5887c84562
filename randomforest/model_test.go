package randomforest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/metrics"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/tree"
)

// Builds the model:
//
//	[a>=1]          [a>=3]
//	  ├── b=0         ├── b=2
//	  └── b=1         └── b=1
//
// and the dataset a={0,2,4}, b={1,2,1}.
func buildToyModelAndDataset(t *testing.T, task model.Task) (*Model, *dataset.VerticalDataset) {
	t.Helper()

	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "a", Type: dataset.Numerical},
		{Name: "b", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues:      3,
			IsAlreadyIntegerized: true,
		}},
	}}

	// A regression label is numerical.
	label := func(v float64) dataset.Value { return dataset.CategoricalValue(int(v)) }
	if task == model.TaskRegression {
		spec.Columns[1] = dataset.Column{Name: "b", Type: dataset.Numerical}
		label = dataset.NumericalValue
	}

	ds := dataset.NewVerticalDataset(spec)
	for _, row := range [][2]float64{{0, 1}, {2, 2}, {4, 1}} {
		require.NoError(t, ds.AppendRow(dataset.NumericalValue(row[0]), label(row[1])))
	}

	leaf := func(v int, obs int64) *tree.LeafNode {
		var l *tree.LeafNode
		if task == model.TaskClassification {
			l = tree.NewClassifierLeaf(v)
		} else {
			l = tree.NewRegressorLeaf(float64(v))
		}
		l.NumPosTrainingExamplesWithoutWeight = obs
		return l
	}
	createTree := func(alpha float32, beta, gamma int) *tree.Tree {
		root := tree.NewSplit(
			tree.Condition{Attribute: 0, Test: tree.HigherCondition{Threshold: alpha}},
			leaf(beta, 8), leaf(gamma, 2))
		root.NumPosTrainingExamplesWithoutWeight = 10
		return tree.New(root)
	}

	m, err := New(spec, task, 1, WithInputFeatures(0))
	require.NoError(t, err)
	require.NoError(t, m.AddTree(createTree(1, 0, 1)))
	require.NoError(t, m.AddTree(createTree(3, 2, 1)))
	return m, ds
}

func TestCountFeatureUsage(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	assert.Equal(t, map[int]int64{0: 2}, m.CountFeatureUsage())
}

func TestCallOnAllLeafs(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	var leaves []*tree.LeafNode
	require.NoError(t, m.CallOnAllLeafs(ds, 1, func(leaf *tree.LeafNode) {
		leaves = append(leaves, leaf)
	}))

	require.Len(t, leaves, 2)
	assert.Same(t, m.Trees()[0].Root.(*tree.SplitNode).Positive, leaves[0])
	assert.Same(t, m.Trees()[1].Root.(*tree.SplitNode).Negative, leaves[1])
}

func TestPredictClassification(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	want := &model.ClassificationPrediction{
		Value:        0,
		Distribution: model.Distribution{Counts: []float64{1, 1, 0}, Sum: 2},
	}

	got, err := m.Predict(ds, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ex, err := ds.ExtractExample(1)
	require.NoError(t, err)
	got, err = m.PredictExample(ex)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPredictRegression(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskRegression)

	got, err := m.Predict(ds, 1)
	require.NoError(t, err)
	assert.Equal(t, &model.RegressionPrediction{Value: 0.5}, got)

	ex, err := ds.ExtractExample(1)
	require.NoError(t, err)
	got, err = m.PredictExample(ex)
	require.NoError(t, err)
	assert.Equal(t, &model.RegressionPrediction{Value: 0.5}, got)
}

func TestPredictIsDeterministic(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	first, err := m.Predict(ds, 2)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := m.Predict(ds, 2)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestPredictMissingValue(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	// Both conditions route missing values to the negative child.
	got, err := m.PredictExample(dataset.NewExample(2))
	require.NoError(t, err)
	assert.Equal(t, 1, got.(*model.ClassificationPrediction).Value)
	assert.Equal(t, []float64{0, 2, 0}, got.(*model.ClassificationPrediction).Distribution.Counts)
}

func TestPredictWithoutWinnerTakeAll(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "x", Type: dataset.Numerical},
		{Name: "y", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues: 3,
			Items:           []string{dataset.OutOfVocabularyItem, "no", "yes"},
		}},
	}}
	m, err := New(spec, model.TaskClassification, 1, WithWinnerTakeAll(false))
	require.NoError(t, err)

	withDist := func(top int, counts ...float64) *tree.LeafNode {
		l := tree.NewClassifierLeaf(top)
		d := model.NewDistribution(3)
		for i, c := range counts {
			d.Add(i, c)
		}
		l.Value.(*tree.ClassifierValue).Distribution = d
		return l
	}
	require.NoError(t, m.AddTree(tree.New(withDist(1, 0, 3, 1))))
	require.NoError(t, m.AddTree(tree.New(withDist(2, 0, 1, 3))))
	require.NoError(t, m.AddTree(tree.New(withDist(2, 0, 0, 2))))

	got, err := m.PredictExample(dataset.NewExample(2))
	require.NoError(t, err)
	p := got.(*model.ClassificationPrediction)
	assert.Equal(t, 2, p.Value)
	assert.InDelta(t, 3.0, p.Distribution.Sum, 1e-9)
	assert.InDelta(t, 1.0, p.Distribution.Counts[1], 1e-9)
	assert.InDelta(t, 2.0, p.Distribution.Counts[2], 1e-9)
}

func TestPredictTiesPickLowestClass(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)
	ex := dataset.NewExample(2)
	require.NoError(t, ex.Set(0, dataset.NumericalValue(5)))

	// Votes: tree #0 -> 0, tree #1 -> 2.
	got, err := m.PredictExample(ex)
	require.NoError(t, err)
	assert.Equal(t, 0, got.(*model.ClassificationPrediction).Value)
}

func TestPredictErrors(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	t.Run("row out of range", func(t *testing.T) {
		_, err := m.Predict(ds, 3)
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})

	t.Run("row source without the column", func(t *testing.T) {
		_, err := m.PredictExample(&dataset.Example{})
		var invalidErr *errors.InvalidModelError
		require.True(t, errors.As(err, &invalidErr))
		assert.Equal(t, 0, invalidErr.Attribute)
	})

	t.Run("leaf replaced with a regression value", func(t *testing.T) {
		m, ds := buildToyModelAndDataset(t, model.TaskClassification)
		m.IterateOnMutableNodes(func(slot *tree.Node, depth int) {
			if _, ok := (*slot).(*tree.LeafNode); ok {
				*slot = tree.NewRegressorLeaf(1)
			}
		})
		_, err := m.Predict(ds, 0)
		var invalidErr *errors.InvalidModelError
		assert.True(t, errors.As(err, &invalidErr))
	})

	t.Run("empty model", func(t *testing.T) {
		empty, err := New(m.DataSpec(), model.TaskClassification, 1)
		require.NoError(t, err)
		_, err = empty.Predict(ds, 0)
		assert.True(t, errors.Is(err, errors.ErrEmptyModel))
	})
}

func TestAddTreeValidation(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	tests := []struct {
		name string
		tree *tree.Tree
	}{
		{
			name: "attribute outside the dataspec",
			tree: tree.New(tree.NewSplit(tree.Condition{Attribute: 5, Test: tree.HigherCondition{Threshold: 1}},
				tree.NewClassifierLeaf(0), tree.NewClassifierLeaf(1))),
		},
		{
			name: "leaf kind mismatch",
			tree: tree.New(tree.NewRegressorLeaf(1)),
		},
		{
			name: "class outside the vocabulary",
			tree: tree.New(tree.NewClassifierLeaf(3)),
		},
		{
			name: "condition on the wrong column type",
			tree: tree.New(tree.NewSplit(tree.Condition{Attribute: 1, Test: tree.HigherCondition{Threshold: 1}},
				tree.NewClassifierLeaf(0), tree.NewClassifierLeaf(1))),
		},
		{
			name: "missing child",
			tree: tree.New(tree.NewSplit(tree.Condition{Attribute: 0, Test: tree.HigherCondition{Threshold: 1}},
				tree.NewClassifierLeaf(0), nil)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddTree(tt.tree)
			var invalidErr *errors.InvalidModelError
			assert.True(t, errors.As(err, &invalidErr), "got %v", err)
			assert.Equal(t, 2, m.NumTrees())
		})
	}
}

func TestNewValidation(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "a", Type: dataset.Numerical},
		{Name: "b", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{NumUniqueValues: 3, IsAlreadyIntegerized: true}},
	}}

	_, err := New(spec, model.TaskClassification, 0)
	assert.Error(t, err)
	_, err = New(spec, model.TaskRegression, 1)
	assert.Error(t, err)
	_, err = New(spec, model.TaskClassification, 2)
	assert.Error(t, err)
	_, err = New(spec, model.TaskClassification, 1, WithInputFeatures(7))
	assert.Error(t, err)

	m, err := New(spec, model.TaskRegression, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, m.InputFeatures())
	assert.True(t, m.WinnerTakeAll())
}

func TestIterateOnNodes(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	visited := make(map[tree.Node]bool)
	var depths []int
	m.IterateOnNodes(func(n tree.Node, depth int) {
		assert.False(t, visited[n])
		visited[n] = true
		depths = append(depths, depth)
	})

	assert.Len(t, visited, 6)
	assert.Equal(t, m.NumNodes(), len(visited))
	assert.Equal(t, []int{0, 1, 1, 0, 1, 1}, depths)
}

func TestIterateOnNodesOrder(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	var order []string
	m.IterateOnNodes(func(n tree.Node, _ int) {
		switch n := n.(type) {
		case *tree.SplitNode:
			order = append(order, "split")
		case *tree.LeafNode:
			order = append(order, "leaf"+string(rune('0'+n.Value.(*tree.ClassifierValue).TopValue)))
		}
	})
	assert.Equal(t, []string{"split", "leaf0", "leaf1", "split", "leaf2", "leaf1"}, order)
}

func TestIterateOnMutableNodes(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	visited := make(map[*tree.Node]bool)
	m.IterateOnMutableNodes(func(slot *tree.Node, _ int) {
		assert.False(t, visited[slot])
		visited[slot] = true
	})
	assert.Len(t, visited, 6)
	assert.Equal(t, m.NumNodes(), len(visited))

	// Replace the root of every tree with a single leaf.
	m.IterateOnMutableNodes(func(slot *tree.Node, depth int) {
		if depth == 0 {
			*slot = tree.NewClassifierLeaf(2)
		}
	})
	assert.Equal(t, 2, m.NumNodes())

	got, err := m.Predict(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.(*model.ClassificationPrediction).Value)
}

func TestStatistics(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	assert.Equal(t, 2, m.NumTrees())
	assert.Equal(t, 6, m.NumNodes())
	assert.Equal(t, 4, m.NumLeafs())

	minObs, err := m.MinNumberObs()
	require.NoError(t, err)
	assert.Equal(t, int64(2), minObs)

	empty, err := New(m.DataSpec(), model.TaskClassification, 1)
	require.NoError(t, err)
	_, err = empty.MinNumberObs()
	assert.True(t, errors.Is(err, errors.ErrEmptyModel))
	assert.Equal(t, 0, empty.NumNodes())
	assert.Empty(t, empty.CountFeatureUsage())
}

func TestStructuralVariableImportance(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	tests := []struct {
		name string
		want []model.VariableImportance
	}{
		{name: model.ImportanceNumNodes, want: []model.VariableImportance{{Attribute: 0, Importance: 2}}},
		{name: model.ImportanceNumAsRoot, want: []model.VariableImportance{{Attribute: 0, Importance: 2}}},
		{name: model.ImportanceSumScore, want: []model.VariableImportance{{Attribute: 0, Importance: 0}}},
		{name: model.ImportanceMeanMinDepth, want: []model.VariableImportance{
			{Attribute: 1, Importance: 1},
			{Attribute: 0, Importance: 0},
		}},
		{name: model.ImportanceInvMeanMinDepth, want: []model.VariableImportance{
			{Attribute: 0, Importance: 1},
			{Attribute: 1, Importance: 0.5},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.GetVariableImportance(tt.name)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Attribute, got[i].Attribute)
				assert.InDelta(t, tt.want[i].Importance, got[i].Importance, 1e-4)
			}
		})
	}
}

func TestVariableImportanceSumScoreAndTies(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "x", Type: dataset.Numerical},
		{Name: "y", Type: dataset.Numerical},
		{Name: "z", Type: dataset.Numerical},
		{Name: "label", Type: dataset.Numerical},
	}}
	m, err := New(spec, model.TaskRegression, 3)
	require.NoError(t, err)

	split := func(attr int, score float32, pos, neg tree.Node) *tree.SplitNode {
		return tree.NewSplit(tree.Condition{Attribute: attr, Test: tree.HigherCondition{Threshold: 0}, SplitScore: score}, pos, neg)
	}
	leaf := func() tree.Node { return tree.NewRegressorLeaf(0) }

	require.NoError(t, m.AddTree(tree.New(split(2, 1.5, split(1, 0.5, leaf(), leaf()), leaf()))))
	require.NoError(t, m.AddTree(tree.New(split(1, 1.0, leaf(), leaf()))))

	got, err := m.GetVariableImportance(model.ImportanceSumScore)
	require.NoError(t, err)
	assert.Equal(t, []model.VariableImportance{{Attribute: 1, Importance: 1.5}, {Attribute: 2, Importance: 1.5}}, got)

	got, err = m.GetVariableImportance(model.ImportanceNumAsRoot)
	require.NoError(t, err)
	assert.Equal(t, []model.VariableImportance{{Attribute: 1, Importance: 1}, {Attribute: 2, Importance: 1}}, got)

	// x and label are never used: tree #0 has depth 2, tree #1 depth 1.
	got, err = m.GetVariableImportance(model.ImportanceMeanMinDepth)
	require.NoError(t, err)
	assert.Equal(t, []model.VariableImportance{
		{Attribute: 0, Importance: 1.5},
		{Attribute: 3, Importance: 1.5},
		{Attribute: 1, Importance: 0.5},
		{Attribute: 2, Importance: 0.5},
	}, got, "ties are broken by column index")
}

func TestGetVariableImportanceErrors(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	_, err := m.GetVariableImportance("GAIN")
	var metricErr *errors.UnknownMetricError
	require.True(t, errors.As(err, &metricErr))
	assert.Equal(t, m.AvailableVariableImportances(), metricErr.Available)
	assert.Contains(t, err.Error(), "NUM_NODES")

	empty, err := New(m.DataSpec(), model.TaskClassification, 1)
	require.NoError(t, err)
	_, err = empty.GetVariableImportance(model.ImportanceNumNodes)
	assert.True(t, errors.Is(err, errors.ErrEmptyModel))
}

func TestAppendModelStructure(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	var b strings.Builder
	m.AppendModelStructure(&b)
	assert.Equal(t, `Number of trees:2
Tree #0
Condition:: "a">=1 score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:0
Positive child
  Value:: top:0
Negative child
  Value:: top:1

Tree #1
Condition:: "a">=3 score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:0
Positive child
  Value:: top:2
Negative child
  Value:: top:1

`, b.String())
}

func TestAppendModelStructureNested(t *testing.T) {
	spec := &dataset.DataSpec{Columns: []dataset.Column{
		{Name: "age", Type: dataset.Numerical},
		{Name: "color", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues: 4,
			Items:           []string{dataset.OutOfVocabularyItem, "red", "green", "blue"},
		}},
		{Name: "member", Type: dataset.Boolean},
		{Name: "label", Type: dataset.Categorical, Categorical: &dataset.CategoricalSpec{
			NumUniqueValues: 3,
			Items:           []string{dataset.OutOfVocabularyItem, "no", "yes"},
		}},
	}}
	m, err := New(spec, model.TaskClassification, 3)
	require.NoError(t, err)

	root := tree.NewSplit(
		tree.Condition{Attribute: 0, Test: tree.HigherCondition{Threshold: 30.5}, NAValue: true,
			SplitScore: 0.25, NumTrainingExamplesWithoutWeight: 100, NumPosTrainingExamplesWithoutWeight: 40},
		tree.NewSplit(
			tree.Condition{Attribute: 1, Test: tree.NewContainsBitmapCondition(4, []int{3, 1})},
			tree.NewClassifierLeaf(2),
			tree.NewSplit(tree.Condition{Attribute: 2, Test: tree.TrueValueCondition{}},
				tree.NewClassifierLeaf(2), tree.NewClassifierLeaf(1))),
		tree.NewSplit(
			tree.Condition{Attribute: 2, Test: tree.NACondition{}, NAValue: true},
			tree.NewClassifierLeaf(1), tree.NewClassifierLeaf(2)))
	require.NoError(t, m.AddTree(tree.New(root)))

	var b strings.Builder
	m.AppendModelStructure(&b)
	assert.Equal(t, `Number of trees:1
Tree #0
Condition:: "age">=30.5 score:0.250000 training_examples:100 positive_training_examples:40 missing_value_evaluation:1
Positive child
  Condition:: "color" in {red, blue} score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:0
  Positive child
    Value:: top:yes
  Negative child
    Condition:: "member" is true score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:0
    Positive child
      Value:: top:yes
    Negative child
      Value:: top:no
Negative child
  Condition:: "member" is NA score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:1
  Positive child
    Value:: top:no
  Negative child
    Value:: top:yes

`, b.String())
}

func TestAppendDescriptionAndStatistics(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	var b strings.Builder
	m.AppendDescriptionAndStatistics(false, &b)
	description := b.String()

	for _, want := range []string{
		`Type: "RANDOM_FOREST"`,
		"Task: CLASSIFICATION",
		`Label: "b"`,
		"Number of trees: 2",
		"Total number of nodes: 6",
		"Number of nodes by tree:\nCount: 2 Average: 3",
		"Depth by leafs:\nCount: 4 Average: 1",
		"2 : HigherCondition",
		"Variable Importance: MEAN_MIN_DEPTH:",
		"Winner takes all: true",
	} {
		assert.Contains(t, description, want)
	}
	assert.NotContains(t, description, "Tree #0")

	b.Reset()
	m.AppendDescriptionAndStatistics(true, &b)
	assert.Contains(t, b.String(), "Tree #1\nCondition:: \"a\">=3")
}

func TestAppendDescriptionRegression(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskRegression)

	var b strings.Builder
	m.AppendDescriptionAndStatistics(false, &b)
	assert.Contains(t, b.String(), "Task: REGRESSION")
	assert.NotContains(t, b.String(), "Winner takes all")
}

func TestAppendDescriptionIgnoresLeafWithoutValue(t *testing.T) {
	m, _ := buildToyModelAndDataset(t, model.TaskClassification)

	var b strings.Builder
	m.AppendDescriptionAndStatistics(false, &b)
	assert.Contains(t, b.String(), "Number of training obs by leaf:\nCount: 4 Average: 5 StdDev: 3\nMin: 2 Max: 8 Ignored: 0\n")

	replaced := false
	m.IterateOnMutableNodes(func(slot *tree.Node, _ int) {
		if _, ok := (*slot).(*tree.LeafNode); ok && !replaced {
			*slot = &tree.LeafNode{}
			replaced = true
		}
	})

	b.Reset()
	m.AppendDescriptionAndStatistics(false, &b)
	assert.Contains(t, b.String(), "Number of training obs by leaf:\nCount: 3 Average: 4 StdDev:")
	assert.Contains(t, b.String(), "Ignored: 1\n")
}

func TestEvaluationSnippet(t *testing.T) {
	classification := &metrics.EvaluationResults{
		Task:             model.TaskClassification,
		CountPredictions: 10,
		Classification: &metrics.ClassificationResults{
			Confusion:  mat.NewDense(2, 2, []float64{4, 1, 1, 4}),
			SumLogLoss: 10,
		},
	}
	snippet, err := EvaluationSnippet(classification)
	require.NoError(t, err)
	assert.Equal(t, "accuracy:0.8 logloss:1", snippet)

	regression := &metrics.EvaluationResults{
		Task:             model.TaskRegression,
		CountPredictions: 4,
		Regression:       &metrics.RegressionResults{SumSquareError: 1},
	}
	snippet, err = EvaluationSnippet(regression)
	require.NoError(t, err)
	assert.Equal(t, "rmse:0.5", snippet)

	_, err = EvaluationSnippet(metrics.NewClassificationResults(2))
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = EvaluationSnippet(metrics.NewRegressionResults())
	assert.True(t, errors.As(err, &valueErr))

	_, err = EvaluationSnippet(&metrics.EvaluationResults{})
	assert.True(t, errors.As(err, &valueErr))
}

func TestEvaluate(t *testing.T) {
	m, ds := buildToyModelAndDataset(t, model.TaskClassification)

	results, err := metrics.Evaluate(m, ds, m.LabelColumn(), m.NumClasses())
	require.NoError(t, err)

	// Predictions: a=0 -> {0:0,1:2} class 1; a=2 -> class 0; a=4 -> {0:1,2:1} class 0.
	// Labels: 1, 2, 1.
	accuracy, err := results.Accuracy()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, accuracy, 1e-9)
	assert.Equal(t, 3.0, results.CountPredictions)
}
