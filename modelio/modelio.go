// Package modelio reads and writes human-editable random forest definitions.
//
// A definition is a YAML document holding the dataspec, the task, the label,
// and the trees as nested nodes. JSON is valid YAML, so JSON definitions are
// accepted by Decode as well. Columns are referenced by name and categorical
// values by vocabulary item (or by integer for integerized columns).
//
//	type: RANDOM_FOREST
//	task: CLASSIFICATION
//	label: b
//	input_features: [a]
//	dataspec:
//	  - {name: a, type: NUMERICAL}
//	  - {name: b, type: CATEGORICAL, num_unique_values: 3, is_already_integerized: true}
//	trees:
//	  - condition: {attribute: a, type: HigherCondition, threshold: 1}
//	    positive: {value: 0}
//	    negative: {value: 1}
package modelio

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/randomforest"
	"github.com/YuminosukeSato/forest/tree"
)

// document is the top-level structure of a model definition.
type document struct {
	Type          string      `yaml:"type"`
	Task          string      `yaml:"task"`
	Label         string      `yaml:"label"`
	WinnerTakeAll *bool       `yaml:"winner_take_all,omitempty"`
	InputFeatures []string    `yaml:"input_features,omitempty,flow"`
	DataSpec      []columnDoc `yaml:"dataspec"`
	Trees         []*nodeDoc  `yaml:"trees"`
}

type columnDoc struct {
	Name                 string        `yaml:"name"`
	Type                 string        `yaml:"type"`
	NumUniqueValues      int           `yaml:"num_unique_values,omitempty"`
	IsAlreadyIntegerized bool          `yaml:"is_already_integerized,omitempty"`
	Items                []string      `yaml:"items,omitempty,flow"`
	Numerical            *numericalDoc `yaml:"numerical,omitempty"`
}

type numericalDoc struct {
	Mean float64 `yaml:"mean"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// nodeDoc is a split node when Condition is set, a leaf otherwise.
type nodeDoc struct {
	Condition              *conditionDoc `yaml:"condition,omitempty"`
	Positive               *nodeDoc      `yaml:"positive,omitempty"`
	Negative               *nodeDoc      `yaml:"negative,omitempty"`
	Value                  *scalar       `yaml:"value,omitempty"`
	Distribution           []float64     `yaml:"distribution,omitempty,flow"`
	NumPosTrainingExamples int64         `yaml:"num_pos_training_examples,omitempty"`
}

type conditionDoc struct {
	Attribute              string   `yaml:"attribute"`
	Type                   string   `yaml:"type"`
	Threshold              *float32 `yaml:"threshold,omitempty"`
	Elements               []scalar `yaml:"elements,omitempty,flow"`
	NAValue                bool     `yaml:"na_value,omitempty"`
	SplitScore             float32  `yaml:"split_score,omitempty"`
	NumTrainingExamples    int64    `yaml:"num_training_examples,omitempty"`
	NumPosTrainingExamples int64    `yaml:"num_pos_training_examples,omitempty"`
}

// scalar is a plain YAML scalar: a vocabulary item, a class index or a number.
type scalar string

// MarshalYAML emits numbers unquoted. Any other scalar is encoded as a
// string, quoted when it would otherwise read back as null, bool or number.
func (s scalar) MarshalYAML() (interface{}, error) {
	if _, err := strconv.ParseFloat(string(s), 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: string(s)}, nil
	}
	return string(s), nil
}

// Decode reads a model definition from r.
func Decode(r io.Reader) (*randomforest.Model, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.NewValidationError("model", "empty model definition", nil)
		}
		return nil, errors.Wrap(err, "modelio: failed to parse model definition")
	}
	return doc.build()
}

// LoadFile reads the model definition stored at path.
func LoadFile(path string) (*randomforest.Model, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.NewModelError("modelio.LoadFile", "open", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "modelio: %s", path)
	}
	return m, nil
}

func (d *document) build() (*randomforest.Model, error) {
	if d.Type != "" && d.Type != randomforest.ModelName {
		return nil, errors.NewValidationError("type", "unsupported model type", d.Type)
	}
	task, err := model.ParseTask(d.Task)
	if err != nil {
		return nil, err
	}

	spec := &dataset.DataSpec{Columns: make([]dataset.Column, len(d.DataSpec))}
	for i, c := range d.DataSpec {
		col, err := c.column()
		if err != nil {
			return nil, errors.Wrapf(err, "dataspec column #%d", i)
		}
		spec.Columns[i] = col
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	labelCol, ok := spec.ColumnIndex(d.Label)
	if !ok {
		return nil, errors.NewValidationError("label", "unknown column", d.Label)
	}

	var opts []randomforest.Option
	if d.WinnerTakeAll != nil {
		opts = append(opts, randomforest.WithWinnerTakeAll(*d.WinnerTakeAll))
	}
	if d.InputFeatures != nil {
		features := make([]int, len(d.InputFeatures))
		for i, name := range d.InputFeatures {
			col, ok := spec.ColumnIndex(name)
			if !ok {
				return nil, errors.NewValidationError("input_features", "unknown column", name)
			}
			features[i] = col
		}
		opts = append(opts, randomforest.WithInputFeatures(features...))
	}

	m, err := randomforest.New(spec, task, labelCol, opts...)
	if err != nil {
		return nil, err
	}

	b := builder{spec: spec, task: task, label: &spec.Columns[labelCol]}
	for i, root := range d.Trees {
		node, err := b.node(root)
		if err != nil {
			return nil, errors.Wrapf(err, "tree #%d", i)
		}
		if err := m.AddTree(tree.New(node)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c *columnDoc) column() (dataset.Column, error) {
	t, err := dataset.ParseColumnType(c.Type)
	if err != nil {
		return dataset.Column{}, err
	}
	col := dataset.Column{Name: c.Name, Type: t}
	switch t {
	case dataset.Categorical:
		numUnique := c.NumUniqueValues
		if numUnique == 0 {
			numUnique = len(c.Items)
		}
		col.Categorical = &dataset.CategoricalSpec{
			NumUniqueValues:      numUnique,
			IsAlreadyIntegerized: c.IsAlreadyIntegerized,
			Items:                c.Items,
		}
	case dataset.Numerical:
		if c.Numerical != nil {
			col.Numerical = &dataset.NumericalSpec{Mean: c.Numerical.Mean, Min: c.Numerical.Min, Max: c.Numerical.Max}
		}
	}
	return col, nil
}

// builder converts node documents into tree nodes.
type builder struct {
	spec  *dataset.DataSpec
	task  model.Task
	label *dataset.Column
}

func (b *builder) node(n *nodeDoc) (tree.Node, error) {
	if n == nil {
		return nil, errors.NewInvalidModelError("modelio.Decode", "missing node", -1)
	}
	if n.Condition == nil {
		leaf, err := b.leaf(n)
		if err != nil {
			return nil, err
		}
		leaf.NumPosTrainingExamplesWithoutWeight = n.NumPosTrainingExamples
		return leaf, nil
	}

	cond, err := b.condition(n.Condition)
	if err != nil {
		return nil, err
	}
	positive, err := b.node(n.Positive)
	if err != nil {
		return nil, errors.Wrap(err, "positive child")
	}
	negative, err := b.node(n.Negative)
	if err != nil {
		return nil, errors.Wrap(err, "negative child")
	}
	split := tree.NewSplit(cond, positive, negative)
	split.NumPosTrainingExamplesWithoutWeight = n.NumPosTrainingExamples
	return split, nil
}

func (b *builder) leaf(n *nodeDoc) (*tree.LeafNode, error) {
	if n.Value == nil {
		return nil, errors.NewInvalidModelError("modelio.Decode", "leaf without value", -1)
	}
	if n.Positive != nil || n.Negative != nil {
		return nil, errors.NewInvalidModelError("modelio.Decode", "leaf with children", -1)
	}

	switch b.task {
	case model.TaskClassification:
		top, err := categoryValue(b.label, string(*n.Value))
		if err != nil {
			return nil, err
		}
		leaf := tree.NewClassifierLeaf(top)
		if n.Distribution != nil {
			dist := model.NewDistribution(len(n.Distribution))
			for class, count := range n.Distribution {
				dist.Add(class, count)
			}
			leaf.Value.(*tree.ClassifierValue).Distribution = dist
		}
		return leaf, nil
	default:
		v, err := strconv.ParseFloat(string(*n.Value), 64)
		if err != nil {
			return nil, errors.NewValidationError("value", "regression leaf value must be a number", string(*n.Value))
		}
		return tree.NewRegressorLeaf(v), nil
	}
}

func (b *builder) condition(c *conditionDoc) (tree.Condition, error) {
	attr, ok := b.spec.ColumnIndex(c.Attribute)
	if !ok {
		return tree.Condition{}, errors.NewValidationError("attribute", "unknown column", c.Attribute)
	}
	col := &b.spec.Columns[attr]

	cond := tree.Condition{
		Attribute:                           attr,
		NAValue:                             c.NAValue,
		SplitScore:                          c.SplitScore,
		NumTrainingExamplesWithoutWeight:    c.NumTrainingExamples,
		NumPosTrainingExamplesWithoutWeight: c.NumPosTrainingExamples,
	}

	switch c.Type {
	case tree.HigherCondition{}.Kind():
		if c.Threshold == nil {
			return cond, errors.NewValidationError("threshold", "required by "+c.Type, nil)
		}
		cond.Test = tree.HigherCondition{Threshold: *c.Threshold}
	case tree.ContainsCondition{}.Kind(), tree.ContainsBitmapCondition{}.Kind():
		elements := make([]int, len(c.Elements))
		for i, e := range c.Elements {
			v, err := categoryValue(col, string(e))
			if err != nil {
				return cond, err
			}
			elements[i] = v
		}
		if c.Type == (tree.ContainsCondition{}).Kind() {
			cond.Test = tree.ContainsCondition{Elements: elements}
		} else {
			if col.Categorical == nil {
				return cond, errors.NewInvalidModelError("modelio.Decode", c.Type+" on a non categorical column", attr)
			}
			cond.Test = tree.NewContainsBitmapCondition(col.Categorical.NumUniqueValues, elements)
		}
	case tree.TrueValueCondition{}.Kind():
		cond.Test = tree.TrueValueCondition{}
	case tree.NACondition{}.Kind():
		cond.Test = tree.NACondition{}
	default:
		return cond, errors.NewValidationError("type", "unknown condition type", c.Type)
	}
	return cond, nil
}

// categoryValue resolves a vocabulary item, or an integer for integerized
// columns.
func categoryValue(col *dataset.Column, s string) (int, error) {
	if col.Categorical == nil {
		return 0, errors.NewInvalidModelError("modelio.Decode", "column "+strconv.Quote(col.Name)+" is not categorical", -1)
	}
	if !col.Categorical.IsAlreadyIntegerized {
		if v, ok := col.Categorical.ItemIndex(s); ok {
			return v, nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError(col.Name, "unknown categorical value", s)
	}
	return v, nil
}
