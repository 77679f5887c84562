package modelio

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/randomforest"
	"github.com/YuminosukeSato/forest/tree"
)

// Encode writes the definition of m to w. Decode(Encode(m)) rebuilds a model
// with the same structure and predictions.
func Encode(w io.Writer, m *randomforest.Model) error {
	doc, err := newDocument(m)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "modelio: failed to encode model definition")
	}
	return enc.Close()
}

// SaveFile writes the definition of m to path.
func SaveFile(path string, m *randomforest.Model) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return errors.NewModelError("modelio.SaveFile", "create", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewModelError("modelio.SaveFile", "close", cerr)
		}
	}()
	return Encode(f, m)
}

func newDocument(m *randomforest.Model) (*document, error) {
	spec := m.DataSpec()
	wta := m.WinnerTakeAll()
	doc := &document{
		Type:          randomforest.ModelName,
		Task:          m.Task().String(),
		Label:         spec.Columns[m.LabelColumn()].Name,
		WinnerTakeAll: &wta,
		DataSpec:      make([]columnDoc, len(spec.Columns)),
	}
	for _, f := range m.InputFeatures() {
		doc.InputFeatures = append(doc.InputFeatures, spec.Columns[f].Name)
	}
	for i, c := range spec.Columns {
		doc.DataSpec[i] = newColumnDoc(c)
	}

	label := &spec.Columns[m.LabelColumn()]
	for i, t := range m.Trees() {
		n, err := newNodeDoc(t.Root, spec, label)
		if err != nil {
			return nil, errors.Wrapf(err, "tree #%d", i)
		}
		doc.Trees = append(doc.Trees, n)
	}
	return doc, nil
}

func newColumnDoc(c dataset.Column) columnDoc {
	out := columnDoc{Name: c.Name, Type: c.Type.String()}
	if c.Categorical != nil {
		out.NumUniqueValues = c.Categorical.NumUniqueValues
		out.IsAlreadyIntegerized = c.Categorical.IsAlreadyIntegerized
		out.Items = c.Categorical.Items
	}
	if c.Numerical != nil {
		out.Numerical = &numericalDoc{Mean: c.Numerical.Mean, Min: c.Numerical.Min, Max: c.Numerical.Max}
	}
	return out
}

func newNodeDoc(n tree.Node, spec *dataset.DataSpec, label *dataset.Column) (*nodeDoc, error) {
	switch n := n.(type) {
	case *tree.SplitNode:
		cond, err := newConditionDoc(&n.Condition, spec)
		if err != nil {
			return nil, err
		}
		positive, err := newNodeDoc(n.Positive, spec, label)
		if err != nil {
			return nil, err
		}
		negative, err := newNodeDoc(n.Negative, spec, label)
		if err != nil {
			return nil, err
		}
		return &nodeDoc{
			Condition:              cond,
			Positive:               positive,
			Negative:               negative,
			NumPosTrainingExamples: n.NumPosTrainingExamplesWithoutWeight,
		}, nil
	case *tree.LeafNode:
		out := &nodeDoc{NumPosTrainingExamples: n.NumPosTrainingExamplesWithoutWeight}
		var v scalar
		switch value := n.Value.(type) {
		case *tree.ClassifierValue:
			v = categoryScalar(label, value.TopValue)
			if value.Distribution != nil {
				out.Distribution = append([]float64(nil), value.Distribution.Counts...)
			}
		case *tree.RegressorValue:
			v = scalar(strconv.FormatFloat(value.TopValue, 'g', -1, 64))
		default:
			return nil, errors.NewInvalidModelError("modelio.Encode", "leaf without value", -1)
		}
		out.Value = &v
		return out, nil
	default:
		return nil, errors.NewInvalidModelError("modelio.Encode", "missing node", -1)
	}
}

func newConditionDoc(c *tree.Condition, spec *dataset.DataSpec) (*conditionDoc, error) {
	col := spec.Column(c.Attribute)
	if col == nil || c.Test == nil {
		return nil, errors.NewInvalidModelError("modelio.Encode", "condition references a column outside the dataspec", c.Attribute)
	}
	out := &conditionDoc{
		Attribute:              col.Name,
		Type:                   c.Test.Kind(),
		NAValue:                c.NAValue,
		SplitScore:             c.SplitScore,
		NumTrainingExamples:    c.NumTrainingExamplesWithoutWeight,
		NumPosTrainingExamples: c.NumPosTrainingExamplesWithoutWeight,
	}

	var elements []int
	switch t := c.Test.(type) {
	case tree.HigherCondition:
		threshold := t.Threshold
		out.Threshold = &threshold
	case tree.ContainsCondition:
		elements = t.Elements
	case tree.ContainsBitmapCondition:
		elements = t.Elements()
	}
	for _, e := range elements {
		out.Elements = append(out.Elements, categoryScalar(col, e))
	}
	return out, nil
}

func categoryScalar(col *dataset.Column, v int) scalar {
	if col.Categorical == nil {
		return scalar(strconv.Itoa(v))
	}
	return scalar(col.Categorical.ItemString(v))
}
