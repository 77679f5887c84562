package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/forest/dataset"
)

// AppendStructure appends the text dump of the tree. labelCol is used to
// render classification leaves with the label vocabulary.
func (t *Tree) AppendStructure(w *strings.Builder, spec *dataset.DataSpec, labelCol int) {
	appendNode(w, t.Root, spec, spec.Column(labelCol), "")
}

func appendNode(w *strings.Builder, node Node, spec *dataset.DataSpec, label *dataset.Column, indent string) {
	switch n := node.(type) {
	case *SplitNode:
		c := &n.Condition
		na := 0
		if c.NAValue {
			na = 1
		}
		fmt.Fprintf(w, "%sCondition:: %s score:%f training_examples:%d positive_training_examples:%d missing_value_evaluation:%d\n",
			indent, c.Describe(spec), c.SplitScore, c.NumTrainingExamplesWithoutWeight, c.NumPosTrainingExamplesWithoutWeight, na)
		w.WriteString(indent + "Positive child\n")
		appendNode(w, n.Positive, spec, label, indent+"  ")
		w.WriteString(indent + "Negative child\n")
		appendNode(w, n.Negative, spec, label, indent+"  ")
	case *LeafNode:
		w.WriteString(indent + "Value:: top:" + leafTop(n.Value, label) + "\n")
	}
}

func leafTop(v LeafValue, label *dataset.Column) string {
	switch v := v.(type) {
	case *ClassifierValue:
		if label != nil && label.Categorical != nil {
			return label.Categorical.ItemString(v.TopValue)
		}
		return strconv.Itoa(v.TopValue)
	case *RegressorValue:
		return strconv.FormatFloat(v.TopValue, 'g', -1, 64)
	default:
		return "?"
	}
}
