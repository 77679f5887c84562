package randomforest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/metrics"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/pkg/histogram"
	"github.com/YuminosukeSato/forest/tree"
)

const importanceBarWidth = 16

// AppendModelStructure appends the text dump of every tree:
//
//	Number of trees:2
//	Tree #0
//	Condition:: "a">=1 score:0.000000 training_examples:0 positive_training_examples:0 missing_value_evaluation:0
//	Positive child
//	  Value:: top:0
//	Negative child
//	  Value:: top:1
//
// Each tree is followed by an empty line.
func (m *Model) AppendModelStructure(w *strings.Builder) {
	fmt.Fprintf(w, "Number of trees:%d\n", len(m.trees))
	for i, t := range m.trees {
		fmt.Fprintf(w, "Tree #%d\n", i)
		t.AppendStructure(w, m.spec, m.labelCol)
		w.WriteString("\n")
	}
}

// AppendDescriptionAndStatistics appends a summary of the model: task and
// features, variable importances and structural statistics. With
// fullDefinition the model structure is appended too.
func (m *Model) AppendDescriptionAndStatistics(fullDefinition bool, w *strings.Builder) {
	fmt.Fprintf(w, "Type: %q\n", ModelName)
	fmt.Fprintf(w, "Task: %s\n", m.task)
	fmt.Fprintf(w, "Label: %q\n", m.spec.Columns[m.labelCol].Name)

	fmt.Fprintf(w, "\nInput Features (%d):\n", len(m.inputFeatures))
	for _, f := range m.inputFeatures {
		fmt.Fprintf(w, "\t%s\n", m.spec.Columns[f].Name)
	}
	w.WriteString("\nNo weights\n")

	if len(m.trees) > 0 {
		for _, name := range m.AvailableVariableImportances() {
			importances, err := m.GetVariableImportance(name)
			if err != nil {
				continue
			}
			m.appendVariableImportance(w, name, importances)
		}
	}

	w.WriteString("\n")
	if m.task == model.TaskClassification {
		fmt.Fprintf(w, "Winner takes all: %t\n", m.winnerTakeAll)
	}
	fmt.Fprintf(w, "Number of trees: %d\n", len(m.trees))
	fmt.Fprintf(w, "Total number of nodes: %d\n", m.NumNodes())

	nodesByTree := histogram.New()
	depthByLeafs := histogram.New()
	obsByLeaf := histogram.New()
	attributeInNodes := make(map[int]int)
	attributeInRoots := make(map[int]int)
	conditionInNodes := make(map[string]int)
	conditionInRoots := make(map[string]int)

	for _, t := range m.trees {
		nodesByTree.AddInt(int64(t.NumNodes()))
		t.IterateOnNodes(func(n tree.Node, depth int) {
			switch n := n.(type) {
			case *tree.LeafNode:
				depthByLeafs.AddInt(int64(depth))
				// A leaf swapped in through IterateOnMutableNodes may lack a value.
				if n.Value == nil || n.NumPosTrainingExamplesWithoutWeight < 0 {
					obsByLeaf.AddIgnored()
				} else {
					obsByLeaf.AddInt(n.NumPosTrainingExamplesWithoutWeight)
				}
			case *tree.SplitNode:
				kind := n.Condition.Test.Kind()
				attributeInNodes[n.Condition.Attribute]++
				conditionInNodes[kind]++
				if depth == 0 {
					attributeInRoots[n.Condition.Attribute]++
					conditionInRoots[kind]++
				}
			}
		})
	}

	fmt.Fprintf(w, "\nNumber of nodes by tree:\n%s", nodesByTree)
	fmt.Fprintf(w, "\nDepth by leafs:\n%s", depthByLeafs)
	fmt.Fprintf(w, "\nNumber of training obs by leaf:\n%s", obsByLeaf)

	w.WriteString("\nAttribute in nodes:\n")
	m.appendAttributeCounts(w, attributeInNodes)
	w.WriteString("\nAttribute in nodes with depth <= 0:\n")
	m.appendAttributeCounts(w, attributeInRoots)

	w.WriteString("\nCondition type in nodes:\n")
	appendConditionCounts(w, conditionInNodes)
	w.WriteString("\nCondition type in nodes with depth <= 0:\n")
	appendConditionCounts(w, conditionInRoots)

	if fullDefinition {
		w.WriteString("\n")
		m.AppendModelStructure(w)
	}
}

func (m *Model) appendVariableImportance(w *strings.Builder, name string, importances []model.VariableImportance) {
	fmt.Fprintf(w, "\nVariable Importance: %s:\n", name)
	if len(importances) == 0 {
		return
	}

	hi := importances[0].Importance
	lo := importances[len(importances)-1].Importance
	for i, vi := range importances {
		bar := 0
		if hi > lo {
			bar = int((vi.Importance - lo) / (hi - lo) * importanceBarWidth)
		}
		fmt.Fprintf(w, "    %d. %q %f %s\n", i+1, m.spec.Columns[vi.Attribute].Name, vi.Importance, strings.Repeat("#", bar))
	}
}

func (m *Model) appendAttributeCounts(w *strings.Builder, counts map[int]int) {
	attrs := make([]int, 0, len(counts))
	for attr := range counts {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		if counts[attrs[i]] != counts[attrs[j]] {
			return counts[attrs[i]] > counts[attrs[j]]
		}
		return attrs[i] < attrs[j]
	})
	for _, attr := range attrs {
		col := m.spec.Column(attr)
		name, typ := "#"+strconv.Itoa(attr), "?"
		if col != nil {
			name, typ = strconv.Quote(col.Name), col.Type.String()
		}
		fmt.Fprintf(w, "\t%d : %s [%s]\n", counts[attr], name, typ)
	}
}

func appendConditionCounts(w *strings.Builder, counts map[string]int) {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	for _, kind := range kinds {
		fmt.Fprintf(w, "\t%d : %s\n", counts[kind], kind)
	}
}

// EvaluationSnippet renders the headline metrics of an evaluation on one
// line: "accuracy:<a> logloss:<l>" for classification, "rmse:<r>" for
// regression. Results without predictions have no snippet.
func EvaluationSnippet(e *metrics.EvaluationResults) (string, error) {
	switch e.Task {
	case model.TaskClassification:
		accuracy, err := e.Accuracy()
		if err != nil {
			return "", err
		}
		logLoss, err := e.LogLoss()
		if err != nil {
			return "", err
		}
		return "accuracy:" + formatFloat(accuracy) + " logloss:" + formatFloat(logLoss), nil
	case model.TaskRegression:
		rmse, err := e.RMSE()
		if err != nil {
			return "", err
		}
		return "rmse:" + formatFloat(rmse), nil
	default:
		return "", errors.NewValueError("EvaluationSnippet", "unsupported task "+e.Task.String())
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
