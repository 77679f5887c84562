package randomforest

import (
	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/pkg/errors"
	"github.com/YuminosukeSato/forest/tree"
)

// variableImportances lists the structural importances in report order.
var variableImportances = []struct {
	name    string
	compute func(m *Model) []model.VariableImportance
}{
	{model.ImportanceMeanMinDepth, (*Model).meanMinDepth},
	{model.ImportanceInvMeanMinDepth, (*Model).invMeanMinDepth},
	{model.ImportanceNumAsRoot, (*Model).numAsRoot},
	{model.ImportanceNumNodes, (*Model).numNodes},
	{model.ImportanceSumScore, (*Model).sumScore},
}

// AvailableVariableImportances returns the names accepted by
// GetVariableImportance.
func (m *Model) AvailableVariableImportances() []string {
	names := make([]string, len(variableImportances))
	for i, vi := range variableImportances {
		names[i] = vi.name
	}
	return names
}

// GetVariableImportance computes a structural variable importance. Entries
// are sorted by decreasing importance, then by increasing column index.
func (m *Model) GetVariableImportance(name string) ([]model.VariableImportance, error) {
	for _, vi := range variableImportances {
		if vi.name != name {
			continue
		}
		if err := m.checkNotEmpty("Model.GetVariableImportance"); err != nil {
			return nil, err
		}
		out := vi.compute(m)
		model.SortVariableImportances(out)
		return out, nil
	}
	return nil, errors.NewUnknownMetricError(name, m.AvailableVariableImportances())
}

func fromMap(values map[int]float64) []model.VariableImportance {
	out := make([]model.VariableImportance, 0, len(values))
	for attr, v := range values {
		out = append(out, model.VariableImportance{Attribute: attr, Importance: v})
	}
	return out
}

func (m *Model) numNodes() []model.VariableImportance {
	values := make(map[int]float64)
	for attr, count := range m.CountFeatureUsage() {
		values[attr] = float64(count)
	}
	return fromMap(values)
}

func (m *Model) numAsRoot() []model.VariableImportance {
	values := make(map[int]float64)
	for _, t := range m.trees {
		if s, ok := t.Root.(*tree.SplitNode); ok {
			values[s.Condition.Attribute]++
		}
	}
	return fromMap(values)
}

func (m *Model) sumScore() []model.VariableImportance {
	values := make(map[int]float64)
	m.IterateOnNodes(func(n tree.Node, _ int) {
		if s, ok := n.(*tree.SplitNode); ok {
			values[s.Condition.Attribute] += float64(s.Condition.SplitScore)
		}
	})
	return fromMap(values)
}

// meanMinDepth covers every column of the dataspec. A column absent from a
// tree counts as the maximum depth of that tree.
func (m *Model) meanMinDepth() []model.VariableImportance {
	numColumns := m.spec.NumColumns()
	sums := make([]float64, numColumns)
	minDepth := make([]int, numColumns)

	for _, t := range m.trees {
		maxDepth := t.MaxDepth()
		for i := range minDepth {
			minDepth[i] = maxDepth
		}
		t.IterateOnNodes(func(n tree.Node, depth int) {
			s, ok := n.(*tree.SplitNode)
			if !ok {
				return
			}
			if attr := s.Condition.Attribute; attr < numColumns && depth < minDepth[attr] {
				minDepth[attr] = depth
			}
		})
		for i, d := range minDepth {
			sums[i] += float64(d)
		}
	}

	out := make([]model.VariableImportance, numColumns)
	for i, s := range sums {
		out[i] = model.VariableImportance{Attribute: i, Importance: s / float64(len(m.trees))}
	}
	return out
}

func (m *Model) invMeanMinDepth() []model.VariableImportance {
	out := m.meanMinDepth()
	for i := range out {
		out[i].Importance = 1 / (1 + out[i].Importance)
	}
	return out
}
