package randomforest

import (
	"math"

	"github.com/YuminosukeSato/forest/tree"
)

// CountFeatureUsage returns, for each column used by at least one split
// condition, the number of split nodes using it.
func (m *Model) CountFeatureUsage() map[int]int64 {
	usage := make(map[int]int64)
	m.IterateOnNodes(func(n tree.Node, _ int) {
		if s, ok := n.(*tree.SplitNode); ok {
			usage[s.Condition.Attribute]++
		}
	})
	return usage
}

// NumNodes returns the number of split and leaf nodes of all the trees.
func (m *Model) NumNodes() int {
	count := 0
	for _, t := range m.trees {
		count += t.NumNodes()
	}
	return count
}

// NumLeafs returns the number of leaf nodes of all the trees.
func (m *Model) NumLeafs() int {
	count := 0
	for _, t := range m.trees {
		count += t.NumLeafs()
	}
	return count
}

// MinNumberObs returns the smallest number of positive training examples
// recorded on any node.
func (m *Model) MinNumberObs() (int64, error) {
	if err := m.checkNotEmpty("Model.MinNumberObs"); err != nil {
		return 0, err
	}
	minObs := int64(math.MaxInt64)
	m.IterateOnNodes(func(n tree.Node, _ int) {
		if v := n.Stats().NumPosTrainingExamplesWithoutWeight; v < minObs {
			minObs = v
		}
	})
	return minObs, nil
}
