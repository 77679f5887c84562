package randomforest

import (
	"github.com/YuminosukeSato/forest/tree"
)

// IterateOnNodes calls fn on every node of every tree. Trees are visited in
// order, nodes in pre-order with the positive child first.
func (m *Model) IterateOnNodes(fn func(n tree.Node, depth int)) {
	for _, t := range m.trees {
		t.IterateOnNodes(fn)
	}
}

// IterateOnMutableNodes is IterateOnNodes with access to the slot holding
// each node. Assigning to the slot replaces the sub-tree.
func (m *Model) IterateOnMutableNodes(fn func(slot *tree.Node, depth int)) {
	for _, t := range m.trees {
		t.IterateOnMutableNodes(fn)
	}
}
