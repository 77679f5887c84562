package tree

import (
	"strconv"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// Tree is a decision tree. It owns its root.
type Tree struct {
	Root Node
}

// New returns a tree with the given root.
func New(root Node) *Tree {
	return &Tree{Root: root}
}

// GetLeaf descends from the root following the conditions evaluated on row.
func (t *Tree) GetLeaf(src dataset.RowSource, row int) (*LeafNode, error) {
	node := t.Root
	for {
		switch n := node.(type) {
		case *LeafNode:
			return n, nil
		case *SplitNode:
			attr := n.Condition.Attribute
			if attr < 0 || attr >= src.NumColumns() {
				return nil, errors.NewInvalidModelError("Tree.GetLeaf", "condition references a column the row source does not have", attr)
			}
			if n.Condition.Evaluate(src.Value(row, attr)) {
				node = n.Positive
			} else {
				node = n.Negative
			}
		default:
			return nil, errors.NewInvalidModelError("Tree.GetLeaf", "nil node", -1)
		}
	}
}

// IterateOnNodes calls fn on every node in pre-order, positive child first.
// The root has depth 0.
func (t *Tree) IterateOnNodes(fn func(n Node, depth int)) {
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		if s, ok := n.(*SplitNode); ok {
			visit(s.Positive, depth+1)
			visit(s.Negative, depth+1)
		}
	}
	visit(t.Root, 0)
}

// IterateOnMutableNodes calls fn on the slot holding every node, in the
// same order as IterateOnNodes. fn may store a new node in the slot, the
// traversal then continues into the new node.
func (t *Tree) IterateOnMutableNodes(fn func(slot *Node, depth int)) {
	var visit func(slot *Node, depth int)
	visit = func(slot *Node, depth int) {
		if *slot == nil {
			return
		}
		fn(slot, depth)
		if s, ok := (*slot).(*SplitNode); ok {
			visit(&s.Positive, depth+1)
			visit(&s.Negative, depth+1)
		}
	}
	visit(&t.Root, 0)
}

// NumNodes returns the number of split and leaf nodes.
func (t *Tree) NumNodes() int {
	count := 0
	t.IterateOnNodes(func(Node, int) { count++ })
	return count
}

// NumLeafs returns the number of leaf nodes.
func (t *Tree) NumLeafs() int {
	count := 0
	t.IterateOnNodes(func(n Node, _ int) {
		if _, ok := n.(*LeafNode); ok {
			count++
		}
	})
	return count
}

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	maxDepth := 0
	t.IterateOnNodes(func(_ Node, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
	})
	return maxDepth
}

// Validate checks every condition against spec and every leaf value against
// task.
func (t *Tree) Validate(spec *dataset.DataSpec, task model.Task, labelCol int) error {
	if t.Root == nil {
		return errors.NewInvalidModelError("Tree.Validate", "tree without root", -1)
	}

	numClasses := 0
	if task == model.TaskClassification {
		if c := spec.Column(labelCol); c != nil && c.Categorical != nil {
			numClasses = c.Categorical.NumUniqueValues
		}
	}

	var err error
	t.IterateOnNodes(func(n Node, _ int) {
		if err != nil {
			return
		}
		switch n := n.(type) {
		case *SplitNode:
			if n.Positive == nil || n.Negative == nil {
				err = errors.NewInvalidModelError("Tree.Validate", "split node without two children", n.Condition.Attribute)
				return
			}
			err = n.Condition.Validate(spec)
		case *LeafNode:
			err = validateLeaf(n, task, numClasses)
		}
	})
	return err
}

func validateLeaf(n *LeafNode, task model.Task, numClasses int) error {
	if n.Value == nil {
		return errors.NewInvalidModelError("Tree.Validate", "leaf without value", -1)
	}
	if n.Value.Task() != task {
		return errors.NewInvalidModelError("Tree.Validate", "leaf value is "+n.Value.Task().String()+" but the model task is "+task.String(), -1)
	}
	v, ok := n.Value.(*ClassifierValue)
	if !ok || numClasses == 0 {
		return nil
	}
	if v.TopValue < 0 || v.TopValue >= numClasses {
		return errors.NewInvalidModelError("Tree.Validate", "leaf class "+strconv.Itoa(v.TopValue)+" outside the label vocabulary", -1)
	}
	if v.Distribution != nil && v.Distribution.NumClasses() != numClasses {
		return errors.NewInvalidModelError("Tree.Validate", "leaf distribution does not match the label vocabulary", -1)
	}
	return nil
}
