package tree

import (
	"github.com/YuminosukeSato/forest/core/model"
)

// Node is either a *SplitNode or a *LeafNode.
type Node interface {
	// Stats returns the training statistics of the node.
	Stats() *NodeStats
	isNode()
}

// NodeStats are the training statistics shared by split and leaf nodes.
type NodeStats struct {
	NumPosTrainingExamplesWithoutWeight int64
}

// Stats implements Node.
func (s *NodeStats) Stats() *NodeStats { return s }

// SplitNode routes a row to one of its two children.
type SplitNode struct {
	NodeStats
	Condition Condition
	Positive  Node
	Negative  Node
}

func (*SplitNode) isNode() {}

// LeafNode holds the value predicted for rows reaching it.
type LeafNode struct {
	NodeStats
	Value LeafValue
}

func (*LeafNode) isNode() {}

// LeafValue is either a *ClassifierValue or a *RegressorValue.
type LeafValue interface {
	// Task returns the task the value belongs to.
	Task() model.Task
	isLeafValue()
}

// ClassifierValue is the value of a classification leaf. Distribution is
// optional.
type ClassifierValue struct {
	TopValue     int
	Distribution *model.Distribution
}

// Task implements LeafValue.
func (*ClassifierValue) Task() model.Task { return model.TaskClassification }

func (*ClassifierValue) isLeafValue() {}

// RegressorValue is the value of a regression leaf.
type RegressorValue struct {
	TopValue float64
}

// Task implements LeafValue.
func (*RegressorValue) Task() model.Task { return model.TaskRegression }

func (*RegressorValue) isLeafValue() {}

// NewSplit returns a split node testing cond.
func NewSplit(cond Condition, positive, negative Node) *SplitNode {
	return &SplitNode{Condition: cond, Positive: positive, Negative: negative}
}

// NewClassifierLeaf returns a classification leaf voting for topValue.
func NewClassifierLeaf(topValue int) *LeafNode {
	return &LeafNode{Value: &ClassifierValue{TopValue: topValue}}
}

// NewRegressorLeaf returns a regression leaf predicting topValue.
func NewRegressorLeaf(topValue float64) *LeafNode {
	return &LeafNode{Value: &RegressorValue{TopValue: topValue}}
}
