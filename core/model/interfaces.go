// Package model provides the task, prediction and importance types shared by
// the forest packages, plus the interfaces the serving and evaluation layers
// depend on.
package model

import (
	"strings"

	"github.com/YuminosukeSato/forest/dataset"
)

// Predictor is the interface for models that predict one row of a row source.
type Predictor interface {
	// Task returns the task of the model.
	Task() Task

	// Predict returns the prediction for row of src.
	Predict(src dataset.RowSource, row int) (Prediction, error)
}

// ImportanceProvider is the interface for models that expose structural
// variable importances.
type ImportanceProvider interface {
	// AvailableVariableImportances returns the metric names accepted by GetVariableImportance.
	AvailableVariableImportances() []string

	// GetVariableImportance returns the entries of one metric, most important first.
	GetVariableImportance(name string) ([]VariableImportance, error)
}

// Describer is the interface for models that render text reports.
type Describer interface {
	// AppendDescriptionAndStatistics appends a human readable summary.
	AppendDescriptionAndStatistics(fullDefinition bool, w *strings.Builder)

	// AppendModelStructure appends the dump of every tree.
	AppendModelStructure(w *strings.Builder)
}

// Model combines the interfaces implemented by a decision forest.
type Model interface {
	Predictor
	ImportanceProvider
	Describer
}
