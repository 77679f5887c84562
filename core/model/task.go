package model

import (
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// Task はモデルが解くタスクの種類を表す。葉の値の種類と集約方法を決める。
type Task int

const (
	// TaskUndefined は未設定のタスク
	TaskUndefined Task = iota
	// TaskClassification は分類タスク。葉は ClassifierValue を持つ
	TaskClassification
	// TaskRegression は回帰タスク。葉は RegressorValue を持つ
	TaskRegression
)

// String はレポートで使用するタスク名を返す
func (t Task) String() string {
	switch t {
	case TaskClassification:
		return "CLASSIFICATION"
	case TaskRegression:
		return "REGRESSION"
	default:
		return "UNDEFINED"
	}
}

// ParseTask はタスク名から Task を返す
func ParseTask(name string) (Task, error) {
	switch name {
	case "CLASSIFICATION":
		return TaskClassification, nil
	case "REGRESSION":
		return TaskRegression, nil
	default:
		return TaskUndefined, errors.NewValidationError("task", "must be CLASSIFICATION or REGRESSION", name)
	}
}
