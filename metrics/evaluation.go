// Package metrics computes evaluation results of a forest on a dataset.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/forest/core/model"
	"github.com/YuminosukeSato/forest/dataset"
	"github.com/YuminosukeSato/forest/pkg/errors"
)

// minProbability は log(0) を避けるための下限
const minProbability = 1e-15

// EvaluationResults は評価結果。Task に応じて Classification か Regression が設定される。
type EvaluationResults struct {
	Task             model.Task
	CountPredictions float64

	Classification *ClassificationResults
	Regression     *RegressionResults
}

// ClassificationResults は分類の評価結果
type ClassificationResults struct {
	// Confusion の (i, j) は正解 i を j と予測した件数
	Confusion  *mat.Dense
	SumLogLoss float64
}

// RegressionResults は回帰の評価結果
type RegressionResults struct {
	SumSquareError float64

	// Labels と Predictions は MAE と R² のために保持する
	Labels      []float64
	Predictions []float64
}

// NewClassificationResults は numClasses×numClasses の混同行列を持つ結果を作成する
func NewClassificationResults(numClasses int) *EvaluationResults {
	return &EvaluationResults{
		Task: model.TaskClassification,
		Classification: &ClassificationResults{
			Confusion: mat.NewDense(numClasses, numClasses, nil),
		},
	}
}

// NewRegressionResults は空の回帰結果を作成する
func NewRegressionResults() *EvaluationResults {
	return &EvaluationResults{
		Task:       model.TaskRegression,
		Regression: &RegressionResults{},
	}
}

// AddClassification は1件の分類予測を加算する
func (r *EvaluationResults) AddClassification(label int, p *model.ClassificationPrediction) error {
	if r.Classification == nil {
		return errors.NewValueError("AddClassification", "results are not classification results")
	}
	n, _ := r.Classification.Confusion.Dims()
	if label < 0 || label >= n || p.Value < 0 || p.Value >= n {
		return errors.NewDimensionError("AddClassification", n, max(label, p.Value)+1, 0)
	}
	r.Classification.Confusion.Set(label, p.Value, r.Classification.Confusion.At(label, p.Value)+1)
	r.Classification.SumLogLoss -= math.Log(math.Max(p.Probability(label), minProbability))
	r.CountPredictions++
	return nil
}

// AddRegression は1件の回帰予測を加算する
func (r *EvaluationResults) AddRegression(label float64, p *model.RegressionPrediction) error {
	if r.Regression == nil {
		return errors.NewValueError("AddRegression", "results are not regression results")
	}
	diff := p.Value - label
	r.Regression.SumSquareError += diff * diff
	r.Regression.Labels = append(r.Regression.Labels, label)
	r.Regression.Predictions = append(r.Regression.Predictions, p.Value)
	r.CountPredictions++
	return nil
}

// Accuracy は正解率（混同行列の対角和 / 総和）を返す
func (r *EvaluationResults) Accuracy() (float64, error) {
	if r.Classification == nil || r.Classification.Confusion == nil {
		return 0, errors.NewValueError("Accuracy", "results are not classification results")
	}
	sum := mat.Sum(r.Classification.Confusion)
	if sum == 0 {
		return 0, errors.NewValueError("Accuracy", "empty confusion matrix")
	}
	return mat.Trace(r.Classification.Confusion) / sum, nil
}

// LogLoss は平均対数損失を返す
func (r *EvaluationResults) LogLoss() (float64, error) {
	if r.Classification == nil {
		return 0, errors.NewValueError("LogLoss", "results are not classification results")
	}
	if r.CountPredictions == 0 {
		return 0, errors.NewValueError("LogLoss", "no predictions")
	}
	return r.Classification.SumLogLoss / r.CountPredictions, nil
}

// RMSE は平方根平均二乗誤差を返す
func (r *EvaluationResults) RMSE() (float64, error) {
	if r.Regression == nil {
		return 0, errors.NewValueError("RMSE", "results are not regression results")
	}
	if r.CountPredictions == 0 {
		return 0, errors.NewValueError("RMSE", "no predictions")
	}
	return math.Sqrt(r.Regression.SumSquareError / r.CountPredictions), nil
}

// MAE は平均絶対誤差を返す
func (r *EvaluationResults) MAE() (float64, error) {
	yTrue, yPred, err := r.regressionVectors("MAE")
	if err != nil {
		return 0, err
	}
	return MAE(yTrue, yPred)
}

// R2 は決定係数を返す
func (r *EvaluationResults) R2() (float64, error) {
	yTrue, yPred, err := r.regressionVectors("R2")
	if err != nil {
		return 0, err
	}
	return R2Score(yTrue, yPred)
}

func (r *EvaluationResults) regressionVectors(op string) (*mat.VecDense, *mat.VecDense, error) {
	if r.Regression == nil {
		return nil, nil, errors.NewValueError(op, "results are not regression results")
	}
	if len(r.Regression.Labels) == 0 {
		return nil, nil, errors.NewValueError(op, "no predictions")
	}
	return mat.NewVecDense(len(r.Regression.Labels), r.Regression.Labels),
		mat.NewVecDense(len(r.Regression.Predictions), r.Regression.Predictions), nil
}

// Evaluate は src の全行を予測し、labelCol の値と比較した評価結果を返す。
// ラベルが欠損している行は数えない。
func Evaluate(p model.Predictor, src dataset.RowSource, labelCol, numClasses int) (*EvaluationResults, error) {
	if labelCol < 0 || labelCol >= src.NumColumns() {
		return nil, errors.NewDimensionError("Evaluate", src.NumColumns(), labelCol+1, 1)
	}

	var results *EvaluationResults
	switch p.Task() {
	case model.TaskClassification:
		results = NewClassificationResults(numClasses)
	case model.TaskRegression:
		results = NewRegressionResults()
	default:
		return nil, errors.NewValueError("Evaluate", "unsupported task "+p.Task().String())
	}

	for row := 0; row < src.NumRows(); row++ {
		label := src.Value(row, labelCol)
		if label.IsMissing() {
			continue
		}
		pred, err := p.Predict(src, row)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating row %d", row)
		}
		switch pred := pred.(type) {
		case *model.ClassificationPrediction:
			err = results.AddClassification(label.Int(), pred)
		case *model.RegressionPrediction:
			err = results.AddRegression(label.Float(), pred)
		}
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
