package model

// Prediction はモデルの予測結果。ClassificationPrediction または RegressionPrediction のいずれか。
type Prediction interface {
	// Task は予測を生成したタスクを返す
	Task() Task
	isPrediction()
}

// ClassificationPrediction は分類の予測結果
type ClassificationPrediction struct {
	// Value は予測クラス（分布の最大値、同値なら最小インデックス）
	Value int
	// Distribution は全ての木の投票を集計した分布
	Distribution Distribution
}

// Task implements Prediction.
func (*ClassificationPrediction) Task() Task { return TaskClassification }

func (*ClassificationPrediction) isPrediction() {}

// Probability はクラス class の予測確率を返す
func (p *ClassificationPrediction) Probability(class int) float64 {
	return p.Distribution.Probability(class)
}

// RegressionPrediction は回帰の予測結果
type RegressionPrediction struct {
	Value float64
}

// Task implements Prediction.
func (*RegressionPrediction) Task() Task { return TaskRegression }

func (*RegressionPrediction) isPrediction() {}
