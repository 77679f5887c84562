package model

import "sort"

// 構造的な変数重要度の指標名
const (
	// ImportanceNumNodes は列を条件に使う分岐ノードの数
	ImportanceNumNodes = "NUM_NODES"
	// ImportanceNumAsRoot は列を根の条件に使う木の数
	ImportanceNumAsRoot = "NUM_AS_ROOT"
	// ImportanceSumScore は列を使う分岐のスコアの合計
	ImportanceSumScore = "SUM_SCORE"
	// ImportanceMeanMinDepth は列が最初に現れる深さの木ごとの平均
	ImportanceMeanMinDepth = "MEAN_MIN_DEPTH"
	// ImportanceInvMeanMinDepth は 1/(1+MEAN_MIN_DEPTH)。大きいほど重要
	ImportanceInvMeanMinDepth = "INV_MEAN_MIN_DEPTH"
)

// VariableImportance は1列分の重要度
type VariableImportance struct {
	Attribute  int
	Importance float64
}

// SortVariableImportances は重要度の降順、同値の場合は列番号の昇順に並べ替える
func SortVariableImportances(v []VariableImportance) {
	sort.Slice(v, func(i, j int) bool {
		if v[i].Importance != v[j].Importance {
			return v[i].Importance > v[j].Importance
		}
		return v[i].Attribute < v[j].Attribute
	})
}
