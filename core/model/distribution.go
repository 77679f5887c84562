package model

import (
	"gonum.org/v1/gonum/floats"
)

// Distribution はクラスごとの（重み付き）カウントとその合計を保持する
type Distribution struct {
	Counts []float64
	Sum    float64
}

// NewDistribution は numClasses 個のクラスを持つ空の分布を作成する
func NewDistribution(numClasses int) *Distribution {
	return &Distribution{Counts: make([]float64, numClasses)}
}

// NumClasses はクラス数を返す
func (d *Distribution) NumClasses() int {
	return len(d.Counts)
}

// Add はクラス class に weight を加算する
func (d *Distribution) Add(class int, weight float64) {
	d.Counts[class] += weight
	d.Sum += weight
}

// AddDistribution は other を scale 倍して加算する。
// クラス数が一致しない場合は短い方に合わせる。
func (d *Distribution) AddDistribution(other *Distribution, scale float64) {
	n := len(d.Counts)
	if len(other.Counts) < n {
		n = len(other.Counts)
	}
	floats.AddScaled(d.Counts[:n], scale, other.Counts[:n])
	d.Sum += scale * floats.Sum(other.Counts[:n])
}

// TopClass は最大カウントを持つクラスを返す。同値の場合は最小のインデックス。
// 空の分布では -1 を返す。
func (d *Distribution) TopClass() int {
	if len(d.Counts) == 0 {
		return -1
	}
	return floats.MaxIdx(d.Counts)
}

// Probability はクラス class の割合を返す。Sum が 0 の場合は 0。
func (d *Distribution) Probability(class int) float64 {
	if d.Sum == 0 || class < 0 || class >= len(d.Counts) {
		return 0
	}
	return d.Counts[class] / d.Sum
}

// Normalized は合計が 1 になるようにスケールした複製を返す
func (d *Distribution) Normalized() *Distribution {
	out := d.Clone()
	if out.Sum == 0 {
		return out
	}
	floats.Scale(1/out.Sum, out.Counts)
	out.Sum = 1
	return out
}

// Clone はディープコピーを返す
func (d *Distribution) Clone() *Distribution {
	counts := make([]float64, len(d.Counts))
	copy(counts, d.Counts)
	return &Distribution{Counts: counts, Sum: d.Sum}
}
