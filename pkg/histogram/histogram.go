// Package histogram renders the text histograms of the model description
// reports.
package histogram

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	maxBins  = 10
	barWidth = 10
	rule     = "----------------------------------------------"
)

// Histogram accumulates observations.
type Histogram struct {
	values  []float64
	ignored int
}

// New returns an empty histogram.
func New() *Histogram {
	return &Histogram{}
}

// Add records one observation.
func (h *Histogram) Add(v float64) {
	h.values = append(h.values, v)
}

// AddInt records one integer observation.
func (h *Histogram) AddInt(v int64) {
	h.Add(float64(v))
}

// AddIgnored counts an observation that could not be recorded.
func (h *Histogram) AddIgnored() {
	h.ignored++
}

// Count returns the number of recorded observations.
func (h *Histogram) Count() int {
	return len(h.values)
}

// MeanStdDev returns the mean and the population standard deviation.
func (h *Histogram) MeanStdDev() (mean, std float64) {
	if len(h.values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(h.values, nil)
}

// String renders the histogram:
//
//	Count: 2 Average: 3 StdDev: 0
//	Min: 3 Max: 3 Ignored: 0
//	----------------------------------------------
//	[ 3, 3] 2 100.00% 100.00% ##########
func (h *Histogram) String() string {
	var b strings.Builder
	mean, std := h.MeanStdDev()
	fmt.Fprintf(&b, "Count: %d Average: %s StdDev: %s\n", len(h.values), format(mean), format(std))
	if len(h.values) == 0 {
		fmt.Fprintf(&b, "Min: 0 Max: 0 Ignored: %d\n%s\n", h.ignored, rule)
		return b.String()
	}

	lo, hi := floats.Min(h.values), floats.Max(h.values)
	fmt.Fprintf(&b, "Min: %s Max: %s Ignored: %d\n%s\n", format(lo), format(hi), h.ignored, rule)

	numBins := maxBins
	if lo == hi {
		numBins = 1
	}
	width := (hi - lo) / float64(numBins)
	counts := make([]int, numBins)
	for _, v := range h.values {
		bin := numBins - 1
		if width > 0 {
			bin = int((v - lo) / width)
		}
		if bin >= numBins {
			bin = numBins - 1
		}
		counts[bin]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	total := float64(len(h.values))
	cumulative := 0
	for i, c := range counts {
		cumulative += c
		binLo := lo + float64(i)*width
		binHi := lo + float64(i+1)*width
		closing := ")"
		if i == numBins-1 {
			binHi = hi
			closing = "]"
		}
		bar := strings.Repeat("#", c*barWidth/maxCount)
		fmt.Fprintf(&b, "[ %s, %s%s %d %.2f%% %.2f%% %s\n",
			format(binLo), format(binHi), closing, c,
			100*float64(c)/total, 100*float64(cumulative)/total, bar)
	}
	return b.String()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
