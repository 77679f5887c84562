package histogram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramSingleValue(t *testing.T) {
	h := New()
	h.AddInt(3)
	h.AddInt(3)

	assert.Equal(t, `Count: 2 Average: 3 StdDev: 0
Min: 3 Max: 3 Ignored: 0
----------------------------------------------
[ 3, 3] 2 100.00% 100.00% ##########
`, h.String())
}

func TestHistogramBins(t *testing.T) {
	h := New()
	for _, v := range []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		h.Add(v)
	}
	h.AddIgnored()

	mean, std := h.MeanStdDev()
	assert.Equal(t, 5.0, mean)
	assert.InDelta(t, 3.1623, std, 1e-4)

	lines := strings.Split(strings.TrimSuffix(h.String(), "\n"), "\n")
	assert.Equal(t, "Count: 11 Average: 5 StdDev: 3.16228", lines[0])
	assert.Equal(t, "Min: 0 Max: 10 Ignored: 1", lines[1])
	assert.Len(t, lines, 3+10)
	assert.Equal(t, "[ 0, 1) 1 9.09% 9.09% #####", lines[3])
	assert.Equal(t, "[ 9, 10] 2 18.18% 100.00% ##########", lines[12])
}

func TestHistogramEmpty(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Count())
	assert.True(t, strings.HasPrefix(h.String(), "Count: 0 Average: 0 StdDev: 0\n"))
}
