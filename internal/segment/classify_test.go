package segment

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-segmenter/internal/raster"
	"block-segmenter/pkg/geometry"
)

// fullComponent builds a component with a fully-set mask over the given box.
func fullComponent(id, x, y, w, h int) *Component {
	mask := make([]bool, w*h)
	for i := range mask {
		mask[i] = true
	}
	return &Component{
		ID:     id,
		Bounds: geometry.RectInt{X: x, Y: y, Width: w, Height: h},
		Size:   w * h,
		Mask:   mask,
	}
}

func uniformHeatmap(w, h int, v float32) *raster.Heatmap {
	values := make([]float32, w*h)
	for i := range values {
		values[i] = v
	}
	return &raster.Heatmap{Width: w, Height: h, Values: values}
}

func TestNearestRank(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, 9.0, NearestRank(sorted, 0.8), "index ⌊0.8·10⌋ = 8")
	assert.Equal(t, 10.0, NearestRank(sorted, 1.0), "clamped to the last value")
	assert.Equal(t, 1.0, NearestRank(sorted, 0.0))
	assert.Equal(t, 0.0, NearestRank(nil, 0.8), "empty input yields 0")
}

func TestNearestRankNonDecreasing(t *testing.T) {
	values := []float64{5, 1, 9, 3}
	sort.Float64s(values)
	prev := NearestRank(values, 0.9)

	for _, add := range []float64{2, 11, 40} {
		values = append(values, add)
		sort.Float64s(values)
		cur := NearestRank(values, 0.9)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestFixedThresholdClassifies(t *testing.T) {
	// 8×8 image, uniform probability 0.5, threshold 0.5: a small component
	// qualifies (its size is below a quarter of the image).
	hm := uniformHeatmap(8, 8, 0.5)
	c := fullComponent(1, 0, 0, 3, 3)

	FixedThreshold{Threshold: 0.5}.Classify([]*Component{c}, hm)

	assert.InDelta(t, 0.5, c.AvgProbability, 1e-9)
	assert.True(t, c.BuildingBlock)
}

func TestFixedThresholdSizeCap(t *testing.T) {
	// A component spanning a quarter of the image or more is never a
	// building block, whatever its probability.
	hm := uniformHeatmap(8, 8, 0.9)
	big := fullComponent(1, 0, 0, 4, 4) // 16 = 64/4

	FixedThreshold{Threshold: 0.5}.Classify([]*Component{big}, hm)

	assert.False(t, big.BuildingBlock)
}

func TestFixedThresholdBelow(t *testing.T) {
	hm := uniformHeatmap(8, 8, 0.3)
	c := fullComponent(1, 0, 0, 2, 2)

	FixedThreshold{Threshold: 0.5}.Classify([]*Component{c}, hm)

	assert.False(t, c.BuildingBlock)
}

func TestAverageProbabilityOverFootprint(t *testing.T) {
	// Probability varies across the box; only footprint pixels count.
	hm := uniformHeatmap(4, 1, 0)
	hm.Values = []float32{0.2, 0.8, 0.4, 0.9}

	c := &Component{
		ID:     1,
		Bounds: geometry.RectInt{X: 0, Y: 0, Width: 4, Height: 1},
		Size:   2,
		Mask:   []bool{false, true, false, true},
	}

	assert.InDelta(t, (0.8+0.9)/2, averageProbability(c, hm), 1e-6)
}

func TestAverageProbabilityEmptyFootprint(t *testing.T) {
	hm := uniformHeatmap(2, 2, 0.7)
	c := &Component{
		Bounds: geometry.RectInt{X: 0, Y: 0, Width: 2, Height: 2},
		Mask:   make([]bool, 4),
	}

	assert.Equal(t, 0.0, averageProbability(c, hm), "zero pixel count must not divide by zero")
}

func TestPercentileAdaptive(t *testing.T) {
	// Heatmap: 16 pixels, four of them hot (1.0), the rest cold (0.0).
	// The 80th percentile of values is 1.0, so only components averaging 1.0
	// can qualify.
	hm := uniformHeatmap(4, 4, 0)
	for _, i := range []int{0, 1, 4, 5} {
		hm.Values[i] = 1.0
	}

	hot := fullComponent(1, 0, 0, 2, 2)  // covers the four hot pixels
	cold := fullComponent(2, 2, 2, 2, 2) // covers cold pixels only

	DefaultAdaptive().Classify([]*Component{hot, cold}, hm)

	assert.True(t, hot.BuildingBlock)
	assert.False(t, cold.BuildingBlock)
	assert.InDelta(t, 1.0, hot.AvgProbability, 1e-9)
	assert.InDelta(t, 0.0, cold.AvgProbability, 1e-9)
}

func TestPercentileAdaptiveSizeThreshold(t *testing.T) {
	// All probabilities identical, so only the size percentile discriminates:
	// sizes [1 1 1 1 1 1 1 1 1 100], 90th percentile = sorted[9] = 100.
	// Every component passes; shrink the percentile and the outlier fails.
	hm := uniformHeatmap(40, 40, 0.5)

	comps := make([]*Component, 10)
	for i := 0; i < 9; i++ {
		comps[i] = fullComponent(i+1, i, 38, 1, 1)
	}
	comps[9] = fullComponent(10, 0, 0, 10, 10)

	DefaultAdaptive().Classify(comps, hm)
	for _, c := range comps {
		assert.True(t, c.BuildingBlock, "component %d", c.ID)
	}

	strict := PercentileAdaptive{ProbPercentile: 0.8, SizePercentile: 0.5}
	strict.Classify(comps, hm)
	assert.False(t, comps[9].BuildingBlock, "size outlier fails a stricter size percentile")
	for _, c := range comps[:9] {
		assert.True(t, c.BuildingBlock, "component %d", c.ID)
	}
}

func TestSummarize(t *testing.T) {
	comps := []*Component{
		fullComponent(1, 0, 0, 2, 2),
		fullComponent(2, 4, 4, 4, 2),
	}
	comps[1].BuildingBlock = true

	s := Summarize(comps)
	require.Equal(t, 2, s.Components)
	assert.Equal(t, 1, s.BuildingBlocks)
	assert.InDelta(t, 6.0, s.SizeMean, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}
