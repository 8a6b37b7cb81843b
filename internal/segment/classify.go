package segment

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"block-segmenter/internal/raster"
)

// Strategy classifies retained components as building blocks. Implementations
// set AvgProbability and BuildingBlock on every component.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Classify labels every component using the full heatmap.
	Classify(comps []*Component, hm *raster.Heatmap)
}

// FixedThreshold classifies a component as a building block when its average
// heatmap probability reaches a fixed threshold and it does not span most of
// the image (a quarter of the pixel count or more).
type FixedThreshold struct {
	Threshold float64
}

// Name implements Strategy.
func (s FixedThreshold) Name() string {
	return fmt.Sprintf("fixed(%.3f)", s.Threshold)
}

// Classify implements Strategy.
func (s FixedThreshold) Classify(comps []*Component, hm *raster.Heatmap) {
	sizeCap := hm.Width * hm.Height / 4
	for _, c := range comps {
		c.AvgProbability = averageProbability(c, hm)
		c.BuildingBlock = c.AvgProbability >= s.Threshold && c.Size < sizeCap
	}
}

// PercentileAdaptive classifies against thresholds derived from the image
// itself: the ProbPercentile nearest-rank percentile of all heatmap values and
// the SizePercentile nearest-rank percentile of retained component sizes.
// This adapts to each scan's probability and size distribution instead of a
// fixed global cutoff.
type PercentileAdaptive struct {
	ProbPercentile float64
	SizePercentile float64
}

// DefaultAdaptive returns the standard 80th/90th percentile strategy.
func DefaultAdaptive() PercentileAdaptive {
	return PercentileAdaptive{ProbPercentile: 0.8, SizePercentile: 0.9}
}

// Name implements Strategy.
func (s PercentileAdaptive) Name() string {
	return fmt.Sprintf("adaptive(p%.0f/s%.0f)", s.ProbPercentile*100, s.SizePercentile*100)
}

// Classify implements Strategy.
func (s PercentileAdaptive) Classify(comps []*Component, hm *raster.Heatmap) {
	probs := make([]float64, len(hm.Values))
	for i, v := range hm.Values {
		probs[i] = float64(v)
	}
	sort.Float64s(probs)
	probThreshold := NearestRank(probs, s.ProbPercentile)

	sizes := make([]float64, len(comps))
	for i, c := range comps {
		sizes[i] = float64(c.Size)
	}
	sort.Float64s(sizes)
	sizeThreshold := NearestRank(sizes, s.SizePercentile)

	for _, c := range comps {
		c.AvgProbability = averageProbability(c, hm)
		c.BuildingBlock = c.AvgProbability >= probThreshold && float64(c.Size) <= sizeThreshold
	}
}

// NearestRank returns the nearest-rank percentile of ascending-sorted values:
// the value at index ⌊p·N⌋, clamped to N−1. Returns 0 for an empty slice.
func NearestRank(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(p * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// averageProbability is the mean heatmap value over the component footprint.
// A zero pixel count yields 0; the filter guarantees it cannot occur, but the
// guard keeps the division safe regardless.
func averageProbability(c *Component, hm *raster.Heatmap) float64 {
	values := make([]float64, 0, c.Size)
	for ly := 0; ly < c.Bounds.Height; ly++ {
		for lx := 0; lx < c.Bounds.Width; lx++ {
			if c.MaskAt(lx, ly) {
				values = append(values, float64(hm.At(c.Bounds.X+lx, c.Bounds.Y+ly)))
			}
		}
	}
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// Summary describes the classified component set for progress logging.
type Summary struct {
	Components     int
	BuildingBlocks int
	SizeMean       float64
	SizeStdDev     float64
}

// Summarize computes per-image statistics over retained components.
func Summarize(comps []*Component) Summary {
	s := Summary{Components: len(comps)}
	if len(comps) == 0 {
		return s
	}

	sizes := make([]float64, len(comps))
	for i, c := range comps {
		sizes[i] = float64(c.Size)
		if c.BuildingBlock {
			s.BuildingBlocks++
		}
	}
	s.SizeMean = stat.Mean(sizes, nil)
	if len(sizes) > 1 {
		s.SizeStdDev = stat.StdDev(sizes, nil)
	}
	return s
}
