// Package segment implements the region-growing segmentation engine:
// flood-fill region growth over a color image, size/density filtering,
// heatmap-driven building-block classification, and output composition.
package segment

// Connectivity selects which neighbors a region can grow into.
type Connectivity int

const (
	// Conn4 expands through the 4 orthogonal neighbors.
	Conn4 Connectivity = iota
	// Conn8 also expands through the 4 diagonal neighbors.
	Conn8
)

// Metric selects the color-difference function.
type Metric int

const (
	// MetricManhattan sums absolute per-channel differences.
	MetricManhattan Metric = iota
	// MetricEuclidean takes the L2 norm of the per-channel differences.
	MetricEuclidean
)

// Reference selects which color a candidate pixel is compared against.
type Reference int

const (
	// RefSeed compares against the region's fixed seed color.
	RefSeed Reference = iota
	// RefPredecessor compares against the color of the pixel that discovered
	// this one, propagated hop by hop. Tolerates gradients that RefSeed rejects.
	RefPredecessor
)

// Params controls region growing and filtering.
type Params struct {
	// K is the maximum color difference for a pixel to join a region.
	K float64

	Connectivity Connectivity
	Metric       Metric
	Reference    Reference

	// MinComponentSize rejects regions with fewer pixels after growth.
	MinComponentSize int
}

// DefaultParams returns the parameters used for typical map scans.
func DefaultParams() Params {
	return Params{
		K:                48,
		Connectivity:     Conn4,
		Metric:           MetricManhattan,
		Reference:        RefSeed,
		MinComponentSize: 64,
	}
}
