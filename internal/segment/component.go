package segment

import (
	"block-segmenter/pkg/geometry"
)

// Component is one retained connected region.
type Component struct {
	// ID is 1-indexed in discovery (raster scan) order.
	ID int

	// Bounds is the minimal axis-aligned bounding box of the footprint.
	Bounds geometry.RectInt

	// Size is the number of footprint pixels.
	Size int

	// Mask is the footprint local to Bounds, row-major,
	// Bounds.Width×Bounds.Height entries, true = member pixel.
	Mask []bool

	// AvgProbability is the mean heatmap value over the footprint,
	// set by the classification strategy.
	AvgProbability float64

	// BuildingBlock is the classification result.
	BuildingBlock bool
}

// MaskAt reports footprint membership at local coordinates (lx, ly).
func (c *Component) MaskAt(lx, ly int) bool {
	return c.Mask[ly*c.Bounds.Width+lx]
}
