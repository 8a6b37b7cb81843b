package segment

import (
	"block-segmenter/pkg/geometry"
)

// retain applies the size/density filter to a just-grown region: regions
// smaller than minSize, or filling less than a third of their bounding box,
// are speckle or sparse elongated shapes rather than block candidates.
func retain(size int, extent geometry.Extent, minSize int) bool {
	if size < minSize {
		return false
	}
	return size >= extent.Area()/3
}
