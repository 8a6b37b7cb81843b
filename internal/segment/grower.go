package segment

import (
	"math/rand"

	"block-segmenter/internal/raster"
	"block-segmenter/pkg/colorutil"
	"block-segmenter/pkg/geometry"
)

// cell is one pending worklist entry: a candidate pixel plus the reference
// color carried from the pixel that discovered it.
type cell struct {
	x, y int
	ref  colorutil.RGB
}

// grower holds the per-image state of one segmentation pass. The image is
// mutated in place: accepted pixels are recolored to their region's
// visualization color. Not safe for concurrent use; process one image per grower.
type grower struct {
	img    *raster.Image
	params Params

	visited   []bool
	footprint []bool // pixels claimed by the region currently being grown
	rng       *rand.Rand
}

func newGrower(img *raster.Image, p Params, rng *rand.Rand) *grower {
	return &grower{
		img:       img,
		params:    p,
		visited:   make([]bool, img.Width*img.Height),
		footprint: make([]bool, img.Width*img.Height),
		rng:       rng,
	}
}

// Segment scans the image in row-major order and grows one region per
// unvisited pixel, recoloring accepted pixels in place. Regions rejected by
// the size/density filter leave no record; their pixels stay visited.
// Returns retained components, 1-indexed in discovery order.
func Segment(img *raster.Image, p Params, rng *rand.Rand) []*Component {
	g := newGrower(img, p, rng)

	var comps []*Component
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if g.visited[img.Index(x, y)] {
				continue
			}

			viz := colorutil.Random(g.rng)
			extent, size := g.grow(x, y, viz)

			if !retain(size, extent, p.MinComponentSize) {
				g.clearFootprint(extent)
				continue
			}

			comp := g.extract(extent, size)
			comp.ID = len(comps) + 1
			comps = append(comps, comp)
		}
	}
	return comps
}

// grow flood-fills one region from (startX, startY). Every popped in-bounds
// unvisited pixel is marked visited and counted into the footprint, bounding
// box, and size before the similarity test; pixels failing the test stay
// counted but are neither recolored nor expanded, so they form a permanent
// boundary excluded from every later region as well.
func (g *grower) grow(startX, startY int, viz colorutil.RGB) (geometry.Extent, int) {
	seed := g.img.At(startX, startY)
	extent := geometry.NewExtent()
	size := 0

	// LIFO worklist. Duplicate entries from multiple neighbors are expected;
	// the visited check at pop discards them.
	stack := []cell{{x: startX, y: startY, ref: seed}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.img.InBounds(c.x, c.y) {
			continue
		}
		idx := g.img.Index(c.x, c.y)
		if g.visited[idx] {
			continue
		}

		g.visited[idx] = true
		g.footprint[idx] = true
		extent.Include(c.x, c.y)
		size++

		original := g.img.Pix[idx]
		compare := seed
		if g.params.Reference == RefPredecessor {
			compare = c.ref
		}

		if g.diff(original, compare) > g.params.K {
			continue
		}

		g.img.Pix[idx] = viz

		stack = append(stack,
			cell{x: c.x + 1, y: c.y, ref: original},
			cell{x: c.x - 1, y: c.y, ref: original},
			cell{x: c.x, y: c.y + 1, ref: original},
			cell{x: c.x, y: c.y - 1, ref: original},
		)
		if g.params.Connectivity == Conn8 {
			stack = append(stack,
				cell{x: c.x + 1, y: c.y + 1, ref: original},
				cell{x: c.x + 1, y: c.y - 1, ref: original},
				cell{x: c.x - 1, y: c.y + 1, ref: original},
				cell{x: c.x - 1, y: c.y - 1, ref: original},
			)
		}
	}

	return extent, size
}

func (g *grower) diff(a, b colorutil.RGB) float64 {
	if g.params.Metric == MetricEuclidean {
		return colorutil.Euclidean(a, b)
	}
	return colorutil.Manhattan(a, b)
}

// extract copies the just-grown footprint into a component-local mask and
// clears it from the shared footprint grid.
func (g *grower) extract(extent geometry.Extent, size int) *Component {
	w := extent.Width()
	mask := make([]bool, extent.Area())

	for cy := extent.YMin; cy <= extent.YMax; cy++ {
		for cx := extent.XMin; cx <= extent.XMax; cx++ {
			idx := g.img.Index(cx, cy)
			if g.footprint[idx] {
				mask[(cy-extent.YMin)*w+(cx-extent.XMin)] = true
				g.footprint[idx] = false
			}
		}
	}

	return &Component{
		Bounds: extent.Rect(),
		Size:   size,
		Mask:   mask,
	}
}

// clearFootprint wipes the footprint bits of a rejected region.
func (g *grower) clearFootprint(extent geometry.Extent) {
	if extent.Empty() {
		return
	}
	for cy := extent.YMin; cy <= extent.YMax; cy++ {
		for cx := extent.XMin; cx <= extent.XMax; cx++ {
			g.footprint[g.img.Index(cx, cy)] = false
		}
	}
}
