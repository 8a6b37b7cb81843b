package segment

import (
	"block-segmenter/internal/raster"
	"block-segmenter/pkg/colorutil"
	"block-segmenter/pkg/geometry"
)

// Overlay paints the footprints of classified building blocks black on a
// white canvas sized to the original image.
func Overlay(comps []*Component, width, height int) *raster.Image {
	canvas := raster.NewUniform(width, height, colorutil.White)
	for _, c := range comps {
		if !c.BuildingBlock {
			continue
		}
		for ly := 0; ly < c.Bounds.Height; ly++ {
			for lx := 0; lx < c.Bounds.Width; lx++ {
				if c.MaskAt(lx, ly) {
					canvas.Set(c.Bounds.X+lx, c.Bounds.Y+ly, colorutil.Black)
				}
			}
		}
	}
	return canvas
}

// MaskImage renders the component footprint as a bounding-box-sized image:
// black member pixels on a white background.
func (c *Component) MaskImage() *raster.Image {
	img := raster.NewUniform(c.Bounds.Width, c.Bounds.Height, colorutil.White)
	for ly := 0; ly < c.Bounds.Height; ly++ {
		for lx := 0; lx < c.Bounds.Width; lx++ {
			if c.MaskAt(lx, ly) {
				img.Set(lx, ly, colorutil.Black)
			}
		}
	}
	return img
}

// Record is the serialized form of one component. The field names are a
// compatibility contract with the downstream building-detection consumer.
type Record struct {
	Component                int               `json:"component"`
	TopLeftCorner            geometry.PointInt `json:"topLeftCorner"`
	Width                    int               `json:"width"`
	Height                   int               `json:"height"`
	BuildingBlockProbability float64           `json:"buildingBlockProbability"`
}

// Records assembles component records in discovery order.
func Records(comps []*Component) []Record {
	records := make([]Record, len(comps))
	for i, c := range comps {
		records[i] = Record{
			Component:                c.ID,
			TopLeftCorner:            c.Bounds.TopLeft(),
			Width:                    c.Bounds.Width,
			Height:                   c.Bounds.Height,
			BuildingBlockProbability: c.AvgProbability,
		}
	}
	return records
}
