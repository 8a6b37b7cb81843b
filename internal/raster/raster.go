// Package raster provides the in-memory image and heatmap grids the
// segmentation pipeline operates on, plus decode/encode helpers.
package raster

import (
	"image"
	"image/color"

	"block-segmenter/pkg/colorutil"
)

// Image is a mutable width×height grid of RGB pixels in row-major order.
type Image struct {
	Width  int
	Height int
	Pix    []colorutil.RGB
}

// New returns a zeroed (black) image.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]colorutil.RGB, width*height),
	}
}

// NewUniform returns an image filled with a single color.
func NewUniform(width, height int, c colorutil.RGB) *Image {
	img := New(width, height)
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

// Index returns the row-major index of (x, y). No bounds check.
func (m *Image) Index(x, y int) int {
	return y*m.Width + x
}

// InBounds reports whether (x, y) lies inside the image.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the pixel at (x, y).
func (m *Image) At(x, y int) colorutil.RGB {
	return m.Pix[y*m.Width+x]
}

// Set overwrites the pixel at (x, y).
func (m *Image) Set(x, y int, c colorutil.RGB) {
	m.Pix[y*m.Width+x] = c
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	out := &Image{Width: m.Width, Height: m.Height, Pix: make([]colorutil.RGB, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// FromImage converts a decoded image.Image to a raster Image, discarding alpha.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Pix[y*w+x] = colorutil.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return out
}

// ToRGBA converts the raster Image to an *image.RGBA with opaque alpha.
func (m *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.Pix[y*m.Width+x]
			out.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}
