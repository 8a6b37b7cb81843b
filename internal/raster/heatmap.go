package raster

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Heatmap is a read-only width×height grid of per-pixel probabilities,
// row-major, as produced by the border-detection model.
type Heatmap struct {
	Width  int
	Height int
	Values []float32
}

// At returns the probability at (x, y).
func (h *Heatmap) At(x, y int) float32 {
	return h.Values[y*h.Width+x]
}

// DecodeHeatmap parses a raw heatmap stream: exactly width·height IEEE-754
// 32-bit little-endian floats, row-major, no header. The byte length must be
// exactly width·height·4.
func DecodeHeatmap(data []byte, width, height int) (*Heatmap, error) {
	want := width * height * 4
	if len(data) != want {
		return nil, fmt.Errorf("heatmap is %d bytes, want %d (%dx%d floats)", len(data), want, width, height)
	}

	values := make([]float32, width*height)
	for i := range values {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		values[i] = math.Float32frombits(bits)
	}
	return &Heatmap{Width: width, Height: height, Values: values}, nil
}

// LoadHeatmap reads a .hmp file for an image of the given dimensions.
func LoadHeatmap(path string, width, height int) (*Heatmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hm, err := DecodeHeatmap(data, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hm, nil
}
