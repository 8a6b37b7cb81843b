// Package colorutil provides color types and distance metrics shared across packages.
package colorutil

import (
	"math"
	"math/rand"
)

// RGB is a 24-bit color with no alpha channel.
type RGB struct {
	R, G, B uint8
}

// Manhattan returns the L1 distance between two colors:
// the sum of absolute per-channel differences.
func Manhattan(a, b RGB) float64 {
	return math.Abs(float64(a.R)-float64(b.R)) +
		math.Abs(float64(a.G)-float64(b.G)) +
		math.Abs(float64(a.B)-float64(b.B))
}

// Euclidean returns the L2 distance between two colors in RGB space.
func Euclidean(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Random returns a uniformly random color drawn from rng.
// If rng is nil the shared math/rand source is used.
func Random(rng *rand.Rand) RGB {
	if rng == nil {
		return RGB{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256))}
	}
	return RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
}

var (
	// White and Black are the overlay canvas colors.
	White = RGB{R: 255, G: 255, B: 255}
	Black = RGB{}
)
