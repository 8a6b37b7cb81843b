package pipeline

import "errors"

// Per-image failure classes. All are recoverable in batch mode: the image is
// skipped and the run continues.
var (
	// ErrImageDecode marks an unreadable or corrupt input image.
	ErrImageDecode = errors.New("image decode failed")
	// ErrHeatmap marks a missing heatmap or one whose byte length does not
	// match width·height·4.
	ErrHeatmap = errors.New("heatmap load failed")
	// ErrOutputDir marks a failure to create an output location.
	ErrOutputDir = errors.New("output directory creation failed")
)

// Recoverable reports whether a per-image error allows the batch to continue.
func Recoverable(err error) bool {
	return errors.Is(err, ErrImageDecode) ||
		errors.Is(err, ErrHeatmap) ||
		errors.Is(err, ErrOutputDir)
}
