// Package config holds the run configuration and the legacy config file loader.
package config

import (
	"errors"
	"fmt"
	"os"

	"block-segmenter/internal/preprocess"
	"block-segmenter/internal/segment"
)

// ErrConfig marks configuration errors. They are fatal: a run never starts
// with an invalid or unparsable configuration.
var ErrConfig = errors.New("invalid configuration")

// Config is the full run configuration.
type Config struct {
	// Region growing.
	K                float64
	Use8Way          bool
	UseEuclidean     bool
	UsePredecessor   bool
	MinComponentSize int

	// Classification.
	Adaptive               bool    // percentile-adaptive instead of fixed threshold
	BuildingBlockThreshold float64 // fixed-strategy probability threshold

	// Preprocessing.
	Smoothing       string
	SmoothingKernel int

	// Batch mode. 0 = size from CPU count and available memory.
	Workers int
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	p := segment.DefaultParams()
	return Config{
		K:                      p.K,
		MinComponentSize:       p.MinComponentSize,
		BuildingBlockThreshold: 0.5,
		Smoothing:              string(preprocess.None),
		SmoothingKernel:        5,
	}
}

// LoadLegacy reads the six-scalar config file format:
//
//	k use8Way euclidif adj minComponentSize buildingBlockThreshold
//
// whitespace-separated, booleans as 0/1.
func LoadLegacy(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()

	cfg := Default()
	var use8, eucl, adj int
	_, err = fmt.Fscan(f, &cfg.K, &use8, &eucl, &adj, &cfg.MinComponentSize, &cfg.BuildingBlockThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	cfg.Use8Way = use8 != 0
	cfg.UseEuclidean = eucl != 0
	cfg.UsePredecessor = adj != 0
	return cfg, nil
}

// Validate checks value ranges. Returns an error wrapping ErrConfig.
func (c Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("%w: k must be non-negative, got %g", ErrConfig, c.K)
	}
	if c.MinComponentSize < 0 {
		return fmt.Errorf("%w: min component size must be non-negative, got %d", ErrConfig, c.MinComponentSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrConfig, c.Workers)
	}
	m, err := preprocess.ParseMethod(c.Smoothing)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if m != preprocess.None && (c.SmoothingKernel < 3 || c.SmoothingKernel%2 == 0) {
		return fmt.Errorf("%w: smoothing kernel must be odd and >= 3, got %d", ErrConfig, c.SmoothingKernel)
	}
	return nil
}

// GrowParams maps the configuration onto region-growing parameters.
func (c Config) GrowParams() segment.Params {
	p := segment.Params{
		K:                c.K,
		MinComponentSize: c.MinComponentSize,
	}
	if c.Use8Way {
		p.Connectivity = segment.Conn8
	}
	if c.UseEuclidean {
		p.Metric = segment.MetricEuclidean
	}
	if c.UsePredecessor {
		p.Reference = segment.RefPredecessor
	}
	return p
}

// Strategy returns the selected classification strategy.
func (c Config) Strategy() segment.Strategy {
	if c.Adaptive {
		return segment.DefaultAdaptive()
	}
	return segment.FixedThreshold{Threshold: c.BuildingBlockThreshold}
}

// SmoothingMethod returns the validated preprocessing method.
func (c Config) SmoothingMethod() preprocess.Method {
	m, err := preprocess.ParseMethod(c.Smoothing)
	if err != nil {
		return preprocess.None
	}
	return m
}
