// Command segment grows color-homogeneous regions in scanned map images and
// classifies each region as a building-block candidate using a co-registered
// probability heatmap.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"block-segmenter/internal/config"
	"block-segmenter/internal/pipeline"
	"block-segmenter/internal/system"
	"block-segmenter/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	input := flag.String("input", "", "Input image, or a directory of images with .hmp heatmaps alongside")
	heatmap := flag.String("heatmap", "", "Heatmap file for a single image (default: image path with .hmp extension)")
	output := flag.String("output", "output", "Output directory")
	configFile := flag.String("config", "", "Legacy config file (k use8Way euclidif adj minComponentSize threshold)")

	k := flag.Float64("k", 0, "Color similarity threshold (overrides config file when set)")
	conn8 := flag.Bool("conn8", false, "Use 8-way connectivity instead of 4-way")
	euclidean := flag.Bool("euclidean", false, "Use Euclidean color metric instead of Manhattan")
	adjacent := flag.Bool("adjacent", false, "Compare against the discovering neighbor's color instead of the seed color")
	minSize := flag.Int("min-size", -1, "Minimum component size in pixels (overrides config file when set)")
	threshold := flag.Float64("threshold", -1, "Fixed building-block probability threshold (overrides config file when set)")
	adaptive := flag.Bool("adaptive", false, "Use percentile-adaptive classification (80th probability / 90th size)")

	smooth := flag.String("smooth", "none", "Pre-segmentation smoothing: none, gaussian, median")
	kernel := flag.Int("kernel", 5, "Smoothing kernel size (odd)")
	workers := flag.Int("workers", 0, "Batch workers (0 = auto from CPU count and memory)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *input == "" {
		fmt.Println("Usage: segment -input <image|dir> [-heatmap <file>] [-output <dir>] [options]")
		os.Exit(1)
	}

	cfg, err := buildConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.K = *k
		case "min-size":
			cfg.MinComponentSize = *minSize
		case "threshold":
			cfg.BuildingBlockThreshold = *threshold
		}
	})
	cfg.Use8Way = cfg.Use8Way || *conn8
	cfg.UseEuclidean = cfg.UseEuclidean || *euclidean
	cfg.UsePredecessor = cfg.UsePredecessor || *adjacent
	cfg.Adaptive = *adaptive
	cfg.Smoothing = *smooth
	cfg.SmoothingKernel = *kernel
	cfg.Workers = *workers

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot stat input: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		system.InitResourceLimits()
		fmt.Printf("Processing directory %s with %d workers\n", *input, system.Workers(cfg.Workers))
		if err := pipeline.ProcessDir(*input, *output, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Batch failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	heatmapPath := *heatmap
	if heatmapPath == "" {
		heatmapPath = pipeline.HeatmapPath(*input)
	}

	a, err := pipeline.ProcessImage(*input, heatmapPath, *output, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}

	blocks := 0
	for _, c := range a.Components {
		if c.BuildingBlock {
			blocks++
		}
	}
	fmt.Printf("Finished %s: %d components (%d building blocks) in %.2fs\n",
		*input, len(a.Components), blocks, a.Elapsed.Seconds())
	fmt.Printf("Results written to %s\n", *output)
}

func buildConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadLegacy(path)
}
