package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"block-segmenter/internal/config"
	"block-segmenter/internal/system"
)

// ProcessDir segments every image in inputDir. A file is an image unless it
// carries the .hmp extension; its heatmap sits next to it with the extension
// swapped. Each image gets a numbered output folder plus top-level copies of
// the segmentation and overlay images.
//
// Images are independent, so they are processed concurrently; each image is
// still handled end to end by a single worker. Recoverable per-image errors
// are logged and the batch continues.
func ProcessDir(inputDir, outputDir string, cfg config.Config) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read input directory: %w", err)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() || strings.EqualFold(filepath.Ext(e.Name()), ".hmp") {
			continue
		}
		images = append(images, filepath.Join(inputDir, e.Name()))
	}
	sort.Strings(images)
	log.Printf("%d images in %s", len(images), inputDir)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	var g errgroup.Group
	g.SetLimit(system.Workers(cfg.Workers))

	for i, imagePath := range images {
		seq := i + 1
		g.Go(func() error {
			err := processBatchImage(imagePath, outputDir, seq, cfg)
			if err != nil && Recoverable(err) {
				log.Printf("skipping %s: %v", imagePath, err)
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

func processBatchImage(imagePath, outputDir string, seq int, cfg config.Config) error {
	outDir := filepath.Join(outputDir, fmt.Sprintf("%03d", seq))

	a, err := ProcessImage(imagePath, HeatmapPath(imagePath), outDir, cfg)
	if err != nil {
		return err
	}

	// Top-level copies for quick batch review.
	segCopy := filepath.Join(outputDir, fmt.Sprintf("output_%03d.jpg", seq))
	if err := a.Segmentation.WriteJPEG(segCopy); err != nil {
		return fmt.Errorf("write segmentation copy: %w", err)
	}
	overlayCopy := filepath.Join(outputDir, fmt.Sprintf("building_blocks_%03d.jpg", seq))
	if err := a.Overlay.WriteJPEG(overlayCopy); err != nil {
		return fmt.Errorf("write overlay copy: %w", err)
	}
	return nil
}
