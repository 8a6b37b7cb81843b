// Package pipeline orchestrates one segmentation run per image: load inputs,
// preprocess, grow regions, classify, and write the artifact tree.
package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"block-segmenter/internal/config"
	"block-segmenter/internal/preprocess"
	"block-segmenter/internal/raster"
	"block-segmenter/internal/segment"
)

const (
	buildingBlocksDir    = "building_blocks"
	nonBuildingBlocksDir = "non_building_blocks"
	recordsFile          = "components_info.json"
	segmentationFile     = "segmentation.jpg"
	overlayFile          = "building_blocks.jpg"
)

// Artifacts holds everything one image run produces, ready for writing.
type Artifacts struct {
	// Segmentation is the input image with every region flood-filled to its
	// visualization color.
	Segmentation *raster.Image
	// Overlay is the white canvas with building-block footprints in black.
	Overlay *raster.Image
	// Components are the retained, classified components in discovery order.
	Components []*segment.Component
	// Elapsed is the in-memory computation time (excludes input decode and output encode).
	Elapsed time.Duration
}

// Run loads the image and heatmap, applies optional smoothing, grows and
// classifies regions, and composes the outputs. Nothing is written to disk.
func Run(imagePath, heatmapPath string, cfg config.Config) (*Artifacts, error) {
	img, err := raster.DecodeFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	hm, err := raster.LoadHeatmap(heatmapPath, img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeatmap, err)
	}

	img, err = preprocess.Smooth(img, cfg.SmoothingMethod(), cfg.SmoothingKernel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	start := time.Now()

	// Visualization colors are cosmetic; an independent generator per image
	// keeps batch workers from sharing rng state.
	rng := rand.New(rand.NewSource(rand.Int63()))
	comps := segment.Segment(img, cfg.GrowParams(), rng)

	strategy := cfg.Strategy()
	strategy.Classify(comps, hm)

	a := &Artifacts{
		Segmentation: img,
		Overlay:      segment.Overlay(comps, img.Width, img.Height),
		Components:   comps,
		Elapsed:      time.Since(start),
	}

	s := segment.Summarize(comps)
	log.Printf("%s: %d components, %d building blocks, size %.1f±%.1f px, strategy %s, %.2fs",
		filepath.Base(imagePath), s.Components, s.BuildingBlocks, s.SizeMean, s.SizeStdDev,
		strategy.Name(), a.Elapsed.Seconds())

	return a, nil
}

// Write persists the artifact tree under outDir:
//
//	outDir/
//	  building_blocks/component_NNNNN.jpg      masks of building blocks
//	  non_building_blocks/component_NNNNN.jpg  masks of everything else
//	  components_info.json                     records in discovery order
//	  segmentation.jpg                         flood-filled image
//	  building_blocks.jpg                      overlay canvas
func (a *Artifacts) Write(outDir string) error {
	for _, dir := range []string{
		outDir,
		filepath.Join(outDir, buildingBlocksDir),
		filepath.Join(outDir, nonBuildingBlocksDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDir, err)
		}
	}

	for _, c := range a.Components {
		bucket := nonBuildingBlocksDir
		if c.BuildingBlock {
			bucket = buildingBlocksDir
		}
		name := fmt.Sprintf("component_%05d.jpg", c.ID)
		if err := c.MaskImage().WriteJPEG(filepath.Join(outDir, bucket, name)); err != nil {
			return fmt.Errorf("write mask %d: %w", c.ID, err)
		}
	}

	if err := a.WriteRecords(filepath.Join(outDir, recordsFile)); err != nil {
		return err
	}

	if err := a.Segmentation.WriteJPEG(filepath.Join(outDir, segmentationFile)); err != nil {
		return fmt.Errorf("write segmentation: %w", err)
	}
	if err := a.Overlay.WriteJPEG(filepath.Join(outDir, overlayFile)); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}
	return nil
}

// WriteRecords writes the component records JSON array.
func (a *Artifacts) WriteRecords(path string) error {
	records := segment.Records(a.Components)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ProcessImage runs one image end to end and writes its artifact tree.
func ProcessImage(imagePath, heatmapPath, outDir string, cfg config.Config) (*Artifacts, error) {
	a, err := Run(imagePath, heatmapPath, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.Write(outDir); err != nil {
		return nil, err
	}
	return a, nil
}

// HeatmapPath derives the heatmap file for an image: same path with the
// extension replaced by .hmp.
func HeatmapPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return imagePath[:len(imagePath)-len(ext)] + ".hmp"
}
