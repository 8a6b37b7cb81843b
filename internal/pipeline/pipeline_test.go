package pipeline

import (
	"encoding/binary"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-segmenter/internal/config"
)

// writeTestInputs creates a 6×5 image with a dark 3×3 block on a light
// background, plus a heatmap that is hot over the block and cold elsewhere.
// The block's border pixels are absorbed into the background region, so the
// run yields the background component and a hot interior component.
func writeTestInputs(t *testing.T, dir string) (imagePath, heatmapPath string) {
	t.Helper()

	const w, h = 6, 5
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 240, G: 240, B: 240, A: 255}
			if x >= 1 && x <= 3 && y >= 1 && y <= 3 {
				c = color.RGBA{R: 10, G: 10, B: 10, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	imagePath = filepath.Join(dir, "scan.png")
	f, err := os.Create(imagePath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(0.1)
			if x >= 1 && x <= 3 && y >= 1 && y <= 3 {
				v = 0.9
			}
			binary.LittleEndian.PutUint32(data[(y*w+x)*4:], math.Float32bits(v))
		}
	}
	heatmapPath = filepath.Join(dir, "scan.hmp")
	require.NoError(t, os.WriteFile(heatmapPath, data, 0o644))
	return imagePath, heatmapPath
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.K = 30
	cfg.MinComponentSize = 1
	cfg.BuildingBlockThreshold = 0.5
	return cfg
}

func TestProcessImageWritesArtifactTree(t *testing.T) {
	dir := t.TempDir()
	imagePath, heatmapPath := writeTestInputs(t, dir)
	outDir := filepath.Join(dir, "out")

	a, err := ProcessImage(imagePath, heatmapPath, outDir, testConfig())
	require.NoError(t, err)
	require.NotEmpty(t, a.Components)

	for _, p := range []string{
		filepath.Join(outDir, "segmentation.jpg"),
		filepath.Join(outDir, "building_blocks.jpg"),
		filepath.Join(outDir, "components_info.json"),
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	// Every component mask lands in exactly one bucket: the hot interior
	// pixel is a building block, the background is not.
	blocks, err := os.ReadDir(filepath.Join(outDir, "building_blocks"))
	require.NoError(t, err)
	others, err := os.ReadDir(filepath.Join(outDir, "non_building_blocks"))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
	assert.Equal(t, len(a.Components), len(blocks)+len(others))
}

func TestProcessImageRecords(t *testing.T) {
	dir := t.TempDir()
	imagePath, heatmapPath := writeTestInputs(t, dir)
	outDir := filepath.Join(dir, "out")

	a, err := ProcessImage(imagePath, heatmapPath, outDir, testConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "components_info.json"))
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, len(a.Components))
	for i, r := range records {
		assert.Equal(t, float64(i+1), r["component"])
		assert.Contains(t, r, "topLeftCorner")
		assert.Contains(t, r, "width")
		assert.Contains(t, r, "height")
		assert.Contains(t, r, "buildingBlockProbability")
	}
}

func TestRunErrorTaxonomy(t *testing.T) {
	dir := t.TempDir()
	imagePath, heatmapPath := writeTestInputs(t, dir)
	cfg := testConfig()

	_, err := Run(filepath.Join(dir, "missing.png"), heatmapPath, cfg)
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.True(t, Recoverable(err))

	_, err = Run(imagePath, filepath.Join(dir, "missing.hmp"), cfg)
	assert.ErrorIs(t, err, ErrHeatmap)

	// Wrong-length heatmap.
	short := filepath.Join(dir, "short.hmp")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0o644))
	_, err = Run(imagePath, short, cfg)
	assert.ErrorIs(t, err, ErrHeatmap)

	// Garbage image bytes.
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Run(bad, heatmapPath, cfg)
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestProcessDirSkipsHeatmapsAndBadImages(t *testing.T) {
	dir := t.TempDir()
	writeTestInputs(t, dir)

	// A corrupt image next to the good one is skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.png"), []byte("nope"), 0o644))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, ProcessDir(dir, outDir, testConfig()))

	// corrupt.png sorts before scan.png, so the good image is number 002.
	_, err := os.Stat(filepath.Join(outDir, "002", "components_info.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "output_002.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "building_blocks_002.jpg"))
	assert.NoError(t, err)

	// No artifact tree for the corrupt image.
	_, err = os.Stat(filepath.Join(outDir, "001"))
	assert.True(t, os.IsNotExist(err))
}

func TestHeatmapPath(t *testing.T) {
	assert.Equal(t, "/data/scan.hmp", HeatmapPath("/data/scan.jpg"))
	assert.Equal(t, "scan.hmp", HeatmapPath("scan.png"))
	assert.Equal(t, "noext.hmp", HeatmapPath("noext"))
}
