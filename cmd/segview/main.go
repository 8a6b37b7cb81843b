// Command segview displays the results of a segmentation run: the
// flood-filled segmentation image and the building-block overlay side by side.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

func main() {
	dir := flag.String("dir", "", "Output directory of a segment run")
	flag.Parse()

	if *dir == "" {
		fmt.Println("Usage: segview -dir <output directory>")
		os.Exit(1)
	}

	segPath := filepath.Join(*dir, "segmentation.jpg")
	overlayPath := filepath.Join(*dir, "building_blocks.jpg")
	for _, p := range []string{segPath, overlayPath} {
		if _, err := os.Stat(p); err != nil {
			fmt.Fprintf(os.Stderr, "Missing result image: %v\n", err)
			os.Exit(1)
		}
	}

	viewer := app.New()
	win := viewer.NewWindow(fmt.Sprintf("Segmentation: %s", filepath.Base(*dir)))

	seg := canvas.NewImageFromFile(segPath)
	seg.FillMode = canvas.ImageFillContain
	overlay := canvas.NewImageFromFile(overlayPath)
	overlay.FillMode = canvas.ImageFillContain

	split := container.NewHSplit(
		container.NewBorder(widget.NewLabel("Segmentation"), nil, nil, nil, seg),
		container.NewBorder(widget.NewLabel("Building blocks"), nil, nil, nil, overlay),
	)
	split.SetOffset(0.5)

	win.SetContent(split)
	win.Resize(fyne.NewSize(1200, 700))
	win.ShowAndRun()
}
