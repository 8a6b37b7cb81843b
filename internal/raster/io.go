package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeFile loads an image file (JPEG, PNG, TIFF, or BMP) into a raster Image.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// WriteJPEG writes the image as a maximum-quality JPEG.
func (m *Image) WriteJPEG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := jpeg.Encode(f, m.ToRGBA(), &jpeg.Options{Quality: 100}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
