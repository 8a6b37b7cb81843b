// Package preprocess provides optional image smoothing applied before
// segmentation. Blurring suppresses scan grain so region growth does not
// shatter flat areas into speckle; it never changes image dimensions and the
// heatmap is left untouched.
package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"block-segmenter/internal/raster"
	"block-segmenter/pkg/colorutil"
)

// Method selects the smoothing filter.
type Method string

const (
	// None disables preprocessing.
	None Method = "none"
	// Gaussian applies a Gaussian blur.
	Gaussian Method = "gaussian"
	// Median applies a median blur; better at preserving block edges.
	Median Method = "median"
)

// ParseMethod validates a method name from configuration.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case None, "":
		return None, nil
	case Gaussian:
		return Gaussian, nil
	case Median:
		return Median, nil
	}
	return None, fmt.Errorf("unknown smoothing method %q", s)
}

// Smooth returns a smoothed copy of the image. Kernel must be odd and > 1.
// With method None the input is returned unchanged.
func Smooth(img *raster.Image, method Method, kernel int) (*raster.Image, error) {
	if method == None {
		return img, nil
	}
	if kernel < 3 || kernel%2 == 0 {
		return nil, fmt.Errorf("smoothing kernel must be odd and >= 3, got %d", kernel)
	}

	mat, err := toMat(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()

	switch method {
	case Gaussian:
		gocv.GaussianBlur(mat, &blurred, image.Pt(kernel, kernel), 0, 0, gocv.BorderDefault)
	case Median:
		gocv.MedianBlur(mat, &blurred, kernel)
	default:
		return nil, fmt.Errorf("unknown smoothing method %q", method)
	}

	return fromMat(blurred, img.Width, img.Height), nil
}

// toMat converts a raster Image to a 4-channel Mat (RGBA byte order).
func toMat(img *raster.Image) (gocv.Mat, error) {
	return gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC4, img.ToRGBA().Pix)
}

// fromMat converts a 4-channel Mat (RGBA byte order) back to a raster Image.
func fromMat(mat gocv.Mat, width, height int) *raster.Image {
	data := mat.ToBytes()
	out := raster.New(width, height)
	for i := range out.Pix {
		out.Pix[i] = colorutil.RGB{R: data[i*4], G: data[i*4+1], B: data[i*4+2]}
	}
	return out
}
