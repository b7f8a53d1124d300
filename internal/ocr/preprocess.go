package ocr

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoders for uploaded image types
	"image/png"
	"os"
)

const binarizeThreshold = 150

// binarize writes a thresholded grayscale copy of the image to a temp PNG.
// Returns the temp path and a cleanup func that removes it.
func binarize(imagePath, scratchDir string) (string, func(), error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if g.Y > binarizeThreshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}

	tmp, err := os.CreateTemp(scratchDir, "ocr-pre-*.png")
	if err != nil {
		return "", nil, err
	}
	if err := png.Encode(tmp, dst); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}
