// Package ocr provides a single image-to-text capability with two
// interchangeable variants: a local tesseract engine and a remote
// vision-capable chat model. Call sites depend only on Recognizer;
// the variant is chosen once by configuration.
package ocr

import "context"

// Recognizer derives text from a raster image on disk.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Config selects and tunes the recognizer variant.
type Config struct {
	Engine string // "tesseract" | "vision"

	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	ScratchDir    string // temp dir for preprocessed images
}
