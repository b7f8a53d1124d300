package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
)

// Tesseract is the local recognizer variant. Images are binarized before the
// tesseract call; if preprocessing fails the original image is used as-is.
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewTesseract(cfg Config, runner Runner, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	return &Tesseract{cfg: cfg, runner: runner, logger: logger}
}

// reBoxNoise strips isolated pipe/underscore runs that tesseract emits for
// table rules and scan artifacts.
var reBoxNoise = regexp.MustCompile(`(?m)^[|_\s]+$`)

func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	input := imagePath
	pre, cleanup, err := binarize(imagePath, t.cfg.ScratchDir)
	if err != nil {
		t.logger.Warn("image preprocessing failed, using original", "path", imagePath, "error", err)
	} else {
		defer cleanup()
		input = pre
	}

	args := []string{input, "stdout", "-l", t.cfg.TesseractLang}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 1<<10))
	}
	return reBoxNoise.ReplaceAllString(string(out), ""), nil
}
