package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/seyi-adel/docintake/constants"
	"github.com/seyi-adel/docintake/internal/common"
	"github.com/seyi-adel/docintake/internal/ocr"
)

type Config struct {
	Soffice    string // binary name or absolute path; if empty -> "soffice"
	ScratchDir string // temp dir for rasterized pages; if empty -> os.TempDir()
}

// Extractor implements TextExtractor by dispatching on file extension.
type Extractor struct {
	cfg     Config
	openPDF pdfOpener
	ocr     ocr.Recognizer
	runner  ocr.Runner
	logger  *slog.Logger
}

func NewExtractor(cfg Config, recognizer ocr.Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Soffice == "" {
		cfg.Soffice = "soffice"
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}
	return &Extractor{
		cfg:     cfg,
		openPDF: openFitz,
		ocr:     recognizer,
		runner:  ocr.ExecRunner{},
		logger:  logger,
	}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text extraction", "path", path, "ext", ext)

	var res TextExtractionResult
	var err error
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.DOCX:
		res, err = e.extractDOCX(path)
	case constants.DOC:
		res, err = e.extractDOC(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	case constants.TXT:
		res, err = e.extractText(path)
	default:
		e.logger.Error("unsupported extension", "extension", ext, "path", path)
		return TextExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	res.Duration = time.Since(start)
	return res, err
}

// extractImage delegates to the configured recognizer. Recognition failures
// surface as a warning and an empty result, not an error: a bad scan should
// not abort the rest of a batch.
func (e *Extractor) extractImage(ctx context.Context, path string) (TextExtractionResult, error) {
	res := TextExtractionResult{SourceType: constants.IMAGE, Method: "image-ocr", Pages: 1}
	text, err := e.ocr.Recognize(ctx, path)
	if err != nil {
		e.logger.Warn("image recognition failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, err.Error())
		return res, nil
	}
	res.Text = text
	return res, nil
}

func (e *Extractor) extractText(path string) (TextExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.TXT}, err
	}
	return TextExtractionResult{
		Text:       string(b),
		Pages:      1,
		SourceType: constants.TXT,
		Method:     "text",
	}, nil
}
