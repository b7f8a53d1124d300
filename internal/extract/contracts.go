package extract

import (
	"context"
	"time"
)

// TextExtractor converts a document on disk into machine-readable text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.DOCX | ...
	Method     string // "pdf-text" | "pdf-ocr" | "docx" | "doc-convert" | "image-ocr" | "text"
	Duration   time.Duration
	Warnings   []string
}
