package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/seyi-adel/docintake/constants"
)

// extractPDF reads the text layer of every page in order. A document whose
// concatenated text strips to empty is assumed to be scanned and goes through
// the per-page OCR fallback exactly once. The check is a strict emptiness
// test: a single selectable character counts as "has text".
func (e *Extractor) extractPDF(ctx context.Context, path string) (TextExtractionResult, error) {
	res := TextExtractionResult{SourceType: constants.PDF}

	doc, err := e.openPDF(path)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			e.logger.Warn("pdf close failed", "path", path, "error", cerr)
		}
	}()

	n := doc.NumPages()
	res.Pages = n

	var b strings.Builder
	for i := 0; i < n; i++ {
		t, err := doc.PageText(i)
		if err != nil {
			return res, fmt.Errorf("page %d text: %w", i+1, err)
		}
		b.WriteString(t)
	}

	if strings.TrimSpace(b.String()) != "" {
		res.Text = b.String()
		res.Method = "pdf-text"
		return res, nil
	}

	e.logger.Warn("pdf has no text layer, attempting ocr", "path", path, "pages", n)
	text, warns, err := e.ocrPDF(ctx, doc, n)
	if err != nil {
		return res, err
	}
	res.Text = text
	res.Method = "pdf-ocr"
	res.Warnings = warns
	return res, nil
}

// ocrPDF rasterizes and recognizes each page in order. Per-page failures
// become warnings and an empty page body; the remaining pages still run.
func (e *Extractor) ocrPDF(ctx context.Context, doc pdfDocument, pages int) (string, []string, error) {
	var b strings.Builder
	var warns []string
	for i := 0; i < pages; i++ {
		pageText, err := e.ocrPage(ctx, doc, i)
		if err != nil {
			e.logger.Warn("page ocr failed", "page", i+1, "error", err)
			warns = append(warns, fmt.Sprintf("page %d: %s", i+1, err.Error()))
			pageText = ""
		}
		b.WriteString(fmt.Sprintf("\n\nPage %d:\n", i+1))
		b.WriteString(pageText)
	}
	return b.String(), warns, nil
}

// ocrPage owns the rasterized image for exactly one recognition call.
// The temp file is removed before returning, whatever the OCR outcome.
func (e *Extractor) ocrPage(ctx context.Context, doc pdfDocument, n int) (string, error) {
	tmp, err := os.CreateTemp(e.cfg.ScratchDir, "page-*.png")
	if err != nil {
		return "", err
	}
	imgPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(imgPath)
		return "", err
	}
	defer func() { _ = os.Remove(imgPath) }()

	if err := doc.RenderPNG(n, imgPath); err != nil {
		return "", err
	}
	return e.ocr.Recognize(ctx, imgPath)
}
