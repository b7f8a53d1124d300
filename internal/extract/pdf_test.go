package extract

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyi-adel/docintake/constants"
)

type stubPDF struct {
	pages     []string
	rendered  []string
	closed    bool
	renderErr error
}

func (s *stubPDF) NumPages() int { return len(s.pages) }

func (s *stubPDF) PageText(n int) (string, error) { return s.pages[n], nil }

func (s *stubPDF) RenderPNG(n int, path string) error {
	if s.renderErr != nil {
		return s.renderErr
	}
	s.rendered = append(s.rendered, path)
	return os.WriteFile(path, []byte("png"), 0o644)
}

func (s *stubPDF) Close() error {
	s.closed = true
	return nil
}

type stubRecognizer struct {
	calls       []string
	seenOnDisk  []bool
	err         error
	errOnCall   int // 1-based; 0 = never
}

func (s *stubRecognizer) Recognize(_ context.Context, imagePath string) (string, error) {
	s.calls = append(s.calls, imagePath)
	_, statErr := os.Stat(imagePath)
	s.seenOnDisk = append(s.seenOnDisk, statErr == nil)
	if s.err != nil && (s.errOnCall == 0 || s.errOnCall == len(s.calls)) {
		return "", s.err
	}
	return fmt.Sprintf("recognized %d", len(s.calls)), nil
}

func newTestExtractor(t *testing.T, doc *stubPDF, rec *stubRecognizer) *Extractor {
	t.Helper()
	e := NewExtractor(Config{ScratchDir: t.TempDir()}, rec, nil)
	e.openPDF = func(string) (pdfDocument, error) { return doc, nil }
	return e
}

func TestExtractPDFWithTextLayerSkipsOCR(t *testing.T) {
	doc := &stubPDF{pages: []string{"first page ", "second page"}}
	rec := &stubRecognizer{}
	e := newTestExtractor(t, doc, rec)

	res, err := e.Extract(context.Background(), "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "first page second page", res.Text)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Empty(t, rec.calls, "OCR must not run when a text layer exists")
	assert.True(t, doc.closed)
}

func TestExtractPDFSparseTextStillSkipsOCR(t *testing.T) {
	// a single selectable character counts as "has text"
	doc := &stubPDF{pages: []string{"  \n", "x", "\t"}}
	rec := &stubRecognizer{}
	e := newTestExtractor(t, doc, rec)

	res, err := e.Extract(context.Background(), "sparse.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Empty(t, rec.calls)
}

func TestExtractPDFEmptyTextFallsBackToOCR(t *testing.T) {
	doc := &stubPDF{pages: []string{"", "   ", "\n\t"}}
	rec := &stubRecognizer{}
	e := newTestExtractor(t, doc, rec)

	res, err := e.Extract(context.Background(), "scanned.pdf")
	require.NoError(t, err)

	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t,
		"\n\nPage 1:\nrecognized 1\n\nPage 2:\nrecognized 2\n\nPage 3:\nrecognized 3",
		res.Text)
	require.Len(t, rec.calls, 3, "one OCR pass per page, exactly once")
	assert.Equal(t, doc.rendered, rec.calls, "pages recognized in render order")
	for i, existed := range rec.seenOnDisk {
		assert.True(t, existed, "page image %d must exist during recognition", i+1)
	}
	for _, p := range rec.calls {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "page image %q must be removed after use", p)
	}
}

func TestExtractPDFOCRFailureContainedPerPage(t *testing.T) {
	doc := &stubPDF{pages: []string{"", ""}}
	rec := &stubRecognizer{err: fmt.Errorf("tesseract: boom"), errOnCall: 1}
	e := newTestExtractor(t, doc, rec)

	res, err := e.Extract(context.Background(), "scanned.pdf")
	require.NoError(t, err)

	assert.Equal(t, "\n\nPage 1:\n\n\nPage 2:\nrecognized 2", res.Text)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "page 1")
	for _, p := range rec.calls {
		_, statErr := os.Stat(p)
		assert.True(t, os.IsNotExist(statErr), "temp image removed even when OCR fails")
	}
}

func TestExtractPDFOpenError(t *testing.T) {
	rec := &stubRecognizer{}
	e := NewExtractor(Config{ScratchDir: t.TempDir()}, rec, nil)
	e.openPDF = func(string) (pdfDocument, error) { return nil, fmt.Errorf("open pdf: malformed") }

	_, err := e.Extract(context.Background(), "broken.pdf")
	require.Error(t, err)
	assert.Empty(t, rec.calls)
}
