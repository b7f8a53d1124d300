// Package pipeline coordinates per-file processing: text extraction, content
// analysis, metadata derivation and best-effort persistence. Files are
// processed one at a time, synchronously, in the order they arrive.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/seyi-adel/docintake/internal/analyze"
	"github.com/seyi-adel/docintake/internal/extract"
	"github.com/seyi-adel/docintake/internal/metadata"
	"github.com/seyi-adel/docintake/internal/repository"
)

// Document is the transient result record for one processed upload.
type Document struct {
	FilePath  string
	FileName  string
	Text      string
	CleanText string
	Metadata  map[string]string
	Analysis  analyze.Result
	Extraction extract.TextExtractionResult
}

type Processor struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	analyzer  *analyze.Analyzer
	metadata  *metadata.Extractor
	relSink   repository.MetadataRepository // optional
	docSink   repository.DocumentStore      // optional
}

func NewProcessor(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	analyzer *analyze.Analyzer,
	meta *metadata.Extractor,
	relSink repository.MetadataRepository,
	docSink repository.DocumentStore,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		extractor: extractor,
		analyzer:  analyzer,
		metadata:  meta,
		relSink:   relSink,
		docSink:   docSink,
	}
}

// ProcessFile runs the full chain for one file. Extraction failures abort
// this file only; analysis and metadata failures are contained inline, and
// sink errors are logged but never fail the run.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Document, error) {
	res, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("processor.extract.failed", "path", path, "error", err)
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	p.logger.Info("processor.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"text_bytes", len(res.Text),
		"warnings", len(res.Warnings),
	)

	doc := &Document{
		FilePath:   path,
		FileName:   filepath.Base(path),
		Text:       res.Text,
		CleanText:  cleanText(res.Text),
		Extraction: res,
	}

	analysis, err := p.analyzer.Analyze(ctx, res.Text)
	if err != nil {
		// enrichment only; the extracted text is still worth showing
		p.logger.Error("processor.analyze.failed", "path", path, "error", err)
	} else {
		doc.Analysis = analysis
	}

	doc.Metadata = p.metadata.Extract(path)

	p.persist(ctx, doc)
	return doc, nil
}

// persist writes to both sinks best-effort.
func (p *Processor) persist(ctx context.Context, doc *Document) {
	if p.relSink != nil {
		rec := repository.DocumentRecord{
			FilePath: doc.FilePath,
			Title:    doc.Metadata["title"],
			Author:   doc.Metadata["author"],
		}
		if id, err := p.relSink.SaveDocument(ctx, rec); err != nil {
			p.logger.Warn("processor.sink.sqlite_failed", "path", doc.FilePath, "error", err)
		} else {
			p.logger.Debug("processor.sink.sqlite_ok", "path", doc.FilePath, "id", id)
		}
	}
	if p.docSink != nil {
		record := map[string]any{"file_name": doc.FileName}
		for k, v := range doc.Metadata {
			record[k] = v
		}
		if err := p.docSink.SaveMetadata(ctx, record); err != nil {
			p.logger.Warn("processor.sink.mongo_failed", "path", doc.FilePath, "error", err)
		}
	}
}

// cleanText drops blank lines and trims each remaining line, for display.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}
