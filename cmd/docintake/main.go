// docintake processes a directory of documents from the command line:
// extraction, analysis and metadata for each file in name order, with an
// optional watch mode and an optional XLSX export at the end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/seyi-adel/docintake/constants"
	"github.com/seyi-adel/docintake/internal/analyze"
	"github.com/seyi-adel/docintake/internal/common"
	"github.com/seyi-adel/docintake/internal/export"
	"github.com/seyi-adel/docintake/internal/extract"
	"github.com/seyi-adel/docintake/internal/ingest"
	"github.com/seyi-adel/docintake/internal/llm/openai"
	"github.com/seyi-adel/docintake/internal/metadata"
	"github.com/seyi-adel/docintake/internal/ocr"
	"github.com/seyi-adel/docintake/internal/pipeline"
	"github.com/seyi-adel/docintake/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir   = flag.String("dir", "", "directory to process documents from (required)")
		out   = flag.String("out", "", "output XLSX file path (optional)")
		watch = flag.Bool("watch", false, "keep watching the directory for new files")
		inmem = flag.Bool("inmem", false, "use an in-memory SQLite database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	llmClient := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	var recognizer ocr.Recognizer
	if cfg.OCR.Engine == "vision" {
		recognizer = ocr.NewVisionModel(llmClient, logger)
	} else {
		recognizer = ocr.NewTesseract(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			TessdataDir:   cfg.OCR.TessdataDir,
			ScratchDir:    cfg.Extract.ScratchDir,
		}, nil, logger)
	}

	extractor := extract.NewExtractor(extract.Config{
		Soffice:    cfg.Extract.Soffice,
		ScratchDir: cfg.Extract.ScratchDir,
	}, recognizer, logger)
	analyzer := analyze.NewAnalyzer(analyze.NewProseTagger(), llmClient, llmClient, cfg.Analyze.MaxChars, logger)
	metaExtractor := metadata.NewExtractor(logger)

	dbPath := cfg.Storage.SQLitePath
	if *inmem {
		dbPath = ":memory:"
	}
	repo, db, err := repository.Open(ctx, dbPath, logger)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	proc := pipeline.NewProcessor(logger, extractor, analyzer, metaExtractor, repo, nil)

	paths, err := discover(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("processing directory", "dir", *dir, "files", len(paths))

	// One file at a time, in name order.
	processed, failed := 0, 0
	for _, p := range paths {
		if _, err := proc.ProcessFile(ctx, p); err != nil {
			failed++
			continue
		}
		processed++
	}
	logger.Info("batch done", "processed", processed, "failed", failed)

	if *watch {
		evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots: []string{*dir},
		}, logger)
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		logger.Info("watching for new files", "dir", *dir)
		for {
			select {
			case p, ok := <-evCh:
				if !ok {
					return
				}
				if _, err := proc.ProcessFile(ctx, p); err != nil {
					logger.Error("failed to process file", "path", p, "error", err)
				}
			case err := <-errCh:
				logger.Error("watcher error", "error", err)
			}
		}
	}

	if *out != "" {
		svc := export.NewService(repo, logger)
		b, err := svc.ExportDocumentsXLSX(ctx)
		if err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, b, 0o644); err != nil {
			logger.Error("failed to write export file", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("export written", "path", *out)
	}
}

// discover lists intake candidates directly under dir, sorted by name.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsAllowed(filepath.Ext(e.Name())) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
