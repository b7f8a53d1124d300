package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seyi-adel/docintake/internal/analyze"
	"github.com/seyi-adel/docintake/internal/common"
	"github.com/seyi-adel/docintake/internal/export"
	"github.com/seyi-adel/docintake/internal/extract"
	"github.com/seyi-adel/docintake/internal/llm/openai"
	"github.com/seyi-adel/docintake/internal/metadata"
	"github.com/seyi-adel/docintake/internal/ocr"
	"github.com/seyi-adel/docintake/internal/pipeline"
	"github.com/seyi-adel/docintake/internal/repository"
	"github.com/seyi-adel/docintake/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// LLM client: summaries, Q&A, and the remote OCR variant
	llmClient := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	var recognizer ocr.Recognizer
	switch cfg.OCR.Engine {
	case "vision":
		recognizer = ocr.NewVisionModel(llmClient, logger)
	default:
		recognizer = ocr.NewTesseract(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			TessdataDir:   cfg.OCR.TessdataDir,
			ScratchDir:    cfg.Extract.ScratchDir,
		}, nil, logger)
	}
	logger.Info("ocr engine selected", "engine", cfg.OCR.Engine)

	extractor := extract.NewExtractor(extract.Config{
		Soffice:    cfg.Extract.Soffice,
		ScratchDir: cfg.Extract.ScratchDir,
	}, recognizer, logger)

	analyzer := analyze.NewAnalyzer(analyze.NewProseTagger(), llmClient, llmClient, cfg.Analyze.MaxChars, logger)
	metaExtractor := metadata.NewExtractor(logger)

	repo, db, err := repository.Open(ctx, cfg.Storage.SQLitePath, logger)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	var docStore repository.DocumentStore
	if cfg.Storage.MongoURI != "" {
		store, disconnect, err := repository.NewMongoStore(ctx, cfg.Storage.MongoURI, logger)
		if err != nil {
			logger.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = disconnect(shutCtx)
		}()
		docStore = store
	}

	proc := pipeline.NewProcessor(logger, extractor, analyzer, metaExtractor, repo, docStore)
	exporter := export.NewService(repo, logger)

	srv := server.New(server.Config{UploadDir: cfg.Server.UploadDir}, proc, analyzer, exporter, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
