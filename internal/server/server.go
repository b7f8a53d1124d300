// Package server is the browser-facing upload UI: multipart upload handling,
// tabbed result rendering and a chat-style Q&A endpoint over processed text.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/seyi-adel/docintake/internal/analyze"
	"github.com/seyi-adel/docintake/internal/export"
	"github.com/seyi-adel/docintake/internal/llm"
	"github.com/seyi-adel/docintake/internal/pipeline"
)

type Config struct {
	UploadDir string
}

// docSession keeps the extracted text and chat history of one processed
// document so the Q&A loop can refer back to it.
type docSession struct {
	Text    string
	History []llm.Message
}

type Server struct {
	cfg      Config
	logger   *slog.Logger
	proc     *pipeline.Processor
	analyzer *analyze.Analyzer
	exporter *export.Service

	mu       sync.Mutex
	sessions map[string]*docSession
}

func New(cfg Config, proc *pipeline.Processor, analyzer *analyze.Analyzer, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		proc:     proc,
		analyzer: analyzer,
		exporter: exporter,
		sessions: map[string]*docSession{},
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.withRequestID)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	r.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	return r
}
