package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/seyi-adel/docintake/constants"
	"github.com/seyi-adel/docintake/internal/llm"
)

const (
	maxUploadBytes  = 64 << 20 // 64MB across the whole form
	maxKeywordsShow = 30
)

// docView is the per-document render model for the results page.
type docView struct {
	DocID    string
	FileName string
	Error    string
	Text     string
	Entities []string
	Keywords []string
	Summary  string
	Points   []string
	Metadata [][2]string
	Warnings []string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, indexTmpl, nil)
}

// handleUpload saves each uploaded file, runs the pipeline over it in upload
// order, then removes the temporary copy. A failing file renders an error
// card; the rest of the batch is unaffected.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		http.Error(w, "upload dir: "+err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]docView, 0, len(files))
	for _, fh := range files {
		view := docView{FileName: fh.Filename}

		if !constants.IsAllowed(filepath.Ext(fh.Filename)) {
			view.Error = fmt.Sprintf("unsupported file format: %q", filepath.Ext(fh.Filename))
			views = append(views, view)
			continue
		}

		path, err := s.saveUpload(fh.Filename, fh)
		if err != nil {
			view.Error = err.Error()
			views = append(views, view)
			continue
		}

		doc, err := s.proc.ProcessFile(r.Context(), path)
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove upload", "path", path, "error", rmErr)
		}
		if err != nil {
			view.Error = err.Error()
			views = append(views, view)
			continue
		}

		docID := uuid.New().String()
		s.mu.Lock()
		s.sessions[docID] = &docSession{Text: doc.Text}
		s.mu.Unlock()

		view.DocID = docID
		view.Text = doc.CleanText
		for _, e := range doc.Analysis.Entities {
			view.Entities = append(view.Entities, fmt.Sprintf("%s (%s)", e.Text, e.Label))
		}
		view.Keywords = dedupeKeywords(doc.Analysis.Keywords, maxKeywordsShow)
		view.Summary = doc.Analysis.Summary
		view.Points = doc.Analysis.Points
		view.Metadata = sortedPairs(doc.Metadata)
		view.Warnings = doc.Extraction.Warnings
		views = append(views, view)
	}

	s.render(w, resultsTmpl, views)
}

// handleAsk answers a question over a previously processed document.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocID    string `json:"doc_id"`
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[req.DocID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown document", http.StatusNotFound)
		return
	}

	answer := s.analyzer.Answer(r.Context(), req.Question, sess.Text, sess.History)

	s.mu.Lock()
	sess.History = append(sess.History,
		llm.Message{Role: "user", Content: req.Question},
		llm.Message{Role: "assistant", Content: answer},
	)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		http.Error(w, "export not configured", http.StatusNotFound)
		return
	}
	b, err := s.exporter.ExportDocumentsXLSX(r.Context())
	if err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	_, _ = w.Write(b)
}

func (s *Server) saveUpload(name string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.cfg.UploadDir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// dedupeKeywords trims, deduplicates and caps the keyword list for display.
// The analyzer itself never deduplicates; this is a presentation choice.
func dedupeKeywords(keywords []string, max int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
		if len(out) == max {
			break
		}
	}
	return out
}

func sortedPairs(m map[string]string) [][2]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}
