// Package metadata derives descriptive metadata for a file, selecting the
// strategy by extension: PDF document properties, image EXIF tags, or generic
// filesystem stats. Extraction never fails outright; any error comes back as
// an "error" entry in the map.
package metadata

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/gen2brain/go-fitz"

	"github.com/seyi-adel/docintake/constants"
)

const notAvailable = "Not Available"

type Extractor struct {
	pdfProps func(path string) (map[string]string, error)
	logger   *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{pdfProps: fitzProps, logger: logger}
}

// Extract derives metadata based on file type.
func (e *Extractor) Extract(path string) map[string]string {
	switch constants.MapExtToFormat(filepath.Ext(path)) {
	case constants.PDF:
		return e.pdfMetadata(path)
	case constants.IMAGE:
		return e.imageMetadata(path)
	default:
		return e.generalMetadata(path)
	}
}

func (e *Extractor) pdfMetadata(path string) map[string]string {
	props, err := e.pdfProps(path)
	if err != nil {
		e.logger.Warn("pdf metadata extraction failed", "path", path, "error", err)
		return map[string]string{"error": err.Error()}
	}
	return map[string]string{
		"file_path":    path,
		"title":        orNotAvailable(props["title"]),
		"author":       orNotAvailable(props["author"]),
		"subject":      orNotAvailable(props["subject"]),
		"keywords":     orNotAvailable(props["keywords"]),
		"creationDate": FormatPDFDate(props["creationDate"]),
		"modDate":      FormatPDFDate(props["modDate"]),
	}
}

// generalMetadata reports filesystem attributes for formats without an
// embedded metadata block.
func (e *Extractor) generalMetadata(path string) map[string]string {
	fi, err := os.Stat(path)
	if err != nil {
		e.logger.Warn("stat failed", "path", path, "error", err)
		return map[string]string{"error": err.Error()}
	}
	out := map[string]string{
		"size (bytes)":  strconv.FormatInt(fi.Size(), 10),
		"last modified": strconv.FormatInt(fi.ModTime().Unix(), 10),
	}
	// inode change time, the closest portable analogue of a creation stamp
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		out["creation time"] = strconv.FormatInt(st.Ctim.Sec, 10)
	}
	return out
}

func fitzProps(path string) (map[string]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.Metadata(), nil
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
