package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/seyi-adel/docintake/constants"
)

// extractDOC converts a legacy .doc to a sibling .docx with LibreOffice and
// reads that. A failed or missing converter is only logged: the docx open
// that follows reports the real file-not-found condition.
func (e *Extractor) extractDOC(ctx context.Context, path string) (TextExtractionResult, error) {
	// soffice --headless --convert-to docx --outdir <dir> <path>
	outDir := filepath.Dir(path)
	if _, errb, err := e.runner.Run(ctx, e.cfg.Soffice, "--headless", "--convert-to", "docx", "--outdir", outDir, path); err != nil {
		e.logger.Warn("doc conversion failed",
			"path", path,
			"converter", e.cfg.Soffice,
			"error", err,
			"stderr", truncate(string(errb), 1<<10),
		)
	}

	docxPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".docx"
	res, err := e.extractDOCX(docxPath)
	res.SourceType = constants.DOC
	res.Method = "doc-convert"
	return res, err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
