package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/seyi-adel/docintake/internal/repository"
)

// Service is a tiny façade over the metadata repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.MetadataRepository
	logger *slog.Logger
}

func NewService(repo repository.MetadataRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportDocumentsXLSX returns an XLSX workbook (as bytes) listing every
// processed document on record.
func (s *Service) ExportDocumentsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"ID", "File Path", "Title", "Author"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.ID)
		write(2, r.FilePath)
		write(3, r.Title)
		write(4, r.Author)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.documents.ok",
		"rows", len(recs),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
