package export

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/seyi-adel/docintake/internal/repository"
)

type memRepo struct {
	recs []repository.DocumentRecord
	err  error
}

func (m *memRepo) SaveDocument(_ context.Context, rec repository.DocumentRecord) (int64, error) {
	m.recs = append(m.recs, rec)
	return int64(len(m.recs)), nil
}

func (m *memRepo) ListDocuments(context.Context) ([]repository.DocumentRecord, error) {
	return m.recs, m.err
}

func TestExportDocumentsXLSX(t *testing.T) {
	repo := &memRepo{recs: []repository.DocumentRecord{
		{ID: 1, FilePath: "/data/a.pdf", Title: "Report A", Author: "Ada"},
		{ID: 2, FilePath: "/data/b.txt", Title: "", Author: ""},
	}}
	svc := NewService(repo, nil)

	b, err := svc.ExportDocumentsXLSX(context.Background())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "File Path", "Title", "Author"}, rows[0])
	assert.Equal(t, []string{"1", "/data/a.pdf", "Report A", "Ada"}, rows[1])
	assert.Equal(t, "/data/b.txt", rows[2][1])
}

func TestExportDocumentsXLSXEmpty(t *testing.T) {
	svc := NewService(&memRepo{}, nil)

	b, err := svc.ExportDocumentsXLSX(context.Background())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}

func TestExportQueryFailure(t *testing.T) {
	svc := NewService(&memRepo{err: errors.New("db closed")}, nil)

	_, err := svc.ExportDocumentsXLSX(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db closed")
}
