package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	invocations [][]string
	stdout      string
	err         error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.invocations = append(s.invocations, append([]string{name}, args...))
	return []byte(s.stdout), nil, s.err
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(1, 1, color.Gray{Y: 200})
	path := filepath.Join(dir, "sample.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestTesseractRecognize(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir)

	runner := &stubRunner{stdout: "recognized text\n"}
	rec := NewTesseract(Config{ScratchDir: dir}, runner, nil)

	got, err := rec.Recognize(context.Background(), imgPath)
	require.NoError(t, err)
	assert.Equal(t, "recognized text\n", got)

	require.Len(t, runner.invocations, 1)
	inv := runner.invocations[0]
	assert.Equal(t, "tesseract", inv[0])
	assert.Equal(t, "stdout", inv[2])
	assert.Equal(t, []string{"-l", "eng"}, inv[3:5])
	// the runner sees the preprocessed copy, not the original
	assert.NotEqual(t, imgPath, inv[1])
	assert.True(t, strings.HasSuffix(inv[1], ".png"))
}

func TestTesseractPreprocessedCopyRemoved(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir)

	runner := &stubRunner{stdout: "ok"}
	rec := NewTesseract(Config{ScratchDir: dir}, runner, nil)

	_, err := rec.Recognize(context.Background(), imgPath)
	require.NoError(t, err)

	pre := runner.invocations[0][1]
	_, statErr := os.Stat(pre)
	assert.True(t, os.IsNotExist(statErr), "preprocessed copy must be cleaned up")
}

func TestTesseractFallsBackWhenPreprocessFails(t *testing.T) {
	// not decodable as an image: preprocessing fails, the original is used
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("not an image"), 0o644))

	runner := &stubRunner{stdout: "still ran"}
	rec := NewTesseract(Config{ScratchDir: dir}, runner, nil)

	got, err := rec.Recognize(context.Background(), imgPath)
	require.NoError(t, err)
	assert.Equal(t, "still ran", got)
	assert.Equal(t, imgPath, runner.invocations[0][1])
}

func TestTesseractRunError(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir)

	runner := &stubRunner{err: errors.New("exit status 1")}
	rec := NewTesseract(Config{ScratchDir: dir}, runner, nil)

	_, err := rec.Recognize(context.Background(), imgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
}

func TestTesseractTessdataDirFlag(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir)

	runner := &stubRunner{stdout: "ok"}
	rec := NewTesseract(Config{ScratchDir: dir, TessdataDir: "/opt/tessdata", TesseractLang: "deu"}, runner, nil)

	_, err := rec.Recognize(context.Background(), imgPath)
	require.NoError(t, err)
	inv := runner.invocations[0]
	assert.Equal(t, []string{"-l", "deu", "--tessdata-dir", "/opt/tessdata"}, inv[3:])
}
