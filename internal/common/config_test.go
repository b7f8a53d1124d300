package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "./uploads", cfg.Server.UploadDir)
	assert.Equal(t, "soffice", cfg.Extract.Soffice)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "eng", cfg.OCR.TesseractLang)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 15000, cfg.Analyze.MaxChars)
	assert.Equal(t, "./document_metadata.db", cfg.Storage.SQLitePath)
	assert.Empty(t, cfg.Storage.MongoURI)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("OCR_ENGINE", "vision")
	t.Setenv("OPENAI_TIMEOUT", "2m")
	t.Setenv("ANALYZE_MAX_CHARS", "500")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "vision", cfg.OCR.Engine)
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, 500, cfg.Analyze.MaxChars)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ANALYZE_MAX_CHARS", "lots")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 15000, cfg.Analyze.MaxChars)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	cfg.OCR.Engine = "carrier-pigeon"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg = LoadConfig()
	cfg.LLM.APIKey = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "bad value", ErrInvalidInput)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "CONFIG_ERROR")
	assert.Contains(t, err.Error(), "bad value")
}
