package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	OCR     OCRConfig
	LLM     LLMConfig
	Analyze AnalyzeConfig
	Storage StorageConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr  string
	UploadDir string
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Soffice    string // binary name or absolute path for the .doc converter
	ScratchDir string // directory for temporary rasterized pages
}

// OCRConfig holds image-to-text configuration
type OCRConfig struct {
	Engine        string // "tesseract" | "vision"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
}

// LLMConfig holds chat-completion client configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// AnalyzeConfig holds content-analysis configuration
type AnalyzeConfig struct {
	MaxChars int // prefix of the extracted text sent to the LLM
}

// StorageConfig holds persistence sink configuration
type StorageConfig struct {
	SQLitePath string
	MongoURI   string // optional; empty disables the document store sink
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		},
		Extract: ExtractConfig{
			Soffice:    getEnv("SOFFICE_BIN", "soffice"),
			ScratchDir: getEnv("SCRATCH_DIR", os.TempDir()),
		},
		OCR: OCRConfig{
			Engine:        getEnv("OCR_ENGINE", "tesseract"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Analyze: AnalyzeConfig{
			MaxChars: getEnvAsInt("ANALYZE_MAX_CHARS", 15000),
		},
		Storage: StorageConfig{
			SQLitePath: getEnv("SQLITE_PATH", "./document_metadata.db"),
			MongoURI:   getEnv("MONGO_URI", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.OCR.Engine != "tesseract" && c.OCR.Engine != "vision" {
		return NewAppError("CONFIG_ERROR", "OCR_ENGINE must be tesseract or vision", ErrInvalidInput)
	}
	if c.Analyze.MaxChars <= 0 {
		return NewAppError("CONFIG_ERROR", "ANALYZE_MAX_CHARS must be positive", ErrInvalidInput)
	}
	return nil
}
