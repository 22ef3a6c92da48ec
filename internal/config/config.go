package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// ConnectTimeoutSec bounds both the driver dial and the startup ping.
	ConnectTimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
// When PublicBaseURL is set, object URLs are built from it instead of being presigned.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
	PresignExpiry time.Duration
}

// LLMConfig configures the hosted language model used for structured lease extraction.
type LLMConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Temperature   float32
	MaxTokens     int
	MaxInputChars int
	Timeout       time.Duration
}

// ExtractConfig configures document fetching and text extraction.
// A zero FetchTimeout leaves the HTTP transport defaults in place.
type ExtractConfig struct {
	FetchTimeout  time.Duration
	MaxFetchBytes int64
	TesseractPath string
	TesseractLang string
}

// UploadConfig holds the intake limits applied before a file reaches object storage.
type UploadConfig struct {
	MaxFileBytes int64
	Folder       string
}

// LogConfig selects the application log level and format (json or text).
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	Database DatabaseConfig
	MinIO    MinIOConfig
	LLM      LLMConfig
	Extract  ExtractConfig
	Upload   UploadConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
			PresignExpiry: getEnvDuration("MINIO_PRESIGN_EXPIRY", 7*24*time.Hour),
		},
		LLM: LLMConfig{
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_BASE_URL", ""),
			Model:         getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature:   getEnvFloat32("LLM_TEMPERATURE", 0.1),
			MaxTokens:     getEnvInt("LLM_MAX_TOKENS", 2000),
			MaxInputChars: getEnvInt("LLM_MAX_INPUT_CHARS", 15000),
			Timeout:       getEnvDuration("LLM_TIMEOUT", 0),
		},
		Extract: ExtractConfig{
			FetchTimeout:  getEnvDuration("EXTRACT_FETCH_TIMEOUT", 0),
			MaxFetchBytes: getEnvInt64("EXTRACT_MAX_FETCH_BYTES", 50<<20),
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
		},
		Upload: UploadConfig{
			MaxFileBytes: getEnvInt64("UPLOAD_MAX_FILE_BYTES", 50<<20),
			Folder:       getEnv("UPLOAD_FOLDER", "lease-processor"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat32(key string, def float32) float32 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err == nil {
			return float32(f)
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90s", "2m").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
