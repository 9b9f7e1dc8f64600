package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	OCR      OCRConfig      `yaml:"ocr"`
	LLM      LLMConfig      `yaml:"llm"`
	Registry RegistryConfig `yaml:"registry"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Intake   IntakeConfig   `yaml:"intake"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds database-related configuration.
// DSN is either a postgres:// URL or sqlite://<path> (sqlite://:memory: for ephemeral runs).
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn" validate:"required"`
	MaxConns         int32         `yaml:"max_conns"`
	MinConns         int32         `yaml:"min_conns"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time"`
	DialTimeout      time.Duration `yaml:"dial_timeout"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr    string `yaml:"grpc_addr" validate:"required"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Language         string `yaml:"language"`
	TessdataDir      string `yaml:"tessdata_dir"`
	WordConverter    string `yaml:"word_converter"`
	DPI              int    `yaml:"dpi" validate:"gte=0"`
	MaxPages         int    `yaml:"max_pages" validate:"gte=0"`
	ArtifactCacheDir string `yaml:"artifact_cache_dir"`
}

// LLMConfig holds text-generation configuration
type LLMConfig struct {
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"-"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float32       `yaml:"temperature" validate:"gte=0,lte=2"`
	TopP        float32       `yaml:"top_p" validate:"gte=0,lte=1"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// RegistryConfig configures the land-records proxy.
type RegistryConfig struct {
	Mode                    string        `yaml:"mode" validate:"oneof=mock http"`
	BaseURL                 string        `yaml:"base_url" validate:"required_if=Mode http"`
	APIKey                  string        `yaml:"-"`
	RateLimitDelay          time.Duration `yaml:"rate_limit_delay"`
	Timeout                 time.Duration `yaml:"timeout"`
	GovernmentSurveyNumbers []string      `yaml:"government_survey_numbers"`
}

// AnalysisConfig selects the section analysis strategy and its synthesis parameters.
type AnalysisConfig struct {
	Strategy          string  `yaml:"strategy" validate:"oneof=service synthesis"`
	SuccessRatio      float64 `yaml:"success_ratio" validate:"gte=0,lte=1"`
	SuccessConfidence []int   `yaml:"success_confidence" validate:"min=1,dive,gte=0,lte=100"`
	IssueConfidence   []int   `yaml:"issue_confidence" validate:"min=1,dive,gte=0,lte=100"`
	Seed              int64   `yaml:"seed"`
}

// IntakeConfig bounds file intake.
type IntakeConfig struct {
	MaxUploadBytes     int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	MaxLandUploadBytes int64         `yaml:"max_land_upload_bytes" validate:"gt=0"`
	Concurrency        int           `yaml:"concurrency" validate:"gte=1"`
	WatchDirs          []string      `yaml:"watch_dirs"`
	Debounce           time.Duration `yaml:"debounce"`
	Workers            int           `yaml:"workers" validate:"gte=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// DefaultConfig returns the built-in defaults before any file or env overlay.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             "sqlite://landdoc.db",
			MaxConns:        20,
			MinConns:        5,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		Server: ServerConfig{
			GRPCAddr:    ":8080",
			MetricsAddr: ":9090",
		},
		OCR: OCRConfig{
			Language:         "eng",
			WordConverter:    "soffice",
			DPI:              300,
			ArtifactCacheDir: "./tmp",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			TopP:        0.9,
			MaxTokens:   500,
			Timeout:     45 * time.Second,
			MinInterval: time.Second,
		},
		Registry: RegistryConfig{
			Mode:                    "mock",
			RateLimitDelay:          2 * time.Second,
			Timeout:                 30 * time.Second,
			GovernmentSurveyNumbers: []string{"SF No. 999/1", "SF No. 888/2"},
		},
		Analysis: AnalysisConfig{
			Strategy:          "synthesis",
			SuccessRatio:      0.7,
			SuccessConfidence: []int{85, 88, 90, 92, 95},
			IssueConfidence:   []int{25, 30, 35, 40, 45},
		},
		Intake: IntakeConfig{
			MaxUploadBytes:     50 << 20,
			MaxLandUploadBytes: 10 << 20,
			Concurrency:        4,
			Debounce:           500 * time.Millisecond,
			Workers:            2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig builds configuration from defaults, an optional YAML file named by
// LANDDOC_CONFIG, and finally environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv("LANDDOC_CONFIG"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, NewAppError(CodeConfig, "read "+path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func applyEnv(c *Config) {
	c.Database.DSN = getEnv("DB_URL", c.Database.DSN)
	c.Database.MaxConns = getEnvAsInt32("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvAsInt32("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.MaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", c.Database.MaxConnLifetime)
	c.Database.MaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", c.Database.MaxConnIdleTime)
	c.Database.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", c.Database.DialTimeout)
	c.Database.StatementTimeout = getEnvAsDuration("DB_STATEMENT_TIMEOUT", c.Database.StatementTimeout)

	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)
	c.Server.MetricsAddr = getEnv("METRICS_ADDR", c.Server.MetricsAddr)

	c.OCR.Language = getEnv("OCR_LANG", c.OCR.Language)
	c.OCR.TessdataDir = getEnv("TESSDATA_PREFIX", c.OCR.TessdataDir)
	c.OCR.WordConverter = getEnv("WORD_CONVERTER", c.OCR.WordConverter)
	c.OCR.DPI = getEnvAsInt("OCR_DPI", c.OCR.DPI)
	c.OCR.MaxPages = getEnvAsInt("OCR_MAX_PAGES", c.OCR.MaxPages)
	c.OCR.ArtifactCacheDir = getEnv("ARTIFACT_CACHE_DIR", c.OCR.ArtifactCacheDir)

	c.LLM.Model = getEnv("OPENAI_MODEL", c.LLM.Model)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	c.LLM.BaseURL = getEnv("OPENAI_BASE_URL", c.LLM.BaseURL)
	c.LLM.Temperature = getEnvAsFloat32("OPENAI_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("OPENAI_TIMEOUT", c.LLM.Timeout)
	c.LLM.MinInterval = getEnvAsDuration("LLM_MIN_INTERVAL", c.LLM.MinInterval)

	c.Registry.Mode = getEnv("REGISTRY_MODE", c.Registry.Mode)
	c.Registry.BaseURL = getEnv("REGISTRY_URL", c.Registry.BaseURL)
	c.Registry.APIKey = getEnv("REGISTRY_API_KEY", c.Registry.APIKey)
	c.Registry.RateLimitDelay = getEnvAsDuration("REGISTRY_RATE_LIMIT_DELAY", c.Registry.RateLimitDelay)
	c.Registry.Timeout = getEnvAsDuration("REGISTRY_TIMEOUT", c.Registry.Timeout)
	c.Registry.GovernmentSurveyNumbers = getEnvAsList("REGISTRY_GOVERNMENT_SURVEYS", c.Registry.GovernmentSurveyNumbers)

	c.Analysis.Strategy = getEnv("ANALYSIS_STRATEGY", c.Analysis.Strategy)
	c.Analysis.SuccessRatio = getEnvAsFloat64("ANALYSIS_SUCCESS_RATIO", c.Analysis.SuccessRatio)
	c.Analysis.Seed = getEnvAsInt64("ANALYSIS_SEED", c.Analysis.Seed)

	c.Intake.MaxUploadBytes = getEnvAsInt64("MAX_UPLOAD_BYTES", c.Intake.MaxUploadBytes)
	c.Intake.MaxLandUploadBytes = getEnvAsInt64("MAX_LAND_UPLOAD_BYTES", c.Intake.MaxLandUploadBytes)
	c.Intake.Concurrency = getEnvAsInt("INTAKE_CONCURRENCY", c.Intake.Concurrency)
	c.Intake.WatchDirs = getEnvAsList("WATCH_DIRS", c.Intake.WatchDirs)
	c.Intake.Debounce = getEnvAsDuration("WATCH_DEBOUNCE", c.Intake.Debounce)
	c.Intake.Workers = getEnvAsInt("QUEUE_WORKERS", c.Intake.Workers)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))
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

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
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

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

// comma separated; "none" clears the list
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "none" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return NewAppError(CodeConfig, "invalid configuration", err)
	}
	if c.Analysis.Strategy == "service" && c.LLM.APIKey == "" {
		return NewAppError(CodeConfig, "OPENAI_API_KEY is required for ANALYSIS_STRATEGY=service", ErrInvalidInput)
	}
	if c.Intake.MaxLandUploadBytes > c.Intake.MaxUploadBytes {
		return NewAppError(CodeConfig,
			fmt.Sprintf("land upload limit %d exceeds general limit %d", c.Intake.MaxLandUploadBytes, c.Intake.MaxUploadBytes),
			ErrInvalidInput)
	}
	return nil
}
