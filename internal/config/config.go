package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/mdsplit/internal/chunker"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Splitting defaults
	DefaultMaxCost    int
	Tokenizer         string
	ManifestForSingle bool

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("MDSPLIT_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMaxCost:    envInt("DEFAULT_MAX_COST", chunker.DefaultMaxCost),
		Tokenizer:         envOr("TOKENIZER", "heuristic"),
		ManifestForSingle: envBool("MANIFEST_FOR_SINGLE", false),

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// Validate rejects settings that would make every request fail.
func (c Config) Validate() error {
	if c.DefaultMaxCost <= 0 {
		return fmt.Errorf("DEFAULT_MAX_COST must be positive, got %d", c.DefaultMaxCost)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// SplitOptions builds the default chunker options. Resolving a tiktoken
// encoding may fetch its tables, so this is called once at startup.
func (c Config) SplitOptions() (chunker.Options, error) {
	cost, err := chunker.CostFuncByName(c.Tokenizer)
	if err != nil {
		return chunker.Options{}, err
	}
	return chunker.Options{
		MaxCost:           c.DefaultMaxCost,
		Cost:              cost,
		ManifestForSingle: c.ManifestForSingle,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
