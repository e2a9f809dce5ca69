package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the server configuration, read from environment variables.
type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:8080"`

	// DatabaseURL selects the PostgreSQL repositories when set; the server
	// falls back to in-memory repositories otherwise.
	DatabaseURL string `env:"DATABASE_URL"`

	// StorageBackend selects the blob store: "fs", "memory" or "s3".
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"fs"`

	FSBaseDir string `env:"FS_BASE_DIR" env-default:"./data/storage"`

	S3Region              string `env:"S3_REGION"`
	S3Bucket              string `env:"S3_BUCKET"`
	S3AccessKeyID         string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey     string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint            string `env:"S3_ENDPOINT"`
	S3UsePathStyle        bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucketMissing bool   `env:"S3_CREATE_BUCKET_IF_NOT_EXIST" env-default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	switch cfg.StorageBackend {
	case "fs", "memory", "s3":
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.StorageBackend == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
	}

	return &cfg, nil
}
