package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds deployment settings shared by the CLI and the web server
type Config struct {
	OutputDir string // Directory that rendered images are written under
	Workers   int    // Render workers; 0 means one per CPU
	S3        S3Config
}

// S3Config describes where finished renders are published
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix inside the bucket
	AccessKey string
	SecretKey string
}

// Enabled reports whether a bucket has been configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads the configuration from the environment. Variables from envFile
// are added first without overriding ones already set; a missing file is
// not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	workers, err := getEnvInt("WORKERS", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		OutputDir: getEnv("OUTPUT_DIR", "output"),
		Workers:   workers,
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Prefix:    getEnv("S3_PREFIX", "renders"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}, nil
}

// getEnv returns the variable's value, or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	return n, nil
}
