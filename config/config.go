package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "RELGEN_"

// RunConfig controls where and how the fixed dataset is emitted. The shape
// of the dataset itself lives in datagen.DefaultConfig.
type RunConfig struct {
	OutputDir   string
	Seed        int64
	LogLevel    string
	LogFormat   string
	Compression string
	Verify      bool
	Manifest    bool
	Clean       bool
	LoadDB      bool
	ResetDB     bool
	DBBatchSize int
	Upload      bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		OutputDir:   ".",
		LogLevel:    "info",
		LogFormat:   "text",
		Compression: "none",
		Verify:      true,
		DBBatchSize: 500,
	}
}

// LoadRunConfig reads RELGEN_* variables, after loading a .env file when one
// is present.
func LoadRunConfig() RunConfig {
	_ = godotenv.Load()

	def := DefaultRunConfig()
	return RunConfig{
		OutputDir:   envString("OUTPUT_DIR", def.OutputDir),
		Seed:        envInt64("SEED", def.Seed),
		LogLevel:    envString("LOG_LEVEL", def.LogLevel),
		LogFormat:   envString("LOG_FORMAT", def.LogFormat),
		Compression: strings.ToLower(envString("COMPRESSION", def.Compression)),
		Verify:      envBool("VERIFY", def.Verify),
		Manifest:    envBool("MANIFEST", def.Manifest),
		Clean:       envBool("CLEAN", def.Clean),
		LoadDB:      envBool("LOAD_DB", def.LoadDB),
		ResetDB:     envBool("RESET_DB", def.ResetDB),
		DBBatchSize: int(envInt64("DB_BATCH_SIZE", int64(def.DBBatchSize))),
		Upload:      envBool("UPLOAD", def.Upload),
	}
}

func (c RunConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	switch c.Compression {
	case "", "none", "lz4", "zstd", "zst":
	default:
		return fmt.Errorf("invalid compression %q (must be none, lz4 or zstd)", c.Compression)
	}
	if c.LoadDB && c.DBBatchSize <= 0 {
		return fmt.Errorf("db batch size must be greater than 0")
	}
	info, err := os.Stat(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to stat output directory %s: %w", c.OutputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", c.OutputDir)
	}
	return nil
}

// EffectiveSeed returns the configured seed, or a time-based one when unset.
func (c RunConfig) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	Region    string
	Secure    bool
}

func LoadObjectStoreConfig() ObjectStoreConfig {
	_ = godotenv.Load()

	return ObjectStoreConfig{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
		Region:    os.Getenv("S3_REGION"),
		Secure:    parseBoolOr(os.Getenv("S3_SECURE"), true),
	}
}

func (c ObjectStoreConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required for upload")
	}
	if c.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required for upload")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	return parseBoolOr(os.Getenv(envPrefix+key), fallback)
}

func envInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseBoolOr(val string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return fallback
	}
}
