package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/uyouii/automation-impact/common"
)

type Encoding string

const (
	OneHotEncoding  Encoding = "onehot"
	OrdinalEncoding Encoding = "ordinal"
)

func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case OneHotEncoding, OrdinalEncoding:
		return e, nil
	default:
		return "", fmt.Errorf("%w: unknown encoding %q", common.ErrorInvalidValue, s)
	}
}

type Config struct {
	Data     DataConfig
	Stats    StatsConfig
	Server   ServerConfig
	LogLevel string
}

// DataConfig selects the dataset source: a database when DatabaseURL is set,
// else a file when Path is set, else the builtin sample.
type DataConfig struct {
	Path          string
	DatabaseURL   string
	DatabaseTable string
}

type StatsConfig struct {
	ConfidenceLevel float64
	Alpha           float64
	Encoding        Encoding
	Workers         int
}

type ServerConfig struct {
	ListenAddr string
}

// LoadDotEnv loads .env files into the environment if present. Variables
// already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	return godotenv.Load(files...)
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	encoding, err := ParseEncoding(getEnvOrDefault("IMPACT_ENCODING", string(OneHotEncoding)))
	if err != nil {
		return nil, err
	}

	confidence, err := getEnvFloatOrDefault("IMPACT_CONFIDENCE_LEVEL", 0.95)
	if err != nil {
		return nil, err
	}
	alpha, err := getEnvFloatOrDefault("IMPACT_ALPHA", 0.05)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvIntOrDefault("IMPACT_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Data: DataConfig{
			Path:          os.Getenv("IMPACT_DATA_PATH"),
			DatabaseURL:   os.Getenv("IMPACT_DATABASE_URL"),
			DatabaseTable: getEnvOrDefault("IMPACT_DATABASE_TABLE", "automation_impact"),
		},
		Stats: StatsConfig{
			ConfidenceLevel: confidence,
			Alpha:           alpha,
			Encoding:        encoding,
			Workers:         workers,
		},
		Server: ServerConfig{
			ListenAddr: getEnvOrDefault("IMPACT_LISTEN_ADDR", ":8080"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !(c.Stats.ConfidenceLevel > 0 && c.Stats.ConfidenceLevel < 1) {
		return fmt.Errorf("%w: IMPACT_CONFIDENCE_LEVEL %v", common.ErrorInvalidConfidenceLevel, c.Stats.ConfidenceLevel)
	}
	if !(c.Stats.Alpha > 0 && c.Stats.Alpha < 1) {
		return fmt.Errorf("%w: IMPACT_ALPHA %v", common.ErrorInvalidConfidenceLevel, c.Stats.Alpha)
	}
	if _, err := ParseEncoding(string(c.Stats.Encoding)); err != nil {
		return err
	}
	if c.Stats.Workers < 1 {
		return fmt.Errorf("%w: IMPACT_WORKERS must be at least 1", common.ErrorInvalidValue)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", common.ErrorInvalidValue, key, value)
	}
	return v, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", common.ErrorInvalidValue, key, value)
	}
	return v, nil
}
