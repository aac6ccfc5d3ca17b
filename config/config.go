package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StartYear int    `envconfig:"START_YEAR" default:"2002" validate:"gte=2002,lte=2100"`
	EndYear   int    `envconfig:"END_YEAR" default:"2025" validate:"gte=2002,lte=2100,gtefield=StartYear"`
	Seed      uint64 `envconfig:"SEED" default:"42"`

	OutputDir   string `envconfig:"OUTPUT_DIR" default:"./output" validate:"required"`
	RegionsFile string `envconfig:"REGIONS_FILE"`

	WriteXLSX    bool   `envconfig:"WRITE_XLSX" default:"true"`
	RenderCharts bool   `envconfig:"RENDER_CHARTS" default:"true"`
	ChartEach    bool   `envconfig:"CHART_EACH" default:"false"`
	PDFReport    bool   `envconfig:"PDF_REPORT" default:"false"`
	ChromeBin    string `envconfig:"CHROME_BIN"`

	PostgresEnabled  bool   `envconfig:"POSTGRES_ENABLED" default:"false"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"market"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"market123"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"texas_market"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxConcurrency   int `envconfig:"MAX_CONCURRENCY" default:"4" validate:"gte=1"`
	BatchRateLimitMs int `envconfig:"BATCH_RATE_LIMIT_MS" default:"0" validate:"gte=0"`
	MaxRetries       int `envconfig:"MAX_RETRIES" default:"3" validate:"gte=1"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Env      string `envconfig:"APP_ENV" default:"development"`
}

// Load reads the .env file if present, then the environment, and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
