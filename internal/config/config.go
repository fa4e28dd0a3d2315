package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Defaults come from
// Default(), an optional YAML file overlays them, and SOCLENS_* environment
// variables win over both.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration for cmd/web.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the data directory layout.
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	DownloadsDir string `yaml:"downloads_dir" envconfig:"DOWNLOADS_DIR" validate:"required"`
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	CuratedDir   string `yaml:"curated_dir" envconfig:"CURATED_DIR" validate:"required"`
}

// DatabaseConfig contains the Postgres connection settings. An empty DSN
// keeps the loader in CSV-only mode.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

// SourcesConfig contains the upstream dataset locations.
type SourcesConfig struct {
	OEWSURL       string  `yaml:"oews_url" envconfig:"OEWS_URL" validate:"required,url"`
	SkillsURL     string  `yaml:"skills_url" envconfig:"SKILLS_URL" validate:"required,url"`
	ResolveLatest bool    `yaml:"resolve_latest" envconfig:"RESOLVE_LATEST"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gt=0"`
	UserAgent     string  `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
}

// AnalysisConfig parameterizes the hierarchical join and derived reports.
type AnalysisConfig struct {
	// State scopes the closest-parent join (two-letter postal code,
	// lowercase to match the cleaned data).
	State string `yaml:"state" envconfig:"STATE" validate:"required,len=2,lowercase"`
	// ScaleID selects the proficiency scale, e.g. "lv" or "im".
	ScaleID string `yaml:"scale_id" envconfig:"SCALE_ID" validate:"required,lowercase"`
	// TopN bounds the top-codes-by-wage report.
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	// TruthyFlags is the allow-list for the annual/hourly release flags.
	TruthyFlags []string `yaml:"truthy_flags" envconfig:"TRUTHY_FLAGS" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/soclens.log",
		},
		Paths: PathsConfig{
			DataDir:      "data",
			DownloadsDir: "data/downloads",
			RawDir:       "data/raw",
			CuratedDir:   "data/curated",
		},
		Sources: SourcesConfig{
			OEWSURL:      "https://www.bls.gov/oes/special-requests/oesm24st.zip",
			SkillsURL:    "https://www.onetcenter.org/dl_files/database/db_30_0_excel/Skills.xlsx",
			RateLimitRPS: 1,
			UserAgent:    "Mozilla/5.0",
		},
		Analysis: AnalysisConfig{
			State:       "md",
			ScaleID:     "lv",
			TopN:        10,
			TruthyFlags: []string{"true", "t", "yes", "y", "1"},
		},
	}
}

// Load builds the effective configuration: defaults, then the optional
// YAML file (SOCLENS_CONFIG_FILE or ./soclens.yaml), then environment
// variables, then validation.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("SOCLENS", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func configFilePath() string {
	if path := os.Getenv("SOCLENS_CONFIG_FILE"); path != "" {
		return path
	}
	const defaultFile = "soclens.yaml"
	if _, err := os.Stat(defaultFile); err == nil {
		return defaultFile
	}
	return ""
}
