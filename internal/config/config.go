package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when neither an inline key nor a key file is configured
var ErrMissingAPIKey = errors.New("no DataPoint API key configured (set datapoint.apikey or datapoint.apikeyfile)")

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	DataPoint DataPointConfig
	Pipeline  PipelineConfig
	Storage   StorageConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int    `validate:"min=1,max=65535"`
	GinMode string `validate:"oneof=debug release test"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string `validate:"oneof=json text"`
}

// DataPointConfig holds the Met Office DataPoint client configuration
type DataPointConfig struct {
	APIKey     string
	APIKeyFile string
	BaseURL    string        `validate:"required,url"`
	Timeout    time.Duration `validate:"gt=0"`
}

// PipelineConfig holds the ETL run configuration
type PipelineConfig struct {
	Locations      []string // place names resolved through the site list
	LocationIDs    []string // site ids fetched directly
	OutputDir      string   `validate:"required"`
	RawFile        string   `validate:"required"`
	ProcessedFile  string   `validate:"required"`
	Mode           string   `validate:"oneof=lenient strict"`
	Categories     string   `validate:"oneof=grouped detailed"`
	MappingsFile   string   // optional override for the embedded mappings
	SkipUnresolved bool
}

// StorageConfig holds the run ledger configuration
type StorageConfig struct {
	Enabled bool
	Path    string `validate:"required_if=Enabled true"`
}

// Load reads configuration from an optional .env file, a config file and
// environment variables. An explicit path overrides the config file search.
func Load(path string) (*Config, error) {
	// A missing .env file is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.datapoint-forecast")
	}

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("datapoint.apikey", "")
	v.SetDefault("datapoint.apikeyfile", "api_key.txt")
	v.SetDefault("datapoint.baseurl", "http://datapoint.metoffice.gov.uk/public/data/")
	v.SetDefault("datapoint.timeout", "30s")
	v.SetDefault("pipeline.locations", []string{})
	v.SetDefault("pipeline.locationids", []string{})
	v.SetDefault("pipeline.outputdir", "data")
	v.SetDefault("pipeline.rawfile", "raw_data.csv")
	v.SetDefault("pipeline.processedfile", "data_processed.csv")
	v.SetDefault("pipeline.mode", "lenient")
	v.SetDefault("pipeline.categories", "grouped")
	v.SetDefault("pipeline.mappingsfile", "")
	v.SetDefault("pipeline.skipunresolved", false)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.path", "data/runs.db")

	// Read from environment variables, e.g. DATAPOINT_FORECAST_DATAPOINT_APIKEY
	v.SetEnvPrefix("DATAPOINT_FORECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// APIKey returns the inline API key, or the trimmed contents of the key file
func (c *Config) APIKey(fsys afero.Fs) (string, error) {
	if key := strings.TrimSpace(c.DataPoint.APIKey); key != "" {
		return key, nil
	}
	if c.DataPoint.APIKeyFile == "" {
		return "", ErrMissingAPIKey
	}

	data, err := afero.ReadFile(fsys, c.DataPoint.APIKeyFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrMissingAPIKey
		}
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file %s is empty", c.DataPoint.APIKeyFile)
	}
	return key, nil
}

// OutputPaths returns the raw and processed dataset paths
func (c *Config) OutputPaths() (raw, processed string) {
	return filepath.Join(c.Pipeline.OutputDir, c.Pipeline.RawFile),
		filepath.Join(c.Pipeline.OutputDir, c.Pipeline.ProcessedFile)
}

// NewLogger creates a new slog.Logger based on the configuration.
// Logs go to stderr so command output on stdout stays clean.
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
