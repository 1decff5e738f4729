package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Preview   PreviewConfig   `yaml:"preview" envconfig:"PREVIEW"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// StorageConfig selects and configures the document store
type StorageConfig struct {
	Driver     string `yaml:"driver" envconfig:"DRIVER"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

// PreviewConfig contains layout preview session configuration
type PreviewConfig struct {
	MaxSessions int `yaml:"max_sessions" envconfig:"MAX_SESSIONS"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	Enabled         bool `yaml:"enabled" envconfig:"ENABLED"`
	ReadBufferSize  int  `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE"`
	WriteBufferSize int  `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceToStdout bool   `yaml:"trace_to_stdout" envconfig:"TRACE_TO_STDOUT"`
}

// Load loads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		path = getConfigFilePath()
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Only variables that are set override earlier values
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration and normalises enumerated values
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage data dir is required for the file driver")
		}
	case StorageDriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage sqlite path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.Preview.MaxSessions <= 0 {
		return fmt.Errorf("preview max sessions must be positive")
	}

	// Logs are always JSON
	c.Logging.Format = "json"

	switch c.Logging.Output {
	case "console", "stderr", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Storage: StorageConfig{
			Driver:     StorageDriverMemory,
			DataDir:    DefaultDataDir,
			SQLitePath: DefaultSQLitePath,
		},
		Preview: PreviewConfig{
			MaxSessions: DefaultMaxPreviewSessions,
		},
		WebSocket: WebSocketConfig{
			Enabled:         true,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			EnableMetrics: true,
			EnableTracing: false,
			TraceToStdout: false,
		},
	}
}
