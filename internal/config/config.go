// Package config loads the settings of the automata CLI and servers.
// Order: defaults -> automata.yaml -> environment variables -> command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "automata.yaml"

// Session backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config contains all settings.
type Config struct {
	Log      LogConfig     `json:"log" yaml:"log"`
	Server   ServerConfig  `json:"server" yaml:"server"`
	Sessions SessionConfig `json:"sessions" yaml:"sessions"`
	History  HistoryConfig `json:"history" yaml:"history"`
	Library  LibraryConfig `json:"library" yaml:"library"`

	// MaxInputSize bounds test strings, in bytes.
	MaxInputSize int `json:"max_input_size" yaml:"max_input_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// ServerConfig configures `automata serve`.
type ServerConfig struct {
	Port int `json:"port" yaml:"port"`
	// MetricsPort exposes /metrics on its own listener; 0 disables it.
	MetricsPort       int  `json:"metrics_port" yaml:"metrics_port"`
	RequestValidation bool `json:"request_validation" yaml:"request_validation"`
}

// SessionConfig selects where step sessions are kept.
type SessionConfig struct {
	Backend string        `json:"backend" yaml:"backend"`
	Dir     string        `json:"dir,omitempty" yaml:"dir,omitempty"`
	TTL     time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig addresses the Redis session backend.
type RedisConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	// Password supports ${VAR} syntax for env vars.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// HistoryConfig configures the SQLite run history. An empty path disables it.
type HistoryConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LibraryConfig locates the automaton library.
type LibraryConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// String prevents accidental password logging.
func (c RedisConfig) String() string {
	password := ""
	if c.Password != "" {
		password = "(set)"
	}
	return fmt.Sprintf("RedisConfig{Addr:%s, DB:%d, Password:%s}", c.Addr, c.DB, password)
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:              8080,
			RequestValidation: true,
		},
		Sessions: SessionConfig{
			Backend: BackendFile,
			Dir:     ".automata/sessions",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Library:      LibraryConfig{Dir: "."},
		MaxInputSize: 4096,
	}
}

// Load reads path, or DefaultFile when path is empty and the file exists, then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileConfig
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Sessions.Redis.Password = expandEnvVars(cfg.Sessions.Redis.Password)
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	switch c.Sessions.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("invalid session backend: %s (valid: memory, file, redis)", c.Sessions.Backend))
	}
	if c.Sessions.Backend == BackendRedis && c.Sessions.Redis.Addr == "" {
		errs = append(errs, errors.New("redis session backend requires an address"))
	}
	if c.Sessions.TTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must be non-negative, got %v", c.Sessions.TTL))
	}
	if !validPort(c.Server.Port) || c.Server.Port == 0 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Server.Port))
	}
	if !validPort(c.Server.MetricsPort) {
		errs = append(errs, fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort))
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.Port {
		errs = append(errs, fmt.Errorf("metrics port %d collides with the server port", c.Server.MetricsPort))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize))
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error)", c.Log.Level))
	}

	return errors.Join(errs...)
}

func validPort(p int) bool {
	return p >= 0 && p <= 65535
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AUTOMATA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AUTOMATA_SESSION_BACKEND"); v != "" {
		cfg.Sessions.Backend = v
	}
	if v := os.Getenv("AUTOMATA_SESSION_DIR"); v != "" {
		cfg.Sessions.Dir = v
	}
	if v := os.Getenv("AUTOMATA_REDIS_ADDR"); v != "" {
		cfg.Sessions.Redis.Addr = v
	}
	if v := os.Getenv("AUTOMATA_REDIS_PASSWORD"); v != "" {
		cfg.Sessions.Redis.Password = v
	}
	if v := os.Getenv("AUTOMATA_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("AUTOMATA_LIBRARY_DIR"); v != "" {
		cfg.Library.Dir = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"AUTOMATA_PORT", &cfg.Server.Port},
		{"AUTOMATA_METRICS_PORT", &cfg.Server.MetricsPort},
		{"AUTOMATA_REDIS_DB", &cfg.Sessions.Redis.DB},
		{"AUTOMATA_MAX_INPUT_SIZE", &cfg.MaxInputSize},
	}
	for _, i := range ints {
		v := os.Getenv(i.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", i.env, err)
		}
		*i.dst = n
	}

	if v := os.Getenv("AUTOMATA_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AUTOMATA_SESSION_TTL: %w", err)
		}
		cfg.Sessions.TTL = ttl
	}
	return nil
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
