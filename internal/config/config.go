// Package config loads server configuration from flags and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 25 * 1024 * 1024 // 25MB per uploaded PDF
	DefaultWeeks       = 15
)

// DefaultOrigins are the CORS origins allowed out of the box, matching
// the local frontend dev servers.
var DefaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Config holds all configuration for the syllabus digest server.
type Config struct {
	Host        string
	Port        int
	LogLevel    string
	MaxFileSize int64    // Maximum uploaded PDF size in bytes
	Origins     []string // Allowed CORS origins
	Weeks       int      // Weekly occurrences generated per schedule slot
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
		Origins:     DefaultOrigins,
		Weeks:       DefaultWeeks,
	}
}

// LoadFromFlags parses command line flags, overlays SYLLABUS_* environment
// variables, and returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetEnvPrefix("SYLLABUS")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("origins", cfg.Origins)
	viper.SetDefault("weeks", cfg.Weeks)

	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum uploaded PDF size in bytes")
	pflag.StringSlice("origins", cfg.Origins, "Allowed CORS origins")
	pflag.Int("weeks", cfg.Weeks, "Weekly occurrences generated per schedule slot")

	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("origins", pflag.Lookup("origins"))
	_ = viper.BindPFlag("weeks", pflag.Lookup("weeks"))

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSyllabus Digest - extracts dates, schedules and grading from syllabus PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_MAXFILESIZE  Maximum upload size\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_ORIGINS      Allowed CORS origins (comma separated)\n")
		fmt.Fprintf(os.Stderr, "  SYLLABUS_WEEKS        Weekly occurrences per slot\n")
	}

	pflag.Parse()

	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Origins = viper.GetStringSlice("origins")
	cfg.Weeks = viper.GetInt("weeks")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.Weeks < 1 {
		return errors.New("weeks must be at least 1")
	}
	if len(c.Origins) == 0 {
		return errors.New("at least one CORS origin is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
