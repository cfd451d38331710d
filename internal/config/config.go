// Package config loads CLI settings from a yaml file, a dotenv file and the
// process environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Accepted log_level values.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Accepted log_format values.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Environment variables that override file settings.
const (
	EnvLogLevel        = "ZIPTREE_LOG_LEVEL"
	EnvLogFormat       = "ZIPTREE_LOG_FORMAT"
	EnvWorkers         = "ZIPTREE_WORKERS"
	EnvVerifyChecksums = "ZIPTREE_VERIFY_CHECKSUMS"
)

const (
	defaultWorkers     = 4
	defaultMaxDepth    = 256
	defaultMaxFileSize = 256 << 20
	defaultMaxEntries  = 0xffff
)

// CodecConfig holds the limits applied to every codec the CLI builds.
type CodecConfig struct {
	MaxDepth        int    `yaml:"max_depth"`
	MaxFileSize     uint64 `yaml:"max_file_size"`
	MaxEntries      int    `yaml:"max_entries"`
	VerifyChecksums bool   `yaml:"verify_checksums"`
}

// Config is the CLI configuration file.
type Config struct {
	LogLevel  string      `yaml:"log_level"`
	LogFormat string      `yaml:"log_format"`
	Workers   int         `yaml:"workers"`
	Codec     CodecConfig `yaml:"codec"`
}

// SetDefaults fills every field with its default value.
func (c *Config) SetDefaults() {
	c.LogLevel = LogLevelInfo
	c.LogFormat = LogFormatText
	c.Workers = defaultWorkers
	c.Codec = CodecConfig{
		MaxDepth:        defaultMaxDepth,
		MaxFileSize:     defaultMaxFileSize,
		MaxEntries:      defaultMaxEntries,
		VerifyChecksums: true,
	}
}

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from defaults, then the yaml file at path, then the
// dotenv file at envFile, then lookup. Later sources win. Empty paths are
// skipped, and a missing dotenv file is ignored.
func Load(fsys afero.Fs, path, envFile string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if path != "" {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
		}
	}

	dotenv, err := readDotenv(fsys, envFile)
	if err != nil {
		return nil, err
	}
	get := func(key string) (string, bool) {
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(get); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDotenv(fsys afero.Fs, envFile string) (map[string]string, error) {
	if envFile == "" {
		return nil, nil
	}
	data, err := afero.ReadFile(fsys, envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read env file: %w", err)
	}
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot parse env file %s: %w", envFile, err)
	}
	return env, nil
}

func (c *Config) applyEnv(get LookupFunc) error {
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.LogFormat = v
	}
	if v, ok := get(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v, ok := get(EnvVerifyChecksums); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerifyChecksums, err)
		}
		c.Codec.VerifyChecksums = b
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Codec.MaxDepth < 0 || c.Codec.MaxEntries < 0 {
		return errors.New("codec limits must not be negative")
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug, nil
	case LogLevelInfo:
		return slog.LevelInfo, nil
	case LogLevelWarn:
		return slog.LevelWarn, nil
	case LogLevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// Logger returns a logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	lo := &slog.HandlerOptions{Level: level}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, lo)), nil
	}
	return slog.New(slog.NewTextHandler(w, lo)), nil
}
