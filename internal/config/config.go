// Package config loads tossframe settings from an optional YAML file
// overlaid with TOSSFRAME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tossframe/blob"
	"github.com/arloliu/tossframe/format"
)

// EnvPrefix prefixes every environment variable, e.g. TOSSFRAME_LOG_LEVEL.
const EnvPrefix = "TOSSFRAME"

// Config is the complete tossframe configuration.
//
// Leaf fields carry no envconfig tag: a tagged field is also looked up under
// its bare tag name, which would let PATH or TIMEOUT leak in.
type Config struct {
	Log    LogConfig    `yaml:"log" envconfig:"LOG"`
	Codec  CodecConfig  `yaml:"codec" envconfig:"CODEC"`
	Store  StoreConfig  `yaml:"store" envconfig:"STORE"`
	Fetch  FetchConfig  `yaml:"fetch" envconfig:"FETCH"`
	Expand ExpandConfig `yaml:"expand" envconfig:"EXPAND"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// CodecConfig selects how tables are encoded when stored.
type CodecConfig struct {
	Compression string `yaml:"compression"`
	IDEncoding  string `yaml:"id_encoding" split_words:"true"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig bounds remote source downloads.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ExpandConfig tunes parallel expansion. Workers <= 0 means GOMAXPROCS.
type ExpandConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Codec:  CodecConfig{Compression: "zstd", IDEncoding: "delta"},
		Store:  StoreConfig{Path: "tossframe.db"},
		Fetch:  FetchConfig{Timeout: 30 * time.Second},
		Expand: ExpandConfig{Workers: 0},
	}
}

// Load builds the configuration in three layers: defaults, then the YAML file
// at path (skipped when path is empty), then environment variables. The
// result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// no default tags, so unset variables leave earlier layers untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks every field and normalizes names to lower case.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	case "":
		c.Log.Level = "info"
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	c.Codec.Compression = strings.ToLower(c.Codec.Compression)
	if _, ok := format.ParseCompression(c.Codec.Compression); !ok {
		return fmt.Errorf("invalid codec compression: %q", c.Codec.Compression)
	}

	c.Codec.IDEncoding = strings.ToLower(c.Codec.IDEncoding)
	if _, ok := format.ParseEncoding(c.Codec.IDEncoding); !ok {
		return fmt.Errorf("invalid codec id encoding: %q", c.Codec.IDEncoding)
	}

	if c.Store.Path == "" {
		return errors.New("store path must not be empty")
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive: %s", c.Fetch.Timeout)
	}

	if c.Expand.Workers < 0 {
		return fmt.Errorf("expand workers must not be negative: %d", c.Expand.Workers)
	}

	return nil
}

// EncoderOptions converts the codec settings into blob encoder options.
// The config must have been validated.
func (c *Config) EncoderOptions() []blob.EncoderOption {
	comp, _ := format.ParseCompression(c.Codec.Compression)
	enc, _ := format.ParseEncoding(c.Codec.IDEncoding)

	return []blob.EncoderOption{
		blob.WithCompression(comp),
		blob.WithIDEncoding(enc),
	}
}

// Workers returns the effective number of expansion workers.
func (c *Config) Workers() int {
	if c.Expand.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return c.Expand.Workers
}
