// Package config loads autolayout settings from TOML or YAML files.
//
// Every field has a default (see [Default]); a file only needs the values it
// changes. The format is picked from the file extension:
//
//	# autolayout.toml
//	[engine]
//	direction = "RIGHT"
//	node_spacing = 60
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/errors"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "AUTOLAYOUT_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Engine engine.Options `toml:"engine" yaml:"engine"`
	Layout LayoutConfig   `toml:"layout" yaml:"layout"`
	Cache  CacheConfig    `toml:"cache" yaml:"cache"`
	Server ServerConfig   `toml:"server" yaml:"server"`
	Log    LogConfig      `toml:"log" yaml:"log"`
}

// LayoutConfig controls the layout run around the engine.
type LayoutConfig struct {
	// OptimizeOnFailure assigns handles with the port optimizer when the
	// engine fails, instead of returning the diagram untouched.
	OptimizeOnFailure bool `toml:"optimize_on_failure" yaml:"optimize_on_failure"`
}

// CacheConfig selects and configures the engine result cache.
type CacheConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	// Dir is the file cache directory. Empty means the user cache directory.
	Dir           string        `toml:"dir" yaml:"dir"`
	RedisAddr     string        `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int           `toml:"redis_db" yaml:"redis_db"`
	Prefix        string        `toml:"prefix" yaml:"prefix"`
	TTL           time.Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `toml:"addr" yaml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout" yaml:"request_timeout"`
	// MaxBodyBytes limits the size of a layout request body.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: engine.DefaultOptions(),
		Cache: CacheConfig{
			Backend: BackendFile,
			Prefix:  "autolayout:",
			TTL:     cache.TTLLayout,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   10 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the file at path over the defaults. An empty path falls back to
// $AUTOLAYOUT_CONFIG, and to the defaults when that is unset too. Unknown
// keys are rejected. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 || c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must be non-negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return lvl, nil
}

// WriteTOML encodes c as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteYAML encodes c as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
