// Package config loads draftmark settings.
//
// Layers, lowest priority first: built-in defaults, an optional TOML or
// YAML file, DRAFTMARK_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var (
	ErrUnknownBackend    = errors.New("config: unknown storage backend")
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)

type Config struct {
	Storage Storage `toml:"storage" yaml:"storage"`
	Editor  Editor  `toml:"editor" yaml:"editor"`
	Log     Log     `toml:"log" yaml:"log"`
}

type Storage struct {
	Backend string   `toml:"backend" yaml:"backend"`
	Path    string   `toml:"path" yaml:"path"`
	Key     string   `toml:"key" yaml:"key"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
	// Strict makes a malformed stored document a startup failure instead
	// of falling back to an empty document.
	Strict bool  `toml:"strict" yaml:"strict"`
	Redis  Redis `toml:"redis" yaml:"redis"`
}

type Redis struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

type Editor struct {
	Title        string `toml:"title" yaml:"title"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit"`
	// Debug shows the serialized document below the editor. On by default.
	Debug       bool `toml:"debug" yaml:"debug"`
	PrettyDebug bool `toml:"pretty_debug" yaml:"pretty_debug"`
}

type Log struct {
	// File receives log output; empty discards it.
	File string `toml:"file" yaml:"file"`
}

func Default() Config {
	return Config{
		Storage: Storage{
			Backend: BackendFile,
			Path:    defaultStorePath(),
			Key:     "editorContent",
			Timeout: Duration(2 * time.Second),
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "draftmark:",
			},
		},
		Editor: Editor{
			Title:        "draftmark",
			HistoryLimit: 1000,
			Debug:        true,
		},
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "draftmark.json"
	}
	return filepath.Join(dir, "draftmark", "store.json")
}

// Load returns defaults overlaid with the file at path (when non-empty) and
// the process environment. It does not validate: flags may still override
// the result, so callers run Validate after WithFlags.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.merge(path, data)
}

// merge decodes data over c, picking the format from the path extension.
func (c *Config) merge(path string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return newParseError(path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendFile && c.Storage.Path == "" {
		return errors.New("config: storage.path is required for the file backend")
	}
	if c.Storage.Backend == BackendRedis && c.Storage.Redis.Addr == "" {
		return errors.New("config: storage.redis.addr is required for the redis backend")
	}
	if c.Storage.Timeout < 0 {
		return errors.New("config: storage.timeout must not be negative")
	}
	return nil
}

// Flags holds command-line overrides. Zero fields leave the config alone;
// Debug is a pointer so an explicit -debug=false can switch the readout off.
type Flags struct {
	Store string
	Path  string
	Key   string
	Debug *bool
}

// WithFlags returns c with f applied on top.
func (c Config) WithFlags(f Flags) Config {
	if f.Store != "" {
		c.Storage.Backend = f.Store
	}
	if f.Path != "" {
		c.Storage.Path = f.Path
	}
	if f.Key != "" {
		c.Storage.Key = f.Key
	}
	if f.Debug != nil {
		c.Editor.Debug = *f.Debug
	}
	return c
}
