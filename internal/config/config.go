// Package config loads the layered runtime configuration SPEC_FULL.md
// §4.7 describes: built-in defaults, then an optional YAML file, then
// environment variable overrides — the same three-layer shape and the
// same gopkg.in/yaml.v3 library the teacher (funvibe-funxy) uses for its
// own funxy.yaml in internal/ext/config.go.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kannanvijayan/whisper/internal/heap"
)

// Slab mirrors heap.Config's shape for YAML decoding.
type Slab struct {
	StandardBytes  uint32 `yaml:"standard_bytes,omitempty"`
	MaxObjectWords uint32 `yaml:"max_object_words,omitempty"`
}

// GC carries the collector knobs YAML can override.
type GC struct {
	PromoteAfter uint8 `yaml:"promote_after,omitempty"`
}

// Log carries internal/logging's knobs.
type Log struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Config is the top-level whisper.yaml document.
type Config struct {
	Slab Slab `yaml:"slab"`
	GC   GC   `yaml:"gc"`
	Log  Log  `yaml:"log"`
}

// Default matches heap.DefaultConfig's values and an Info-level,
// console-only logger.
func Default() Config {
	return Config{
		Slab: Slab{StandardBytes: heap.DefaultConfig().StandardSlabWords * 8, MaxObjectWords: heap.DefaultConfig().MaxObjectWords},
		GC:   GC{PromoteAfter: heap.DefaultConfig().PromoteAfter},
		Log:  Log{Level: "info"},
	}
}

// Load builds a Config by layering defaults, an optional YAML file (path
// resolved from the -config flag value, falling back to WHISPER_CONFIG
// when path is empty), and environment variable overrides, per
// SPEC_FULL.md §4.7.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("WHISPER_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays WHISPER_SLAB_BYTES, WHISPER_MAX_OBJECT_WORDS,
// WHISPER_PROMOTE_AFTER, WHISPER_LOG_LEVEL and WHISPER_LOG_FILE on top of
// whatever the file (or defaults) already set.
func (c *Config) applyEnv() {
	if v := os.Getenv("WHISPER_SLAB_BYTES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Slab.StandardBytes = uint32(n)
		}
	}
	if v := os.Getenv("WHISPER_MAX_OBJECT_WORDS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Slab.MaxObjectWords = uint32(n)
		}
	}
	if v := os.Getenv("WHISPER_PROMOTE_AFTER"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			c.GC.PromoteAfter = uint8(n)
		}
	}
	if v := os.Getenv("WHISPER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WHISPER_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// HeapConfig converts the slab/gc layer into heap.Config, rounding the
// byte-oriented Slab.StandardBytes knob down to the word granularity the
// heap itself works in.
func (c Config) HeapConfig() heap.Config {
	words := c.Slab.StandardBytes / 8
	if words == 0 {
		words = heap.DefaultConfig().StandardSlabWords
	}
	maxWords := c.Slab.MaxObjectWords
	if maxWords == 0 {
		maxWords = heap.DefaultConfig().MaxObjectWords
	}
	return heap.Config{
		StandardSlabWords: words,
		MaxObjectWords:    maxWords,
		PromoteAfter:      c.GC.PromoteAfter,
	}
}
