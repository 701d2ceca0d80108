// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configstack

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-config-stack/internal/logger"
)

// Config loads, merges and validates a layered configuration. A fresh
// instance holds no configuration; [Config.LoadDefault] installs the merged
// mapping only after it passed validation, so a failed load leaves the
// instance exactly as it was — there is no partially loaded state.
//
// Instances are independent of each other and are meant for the
// single-threaded load-at-startup pattern; none of the methods synchronize.
type Config struct {
	opts Options
	fs   FileSystem
	log  *logger.Logger

	current     map[string]any
	raw         []byte
	schema      map[string]any
	loadedFiles []string
}

// New returns a Config with default options: bundled default documents, the
// OS filesystem, home and working directories resolved from the process
// environment, and the environment layer taken from CONFIGSTACK_CONFIG.
func New() (*Config, error) {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a Config using opts. Unset fields are filled from
// CONFIGSTACK_* environment variables and then from built-in defaults, so
// callers only specify what they want to change.
func NewWithOptions(opts Options) (*Config, error) {
	resolved, err := newOptionsBuilder().
		withCaller(opts).
		withEnv().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	fs := resolved.FileSystem
	if fs == nil {
		fs = NewBundleFileSystem(NewOSFileSystem())
	}

	log := resolved.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Config{opts: resolved, fs: fs, log: log}, nil
}

// LoadDefault runs the full pipeline: resolve the active schema, load the
// four layers in fixed order (default, environment, home, cwd — ascending
// precedence, missing optional layers skipped), deep-merge them, validate
// the merged mapping against the schema. On success the mapping is stored
// and returned; any stage error is propagated unchanged and the previously
// stored configuration, if any, stays in place.
func (c *Config) LoadDefault() (map[string]any, error) {
	log := c.loadLogger()

	schema, err := c.ResolveSchema()
	if err != nil {
		log.Debug().Err(err).Msg("schema resolution failed")
		return nil, err
	}

	layers, err := c.loadLayers(log)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]any, len(layers))
	files := make([]string, len(layers))
	for i, layer := range layers {
		data[i] = layer.Data
		files[i] = layer.Path
	}

	merged := Merge(data...)
	log.Debug().Int("layers", len(layers)).Int("keys", len(merged)).Msg("layers merged")

	if err := c.Validate(merged, schema); err != nil {
		log.Debug().Err(err).Msg("merged configuration failed validation")
		return nil, err
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("serializing merged configuration: %w", err)
	}

	c.current = merged
	c.raw = raw
	c.schema = schema
	c.loadedFiles = files

	log.Debug().Strs("files", files).Msg("configuration loaded")
	return merged, nil
}

// LoadConfig reads a single configuration file and parses it into a mapping.
// It is used internally for every layer and exposed so callers can load an
// arbitrary extra file through the same rules: [ErrFileNotFound] when the
// file does not exist, [ErrMalformedConfig] when it exists but is not a JSON
// object. It does not touch the stored configuration.
func (c *Config) LoadConfig(path string) (map[string]any, error) {
	if !c.fs.IsFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	if config == nil {
		return nil, fmt.Errorf("%w: %s: top-level value is not a JSON object", ErrMalformedConfig, path)
	}

	return config, nil
}

// Current returns the effective configuration, or nil when nothing is
// loaded. The mapping is the live one owned by the Config: treat it as
// read-only and go through [Config.Update] for changes so the serialized
// view used by Get stays in sync.
func (c *Config) Current() map[string]any {
	return c.current
}

// Loaded reports whether a configuration has been loaded successfully.
func (c *Config) Loaded() bool {
	return c.current != nil
}

// LoadedFiles returns the paths that contributed to the current
// configuration, in the order they were merged. Nil when nothing is loaded.
func (c *Config) LoadedFiles() []string {
	return c.loadedFiles
}

// loadLogger returns a child logger with a fresh load_id so all lines of one
// load pass can be correlated.
func (c *Config) loadLogger() *logger.Logger {
	log := c.log.GetChildLogger()
	log.UpdateContext(func(zc zerolog.Context) zerolog.Context {
		return zc.Str("load_id", uuid.NewString())
	})
	return log
}
