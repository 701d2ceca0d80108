package configstack

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// SaveConfig writes the current configuration to path as indented JSON
// through the configured [FileSystem]. Returns [ErrNotLoaded] before the
// first successful load.
func (c *Config) SaveConfig(path string) error {
	if c.current == nil {
		return ErrNotLoaded
	}

	data, err := json.MarshalIndent(c.current, "", "    ")
	if err != nil {
		return fmt.Errorf("serializing configuration: %w", err)
	}

	if err := c.fs.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	c.log.Debug().Str("path", path).Msg("configuration saved")
	return nil
}

// SaveToHome writes the current configuration to the home layer's file.
func (c *Config) SaveToHome() error {
	if c.opts.HomeDir == "" {
		return errNoHomePath
	}
	return c.SaveConfig(filepath.Join(c.opts.HomeDir, ConfigFileName))
}

// SaveToEnv writes the current configuration to the environment layer's
// file. Fails when no environment config path is available (no explicit
// [Options.ConfigFile] and the CONFIGSTACK_CONFIG variable unset).
func (c *Config) SaveToEnv() error {
	path := c.environmentFile()
	if path == "" {
		return errNoEnvironmentPath
	}
	return c.SaveConfig(path)
}

// SaveToCwd writes the current configuration to the cwd layer's file.
func (c *Config) SaveToCwd() error {
	if c.opts.WorkDir == "" {
		return errNoWorkPath
	}
	return c.SaveConfig(filepath.Join(c.opts.WorkDir, ConfigFileName))
}
