package configstack

import (
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-config-stack/internal/logger"
)

// Well-known file names resolved against the home and working directories,
// and the virtual paths of the documents bundled with the module.
const (
	// ConfigFileName is the configuration file looked up in the home and
	// working directories.
	ConfigFileName = "configstackrc.json"

	// SchemaFileName is the user schema file looked up next to each optional
	// configuration file.
	SchemaFileName = "configstackrc_schema.json"

	// DefaultConfigPath is the well-known path of the bundled default
	// configuration. The "embed:" prefix keeps it out of the real filesystem
	// namespace; [NewBundleFileSystem] serves it.
	DefaultConfigPath = "embed:defaults/" + ConfigFileName

	// DefaultSchemaPath is the well-known path of the bundled base schema.
	DefaultSchemaPath = "embed:defaults/" + SchemaFileName
)

// Source identifies where a configuration layer comes from. The declaration
// order is the merge order: later sources override earlier ones.
type Source uint8

const (
	// SourceDefault is the bundled (or overridden) default configuration.
	// It is the only layer that must exist.
	SourceDefault Source = iota
	// SourceEnvironment is the file named by the CONFIGSTACK_CONFIG variable.
	SourceEnvironment
	// SourceHome is ConfigFileName under the user's home directory.
	SourceHome
	// SourceCwd is ConfigFileName under the process working directory.
	SourceCwd
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceEnvironment:
		return "environment"
	case SourceHome:
		return "home"
	case SourceCwd:
		return "cwd"
	default:
		return "unknown"
	}
}

// Layer is one configuration source loaded during a pass: its origin, the
// file it was read from, and the parsed mapping. Layers exist only while a
// load is in flight; the merged result does not reference them.
type Layer struct {
	Source Source
	Path   string
	Data   map[string]any
}

type layerPath struct {
	source   Source
	path     string
	required bool
}

// environmentFile returns the environment layer's file path: the explicit
// [Options.ConfigFile] when set, otherwise the CONFIGSTACK_CONFIG variable
// as it stands right now. The variable is read on every call, so the layer
// follows changes made after construction.
func (c *Config) environmentFile() string {
	if c.opts.ConfigFile != "" {
		return c.opts.ConfigFile
	}
	return os.Getenv(EnvConfigFile)
}

// layerPaths returns the candidate configuration files in ascending
// precedence order. An empty path means the layer has no location at all
// (environment variable unset, home or working directory unresolved).
func (c *Config) layerPaths() []layerPath {
	paths := []layerPath{
		{source: SourceDefault, path: c.opts.DefaultFile, required: true},
		{source: SourceEnvironment, path: c.environmentFile()},
	}

	if c.opts.HomeDir != "" {
		paths = append(paths, layerPath{source: SourceHome, path: filepath.Join(c.opts.HomeDir, ConfigFileName)})
	} else {
		paths = append(paths, layerPath{source: SourceHome})
	}

	if c.opts.WorkDir != "" {
		paths = append(paths, layerPath{source: SourceCwd, path: filepath.Join(c.opts.WorkDir, ConfigFileName)})
	} else {
		paths = append(paths, layerPath{source: SourceCwd})
	}

	return paths
}

// loadLayers reads every present layer in merge order. A missing optional
// layer is skipped; a missing default layer or any parse failure aborts the
// pass with the loader's error untouched.
func (c *Config) loadLayers(log *logger.Logger) ([]Layer, error) {
	candidates := c.layerPaths()
	layers := make([]Layer, 0, len(candidates))

	for _, candidate := range candidates {
		if !candidate.required {
			if candidate.path == "" || !c.fs.IsFile(candidate.path) {
				log.Debug().Stringer("layer", candidate.source).Msg("optional layer absent, skipped")
				continue
			}
		}

		data, err := c.LoadConfig(candidate.path)
		if err != nil {
			log.Debug().Stringer("layer", candidate.source).Str("path", candidate.path).Err(err).Msg("layer failed to load")
			return nil, err
		}

		log.Debug().Stringer("layer", candidate.source).Str("path", candidate.path).Int("keys", len(data)).Msg("layer loaded")
		layers = append(layers, Layer{Source: candidate.source, Path: candidate.path, Data: data})
	}

	return layers, nil
}
