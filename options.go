// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configstack

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every environment variable the loader itself
// reads. The designated variable naming the environment-layer file is
// therefore [EnvConfigFile].
const envPrefix = "CONFIGSTACK_"

// EnvConfigFile is the environment variable that names the configuration
// file of the environment layer. It is consulted on every load (and by
// [Config.SaveToEnv]) unless [Options.ConfigFile] pins the path; when
// neither is set, the layer is skipped.
const EnvConfigFile = envPrefix + "CONFIG"

// Options configure a [Config] instance. Every field is optional: unset
// fields are filled from environment variables (prefix CONFIGSTACK_) and then
// from built-in defaults, in that order, so a caller-supplied non-zero value
// always wins.
//
// Struct tags:
//   - env — environment variable name relative to the CONFIGSTACK_ prefix
//     (caarlos0/env).
type Options struct {
	// ConfigFile is the path of the environment layer's configuration file.
	// Usually left empty: the CONFIGSTACK_CONFIG variable is then consulted
	// on every load, so the layer follows the variable as it changes. A
	// non-empty value pins the layer to that file. Empty both ways means the
	// environment layer is skipped.
	ConfigFile string `env:"-"`

	// DefaultFile is the path of the default (lowest precedence) layer.
	// Defaults to [DefaultConfigPath], the bundled document. The default
	// layer is required: a missing file here fails the load.
	DefaultFile string `env:"DEFAULT_FILE"`

	// DefaultSchemaFile is the path of the base schema. Defaults to
	// [DefaultSchemaPath], the bundled document. The base schema is required.
	DefaultSchemaFile string `env:"DEFAULT_SCHEMA_FILE"`

	// HomeDir is the directory the home layer is resolved against. Defaults
	// to the current user's home directory; when empty after resolution the
	// home layer is skipped.
	HomeDir string `env:"HOME_DIR"`

	// WorkDir is the directory the cwd layer is resolved against. Defaults
	// to the process working directory; when empty after resolution the cwd
	// layer is skipped.
	WorkDir string `env:"WORK_DIR"`

	// ValidateOnUpdate makes Update, Add and AddWithSchema re-validate the
	// configuration against the active schema and reject the change on
	// violation. Off by default: a load validates once and later programmatic
	// updates are trusted.
	ValidateOnUpdate bool `env:"VALIDATE_ON_UPDATE"`

	// DisableUserSchemas skips the per-layer user schema files so only the
	// base schema is applied.
	DisableUserSchemas bool `env:"DISABLE_USER_SCHEMAS"`

	// FileSystem is the file access used by the loader. Defaults to the OS
	// filesystem wrapped by [NewBundleFileSystem]. Tests inject an in-memory
	// implementation here.
	FileSystem FileSystem `env:"-"`

	// Logger receives debug output of the load pipeline. Defaults to a no-op
	// logger; the library writes nothing unless one is provided. [NewLogger]
	// builds a ready stderr logger, or wrap an existing zerolog.Logger in a
	// [Logger].
	Logger *Logger `env:"-"`
}

type optionsBuilder struct {
	layers []Options
	err    error
}

func newOptionsBuilder() *optionsBuilder {
	return &optionsBuilder{
		layers: make([]Options, 0, 3),
	}
}

// build folds the collected option sets in order. mergo keeps fields already
// set by an earlier set, so earlier entries take precedence over later ones.
func (b *optionsBuilder) build() (Options, error) {
	if b.err != nil {
		return Options{}, fmt.Errorf("error occurred during building options: %w", b.err)
	}

	var opts Options
	for _, layer := range b.layers {
		if err := mergo.Merge(&opts, layer); err != nil {
			return Options{}, fmt.Errorf("error merging options: %w", err)
		}
	}

	return opts, nil
}

func (b *optionsBuilder) withCaller(opts Options) *optionsBuilder {
	b.layers = append(b.layers, opts)
	return b
}

func (b *optionsBuilder) withEnv() *optionsBuilder {
	var envOpts Options
	if err := env.ParseWithOptions(&envOpts, env.Options{Prefix: envPrefix}); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env options: %w", err))
		return b
	}

	b.layers = append(b.layers, envOpts)
	return b
}

func (b *optionsBuilder) withDefaults() *optionsBuilder {
	b.layers = append(b.layers, defaultOptions())
	return b
}

// defaultOptions binds the external collaborators: the bundled documents for
// the default layer and base schema, and the OS notions of home and working
// directory. Resolution failures leave the directory empty, which downgrades
// the corresponding layer to "absent".
func defaultOptions() Options {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()

	return Options{
		DefaultFile:       DefaultConfigPath,
		DefaultSchemaFile: DefaultSchemaPath,
		HomeDir:           home,
		WorkDir:           wd,
	}
}
