package configstack

import (
	_ "embed"
)

// Bundled documents shipped with the module. They seed the default layer and
// the base schema so a fresh installation always has a complete, valid
// configuration to start from. Applications replace them by pointing
// [Options.DefaultFile] and [Options.DefaultSchemaFile] at their own files.

//go:embed defaults/configstackrc.json
var bundledConfig []byte

//go:embed defaults/configstackrc_schema.json
var bundledSchema []byte

var bundled = map[string][]byte{
	DefaultConfigPath: bundledConfig,
	DefaultSchemaPath: bundledSchema,
}
