package configstack

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveSchema assembles the schema the next validation will run against:
// the base schema, extended by the `properties` subtree of every user schema
// file that exists. Fragments are applied in layer order (environment, home,
// cwd) with the same deep-merge rule as the configuration itself, so a
// fragment can declare a single nested property without repeating the rest
// of the document. The `required` list always comes from the base schema
// alone.
//
// The document is computed fresh on every call and never cached, so mutating
// a returned schema cannot leak into later loads.
func (c *Config) ResolveSchema() (map[string]any, error) {
	schema, err := c.loadSchemaFile(c.opts.DefaultSchemaFile)
	if err != nil {
		return nil, err
	}

	if c.opts.DisableUserSchemas {
		return schema, nil
	}

	for _, path := range c.fragmentPaths() {
		if path == "" || !c.fs.IsFile(path) {
			continue
		}

		fragment, err := c.loadSchemaFile(path)
		if err != nil {
			return nil, err
		}

		mergeSchemaProperties(schema, fragment)
	}

	return schema, nil
}

// fragmentPaths returns the candidate user schema files in layer order. The
// environment fragment sits next to the environment configuration file; the
// home and cwd fragments use the well-known [SchemaFileName] in their
// directories.
func (c *Config) fragmentPaths() []string {
	paths := make([]string, 0, 3)

	if envFile := c.environmentFile(); envFile != "" {
		paths = append(paths, filepath.Join(filepath.Dir(envFile), SchemaFileName))
	}
	if c.opts.HomeDir != "" {
		paths = append(paths, filepath.Join(c.opts.HomeDir, SchemaFileName))
	}
	if c.opts.WorkDir != "" {
		paths = append(paths, filepath.Join(c.opts.WorkDir, SchemaFileName))
	}

	return paths
}

// loadSchemaFile reads and parses one schema document. A missing file is
// [ErrFileNotFound] (the caller decides whether the file was optional), an
// unparsable or non-object document is [ErrMalformedSchema].
func (c *Config) loadSchemaFile(path string) (map[string]any, error) {
	if !c.fs.IsFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSchema, path, err)
	}
	if schema == nil {
		return nil, fmt.Errorf("%w: %s: top-level value is not a JSON object", ErrMalformedSchema, path)
	}

	return schema, nil
}

// mergeSchemaProperties deep-merges the fragment's `properties` subtree into
// the base document. Everything else in the fragment (required, $schema,
// titles) is deliberately ignored.
func mergeSchemaProperties(base, fragment map[string]any) {
	fragProps, ok := fragment["properties"].(map[string]any)
	if !ok {
		return
	}

	baseProps, ok := base["properties"].(map[string]any)
	if !ok {
		baseProps = make(map[string]any)
		base["properties"] = baseProps
	}

	deepMerge(baseProps, fragProps)
}

// Describe returns the description declared for a dotted key in the active
// schema. It consults the schema of the current load, or resolves one fresh
// when nothing is loaded yet, so fragment-provided descriptions are visible.
func (c *Config) Describe(path string) (string, error) {
	schema := c.schema
	if schema == nil {
		var err error
		schema, err = c.ResolveSchema()
		if err != nil {
			return "", err
		}
	}

	node := schema
	for _, segment := range strings.Split(path, ".") {
		props, ok := node["properties"].(map[string]any)
		if !ok {
			return "", fmt.Errorf("no schema entry for %q", path)
		}
		node, ok = props[segment].(map[string]any)
		if !ok {
			return "", fmt.Errorf("no schema entry for %q", path)
		}
	}

	description, ok := node["description"].(string)
	if !ok {
		return "", fmt.Errorf("no description for %q", path)
	}

	return description, nil
}

// ensureMap returns parent[key] as a mapping, inserting an empty one when the
// key is absent or holds a non-object value.
func ensureMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	parent[key] = m
	return m
}
