package configstack

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Source ────────────────────────────────────────────────────────────────────

// TestSource_String verifies the human-readable layer names.
func TestSource_String(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceDefault, "default"},
		{SourceEnvironment, "environment"},
		{SourceHome, "home"},
		{SourceCwd, "cwd"},
		{Source(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.source.String())
	}
}

// ── layerPaths ────────────────────────────────────────────────────────────────

// TestLayerPaths_AllLocationsConfigured verifies the candidate list: fixed
// order, well-known file names under the directories, and only the default
// layer marked required.
func TestLayerPaths_AllLocationsConfigured(t *testing.T) {
	c := &Config{opts: Options{
		DefaultFile: "/d/default.json",
		ConfigFile:  "/e/env.json",
		HomeDir:     "/home/u",
		WorkDir:     "/w",
	}}

	paths := c.layerPaths()
	require.Len(t, paths, 4)

	assert.Equal(t, layerPath{source: SourceDefault, path: "/d/default.json", required: true}, paths[0])
	assert.Equal(t, layerPath{source: SourceEnvironment, path: "/e/env.json"}, paths[1])
	assert.Equal(t, layerPath{source: SourceHome, path: filepath.Join("/home/u", ConfigFileName)}, paths[2])
	assert.Equal(t, layerPath{source: SourceCwd, path: filepath.Join("/w", ConfigFileName)}, paths[3])
}

// TestLayerPaths_UnresolvedLocationsStayEmpty verifies that layers without a
// location keep an empty path and stay optional.
func TestLayerPaths_UnresolvedLocationsStayEmpty(t *testing.T) {
	clearLoaderEnv(t)
	c := &Config{opts: Options{DefaultFile: "/d/default.json"}}

	paths := c.layerPaths()
	require.Len(t, paths, 4)

	assert.True(t, paths[0].required)
	for _, p := range paths[1:] {
		assert.Empty(t, p.path, "layer %s should have no path", p.source)
		assert.False(t, p.required)
	}
}

// TestLayerPaths_EnvironmentLayerFollowsVariable verifies that with no
// explicit ConfigFile the environment layer's candidate comes from the
// CONFIGSTACK_CONFIG variable at the time of the call.
func TestLayerPaths_EnvironmentLayerFollowsVariable(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv(EnvConfigFile, "/e/env.json")

	c := &Config{opts: Options{DefaultFile: "/d/default.json"}}

	paths := c.layerPaths()
	require.Len(t, paths, 4)
	assert.Equal(t, layerPath{source: SourceEnvironment, path: "/e/env.json"}, paths[1])
}
