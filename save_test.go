package configstack

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── SaveConfig ────────────────────────────────────────────────────────────────

// TestSaveConfig_BeforeLoad verifies the ErrNotLoaded contract.
func TestSaveConfig_BeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, _ := newTestConfig(t, ctrl, goodLayers())
	assert.ErrorIs(t, c.SaveConfig("/out/config.json"), ErrNotLoaded)
}

// TestSaveConfig_WritesIndentedJSON verifies the on-disk format: indented
// JSON, trailing newline, content equal to the current configuration.
func TestSaveConfig_WritesIndentedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, mockFS := newLoadedConfig(t, ctrl, goodLayers())

	var written []byte
	mockFS.EXPECT().
		WriteFile("/out/config.json", gomock.Any(), fs.FileMode(0o644)).
		DoAndReturn(func(_ string, data []byte, _ fs.FileMode) error {
			written = data
			return nil
		})

	require.NoError(t, c.SaveConfig("/out/config.json"))

	assert.True(t, strings.HasSuffix(string(written), "\n"), "saved file should end with a newline")
	assert.Contains(t, string(written), "\n    \"", "content should be indented")

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(written, &roundTrip))
	assert.Equal(t, c.Current(), roundTrip)
}

// TestSaveConfig_PropagatesWriteError verifies that filesystem failures
// surface with the target path.
func TestSaveConfig_PropagatesWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, mockFS := newLoadedConfig(t, ctrl, goodLayers())

	mockFS.EXPECT().
		WriteFile("/out/config.json", gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	err := c.SaveConfig("/out/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "/out/config.json")
}

// ── layer save targets ────────────────────────────────────────────────────────

// TestSaveToHome_WritesToHomeLayerFile verifies the home target path.
func TestSaveToHome_WritesToHomeLayerFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, mockFS := newLoadedConfig(t, ctrl, goodLayers())

	mockFS.EXPECT().
		WriteFile(filepath.Join(testHomeDir, ConfigFileName), gomock.Any(), fs.FileMode(0o644)).
		Return(nil)

	require.NoError(t, c.SaveToHome())
}

// TestSaveToCwd_WritesToCwdLayerFile verifies the cwd target path.
func TestSaveToCwd_WritesToCwdLayerFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, mockFS := newLoadedConfig(t, ctrl, goodLayers())

	mockFS.EXPECT().
		WriteFile(filepath.Join(testWorkDir, ConfigFileName), gomock.Any(), fs.FileMode(0o644)).
		Return(nil)

	require.NoError(t, c.SaveToCwd())
}

// TestSaveToEnv_WritesToEnvFile verifies the environment target path.
func TestSaveToEnv_WritesToEnvFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, mockFS := newLoadedConfig(t, ctrl, goodLayers())

	mockFS.EXPECT().
		WriteFile(testEnvFile, gomock.Any(), fs.FileMode(0o644)).
		Return(nil)

	require.NoError(t, c.SaveToEnv())
}

// TestSaveToEnv_NoPathConfigured verifies the error when the environment
// layer has no file at all.
func TestSaveToEnv_NoPathConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	clearLoaderEnv(t)

	files := goodLayers()
	delete(files, testEnvFile)

	c, err := NewWithOptions(Options{
		DefaultFile:       testDefaultFile,
		DefaultSchemaFile: testSchemaFile,
		HomeDir:           testHomeDir,
		WorkDir:           testWorkDir,
		FileSystem:        newMapFS(t, ctrl, files),
	})
	require.NoError(t, err)

	_, err = c.LoadDefault()
	require.NoError(t, err)

	assert.ErrorIs(t, c.SaveToEnv(), errNoEnvironmentPath)
}

// TestSaveTargets_UnresolvedLocations verifies the errors for targets whose
// directory or file never resolved (home lookup failed, working directory
// gone, no environment file configured).
func TestSaveTargets_UnresolvedLocations(t *testing.T) {
	clearLoaderEnv(t)
	c := &Config{opts: Options{}}

	assert.ErrorIs(t, c.SaveToHome(), errNoHomePath)
	assert.ErrorIs(t, c.SaveToCwd(), errNoWorkPath)
	assert.ErrorIs(t, c.SaveToEnv(), errNoEnvironmentPath)
}

// TestSaveToCwd_RoundTripsThroughLoad exercises the real filesystem: a value
// added and saved to the cwd layer survives a fresh load.
func TestSaveToCwd_RoundTripsThroughLoad(t *testing.T) {
	clearLoaderEnv(t)

	workDir := t.TempDir()
	c, err := NewWithOptions(Options{HomeDir: t.TempDir(), WorkDir: workDir})
	require.NoError(t, err)

	_, err = c.LoadDefault()
	require.NoError(t, err)

	require.NoError(t, c.Add("theme", "dark"))
	require.NoError(t, c.SaveToCwd())

	reloaded, err := NewWithOptions(Options{HomeDir: t.TempDir(), WorkDir: workDir})
	require.NoError(t, err)

	_, err = reloaded.LoadDefault()
	require.NoError(t, err)

	theme, ok := reloaded.GetString("user.theme")
	require.True(t, ok)
	assert.Equal(t, "dark", theme)
	assert.Contains(t, reloaded.LoadedFiles(), filepath.Join(workDir, ConfigFileName))
}
