package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("/tmp/custom.yml")
	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "/tmp/custom.yml", yamlPaths[0], "user path comes first")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "bindgen.json"), jsonPaths[0])
	assert.Contains(t, tomlPaths, "/xdg/bindgen/scan.toml")
	assert.Contains(t, yamlPaths, "/etc/bindgen/config.yaml")

	jsonPaths, _, _ = ConfigCandidatePaths("/tmp/custom")
	assert.Equal(t, "/tmp/custom", jsonPaths[0], "unknown extensions go to the JSON loader")
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "bindgen.toml")
	require.NoError(t, EnsureDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
