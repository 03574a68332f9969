package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sift.yaml")
	content := `verbose: true
purify:
  css:
    - "assets/*.css"
  disjunctive: true
define:
  values:
    DEBUG: "false"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, loadConfigFromPath(path))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"assets/*.css"}, k.Strings("purify.css"))
	assert.True(t, k.Bool("purify.disjunctive"))
	assert.Equal(t, "false", k.String("define.values.DEBUG"))
}

func TestLoadConfigFromPath_MissingFileIsFine(t *testing.T) {
	err := loadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
}

func TestLoadConfigFromPath_EnvOverride(t *testing.T) {
	t.Setenv("SIFT_PURIFY_STRICT", "true")
	require.NoError(t, loadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.True(t, k.Bool("purify.strict"))
}

func TestGetWithFallback(t *testing.T) {
	require.NoError(t, k.Set("direct", "flag-value"))
	require.NoError(t, k.Set("nested.key", "file-value"))

	assert.Equal(t, "flag-value", getStringWithFallback("direct", "nested.key", "default"))
	assert.Equal(t, "file-value", getStringWithFallback("missing", "nested.key", "default"))
	assert.Equal(t, "default", getStringWithFallback("missing", "also-missing", "default"))
}
