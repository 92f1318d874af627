// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Temp directories, environment variables
// PURPOSE: Test layered configuration loading and validation

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/expando/pkg/config"
	"github.com/arthur-debert/expando/pkg/errors"
	"github.com/arthur-debert/expando/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at an empty temp dir so the host's
// real configuration never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	return dir
}

func writeUserConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Columns)
	assert.Equal(t, 1024, cfg.MaxBytes)
	assert.False(t, cfg.ArrowCursor)
	assert.True(t, cfg.AllowFilter)
	assert.Contains(t, cfg.Templates, "default")
}

func TestLoadUserFile(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, `
max_bytes = 256
arrow_cursor = true

[templates]
mine = "%s here"

[fields]
s = "subject"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.MaxBytes)
	assert.True(t, cfg.ArrowCursor)
	// defaults merge underneath
	assert.True(t, cfg.AllowFilter)
	assert.Equal(t, "%s here", cfg.Templates["mine"])
	assert.Contains(t, cfg.Templates, "default")
	assert.Equal(t, "subject", cfg.Fields["s"])
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "max_bytes = 256\n")

	t.Setenv("EXPANDO_MAX_BYTES", "77")
	t.Setenv("EXPANDO_ALLOW_FILTER", "false")
	t.Setenv("EXPANDO_TEMPLATES__CLOCK", "%{%H:%M}")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 77, cfg.MaxBytes)
	assert.False(t, cfg.AllowFilter)
	assert.Equal(t, "%{%H:%M}", cfg.Templates["clock"])
}

func TestLoadParseError(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "max_bytes = [broken\n")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadValidation(t *testing.T) {
	t.Run("max_bytes must be positive", func(t *testing.T) {
		isolate(t)
		t.Setenv("EXPANDO_MAX_BYTES", "0")

		_, err := config.Load()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("field keys are single characters", func(t *testing.T) {
		dir := isolate(t)
		writeUserConfig(t, dir, "[fields]\nlong = \"x\"\n")

		_, err := config.Load()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestTemplateLookup(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "[templates]\nzz = \"z\"\naa = \"a\"\n")

	cfg, err := config.Load()
	require.NoError(t, err)

	tpl, err := cfg.Template("aa")
	require.NoError(t, err)
	assert.Equal(t, "a", tpl)

	_, err = cfg.Template("missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))

	names := cfg.TemplateNames()
	assert.Equal(t, []string{"aa", "default", "zz"}, names)
}

func TestDefaultTOML(t *testing.T) {
	assert.Contains(t, config.DefaultTOML(), "max_bytes")
}
