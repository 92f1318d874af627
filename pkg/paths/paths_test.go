// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables
// PURPOSE: Test path resolution and environment overrides

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/expando/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Run("env_override", func(t *testing.T) {
		t.Setenv(paths.EnvConfigDir, "/custom/config")
		assert.Equal(t, "/custom/config", paths.ConfigDir())
	})

	t.Run("xdg_fallback", func(t *testing.T) {
		t.Setenv(paths.EnvConfigDir, "")
		dir := paths.ConfigDir()
		assert.Equal(t, paths.AppDirName, filepath.Base(dir))
	})
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", paths.ConfigFileName), paths.ConfigFilePath())
}

func TestStateDir(t *testing.T) {
	t.Setenv(paths.EnvStateDir, "/custom/state")
	assert.Equal(t, "/custom/state", paths.StateDir())
	assert.Equal(t, filepath.Join("/custom/state", paths.LogFileName), paths.LogFilePath())
}

func TestDataDir(t *testing.T) {
	t.Setenv(paths.EnvDataDir, "/custom/data")
	assert.Equal(t, "/custom/data", paths.DataDir())
}

func TestPrettyPath(t *testing.T) {
	t.Setenv(paths.EnvHome, "/home/alice")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"inside_home", "/home/alice/src/expando", "~/src/expando"},
		{"home_itself", "/home/alice", "~"},
		{"outside_home", "/etc/hosts", "/etc/hosts"},
		{"sibling_prefix", "/home/alicesmith/notes", "/home/alicesmith/notes"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.PrettyPath(tt.path))
		})
	}
}
