// Test Type: Integration Test
// Description: Drives the full command tree in process and checks the
// rendered output for each command and format.

package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/expando/internal/cli"
	"github.com/arthur-debert/expando/pkg/config"
	"github.com/arthur-debert/expando/pkg/paths"
	"github.com/arthur-debert/expando/pkg/ui/display"
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

// runCmd executes the command tree with args and returns what it wrote
// to the command output stream.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRenderCmd(t *testing.T) {
	isolate(t)

	t.Run("inline template with fields", func(t *testing.T) {
		out, err := runCmd(t, "render", "%h:%f", "--field", "h=mail", "--field", "f=inbox", "--cols", "80", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "mail:inbox\n", out)
	})

	t.Run("flag fields override config fields", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		writeUserConfig(t, dir, "[fields]\nf = \"config\"\n")

		out, err := runCmd(t, "render", "<%f>", "--field", "f=flag", "--cols", "80", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "<flag>\n", out)
	})

	t.Run("justification fills the column budget", func(t *testing.T) {
		out, err := runCmd(t, "render", "a%>-b", "--cols", "10", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "a--------b\n", out)
	})

	t.Run("max-bytes caps the output", func(t *testing.T) {
		out, err := runCmd(t, "render", "abcdefgh", "--cols", "80", "--max-bytes", "5", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "abcd\n", out)
	})

	t.Run("named template from config", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		writeUserConfig(t, dir, "[templates]\nmine = \"[%f]\"\n\n[fields]\nf = \"x\"\n")

		out, err := runCmd(t, "render", "--name", "mine", "--cols", "80", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "[x]\n", out)
	})

	t.Run("default template when no argument", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		writeUserConfig(t, dir, "[templates]\ndefault = \"ok\"\n")

		out, err := runCmd(t, "render", "--cols", "80", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("argument and name together fail", func(t *testing.T) {
		_, err := runCmd(t, "render", "%h", "--name", "mine", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not both")
	})

	t.Run("unknown template name fails", func(t *testing.T) {
		_, err := runCmd(t, "render", "--name", "nope", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no template named")
	})

	t.Run("malformed field flag fails", func(t *testing.T) {
		_, err := runCmd(t, "render", "%h", "--field", "hh=x", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "char=value")

		_, err = runCmd(t, "render", "%h", "--field", "noequals", "--format", "text")
		require.Error(t, err)
	})

	t.Run("json report", func(t *testing.T) {
		out, err := runCmd(t, "render", "hi", "--cols", "80", "--format", "json")
		require.NoError(t, err)

		var report display.RenderReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "hi", report.Template)
		assert.Equal(t, "hi", report.Output)
		assert.Equal(t, 2, report.Width)
		assert.Equal(t, 2, report.Bytes)
		assert.Equal(t, 80, report.Columns)
	})

	t.Run("no-filter renders the pipe literally", func(t *testing.T) {
		out, err := runCmd(t, "render", "echo hi|", "--no-filter", "--cols", "80", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "echo hi|\n", out)
	})
}

func TestCheckCmd(t *testing.T) {
	isolate(t)

	t.Run("clean inline template", func(t *testing.T) {
		out, err := runCmd(t, "check", "%h:%d", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "%h:%d: ok\n", out)
	})

	t.Run("broken inline template", func(t *testing.T) {
		out, err := runCmd(t, "check", "%<x", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 1 problem(s)")
		assert.Contains(t, out, "%<x:0: conditional missing '?' after the directive character")
	})

	t.Run("mixed arguments report every problem", func(t *testing.T) {
		out, err := runCmd(t, "check", "%h", "%", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, out, "%h: ok")
		assert.Contains(t, out, "unfinished directive")
	})

	t.Run("named template from config", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		writeUserConfig(t, dir, "[templates]\nbad = \"%<t?x\"\n")

		out, err := runCmd(t, "check", "--name", "bad", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, out, "bad:0: conditional not closed with '>'")
	})

	t.Run("all configured templates by default", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvConfigDir, dir)
		writeUserConfig(t, dir, "[templates]\ndefault = \"fine\"\nbad = \"%\"\n")

		out, err := runCmd(t, "check", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, out, "default: ok")
		assert.Contains(t, out, "bad:0:")
	})

	t.Run("arguments and name together fail", func(t *testing.T) {
		_, err := runCmd(t, "check", "%h", "--name", "x", "--format", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not both")
	})

	t.Run("json report", func(t *testing.T) {
		out, err := runCmd(t, "check", "%|", "--format", "json")
		require.Error(t, err)

		var report display.CheckReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "%|", report.Template)
		require.Len(t, report.Problems, 1)
		assert.Equal(t, 0, report.Problems[0].Offset)
	})
}

func TestListCmd(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "[templates]\ndefault = \"d\"\nzz = \"z\"\naa = \"a\"\n")

	t.Run("text", func(t *testing.T) {
		out, err := runCmd(t, "list", "--format", "text")
		require.NoError(t, err)
		assert.Equal(t, "aa\ta\ndefault\td\nzz\tz\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCmd(t, "list", "--format", "json")
		require.NoError(t, err)

		var list display.TemplateList
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list.Templates, 3)
		assert.Equal(t, "aa", list.Templates[0].Name)
	})
}

func TestGenConfigCmd(t *testing.T) {
	t.Run("prints the defaults", func(t *testing.T) {
		isolate(t)
		out, err := runCmd(t, "gen-config")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTOML(), out)
	})

	t.Run("write creates the user file once", func(t *testing.T) {
		isolate(t)

		out, err := runCmd(t, "gen-config", "--write")
		require.NoError(t, err)
		assert.Contains(t, out, paths.ConfigFilePath())

		content, err := os.ReadFile(paths.ConfigFilePath())
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTOML(), string(content))

		_, err = runCmd(t, "gen-config", "--write")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("effective shows merged values", func(t *testing.T) {
		dir := isolate(t)
		writeUserConfig(t, dir, "max_bytes = 256\n")

		out, err := runCmd(t, "gen-config", "--effective")
		require.NoError(t, err)
		assert.Contains(t, out, "max_bytes = 256")
	})
}

func TestManCmd(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, err := runCmd(t, "man", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.True(t, strings.HasSuffix(entry.Name(), ".1"), entry.Name())
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "expando version")
	assert.Contains(t, out, "commit:")
}

func TestRootCmd(t *testing.T) {
	isolate(t)

	t.Run("no command is an error", func(t *testing.T) {
		_, err := runCmd(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown format is an error", func(t *testing.T) {
		_, err := runCmd(t, "render", "x", "--format", "bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	// The topic help prints straight to stdout, so capture it.
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	_, runErr := runCmd(t, "topics")

	require.NoError(t, w.Close())
	os.Stdout = old
	captured, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, runErr)
	assert.Contains(t, string(captured), "templates")
	assert.Contains(t, string(captured), "configuration")
}
