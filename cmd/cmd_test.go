package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nibrs-flatfile/internal/errorexport"
)

// execute runs the root command with args in a scratch directory layout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("NIBRS_INPUT_ARCHIVE_DIR", filepath.Join(root, "input_archive"))
	t.Setenv("NIBRS_OUTPUT_ARCHIVE_DIR", filepath.Join(root, "output_archive"))
	t.Cleanup(func() {
		fbiOutput = false
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append(args,
		"--input-dir", filepath.Join(root, "input"),
		"--output-dir", filepath.Join(root, "output"),
		"--log-level", "error",
	))
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")

	assert.Contains(t, out, "NIBRS Flat File Ingest")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestCheckCommandFBI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.txt")
	require.NoError(t, os.WriteFile(path, []byte("XX\n"), 0o644))

	out := execute(t, "check", path, "--fbi")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], errorexport.LineLength)
	assert.Equal(t, "0000001", lines[0][6:13])
	assert.Equal(t, "999999999", lines[1][14:23])
	assert.True(t, fileExists(path), "check never archives")
}

func TestCheckCommandSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.txt")
	require.NoError(t, os.WriteFile(path, []byte("XX\n"), 0o644))

	out := execute(t, "check", path)

	assert.Contains(t, out, "1 line(s), 0 report(s), 1 error(s)")
	assert.Contains(t, out, "Errors:")
}
