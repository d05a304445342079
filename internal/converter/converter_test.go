package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nibrs-flatfile/internal/config"
	"github.com/ginjaninja78/nibrs-flatfile/internal/errorexport"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/utils"
)

// line builds a fixed-width line with a valid envelope for WA0000000.
func line(level byte, length int, id string, fields map[int]string) string {
	b := bytes.Repeat([]byte(" "), length)
	put := func(col int, v string) { copy(b[col-1:], v) }
	put(1, fmt.Sprintf("%04d", length))
	b[4] = level
	put(6, "I")
	put(7, "05")
	put(9, "2023")
	put(17, "WA0000000")
	put(26, id)
	for col, v := range fields {
		put(col, v)
	}
	return string(b)
}

// submission is two incidents: the first has an unknown UCR code, the second
// a bad month of submission.
func submission() string {
	return strings.Join([]string{
		line('1', 87, "INC000000001", map[int]string{38: "20230514", 47: "13", 49: "N"}),
		line('2', 71, "INC000000001", map[int]string{38: "13X", 41: "C", 45: "20"}),
		line('1', 87, "INC000000002", map[int]string{7: "AB", 38: "20230514", 47: "13", 49: "N"}),
	}, "\n") + "\n"
}

func testConfig(t *testing.T) *config.MainConfig {
	t.Helper()
	root := t.TempDir()
	cfg := &config.MainConfig{
		InputDir:         filepath.Join(root, "input"),
		OutputDir:        filepath.Join(root, "output"),
		InputArchiveDir:  filepath.Join(root, "input_archive"),
		OutputArchiveDir: filepath.Join(root, "output_archive"),
		LogFormat:        "json",
		OutputNameFormat: "{original}",
		ValidateCodes:    true,
		MaxConcurrency:   2,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func writeInput(t *testing.T, cfg *config.MainConfig, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWritesReportsAndArchives(t *testing.T) {
	// Given
	cfg := testConfig(t)
	path := writeInput(t, cfg, "agency.txt", submission())
	fixed := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	conv := New(path, cfg,
		WithLogger(zerolog.New(zerolog.NewTestWriter(t))),
		WithRunID("run-1"),
		WithFBIWriter(&errorexport.FBIWriter{Producer: "test", Now: func() time.Time { return fixed }}),
	)

	// When
	result := conv.Run(context.Background())

	// Then
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Stats.Lines)
	assert.Equal(t, 2, result.Stats.GroupAReports)
	assert.Equal(t, 2, result.Stats.Reports())
	assert.Equal(t, 1, result.Stats.ReportsWithErrors)
	assert.Equal(t, 1, result.Stats.Errors)
	assert.Equal(t, 1, result.Stats.Warnings)
	assert.Equal(t, "13X", result.Warnings[0].Value)
	assert.Equal(t, int64(len(submission())), result.Stats.Bytes)

	require.Equal(t, []string{
		filepath.Join(cfg.OutputDir, "agency.err"),
		filepath.Join(cfg.OutputDir, "agency.xlsx"),
		filepath.Join(cfg.OutputDir, "agency.xml"),
	}, result.OutputFiles)

	fbi, err := os.ReadFile(result.OutputFiles[0])
	require.NoError(t, err)
	fbiLines := strings.Split(strings.TrimSuffix(string(fbi), "\n"), "\n")
	require.Len(t, fbiLines, 2)
	assert.Len(t, fbiLines[0], errorexport.LineLength)
	assert.Equal(t, "0000003", fbiLines[0][6:13])
	assert.Equal(t, string(result.Errors[0].Code), fbiLines[0][46:49])
	assert.Contains(t, fbiLines[1], "test processed submission on 03/07/24")

	summary, err := os.ReadFile(result.OutputFiles[2])
	require.NoError(t, err)
	assert.Contains(t, string(summary), `runId="run-1"`)
	assert.Contains(t, string(summary), `<totals lines="3" reports="2" errors="1" warnings="1"/>`)

	assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "agency.txt"), result.ArchivePath)
	assert.False(t, utils.FileExists(path))
	for _, out := range []string{"agency.err", "agency.xlsx", "agency.xml"} {
		assert.True(t, utils.FileExists(filepath.Join(cfg.OutputArchiveDir, out)), out)
	}
}

func TestRunHonoursOutputToggles(t *testing.T) {
	cfg := testConfig(t)
	off := false
	cfg.ErrorReport.XLSX = &off
	cfg.SummaryXML = &off
	cfg.ArchiveOnSuccess = &off
	path := writeInput(t, cfg, "agency.txt", submission())

	result := New(path, cfg).Run(context.Background())

	require.True(t, result.Success)
	assert.Equal(t, []string{filepath.Join(cfg.OutputDir, "agency.err")}, result.OutputFiles)
	assert.Empty(t, result.ArchivePath)
	assert.True(t, utils.FileExists(path))
}

func TestRunDryRun(t *testing.T) {
	cfg := testConfig(t)
	path := writeInput(t, cfg, "agency.txt", submission())

	result := New(path, cfg, WithDryRun(true)).Run(context.Background())

	require.True(t, result.Success)
	assert.Empty(t, result.OutputFiles)
	assert.Len(t, result.Reports, 2)
	assert.True(t, utils.FileExists(path))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunMissingFile(t *testing.T) {
	cfg := testConfig(t)

	result := New(filepath.Join(cfg.InputDir, "absent.txt"), cfg).Run(context.Background())

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	path := writeInput(t, cfg, "agency.txt", submission())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := New(path, cfg).Run(ctx)

	assert.False(t, result.Success)
	assert.True(t, errors.Is(result.Error, context.Canceled))
	assert.True(t, utils.FileExists(path))
}

func TestRunBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	// Given two good files and one that does not exist
	cfg := testConfig(t)
	a := writeInput(t, cfg, "a.txt", submission())
	b := writeInput(t, cfg, "b.txt", submission())
	missing := filepath.Join(cfg.InputDir, "missing.txt")

	// When
	start := time.Now()
	results := RunBatch(context.Background(), []string{a, missing, b}, cfg, WithRunID("run-2"))
	summary := Summarize("run-2", start, time.Now(), results)

	// Then
	require.Len(t, results, 3)
	assert.Equal(t, a, results[0].FilePath)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 2, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 4, summary.TotalReports)
	assert.Equal(t, 2, summary.ReportErrors)
	assert.Equal(t, 2, summary.ValidationWarnings)
	assert.Equal(t, missing, summary.FailedFilesList[0].InputFile)
}

func TestRunBatchCancelledBeforeStart(t *testing.T) {
	cfg := testConfig(t)
	path := writeInput(t, cfg, "a.txt", submission())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunBatch(ctx, []string{path}, cfg)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, errors.Is(results[0].Error, context.Canceled))
}
