package converter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ginjaninja78/nibrs-flatfile/internal/config"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/utils"
)

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// RunBatch processes every file concurrently, at most cfg.MaxConcurrency at a
// time. A failed file never stops the others.
//
// PARAMETERS:
//   - ctx: Cancelling it stops files in flight between lines and fails the
//          files that have not started.
//   - paths: The input files.
//   - cfg: The main application configuration.
//   - opts: Options applied to every Converter.
//
// RETURNS:
//   - One Result per path, in the order of paths.
func RunBatch(ctx context.Context, paths []string, cfg *config.MainConfig, opts ...Option) []Result {
	limit := cfg.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)

		go func(i int, path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = Result{
					FilePath: path,
					Error:    fmt.Errorf("not started: %w", ctx.Err()),
				}
				return
			}
			defer func() { <-sem }()

			results[i] = New(path, cfg, opts...).Run(ctx)
		}(i, path)
	}

	wg.Wait()
	return results
}

// Summarize builds the run summary from batch results.
func Summarize(runID string, start, end time.Time, results []Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if !r.Success {
			summary.FailedFiles++
			msg := "unknown error"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: msg,
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalLines += r.Stats.Lines
		summary.TotalReports += r.Stats.Reports()
		summary.ReportErrors += r.Stats.Errors
		summary.ValidationWarnings += r.Stats.Warnings
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.FilePath,
			OutputFiles: r.OutputFiles,
			ArchivePath: r.ArchivePath,
			Lines:       r.Stats.Lines,
			Reports:     r.Stats.Reports(),
			Errors:      r.Stats.Errors,
			Warnings:    r.Stats.Warnings,
			ProcessTime: r.Stats.ProcessingTime,
		})
	}

	return summary
}
