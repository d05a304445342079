package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nibrs-flatfile/internal/converter"
	"github.com/ginjaninja78/nibrs-flatfile/internal/errorexport"
	"github.com/ginjaninja78/nibrs-flatfile/internal/validation"
)

// fbiOutput prints the FBI error report instead of the summary.
var fbiOutput bool

// checkCmd reads one file and reports on it without writing or archiving.
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Read one flat file and print its reports and errors",
	Long: `The check command reads a single NIBRS flat file and prints each assembled
report with its error count, followed by every error found. Nothing is written
to the output directory and the file is not archived.

With --fbi the FBI-format error report is written to standard output instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		return runCheck(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&fbiOutput, "fbi", false, "Write the FBI error report to standard output")
}

func runCheck(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	codes, err := loadCodeTables()
	if err != nil {
		return err
	}

	result := converter.New(path, appConfig,
		converter.WithLogger(logger),
		converter.WithCodeTables(codes),
		converter.WithDryRun(true),
	).Run(cmd.Context())
	if result.Error != nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	if fbiOutput {
		return errorexport.NewFBIWriter().Write(out, result.Errors)
	}

	printCheck(out, result)
	return nil
}

func printCheck(w io.Writer, result converter.Result) {
	fmt.Fprintf(w, "%s: %d line(s), %d report(s), %d error(s)\n\n",
		result.FilePath, result.Stats.Lines, result.Stats.Reports(), result.Stats.Errors)

	for i, r := range result.Reports {
		h := r.Header()
		flag := ""
		if h.HasUpstreamErrors {
			flag = "  [errors]"
		}
		fmt.Fprintf(w, "%4d. %-18s %-9s %-12s lines %d-%d%s\n",
			i+1, r.Kind(), h.ORI, h.UniqueID, h.Span.First, h.Span.Last, flag)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, validation.FormatWarnings(result.Warnings))
	}
}
