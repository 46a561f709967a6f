package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vizc/internal/diag"
	"vizc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Validate specifications without writing output",
	Long:  "Run the expansion as a dry-run and report diagnostics. Exits non-zero when any specification fails to compile.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  checkExecution,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (default: number of CPUs)")
}

func checkExecution(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	opts.Jobs = jobs

	results, err := driver.ExpandPath(context.Background(), path, opts)
	if err != nil {
		return err
	}

	// Distinct findings across the whole run: identical diagnostics
	// repeated by many documents count once.
	summary := diag.NewBag(0)
	failed := 0
	for _, res := range results {
		printDiagnostics(res, false)
		summary.Merge(res.Bag)
		if res.Err != nil {
			failed++
		}
	}
	summary.Dedup()
	summary.Sort()
	findings := 0
	for _, d := range summary.Items() {
		if d.Severity >= diag.SevWarning {
			findings++
		}
	}
	fmt.Fprintf(os.Stderr, "checked %d specifications: %d distinct findings\n", len(results), findings)
	if failed > 0 {
		return fmt.Errorf("%d of %d specifications failed to compile", failed, len(results))
	}
	return nil
}
