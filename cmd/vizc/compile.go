package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vizc/internal/compositemark"
	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/driver"
	"vizc/internal/observ"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [path]",
	Short: "Compile specifications into layered form",
	Long:  "Compile a specification file, or every *.vl.json file under a directory, into layered specifications a renderer can execute.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  compileExecution,
}

func init() {
	compileCmd.Flags().String("out", "", "directory for compiled output (default: next to each input)")
	compileCmd.Flags().Bool("cache", false, "reuse previously compiled output from the compile cache")
	compileCmd.Flags().Int("jobs", 0, "parallel workers for directory compiles (default: number of CPUs)")
}

func compileExecution(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
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
	if useCache {
		cache, err := driver.OpenDiskCache("vizc")
		if err != nil {
			return fmt.Errorf("open compile cache: %w", err)
		}
		opts.Cache = cache
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}

	results, err := driver.ExpandPath(context.Background(), path, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		printDiagnostics(res, quiet)
		if res.Err != nil {
			failed++
			continue
		}
		dest := outputName(res.Path, outDir)
		if err := os.WriteFile(dest, res.Output, 0o644); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "%s -> %s%s\n", res.Path, dest, cachedSuffix(res))
		}
	}
	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d specifications failed to compile", failed, len(results))
	}
	return nil
}

// loadOptions resolves configuration and shared flags into driver options.
func loadOptions(cmd *cobra.Command) (*driver.Options, error) {
	maxDiag, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDir(".")
	}
	if err != nil {
		return nil, err
	}
	return &driver.Options{Config: cfg, MaxDiagnostics: maxDiag}, nil
}

// outputName maps an input path to its compiled counterpart.
func outputName(path, outDir string) string {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, driver.SpecSuffix):
		base = strings.TrimSuffix(base, driver.SpecSuffix) + ".layered.json"
	case strings.HasSuffix(base, ".json"):
		base = strings.TrimSuffix(base, ".json") + ".layered.json"
	default:
		base += ".layered.json"
	}
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(path), base)
}

func cachedSuffix(res driver.Result) string {
	if res.Cached {
		return " (cached)"
	}
	return ""
}

var errorColor = color.New(color.FgRed, color.Bold)

// printDiagnostics writes a result's findings to stderr. With quiet set only
// errors survive.
func printDiagnostics(res driver.Result, quiet bool) {
	if res.Err != nil {
		errorColor.Fprintf(os.Stderr, "error: ")
		var oe *compositemark.OrientationError
		if errors.As(res.Err, &oe) {
			fmt.Fprintf(os.Stderr, "%s: [%s] %v\n", res.Path, oe.Code.ID(), res.Err)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
		}
	}
	if res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	items := res.Bag.Items()
	if quiet {
		filtered := items[:0:0]
		for _, d := range items {
			if d.Severity >= diag.SevError {
				filtered = append(filtered, d)
			}
		}
		items = filtered
	}
	fmt.Fprint(os.Stderr, diag.FormatShort(res.Path, items, true))
}
