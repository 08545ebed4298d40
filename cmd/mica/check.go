package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/driver"
	"mica/internal/project"
)

var (
	checkJSON      bool
	checkJobs      int
	checkMaxDiag   int
	checkNoCache   bool
	checkWithNotes bool
	checkColor     string
)

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as JSON")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().IntVar(&checkMaxDiag, "max-diagnostics", 0, "cap diagnostics per file (0=unlimited)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "skip the on-disk diagnostics cache")
	checkCmd.Flags().BoolVar(&checkWithNotes, "with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "colorize output (auto|on|off)")
}

var checkCmd = &cobra.Command{
	Use:   "check [directory]",
	Short: "Check mica sources and report diagnostics",
	Long: `Check parses and analyzes every *.mc file in the directory.

Without an argument the directory comes from the nearest mica.toml
([check].source-dir), falling back to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, cfg, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:           checkJobs,
		MaxDiagnostics: checkMaxDiag,
	}
	if !cmd.Flags().Changed("jobs") && cfg.Check.Jobs > 0 {
		opts.Jobs = cfg.Check.Jobs
	}
	if !cmd.Flags().Changed("max-diagnostics") && cfg.Check.MaxDiagnostics > 0 {
		opts.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}

	if !checkNoCache && cfg.cacheDir != "" {
		cache, err := driver.OpenDiskCache(cfg.cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open cache at %s: %w", cfg.cacheDir, err)
		}
		opts.Cache = cache
	}

	res, err := driver.CheckDir(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		merged := res.Merged()
		merged.Sort()
		if err := diagfmt.JSON(out, merged, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     checkWithNotes,
		}); err != nil {
			return err
		}
	} else {
		res.RenderPretty(out, diagfmt.PrettyOpts{
			Color:     useColor(),
			ShowNotes: checkWithNotes,
		})
		summary(out, res)
	}

	if res.HasErrors() {
		return errChecksFailed
	}
	return nil
}

// checkTargetConfig is the subset of manifest settings check consumes.
type checkTargetConfig struct {
	Check    project.CheckConfig
	cacheDir string
}

// resolveCheckTarget picks the directory to check: the explicit argument
// wins, then the manifest's source dir, then the current directory.
func resolveCheckTarget(args []string) (string, checkTargetConfig, error) {
	if len(args) == 1 {
		return args[0], checkTargetConfig{Check: project.DefaultConfig().Check}, nil
	}

	manifest, ok, err := project.Load(".")
	if err != nil {
		return "", checkTargetConfig{}, err
	}
	if !ok {
		return ".", checkTargetConfig{Check: project.DefaultConfig().Check}, nil
	}

	cfg := checkTargetConfig{Check: manifest.Config.Check}
	if manifest.Config.Check.Cache {
		cfg.cacheDir = manifest.CachePath()
	}
	return manifest.SourcePath(), cfg, nil
}

func summary(out io.Writer, res *driver.Result) {
	merged := res.Merged()
	if merged.Len() == 0 {
		fmt.Fprintf(out, "checked %d file(s), no problems found\n", len(res.Files))
		return
	}
	var errs, warns int
	for _, d := range merged.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	fmt.Fprintf(out, "checked %d file(s): %d error(s), %d warning(s)\n", len(res.Files), errs, warns)
}

func useColor() bool {
	switch checkColor {
	case "on":
		return true
	case "off":
		return false
	default:
		fi, err := os.Stdout.Stat()
		return err == nil && fi.Mode()&os.ModeCharDevice != 0
	}
}
