package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/crossgen/internal/app"
)

// Generate flags
var (
	generateOnError string
	generateDryRun  bool
	generateDiff    bool
)

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&generateOnError, FlagOnError, "", DescOnError)
	cmd.Flags().BoolVar(&generateDryRun, FlagDryRun, false, DescDryRun)
	cmd.Flags().BoolVar(&generateDiff, FlagDiff, false, DescDiff)
	cmd.MarkFlagsMutuallyExclusive(FlagDryRun, FlagDiff)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mode := app.ModeWrite
	switch {
	case generateDryRun:
		mode = app.ModeDryRun
	case generateDiff:
		mode = app.ModeDiff
	}

	printProgress(fmt.Sprintf("Generating from %s", args[0]))

	result, err := app.Generate(app.GenerateOptions{
		ConfigPath:  args[0],
		ErrorPolicy: generateOnError,
		Mode:        mode,
		Logger:      newConsoleLogger(),
	})
	if result != nil && result.Run != nil {
		report(result, mode, err != nil)
	}
	if err != nil {
		var appErr *app.AppError
		if errors.As(err, &appErr) && appErr.Type == app.GenerationFailed {
			return fmt.Errorf("aborted by %s error policy: %w", result.Policy, appErr.Cause)
		}
		return err
	}

	if mode == app.ModeDiff && len(result.Diffs) > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func report(result *app.GenerateResult, mode app.Mode, aborted bool) {
	run := result.Run

	if aborted {
		printWarning(fmt.Sprintf("Run aborted after %d file(s)", len(run.Files())))
		return
	}

	switch mode {
	case app.ModeDryRun:
		printHeader("Dry run")
		for _, f := range result.Planned {
			action := "create"
			if f.Exists {
				action = "overwrite"
			}
			printInfo(fmt.Sprintf("  would %s %s (%s)", action, f.Name, formatBytes(int64(f.Size))))
		}
	case app.ModeDiff:
		for _, d := range result.Diffs {
			title := d.Name
			if d.New {
				title += " (new file)"
			}
			printHeader(title)
			printDiff(d.Diff)
		}
		if len(result.Diffs) == 0 {
			printSuccess(fmt.Sprintf("%d file(s) up to date in %s", len(run.Files()), result.Locations.OutputDir))
		}
	default:
		printSuccess(fmt.Sprintf("Generated %d file(s) in %s", len(run.Files()), result.Locations.OutputDir))
	}

	if failures := run.Failures(); len(failures) > 0 {
		printWarning(fmt.Sprintf("%d failure(s) recorded, %d of %d binding(s) skipped",
			len(failures), run.SkippedBindings(), len(result.Config.ModelTemplateBindings)))
	}
}
