package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/crossgen/internal/debug"
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// exitError ends the process with a non-zero status without printing a
// message; the command has already reported the reason.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCmd builds the crossgen command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossgen [flags] <config-file>",
		Short: "Generate files from YAML models and templates",
		Long: `crossgen renders text templates for nodes selected from YAML or JSON
model documents.

The configuration file lists model-template bindings. Each binding names a
model file, a path expression selecting nodes within it, and the templates
rendered for every selected object. Output file names may contain {{name}},
which is replaced by the object's name attribute.

Examples:
  crossgen crossgen.yaml
  crossgen --on-error strict crossgen.toml
  crossgen --diff crossgen.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Set debug mode
			debug.SetDebug(globalDebug)
			debug.SetNoColor(globalNoColor)
		},
		RunE: runGenerate,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	addGenerateFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments and exits
// non-zero on failure. This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		printError(err)
		return 1
	}
	return 0
}

// printError prints an error message to stderr
func printError(err error) {
	if globalNoColor {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	} else {
		fmt.Fprintf(stderr, "%sError:%s %v\n", colorRed, colorReset, err)
	}
}
