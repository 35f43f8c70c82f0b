package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagOnError = "on-error"
	FlagDryRun  = "dry-run"
	FlagDiff    = "diff"
	FlagNoColor = "no-color"
	FlagQuiet   = "quiet"
	FlagDebug   = "debug"

	// Flag descriptions
	DescOnError = "Error policy: default, strict or lenient (overrides the configuration)"
	DescDryRun  = "Show the files that would be written without writing them"
	DescDiff    = "Show how output would change and exit 1 if anything differs"
	DescNoColor = "Disable colored output"
	DescQuiet   = "Suppress non-error output"
	DescDebug   = "Enable debug logging"
)
