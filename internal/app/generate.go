package app

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tacogips/crossgen/internal/config"
	"github.com/tacogips/crossgen/internal/debug"
	"github.com/tacogips/crossgen/internal/template/generator"
	"github.com/tacogips/crossgen/internal/template/render"
)

// Mode selects what happens to rendered output.
type Mode int

const (
	// ModeWrite writes output files.
	ModeWrite Mode = iota
	// ModeDryRun only records which files would be written.
	ModeDryRun
	// ModeDiff compares rendered output with the existing files.
	ModeDiff
)

// GenerateOptions contains options for a generation run.
type GenerateOptions struct {
	// ConfigPath is the configuration file.
	ConfigPath string
	// ErrorPolicy overrides the configuration's errorPolicy when set.
	ErrorPolicy string
	// Mode selects write, dry-run or diff.
	Mode Mode
	// Logger receives progress and failure reports (optional).
	Logger generator.Logger
}

// GenerateResult contains the outcome of a generation run.
type GenerateResult struct {
	// Config is the loaded configuration.
	Config *config.Config
	// Locations are the resolved directories.
	Locations *config.Locations
	// Policy is the error policy in effect.
	Policy generator.Policy
	// Run holds per-binding results. It is partial when the run was aborted.
	Run *generator.RunResult
	// Planned lists the files a dry run would write.
	Planned []generator.PlannedFile
	// Diffs lists the output files that would change in diff mode.
	Diffs []generator.FileDiff
}

// Generate loads the configuration at opts.ConfigPath, resolves its
// locations and runs every model-template binding. A fatal failure is
// returned as an *AppError together with the partial result.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] ConfigPath", opts.ConfigPath)
	debug.DebugValue("[app] Mode", opts.Mode)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		debug.Debug("[app] Failed to load configuration: %v", err)
		return nil, NewAppError(ConfigLoadFailed, "failed to load configuration", err)
	}
	debug.Debug("[app] Configuration loaded: %d binding(s)", len(cfg.ModelTemplateBindings))

	policyName := cfg.ErrorPolicy
	if opts.ErrorPolicy != "" {
		policyName = opts.ErrorPolicy
	}
	policy, err := generator.ParsePolicy(policyName)
	if err != nil {
		return nil, NewAppError(PolicyInvalid, "invalid error policy", err)
	}
	debug.DebugValue("[app] Error policy", policy)

	loc, err := config.ResolveLocations(cfg, opts.ConfigPath)
	if err != nil {
		debug.Debug("[app] Failed to resolve locations: %v", err)
		return nil, NewAppError(LocationFailed, "failed to resolve locations", err)
	}
	debug.DebugValue("[app] ModelDir", loc.ModelDir)
	debug.DebugValue("[app] TemplateDir", loc.TemplateDir)
	debug.DebugValue("[app] OutputDir", loc.OutputDir)

	result := &GenerateResult{Config: cfg, Locations: loc, Policy: policy}

	outFS := osfs.New(loc.OutputDir, osfs.WithBoundOS())
	writer, collect := newWriter(opts.Mode, outFS)

	gen, err := generator.New(generator.Options{
		Models:   generator.NewFSModelLoader(osfs.New(loc.ModelDir, osfs.WithBoundOS())),
		Renderer: render.NewTextRenderer(osfs.New(loc.TemplateDir, osfs.WithBoundOS())),
		Writer:   writer,
		Logger:   opts.Logger,
		Policy:   policy,
	})
	if err != nil {
		return nil, NewAppError(SetupFailed, "failed to create generator", err)
	}

	result.Run, err = gen.Run(cfg.ModelTemplateBindings)
	collect(result)
	if err != nil {
		debug.Debug("[app] Generation aborted: %v", err)
		return result, NewAppError(GenerationFailed, "generation aborted", err)
	}

	debug.Debug("[app] Generate workflow completed: %d file(s)", len(result.Run.Files()))
	return result, nil
}

// newWriter returns the writer for mode and a function copying what it
// recorded into the result.
func newWriter(mode Mode, fs billy.Filesystem) (generator.Writer, func(*GenerateResult)) {
	switch mode {
	case ModeDryRun:
		w := generator.NewDryRunWriter(fs)
		return w, func(r *GenerateResult) { r.Planned = w.Files }
	case ModeDiff:
		w := generator.NewDiffWriter(fs)
		return w, func(r *GenerateResult) { r.Diffs = w.Diffs }
	default:
		return generator.NewFileWriter(fs), func(*GenerateResult) {}
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDryRun:
		return "dry-run"
	case ModeDiff:
		return "diff"
	default:
		return "write"
	}
}
