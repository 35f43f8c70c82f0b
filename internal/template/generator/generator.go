package generator

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/tacogips/crossgen/internal/config"
	"github.com/tacogips/crossgen/internal/document"
	"github.com/tacogips/crossgen/internal/object"
	"github.com/tacogips/crossgen/internal/template/render"
	"github.com/tacogips/crossgen/internal/yamlpath"
)

// ModelLoader loads model documents by file name.
type ModelLoader interface {
	Load(modelFile string) (*document.Node, error)
}

// FSModelLoader loads models from a filesystem rooted at the model location.
type FSModelLoader struct {
	fs billy.Filesystem
}

// NewFSModelLoader creates a new FSModelLoader.
func NewFSModelLoader(fs billy.Filesystem) *FSModelLoader {
	return &FSModelLoader{fs: fs}
}

// Load implements ModelLoader.
func (l *FSModelLoader) Load(modelFile string) (*document.Node, error) {
	return document.LoadFile(l.fs, modelFile)
}

// Options configures a Generator.
type Options struct {
	// Models loads the model document of each binding.
	Models ModelLoader
	// Renderer renders templates for matched objects.
	Renderer render.Renderer
	// Writer persists rendered output.
	Writer Writer
	// Logger receives progress and failure reports. Defaults to NopLogger.
	Logger Logger
	// Policy decides which failures are skipped. The zero value skips
	// everything; use DefaultPolicy for the usual behavior.
	Policy Policy
}

// Generator processes model-template bindings sequentially.
type Generator struct {
	models   ModelLoader
	renderer render.Renderer
	writer   Writer
	log      Logger
	policy   Policy
}

// New creates a Generator.
func New(opts Options) (*Generator, error) {
	if opts.Models == nil {
		return nil, fmt.Errorf("model loader cannot be nil")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("renderer cannot be nil")
	}
	if opts.Writer == nil {
		return nil, fmt.Errorf("writer cannot be nil")
	}
	log := opts.Logger
	if log == nil {
		log = NopLogger{}
	}
	return &Generator{
		models:   opts.Models,
		renderer: opts.Renderer,
		writer:   opts.Writer,
		log:      log,
		policy:   opts.Policy,
	}, nil
}

// Run processes bindings in configuration order. For each binding it
// loads the model, evaluates the path expression, adapts every match into
// objects, and renders and writes every template binding for every
// object. Failures the policy skips are recorded in the result; the first
// failure it does not skip ends the run with a *FatalError, returned
// together with the results gathered so far.
func (g *Generator) Run(bindings []config.ModelTemplateBinding) (*RunResult, error) {
	g.log.Debugf("starting run: bindings=%d, policy=%s", len(bindings), g.policy)

	result := &RunResult{Bindings: make([]BindingResult, 0, len(bindings))}
	for i, b := range bindings {
		br, err := g.runBinding(i, b)
		result.Bindings = append(result.Bindings, br)
		if err != nil {
			return result, err
		}
	}

	g.log.Debugf("run complete: files=%d, skipped bindings=%d, failures=%d",
		len(result.Files()), result.SkippedBindings(), len(result.Failures()))
	return result, nil
}

func (g *Generator) runBinding(index int, b config.ModelTemplateBinding) (BindingResult, error) {
	br := BindingResult{
		Index:      index,
		ModelFile:  b.ModelFile,
		Expression: b.ModelYAMLPath,
	}
	g.log.Debugf("executing %s on model %s", b.ModelYAMLPath, b.ModelFile)

	doc, err := g.models.Load(b.ModelFile)
	if err != nil {
		return g.abandon(br, FailModelLoad, err)
	}

	matches, err := yamlpath.Query(doc, b.ModelYAMLPath, b.RequireMatch(), b.ModelFile)
	if err != nil {
		return g.abandon(br, FailPathQuery, err)
	}
	br.Matches = len(matches)

	for _, m := range matches {
		objs, err := object.Adapt(m.Node)
		if err != nil {
			if fatal := g.fail(&br, Failure{Kind: FailAdaptation, Match: m.String(), Err: err}); fatal != nil {
				return br, fatal
			}
			continue
		}
		for _, obj := range objs {
			br.Objects++
			for _, tb := range b.TemplateBindings {
				if fatal := g.emit(&br, m, obj, tb); fatal != nil {
					return br, fatal
				}
			}
		}
	}

	g.log.Infof("binding %d: %d match(es), %d object(s), %d file(s) generated from %s",
		index, br.Matches, br.Objects, len(br.Files), b.ModelFile)
	return br, nil
}

// abandon records a failure that ends the binding before any output.
func (g *Generator) abandon(br BindingResult, kind FailureKind, err error) (BindingResult, error) {
	if fatal := g.fail(&br, Failure{Kind: kind, Err: err}); fatal != nil {
		return br, fatal
	}
	br.Skipped = true
	return br, nil
}

// emit renders one template binding for one object and writes the result.
func (g *Generator) emit(br *BindingResult, m yamlpath.Coordinate, obj *object.Object, tb config.TemplateBinding) error {
	content, err := g.renderer.Render(tb.TemplateFile, obj)
	if err != nil {
		return g.fail(br, Failure{
			Kind:     FailRender,
			Match:    m.String(),
			Template: tb.TemplateFile,
			Err:      newGeneratorError(GeneratorRenderFailed, "failed to render template", tb.TemplateFile, err),
		})
	}

	name, err := OutputFilename(tb.OutputFileName, obj)
	if err != nil {
		kind := FailWrite
		var missing *MissingAttributeError
		if errors.As(err, &missing) {
			kind = FailMissingAttribute
		}
		return g.fail(br, Failure{Kind: kind, Match: m.String(), Template: tb.TemplateFile, Err: err})
	}

	if err := g.writer.WriteFile(name, content); err != nil {
		return g.fail(br, Failure{Kind: FailWrite, Match: m.String(), Template: tb.TemplateFile, Err: err})
	}
	g.log.Debugf("%s -> %s (%s, %d bytes): %s", m, name, tb.TemplateFile, len(content), objectDump{obj})
	br.Files = append(br.Files, name)
	return nil
}

// fail records f and returns a *FatalError when the policy aborts on its kind.
func (g *Generator) fail(br *BindingResult, f Failure) error {
	br.Failures = append(br.Failures, f)

	where := fmt.Sprintf("binding %d (model %s, path %q)", br.Index, br.ModelFile, br.Expression)
	if f.Match != "" {
		where += " at " + f.Match
	}
	if f.Template != "" {
		where += " with template " + f.Template
	}

	if g.policy.Action(f.Kind) == Abort {
		g.log.Errorf("%s: %s failure: %v", where, f.Kind, f.Err)
		return &FatalError{Kind: f.Kind, Binding: br.Index, ModelFile: br.ModelFile, Err: f.Err}
	}
	g.log.Errorf("%s: %s failure, skipping: %v", where, f.Kind, f.Err)
	return nil
}

// objectDump formats an object as sorted JSON only when a logger prints it.
type objectDump struct {
	obj *object.Object
}

func (d objectDump) String() string {
	opts := oj.DefaultOptions
	opts.Sort = true
	return oj.JSON(d.obj.Map(), &opts)
}
