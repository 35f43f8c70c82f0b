package generator

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/crossgen/internal/config"
	"github.com/tacogips/crossgen/internal/template/render"
	"github.com/tacogips/crossgen/internal/yamlpath"
)

type recordingLogger struct {
	debugs []string
	errors []string
	infos  []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(string, ...any) {}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

type fixture struct {
	models    billy.Filesystem
	templates billy.Filesystem
	output    billy.Filesystem
	log       *recordingLogger
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	f := &fixture{
		models:    memfs.New(),
		templates: memfs.New(),
		output:    memfs.New(),
		log:       &recordingLogger{},
	}
	for name, content := range files {
		fs := f.models
		if strings.HasSuffix(name, ".tmpl") {
			fs = f.templates
		}
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return f
}

func (f *fixture) generator(t *testing.T, policy Policy) *Generator {
	t.Helper()
	g, err := New(Options{
		Models:   NewFSModelLoader(f.models),
		Renderer: render.NewTextRenderer(f.templates),
		Writer:   NewFileWriter(f.output),
		Logger:   f.log,
		Policy:   policy,
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := util.ReadFile(f.output, name)
	require.NoError(t, err)
	return string(data)
}

func binding(model, path string, templates ...config.TemplateBinding) config.ModelTemplateBinding {
	return config.ModelTemplateBinding{ModelFile: model, ModelYAMLPath: path, TemplateBindings: templates}
}

func tmpl(file, out string) config.TemplateBinding {
	return config.TemplateBinding{TemplateFile: file, OutputFileName: out}
}

const itemsModel = "items:\n  - {name: X, v: 1}\n  - {name: Y, v: 2}\n"

func TestGenerator_Run(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": itemsModel,
		"t.tmpl": "{{v}}",
	})

	result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"X.out", "Y.out"}, result.Files())
	assert.Equal(t, "1", f.read(t, "X.out"))
	assert.Equal(t, "2", f.read(t, "Y.out"))

	require.Len(t, result.Bindings, 1)
	br := result.Bindings[0]
	assert.True(t, br.Succeeded())
	assert.Equal(t, 2, br.Matches)
	assert.Equal(t, 2, br.Objects)
}

func TestGenerator_SequenceMatchExpands(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": itemsModel,
		"t.tmpl": "{{.name}}={{.v}}",
	})

	result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items", tmpl("t.tmpl", "{{name}}.txt")),
	})
	require.NoError(t, err)

	br := result.Bindings[0]
	assert.Equal(t, 1, br.Matches)
	assert.Equal(t, 2, br.Objects)
	assert.Equal(t, []string{"X.txt", "Y.txt"}, br.Files)
	assert.Equal(t, "Y=2", f.read(t, "Y.txt"))
}

func TestGenerator_Order(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a.yaml": "entities:\n  z: {name: Z}\n  a: {name: A}\n",
		"b.yaml": "name: B\n",
		"1.tmpl": "one",
		"2.tmpl": "two",
	})

	result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("a.yaml", "entities.*", tmpl("1.tmpl", "{{name}}.1"), tmpl("2.tmpl", "{{name}}.2")),
		binding("b.yaml", "", tmpl("1.tmpl", "{{name}}.1")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Z.1", "Z.2", "A.1", "A.2", "B.1"}, result.Files())
}

func TestGenerator_DebugReportsThroughLogger(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": "items:\n  - {name: X, v: 1, tags: [a]}\n",
		"t.tmpl": "{{v}}",
	})

	_, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
	})
	require.NoError(t, err)

	joined := strings.Join(f.log.debugs, "\n")
	assert.Contains(t, joined, "starting run: bindings=1")
	assert.Contains(t, joined, "items[0] -> X.out (t.tmpl, 1 bytes)")
	assert.Contains(t, joined, `{"name":"X","tags":["a"],"v":1}`)
	assert.Contains(t, joined, "run complete: files=1")
}

func TestGenerator_MissingAttributeRendersEmpty(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": "items:\n  - {name: X, description: first}\n  - {name: Y}\n",
		"t.tmpl": "[{{.description}}][{{description}}]",
	})

	result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Failures())
	assert.Equal(t, "[first][first]", f.read(t, "X.out"))
	assert.Equal(t, "[][]", f.read(t, "Y.out"))
}

func TestGenerator_RecoverableFailures(t *testing.T) {
	tests := []struct {
		name  string
		first config.ModelTemplateBinding
		kind  FailureKind
	}{
		{"path matches nothing", binding("m.yaml", "nothing.here", tmpl("t.tmpl", "{{name}}.out")), FailPathQuery},
		{"invalid path", binding("m.yaml", "items[", tmpl("t.tmpl", "{{name}}.out")), FailPathQuery},
		{"missing model", binding("missing.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")), FailModelLoad},
		{"broken model", binding("broken.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")), FailModelLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				"m.yaml":      itemsModel,
				"broken.yaml": "items: [\n",
				"t.tmpl":      "{{v}}",
			})

			result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
				tt.first,
				binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
			})
			require.NoError(t, err)
			require.Len(t, result.Bindings, 2)

			first := result.Bindings[0]
			assert.True(t, first.Skipped)
			require.Len(t, first.Failures, 1)
			assert.Equal(t, tt.kind, first.Failures[0].Kind)
			assert.Empty(t, first.Files)

			assert.True(t, result.Bindings[1].Succeeded())
			assert.Equal(t, []string{"X.out", "Y.out"}, result.Files())

			require.Len(t, f.log.errors, 1)
			assert.Contains(t, f.log.errors[0], "binding 0")
			assert.Contains(t, f.log.errors[0], tt.first.ModelFile)
			assert.Contains(t, f.log.errors[0], tt.first.ModelYAMLPath)
		})
	}
}

func TestGenerator_PathQueryUnderStrictPolicy(t *testing.T) {
	f := newFixture(t, map[string]string{"m.yaml": itemsModel, "t.tmpl": "{{v}}"})

	result, err := f.generator(t, StrictPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "nothing", tmpl("t.tmpl", "{{name}}.out")),
		binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
	})
	require.Error(t, err)

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, FailPathQuery, fatal.Kind)
	assert.Equal(t, 0, fatal.Binding)

	var qErr *yamlpath.PathQueryError
	assert.True(t, errors.As(err, &qErr))

	require.Len(t, result.Bindings, 1)
	assert.Empty(t, result.Files())
}

func TestGenerator_MustExistFalse(t *testing.T) {
	f := newFixture(t, map[string]string{"m.yaml": itemsModel, "t.tmpl": "{{v}}"})
	optional := false
	b := binding("m.yaml", "nothing", tmpl("t.tmpl", "{{name}}.out"))
	b.MustExist = &optional

	result, err := f.generator(t, StrictPolicy()).Run([]config.ModelTemplateBinding{b})
	require.NoError(t, err)
	assert.True(t, result.Bindings[0].Succeeded())
	assert.Equal(t, 0, result.Bindings[0].Matches)
}

func TestGenerator_RenderFailure(t *testing.T) {
	bindings := []config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("bad.tmpl", "{{name}}.bad"), tmpl("t.tmpl", "{{name}}.out")),
		binding("m.yaml", "items[0]", tmpl("t.tmpl", "first.out")),
	}
	files := map[string]string{
		"m.yaml":   itemsModel,
		"t.tmpl":   "{{v}}",
		"bad.tmpl": "{{index .v 1}}",
	}

	t.Run("default policy aborts", func(t *testing.T) {
		f := newFixture(t, files)
		result, err := f.generator(t, DefaultPolicy()).Run(bindings)
		require.Error(t, err)

		var fatal *FatalError
		require.True(t, errors.As(err, &fatal))
		assert.Equal(t, FailRender, fatal.Kind)

		var genErr *GeneratorError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, GeneratorRenderFailed, genErr.Type)

		assert.Empty(t, result.Files())
		_, statErr := f.output.Stat("first.out")
		assert.Error(t, statErr)
	})

	t.Run("lenient policy continues", func(t *testing.T) {
		f := newFixture(t, files)
		result, err := f.generator(t, LenientPolicy()).Run(bindings)
		require.NoError(t, err)

		assert.Equal(t, []string{"X.out", "Y.out", "first.out"}, result.Files())
		failures := result.Failures()
		require.Len(t, failures, 2)
		for _, fl := range failures {
			assert.Equal(t, FailRender, fl.Kind)
			assert.Equal(t, "bad.tmpl", fl.Template)
		}
		assert.Equal(t, "items[1]", failures[1].Match)
		assert.False(t, result.Bindings[0].Skipped)
	})
}

func TestGenerator_MissingName(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": "items:\n  - {v: 1}\n",
		"t.tmpl": "{{v}}",
	})

	_, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out")),
	})
	var missing *MissingAttributeError
	require.True(t, errors.As(err, &missing))

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, FailMissingAttribute, fatal.Kind)
}

func TestGenerator_AdaptationFailureSkipsMatch(t *testing.T) {
	f := newFixture(t, map[string]string{
		"m.yaml": "things:\n  a: {name: A}\n  b: scalar\n  c: {name: C}\n",
		"t.tmpl": "{{name}}",
	})

	result, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "things.*", tmpl("t.tmpl", "{{name}}.txt")),
	})
	require.NoError(t, err)

	br := result.Bindings[0]
	assert.Equal(t, []string{"A.txt", "C.txt"}, br.Files)
	require.Len(t, br.Failures, 1)
	assert.Equal(t, FailAdaptation, br.Failures[0].Kind)
	assert.Equal(t, "things.b", br.Failures[0].Match)
	assert.False(t, br.Skipped)
}

func TestGenerator_WriteFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"m.yaml": itemsModel, "t.tmpl": "{{v}}"})

	_, err := f.generator(t, DefaultPolicy()).Run([]config.ModelTemplateBinding{
		binding("m.yaml", "items.*", tmpl("t.tmpl", "missing-dir/{{name}}.out")),
	})
	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, FailWrite, fatal.Kind)
}

func TestGenerator_Idempotent(t *testing.T) {
	f := newFixture(t, map[string]string{"m.yaml": itemsModel, "t.tmpl": "value={{v}}\n"})
	bindings := []config.ModelTemplateBinding{binding("m.yaml", "items.*", tmpl("t.tmpl", "{{name}}.out"))}

	_, err := f.generator(t, DefaultPolicy()).Run(bindings)
	require.NoError(t, err)
	first := f.read(t, "X.out")

	_, err = f.generator(t, DefaultPolicy()).Run(bindings)
	require.NoError(t, err)
	assert.Equal(t, first, f.read(t, "X.out"))
	assert.Equal(t, "value=1\n", first)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	g, err := New(Options{
		Models:   NewFSModelLoader(memfs.New()),
		Renderer: render.NewTextRenderer(memfs.New()),
		Writer:   NewFileWriter(memfs.New()),
	})
	require.NoError(t, err)
	assert.IsType(t, NopLogger{}, g.log)
}
