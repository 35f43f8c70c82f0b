// Package render renders templates against matched objects using Go's
// text/template. Templates are read through a billy filesystem rooted at
// the template location.
//
// Besides the usual {{.attr}} field access, every top-level attribute
// whose name is a valid identifier is also exposed as a function, so
// {{attr}} renders the same value. Attributes an object does not carry
// render as the empty string in either form, and {{range entries .}}
// iterates a mapping in model order.
package render

import (
	"bytes"
	"errors"
	"os"
	"text/template"
	"text/template/parse"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/tacogips/crossgen/internal/object"
)

// Renderer renders a template for a single matched object.
type Renderer interface {
	Render(templateFile string, obj *object.Object) ([]byte, error)
}

// TextRenderer implements Renderer with text/template.
type TextRenderer struct {
	fs     billy.Filesystem
	parsed map[string]*compiled
}

// compiled is a template file parsed once with field access rewritten.
type compiled struct {
	trees  map[string]*parse.Tree
	idents map[string]bool
}

// NewTextRenderer creates a renderer reading templates from fsys.
func NewTextRenderer(fsys billy.Filesystem) *TextRenderer {
	return &TextRenderer{
		fs:     fsys,
		parsed: map[string]*compiled{},
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(templateFile string, obj *object.Object) ([]byte, error) {
	c, err := r.compile(templateFile)
	if err != nil {
		return nil, err
	}

	ctx := newContext()
	data := ctx.object(obj)

	funcs := attributeFuncs(obj, data)
	for name, fn := range baseFuncs {
		funcs[name] = fn
	}
	funcs["attr"] = attr
	funcs["entries"] = ctx.entries
	for name := range c.idents {
		if _, ok := funcs[name]; !ok && !builtins[name] {
			funcs[name] = undefined
		}
	}

	tmpl := template.New(templateFile).Funcs(funcs)
	for name, tree := range c.trees {
		if _, err := tmpl.AddParseTree(name, tree); err != nil {
			return nil, newError(TemplateInvalid, templateFile, "failed to assemble template", err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, newError(TemplateExecFailed, templateFile, "failed to execute template", err)
	}
	return buf.Bytes(), nil
}

// compile reads and parses a template file once per renderer.
func (r *TextRenderer) compile(name string) (*compiled, error) {
	if c, ok := r.parsed[name]; ok {
		return c, nil
	}
	data, err := util.ReadFile(r.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(TemplateNotFound, name, "template not found", err)
		}
		return nil, newError(TemplateNotFound, name, "failed to read template", err)
	}

	t := parse.New(name)
	t.Mode = parse.SkipFuncCheck
	trees := map[string]*parse.Tree{}
	if _, err := t.Parse(string(data), "", "", trees); err != nil {
		return nil, newError(TemplateInvalid, name, "failed to parse template", err)
	}

	c := &compiled{trees: trees, idents: map[string]bool{}}
	for _, tree := range trees {
		rw := rewriter{idents: c.idents}
		rw.list(tree.Root)
	}
	r.parsed[name] = c
	return c, nil
}
