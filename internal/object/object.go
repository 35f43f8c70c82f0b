// Package object adapts matched document nodes into named-attribute
// records used as template rendering contexts.
package object

import (
	"fmt"

	"github.com/tacogips/crossgen/internal/document"
)

// NameAttribute is the reserved attribute used for output file names.
const NameAttribute = "name"

// Object is an ordered named-attribute record. Values are scalars
// (string, int64, uint64, float64, bool, nil), nested *Object, or []any.
type Object struct {
	keys  []string
	attrs map[string]any
}

// New creates an empty Object.
func New() *Object {
	return &Object{attrs: map[string]any{}}
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (o *Object) Set(key string, v any) {
	if _, ok := o.attrs[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.attrs[key] = v
}

// Get returns the attribute stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.attrs[key]
	return v, ok
}

// Keys returns the attribute names in document order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of attributes.
func (o *Object) Len() int { return len(o.keys) }

// Name returns the name attribute as a string. It reports false when the
// attribute is absent, null, or not a scalar.
func (o *Object) Name() (string, bool) {
	v, ok := o.attrs[NameAttribute]
	if !ok || v == nil {
		return "", false
	}
	switch tv := v.(type) {
	case string:
		return tv, true
	case *Object, []any:
		return "", false
	default:
		return fmt.Sprint(tv), true
	}
}

// Map converts the object to nested map[string]any / []any values, the
// shape text/template expects for field access.
func (o *Object) Map() map[string]any {
	return o.mapped(map[*Object]map[string]any{})
}

func (o *Object) mapped(seen map[*Object]map[string]any) map[string]any {
	if m, ok := seen[o]; ok {
		return m
	}
	out := make(map[string]any, len(o.keys))
	seen[o] = out
	for _, k := range o.keys {
		out[k] = plain(o.attrs[k], seen)
	}
	return out
}

func plain(v any, seen map[*Object]map[string]any) any {
	switch tv := v.(type) {
	case *Object:
		return tv.mapped(seen)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = plain(item, seen)
		}
		return out
	default:
		return v
	}
}

// FromMapping converts a mapping node, recursively, into an Object.
// Subtrees shared through document aliases are converted once and shared.
func FromMapping(n *document.Node) (*Object, error) {
	return newAdapter().mapping(n)
}

type adapter struct {
	done map[*document.Node]any
}

func newAdapter() *adapter {
	return &adapter{done: map[*document.Node]any{}}
}

func (a *adapter) mapping(n *document.Node) (*Object, error) {
	if n == nil || n.Kind != document.MappingNode {
		return nil, newAdaptationError(kindOf(n), -1, "expected a mapping")
	}
	if o, ok := a.done[n].(*Object); ok {
		return o, nil
	}
	o := New()
	a.done[n] = o
	for _, e := range n.Entries {
		o.Set(e.Key, a.value(e.Value))
	}
	return o, nil
}

func (a *adapter) value(n *document.Node) any {
	switch n.Kind {
	case document.MappingNode:
		o, _ := a.mapping(n)
		return o
	case document.SequenceNode:
		if v, ok := a.done[n]; ok {
			return v
		}
		out := make([]any, len(n.Items))
		a.done[n] = out
		for i, item := range n.Items {
			out[i] = a.value(item)
		}
		return out
	default:
		return n.Value
	}
}

// Adapt turns a matched node into the objects it stands for: a mapping
// yields one object, a sequence of mappings one object per element in
// order. Scalars, and sequences holding anything but mappings, are not
// valid binding targets.
func Adapt(n *document.Node) ([]*Object, error) {
	if n == nil {
		return nil, newAdaptationError(document.ScalarNode, -1, "nothing matched")
	}
	a := newAdapter()
	switch n.Kind {
	case document.MappingNode:
		o, err := a.mapping(n)
		if err != nil {
			return nil, err
		}
		return []*Object{o}, nil
	case document.SequenceNode:
		out := make([]*Object, 0, len(n.Items))
		for i, item := range n.Items {
			if item.Kind != document.MappingNode {
				return nil, newAdaptationError(item.Kind, i, "sequence element is not a mapping")
			}
			o, err := a.mapping(item)
			if err != nil {
				return nil, err
			}
			out = append(out, o)
		}
		return out, nil
	default:
		return nil, newAdaptationError(n.Kind, -1, "a scalar cannot be used as a binding target")
	}
}

func kindOf(n *document.Node) document.Kind {
	if n == nil {
		return document.ScalarNode
	}
	return n.Kind
}
