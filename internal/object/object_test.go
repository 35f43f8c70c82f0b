package object

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/crossgen/internal/document"
)

func parse(t *testing.T, src string) *document.Node {
	t.Helper()
	doc, err := document.Parse([]byte(src), "m.yaml")
	require.NoError(t, err)
	return doc
}

func TestAdapt_Mapping(t *testing.T) {
	doc := parse(t, `
name: Customer
size: 3
table:
  schema: crm
  columns: [id, email]
`)
	objs, err := Adapt(doc)
	require.NoError(t, err)
	require.Len(t, objs, 1)

	o := objs[0]
	assert.Equal(t, []string{"name", "size", "table"}, o.Keys())

	name, ok := o.Name()
	assert.True(t, ok)
	assert.Equal(t, "Customer", name)

	size, _ := o.Get("size")
	assert.Equal(t, int64(3), size)

	nested, ok := o.Get("table")
	require.True(t, ok)
	table, ok := nested.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"schema", "columns"}, table.Keys())
	cols, _ := table.Get("columns")
	assert.Equal(t, []any{"id", "email"}, cols)
}

func TestAdapt_SequenceOfMappings(t *testing.T) {
	doc := parse(t, "- name: A\n- name: B\n- name: C\n")
	objs, err := Adapt(doc)
	require.NoError(t, err)
	require.Len(t, objs, 3)

	for i, want := range []string{"A", "B", "C"} {
		name, ok := objs[i].Name()
		require.True(t, ok)
		assert.Equal(t, want, name)
	}
}

func TestAdapt_Errors(t *testing.T) {
	tests := []struct {
		name    string
		node    *document.Node
		kind    document.Kind
		element int
	}{
		{"scalar", document.NewScalar("x"), document.ScalarNode, -1},
		{"mixed sequence", document.NewSequence(document.NewMapping(), document.NewScalar(1)), document.ScalarNode, 1},
		{"nested sequence", document.NewSequence(document.NewSequence()), document.SequenceNode, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapt(tt.node)
			require.Error(t, err)
			var adaptErr *AdaptationError
			require.True(t, errors.As(err, &adaptErr))
			assert.Equal(t, tt.kind, adaptErr.Kind)
			assert.Equal(t, tt.element, adaptErr.Element)
		})
	}
}

func TestAdapt_SharesAliasedMappings(t *testing.T) {
	doc, err := document.Parse([]byte(`
base: &b {kind: shared}
items:
  - {name: x, ref: *b}
  - {name: y, ref: *b}
`), "m.yaml")
	require.NoError(t, err)
	items, ok := doc.Lookup("items")
	require.True(t, ok)

	objs, err := Adapt(items)
	require.NoError(t, err)
	require.Len(t, objs, 2)

	x, _ := objs[0].Get("ref")
	y, _ := objs[1].Get("ref")
	assert.Same(t, x, y)
	assert.Equal(t, "shared", x.(*Object).Map()["kind"])
}

func TestAdapt_EmptySequence(t *testing.T) {
	objs, err := Adapt(document.NewSequence())
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestObject_Name(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{"string", "Foo", "Foo", true},
		{"number", int64(7), "7", true},
		{"bool", true, "true", true},
		{"null", nil, "", false},
		{"nested", New(), "", false},
		{"list", []any{"a"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			o.Set(NameAttribute, tt.value)
			got, ok := o.Name()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := New().Name()
	assert.False(t, ok)
}

func TestObject_Map(t *testing.T) {
	doc := parse(t, "name: X\nfields:\n  - {name: id, type: int}\nmeta: {a: 1}\n")
	objs, err := Adapt(doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":   "X",
		"fields": []any{map[string]any{"name": "id", "type": "int"}},
		"meta":   map[string]any{"a": int64(1)},
	}, objs[0].Map())
}

func TestObject_SetKeepsOrder(t *testing.T) {
	o := New()
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, _ := o.Get("b")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, o.Len())
}
