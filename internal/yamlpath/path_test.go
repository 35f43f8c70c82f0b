package yamlpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []SegmentKind
	}{
		{"root", "", nil},
		{"single key", "items", []SegmentKind{KeySegment}},
		{"key wildcard", "items.*", []SegmentKind{KeySegment, WildcardSegment}},
		{"slash delimited", "/items/*", []SegmentKind{KeySegment, WildcardSegment}},
		{"index", "items[0].name", []SegmentKind{KeySegment, IndexSegment, KeySegment}},
		{"leading index", "[1]", []SegmentKind{IndexSegment}},
		{"bracket wildcard", "items[*]", []SegmentKind{KeySegment, WildcardSegment}},
		{"slice", "items[1:]", []SegmentKind{KeySegment, SliceSegment}},
		{"predicate", "items[name=X]", []SegmentKind{KeySegment, PredicateSegment}},
		{"script", "items[?(@.v > 1)]", []SegmentKind{KeySegment, PredicateSegment}},
		{"recurse", "**.name", []SegmentKind{RecurseSegment, KeySegment}},
		{"chained brackets", "grid[0][1]", []SegmentKind{KeySegment, IndexSegment, IndexSegment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.expr)
			require.NoError(t, err)
			var kinds []SegmentKind
			for _, s := range p.Segments() {
				kinds = append(kinds, s.Kind)
			}
			assert.Equal(t, tt.want, kinds)
			assert.Equal(t, tt.expr, p.String())
		})
	}
}

func TestCompile_Keys(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{`a.b`, []string{"a", "b"}},
		{`"a.b".c`, []string{"a.b", "c"}},
		{`'x y'`, []string{"x y"}},
		{`a\.b.c`, []string{"a.b", "c"}},
		{`/a.b/c`, []string{"a.b", "c"}},
		{`\*`, []string{"*"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Compile(tt.expr)
			require.NoError(t, err)
			var keys []string
			for _, s := range p.Segments() {
				require.Equal(t, KeySegment, s.Kind)
				keys = append(keys, s.Key)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestCompile_Predicates(t *testing.T) {
	tests := []struct {
		body   string
		attr   string
		op     Operator
		value  string
		negate bool
	}{
		{"name=Foo", "name", OpEqual, "Foo", false},
		{"name == 'Foo Bar'", "name", OpEqual, "Foo Bar", false},
		{"name!=Foo", "name", OpEqual, "Foo", true},
		{"name^Fo", "name", OpPrefix, "Fo", false},
		{"name!$oo", "name", OpSuffix, "oo", true},
		{"name%o", "name", OpContains, "o", false},
		{"name=~/^F.o$/", "name", OpRegex, "^F.o$", false},
		{"size<=10", "size", OpLessEqual, "10", false},
		{"size>3", "size", OpGreater, "3", false},
		{".=x", ".", OpEqual, "x", false},
		{`"a=b"=1`, "a=b", OpEqual, "1", false},
		{`'x!y'!=2`, "x!y", OpEqual, "2", true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			p, err := Compile("items[" + tt.body + "]")
			require.NoError(t, err)
			seg := p.Segments()[1]
			require.Equal(t, PredicateSegment, seg.Kind)
			cmp, ok := seg.Cond.(*Comparison)
			require.True(t, ok)
			assert.Equal(t, tt.attr, cmp.Attr)
			assert.Equal(t, tt.op, cmp.Op)
			assert.Equal(t, tt.value, cmp.Value)
			assert.Equal(t, tt.negate, cmp.Negate)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"trailing delimiter", "items."},
		{"empty key", "a..b"},
		{"unterminated bracket", "items[0"},
		{"empty brackets", "items[]"},
		{"unbalanced close", "items]"},
		{"unterminated quote", `"items`},
		{"bad regex", "items[name=~/(/]"},
		{"no operator", "items[name]"},
		{"no attribute", "items[=x]"},
		{"junk after bracket", "items[0]x"},
		{"dangling escape", `items\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)
			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, tt.expr, synErr.Expr)
		})
	}
}

func TestSegmentString(t *testing.T) {
	p := MustCompile(`a."b.c"[0][1:2][*].**[name=X]`)
	var parts []string
	for _, s := range p.Segments() {
		parts = append(parts, s.String())
	}
	assert.Equal(t, []string{"a", `"b.c"`, "[0]", "[1:2]", "*", "**", "[name=X]"}, parts)
}
