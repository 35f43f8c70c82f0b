package render

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/tacogips/crossgen/internal/object"
)

var baseFuncs = template.FuncMap{
	"json": func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("<json error: %v>", err)
		}
		return string(b)
	},
	"first": func(v any) any {
		switch s := v.(type) {
		case []any:
			if len(s) > 0 {
				return s[0]
			}
		}
		return ""
	},
	"upper":      func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
	"lower":      func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
	"capitalize": capitalize,
	"join": func(sep string, v any) string {
		items, ok := v.([]any)
		if !ok {
			return fmt.Sprint(v)
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, sep)
	},
	"default": func(def, v any) any {
		if v == nil || v == "" {
			return def
		}
		return v
	},
}

// builtins are the text/template functions that attributes must not shadow.
var builtins = map[string]bool{
	"and": true, "call": true, "html": true, "index": true, "slice": true,
	"js": true, "len": true, "not": true, "or": true, "print": true,
	"printf": true, "println": true, "urlquery": true, "eq": true, "ge": true,
	"gt": true, "le": true, "lt": true, "ne": true,
}

func attributeFuncs(obj *object.Object, data map[string]any) template.FuncMap {
	funcs := template.FuncMap{}
	for _, key := range obj.Keys() {
		if !isIdentifier(key) || builtins[key] {
			continue
		}
		v := data[key]
		if v == nil {
			v = ""
		}
		funcs[key] = func() any { return v }
	}
	return funcs
}

// undefined stands in for a bare attribute name the object does not carry.
func undefined(...any) any { return "" }

// attr follows path through nested mappings. A missing key or a null
// value yields "".
func attr(v any, path ...string) (any, error) {
	for _, k := range path {
		switch m := v.(type) {
		case map[string]any:
			v = m[k]
		case nil:
			return "", nil
		case string:
			if m == "" {
				return "", nil
			}
			return nil, fmt.Errorf("can't evaluate field %s in type %T", k, v)
		default:
			return nil, fmt.Errorf("can't evaluate field %s in type %T", k, v)
		}
	}
	if v == nil {
		return "", nil
	}
	return v, nil
}

// context is the data of one render. It remembers the key order of every
// mapping it builds so entries can iterate them as the model lists them.
type context struct {
	order map[uintptr][]string
	seen  map[*object.Object]map[string]any
}

func newContext() *context {
	return &context{order: map[uintptr][]string{}, seen: map[*object.Object]map[string]any{}}
}

func (c *context) object(o *object.Object) map[string]any {
	if m, ok := c.seen[o]; ok {
		return m
	}
	keys := o.Keys()
	m := make(map[string]any, len(keys))
	c.seen[o] = m
	c.order[reflect.ValueOf(m).Pointer()] = keys
	for _, k := range keys {
		v, _ := o.Get(k)
		m[k] = c.value(v)
	}
	return m
}

func (c *context) value(v any) any {
	switch tv := v.(type) {
	case *object.Object:
		return c.object(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = c.value(item)
		}
		return out
	default:
		return v
	}
}

// entries lists the key/value pairs of a mapping in model order. Mappings
// not built from the model are listed by sorted key.
func (c *context) entries(v any) ([]map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		if v == nil || v == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("entries of non-mapping %T", v)
	}
	keys, ok := c.order[reflect.ValueOf(m).Pointer()]
	if !ok {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	out := make([]map[string]any, len(keys))
	for i, k := range keys {
		out[i] = map[string]any{"key": k, "value": m[k]}
	}
	return out, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func capitalize(v any) string {
	s := fmt.Sprint(v)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
