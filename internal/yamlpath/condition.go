package yamlpath

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/tacogips/crossgen/internal/document"
)

// Condition decides whether a child node passes a predicate segment.
type Condition interface {
	Match(child *document.Node) bool
	String() string
}

// Operator is a comparison used by attribute predicates.
type Operator int

const (
	OpEqual Operator = iota
	OpPrefix
	OpSuffix
	OpContains
	OpRegex
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

var operatorTokens = []struct {
	token string
	op    Operator
}{
	// Longest tokens first.
	{"=~", OpRegex},
	{"==", OpEqual},
	{"<=", OpLessEqual},
	{">=", OpGreaterEqual},
	{"=", OpEqual},
	{"^", OpPrefix},
	{"$", OpSuffix},
	{"%", OpContains},
	{"<", OpLess},
	{">", OpGreater},
}

func (o Operator) String() string {
	for _, t := range operatorTokens {
		if t.op == o && t.token != "==" {
			return t.token
		}
	}
	return "?"
}

// Comparison matches a child whose attribute (or own scalar value when
// Attr is ".") compares to Value. A missing or non-scalar attribute never
// matches, negated or not.
type Comparison struct {
	Attr   string
	Op     Operator
	Value  string
	Negate bool

	re *regexp.Regexp
}

// Match implements Condition.
func (c *Comparison) Match(child *document.Node) bool {
	target, ok := c.target(child)
	if !ok {
		return false
	}
	return c.compare(target) != c.Negate
}

// target returns the scalar the comparison applies to.
func (c *Comparison) target(child *document.Node) (*document.Node, bool) {
	if c.Attr == "." {
		return child, child.IsScalar()
	}
	v, ok := child.Lookup(c.Attr)
	if !ok || !v.IsScalar() {
		return nil, false
	}
	return v, true
}

func (c *Comparison) compare(target *document.Node) bool {
	text := target.Text
	switch c.Op {
	case OpEqual:
		if a, b, ok := c.numbers(target); ok {
			return a == b
		}
		return text == c.Value
	case OpPrefix:
		return strings.HasPrefix(text, c.Value)
	case OpSuffix:
		return strings.HasSuffix(text, c.Value)
	case OpContains:
		return strings.Contains(text, c.Value)
	case OpRegex:
		return c.re.MatchString(text)
	}

	cmp := strings.Compare(text, c.Value)
	if a, b, ok := c.numbers(target); ok {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		default:
			cmp = 0
		}
	}
	switch c.Op {
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	}
	return false
}

// String implements Condition.
func (c *Comparison) String() string {
	var b strings.Builder
	b.WriteString(c.Attr)
	if c.Negate {
		b.WriteByte('!')
	}
	b.WriteString(c.Op.String())
	if c.Op == OpRegex {
		b.WriteString("/" + c.Value + "/")
	} else {
		b.WriteString(c.Value)
	}
	return b.String()
}

// numbers returns the target and the comparison value as floats when the
// target is a finite !!int or !!float scalar and the value is a finite
// number. Anything else compares as text.
func (c *Comparison) numbers(target *document.Node) (float64, float64, bool) {
	var x float64
	switch v := target.Value.(type) {
	case int64:
		x = float64(v)
	case uint64:
		x = float64(v)
	case float64:
		x = v
	default:
		return 0, 0, false
	}
	if !finite(x) {
		return 0, 0, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil || !finite(y) {
		return 0, 0, false
	}
	return x, y, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseComparison parses "attr[!]op value". On failure it returns a nil
// condition and a message.
func parseComparison(body string) (*Comparison, string, error) {
	i := operatorIndex(body)
	if i < 0 {
		return nil, "expected index, slice, or predicate in brackets", nil
	}
	attr := unquote(strings.TrimSpace(body[:i]))
	if attr == "" {
		return nil, "predicate has no attribute", nil
	}

	rest := body[i:]
	cond := &Comparison{Attr: attr}
	if strings.HasPrefix(rest, "!") {
		cond.Negate = true
		rest = rest[1:]
	}
	matched := false
	for _, t := range operatorTokens {
		if strings.HasPrefix(rest, t.token) {
			cond.Op = t.op
			rest = rest[len(t.token):]
			matched = true
			break
		}
	}
	if !matched {
		return nil, "unknown predicate operator", nil
	}

	value := strings.TrimSpace(rest)
	if cond.Op == OpRegex {
		if len(value) >= 2 && value[0] == '/' && value[len(value)-1] == '/' {
			value = value[1 : len(value)-1]
		}
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, "invalid regular expression", err
		}
		cond.re = re
	} else {
		value = unquote(value)
	}
	cond.Value = value
	return cond, "", nil
}

// operatorIndex returns the offset of the first operator character outside
// a quoted span, or -1.
func operatorIndex(body string) int {
	var quote byte
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case strings.IndexByte("=!^$%<>", ch) >= 0:
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ScriptCondition evaluates an ojg filter script with @ bound to the child.
type ScriptCondition struct {
	script *jp.Script
}

func newScriptCondition(src string) (*ScriptCondition, error) {
	if !strings.HasPrefix(src, "(") {
		src = "(" + src + ")"
	}
	script, err := jp.NewScript(src)
	if err != nil {
		return nil, err
	}
	return &ScriptCondition{script: script}, nil
}

// Match implements Condition.
func (s *ScriptCondition) Match(child *document.Node) bool {
	return s.script.Match(child.Interface())
}

// String implements Condition.
func (s *ScriptCondition) String() string {
	return "?" + s.script.String()
}
