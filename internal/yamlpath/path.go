// Package yamlpath compiles and evaluates path expressions that address
// nodes of a document tree.
//
// Expressions are key names separated by '.', or by '/' when the
// expression starts with '/':
//
//	entities.*                  every child of entities
//	/entities/*/fields          same, slash delimited
//	entities[0]                 first element; negative indexes count from the end
//	entities[1:3]               slice of a sequence
//	entities[name=Customer]     children whose name attribute equals Customer
//	entities[name=~/^Cust/]     regular expression match
//	entities[?(@.size > 10)]    filter script evaluated by ojg
//	**                          the node and all of its descendants
//
// Keys may be quoted ("a.b") or escape a delimiter with a backslash.
package yamlpath

import (
	"strconv"
	"strings"
)

// SegmentKind identifies the traversal performed by a Segment.
type SegmentKind int

const (
	// KeySegment descends into a named mapping entry.
	KeySegment SegmentKind = iota
	// WildcardSegment branches into every child of a mapping or sequence.
	WildcardSegment
	// RecurseSegment yields the node itself and every descendant.
	RecurseSegment
	// IndexSegment descends into a sequence position.
	IndexSegment
	// SliceSegment selects a range of sequence positions.
	SliceSegment
	// PredicateSegment keeps the children satisfying a condition.
	PredicateSegment
)

// Segment is one compiled traversal step.
type Segment struct {
	Kind SegmentKind
	// Key is set for KeySegment.
	Key string
	// Index is set for IndexSegment.
	Index int
	// Start and End bound a SliceSegment; nil means open.
	Start, End *int
	// Cond is set for PredicateSegment.
	Cond Condition
}

// String renders the segment in expression syntax.
func (s Segment) String() string {
	switch s.Kind {
	case KeySegment:
		return quoteKey(s.Key)
	case WildcardSegment:
		return "*"
	case RecurseSegment:
		return "**"
	case IndexSegment:
		return "[" + strconv.Itoa(s.Index) + "]"
	case SliceSegment:
		var b strings.Builder
		b.WriteByte('[')
		if s.Start != nil {
			b.WriteString(strconv.Itoa(*s.Start))
		}
		b.WriteByte(':')
		if s.End != nil {
			b.WriteString(strconv.Itoa(*s.End))
		}
		b.WriteByte(']')
		return b.String()
	case PredicateSegment:
		return "[" + s.Cond.String() + "]"
	default:
		return "?"
	}
}

// Path is a compiled path expression. It is immutable once compiled.
type Path struct {
	expr     string
	segments []Segment
}

// String returns the expression the path was compiled from.
func (p *Path) String() string { return p.expr }

// Segments returns a copy of the compiled segments.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Path {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile parses expr into a Path. An empty expression (or a lone
// delimiter) addresses the document root.
func Compile(expr string) (*Path, error) {
	c := &compiler{expr: expr, delim: '.'}
	if strings.HasPrefix(expr, "/") {
		c.delim = '/'
		c.pos = 1
	}
	segs, err := c.compile()
	if err != nil {
		return nil, err
	}
	return &Path{expr: expr, segments: segs}, nil
}

type compiler struct {
	expr  string
	pos   int
	delim byte
	segs  []Segment
}

func (c *compiler) errorf(pos int, msg string, cause error) error {
	return &SyntaxError{Expr: c.expr, Pos: pos, Message: msg, Cause: cause}
}

func (c *compiler) compile() ([]Segment, error) {
	if c.pos >= len(c.expr) || c.expr[c.pos:] == string(c.delim) {
		return nil, nil
	}
	for {
		if err := c.name(); err != nil {
			return nil, err
		}
		for c.pos < len(c.expr) && c.expr[c.pos] == '[' {
			if err := c.bracket(); err != nil {
				return nil, err
			}
		}
		if c.pos >= len(c.expr) {
			return c.segs, nil
		}
		if c.expr[c.pos] != c.delim {
			return nil, c.errorf(c.pos, "unexpected character "+strconv.QuoteRune(rune(c.expr[c.pos])), nil)
		}
		c.pos++
		if c.pos >= len(c.expr) {
			return nil, c.errorf(c.pos, "expression ends with a delimiter", nil)
		}
	}
}

// name reads the key part of a segment. An empty name is allowed only
// when a bracket follows it directly.
func (c *compiler) name() error {
	start := c.pos
	if c.pos < len(c.expr) && (c.expr[c.pos] == '"' || c.expr[c.pos] == '\'') {
		key, err := c.quoted()
		if err != nil {
			return err
		}
		c.segs = append(c.segs, Segment{Kind: KeySegment, Key: key})
		return nil
	}

	var b strings.Builder
	escaped := false
	for c.pos < len(c.expr) {
		ch := c.expr[c.pos]
		if ch == '\\' {
			if c.pos+1 >= len(c.expr) {
				return c.errorf(c.pos, "dangling escape", nil)
			}
			b.WriteByte(c.expr[c.pos+1])
			c.pos += 2
			escaped = true
			continue
		}
		if ch == c.delim || ch == '[' {
			break
		}
		if ch == ']' {
			return c.errorf(c.pos, "unbalanced ']'", nil)
		}
		b.WriteByte(ch)
		c.pos++
	}

	key := b.String()
	switch {
	case key == "" && !escaped:
		if c.pos < len(c.expr) && c.expr[c.pos] == '[' {
			return nil
		}
		return c.errorf(start, "empty key", nil)
	case key == "*" && !escaped:
		c.segs = append(c.segs, Segment{Kind: WildcardSegment})
	case key == "**" && !escaped:
		c.segs = append(c.segs, Segment{Kind: RecurseSegment})
	default:
		c.segs = append(c.segs, Segment{Kind: KeySegment, Key: key})
	}
	return nil
}

func (c *compiler) quoted() (string, error) {
	quote := c.expr[c.pos]
	start := c.pos
	c.pos++
	var b strings.Builder
	for c.pos < len(c.expr) {
		ch := c.expr[c.pos]
		switch {
		case ch == '\\' && c.pos+1 < len(c.expr):
			b.WriteByte(c.expr[c.pos+1])
			c.pos += 2
		case ch == quote:
			c.pos++
			return b.String(), nil
		default:
			b.WriteByte(ch)
			c.pos++
		}
	}
	return "", c.errorf(start, "unterminated quoted key", nil)
}

// bracket reads one [...] group. Nested brackets, parentheses and quoted
// strings inside the group are skipped when looking for the closing ']'.
func (c *compiler) bracket() error {
	open := c.pos
	depth := 0
	var quote byte
	end := -1
scan:
	for i := open + 1; i < len(c.expr); i++ {
		ch := c.expr[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[' || ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == ']':
			if depth == 0 {
				end = i
				break scan
			}
			depth--
		}
	}
	if end < 0 {
		return c.errorf(open, "unterminated '['", nil)
	}
	body := strings.TrimSpace(c.expr[open+1 : end])
	c.pos = end + 1

	seg, err := c.bracketSegment(open+1, body)
	if err != nil {
		return err
	}
	c.segs = append(c.segs, seg)
	return nil
}

func (c *compiler) bracketSegment(pos int, body string) (Segment, error) {
	if body == "" {
		return Segment{}, c.errorf(pos, "empty brackets", nil)
	}
	if body == "*" {
		return Segment{Kind: WildcardSegment}, nil
	}
	if n, err := strconv.Atoi(body); err == nil {
		return Segment{Kind: IndexSegment, Index: n}, nil
	}
	if lo, hi, ok := strings.Cut(body, ":"); ok && isSliceBound(lo) && isSliceBound(hi) {
		seg := Segment{Kind: SliceSegment}
		if lo = strings.TrimSpace(lo); lo != "" {
			n, _ := strconv.Atoi(lo)
			seg.Start = &n
		}
		if hi = strings.TrimSpace(hi); hi != "" {
			n, _ := strconv.Atoi(hi)
			seg.End = &n
		}
		return seg, nil
	}
	if strings.HasPrefix(body, "?") {
		cond, err := newScriptCondition(strings.TrimSpace(body[1:]))
		if err != nil {
			return Segment{}, c.errorf(pos, "invalid filter script", err)
		}
		return Segment{Kind: PredicateSegment, Cond: cond}, nil
	}
	cond, msg, err := parseComparison(body)
	if cond == nil {
		return Segment{}, c.errorf(pos, msg, err)
	}
	return Segment{Kind: PredicateSegment, Cond: cond}, nil
}

func isSliceBound(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func quoteKey(key string) string {
	if key == "" || key == "*" || key == "**" || strings.ContainsAny(key, `./[]"'\`) {
		return strconv.Quote(key)
	}
	return key
}
