package yamlpath

import (
	"strconv"
	"strings"

	"github.com/tacogips/crossgen/internal/document"
)

// Step is one concrete move from a node to a child.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// Coordinate is a matched node plus the concrete path that reached it.
type Coordinate struct {
	Node *document.Node
	Path []Step
}

// String renders the concrete path, e.g. entities[0].fields.
func (c Coordinate) String() string {
	if len(c.Path) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, s := range c.Path {
		if s.IsIndex {
			b.WriteString("[" + strconv.Itoa(s.Index) + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(quoteKey(s.Key))
	}
	return b.String()
}

func (c Coordinate) child(node *document.Node, step Step) Coordinate {
	path := make([]Step, len(c.Path), len(c.Path)+1)
	copy(path, c.Path)
	return Coordinate{Node: node, Path: append(path, step)}
}

// Query compiles expr and evaluates it against doc.
func Query(doc *document.Node, expr string, mustExist bool, source string) ([]Coordinate, error) {
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return Evaluate(doc, p, mustExist, source)
}

// Evaluate walks doc following the segments of p and returns the matches in
// document order. When mustExist is set an empty result is reported as a
// *PathQueryError naming the expression and source; otherwise it is a valid
// outcome. The document is never modified.
func Evaluate(doc *document.Node, p *Path, mustExist bool, source string) ([]Coordinate, error) {
	var matches []Coordinate
	if doc != nil {
		matches = []Coordinate{{Node: doc}}
	}
	for _, seg := range p.segments {
		if len(matches) == 0 {
			break
		}
		next := make([]Coordinate, 0, len(matches))
		for _, m := range matches {
			next = apply(next, seg, m)
		}
		matches = next
	}

	if len(matches) == 0 {
		if mustExist {
			return nil, &PathQueryError{Expr: p.expr, Source: source}
		}
		return []Coordinate{}, nil
	}
	return matches, nil
}

func apply(out []Coordinate, seg Segment, at Coordinate) []Coordinate {
	n := at.Node
	switch seg.Kind {
	case KeySegment:
		if v, ok := n.Lookup(seg.Key); ok {
			out = append(out, at.child(v, Step{Key: seg.Key}))
		}
	case WildcardSegment:
		out = children(out, at, nil)
	case RecurseSegment:
		out = descendants(out, at)
	case IndexSegment:
		if n.Kind != document.SequenceNode {
			return out
		}
		i := seg.Index
		if i < 0 {
			i += len(n.Items)
		}
		if i >= 0 && i < len(n.Items) {
			out = append(out, at.child(n.Items[i], Step{Index: i, IsIndex: true}))
		}
	case SliceSegment:
		if n.Kind != document.SequenceNode {
			return out
		}
		lo, hi := sliceBounds(seg, len(n.Items))
		for i := lo; i < hi; i++ {
			out = append(out, at.child(n.Items[i], Step{Index: i, IsIndex: true}))
		}
	case PredicateSegment:
		out = children(out, at, seg.Cond)
	}
	return out
}

// children appends every child of at (filtered by cond when non-nil) in
// document order.
func children(out []Coordinate, at Coordinate, cond Condition) []Coordinate {
	n := at.Node
	switch n.Kind {
	case document.SequenceNode:
		for i, item := range n.Items {
			if cond == nil || cond.Match(item) {
				out = append(out, at.child(item, Step{Index: i, IsIndex: true}))
			}
		}
	case document.MappingNode:
		for _, e := range n.Entries {
			if cond == nil || cond.Match(e.Value) {
				out = append(out, at.child(e.Value, Step{Key: e.Key}))
			}
		}
	}
	return out
}

func descendants(out []Coordinate, at Coordinate) []Coordinate {
	out = append(out, at)
	var kids []Coordinate
	kids = children(kids, at, nil)
	for _, k := range kids {
		out = descendants(out, k)
	}
	return out
}

func sliceBounds(seg Segment, n int) (int, int) {
	clamp := func(v int) int {
		if v < 0 {
			v += n
		}
		if v < 0 {
			return 0
		}
		if v > n {
			return n
		}
		return v
	}
	lo, hi := 0, n
	if seg.Start != nil {
		lo = clamp(*seg.Start)
	}
	if seg.End != nil {
		hi = clamp(*seg.End)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
