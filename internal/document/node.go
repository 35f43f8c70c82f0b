// Package document holds the in-memory model tree that path expressions
// are evaluated against. Mapping entries keep their document order.
package document

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	// ScalarNode is a leaf value (string, number, bool or null).
	ScalarNode Kind = iota
	// SequenceNode is an ordered list of nodes.
	SequenceNode
	// MappingNode is an ordered string-keyed map of nodes.
	MappingNode
)

// String returns the kind name used in log and error messages.
func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry is a single key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one element of a document tree.
type Node struct {
	Kind Kind

	// Tag is the resolved YAML tag of a scalar (e.g. "!!int").
	Tag string
	// Text is the scalar exactly as written in the source.
	Text string
	// Value is the decoded scalar: string, int64, uint64, float64, bool or nil.
	Value any

	// Items holds sequence elements.
	Items []*Node
	// Entries holds mapping entries in insertion order.
	Entries []Entry

	// Line and Column locate the node in its source document (1-based, 0 if unknown).
	Line   int
	Column int
}

// NewScalar creates a scalar node from a Go value.
func NewScalar(v any) *Node {
	n := &Node{Kind: ScalarNode, Value: normalizeScalar(v)}
	switch tv := n.Value.(type) {
	case nil:
		n.Tag, n.Text = "!!null", "null"
	case bool:
		n.Tag, n.Text = "!!bool", strconv.FormatBool(tv)
	case int64, uint64:
		n.Tag, n.Text = "!!int", fmt.Sprint(tv)
	case float64:
		n.Tag, n.Text = "!!float", strconv.FormatFloat(tv, 'g', -1, 64)
	default:
		n.Tag, n.Text = "!!str", fmt.Sprint(tv)
	}
	return n
}

// NewSequence creates a sequence node.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Items: items}
}

// NewMapping creates a mapping node. Keys are expected to be unique.
func NewMapping(entries ...Entry) *Node {
	return &Node{Kind: MappingNode, Entries: entries}
}

// Lookup returns the value stored under key in a mapping node.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.Kind != MappingNode {
		return nil, false
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the mapping keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != MappingNode {
		return nil
	}
	keys := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	switch n.Kind {
	case SequenceNode:
		return len(n.Items)
	case MappingNode:
		return len(n.Entries)
	default:
		return 0
	}
}

// IsScalar reports whether n is a scalar node.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == ScalarNode }

// Interface converts the subtree to plain Go values: map[string]any,
// []any and scalar values. Mapping order is lost in the conversion.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case SequenceNode:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.Interface()
		}
		return out
	case MappingNode:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return n.Value
	}
}

// String renders scalars as their source text and containers as a short summary.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind == ScalarNode {
		return n.Text
	}
	return fmt.Sprintf("<%s of %d>", n.Kind, n.Len())
}

func normalizeScalar(v any) any {
	switch tv := v.(type) {
	case int:
		return int64(tv)
	case int8:
		return int64(tv)
	case int16:
		return int64(tv)
	case int32:
		return int64(tv)
	case uint:
		return uint64(tv)
	case uint8:
		return uint64(tv)
	case uint16:
		return uint64(tv)
	case uint32:
		return uint64(tv)
	case float32:
		return float64(tv)
	default:
		return v
	}
}
