package document

import (
	"errors"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// LoadFile reads and parses the model document name from fsys.
func LoadFile(fsys billy.Filesystem, name string) (*Node, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newLoadError(LoadNotFound, name, "model file not found", 0, err)
		}
		return nil, newLoadError(LoadReadFailed, name, "failed to read model file", 0, err)
	}
	return Parse(data, name)
}

// Parse builds a document tree from YAML (or JSON) source. Only the first
// document of a multi-document stream is used. An empty source yields an
// empty mapping. Aliases share the anchored subtree instead of copying it,
// so the result must be treated as read-only.
func Parse(data []byte, source string) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, newLoadError(LoadInvalid, source, "invalid YAML syntax", 0, err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return NewMapping(), nil
	}
	c := &converter{source: source, active: map[*yaml.Node]bool{}, built: map[*yaml.Node]*Node{}}
	return c.convert(&root)
}

type converter struct {
	source string
	// active tracks aliases currently being expanded to reject recursive anchors.
	active map[*yaml.Node]bool
	// built holds converted anchored nodes. Aliases share them, so nested
	// aliases cost one conversion per anchor instead of one per reference.
	built map[*yaml.Node]*Node
}

func (c *converter) convert(yn *yaml.Node) (*Node, error) {
	if n, ok := c.built[yn]; ok {
		return n, nil
	}
	n, err := c.build(yn)
	if err != nil {
		return nil, err
	}
	if yn.Anchor != "" {
		c.built[yn] = n
	}
	return n, nil
}

func (c *converter) build(yn *yaml.Node) (*Node, error) {
	switch yn.Kind {
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return NewMapping(), nil
		}
		return c.convert(yn.Content[0])
	case yaml.AliasNode:
		return c.alias(yn)
	case yaml.ScalarNode:
		return c.scalar(yn)
	case yaml.SequenceNode:
		n := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(yn.Content)), Line: yn.Line, Column: yn.Column}
		for _, child := range yn.Content {
			item, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		return n, nil
	case yaml.MappingNode:
		return c.mapping(yn)
	default:
		return nil, newLoadError(LoadInvalid, c.source, "unsupported YAML node kind", yn.Line, nil)
	}
}

func (c *converter) alias(yn *yaml.Node) (*Node, error) {
	if yn.Alias == nil {
		return nil, newLoadError(LoadInvalid, c.source, "alias without anchor", yn.Line, nil)
	}
	if c.active[yn.Alias] {
		return nil, newLoadError(LoadInvalid, c.source, "recursive alias *"+yn.Value, yn.Line, nil)
	}
	c.active[yn.Alias] = true
	defer delete(c.active, yn.Alias)
	return c.convert(yn.Alias)
}

func (c *converter) scalar(yn *yaml.Node) (*Node, error) {
	n := &Node{Kind: ScalarNode, Tag: yn.ShortTag(), Text: yn.Value, Line: yn.Line, Column: yn.Column}
	switch n.Tag {
	case "!!null":
		n.Value = nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := yn.Decode(&v); err != nil {
			return nil, newLoadError(LoadInvalid, c.source, "invalid scalar "+yn.Value, yn.Line, err)
		}
		n.Value = normalizeScalar(v)
	default:
		n.Value = yn.Value
	}
	return n, nil
}

// mapping converts a YAML mapping. Merge keys ("<<") contribute the
// entries of the referenced mappings unless the key is set explicitly.
func (c *converter) mapping(yn *yaml.Node) (*Node, error) {
	n := &Node{Kind: MappingNode, Line: yn.Line, Column: yn.Column}

	explicit := make(map[string]bool, len(yn.Content)/2)
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k := yn.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, newLoadError(LoadInvalid, c.source, "mapping keys must be scalars", k.Line, nil)
		}
		if k.ShortTag() == mergeTag {
			continue
		}
		if explicit[k.Value] {
			return nil, newLoadError(LoadInvalid, c.source, "duplicate mapping key "+k.Value, k.Line, nil)
		}
		explicit[k.Value] = true
	}

	seen := make(map[string]bool, len(explicit))
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		if k.ShortTag() == mergeTag {
			merged, err := c.mergeSources(v)
			if err != nil {
				return nil, err
			}
			for _, src := range merged {
				for _, e := range src.Entries {
					if explicit[e.Key] || seen[e.Key] {
						continue
					}
					seen[e.Key] = true
					n.Entries = append(n.Entries, e)
				}
			}
			continue
		}
		value, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		seen[k.Value] = true
		n.Entries = append(n.Entries, Entry{Key: k.Value, Value: value})
	}
	return n, nil
}

func (c *converter) mergeSources(v *yaml.Node) ([]*Node, error) {
	target := v
	if target.Kind == yaml.AliasNode && target.Alias != nil {
		target = target.Alias
	}
	if target.Kind == yaml.SequenceNode {
		var out []*Node
		for _, item := range target.Content {
			n, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			if n.Kind != MappingNode {
				return nil, newLoadError(LoadInvalid, c.source, "merge key expects mappings", item.Line, nil)
			}
			out = append(out, n)
		}
		return out, nil
	}
	n, err := c.convert(v)
	if err != nil {
		return nil, err
	}
	if n.Kind != MappingNode {
		return nil, newLoadError(LoadInvalid, c.source, "merge key expects a mapping", v.Line, nil)
	}
	return []*Node{n}, nil
}
