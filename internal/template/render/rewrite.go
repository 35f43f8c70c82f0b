package render

import (
	"strconv"
	"text/template/parse"
)

// rewriter turns field access into calls of attr so that a missing
// attribute yields "" instead of text/template's "<no value>". It also
// collects every function name the template refers to.
type rewriter struct {
	idents map[string]bool
}

func (rw rewriter) list(l *parse.ListNode) {
	if l == nil {
		return
	}
	for _, n := range l.Nodes {
		rw.node(n)
	}
}

func (rw rewriter) node(n parse.Node) {
	switch n := n.(type) {
	case *parse.ActionNode:
		rw.pipe(n.Pipe)
	case *parse.IfNode:
		rw.branch(&n.BranchNode)
	case *parse.RangeNode:
		rw.branch(&n.BranchNode)
	case *parse.WithNode:
		rw.branch(&n.BranchNode)
	case *parse.TemplateNode:
		rw.pipe(n.Pipe)
	case *parse.ListNode:
		rw.list(n)
	}
}

func (rw rewriter) branch(b *parse.BranchNode) {
	rw.pipe(b.Pipe)
	rw.list(b.List)
	rw.list(b.ElseList)
}

func (rw rewriter) pipe(p *parse.PipeNode) {
	if p == nil {
		return
	}
	for _, cmd := range p.Cmds {
		for i, arg := range cmd.Args {
			cmd.Args[i] = rw.arg(arg)
		}
	}
}

func (rw rewriter) arg(n parse.Node) parse.Node {
	switch n := n.(type) {
	case *parse.IdentifierNode:
		rw.idents[n.Ident] = true
	case *parse.PipeNode:
		rw.pipe(n)
	case *parse.FieldNode:
		return attrCall(n.Pos, &parse.DotNode{NodeType: parse.NodeDot, Pos: n.Pos}, n.Ident)
	case *parse.VariableNode:
		if len(n.Ident) > 1 {
			base := &parse.VariableNode{NodeType: parse.NodeVariable, Pos: n.Pos, Ident: n.Ident[:1]}
			return attrCall(n.Pos, base, n.Ident[1:])
		}
	case *parse.ChainNode:
		return attrCall(n.Pos, rw.arg(n.Node), n.Field)
	}
	return n
}

// attrCall builds the pipeline (attr base "k1" "k2" ...).
func attrCall(pos parse.Pos, base parse.Node, path []string) *parse.PipeNode {
	args := []parse.Node{
		&parse.IdentifierNode{NodeType: parse.NodeIdentifier, Pos: pos, Ident: "attr"},
		base,
	}
	for _, k := range path {
		args = append(args, &parse.StringNode{NodeType: parse.NodeString, Pos: pos, Quoted: strconv.Quote(k), Text: k})
	}
	return &parse.PipeNode{
		NodeType: parse.NodePipe,
		Pos:      pos,
		Cmds:     []*parse.CommandNode{{NodeType: parse.NodeCommand, Pos: pos, Args: args}},
	}
}
