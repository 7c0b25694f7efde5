package predictive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
)

// Node is a node of a parse tree. Inner nodes carry the production which has
// been used to expand their non-terminal. Leaves are terminals; if the parser
// has been fed with tokens, leaves hold the token as well.
//
// A non-terminal expanded by an epsilon production is a node without children
// and with a null span.
type Node struct {
	Symbol     ll.Symbol
	Production *ll.Production
	Token      predict.Token
	Span       predict.Span
	Children   []*Node
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk calls f for n and all its descendents, in pre-order. depth is 0 for n.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Leaves returns the terminal leaves of the tree, left to right. This is the
// parsed input.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node, _ int) {
		if node.Symbol.IsTerminal() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Label returns a short label for the node: the lexeme of a token, if present,
// or the symbol.
func (n *Node) Label() string {
	if n.Token != nil {
		return n.Token.Lexeme()
	}
	return n.Symbol.String()
}

// String renders a tree in parenthesized form, e.g. "(F ( (E …) ))".
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	if n.Symbol.IsTerminal() {
		b.WriteString(n.Label())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Symbol.String())
	for _, ch := range n.Children {
		b.WriteByte(' ')
		ch.render(b)
	}
	b.WriteByte(')')
}

// ErrNoParseTree is returned if a parse tree is requested for a parse which has
// not been successful.
var ErrNoParseTree = errors.New("no successful parse, cannot build parse tree")

// ParseTree builds a parse tree from the leftmost derivation of the last parse.
// It is available only after the parser accepted its input.
func (p *Parser) ParseTree() (*Node, error) {
	if p.state != Done {
		return nil, ErrNoParseTree
	}
	tb := &treeBuilder{derivation: p.derivation, input: p.input, tokens: p.tokens}
	root, err := tb.build(p.start)
	if err != nil {
		return nil, err
	}
	return root, nil
}

type treeBuilder struct {
	derivation []*ll.Production
	input      []ll.Symbol
	tokens     []predict.Token
	next       int // next production of the derivation
	pos        int // next input position
}

// build consumes the derivation in leftmost order. Every non-terminal consumes
// the next production, every terminal consumes the next input symbol.
func (tb *treeBuilder) build(A ll.Symbol) (*Node, error) {
	node := &Node{Symbol: A}
	if A.IsTerminal() {
		if tb.pos >= len(tb.input) || tb.input[tb.pos] != A {
			return nil, fmt.Errorf("derivation does not match input at position %d", tb.pos)
		}
		node.Span = predict.Span{uint64(tb.pos), uint64(tb.pos + 1)}
		if tb.pos < len(tb.tokens) {
			node.Token = tb.tokens[tb.pos]
			node.Span = node.Token.Span()
		}
		tb.pos++
		return node, nil
	}
	if tb.next >= len(tb.derivation) {
		return nil, fmt.Errorf("derivation exhausted at non-terminal %v", A)
	}
	prod := tb.derivation[tb.next]
	tb.next++
	if prod.LHS != A {
		return nil, fmt.Errorf("derivation out of order: expected production for %v, have %v", A, prod)
	}
	node.Production = prod
	for _, B := range prod.RHS() {
		if B.IsEpsilon() {
			continue
		}
		child, err := tb.build(B)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
		node.Span = node.Span.Extend(child.Span)
	}
	return node, nil
}
