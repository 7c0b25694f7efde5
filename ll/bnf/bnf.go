package bnf

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/predict/ll/predictive"
	"github.com/npillmayer/predict/ll/scanner"
	"github.com/npillmayer/predict/ll/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of the BNF lexer.
const (
	tokIdent     = scanner.Ident
	tokLiteral   = scanner.String
	tokEpsilon   = 1
	tokColon     = 2
	tokBar       = 3
	tokSemicolon = 4
)

// Terminals of the meta-grammar.
var (
	tIdent     = ll.T("ident")
	tLiteral   = ll.T("literal")
	tEpsilon   = ll.T("epsilon")
	tColon     = ll.T(":")
	tBar       = ll.T("|")
	tSemicolon = ll.T(";")
)

// SyntaxError is returned for malformed grammar sources. Line and Column are
// 1-based; a zero line denotes the end of the input.
type SyntaxError struct {
	Line, Column int
	Msg          string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("at end of input: %s", e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// --- Meta-grammar ----------------------------------------------------------

var meta struct {
	once   sync.Once
	table  *ll.ParseTable
	lexer  *lexmach.LMAdapter
	err    error
	start  ll.Symbol
	lookup map[predict.TokType]ll.Symbol
}

// metaGrammar is the grammar of the BNF notation:
//
//    Grammar  ➞ Rule Grammar | ε
//    Rule     ➞ ident : Alts ;
//    Alts     ➞ Seq AltsTail
//    AltsTail ➞ | Seq AltsTail | ε
//    Seq      ➞ Sym Seq | ε
//    Sym      ➞ ident | literal | epsilon
//
func metaGrammar() (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder("BNF")
	b.LHS("Grammar").N("Rule").N("Grammar").End()
	b.LHS("Grammar").Epsilon()
	b.LHS("Rule").Sym(tIdent).Sym(tColon).N("Alts").Sym(tSemicolon).End()
	b.LHS("Alts").N("Seq").N("AltsTail").End()
	b.LHS("AltsTail").Sym(tBar).N("Seq").N("AltsTail").End()
	b.LHS("AltsTail").Epsilon()
	b.LHS("Seq").N("Sym").N("Seq").End()
	b.LHS("Seq").Epsilon()
	b.LHS("Sym").Sym(tIdent).End()
	b.LHS("Sym").Sym(tLiteral).End()
	b.LHS("Sym").Sym(tEpsilon).End()
	return b.Grammar()
}

func setupMeta() {
	meta.once.Do(func() {
		g, err := metaGrammar()
		if err != nil {
			meta.err = err
			return
		}
		gen := ll.NewTableGenerator(ll.Analysis(g), ll.WithConflictPolicy(ll.ReportConflicts))
		if meta.table, meta.err = gen.CreateTable(); meta.err != nil {
			return
		}
		meta.start = g.Start()
		meta.lexer, meta.err = lexmach.NewLMAdapter(initLexer,
			[]string{":", "|", ";"}, nil,
			map[string]int{":": tokColon, "|": tokBar, ";": tokSemicolon})
		meta.lookup = map[predict.TokType]ll.Symbol{
			tokIdent:     tIdent,
			tokLiteral:   tLiteral,
			tokEpsilon:   tEpsilon,
			tokColon:     tColon,
			tokBar:       tBar,
			tokSemicolon: tSemicolon,
		}
	})
}

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`ε|%empty`), lexmach.MakeToken("epsilon", tokEpsilon))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|')*`), lexmach.MakeToken("ident", tokIdent))
	lexer.Add([]byte(`'[^']+'`), lexmach.MakeToken("literal", tokLiteral))
	lexer.Add([]byte(`"[^"]+"`), lexmach.MakeToken("literal", tokLiteral))
}

func classify(tok predict.Token) ll.Symbol {
	if A, ok := meta.lookup[tok.TokType()]; ok {
		return A
	}
	return ll.T(tok.Lexeme())
}

// --- Reading grammars ------------------------------------------------------

// Parse reads a grammar in BNF notation from r and creates a grammar with the
// given name. Lexical and syntax errors are reported as *SyntaxError, problems
// with the resulting grammar as *ll.GrammarError.
func Parse(name string, r io.Reader) (*ll.Grammar, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(name, string(src))
}

// ParseString is like Parse, reading from a string.
func ParseString(name, src string) (*ll.Grammar, error) {
	setupMeta()
	if meta.err != nil {
		return nil, fmt.Errorf("cannot set up BNF reader: %w", meta.err)
	}
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := predictive.NewParser(meta.table, meta.start)
	if _, err := p.ParseTokens(tokens, classify); err != nil {
		return nil, syntaxError(err, p)
	}
	tree, err := p.ParseTree()
	if err != nil {
		return nil, err
	}
	rules := collectRules(tree)
	tracer().Debugf("BNF source for %s has %d rules", name, len(rules))
	return buildGrammar(name, rules)
}

func tokenize(src string) ([]predict.Token, error) {
	sc, err := meta.lexer.Scanner(src)
	if err != nil {
		return nil, err
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		tracer().Errorf("%v", e)
		if lexErr == nil {
			lexErr = e
		}
	})
	tokens := scanner.Tokens(sc)
	if lexErr != nil {
		return nil, lexError(lexErr)
	}
	return tokens, nil
}

// lexError converts an error of the lexer, which carries a "line:col:" prefix.
func lexError(err error) *SyntaxError {
	msg := err.Error()
	serr := &SyntaxError{Msg: msg}
	if n, _ := fmt.Sscanf(msg, "%d:%d:", &serr.Line, &serr.Column); n == 2 {
		if i := strings.Index(msg, ": "); i >= 0 {
			serr.Msg = msg[i+2:]
		}
	}
	return serr
}

func syntaxError(err error, p *predictive.Parser) error {
	perr, ok := err.(*predictive.ParseError)
	if !ok {
		return err
	}
	serr := &SyntaxError{}
	found := "end of input"
	if perr.Token != nil {
		pos := scanner.PositionOf(perr.Token)
		serr.Line, serr.Column = pos.Line, pos.Column
		found = fmt.Sprintf("%q", perr.Token.Lexeme())
	}
	switch perr.Kind {
	case predictive.TerminalMismatch:
		serr.Msg = fmt.Sprintf("unexpected %s, expected %s", found, perr.Top)
	default:
		var expected []string
		for _, t := range p.Table().Terminals() {
			if _, ok := p.Table().Lookup(perr.Top, t); ok {
				expected = append(expected, t.String())
			}
		}
		serr.Msg = fmt.Sprintf("unexpected %s, expected one of %s", found,
			strings.Join(expected, " "))
	}
	return serr
}

// --- From parse tree to grammar --------------------------------------------

type symKind int8

const (
	symIdent symKind = iota
	symLiteral
	symEpsilon
)

type rawSym struct {
	kind symKind
	text string
}

type rawRule struct {
	lhs  string
	alts [][]rawSym
}

// collectRules flattens the parse tree of the meta-grammar into rules.
func collectRules(tree *predictive.Node) []rawRule {
	var rules []rawRule
	tree.Walk(func(node *predictive.Node, _ int) {
		if node.Symbol != ll.N("Rule") {
			return
		}
		// Rule ➞ ident : Alts ;
		r := rawRule{lhs: node.Children[0].Label()}
		for alts := node.Children[2]; alts != nil; {
			seq := alts.Children[0]
			r.alts = append(r.alts, collectSymbols(seq))
			alts = nextAlternative(alts.Children[1])
		}
		rules = append(rules, r)
	})
	return rules
}

// nextAlternative descends AltsTail ➞ | Seq AltsTail. The returned node has
// the Seq at index 0 and the remaining AltsTail at index 1, like Alts.
func nextAlternative(tail *predictive.Node) *predictive.Node {
	if tail.IsLeaf() {
		return nil
	}
	return &predictive.Node{
		Symbol:   tail.Symbol,
		Children: tail.Children[1:],
	}
}

func collectSymbols(seq *predictive.Node) []rawSym {
	var syms []rawSym
	for !seq.IsLeaf() { // Seq ➞ Sym Seq
		leaf := seq.Children[0].Children[0]
		s := rawSym{text: leaf.Label()}
		switch leaf.Symbol {
		case tLiteral:
			s.kind = symLiteral
			s.text = s.text[1 : len(s.text)-1]
		case tEpsilon:
			s.kind = symEpsilon
		}
		syms = append(syms, s)
		seq = seq.Children[1]
	}
	return syms
}

// buildGrammar resolves identifiers and merges rules for the same LHS.
// ε inside a longer sequence is dropped, as it is neutral for concatenation.
func buildGrammar(name string, rules []rawRule) (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder(name)
	lhs := make(map[string]bool, len(rules))
	for _, r := range rules {
		lhs[r.lhs] = true
	}
	for _, r := range rules {
		for _, alt := range r.alts {
			rb := b.LHS(r.lhs)
			for _, s := range alt {
				switch {
				case s.kind == symEpsilon:
				case s.kind == symIdent && lhs[s.text]:
					rb.N(s.text)
				default:
					rb.T(s.text)
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}
