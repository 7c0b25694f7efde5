package ebnf

import (
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/predict/ll"
	"golang.org/x/exp/ebnf"
)

// Parse reads EBNF productions from r, verifies them and lowers them into a
// grammar with the given name. If start is empty, the first non-lexical
// production in source order is the start production.
//
// Errors of the EBNF parser or verifier carry the source position of the
// offending construct.
func Parse(name string, r io.Reader, start string) (*ll.Grammar, error) {
	src, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, err
	}
	if start == "" {
		if start = firstProduction(src); start == "" {
			return nil, fmt.Errorf("EBNF source %s has no non-lexical production", name)
		}
	}
	if err := ebnf.Verify(src, start); err != nil {
		return nil, err
	}
	return Lower(name, src, start)
}

// Lower converts verified EBNF productions into a grammar. The rule for start
// comes first, the remaining non-lexical productions follow in source order,
// each followed by its helper rules.
func Lower(name string, src ebnf.Grammar, start string) (*ll.Grammar, error) {
	prod, ok := src[start]
	if !ok {
		return nil, fmt.Errorf("no start production %s", start)
	}
	if isLexical(start) {
		return nil, fmt.Errorf("start production %s is lexical", start)
	}
	lw := &lowering{src: src, taken: make(map[string]bool), counter: make(map[string]int)}
	for n := range src {
		lw.taken[n] = true
	}
	if err := lw.production(prod); err != nil {
		return nil, err
	}
	for _, p := range productionsInOrder(src) {
		if p.Name.String == start || isLexical(p.Name.String) {
			continue
		}
		if err := lw.production(p); err != nil {
			return nil, err
		}
	}
	rules := make([]*ll.Rule, len(lw.rules))
	for i, r := range lw.rules {
		alts := make([]*ll.Production, len(r.alts))
		for j, rhs := range r.alts {
			alts[j] = ll.NewProduction(rhs...)
		}
		rules[i] = ll.NewRule(ll.N(r.lhs), alts...)
	}
	g, err := ll.NewGrammar(name, rules...)
	if err != nil {
		return nil, err
	}
	tracer().Infof("EBNF grammar %s lowered to %d rules", name, len(rules))
	g.Dump()
	return g, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func productionsInOrder(src ebnf.Grammar) []*ebnf.Production {
	prods := make([]*ebnf.Production, 0, len(src))
	for _, p := range src {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	return prods
}

func firstProduction(src ebnf.Grammar) string {
	for _, p := range productionsInOrder(src) {
		if !isLexical(p.Name.String) {
			return p.Name.String
		}
	}
	return ""
}

// --- Lowering --------------------------------------------------------------

type rule struct {
	lhs  string
	alts [][]ll.Symbol // an empty sequence is ε
}

type lowering struct {
	src     ebnf.Grammar
	rules   []*rule
	taken   map[string]bool // names in use
	counter map[string]int  // helper count per production
}

func (lw *lowering) production(p *ebnf.Production) error {
	r := lw.newRule(p.Name.String)
	alts, err := lw.alternatives(p.Name.String, p.Expr)
	if err != nil {
		return err
	}
	r.alts = alts
	return nil
}

func (lw *lowering) newRule(lhs string) *rule {
	r := &rule{lhs: lhs}
	lw.rules = append(lw.rules, r)
	lw.taken[lhs] = true
	return r
}

// helper creates a rule for a helper non-terminal with a fresh name.
func (lw *lowering) helper(owner, kind string) *rule {
	for {
		lw.counter[owner]++
		name := fmt.Sprintf("%s_%s%d", owner, kind, lw.counter[owner])
		if !lw.taken[name] {
			tracer().Debugf("new helper non-terminal %s", name)
			return lw.newRule(name)
		}
	}
}

func (lw *lowering) alternatives(owner string, x ebnf.Expression) ([][]ll.Symbol, error) {
	if alt, ok := x.(ebnf.Alternative); ok {
		alts := make([][]ll.Symbol, 0, len(alt))
		for _, e := range alt {
			seq, err := lw.sequence(owner, e)
			if err != nil {
				return nil, err
			}
			alts = append(alts, seq)
		}
		return alts, nil
	}
	seq, err := lw.sequence(owner, x)
	if err != nil {
		return nil, err
	}
	return [][]ll.Symbol{seq}, nil
}

func (lw *lowering) sequence(owner string, x ebnf.Expression) ([]ll.Symbol, error) {
	switch x := x.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var seq []ll.Symbol
		for _, e := range x {
			s, err := lw.sequence(owner, e)
			if err != nil {
				return nil, err
			}
			seq = append(seq, s...)
		}
		return seq, nil
	case *ebnf.Name:
		if isLexical(x.String) {
			return []ll.Symbol{ll.T(x.String)}, nil
		}
		return []ll.Symbol{ll.N(x.String)}, nil
	case *ebnf.Token:
		if x.String == "" {
			return nil, fmt.Errorf("%s: empty token", x.Pos())
		}
		return []ll.Symbol{ll.T(x.String)}, nil
	case *ebnf.Group:
		if _, ok := x.Body.(ebnf.Alternative); !ok {
			return lw.sequence(owner, x.Body)
		}
		h := lw.helper(owner, "grp")
		alts, err := lw.alternatives(owner, x.Body)
		if err != nil {
			return nil, err
		}
		h.alts = alts
		return []ll.Symbol{ll.N(h.lhs)}, nil
	case ebnf.Alternative:
		h := lw.helper(owner, "grp")
		alts, err := lw.alternatives(owner, x)
		if err != nil {
			return nil, err
		}
		h.alts = alts
		return []ll.Symbol{ll.N(h.lhs)}, nil
	case *ebnf.Option:
		h := lw.helper(owner, "opt")
		alts, err := lw.alternatives(owner, x.Body)
		if err != nil {
			return nil, err
		}
		h.alts = append(alts, nil)
		return []ll.Symbol{ll.N(h.lhs)}, nil
	case *ebnf.Repetition:
		h := lw.helper(owner, "rep")
		alts, err := lw.alternatives(owner, x.Body)
		if err != nil {
			return nil, err
		}
		for i := range alts {
			alts[i] = append(alts[i], ll.N(h.lhs))
		}
		h.alts = append(alts, nil)
		return []ll.Symbol{ll.N(h.lhs)}, nil
	case *ebnf.Range:
		return nil, fmt.Errorf("%s: character range outside of lexical production", x.Pos())
	case *ebnf.Bad:
		return nil, fmt.Errorf("%s: %s", x.Pos(), x.Error)
	}
	return nil, fmt.Errorf("unexpected EBNF expression %T", x)
}
