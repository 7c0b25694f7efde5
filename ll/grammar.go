package ll

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
)

// === Productions ===========================================================

// Production is one alternative right hand side of a grammar rule.
//
// A production carries a back-reference to the non-terminal of the rule owning it.
// This is a plain copy of the rule's LHS symbol, stamped when the rule is created,
// and is used as a lookup convenience only.
type Production struct {
	LHS    Symbol   // non-terminal of the owning rule
	Serial int      // ordinal number within its grammar, set by grammar construction
	rhs    []Symbol // right hand side
}

// NewProduction creates a production from a sequence of symbols. An empty
// sequence is normalized to the epsilon production [ε].
func NewProduction(rhs ...Symbol) *Production {
	if len(rhs) == 0 {
		rhs = []Symbol{Epsilon}
	}
	p := &Production{Serial: -1}
	p.rhs = append(make([]Symbol, 0, len(rhs)), rhs...)
	return p
}

// RHS returns a copy of the right hand side symbols.
func (p *Production) RHS() []Symbol {
	return append([]Symbol(nil), p.rhs...)
}

// Len returns the number of symbols on the right hand side. The epsilon production
// has length 1.
func (p *Production) Len() int {
	return len(p.rhs)
}

// Symbol returns the i-th symbol of the right hand side.
func (p *Production) Symbol(i int) Symbol {
	return p.rhs[i]
}

// IsEpsilon is true iff the production is exactly [ε].
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

// Contains checks if a symbol occurs anywhere on the right hand side.
func (p *Production) Contains(A Symbol) bool {
	for _, B := range p.rhs {
		if A == B {
			return true
		}
	}
	return false
}

// Equals compares LHS and RHS of two productions. Serial numbers are not compared.
func (p *Production) Equals(q *Production) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.LHS != q.LHS || len(p.rhs) != len(q.rhs) {
		return false
	}
	for i, A := range p.rhs {
		if A != q.rhs[i] {
			return false
		}
	}
	return true
}

// RHSString renders the right hand side only, e.g. "+ T E'".
func (p *Production) RHSString() string {
	var b strings.Builder
	for i, A := range p.rhs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.String())
	}
	return b.String()
}

func (p *Production) String() string {
	return fmt.Sprintf("%s ➞ %s", p.LHS, p.RHSString())
}

func (p *Production) copy() *Production {
	return &Production{LHS: p.LHS, Serial: p.Serial, rhs: p.RHS()}
}

// === Rules =================================================================

// Rule is a non-terminal together with its alternative productions.
type Rule struct {
	LHS          Symbol
	alternatives []*Production
}

// NewRule creates a grammar rule from a non-terminal and its alternatives.
// Every production's LHS back-reference is set to lhs.
func NewRule(lhs Symbol, alternatives ...*Production) *Rule {
	r := &Rule{LHS: lhs}
	for _, p := range alternatives {
		p.LHS = lhs
		r.alternatives = append(r.alternatives, p)
	}
	return r
}

// Alternatives returns the productions of r in order of definition.
func (r *Rule) Alternatives() []*Production {
	return append([]*Production(nil), r.alternatives...)
}

// HasEpsilonAlternative is true if one of the alternatives is the epsilon production.
func (r *Rule) HasEpsilonAlternative() bool {
	_, ok := r.EpsilonAlternative()
	return ok
}

// EpsilonAlternative returns the epsilon production of r, if any.
func (r *Rule) EpsilonAlternative() (*Production, bool) {
	for _, p := range r.alternatives {
		if p.IsEpsilon() {
			return p, true
		}
	}
	return nil, false
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.String())
	b.WriteString(" : ")
	for i, p := range r.alternatives {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(p.RHSString())
	}
	b.WriteString(" ;")
	return b.String()
}

// === Grammars ==============================================================

// Grammar is an ordered list of rules. The LHS of the first rule is the start
// symbol. Grammars are immutable after construction and may be shared freely.
type Grammar struct {
	Name        string
	rules       []*Rule
	index       map[Symbol]int // non-terminal -> position in rules
	productions []*Production  // all productions, indexed by serial
	terminals   []Symbol       // sorted, excluding ε
	nullOnce    sync.Once
	nullable    map[Symbol]bool
}

// NewGrammar creates a grammar from a list of rules and validates it.
// Rules and productions are copied, so the caller's values are not
// shared with the grammar. Productions receive serial numbers in order
// of appearance.
//
// If validation fails, a *GrammarError is returned, listing all problems found.
func NewGrammar(name string, rules ...*Rule) (*Grammar, error) {
	g := &Grammar{
		Name:  name,
		index: make(map[Symbol]int, len(rules)),
	}
	gerr := &GrammarError{Grammar: name}
	for _, r := range rules {
		if r == nil {
			gerr.add("rule is nil")
			continue
		}
		if !r.LHS.IsNonTerminal() {
			gerr.add("left hand side %q of rule is not a non-terminal", r.LHS)
			continue
		}
		if _, dup := g.index[r.LHS]; dup {
			gerr.add("duplicate rule for non-terminal %s", r.LHS)
			continue
		}
		if len(r.alternatives) == 0 {
			gerr.add("rule for %s has no alternatives", r.LHS)
			continue
		}
		rcopy := &Rule{LHS: r.LHS}
		for _, p := range r.alternatives {
			pcopy := p.copy()
			pcopy.LHS = r.LHS
			pcopy.Serial = len(g.productions)
			g.productions = append(g.productions, pcopy)
			rcopy.alternatives = append(rcopy.alternatives, pcopy)
		}
		g.index[r.LHS] = len(g.rules)
		g.rules = append(g.rules, rcopy)
	}
	if len(g.rules) == 0 && len(gerr.Problems) == 0 {
		gerr.add("grammar has no rules")
	}
	g.validate(gerr)
	if len(gerr.Problems) > 0 {
		return nil, gerr
	}
	g.collectTerminals()
	return g, nil
}

// validate checks references between rules. Every non-terminal on a right hand side
// must own a rule, ε may occur only as the single symbol of a production and the
// end-of-input marker must not occur at all.
func (g *Grammar) validate(gerr *GrammarError) {
	for _, p := range g.productions {
		for _, A := range p.rhs {
			switch {
			case A.IsNonTerminal():
				if _, ok := g.index[A]; !ok {
					gerr.add("non-terminal %s used in %v has no rule", A, p)
				}
			case A.IsEpsilon():
				if len(p.rhs) > 1 {
					gerr.add("ε must be the only symbol of a production: %v", p)
				}
			case A.IsEOI():
				gerr.add("end-of-input symbol must not occur in productions: %v", p)
			case A.Name == "":
				gerr.add("terminal without name in %v", p)
			}
		}
	}
}

func (g *Grammar) collectTerminals() {
	seen := make(map[Symbol]bool)
	for _, p := range g.productions {
		for _, A := range p.rhs {
			if A.Kind == Terminal && !seen[A] {
				seen[A] = true
				g.terminals = append(g.terminals, A)
			}
		}
	}
	sortSymbols(g.terminals)
}

// Start returns the start symbol, i.e. the LHS of the first rule.
func (g *Grammar) Start() Symbol {
	return g.rules[0].LHS
}

// Rules returns the rules of g in order of definition.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// RuleFor finds the rule for a non-terminal. It returns false if A is not a
// declared non-terminal.
func (g *Grammar) RuleFor(A Symbol) (*Rule, bool) {
	if inx, ok := g.index[A]; ok {
		return g.rules[inx], true
	}
	return nil, false
}

// RulesReferencing returns all productions, across all rules, which contain
// A anywhere on their right hand side. If there are none, an empty slice is
// returned.
func (g *Grammar) RulesReferencing(A Symbol) []*Production {
	prods := make([]*Production, 0, 4)
	for _, p := range g.productions {
		if p.Contains(A) {
			prods = append(prods, p)
		}
	}
	return prods
}

// Production returns the production with a given serial number, or nil.
func (g *Grammar) Production(serial int) *Production {
	if serial < 0 || serial >= len(g.productions) {
		return nil
	}
	return g.productions[serial]
}

// ProductionCount returns the number of productions (alternatives) in g.
func (g *Grammar) ProductionCount() int {
	return len(g.productions)
}

// NonTerminals returns the non-terminals of g in rule order.
func (g *Grammar) NonTerminals() []Symbol {
	nts := make([]Symbol, len(g.rules))
	for i, r := range g.rules {
		nts[i] = r.LHS
	}
	return nts
}

// Terminals returns the terminals used in g, sorted. Neither ε nor the
// end-of-input marker are included.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// EachNonTerminal calls a mapper function for every non-terminal, in rule order.
func (g *Grammar) EachNonTerminal(mapper func(A Symbol)) {
	for _, r := range g.rules {
		mapper(r.LHS)
	}
}

// EachTerminal calls a mapper function for every terminal, in sort order.
func (g *Grammar) EachTerminal(mapper func(A Symbol)) {
	for _, A := range g.terminals {
		mapper(A)
	}
}

// Dump is a debugging helper, tracing all productions at level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.Serial, p)
	}
	tracer().Debugf("-----------------------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// === Nullability ===========================================================

// IsNullable is a predicate: can A derive the empty string?
//
// ε is nullable, terminals are never nullable, and a non-terminal is nullable
// iff it has an epsilon alternative or any of its alternatives is nullable.
func (g *Grammar) IsNullable(A Symbol) bool {
	switch A.Kind {
	case EpsilonKind:
		return true
	case NonTerminal:
		return g.nullables()[A]
	}
	return false
}

// IsProductionNullable is true iff p is the epsilon production or every symbol of
// p is nullable.
func (g *Grammar) IsProductionNullable(p *Production) bool {
	if p.IsEpsilon() {
		return true
	}
	for _, A := range p.rhs {
		if !g.IsNullable(A) {
			return false
		}
	}
	return true
}

// nullables computes the set of nullable non-terminals as a least fixed point.
// Cycles of non-terminals (A nullable if B nullable if A nullable) do not make
// any of them nullable on their own.
func (g *Grammar) nullables() map[Symbol]bool {
	g.nullOnce.Do(func() {
		nullable := make(map[Symbol]bool)
		changed := true
		for changed {
			changed = false
			for _, r := range g.rules {
				if nullable[r.LHS] {
					continue
				}
				for _, p := range r.alternatives {
					if allNullable(p.rhs, nullable) {
						tracer().Debugf("%s is nullable by %v", r.LHS, p)
						nullable[r.LHS] = true
						changed = true
						break
					}
				}
			}
		}
		g.nullable = nullable
	})
	return g.nullable
}

func allNullable(syms []Symbol, nullable map[Symbol]bool) bool {
	for _, A := range syms {
		if A.IsEpsilon() {
			continue
		}
		if !A.IsNonTerminal() || !nullable[A] {
			return false
		}
	}
	return true
}

// === Errors ================================================================

// GrammarError collects the problems found while validating a grammar.
type GrammarError struct {
	Grammar  string
	Problems []string
}

func (gerr *GrammarError) add(format string, args ...interface{}) {
	gerr.Problems = append(gerr.Problems, fmt.Sprintf(format, args...))
}

func (gerr *GrammarError) Error() string {
	if len(gerr.Problems) == 1 {
		return fmt.Sprintf("grammar %s: %s", gerr.Grammar, gerr.Problems[0])
	}
	return fmt.Sprintf("grammar %s has %d problems: %s", gerr.Grammar, len(gerr.Problems),
		strings.Join(gerr.Problems, "; "))
}
