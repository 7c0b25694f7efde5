package ll

// GrammarBuilder is a fluent API to create grammars. Alternatives for the same
// non-terminal are collected into one rule; rules are ordered by the first
// mention of their left hand side.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S ➞ A a
//    b.LHS("A").T("b").End()          // A ➞ b
//    b.LHS("A").Epsilon()             // A ➞ ε
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	name  string
	order []Symbol
	alts  map[Symbol][]*Production
}

// RuleBuilder collects the symbols of a single production.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name: gname,
		alts: make(map[Symbol][]*Production),
	}
}

// LHS starts a new production for non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: N(s)}
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, N(s))
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, T(s))
	return rb
}

// Sym appends an arbitrary symbol to the right hand side.
func (rb *RuleBuilder) Sym(A Symbol) *RuleBuilder {
	rb.rhs = append(rb.rhs, A)
	return rb
}

// End finishes the production. A production without symbols is an epsilon
// production.
func (rb *RuleBuilder) End() *Production {
	p := NewProduction(rb.rhs...)
	p.LHS = rb.lhs
	gb := rb.gb
	if _, ok := gb.alts[rb.lhs]; !ok {
		gb.order = append(gb.order, rb.lhs)
	}
	gb.alts[rb.lhs] = append(gb.alts[rb.lhs], p)
	return p
}

// Epsilon finishes the production as the epsilon production.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = nil
	return rb.End()
}

// Grammar creates and validates the grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	rules := make([]*Rule, len(gb.order))
	for i, A := range gb.order {
		rules[i] = NewRule(A, gb.alts[A]...)
	}
	g, err := NewGrammar(gb.name, rules...)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	g.Dump()
	return g, nil
}
