package ll

import (
	"fmt"
	"sync"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
)

// === FIRST sets ============================================================

// FirstSets maps every non-terminal of a grammar to its FIRST set.
// FirstSets are computed once and are read-only afterwards.
type FirstSets struct {
	g      *Grammar
	sets   *treemap.Map // Symbol -> *SymbolSet
	cyclic bool         // true if computation had to break a recursion cycle
}

// ComputeFirstSets computes the FIRST sets of all non-terminals of g.
//
//   1. If X is a terminal, then FIRST(X) = {X}.
//   2. If X is a non-terminal, FIRST(X) is the union of FIRST(p) for all
//      alternatives p of X. ε is a member iff some alternative is nullable.
//   3. FIRST(Y1 Y2 … Yk) contains FIRST(Y1)\{ε}. If Y1 is nullable, it contains
//      FIRST(Y2)\{ε} as well, and so on. ε is a member iff all Yi are nullable.
//
// Sets for non-terminals are computed by memoized recursion. A non-terminal which
// is reached again while its own set is under construction indicates left recursion.
// In this case the recursion is cut and the sets are completed by iterating
// until no set changes any more, so computation terminates for every grammar.
func ComputeFirstSets(g *Grammar) *FirstSets {
	fc := &firstComputation{
		g:          g,
		cache:      make(map[Symbol]*SymbolSet),
		inProgress: make(map[Symbol]bool),
	}
	for _, r := range g.rules {
		fc.first(r.LHS)
	}
	if fc.cyclic {
		fc.saturate()
	}
	first := &FirstSets{
		g:      g,
		sets:   treemap.NewWith(CompareSymbols),
		cyclic: fc.cyclic,
	}
	for A, S := range fc.cache {
		first.sets.Put(A, S)
	}
	return first
}

type firstComputation struct {
	g          *Grammar
	cache      map[Symbol]*SymbolSet
	inProgress map[Symbol]bool
	cyclic     bool
}

func (fc *firstComputation) first(A Symbol) *SymbolSet {
	if A.IsTerminal() {
		return NewSymbolSet(A)
	}
	if S, ok := fc.cache[A]; ok {
		tracer().Debugf("found cached FIRST(%s) = %v", A, S)
		return S
	}
	if fc.inProgress[A] {
		tracer().Infof("FIRST(%s) depends on itself, grammar is left recursive", A)
		fc.cyclic = true
		return NewSymbolSet()
	}
	fc.inProgress[A] = true
	defer delete(fc.inProgress, A)
	result := NewSymbolSet()
	if rule, ok := fc.g.RuleFor(A); ok {
		nullable := false
		for _, p := range rule.alternatives {
			F := fc.firstOfSequence(p.rhs)
			tracer().Debugf("FIRST(%v) = %v", p, F)
			if F.Contains(Epsilon) {
				nullable = true
			}
			result.union(F, true)
		}
		if !nullable {
			result.remove(Epsilon)
		}
	}
	tracer().Debugf("FIRST(%s) = %v", A, result)
	fc.cache[A] = result
	return result
}

func (fc *firstComputation) firstOfSequence(syms []Symbol) *SymbolSet {
	result := NewSymbolSet()
	for _, A := range syms {
		F := fc.first(A)
		result.union(F, false)
		if !F.Contains(Epsilon) {
			return result
		}
	}
	result.add(Epsilon)
	return result
}

// saturate completes FIRST sets which were cut short by a recursion cycle.
func (fc *firstComputation) saturate() {
	for changed, pass := true, 1; changed; pass++ {
		changed = false
		for _, r := range fc.g.rules {
			S := fc.cache[r.LHS]
			for _, p := range r.alternatives {
				if S.union(fc.firstOfSequence(p.rhs), true) {
					changed = true
				}
			}
		}
		tracer().Debugf("FIRST saturation pass %d, changed = %v", pass, changed)
	}
}

// Of returns FIRST(A). For terminals (including ε and end-of-input) this is {A}.
// For an unknown non-terminal the empty set is returned.
func (first *FirstSets) Of(A Symbol) *SymbolSet {
	if A.IsTerminal() {
		return NewSymbolSet(A)
	}
	if S, ok := first.sets.Get(A); ok {
		return S.(*SymbolSet)
	}
	return NewSymbolSet()
}

// OfSequence returns FIRST(Y1 Y2 … Yk). For an empty sequence this is {ε}.
func (first *FirstSets) OfSequence(syms []Symbol) *SymbolSet {
	result := NewSymbolSet()
	for _, A := range syms {
		F := first.Of(A)
		result.union(F, false)
		if !F.Contains(Epsilon) {
			return result
		}
	}
	result.add(Epsilon)
	return result
}

// OfProduction returns FIRST of the right hand side of p.
func (first *FirstSets) OfProduction(p *Production) *SymbolSet {
	return first.OfSequence(p.rhs)
}

// Each calls f for every non-terminal and its FIRST set, ordered by non-terminal.
func (first *FirstSets) Each(f func(A Symbol, S *SymbolSet)) {
	first.sets.Each(func(k, v interface{}) {
		f(k.(Symbol), v.(*SymbolSet))
	})
}

// Cyclic is true if FIRST computation encountered left recursion.
func (first *FirstSets) Cyclic() bool {
	return first.cyclic
}

// Fingerprint returns a hash over all FIRST sets.
func (first *FirstSets) Fingerprint() string {
	return fingerprint("FIRST", first.Each)
}

// === FOLLOW sets ===========================================================

// FollowSets maps every non-terminal of a grammar to its FOLLOW set.
// FollowSets are computed once and are read-only afterwards.
type FollowSets struct {
	g      *Grammar
	sets   *treemap.Map // Symbol -> *SymbolSet
	passes int
}

// ComputeFollowSets computes the FOLLOW sets of all non-terminals of g by
// fixed-point iteration:
//
//   1. FOLLOW(S) contains end-of-input for start symbol S.
//   2. For every occurrence of a non-terminal B in a production A ➞ α B β,
//      FOLLOW(B) contains FIRST(β)\{ε}.
//   3. If β is empty or nullable, FOLLOW(B) contains FOLLOW(A).
//
// Passes over all rules are repeated until no FOLLOW set grows any more.
// FOLLOW(B) may depend on FOLLOW(A) for a rule defined later, and vice versa,
// therefore a single pass is not sufficient in general.
func ComputeFollowSets(g *Grammar, first *FirstSets) *FollowSets {
	follow := make(map[Symbol]*SymbolSet, len(g.rules))
	for _, r := range g.rules {
		follow[r.LHS] = NewSymbolSet()
	}
	follow[g.Start()].add(EOI)
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for _, r := range g.rules {
			A := r.LHS
			for _, p := range r.alternatives {
				for i, B := range p.rhs {
					if !B.IsNonTerminal() {
						continue
					}
					beta := p.rhs[i+1:]
					nullableBeta := true
					if len(beta) > 0 {
						F := first.OfSequence(beta)
						if follow[B].union(F, false) {
							tracer().Debugf("FOLLOW(%s) += FIRST(%v) => %v", B, beta, follow[B])
							changed = true
						}
						nullableBeta = F.Contains(Epsilon)
					}
					if nullableBeta && follow[B].union(follow[A], true) {
						tracer().Debugf("FOLLOW(%s) += FOLLOW(%s) => %v", B, A, follow[B])
						changed = true
					}
				}
			}
		}
		tracer().Debugf("FOLLOW pass %d, changed = %v", passes, changed)
	}
	tracer().Infof("FOLLOW sets of %s converged after %d passes", g.Name, passes)
	sets := &FollowSets{
		g:      g,
		sets:   treemap.NewWith(CompareSymbols),
		passes: passes,
	}
	for A, S := range follow {
		sets.sets.Put(A, S)
	}
	return sets
}

// Of returns FOLLOW(A), or the empty set if A is not a non-terminal of the grammar.
func (follow *FollowSets) Of(A Symbol) *SymbolSet {
	if S, ok := follow.sets.Get(A); ok {
		return S.(*SymbolSet)
	}
	return NewSymbolSet()
}

// Each calls f for every non-terminal and its FOLLOW set, ordered by non-terminal.
func (follow *FollowSets) Each(f func(A Symbol, S *SymbolSet)) {
	follow.sets.Each(func(k, v interface{}) {
		f(k.(Symbol), v.(*SymbolSet))
	})
}

// Passes returns the number of passes the fixed-point iteration needed,
// including the final pass without changes.
func (follow *FollowSets) Passes() int {
	return follow.passes
}

// Fingerprint returns a hash over all FOLLOW sets.
func (follow *FollowSets) Fingerprint() string {
	return fingerprint("FOLLOW", follow.Each)
}

// === Grammar analysis ======================================================

// GrammarAnalysis computes FIRST and FOLLOW sets for a grammar. Every family of
// sets is computed on first request and cached for the lifetime of the
// analysis object. Computation is guarded, so an analysis may be shared between
// goroutines.
type GrammarAnalysis struct {
	g          *Grammar
	firstOnce  sync.Once
	followOnce sync.Once
	first      *FirstSets
	follow     *FollowSets
}

// Analysis creates an analysis object for a grammar.
func Analysis(g *Grammar) *GrammarAnalysis {
	return &GrammarAnalysis{g: g}
}

// Grammar returns the grammar under analysis.
func (ga *GrammarAnalysis) Grammar() *Grammar {
	return ga.g
}

// FirstSets returns the FIRST sets of all non-terminals. They are computed on
// the first call; subsequent calls return the identical result.
func (ga *GrammarAnalysis) FirstSets() *FirstSets {
	ga.firstOnce.Do(func() {
		tracer().Debugf("computing FIRST sets for %s", ga.g.Name)
		ga.first = ComputeFirstSets(ga.g)
	})
	return ga.first
}

// FollowSets returns the FOLLOW sets of all non-terminals. They are computed on
// the first call; subsequent calls return the identical result.
func (ga *GrammarAnalysis) FollowSets() *FollowSets {
	ga.followOnce.Do(func() {
		tracer().Debugf("computing FOLLOW sets for %s", ga.g.Name)
		ga.follow = ComputeFollowSets(ga.g, ga.FirstSets())
	})
	return ga.follow
}

// First returns FIRST(A).
func (ga *GrammarAnalysis) First(A Symbol) *SymbolSet {
	return ga.FirstSets().Of(A)
}

// FirstOf returns FIRST of a production's right hand side.
func (ga *GrammarAnalysis) FirstOf(p *Production) *SymbolSet {
	return ga.FirstSets().OfProduction(p)
}

// Follow returns FOLLOW(A).
func (ga *GrammarAnalysis) Follow(A Symbol) *SymbolSet {
	return ga.FollowSets().Of(A)
}

// IsNullable is a shortcut for the grammar's nullability predicate.
func (ga *GrammarAnalysis) IsNullable(A Symbol) bool {
	return ga.g.IsNullable(A)
}

// --- Fingerprints ----------------------------------------------------------

type setsDigest struct {
	Family  string
	Entries map[string][]string
}

func fingerprint(family string, each func(func(Symbol, *SymbolSet))) string {
	d := setsDigest{Family: family, Entries: make(map[string][]string)}
	each(func(A Symbol, S *SymbolSet) {
		members := make([]string, 0, S.Size())
		S.Each(func(B Symbol) {
			members = append(members, fmt.Sprintf("%d:%s", B.Kind, B.Name))
		})
		d.Entries[A.Name] = members
	})
	h, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot hash %s sets: %v", family, err)
		return ""
	}
	return h
}
