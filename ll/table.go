package ll

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/predict/ll/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// ConfigKeyLastWins is the configuration key for the default conflict policy.
// If set to true, table generators silently let later productions overwrite
// earlier ones.
const ConfigKeyLastWins = "ll.conflicts.lastwins"

// ConflictPolicy controls the treatment of table cells claimed by more than one
// production.
type ConflictPolicy int

const (
	// ReportConflicts keeps the first production for a cell and reports every
	// competing one. Left recursive grammars are rejected.
	ReportConflicts ConflictPolicy = iota
	// LastWins lets the later production overwrite a cell. Conflicts are
	// still recorded, but not reported as an error. Left recursion is not
	// checked; a parser driven by such a table may expand forever.
	LastWins
)

func (cp ConflictPolicy) String() string {
	if cp == LastWins {
		return "last-wins"
	}
	return "report"
}

// TableOption configures a table generator.
type TableOption func(*TableGenerator)

// WithConflictPolicy overrides the configured conflict policy.
func WithConflictPolicy(policy ConflictPolicy) TableOption {
	return func(gen *TableGenerator) {
		gen.policy = policy
	}
}

// TableGenerator is a generator object to construct an LL(1) parse table.
type TableGenerator struct {
	ga     *GrammarAnalysis
	policy ConflictPolicy
	table  *ParseTable
}

// NewTableGenerator creates a new parse table generator for an analysed grammar.
// The default conflict policy is read from the global configuration
// (key ConfigKeyLastWins).
func NewTableGenerator(ga *GrammarAnalysis, opts ...TableOption) *TableGenerator {
	gen := &TableGenerator{ga: ga, policy: ReportConflicts}
	if gconf.GetBool(ConfigKeyLastWins) {
		gen.policy = LastWins
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// Policy returns the conflict policy in effect.
func (gen *TableGenerator) Policy() ConflictPolicy {
	return gen.policy
}

// Table returns the table created by the last call to CreateTable, or nil.
func (gen *TableGenerator) Table() *ParseTable {
	return gen.table
}

// CreateTable creates the parse table. For every rule A:
//
//   1. For every alternative p and each terminal t in FIRST(p)\{ε}, the cell
//      (A,t) is set to p.
//   2. Then, for every alternative p with ε in FIRST(p) and each terminal t in
//      FOLLOW(A), including end-of-input, the cell (A,t) is set to p.
//
// A grammar is LL(1) iff no cell is claimed by two different productions. If the
// grammar is not LL(1), CreateTable returns the table (with conflicts resolved
// in favour of the earlier write) and a *ConflictError. Left recursive
// grammars result in a *LeftRecursionError, wrapping ErrLeftRecursive.
//
// With policy LastWins, neither left recursion nor conflicts are reported as an
// error and a later write replaces an earlier one. Step 2 then fills the
// FOLLOW cells with a single production: the rule's ε alternative if it has
// one, otherwise its last nullable alternative. Parsing with a table built
// from a left recursive grammar in this mode does not terminate.
func (gen *TableGenerator) CreateTable() (*ParseTable, error) {
	g := gen.ga.Grammar()
	if gen.policy == ReportConflicts {
		if err := g.CheckLeftRecursion(); err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
	}
	table := newParseTable(g)
	for _, r := range g.rules {
		A := r.LHS
		var nullable []*Production
		for _, p := range r.alternatives {
			F := gen.ga.FirstOf(p)
			F.Without(Epsilon).Each(func(t Symbol) {
				gen.enter(table, A, t, p, false)
			})
			if F.Contains(Epsilon) {
				nullable = append(nullable, p)
			}
		}
		if len(nullable) > 0 && gen.policy == LastWins {
			if eps, ok := r.EpsilonAlternative(); ok {
				nullable = []*Production{eps}
			} else {
				nullable = nullable[len(nullable)-1:]
			}
		}
		for _, p := range nullable {
			gen.ga.Follow(A).Each(func(t Symbol) {
				gen.enter(table, A, t, p, true)
			})
		}
	}
	gen.table = table
	tracer().Infof("LL(1) table for %s has %d entries and %d conflicts",
		g.Name, table.Size(), len(table.conflicts))
	if len(table.conflicts) > 0 && gen.policy == ReportConflicts {
		cerr := &ConflictError{Grammar: g.Name, Conflicts: table.Conflicts()}
		tracer().Errorf("%v", cerr)
		return table, cerr
	}
	return table, nil
}

func (gen *TableGenerator) enter(table *ParseTable, A, t Symbol, p *Production, viaFollow bool) {
	i, j := table.rows[A], table.cols[t]
	current, second := table.matrix.Values(i, j)
	if current == table.matrix.NullValue() {
		tracer().Debugf("table[%s,%s] = %v", A, t, p)
		table.matrix.Set(i, j, int32(p.Serial))
		return
	}
	if int(current) == p.Serial || int(second) == p.Serial {
		return
	}
	existing := table.g.Production(int(current))
	kind := FirstFirst
	if viaFollow || !gen.ga.FirstOf(existing).Contains(t) {
		kind = FirstFollow
	}
	c := Conflict{NonTerminal: A, Lookahead: t, First: existing, Second: p, Kind: kind}
	tracer().Infof("conflict %v", c)
	table.conflicts = append(table.conflicts, c)
	if gen.policy == LastWins {
		table.matrix.Set(i, j, int32(p.Serial))
	} else {
		table.matrix.Add(i, j, int32(p.Serial))
	}
}

// === Parse table ===========================================================

// ParseTable is an LL(1) parse table, mapping (non-terminal, lookahead) to a
// production. Lookaheads are terminals or end-of-input. A ParseTable is
// immutable and may be shared between any number of parsers.
type ParseTable struct {
	g         *Grammar
	rows      map[Symbol]int
	cols      map[Symbol]int
	nonterms  []Symbol
	terms     []Symbol
	matrix    *sparse.IntMatrix
	conflicts []Conflict
}

func newParseTable(g *Grammar) *ParseTable {
	table := &ParseTable{
		g:        g,
		rows:     make(map[Symbol]int),
		cols:     make(map[Symbol]int),
		nonterms: g.NonTerminals(),
		terms:    append(g.Terminals(), EOI),
	}
	for i, A := range table.nonterms {
		table.rows[A] = i
	}
	for j, t := range table.terms {
		table.cols[t] = j
	}
	table.matrix = sparse.NewIntMatrix(len(table.nonterms), len(table.terms), sparse.DefaultNullValue)
	return table
}

// Grammar returns the grammar the table has been built for.
func (table *ParseTable) Grammar() *Grammar {
	return table.g
}

// Lookup returns the production to expand non-terminal A with, given lookahead t.
// If the cell is empty, false is returned.
func (table *ParseTable) Lookup(A, t Symbol) (*Production, bool) {
	i, ok := table.rows[A]
	if !ok {
		return nil, false
	}
	j, ok := table.cols[t]
	if !ok {
		return nil, false
	}
	v := table.matrix.Value(i, j)
	if v == table.matrix.NullValue() {
		return nil, false
	}
	return table.g.Production(int(v)), true
}

// Row returns all entries for non-terminal A, keyed by lookahead.
func (table *ParseTable) Row(A Symbol) map[Symbol]*Production {
	row := make(map[Symbol]*Production)
	for _, t := range table.terms {
		if p, ok := table.Lookup(A, t); ok {
			row[t] = p
		}
	}
	return row
}

// NonTerminals returns the row labels of the table, in rule order.
func (table *ParseTable) NonTerminals() []Symbol {
	return append([]Symbol(nil), table.nonterms...)
}

// Terminals returns the column labels of the table: the grammar's terminals,
// sorted, followed by end-of-input.
func (table *ParseTable) Terminals() []Symbol {
	return append([]Symbol(nil), table.terms...)
}

// Conflicts returns the conflicts found during table construction.
func (table *ParseTable) Conflicts() []Conflict {
	return append([]Conflict(nil), table.conflicts...)
}

// IsLL1 is true if table construction did not find any conflicts.
func (table *ParseTable) IsLL1() bool {
	return len(table.conflicts) == 0
}

// Size returns the number of non-empty cells.
func (table *ParseTable) Size() int {
	return table.matrix.ValueCount()
}

// Each calls f for every non-empty cell, row by row.
func (table *ParseTable) Each(f func(A, t Symbol, p *Production)) {
	table.matrix.Each(func(i, j int, a, _ int32) {
		f(table.nonterms[i], table.terms[j], table.g.Production(int(a)))
	})
}

// Fingerprint returns a hash over all table entries.
func (table *ParseTable) Fingerprint() string {
	entries := make(map[string][]string)
	table.Each(func(A, t Symbol, p *Production) {
		entries[A.Name] = append(entries[A.Name], fmt.Sprintf("%s:%d", t, p.Serial))
	})
	h, err := structhash.Hash(setsDigest{Family: "LL(1)", Entries: entries}, 1)
	if err != nil {
		tracer().Errorf("cannot hash parse table: %v", err)
		return ""
	}
	return h
}

func (table *ParseTable) String() string {
	var b bytes.Buffer
	b.WriteString("LL(1) table:\n")
	table.Each(func(A, t Symbol, p *Production) {
		b.WriteString(fmt.Sprintf("  [%s, %s] = %v\n", A, t, p))
	})
	return b.String()
}

// ParseTableAsHTML exports a parse table in HTML-format. Cells with a conflict
// show both production serials.
func ParseTableAsHTML(table *ParseTable, w io.Writer) error {
	if table == nil {
		return fmt.Errorf("parse table not yet created, cannot export to HTML")
	}
	var b bytes.Buffer
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("<p>LL(1) table for %s with %d entries</p>\n",
		html.EscapeString(table.g.Name), table.Size()))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>")
	for _, t := range table.terms {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(t.String())))
	}
	b.WriteString("</tr>\n")
	null := table.matrix.NullValue()
	for i, A := range table.nonterms {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td>", html.EscapeString(A.String())))
		for j := range table.terms {
			v1, v2 := table.matrix.Values(i, j)
			var td string
			switch {
			case v1 == null:
				td = "&nbsp;"
			case v2 == null:
				td = html.EscapeString(table.g.Production(int(v1)).String())
			default:
				td = fmt.Sprintf("<font color=red>%d/%d</font>", v1, v2)
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := w.Write(b.Bytes())
	return err
}

// === Conflicts =============================================================

// ConflictKind classifies LL(1) conflicts.
type ConflictKind int8

const (
	// FirstFirst: two alternatives start with the same terminal.
	FirstFirst ConflictKind = iota
	// FirstFollow: a nullable alternative competes with a terminal from FOLLOW.
	FirstFollow
)

func (k ConflictKind) String() string {
	if k == FirstFollow {
		return "FIRST/FOLLOW"
	}
	return "FIRST/FIRST"
}

// Conflict describes a table cell claimed by two productions.
type Conflict struct {
	NonTerminal Symbol
	Lookahead   Symbol
	First       *Production // production entered first
	Second      *Production // competing production
	Kind        ConflictKind
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict at [%s, %s]: %v vs. %v",
		c.Kind, c.NonTerminal, c.Lookahead, c.First, c.Second)
}

// ConflictError is returned by table construction if a grammar is not LL(1).
type ConflictError struct {
	Grammar   string
	Conflicts []Conflict
}

func (cerr *ConflictError) Error() string {
	cs := make([]string, len(cerr.Conflicts))
	for i, c := range cerr.Conflicts {
		cs[i] = c.String()
	}
	return fmt.Sprintf("grammar %s is not LL(1), %d conflict(s): %s", cerr.Grammar,
		len(cerr.Conflicts), strings.Join(cs, "; "))
}
