package ll

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeExpressionTable(t *testing.T) *ParseTable {
	ga := Analysis(makeExpressionGrammar(t))
	table, err := NewTableGenerator(ga).CreateTable()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestExpressionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	table := makeExpressionTable(t)
	for _, x := range []struct {
		A, t   Symbol
		serial int // -1 for empty cells
	}{
		{N("E"), T("("), 0}, {N("E"), T("id"), 0},
		{N("E'"), T("+"), 1}, {N("E'"), T(")"), 2}, {N("E'"), EOI, 2},
		{N("T"), T("("), 3}, {N("T"), T("id"), 3},
		{N("T'"), T("*"), 4}, {N("T'"), T("+"), 5}, {N("T'"), T(")"), 5}, {N("T'"), EOI, 5},
		{N("F"), T("("), 6}, {N("F"), T("id"), 7},
		{N("E"), T("+"), -1}, {N("E'"), T("*"), -1}, {N("F"), EOI, -1},
		{N("E"), T("unknown"), -1}, {N("X"), T("id"), -1},
	} {
		p, ok := table.Lookup(x.A, x.t)
		if x.serial < 0 {
			if ok {
				t.Errorf("expected cell [%v,%v] to be empty, is %v", x.A, x.t, p)
			}
			continue
		}
		if !ok || p.Serial != x.serial {
			t.Errorf("expected cell [%v,%v] to be production %d, is %v", x.A, x.t, x.serial, p)
		}
	}
	if table.Size() != 13 {
		t.Errorf("expected table to have 13 entries, has %d", table.Size())
	}
	if !table.IsLL1() {
		t.Errorf("expected expression grammar to be LL(1)")
	}
	if len(table.Row(N("T'"))) != 4 {
		t.Errorf("expected row T' to have 4 entries, has %v", table.Row(N("T'")))
	}
	cnt := 0
	table.Each(func(A, t Symbol, p *Production) {
		cnt++
	})
	if cnt != 13 {
		t.Errorf("expected Each to visit 13 cells, visited %d", cnt)
	}
	t.Logf("\n%s", table)
}

func TestTableFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	t1, t2 := makeExpressionTable(t), makeExpressionTable(t)
	if t1.Fingerprint() == "" || t1.Fingerprint() != t2.Fingerprint() {
		t.Errorf("expected identical, non-empty fingerprints for identical tables")
	}
}

func TestFirstFirstConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("FirstFirst")
	b.LHS("S").T("a").T("b").End()
	b.LHS("S").T("a").T("c").End()
	g := mustGrammar(t, b)
	table, err := NewTableGenerator(Analysis(g), WithConflictPolicy(ReportConflicts)).CreateTable()
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a *ConflictError, have %v", err)
	}
	if len(cerr.Conflicts) != 1 || cerr.Conflicts[0].Kind != FirstFirst {
		t.Fatalf("expected 1 FIRST/FIRST conflict, have %v", cerr.Conflicts)
	}
	c := cerr.Conflicts[0]
	if c.NonTerminal != N("S") || c.Lookahead != T("a") || c.First.Serial != 0 || c.Second.Serial != 1 {
		t.Errorf("unexpected conflict %v", c)
	}
	if p, _ := table.Lookup(N("S"), T("a")); p.Serial != 0 {
		t.Errorf("expected earlier production to be kept, have %v", p)
	}
}

func TestFirstFollowConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("FirstFollow")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	g := mustGrammar(t, b)
	table, err := NewTableGenerator(Analysis(g), WithConflictPolicy(ReportConflicts)).CreateTable()
	if err == nil {
		t.Fatalf("expected grammar not to be LL(1)")
	}
	conflicts := table.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Kind != FirstFollow {
		t.Errorf("expected 1 FIRST/FOLLOW conflict, have %v", conflicts)
	}
	if !strings.Contains(err.Error(), "FIRST/FOLLOW") {
		t.Errorf("expected error message to name the conflict kind: %v", err)
	}
}

func TestLastWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("FirstFirst")
	b.LHS("S").T("a").T("b").End()
	b.LHS("S").T("a").T("c").End()
	g := mustGrammar(t, b)
	table, err := NewTableGenerator(Analysis(g), WithConflictPolicy(LastWins)).CreateTable()
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := table.Lookup(N("S"), T("a")); p.Serial != 1 {
		t.Errorf("expected later production to win, have %v", p)
	}
	if table.IsLL1() {
		t.Errorf("expected conflict to be recorded anyway")
	}
}

func TestLastWinsFillsFollowCellsAfterFirstCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("EpsilonFirst")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("A").T("a").End()
	g := mustGrammar(t, b)
	table, err := NewTableGenerator(Analysis(g), WithConflictPolicy(LastWins)).CreateTable()
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := table.Lookup(N("A"), T("a")); !ok || !p.IsEpsilon() {
		t.Errorf("expected ε production to overwrite cell [A,a], have %v", p)
	}
	if len(table.Conflicts()) != 1 || table.Conflicts()[0].Kind != FirstFollow {
		t.Errorf("expected a single FIRST/FOLLOW conflict, have %v", table.Conflicts())
	}
}

func TestConflictReportedOncePerProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("NullableTwice")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").T("a").End()
	b.LHS("A").N("B").End()
	b.LHS("B").T("a").End()
	b.LHS("B").Epsilon()
	g := mustGrammar(t, b)
	table, _ := NewTableGenerator(Analysis(g), WithConflictPolicy(ReportConflicts)).CreateTable()
	cnt := 0
	for _, c := range table.Conflicts() {
		if c.NonTerminal == N("A") {
			cnt++
		}
	}
	if cnt != 1 {
		t.Errorf("expected 1 conflict for A, have %v", table.Conflicts())
	}
}

func TestLastWinsFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{ConfigKeyLastWins: true})
	defer gconf.Initialize(testconfig.Conf{})
	ga := Analysis(makeExpressionGrammar(t))
	if gen := NewTableGenerator(ga); gen.Policy() != LastWins {
		t.Errorf("expected configured policy to be last-wins, is %v", gen.Policy())
	}
	if gen := NewTableGenerator(ga, WithConflictPolicy(ReportConflicts)); gen.Policy() != ReportConflicts {
		t.Errorf("expected option to override configured policy")
	}
}

func TestLeftRecursiveGrammarRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("LeftRec")
	b.LHS("E").N("E").T("+").T("id").End()
	b.LHS("E").T("id").End()
	g := mustGrammar(t, b)
	_, err := NewTableGenerator(Analysis(g), WithConflictPolicy(ReportConflicts)).CreateTable()
	if !errors.Is(err, ErrLeftRecursive) {
		t.Errorf("expected left recursive grammar to be rejected, have %v", err)
	}
	table, err := NewTableGenerator(Analysis(g), WithConflictPolicy(LastWins)).CreateTable()
	if err != nil {
		t.Errorf("expected legacy mode to build a table anyway, have %v", err)
	}
	if table == nil || table.IsLL1() {
		t.Errorf("expected legacy table with conflicts")
	}
}

func TestParseTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	var buf bytes.Buffer
	if err := ParseTableAsHTML(makeExpressionTable(t), &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if !strings.Contains(html, "<table") || !strings.Contains(html, "F ➞ ( E )") {
		t.Errorf("unexpected HTML output:\n%s", html)
	}
	if err := ParseTableAsHTML(nil, &buf); err == nil {
		t.Errorf("expected error for missing table")
	}
}
