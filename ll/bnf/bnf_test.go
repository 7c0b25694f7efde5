package bnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const expressionSource = `
// Dragon book, 4.4
E  : T E' ;
E' : '+' T E' | ε ;
T  : F T' ;
T' : '*' F T'
   | %empty ;           # alternative syntax for epsilon
F  : '(' E ')' | id ;
`

func TestParseExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	g, err := Parse("Expr", strings.NewReader(expressionSource))
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != ll.N("E") {
		t.Errorf("expected start symbol E, have %v", g.Start())
	}
	if g.ProductionCount() != 8 {
		t.Errorf("expected 8 productions, have %d", g.ProductionCount())
	}
	var terms []string
	g.EachTerminal(func(A ll.Symbol) {
		terms = append(terms, A.Name)
	})
	if diff := cmp.Diff([]string{"(", ")", "*", "+", "id"}, terms); diff != "" {
		t.Errorf("terminals differ (-want +have):\n%s", diff)
	}
	for _, serial := range []int{2, 5} {
		if !g.Production(serial).IsEpsilon() {
			t.Errorf("expected production #%d to be an epsilon production, is %v",
				serial, g.Production(serial))
		}
	}
	if p := g.Production(6); p.String() != "F ➞ ( E )" {
		t.Errorf("unexpected production #6: %v", p)
	}
	table, err := ll.NewTableGenerator(ll.Analysis(g)).CreateTable()
	if err != nil {
		t.Fatal(err)
	}
	if table.Size() != 13 {
		t.Errorf("expected LL(1) table with 13 entries, have %d", table.Size())
	}
}

func TestRulesAreMerged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	g, err := ParseString("Merged", `S : A b ; A : a ; S : c ; A : ;`)
	if err != nil {
		t.Fatal(err)
	}
	want := "S : A b | c ;\nA : a | ε ;\n"
	if g.String() != want {
		t.Errorf("expected\n%s\nhave\n%s", want, g.String())
	}
}

func TestEpsilonInsideSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	g, err := ParseString("Eps", `S : a ε b | ε ε ;`)
	if err != nil {
		t.Fatal(err)
	}
	rule, _ := g.RuleFor(ll.N("S"))
	alts := rule.Alternatives()
	if alts[0].RHSString() != "a b" || !alts[1].IsEpsilon() {
		t.Errorf("unexpected alternatives %v", alts)
	}
}

func TestLiteralsAreTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	g, err := ParseString("Lit", `S : 'S' "x'" S | ;`)
	if err != nil {
		t.Fatal(err)
	}
	p := g.Production(0)
	if p.Symbol(0) != ll.T("S") || p.Symbol(1) != ll.T("x'") || p.Symbol(2) != ll.N("S") {
		t.Errorf("unexpected production %v", p)
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	for _, tc := range []struct {
		src        string
		line, col  int
		msgContain string
	}{
		{"S : a\nB : b ;", 2, 3, `unexpected ":"`},
		{"S : a ;\n: b ;", 2, 1, "expected one of"},
		{"S : a", 0, 0, "end of input"},
		{"S : a ?? ;", 1, 7, "unexpected input"},
	} {
		_, err := ParseString("Bad", tc.src)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q: expected syntax error, have %v", tc.src, err)
			continue
		}
		t.Logf("%q: %v", tc.src, serr)
		if serr.Line != tc.line || serr.Column != tc.col {
			t.Errorf("%q: expected error at %d:%d, have %d:%d", tc.src, tc.line, tc.col,
				serr.Line, serr.Column)
		}
		if !strings.Contains(serr.Msg, tc.msgContain) {
			t.Errorf("%q: expected message to contain %q, have %q", tc.src, tc.msgContain, serr.Msg)
		}
	}
}

func TestEmptySourceIsInvalidGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	_, err := ParseString("Empty", "// nothing here\n")
	var gerr *ll.GrammarError
	if !errors.As(err, &gerr) {
		t.Errorf("expected grammar error for empty source, have %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.bnf")
	defer teardown()
	//
	g, err := ParseString("Expr", expressionSource)
	if err != nil {
		t.Fatal(err)
	}
	src := Format(g)
	t.Logf("\n%s", src)
	h, err := ParseString("Expr", src)
	if err != nil {
		t.Fatal(err)
	}
	if g.String() != h.String() {
		t.Errorf("round trip changed grammar:\n%s\nvs.\n%s", g, h)
	}
	if !strings.Contains(src, "'+'") || !strings.Contains(src, " id") {
		t.Errorf("expected '+' to be quoted and id to be bare, have\n%s", src)
	}
}
