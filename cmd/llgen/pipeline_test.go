package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/predict/ll/predictive"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func TestPipelineParsesInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	opts := &options{file: "testdata/expr.y", input: defaultInput}
	if err := run(opts, &out); err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", out.String())
	if !strings.Contains(out.String(), "accepted") {
		t.Errorf("expected input to be accepted")
	}
	if strings.Contains(out.String(), "FIRST") {
		t.Errorf("expected intermediate stages to be silent without -v")
	}
}

func TestPipelineStages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	for _, tc := range []struct {
		stop   stage
		expect string
	}{
		{stageGrammar, "Grammar testdata/expr.y, start symbol E"},
		{stageFirst, "FIRST sets"},
		{stageFollow, "FOLLOW sets"},
		{stageTable, "LL(1) table, 13 entries"},
	} {
		t.Run(tc.stop.String(), func(t *testing.T) {
			var out bytes.Buffer
			opts := &options{file: "testdata/expr.y", input: defaultInput, stopAfter: tc.stop}
			if err := run(opts, &out); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tc.expect) {
				t.Errorf("expected output to contain %q, have\n%s", tc.expect, out.String())
			}
			if strings.Contains(out.String(), "accepted") {
				t.Errorf("expected pipeline to stop before parsing")
			}
		})
	}
}

func TestVerbosePrintsAllStages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	opts := &options{file: "testdata/expr.y", input: "id * id", verbose: true}
	if err := run(opts, &out); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Grammar", "FIRST", "FOLLOW", "LL(1) table", "accepted"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("expected verbose output to contain %q", s)
		}
	}
}

func TestRejectedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	opts := &options{file: "testdata/expr.y", input: "id +"}
	err := run(opts, &out)
	var perr *predictive.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, have %v", err)
	}
	if perr.Kind != predictive.NoMatchingProduction {
		t.Errorf("expected no matching production at end of input, have %v", perr.Kind)
	}
	if !strings.Contains(out.String(), "rejected") {
		t.Errorf("expected input to be reported as rejected")
	}
}

func TestLeftRecursiveGrammarIsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	err := run(&options{file: "testdata/leftrec.y", input: "id"}, &out)
	if !errors.Is(err, ll.ErrLeftRecursive) {
		t.Errorf("expected left recursion error, have %v", err)
	}
}

func TestLeftRecursiveGrammarUnderLastWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	opts := &options{file: "testdata/leftrec.y", lastwins: true, stopAfter: stageTable}
	if err := run(opts, &out); err != nil {
		t.Fatalf("expected last-wins to build a table, have %v", err)
	}
	if !strings.Contains(out.String(), "left recursive") {
		t.Errorf("expected a left recursion warning, have\n%s", out.String())
	}
	out.Reset()
	opts = &options{file: "testdata/leftrec.y", lastwins: true, input: "id + id"}
	if err := run(opts, &out); !errors.Is(err, ll.ErrLeftRecursive) {
		t.Errorf("expected input not to be parsed, have %v", err)
	}
}

func TestConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	err := run(&options{file: "testdata/dangling.y", input: "a"}, &out)
	var cerr *ll.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict error, have %v", err)
	}
	if len(cerr.Conflicts) != 1 || cerr.Conflicts[0].Kind != ll.FirstFollow {
		t.Errorf("expected a single FIRST/FOLLOW conflict, have %v", cerr.Conflicts)
	}
	out.Reset()
	opts := &options{file: "testdata/dangling.y", lastwins: true, stopAfter: stageTable}
	if err := run(opts, &out); err != nil {
		t.Fatalf("expected last-wins to resolve conflicts, have %v", err)
	}
	if !strings.Contains(out.String(), "FIRST/FOLLOW") || !strings.Contains(out.String(), "last-wins") {
		t.Errorf("expected conflicts to be listed, have\n%s", out.String())
	}
}

func TestEBNFGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	opts := &options{file: "testdata/expr.ebnf", ebnf: true, input: "( a + 7 ) * b"}
	if err := run(opts, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `num "7"`) {
		t.Errorf("expected parse tree to show token 7 as num, have\n%s", out.String())
	}
}

func TestHTMLExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "table.html")
	opts := &options{file: "testdata/expr.y", html: path, stopAfter: stageTable}
	if err := run(opts, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<table") || !strings.Contains(string(html), "E&#39;") {
		t.Errorf("unexpected HTML output:\n%s", html)
	}
}

func TestMissingGrammarFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	err := run(&options{file: "testdata/nonexistent.y"}, &bytes.Buffer{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file-not-found error, have %v", err)
	}
}

func TestReplEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	g, err := loadGrammar(&options{file: "testdata/expr.y"})
	if err != nil {
		t.Fatal(err)
	}
	ga := ll.Analysis(g)
	table, err := ll.NewTableGenerator(ga).CreateTable()
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	intp := &Intp{ga: ga, table: table, out: &out}
	for _, tc := range []struct {
		line, expect string
		quit         bool
	}{
		{":first", "FIRST sets", false},
		{"id * id", "(E (T (F id) (T' * (F id) (T'))) (E'))", false},
		{"id id", "syntax error", false},
		{":nope", "unknown command", false},
		{":quit", "", true},
	} {
		out.Reset()
		if quit := intp.Eval(tc.line); quit != tc.quit {
			t.Errorf("%q: expected quit = %v", tc.line, tc.quit)
		}
		if !strings.Contains(out.String(), tc.expect) {
			t.Errorf("%q: expected output to contain %q, have\n%s", tc.line, tc.expect, out.String())
		}
	}
}

func TestRootCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.cli")
	defer teardown()
	//
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-f", "testdata/expr.y", "--follow"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "FOLLOW sets") {
		t.Errorf("expected FOLLOW sets, have\n%s", out.String())
	}
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--ll"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "no grammar file") {
		t.Errorf("expected error for missing grammar file, have %v", err)
	}
}
