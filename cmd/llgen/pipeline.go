package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/predict/ll/bnf"
	"github.com/npillmayer/predict/ll/ebnf"
	"github.com/npillmayer/predict/ll/predictive"
	"github.com/npillmayer/predict/ll/scanner"
	"github.com/pterm/pterm"
)

// stage is a step of the generator pipeline.
type stage int

const (
	stageAll stage = iota // run everything, including the parse
	stageGrammar
	stageFirst
	stageFollow
	stageTable
)

func (s stage) String() string {
	switch s {
	case stageGrammar:
		return "grammar"
	case stageFirst:
		return "first"
	case stageFollow:
		return "follow"
	case stageTable:
		return "ll"
	}
	return "parse"
}

// run executes the pipeline: grammar → FIRST → FOLLOW → table → parse.
// The result of a stage is printed if it is the last stage or if opts.verbose
// is set.
func run(opts *options, out io.Writer) error {
	tracer().Debugf("running pipeline with %v", opts)
	g, err := loadGrammar(opts)
	if err != nil {
		return err
	}
	show := func(s stage) bool {
		return opts.verbose || opts.stopAfter == s
	}
	if show(stageGrammar) {
		fmt.Fprintln(out, renderGrammar(g))
	}
	if opts.stopAfter == stageGrammar {
		return nil
	}
	ga := ll.Analysis(g)
	if show(stageFirst) {
		fmt.Fprintln(out, renderSets("FIRST", ga.FirstSets().Each))
	}
	if opts.stopAfter == stageFirst {
		return nil
	}
	if show(stageFollow) {
		fmt.Fprintln(out, renderSets("FOLLOW", ga.FollowSets().Each))
	}
	if opts.stopAfter == stageFollow {
		return nil
	}
	table, err := buildTable(ga, opts, out)
	if err != nil {
		return err
	}
	if show(stageTable) {
		fmt.Fprintln(out, renderTable(table))
	}
	if opts.html != "" {
		if err := writeHTML(table, opts.html); err != nil {
			return err
		}
	}
	if opts.stopAfter == stageTable {
		return nil
	}
	tree, err := parseInput(table, opts.input)
	if err != nil {
		fmt.Fprint(out, pterm.Error.Sprintfln("input %q rejected", opts.input))
		return err
	}
	fmt.Fprint(out, pterm.Success.Sprintfln("input %q accepted", opts.input))
	fmt.Fprintln(out, renderTree(tree))
	return nil
}

// loadGrammar reads the grammar file, either in BNF or in EBNF notation.
func loadGrammar(opts *options) (*ll.Grammar, error) {
	if opts.file == "" {
		return nil, errors.New("no grammar file given")
	}
	f, err := os.Open(opts.file)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar: %w", err)
	}
	defer f.Close()
	var g *ll.Grammar
	if opts.ebnf {
		g, err = ebnf.Parse(opts.file, f, opts.start)
	} else {
		g, err = bnf.Parse(opts.file, f)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar %s: %w", opts.file, err)
	}
	tracer().Infof("grammar %s has %d rules and %d productions", g.Name, len(g.Rules()),
		g.ProductionCount())
	return g, nil
}

// buildTable creates the LL(1) table. Conflicts are printed; under the
// last-wins policy they do not stop the pipeline, and left recursion is
// reported as a warning.
func buildTable(ga *ll.GrammarAnalysis, opts *options, out io.Writer) (*ll.ParseTable, error) {
	gen := ll.NewTableGenerator(ga, opts.tableOptions()...)
	table, err := gen.CreateTable()
	var lrerr *ll.LeftRecursionError
	if errors.As(err, &lrerr) {
		return nil, err
	}
	if gen.Policy() == ll.LastWins {
		if recErr := ga.Grammar().CheckLeftRecursion(); recErr != nil {
			fmt.Fprint(out, pterm.Warning.Sprintfln("%v, input will not be parsed", recErr))
		}
	}
	if table != nil && !table.IsLL1() {
		fmt.Fprintln(out, renderConflicts(table.Conflicts()))
		if gen.Policy() == ll.LastWins {
			fmt.Fprint(out, pterm.Warning.Sprintfln("%d conflicts resolved by policy %s",
				len(table.Conflicts()), gen.Policy()))
		}
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func writeHTML(table *ll.ParseTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ll.ParseTableAsHTML(table, f); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("LL(1) table written to %s", path)
	return f.Close()
}

// categories maps token types of the Go-like scanner to terminals.
var categories = map[predict.TokType]string{
	scanner.Ident: "id",
	scanner.Int:   "num",
}

// parseInput tokenizes and parses input and returns the parse tree.
// Tables for left recursive grammars are refused, as the parser would
// not terminate.
func parseInput(table *ll.ParseTable, input string) (*predictive.Node, error) {
	g := table.Grammar()
	if err := g.CheckLeftRecursion(); err != nil {
		return nil, fmt.Errorf("cannot parse input: %w", err)
	}
	tokenizer := scanner.GoTokenizer(g.Name, strings.NewReader(input), scanner.UnifyStrings(true))
	var scanErr error
	tokenizer.SetErrorHandler(func(err error) {
		if scanErr == nil {
			scanErr = err
		}
	})
	tokens := scanner.Tokens(tokenizer)
	if scanErr != nil {
		return nil, scanErr
	}
	p := predictive.NewParser(table, g.Start())
	if _, err := p.ParseTokens(tokens, scanner.LexemeClassifier(g, categories)); err != nil {
		return nil, err
	}
	return p.ParseTree()
}
