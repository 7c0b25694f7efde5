/*
Package ll implements prerequisites for LL(1) predictive parsing: a grammar
model, static grammar analysis and the construction of parse tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may contain
epsilon-productions. The left hand side of the first rule is the start symbol.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("E").N("T").N("E'").End()               // E  ->  T E'
    b.LHS("E'").T("+").N("T").N("E'").End()       // E' ->  + T E'
    b.LHS("E'").Epsilon()                         // E' ->  ε
    b.LHS("T").N("F").N("T'").End()               // T  ->  F T'
    b.LHS("T'").T("*").N("F").N("T'").End()       // T' ->  * F T'
    b.LHS("T'").Epsilon()                         // T' ->  ε
    b.LHS("F").T("(").N("E").T(")").End()         // F  ->  ( E )
    b.LHS("F").T("id").End()                      // F  ->  id
    g, err := b.Grammar()

Grammar construction validates the grammar: every non-terminal used on a right
hand side has to have a rule of its own.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to a GrammarAnalysis object, which computes FIRST and
FOLLOW sets for the grammar. Sets are computed on first request and cached.

    ga := ll.Analysis(g)
    g.EachNonTerminal(func(A ll.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    })

    // Output:
    FIRST(E) = { ( id }
    FIRST(E') = { + ε }
    …

Clients not interested in caching may call the two phases directly:

    first := ll.ComputeFirstSets(g)
    follow := ll.ComputeFollowSets(g, first)

Parser Construction

Using grammar analysis as input, a parse table for a predictive parser
is constructed.

    gen := ll.NewTableGenerator(ga)
    table, err := gen.CreateTable()   // err may be a *ConflictError

The table maps pairs of (non-terminal, lookahead) to productions and is immutable.
It may be shared between parsers running concurrently. See package predictive
for the parser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.ll'.
func tracer() tracing.Trace {
	return tracing.Select("predict.ll")
}
