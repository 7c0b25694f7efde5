/*
Package predictive provides a table-driven predictive parser for LL(1) grammars.
Clients have to use the tools of package ll to prepare the parse table. The
parser utilizes this table to create a leftmost derivation for a given input.

The parser is a true stack machine: an explicit stack of grammar symbols plus a
cursor into the input. It does not recurse, and every intermediate state may
be inspected between steps. This makes it easy to follow a parse in a debugger
or in a REPL, and to reuse a parser instance for many inputs.

Usage

Clients construct a grammar, usually by using a grammar builder:

    b := ll.NewGrammarBuilder("Signed Variables Grammar")
    b.LHS("Var").N("Sign").T("a").End()      // Var  ➞ Sign a
    b.LHS("Sign").T("+").End()               // Sign ➞ +
    b.LHS("Sign").T("-").End()               // Sign ➞ -
    b.LHS("Sign").Epsilon()                  // Sign ➞ ε
    g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

    ga := ll.Analysis(g)
    table, err := ll.NewTableGenerator(ga).CreateTable()
    if err != nil { ... }  // grammar is not LL(1)

Finally parse some input:

    p := predictive.NewParser(table, g.Start())
    accepted, err := p.Parse([]ll.Symbol{ll.T("-"), ll.T("a")})

Parse appends the end-of-input marker to the input itself. After a successful
parse, Derivation() returns the productions applied, in leftmost order, and
ParseTree() returns a parse tree.

A parser instance is not reentrant. Parse tables, however, are immutable and
any number of parsers may share a single table concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package predictive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.parser'.
func tracer() tracing.Trace {
	return tracing.Select("predict.parser")
}
