/*
Package bnf reads grammars in a plain BNF-like notation and creates ll.Grammar
values from them.

A grammar is a sequence of rules, each of the form

    LHS : RHS_1 | RHS_2 | … ;

where every right hand side is a (possibly empty) sequence of symbols. The LHS
of the first rule is the start symbol. Several rules for the same LHS are
merged into one. Symbols are

    - identifiers like E, T' or id. Identifiers occuring as the LHS of some
      rule are non-terminals, all other identifiers are terminals.
    - quoted literals like '+' or "(". Literals are always terminals.
    - ε or %empty, denoting the empty string. An empty right hand side is
      ε as well.

Comments start with // or # and extend to the end of the line.

Example:

    E  : T E' ;
    E' : '+' T E' | ε ;
    T  : F T' ;
    T' : '*' F T' | ;          # empty alternative
    F  : '(' E ')' | id ;

The notation itself is parsed by a predictive parser of package predictive,
driven by an LL(1) table for a meta-grammar, built with package ll.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("predict.bnf")
}
