/*
Package ebnf creates ll.Grammar values from grammars written in the EBNF
dialect of golang.org/x/exp/ebnf, the notation of the Go language
specification:

    Expr   = Term { "+" Term } .
    Term   = Factor { "*" Factor } .
    Factor = "(" Expr ")" | id .
    id     = "a" … "z" .

Productions with an upper case name are non-terminals. Lexical productions
(lower case name) are not lowered into rules; every reference to one of them
becomes a terminal with the production's name, leaving it to a scanner to
recognize it. Tokens like "+" become terminals as well.

EBNF operators are replaced by helper non-terminals, named after the
production they occur in:

    [ x ]    A_optN ➞ x | ε
    { x }    A_repN ➞ x A_repN | ε
    ( x|y )  A_grpN ➞ x | y

Groups without alternatives are inlined. Repetitions are lowered to right
recursion, therefore the result of lowering is never left recursive unless the
EBNF source is.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("predict.ebnf")
}
