/*
Command llgen reads a context-free grammar, computes FIRST and FOLLOW sets,
builds an LL(1) parse table and parses an input with a predictive parser.

Usage:

    llgen -f grammar.y [--ebnf] [--start S] [-v]
          [--grammar | --first | --follow | --ll]
          [--input "( id ) + id"] [--lastwins] [--html table.html]

    llgen repl -f grammar.y

Grammars are read in BNF notation (see package ll/bnf) or, with flag --ebnf, in
the EBNF notation of the Go language specification (see package ll/ebnf).
Flags --grammar, --first, --follow and --ll stop the pipeline after the
respective stage and print its result. Without any of them, the input is
tokenized by a Go-like scanner and parsed. Identifiers are classified as
terminal "id", integers as terminal "num", everything else by its lexeme.

Configuration may be put into a file llgen.yaml, located in the current
directory, in $HOME/.llgen or in $HOME/.config/llgen. Keys are

    ll.conflicts.lastwins: true     # let later productions overwrite table cells
    input: "id + id"                # default input
    tracelevel.predict.ll: Debug    # trace level per tracing key

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.cli'.
func tracer() tracing.Trace {
	return tracing.Select("predict.cli")
}
