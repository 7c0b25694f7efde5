/*
Package predict is a toolbox for predictive (LL(1)) parsing.

Predict computes FIRST and FOLLOW sets for context-free grammars, derives
deterministic LL(1) parse tables from them and drives a table-driven stack
machine to recognize input. Grammars may be constructed programmatically or
read from a BNF-like or an EBNF grammar description. Package structure is
as follows:

■ ll: Package ll implements the grammar model, static grammar analysis (nullability,
FIRST and FOLLOW sets, left recursion) and the construction of LL(1) parse tables.

■ ll/predictive: Package predictive implements a table-driven predictive parser.

■ ll/scanner: Package scanner defines tokenizers to feed input into parsers.

■ ll/bnf, ll/ebnf: Front ends for reading grammars from text.

■ cmd/llgen: Command llgen runs the analysis pipeline on a grammar file and
parses sample input, either once or interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package predict
