package ll

import (
	"fmt"
	"strings"
)

// SymbolKind tags the variant of a grammar symbol.
type SymbolKind int8

// Symbols are either terminals, non-terminals or one of the two special
// terminal-like symbols EndOfInput and Epsilon.
const (
	Terminal SymbolKind = iota
	NonTerminal
	EndOfInput
	EpsilonKind
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "non-terminal"
	case EndOfInput:
		return "end-of-input"
	case EpsilonKind:
		return "epsilon"
	}
	return fmt.Sprintf("<kind %d>", k)
}

// Symbol represents a grammar symbol. Symbols are small immutable values and
// are compared by (kind, name). They may be used as map keys.
type Symbol struct {
	Kind SymbolKind
	Name string
}

// EOI is the end-of-input sentinel, conventionally rendered "$". It marks the end
// of the input and sits at the bottom of the parse stack.
var EOI = Symbol{Kind: EndOfInput, Name: "$"}

// Epsilon is the terminal-like symbol for the empty string. It has no text.
var Epsilon = Symbol{Kind: EpsilonKind}

// T creates a terminal symbol.
func T(name string) Symbol {
	return Symbol{Kind: Terminal, Name: name}
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Kind: NonTerminal, Name: name}
}

// IsTerminal is true for terminals, EOI and Epsilon, i.e. for everything which
// cannot be expanded.
func (A Symbol) IsTerminal() bool {
	return A.Kind != NonTerminal
}

// IsNonTerminal is true for non-terminals.
func (A Symbol) IsNonTerminal() bool {
	return A.Kind == NonTerminal
}

// IsEpsilon is true for Epsilon.
func (A Symbol) IsEpsilon() bool {
	return A.Kind == EpsilonKind
}

// IsEOI is true for the end-of-input symbol.
func (A Symbol) IsEOI() bool {
	return A.Kind == EndOfInput
}

// IsZero is true for the uninitialized symbol.
func (A Symbol) IsZero() bool {
	return A == Symbol{}
}

func (A Symbol) String() string {
	if A.Kind == EpsilonKind {
		return "ε"
	}
	return A.Name
}

// CompareSymbols is a total order on symbols: by text first, then by kind.
// It is used for deterministic iteration over sets and tables and has the
// signature of a gods comparator.
func CompareSymbols(a, b interface{}) int {
	A, B := a.(Symbol), b.(Symbol)
	if c := strings.Compare(A.Name, B.Name); c != 0 {
		return c
	}
	switch {
	case A.Kind < B.Kind:
		return -1
	case A.Kind > B.Kind:
		return 1
	}
	return 0
}
