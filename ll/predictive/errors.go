package predictive

import (
	"fmt"

	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
)

// ErrorKind classifies the reason for a failed parse.
type ErrorKind int8

const (
	// NoError is the error kind of a running or successful parse.
	NoError ErrorKind = iota
	// NoMatchingProduction: the table has no entry for the non-terminal on top of the
	// stack and the current lookahead.
	NoMatchingProduction
	// TerminalMismatch: the terminal on top of the stack differs from the lookahead.
	TerminalMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case NoMatchingProduction:
		return "no matching production"
	case TerminalMismatch:
		return "terminal mismatch"
	}
	return fmt.Sprintf("<error kind %d>", k)
}

// ParseError is returned for a failed parse. The parser stops at the first
// error; there is no error recovery.
type ParseError struct {
	Kind      ErrorKind
	Position  int           // index of the lookahead in the input
	Top       ll.Symbol     // symbol on top of the stack
	Lookahead ll.Symbol     // current input symbol
	Token     predict.Token // input token of the lookahead, if parsing tokens
}

func (e *ParseError) Error() string {
	at := fmt.Sprintf("position %d", e.Position)
	if e.Token != nil {
		at = fmt.Sprintf("%q at %v", e.Token.Lexeme(), e.Token.Span())
	}
	switch e.Kind {
	case NoMatchingProduction:
		return fmt.Sprintf("syntax error at %s: no production for %s with lookahead %s",
			at, e.Top, e.Lookahead)
	case TerminalMismatch:
		return fmt.Sprintf("syntax error at %s: expected %s, have %s", at, e.Top, e.Lookahead)
	}
	return fmt.Sprintf("parse error at %s: %s", at, e.Kind)
}
