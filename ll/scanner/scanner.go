/*
Package scanner defines an interface for scanners to be used with the predictive
parsers of this module.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Predictive parsers operate on grammar symbols, not on token types. A Classifier
maps tokens to terminals of a grammar, see LexemeClassifier.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/predict"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'predict.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("predict.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Position is a source position, identical to text/scanner.Position.
type Position = scanner.Position

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() predict.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// LogError is the default error handler of tokenizers. It traces the error.
func LogError(e error) {
	logError(e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() predict.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   predict.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   predict.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		pos:    t.Position,
	}
}

// Tokens reads all tokens from a tokenizer, up to (and excluding) EOF.
func Tokens(t Tokenizer) []predict.Token {
	var tokens []predict.Token
	for tok := t.NextToken(); tok.TokType() != EOF; tok = t.NextToken() {
		tokens = append(tokens, tok)
	}
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   predict.TokType
	lexeme string
	Val    interface{}
	span   predict.Span
	pos    Position
}

// MakeDefaultToken creates a token. pos is the start position of the
// token in terms of line and column.
func MakeDefaultToken(typ predict.TokType, lexeme string, span predict.Span, pos Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		pos:    pos,
	}
}

// TokType is part of the predict.Token interface.
func (t DefaultToken) TokType() predict.TokType {
	return t.kind
}

// Value is part of the predict.Token interface.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of the predict.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the predict.Token interface.
func (t DefaultToken) Span() predict.Span {
	return t.span
}

// Position returns the line and column the token starts at.
func (t DefaultToken) Position() Position {
	return t.pos
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q@%s", t.lexeme, t.pos)
}

// PositionOf returns the source position of a token, if the token type
// supports it. Otherwise the zero position is returned.
func PositionOf(tok predict.Token) Position {
	if p, ok := tok.(interface{ Position() Position }); ok {
		return p.Position()
	}
	return Position{}
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
