package predictive

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
)

// State is the state of a parser's stack machine.
type State int8

const (
	// Idle: no input has been started, or the parser has been reset.
	Idle State = iota
	// Running: the parse is in progress.
	Running
	// Done: the input has been accepted. Terminal state.
	Done
	// Failed: the input has been rejected. Terminal state.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("<state %d>", s)
}

// Parser is an LL(1) predictive parser. Create one with NewParser(...).
type Parser struct {
	table      *ll.ParseTable
	start      ll.Symbol
	stack      *arraystack.Stack // parser stack of ll.Symbol
	input      []ll.Symbol       // private copy of the input, terminated by $
	tokens     []predict.Token   // optional tokens for the input symbols
	cursor     int               // position of the lookahead in input
	state      State
	err        *ParseError
	derivation []*ll.Production
}

// NewParser creates a parser, bound to a parse table and a start symbol for
// its whole lifetime.
func NewParser(table *ll.ParseTable, start ll.Symbol) *Parser {
	return &Parser{
		table: table,
		start: start,
		stack: arraystack.New(),
	}
}

// Table returns the parse table the parser is bound to.
func (p *Parser) Table() *ll.ParseTable {
	return p.table
}

// StartSymbol returns the start symbol the parser is bound to.
func (p *Parser) StartSymbol() ll.Symbol {
	return p.start
}

// Parse parses a sequence of terminals. The caller supplies only the real input;
// end-of-input is appended by the parser. The input slice is not modified.
//
// Parse returns true if the input has been accepted. Otherwise it returns false
// and a *ParseError. A parser may be used for another input after Reset (Parse
// calls Reset itself).
func (p *Parser) Parse(input []ll.Symbol) (bool, error) {
	return p.parse(input, nil)
}

// ParseTokens parses a sequence of tokens. classify maps each token to a
// terminal of the grammar. After a successful parse, the tokens are available
// as leaves of the parse tree.
func (p *Parser) ParseTokens(tokens []predict.Token, classify func(predict.Token) ll.Symbol) (bool, error) {
	input := make([]ll.Symbol, len(tokens))
	for i, tok := range tokens {
		input[i] = classify(tok)
		tracer().Debugf("token %q classified as %v", tok.Lexeme(), input[i])
	}
	return p.parse(input, tokens)
}

func (p *Parser) parse(input []ll.Symbol, tokens []predict.Token) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.table == nil {
		tracer().Errorf("predictive parser not initialized")
		return false, errors.New("predictive parser not initialized")
	}
	p.Reset()
	p.Start(input)
	p.tokens = tokens
	for p.state == Running {
		p.Step()
	}
	if p.state == Done && p.err == nil {
		tracer().Infof("input accepted after %d expansions", len(p.derivation))
		return true, nil
	}
	return false, p.err
}

// Start prepares a parse for single stepping. Any previous parse is discarded.
// The stack is initialized with end-of-input at the bottom and the start symbol
// on top of it.
func (p *Parser) Start(input []ll.Symbol) {
	p.stack.Clear()
	p.input = append(make([]ll.Symbol, 0, len(input)+1), input...)
	p.input = append(p.input, ll.EOI)
	p.tokens = nil
	p.cursor = 0
	p.err = nil
	p.derivation = p.derivation[:0]
	p.stack.Push(ll.EOI)
	p.stack.Push(p.start)
	p.state = Running
}

// Step performs a single move of the stack machine and returns the new state.
// Step is a no-op if the parser is not running.
//
// With top being the symbol on top of the stack and cur being the lookahead:
//
//   1. If top equals cur, top is popped and the cursor advances. If this
//      empties the stack (top was end-of-input), the parse is done.
//   2. If top is a non-terminal, it is replaced by the right hand side of the
//      production from table[top,cur], leftmost symbol on top. An epsilon
//      production pushes nothing. If the table cell is empty, the parse fails.
//   3. Otherwise the parse fails with a terminal mismatch.
func (p *Parser) Step() State {
	if p.state != Running {
		return p.state
	}
	x, _ := p.stack.Peek()
	top := x.(ll.Symbol)
	cur := p.input[p.cursor]
	tracer().Debugf("stack = %v, lookahead = %v", p.Stack(), cur)
	switch {
	case top == cur:
		p.stack.Pop()
		p.cursor++
		tracer().Debugf("match %v", top)
		if top.IsEOI() && p.stack.Empty() {
			if p.cursor == len(p.input) {
				p.state = Done
			} else { // caller's input contained end-of-input
				p.fail(TerminalMismatch, top, p.input[p.cursor])
			}
		}
	case top.IsNonTerminal():
		prod, ok := p.table.Lookup(top, cur)
		if !ok {
			p.fail(NoMatchingProduction, top, cur)
			break
		}
		tracer().Debugf("expand %v", prod)
		p.stack.Pop()
		for i := prod.Len() - 1; i >= 0; i-- {
			if A := prod.Symbol(i); !A.IsEpsilon() {
				p.stack.Push(A)
			}
		}
		p.derivation = append(p.derivation, prod)
	default:
		p.fail(TerminalMismatch, top, cur)
	}
	return p.state
}

func (p *Parser) fail(kind ErrorKind, top, cur ll.Symbol) {
	p.state = Failed
	p.err = &ParseError{
		Kind:      kind,
		Position:  p.cursor,
		Top:       top,
		Lookahead: cur,
	}
	if p.cursor < len(p.tokens) {
		p.err.Token = p.tokens[p.cursor]
	}
	tracer().Infof("%v", p.err)
}

// Reset clears the stack, the cursor, the state and error, and the derivation.
// The parser may then be used for a new input.
func (p *Parser) Reset() {
	p.stack.Clear()
	p.input = nil
	p.tokens = nil
	p.cursor = 0
	p.state = Idle
	p.err = nil
	p.derivation = nil
}

// State returns the state of the stack machine.
func (p *Parser) State() State {
	return p.state
}

// Done is true if the input has been accepted.
func (p *Parser) Done() bool {
	return p.state == Done
}

// ErrorKind returns the kind of error which stopped the parse, or NoError.
func (p *Parser) ErrorKind() ErrorKind {
	if p.err == nil {
		return NoError
	}
	return p.err.Kind
}

// Err returns the error which stopped the parse, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Stack returns the symbols on the parse stack, top first.
func (p *Parser) Stack() []ll.Symbol {
	values := p.stack.Values()
	syms := make([]ll.Symbol, len(values))
	for i, x := range values {
		syms[i] = x.(ll.Symbol)
	}
	return syms
}

// Cursor returns the position of the lookahead in the input.
func (p *Parser) Cursor() int {
	return p.cursor
}

// Lookahead returns the current input symbol. If no parse is running, the
// zero symbol is returned.
func (p *Parser) Lookahead() ll.Symbol {
	if p.cursor >= len(p.input) {
		return ll.Symbol{}
	}
	return p.input[p.cursor]
}

// Derivation returns the productions applied so far, in leftmost order.
func (p *Parser) Derivation() []*ll.Production {
	return append([]*ll.Production(nil), p.derivation...)
}
