package scanner

import (
	"github.com/npillmayer/predict"
	"github.com/npillmayer/predict/ll"
)

// Classifier maps an input token to a terminal symbol of a grammar.
type Classifier func(predict.Token) ll.Symbol

// LexemeClassifier creates a classifier for the terminals of a grammar.
// A token whose lexeme is the name of a terminal of g is classified as that
// terminal. Otherwise, if the token's type is mapped to a terminal name in
// categories, it is classified as this terminal. All other tokens are classified
// by their lexeme; these will be rejected by a parser for g.
//
// Example: with categories {Ident: "id", Int: "num"}, the input "( x ) + 7"
// is classified as "( id ) + num", while "id" is still classified as id.
func LexemeClassifier(g *ll.Grammar, categories map[predict.TokType]string) Classifier {
	terminals := make(map[string]ll.Symbol)
	g.EachTerminal(func(A ll.Symbol) {
		terminals[A.Name] = A
	})
	return func(tok predict.Token) ll.Symbol {
		if A, ok := terminals[tok.Lexeme()]; ok {
			return A
		}
		if name, ok := categories[tok.TokType()]; ok {
			return ll.T(name)
		}
		return ll.T(tok.Lexeme())
	}
}

// Classify maps a sequence of tokens to terminals.
func Classify(tokens []predict.Token, classify Classifier) []ll.Symbol {
	syms := make([]ll.Symbol, len(tokens))
	for i, tok := range tokens {
		syms[i] = classify(tok)
	}
	return syms
}
