package bnf

import (
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/predict/ll"
)

// Format renders g in BNF notation, such that Parse will re-create an
// equivalent grammar. Terminals which would not be read back as terminals,
// i.e. those which are not plain identifiers or which collide with the name of
// a non-terminal, are quoted.
func Format(g *ll.Grammar) string {
	var b strings.Builder
	_ = Write(g, &b)
	return b.String()
}

// Write writes g in BNF notation to w.
func Write(g *ll.Grammar, w io.Writer) error {
	nonterms := make(map[string]bool)
	g.EachNonTerminal(func(A ll.Symbol) {
		nonterms[A.Name] = true
	})
	width := 0
	for _, r := range g.Rules() {
		if n := len([]rune(r.LHS.Name)); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, r := range g.Rules() {
		b.WriteString(r.LHS.Name)
		b.WriteString(strings.Repeat(" ", width-len([]rune(r.LHS.Name))))
		b.WriteString(" : ")
		for i, p := range r.Alternatives() {
			if i > 0 {
				b.WriteString(" | ")
			}
			for j, A := range p.RHS() {
				if j > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(formatSymbol(A, nonterms))
			}
		}
		b.WriteString(" ;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatSymbol(A ll.Symbol, nonterms map[string]bool) string {
	switch {
	case A.IsEpsilon():
		return "ε"
	case A.IsNonTerminal():
		return A.Name
	case isIdent(A.Name) && !nonterms[A.Name]:
		return A.Name
	case strings.ContainsRune(A.Name, '\''):
		return `"` + A.Name + `"`
	}
	return "'" + A.Name + "'"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || r == '_'):
		case i > 0 && r < unicode.MaxASCII && (unicode.IsDigit(r) || r == '\''):
		default:
			return false
		}
	}
	return true
}
