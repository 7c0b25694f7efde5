package ll

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLeftRecursive is returned for grammars which cannot be parsed top-down
// because a non-terminal may derive a sentential form starting with itself.
var ErrLeftRecursive = errors.New("grammar is left recursive")

// LeftRecursionError reports the recursion cycles of a grammar.
// It wraps ErrLeftRecursive.
type LeftRecursionError struct {
	Grammar string
	Cycles  [][]Symbol
}

func (lre *LeftRecursionError) Error() string {
	cycles := make([]string, len(lre.Cycles))
	for i, c := range lre.Cycles {
		path := make([]string, len(c))
		for j, A := range c {
			path[j] = A.String()
		}
		cycles[i] = strings.Join(path, " ⇒ ")
	}
	return fmt.Sprintf("%s %s: %s", lre.Grammar, ErrLeftRecursive.Error(),
		strings.Join(cycles, ", "))
}

func (lre *LeftRecursionError) Unwrap() error {
	return ErrLeftRecursive
}

// LeftRecursion returns the left recursion cycles of g. Each cycle starts and
// ends with the same non-terminal, e.g. [A B A] for A ➞ B x, B ➞ A y.
// Recursion through a nullable prefix is detected as well (A ➞ B A with B
// nullable). If g is not left recursive, nil is returned.
//
// Only one cycle per non-terminal is reported, and a non-terminal is not
// reported again if it already is part of a reported cycle.
func (g *Grammar) LeftRecursion() [][]Symbol {
	edges := g.leftCorners()
	var cycles [][]Symbol
	covered := make(map[Symbol]bool)
	for _, r := range g.rules {
		A := r.LHS
		if covered[A] {
			continue
		}
		if path := findCycle(A, edges); path != nil {
			tracer().Infof("left recursion: %v", path)
			for _, B := range path {
				covered[B] = true
			}
			cycles = append(cycles, path)
		}
	}
	return cycles
}

// leftCorners builds the relation A → B, where B may occur leftmost in
// a sentential form derived from A in one step.
func (g *Grammar) leftCorners() map[Symbol][]Symbol {
	edges := make(map[Symbol][]Symbol, len(g.rules))
	for _, r := range g.rules {
		seen := make(map[Symbol]bool)
		for _, p := range r.alternatives {
			for _, B := range p.rhs {
				if B.IsEpsilon() {
					continue
				}
				if !B.IsNonTerminal() {
					break
				}
				if !seen[B] {
					seen[B] = true
					edges[r.LHS] = append(edges[r.LHS], B)
				}
				if !g.IsNullable(B) {
					break
				}
			}
		}
	}
	return edges
}

// findCycle does a depth-first search for a path from start back to start.
func findCycle(start Symbol, edges map[Symbol][]Symbol) []Symbol {
	visited := make(map[Symbol]bool)
	var path []Symbol
	var dfs func(A Symbol) bool
	dfs = func(A Symbol) bool {
		path = append(path, A)
		for _, B := range edges[A] {
			if B == start {
				path = append(path, B)
				return true
			}
			if !visited[B] {
				visited[B] = true
				if dfs(B) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if dfs(start) {
		return path
	}
	return nil
}

// CheckLeftRecursion returns a *LeftRecursionError if g is left recursive, nil otherwise.
func (g *Grammar) CheckLeftRecursion() error {
	if cycles := g.LeftRecursion(); len(cycles) > 0 {
		return &LeftRecursionError{Grammar: g.Name, Cycles: cycles}
	}
	return nil
}
