package ll

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// SymbolSet is an ordered set of grammar symbols. Iteration follows the total
// order of CompareSymbols. Sets handed out by the analysis are not modified
// afterwards and may be shared.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing the given symbols.
func NewSymbolSet(syms ...Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(CompareSymbols)}
	for _, A := range syms {
		S.set.Add(A)
	}
	return S
}

// Contains checks for set membership.
func (S *SymbolSet) Contains(A Symbol) bool {
	if S == nil {
		return false
	}
	return S.set.Contains(A)
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Empty is true for the empty set.
func (S *SymbolSet) Empty() bool {
	return S.Size() == 0
}

// Symbols returns the members of S in order.
func (S *SymbolSet) Symbols() []Symbol {
	if S == nil {
		return nil
	}
	syms := make([]Symbol, 0, S.set.Size())
	for _, x := range S.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Each calls f for every member of S, in order.
func (S *SymbolSet) Each(f func(A Symbol)) {
	if S == nil {
		return
	}
	S.set.Each(func(_ int, x interface{}) {
		f(x.(Symbol))
	})
}

// Without returns a new set with the members of S, except A.
func (S *SymbolSet) Without(A Symbol) *SymbolSet {
	R := S.Copy()
	R.set.Remove(A)
	return R
}

// Copy returns a fresh copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	R := NewSymbolSet()
	if S != nil {
		R.set.Add(S.set.Values()...)
	}
	return R
}

// Equals checks if two sets have the same members.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	a, b := S.Symbols(), other.Symbols()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a set like "{ ( id }".
func (S *SymbolSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	S.Each(func(A Symbol) {
		b.WriteByte(' ')
		b.WriteString(A.String())
	})
	b.WriteString(" }")
	return b.String()
}

// add is destructive and therefore private. It returns true if S has grown.
func (S *SymbolSet) add(syms ...Symbol) bool {
	n := S.set.Size()
	for _, A := range syms {
		S.set.Add(A)
	}
	return S.set.Size() > n
}

// union adds all members of other to S, optionally dropping ε. It returns true
// if S has grown.
func (S *SymbolSet) union(other *SymbolSet, withEpsilon bool) bool {
	grown := false
	other.Each(func(A Symbol) {
		if A.IsEpsilon() && !withEpsilon {
			return
		}
		if !S.set.Contains(A) {
			S.set.Add(A)
			grown = true
		}
	})
	return grown
}

func (S *SymbolSet) remove(A Symbol) {
	S.set.Remove(A)
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		return CompareSymbols(syms[i], syms[j]) < 0
	})
}
