package ll

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	direct := NewGrammarBuilder("Direct")
	direct.LHS("E").N("E").T("+").N("T").End()
	direct.LHS("E").N("T").End()
	direct.LHS("T").T("id").End()
	//
	indirect := NewGrammarBuilder("Indirect")
	indirect.LHS("A").N("B").T("a").End()
	indirect.LHS("B").N("A").T("b").End()
	indirect.LHS("B").T("c").End()
	//
	hidden := NewGrammarBuilder("Hidden")
	hidden.LHS("A").N("B").N("A").T("x").End()
	hidden.LHS("A").T("y").End()
	hidden.LHS("B").Epsilon()
	hidden.LHS("B").T("b").End()
	//
	for _, x := range []struct {
		b      *GrammarBuilder
		cycles [][]Symbol
	}{
		{direct, [][]Symbol{{N("E"), N("E")}}},
		{indirect, [][]Symbol{{N("A"), N("B"), N("A")}}},
		{hidden, [][]Symbol{{N("A"), N("A")}}},
	} {
		t.Run(x.b.name, func(t *testing.T) {
			g := mustGrammar(t, x.b)
			if diff := cmp.Diff(x.cycles, g.LeftRecursion()); diff != "" {
				t.Errorf("cycles mismatch (-want +got):\n%s", diff)
			}
			err := g.CheckLeftRecursion()
			if !errors.Is(err, ErrLeftRecursive) {
				t.Errorf("expected error to be ErrLeftRecursive, is %v", err)
			}
		})
	}
}

func TestNoLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "predict.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	if cycles := g.LeftRecursion(); cycles != nil {
		t.Errorf("expected expression grammar not to be left recursive, have %v", cycles)
	}
	if err := g.CheckLeftRecursion(); err != nil {
		t.Error(err)
	}
}
