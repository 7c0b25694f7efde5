package predict

import "testing"

func TestSpanExtend(t *testing.T) {
	for i, x := range []struct {
		a, b, ext Span
	}{
		{Span{2, 5}, Span{4, 9}, Span{2, 9}},
		{Span{4, 9}, Span{2, 5}, Span{2, 9}},
		{Span{}, Span{3, 4}, Span{3, 4}},
		{Span{3, 4}, Span{}, Span{3, 4}},
	} {
		if e := x.a.Extend(x.b); e != x.ext {
			t.Errorf("#%d: expected %v.Extend(%v) = %v, is %v", i, x.a, x.b, x.ext, e)
		}
	}
	if (Span{2, 7}).Len() != 5 {
		t.Errorf("expected length of (2…7) to be 5")
	}
}
