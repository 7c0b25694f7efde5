package sparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected M(9,9) to be null-value, is %d", v)
	}
	M.Set(2, 3, 1)
	if v := M.Value(2, 3); v != 1 {
		t.Errorf("expected M(2,3) = 1 after overwrite, is %d", v)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position to be set, have %d", M.ValueCount())
	}
}

func TestAddSecondValue(t *testing.T) {
	M := NewIntMatrix(4, 4, DefaultNullValue)
	M.Add(1, 1, 7)
	M.Add(1, 1, 8)
	a, b := M.Values(1, 1)
	if a != 7 || b != 8 {
		t.Errorf("expected (7,8) at (1,1), have (%d,%d)", a, b)
	}
	if M.MultiValueCount() != 1 {
		t.Errorf("expected one position with 2 values, have %d", M.MultiValueCount())
	}
	M.Set(1, 1, 9)
	a, b = M.Values(1, 1)
	if a != 9 || b != DefaultNullValue {
		t.Errorf("expected Set to clear second value, have (%d,%d)", a, b)
	}
}

func TestRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(3, 1, 31).Set(0, 4, 4).Set(3, 0, 30).Set(1, 2, 12).Set(0, 0, 0)
	var seen []int32
	M.Each(func(i, j int, a, b int32) {
		seen = append(seen, a)
	})
	if diff := cmp.Diff([]int32{0, 4, 12, 30, 31}, seen); diff != "" {
		t.Errorf("iteration order mismatch (-want +got):\n%s", diff)
	}
	for _, x := range []struct{ i, j, v int }{{3, 1, 31}, {0, 4, 4}, {3, 0, 30}, {1, 2, 12}, {0, 0, 0}} {
		if v := M.Value(x.i, x.j); v != int32(x.v) {
			t.Errorf("expected M(%d,%d) = %d, is %d", x.i, x.j, x.v, v)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set out of range to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Set(2, 0, 1)
}
