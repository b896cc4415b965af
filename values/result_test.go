package values

import (
	"errors"
	"testing"
)

func TestResult(t *testing.T) {
	ok := Ok(5)
	if ok.IsErr() {
		t.Fatal("Ok result reports error")
	}
	if v, err := ok.Get(); err != nil || v != 5 {
		t.Errorf("got %v, %v", v, err)
	}
	if ok.GetOrElse(9) != 5 {
		t.Error("GetOrElse should return the value")
	}

	sentinel := errors.New("boom")
	bad := Fail[int](sentinel)
	if !bad.IsErr() {
		t.Fatal("Fail result reports success")
	}
	if !errors.Is(bad.Err(), sentinel) {
		t.Errorf("lost cause: %v", bad.Err())
	}
	if bad.GetOrElse(9) != 9 {
		t.Error("GetOrElse should return the fallback")
	}
}

func TestFailf_WrapsCause(t *testing.T) {
	sentinel := errors.New("inner")
	r := Failf[int]("while doing x: %w", sentinel)
	if !errors.Is(r.Err(), sentinel) {
		t.Errorf("cause not wrapped: %v", r.Err())
	}
}

func TestMustGet_PanicsOnFailure(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Fail[int](errors.New("boom")).MustGet()
}

func TestMapResult(t *testing.T) {
	r := MapResult(Ok(2), func(i int) int { return i * 3 })
	if r.MustGet() != 6 {
		t.Errorf("got %d", r.MustGet())
	}
	bad := MapResult(Fail[int](errors.New("x")), func(i int) int { return i })
	if !bad.IsErr() {
		t.Error("failure should propagate")
	}
}

func TestFlatMapResult(t *testing.T) {
	r := FlatMapResult(Ok(2), func(i int) Result[string] {
		if i == 2 {
			return Ok("two")
		}
		return Failf[string]("unexpected %d", i)
	})
	if r.MustGet() != "two" {
		t.Errorf("got %q", r.MustGet())
	}
}
