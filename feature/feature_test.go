package feature

import "testing"

type vector map[string]float64

func (v vector) ValueFor(name string) float64 {
	return v[name]
}

func TestCriterion(t *testing.T) {
	c := NewCriterion("size", 2.5)
	cases := []struct {
		v    vector
		want bool
	}{
		{vector{"size": 1}, true},
		{vector{"size": 2.5}, false},
		{vector{"size": 3}, false},
	}
	for _, tc := range cases {
		if got := c.SatisfiedBy(tc.v); got != tc.want {
			t.Errorf("%v satisfied by %v: got %v, want %v", c, tc.v, got, tc.want)
		}
	}
	if c.String() != "size < 2.5" {
		t.Errorf("unexpected criterion string %q", c.String())
	}
}

func TestDiscreteFeature(t *testing.T) {
	f := NewDiscreteFeature("colour", []string{"red", "green", "blue"})
	for i, v := range f.AvailableValues() {
		ev, err := f.Encode(v)
		if err != nil {
			t.Fatal(err)
		}
		if ev != float64(i) {
			t.Errorf("Encode(%q) = %v, want %d", v, ev, i)
		}
		if d := f.Decode(ev); d != v {
			t.Errorf("Decode(%v) = %q, want %q", ev, d, v)
		}
	}
	for _, v := range []string{"purple", UndefinedValue, ""} {
		if _, err := f.Encode(v); err == nil {
			t.Errorf("expected error encoding %q", v)
		}
	}
	for _, ev := range []float64{-1, 3, 0.5} {
		if d := f.Decode(ev); d != "" {
			t.Errorf("Decode(%v) = %q, want empty string", ev, d)
		}
	}
}

func TestContinuousFeature(t *testing.T) {
	f := NewContinuousFeature("weight")
	for _, v := range []string{"0", "-1.5", "0.001", "42"} {
		ev, err := f.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%q): %v", v, err)
		}
		if d := f.Decode(ev); d != v {
			t.Errorf("Decode(Encode(%q)) = %q", v, d)
		}
	}
	for _, v := range []string{UndefinedValue, "abc", "NaN", "+Inf", ""} {
		if _, err := f.Encode(v); err == nil {
			t.Errorf("expected error encoding %q", v)
		}
	}
}
