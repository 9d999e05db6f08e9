package aristid

import "testing"

func TestSymbol_String(t *testing.T) {
	tests := []struct {
		symbol Symbol
		want   string
	}{
		{NewSymbol("F"), "F"},
		{NewSymbol("A", 1, 2.5), "A(1, 2.5)"},
		{NewSymbol("+", -90), "+(-90)"},
	}
	for _, tt := range tests {
		if got := tt.symbol.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}

	if got := (Symbols{NewSymbol("A", 1), NewSymbol("B")}).String(); got != "A(1) B" {
		t.Errorf("got %q", got)
	}
}

func TestSymbol_Equal(t *testing.T) {
	tests := []struct {
		x, y Symbol
		want bool
	}{
		{NewSymbol("A"), NewSymbol("A"), true},
		{NewSymbol("A", 1), NewSymbol("A", 1), true},
		{NewSymbol("A"), NewSymbol("B"), false},
		{NewSymbol("A", 1), NewSymbol("A", 2), false},
		{NewSymbol("A", 1), NewSymbol("A", 1, 2), false},
	}
	for _, tt := range tests {
		if got := tt.x.Equal(tt.y); got != tt.want {
			t.Errorf("%s == %s: got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAlphabet_learn(t *testing.T) {
	base := Alphabet{"A": 1}

	learnt, err := base.learn([]Symbol{NewSymbol("A", 3), NewSymbol("B")})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := learnt.Arity("B"); n != 0 || len(learnt) != 2 {
		t.Errorf("got %v", learnt)
	}
	if len(base) != 1 {
		t.Errorf("base alphabet was modified: %v", base)
	}

	if _, err := base.learn([]Symbol{NewSymbol("A", 3, 4)}); err == nil {
		t.Error("expected an arity error")
	}
}
