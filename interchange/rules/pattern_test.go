package rules

import (
	"testing"

	"github.com/cromo/aristid"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern SymbolPattern
		symbol  aristid.Symbol
		env     Environment
		ok      bool
		bound   map[string]float64
	}{
		{
			name:    "label",
			pattern: Pattern("A"),
			symbol:  aristid.NewSymbol("A"),
			ok:      true,
		},
		{
			name:    "other label",
			pattern: Pattern("A"),
			symbol:  aristid.NewSymbol("B"),
		},
		{
			name:    "arity mismatch is a non-match",
			pattern: Pattern("A", Binding("x")),
			symbol:  aristid.NewSymbol("A", 1, 2),
		},
		{
			name:    "literal",
			pattern: Pattern("A", Literal(1), Binding("y")),
			symbol:  aristid.NewSymbol("A", 1, 2),
			ok:      true,
			bound:   map[string]float64{"y": 2},
		},
		{
			name:    "literal mismatch",
			pattern: Pattern("A", Literal(0)),
			symbol:  aristid.NewSymbol("A", 1),
		},
		{
			name:    "same name twice agrees",
			pattern: Pattern("A", Binding("x"), Binding("x")),
			symbol:  aristid.NewSymbol("A", 3, 3),
			ok:      true,
			bound:   map[string]float64{"x": 3},
		},
		{
			name:    "same name twice conflicts",
			pattern: Pattern("A", Binding("x"), Binding("x")),
			symbol:  aristid.NewSymbol("A", 3, 4),
		},
		{
			name:    "name already bound in the environment",
			pattern: Pattern("A", Binding("x")),
			symbol:  aristid.NewSymbol("A", 5),
			env:     Environment{}.Bind("x", 5),
			ok:      true,
			bound:   map[string]float64{"x": 5},
		},
		{
			name:    "name already bound to another value",
			pattern: Pattern("A", Binding("x")),
			symbol:  aristid.NewSymbol("A", 5),
			env:     Environment{}.Bind("x", 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := Match(tt.pattern, tt.symbol, tt.env)
			if ok != tt.ok {
				t.Fatalf("got %v, want %v", ok, tt.ok)
			}
			if !ok {
				if env.Len() != tt.env.Len() {
					t.Errorf("failed match changed the environment: %v", env.Names())
				}
				return
			}
			if env.Len() != len(tt.bound) {
				t.Errorf("got bindings %v, want %v", env.Names(), tt.bound)
			}
			for name, want := range tt.bound {
				if got, ok := env.Lookup(name); !ok || got != want {
					t.Errorf("%s: got %v (bound: %v), want %v", name, got, ok, want)
				}
			}
		})
	}
}

func TestEnvironment_Bind(t *testing.T) {
	empty := Environment{}
	one := empty.Bind("x", 1)
	two := one.Bind("y", 2)

	if empty.Len() != 0 || one.Len() != 1 || two.Len() != 2 {
		t.Errorf("lengths: %d %d %d", empty.Len(), one.Len(), two.Len())
	}
	if _, ok := one.Lookup("y"); ok {
		t.Error("binding leaked into the parent environment")
	}
	if _, err := empty.Get("x"); err == nil {
		t.Error("expected an unbound variable error")
	}
}
