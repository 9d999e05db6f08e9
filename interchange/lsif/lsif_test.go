package lsif

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/cromo/aristid"
	"github.com/cromo/aristid/interchange/rules"
)

func TestDecoder_Stream(t *testing.T) {
	f, err := os.Open("testdata/stream.lsif.yml")
	if err != nil {
		t.Fatalf("Couldn't open test data file: %v", err)
	}
	defer f.Close()

	want := []string{
		"A B A A B",
		"B A A C",
		"A(1, 3) B(2, 3)",
	}

	dec := NewDecoder(f)
	for i := 0; ; i++ {
		format, err := dec.Decode()
		if err == io.EOF {
			if i != len(want) {
				t.Errorf("got %d documents, want %d", i, len(want))
			}
			return
		}
		if err != nil {
			t.Fatalf("document %d: %v", i, err)
		}

		grammar, err := format.Import()
		if err != nil {
			t.Fatalf("document %d: %v", i, err)
		}
		ls, err := grammar.Build()
		if err != nil {
			t.Fatalf("document %d: %v", i, err)
		}
		last, err := ls.Advance(context.Background(), grammar.Generations)
		if err != nil {
			t.Fatalf("document %d: %v", i, err)
		}
		if got := last.Symbols().String(); got != want[i] {
			t.Errorf("document %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestDecoder_UnknownField(t *testing.T) {
	dec := NewDecoder(strings.NewReader("axiom: A\nrulez: []\n"))
	if _, err := dec.Decode(); err == nil {
		t.Error("expected an error on an unknown field")
	}
}

func TestFormat_Import_ArityMismatch(t *testing.T) {
	format := &Format{
		Axiom: "A(1)",
		Rules: []Rule{{Target: "A(x)", Replacement: "A(x, x)"}},
	}
	grammar, err := format.Import()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := grammar.Build(); !errors.Is(err, aristid.ErrArityMismatch) {
		t.Errorf("got %v, want %v", err, aristid.ErrArityMismatch)
	}
}

func TestScanSymbols(t *testing.T) {
	tests := []struct {
		in   string
		want []item
	}{
		{"", nil},
		{"F[+F]F", []item{{label: "F"}, {label: "["}, {label: "+"}, {label: "F"}, {label: "]"}, {label: "F"}}},
		{"A(1, 2) B", []item{{label: "A", params: []string{"1", "2"}}, {label: "B"}}},
		{"A((x + 1) * 2,y)", []item{{label: "A", params: []string{"(x + 1) * 2", "y"}}}},
		{"A()", []item{{label: "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := scanSymbols(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].label != tt.want[i].label || strings.Join(got[i].params, "|") != strings.Join(tt.want[i].params, "|") {
					t.Errorf("item %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	for _, bad := range []string{"A(1", "(A)", "A(1,,2)", "A(1,)"} {
		if _, err := scanSymbols(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParseExpression(t *testing.T) {
	env := rules.Environment{}.Bind("x", 3).Bind("y", 4)

	tests := []struct {
		in   string
		want float64
	}{
		{"2.5", 2.5},
		{"x", 3},
		{"y + 1", 5},
		{"1 + 2 * x", 7},
		{"(1 + 2) * x", 9},
		{"x - y - 1", -2},
		{"y / 2", 2},
		{"y % x", 1},
		{"-x + 1", -2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := parseExpression(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := rules.EvalArith(expr, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"x +", "x == 1", "(x"} {
		if _, err := parseExpression(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParseGuard(t *testing.T) {
	env := rules.Environment{}.Bind("x", 0).Bind("y", 2)

	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"true", true},
		{"x == 0", true},
		{"x != 0", false},
		{"x < y && y <= 2", true},
		{"x > 1 || y >= 3", false},
		{"!(x > 1)", true},
		{"(x > 1) || y == 2", true},
		{"(x + 2) == y", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := parseGuard(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := rules.EvalBool(expr, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"x", "x +", "x == 1 &&"} {
		if _, err := parseGuard(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParsePattern(t *testing.T) {
	p, err := parsePattern("A(x, 1, -2)")
	if err != nil {
		t.Fatal(err)
	}
	want := rules.Pattern("A", rules.Binding("x"), rules.Literal(1), rules.Literal(-2))
	if p.String() != want.String() {
		t.Errorf("got %s, want %s", p, want)
	}

	for _, bad := range []string{"AB", "A(x + 1)", ""} {
		if _, err := parsePattern(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}
