package aristid

import (
	"strconv"
	"strings"
)

// A Symbol is a member of the alphabet: a label and its (possibly empty) numeric parameters.
// Symbols are values, they are never mutated once built.
type Symbol struct {
	Label  string
	Params []float64
}

// NewSymbol is shorthand for building a Symbol.
func NewSymbol(label string, params ...float64) Symbol {
	return Symbol{Label: label, Params: params}
}

// Arity is the number of parameters carried by the symbol.
func (s Symbol) Arity() int {
	return len(s.Params)
}

// Equal reports whether both symbols share the same label and parameters.
func (s Symbol) Equal(other Symbol) bool {
	if s.Label != other.Label || len(s.Params) != len(other.Params) {
		return false
	}
	for i, p := range s.Params {
		if other.Params[i] != p {
			return false
		}
	}
	return true
}

// Symbol stringifier
func (s Symbol) String() string {
	if len(s.Params) == 0 {
		return s.Label
	}

	var b strings.Builder
	b.WriteString(s.Label)
	b.WriteByte('(')
	for i, param := range s.Params {
		b.WriteString(strconv.FormatFloat(param, 'f', -1, 64))
		if i+1 != len(s.Params) {
			b.WriteString(", ")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Symbols is a generation, in left-to-right order.
type Symbols []Symbol

// Equal reports whether both sequences hold equal symbols in the same order.
func (ss Symbols) Equal(other Symbols) bool {
	if len(ss) != len(other) {
		return false
	}
	for i, s := range ss {
		if !s.Equal(other[i]) {
			return false
		}
	}
	return true
}

// String joins the symbols with a single space.
func (ss Symbols) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Alphabet records the arity of every label seen in a grammar.
// Every symbol sharing a label must carry the same number of parameters.
type Alphabet map[string]int

// Arity returns the arity registered for label.
func (a Alphabet) Arity(label string) (int, bool) {
	n, ok := a[label]
	return n, ok
}

// Observe registers label with the given arity, or checks it against the one already registered.
func (a Alphabet) Observe(label string, arity int) error {
	if want, ok := a[label]; ok {
		if want != arity {
			return &ArityError{Label: label, Want: want, Got: arity}
		}
		return nil
	}
	a[label] = arity
	return nil
}

// ObserveSymbols calls Observe for every symbol given.
func (a Alphabet) ObserveSymbols(symbols []Symbol) error {
	for _, s := range symbols {
		if err := a.Observe(s.Label, len(s.Params)); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy.
func (a Alphabet) Clone() Alphabet {
	c := make(Alphabet, len(a))
	for label, arity := range a {
		c[label] = arity
	}
	return c
}

// learn checks symbols against a and returns an alphabet that also knows their labels.
// a is only copied when a new label shows up, so it may be shared between generations.
func (a Alphabet) learn(symbols []Symbol) (Alphabet, error) {
	learnt, cloned := a, false
	for _, s := range symbols {
		if want, ok := learnt[s.Label]; ok {
			if want != len(s.Params) {
				return nil, &ArityError{Label: s.Label, Want: want, Got: len(s.Params)}
			}
			continue
		}
		if !cloned {
			learnt, cloned = a.Clone(), true
		}
		learnt[s.Label] = len(s.Params)
	}
	return learnt, nil
}
