package rules

import (
	"github.com/pkg/errors"

	"github.com/cromo/aristid"
)

// Check gathers the arity of every label used by the axiom and by the rules' patterns and replacements.
// It fails with an *aristid.ArityError as soon as a label is used with two arities.
func Check(axiom []aristid.Symbol, rules []Rule) (aristid.Alphabet, error) {
	alphabet := aristid.Alphabet{}
	if err := alphabet.ObserveSymbols(axiom); err != nil {
		return nil, errors.Wrap(err, "axiom")
	}

	for i, r := range rules {
		for _, p := range []*SymbolPattern{r.Predecessor, &r.Target, r.Successor} {
			if p == nil {
				continue
			}
			if err := alphabet.Observe(p.Label, len(p.Params)); err != nil {
				return nil, errors.Wrapf(err, "rule %d: pattern %s", i, p)
			}
		}
		for _, se := range r.Replacement {
			if err := alphabet.Observe(se.Label, len(se.Params)); err != nil {
				return nil, errors.Wrapf(err, "rule %d: replacement %s", i, se)
			}
		}
	}
	return alphabet, nil
}

// NewSystem checks the grammar, compiles the rules and builds generation 0.
func NewSystem(axiom []aristid.Symbol, rules []Rule) (aristid.LSystem, error) {
	alphabet, err := Check(axiom, rules)
	if err != nil {
		return aristid.LSystem{}, errors.Wrap(err, "invalid grammar")
	}

	productions, err := CompileAll(rules)
	if err != nil {
		return aristid.LSystem{}, err
	}

	return aristid.NewWithAlphabet(alphabet, axiom, productions)
}
