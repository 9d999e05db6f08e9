package lsif

import (
	"github.com/pkg/errors"

	"github.com/cromo/aristid"
	"github.com/cromo/aristid/interchange"
	"github.com/cromo/aristid/interchange/rules"
)

var ensureInterfaceCompliance interchange.Format = &Format{}

func (format *Format) Import() (interchange.Grammar, error) {
	axiom, err := parseAxiom(format.Axiom)
	if err != nil {
		return interchange.Grammar{}, errors.Wrap(err, "Error while parsing axiom")
	}

	// Build the rules
	builtRules := make([]rules.Rule, len(format.Rules))
	for ri, definedRule := range format.Rules {
		r, err := definedRule.build()
		if err != nil {
			return interchange.Grammar{}, errors.Wrapf(err, "Error while parsing rule %d", ri)
		}
		builtRules[ri] = r
	}

	return interchange.Grammar{
		Axiom:       axiom,
		Rules:       builtRules,
		Generations: format.Generations,
	}, nil
}

func (definedRule Rule) build() (rules.Rule, error) {
	var (
		r   rules.Rule
		err error
	)

	if r.Target, err = parsePattern(definedRule.Target); err != nil {
		return r, errors.Wrap(err, "target")
	}
	if definedRule.Predecessor != "" {
		p, err := parsePattern(definedRule.Predecessor)
		if err != nil {
			return r, errors.Wrap(err, "predecessor")
		}
		r.Predecessor = &p
	}
	if definedRule.Successor != "" {
		p, err := parsePattern(definedRule.Successor)
		if err != nil {
			return r, errors.Wrap(err, "successor")
		}
		r.Successor = &p
	}
	if r.Guard, err = parseGuard(definedRule.Guard); err != nil {
		return r, errors.Wrap(err, "guard")
	}
	if r.Replacement, err = parseReplacement(definedRule.Replacement); err != nil {
		return r, errors.Wrap(err, "replacement")
	}
	return r, nil
}

// parseAxiom reads concrete symbols. Parameters may be constant expressions such as "1/2".
func parseAxiom(s string) ([]aristid.Symbol, error) {
	items, err := scanSymbols(s)
	if err != nil {
		return nil, err
	}

	symbols := make([]aristid.Symbol, len(items))
	for i, it := range items {
		params := make([]float64, len(it.params))
		for j, raw := range it.params {
			expr, err := parseExpression(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "position %d letter %s parameter %d", i, it.label, j)
			}
			if params[j], err = rules.EvalArith(expr, rules.Environment{}); err != nil {
				return nil, errors.Wrapf(err, "position %d letter %s parameter %d", i, it.label, j)
			}
		}
		symbols[i] = aristid.Symbol{Label: it.label, Params: params}
	}
	return symbols, nil
}

// parsePattern reads exactly one symbol whose parameters are numbers or names.
func parsePattern(s string) (rules.SymbolPattern, error) {
	items, err := scanSymbols(s)
	if err != nil {
		return rules.SymbolPattern{}, err
	}
	if len(items) != 1 {
		return rules.SymbolPattern{}, errors.Errorf("pattern %q must be a single symbol, got %d", s, len(items))
	}

	it := items[0]
	params := make([]rules.PatternParam, len(it.params))
	for i, raw := range it.params {
		expr, err := parseExpression(raw)
		if err != nil {
			return rules.SymbolPattern{}, errors.Wrapf(err, "parameter %d of %s", i, it.label)
		}
		switch e := expr.(type) {
		case rules.Const:
			params[i] = rules.Literal(e)
		case rules.Var:
			params[i] = rules.Binding(e)
		case rules.Neg:
			c, ok := e.Operand.(rules.Const)
			if !ok {
				return rules.SymbolPattern{}, errors.Errorf("parameter %d of %s: %q is neither a number nor a name", i, it.label, raw)
			}
			params[i] = rules.Literal(-c)
		default:
			return rules.SymbolPattern{}, errors.Errorf("parameter %d of %s: %q is neither a number nor a name", i, it.label, raw)
		}
	}
	return rules.SymbolPattern{Label: it.label, Params: params}, nil
}

// parseReplacement reads symbols whose parameters are expressions.
func parseReplacement(s string) ([]rules.SymbolExpression, error) {
	items, err := scanSymbols(s)
	if err != nil {
		return nil, err
	}

	out := make([]rules.SymbolExpression, len(items))
	for i, it := range items {
		params := make([]rules.ArithExpr, len(it.params))
		for j, raw := range it.params {
			if params[j], err = parseExpression(raw); err != nil {
				return nil, errors.Wrapf(err, "position %d letter %s parameter %d", i, it.label, j)
			}
		}
		out[i] = rules.SymbolExpression{Label: it.label, Params: params}
	}
	return out, nil
}
