// Package rules compiles parametric, guarded L-system rules into aristid productions.
//
// A Rule matches a target symbol, and optionally its predecessor and successor, against
// patterns whose parameters are literals or names. The names bound while matching are
// then available to the guard and to the expressions computing the replacement.
package rules

import (
	"github.com/pkg/errors"

	"github.com/cromo/aristid"
)

// A Rule is a declarative production.
//
//	Predecessor < Target > Successor : Guard -> Replacement
//
// Predecessor, Successor and Guard are optional.
type Rule struct {
	Predecessor *SymbolPattern
	Target      SymbolPattern
	Successor   *SymbolPattern
	Guard       BooleanExpr
	Replacement []SymbolExpression
}

func (r Rule) String() string {
	s := r.Target.String()
	if r.Predecessor != nil {
		s = r.Predecessor.String() + " < " + s
	}
	if r.Successor != nil {
		s += " > " + r.Successor.String()
	}
	if r.Guard != nil {
		s += " : " + r.Guard.String()
	}
	s += " ->"
	for _, se := range r.Replacement {
		s += " " + se.String()
	}
	return s
}

// Shape is the production shape the rule compiles to.
func (r Rule) Shape() aristid.Shape {
	switch {
	case r.Predecessor != nil && r.Successor != nil:
		return aristid.ShapeSurroundingContext
	case r.Predecessor != nil:
		return aristid.ShapePriorContext
	case r.Successor != nil:
		return aristid.ShapeFollowingContext
	default:
		return aristid.ShapeContextFree
	}
}

// Compiled is a Rule ready to be run by the engine.
type Compiled struct {
	rule Rule
}

// Compile checks the structure of r and compiles it.
func Compile(r Rule) (*Compiled, error) {
	patterns := []*SymbolPattern{r.Predecessor, &r.Target, r.Successor}
	for _, p := range patterns {
		if p == nil {
			continue
		}
		if p.Label == "" {
			return nil, errors.Errorf("pattern %s has no label", p)
		}
		for i, param := range p.Params {
			if param == nil {
				return nil, errors.Errorf("pattern %s: parameter %d is missing", p.Label, i)
			}
		}
	}
	for _, se := range r.Replacement {
		if se.Label == "" {
			return nil, errors.New("replacement symbol has no label")
		}
		for i, param := range se.Params {
			if param == nil {
				return nil, errors.Errorf("replacement %s: parameter %d is missing", se.Label, i)
			}
		}
	}
	return &Compiled{rule: r}, nil
}

// CompileAll compiles every rule into a production, keeping their order.
func CompileAll(rules []Rule) ([]aristid.Production, error) {
	productions := make([]aristid.Production, len(rules))
	for i, r := range rules {
		c, err := Compile(r)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		productions[i] = c.Production()
	}
	return productions, nil
}

// Rule returns the rule that was compiled.
func (c *Compiled) Rule() Rule {
	return c.rule
}

// Production returns the production of the rule's shape, running c.
func (c *Compiled) Production() aristid.Production {
	switch c.rule.Shape() {
	case aristid.ShapePriorContext:
		return aristid.PriorContext{Rewrite: c.rewritePrior}
	case aristid.ShapeFollowingContext:
		return aristid.FollowingContext{Rewrite: c.rewriteFollowing}
	case aristid.ShapeSurroundingContext:
		return aristid.SurroundingContext{Rewrite: c.rewriteSurrounding}
	default:
		return aristid.ContextFree{Rewrite: c.rewriteContextFree}
	}
}

func (c *Compiled) rewriteContextFree(target aristid.Symbol) ([]aristid.Symbol, bool, error) {
	return c.Rewrite(nil, target, nil)
}

func (c *Compiled) rewritePrior(predecessor, target aristid.Symbol) ([]aristid.Symbol, bool, error) {
	return c.Rewrite(&predecessor, target, nil)
}

func (c *Compiled) rewriteFollowing(target, successor aristid.Symbol) ([]aristid.Symbol, bool, error) {
	return c.Rewrite(nil, target, &successor)
}

func (c *Compiled) rewriteSurrounding(predecessor, target, successor aristid.Symbol) ([]aristid.Symbol, bool, error) {
	return c.Rewrite(&predecessor, target, &successor)
}

// Bind matches the neighbourhood, predecessor then target then successor,
// threading the environment through so a name bound early must agree later on.
// A pattern without its neighbour, or a neighbour without its pattern, follows the rule's shape:
// a missing required neighbour fails, an extra neighbour is ignored.
func (c *Compiled) Bind(predecessor *aristid.Symbol, target aristid.Symbol, successor *aristid.Symbol) (Environment, bool) {
	env := Environment{}
	ok := true

	if c.rule.Predecessor != nil {
		if predecessor == nil {
			return env, false
		}
		if env, ok = Match(*c.rule.Predecessor, *predecessor, env); !ok {
			return env, false
		}
	}

	if env, ok = Match(c.rule.Target, target, env); !ok {
		return env, false
	}

	if c.rule.Successor != nil {
		if successor == nil {
			return env, false
		}
		if env, ok = Match(*c.rule.Successor, *successor, env); !ok {
			return env, false
		}
	}

	return env, true
}

// Rewrite runs the rule on a neighbourhood.
// A pattern mismatch or a false guard is a non-match; an evaluation failure is an error.
func (c *Compiled) Rewrite(predecessor *aristid.Symbol, target aristid.Symbol, successor *aristid.Symbol) ([]aristid.Symbol, bool, error) {
	env, ok := c.Bind(predecessor, target, successor)
	if !ok {
		return nil, false, nil
	}

	holds, err := EvalBool(c.rule.Guard, env)
	if err != nil {
		return nil, false, errors.Wrapf(err, "guard of %s", c.rule)
	}
	if !holds {
		return nil, false, nil
	}

	out := make([]aristid.Symbol, len(c.rule.Replacement))
	for i, se := range c.rule.Replacement {
		if out[i], err = se.Eval(env); err != nil {
			return nil, false, errors.Wrapf(err, "replacement of %s", c.rule)
		}
	}
	return out, true, nil
}
