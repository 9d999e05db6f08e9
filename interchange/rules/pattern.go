package rules

import (
	"strconv"
	"strings"

	"github.com/cromo/aristid"
)

// A PatternParam is either a Literal or a Binding.
type PatternParam interface {
	String() string

	patternParam()
}

// Literal matches a parameter equal to its value.
type Literal float64

// Binding binds the parameter to a name, or matches it against the value already bound to that name.
type Binding string

func (l Literal) String() string { return strconv.FormatFloat(float64(l), 'f', -1, 64) }
func (b Binding) String() string { return string(b) }

func (Literal) patternParam() {}
func (Binding) patternParam() {}

// SymbolPattern matches symbols with the same label and arity whose parameters agree with Params.
type SymbolPattern struct {
	Label  string
	Params []PatternParam
}

// Pattern is shorthand for building a SymbolPattern.
func Pattern(label string, params ...PatternParam) SymbolPattern {
	return SymbolPattern{Label: label, Params: params}
}

func (p SymbolPattern) String() string {
	if len(p.Params) == 0 {
		return p.Label
	}
	parts := make([]string, len(p.Params))
	for i, param := range p.Params {
		parts[i] = param.String()
	}
	return p.Label + "(" + strings.Join(parts, ", ") + ")"
}

// Match matches symbol against pattern, extending env with the bindings it introduces.
//
// It fails on a different label, a different arity, a literal that differs from the parameter,
// or a name already bound to another value. On failure the returned environment is env.
func Match(pattern SymbolPattern, symbol aristid.Symbol, env Environment) (Environment, bool) {
	if pattern.Label != symbol.Label || len(pattern.Params) != len(symbol.Params) {
		return env, false
	}

	extended := env
	for i, p := range pattern.Params {
		v := symbol.Params[i]
		switch p := p.(type) {
		case Literal:
			if float64(p) != v {
				return env, false
			}
		case Binding:
			if bound, ok := extended.Lookup(string(p)); ok {
				if bound != v {
					return env, false
				}
				continue
			}
			extended = extended.Bind(string(p), v)
		default:
			return env, false
		}
	}
	return extended, true
}
