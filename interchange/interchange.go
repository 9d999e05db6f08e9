// Package interchange defines what an L-system front-end produces: an axiom and declarative rules.
package interchange

import (
	"github.com/cromo/aristid"
	"github.com/cromo/aristid/interchange/rules"
)

// Format is anything that can be imported as a Grammar.
type Format interface {
	Import() (Grammar, error)
}

// Grammar is an axiom, rules highest priority first, and how many generations to derive.
type Grammar struct {
	Axiom       []aristid.Symbol
	Rules       []rules.Rule
	Generations uint
}

// Build checks and compiles the grammar into generation 0.
func (g Grammar) Build() (aristid.LSystem, error) {
	return rules.NewSystem(g.Axiom, g.Rules)
}
