package lsif

import (
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	"github.com/cromo/aristid/interchange/rules"
)

// Expressions are lexed by govaluate, then its tokens are parsed into rules expressions:
//
//	guard   = or
//	or      = and { "||" and }
//	and     = not { "&&" and }
//	not     = "!" not | "true" | "false" | sum comparator sum | "(" or ")"
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/" | "%") unary }
//	unary   = "-" unary | number | name | "(" sum ")"
type parser struct {
	source string
	tokens []govaluate.ExpressionToken
	pos    int
}

func newParser(source string) (*parser, error) {
	evaluable, err := govaluate.NewEvaluableExpression(source)
	if err != nil {
		return nil, errors.Wrapf(err, "Error while parsing expression %q", source)
	}
	return &parser{source: source, tokens: evaluable.Tokens()}, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "expression %q", p.source)
}

func (p *parser) peek() (govaluate.ExpressionToken, bool) {
	if p.pos >= len(p.tokens) {
		return govaluate.ExpressionToken{}, false
	}
	return p.tokens[p.pos], true
}

// accept consumes the next token if it is of the given kind and, when values are given, one of them.
func (p *parser) accept(kind govaluate.TokenKind, values ...string) (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind {
		return "", false
	}
	value, _ := tok.Value.(string)
	if len(values) > 0 {
		found := false
		for _, v := range values {
			if v == value {
				found = true
				break
			}
		}
		if !found {
			return "", false
		}
	}
	p.pos++
	return value, true
}

func (p *parser) end() error {
	if tok, ok := p.peek(); ok {
		return p.errorf("unexpected %s %v", tok.Kind, tok.Value)
	}
	return nil
}

var arithOps = map[string]rules.ArithOp{
	"+": rules.Add,
	"-": rules.Sub,
	"*": rules.Mul,
	"/": rules.Div,
	"%": rules.Mod,
}

var compareOps = map[string]rules.CompareOp{
	"==": rules.Eq,
	"!=": rules.Ne,
	"<":  rules.Lt,
	"<=": rules.Le,
	">":  rules.Gt,
	">=": rules.Ge,
}

func (p *parser) sum() (rules.ArithExpr, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(govaluate.MODIFIER, "+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = rules.Arith{Op: arithOps[op], Left: left, Right: right}
	}
}

func (p *parser) product() (rules.ArithExpr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(govaluate.MODIFIER, "*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = rules.Arith{Op: arithOps[op], Left: left, Right: right}
	}
}

func (p *parser) unary() (rules.ArithExpr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}

	switch tok.Kind {
	case govaluate.PREFIX, govaluate.MODIFIER:
		if tok.Value != "-" {
			return nil, p.errorf("unsupported operator %v", tok.Value)
		}
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return rules.Neg{Operand: operand}, nil
	case govaluate.NUMERIC:
		p.pos++
		v, ok := tok.Value.(float64)
		if !ok {
			return nil, p.errorf("invalid number %v", tok.Value)
		}
		return rules.Const(v), nil
	case govaluate.VARIABLE:
		p.pos++
		return rules.Var(tok.Value.(string)), nil
	case govaluate.CLAUSE:
		p.pos++
		inner, err := p.sum()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(govaluate.CLAUSE_CLOSE); !ok {
			return nil, p.errorf("missing closing parenthesis")
		}
		return inner, nil
	}
	return nil, p.errorf("unexpected %s %v", tok.Kind, tok.Value)
}

func (p *parser) or() (rules.BooleanExpr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(govaluate.LOGICALOP, "||"); !ok {
			return left, nil
		}
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = rules.Or{Left: left, Right: right}
	}
}

func (p *parser) and() (rules.BooleanExpr, error) {
	left, err := p.not()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(govaluate.LOGICALOP, "&&"); !ok {
			return left, nil
		}
		right, err := p.not()
		if err != nil {
			return nil, err
		}
		left = rules.And{Left: left, Right: right}
	}
}

func (p *parser) not() (rules.BooleanExpr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}

	switch tok.Kind {
	case govaluate.PREFIX:
		if tok.Value == "!" {
			p.pos++
			operand, err := p.not()
			if err != nil {
				return nil, err
			}
			return rules.Not{Operand: operand}, nil
		}
	case govaluate.BOOLEAN:
		p.pos++
		return rules.Bool(tok.Value.(bool)), nil
	}

	// Either a comparison, or a parenthesised guard: try the comparison first.
	start := p.pos
	if cmp, err := p.comparison(); err == nil {
		return cmp, nil
	} else if tok.Kind != govaluate.CLAUSE {
		return nil, err
	}
	p.pos = start + 1
	inner, err := p.or()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(govaluate.CLAUSE_CLOSE); !ok {
		return nil, p.errorf("missing closing parenthesis")
	}
	return inner, nil
}

func (p *parser) comparison() (rules.BooleanExpr, error) {
	left, err := p.sum()
	if err != nil {
		return nil, err
	}
	tok, ok := p.peek()
	if !ok || tok.Kind != govaluate.COMPARATOR {
		return nil, p.errorf("expected a comparison")
	}
	op, ok := compareOps[tok.Value.(string)]
	if !ok {
		return nil, p.errorf("unsupported comparator %v", tok.Value)
	}
	p.pos++
	right, err := p.sum()
	if err != nil {
		return nil, err
	}
	return rules.Compare{Op: op, Left: left, Right: right}, nil
}

// parseExpression parses an arithmetic expression.
func parseExpression(asString string) (rules.ArithExpr, error) {
	asString = strings.TrimSpace(asString)

	// Check if possible to simplify if it just a scalar, names such as "inf" are not
	if asString != "" && strings.ContainsRune("0123456789.-+", rune(asString[0])) {
		if scalar, err := strconv.ParseFloat(asString, 64); err == nil {
			return rules.Const(scalar), nil
		}
	}

	p, err := newParser(asString)
	if err != nil {
		return nil, err
	}
	expr, err := p.sum()
	if err != nil {
		return nil, err
	}
	return expr, p.end()
}

// parseGuard parses a boolean expression. An empty guard is nil, which always holds.
func parseGuard(asString string) (rules.BooleanExpr, error) {
	asString = strings.TrimSpace(asString)
	if asString == "" {
		return nil, nil
	}

	p, err := newParser(asString)
	if err != nil {
		return nil, err
	}
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	return expr, p.end()
}
