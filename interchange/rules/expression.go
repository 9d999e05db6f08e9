package rules

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cromo/aristid"
)

// ErrDivisionByZero is returned when an expression divides, or takes the modulo, by zero.
var ErrDivisionByZero = errors.New("division by zero")

// An ArithExpr is one of Const, Var, Neg or Arith.
type ArithExpr interface {
	String() string

	arithExpr()
}

// ArithOp is a binary arithmetic operator.
type ArithOp uint8

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return "?"
	}
}

type (
	// Const is a numeric constant.
	Const float64

	// Var reads the value bound to a name.
	Var string

	// Neg is the opposite of its operand.
	Neg struct {
		Operand ArithExpr
	}

	// Arith applies Op to Left and Right.
	Arith struct {
		Op          ArithOp
		Left, Right ArithExpr
	}
)

func (c Const) String() string { return strconv.FormatFloat(float64(c), 'f', -1, 64) }
func (v Var) String() string   { return string(v) }
func (n Neg) String() string   { return "-(" + n.Operand.String() + ")" }
func (a Arith) String() string {
	return "(" + a.Left.String() + " " + a.Op.String() + " " + a.Right.String() + ")"
}

func (Const) arithExpr() {}
func (Var) arithExpr()   {}
func (Neg) arithExpr()   {}
func (Arith) arithExpr() {}

// EvalArith evaluates expr against env.
// Reading an unbound name is an *UnboundVariableError, never a default value.
func EvalArith(expr ArithExpr, env Environment) (float64, error) {
	switch e := expr.(type) {
	case Const:
		return float64(e), nil
	case Var:
		return env.Get(string(e))
	case Neg:
		v, err := EvalArith(e.Operand, env)
		return -v, err
	case Arith:
		left, err := EvalArith(e.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := EvalArith(e.Right, env)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case Add:
			return left + right, nil
		case Sub:
			return left - right, nil
		case Mul:
			return left * right, nil
		case Div:
			if right == 0 {
				return 0, errors.Wrapf(ErrDivisionByZero, "%s", e)
			}
			return left / right, nil
		case Mod:
			if right == 0 {
				return 0, errors.Wrapf(ErrDivisionByZero, "%s", e)
			}
			return math.Mod(left, right), nil
		}
		return 0, errors.Errorf("unknown arithmetic operator %d", e.Op)
	case nil:
		return 0, errors.New("missing arithmetic expression")
	}
	return 0, errors.Errorf("unknown arithmetic expression %T", expr)
}

// A BooleanExpr is one of Bool, Compare, And, Or or Not.
type BooleanExpr interface {
	String() string

	booleanExpr()
}

// CompareOp is a comparison operator.
type CompareOp uint8

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

type (
	// Bool is a boolean constant.
	Bool bool

	// Compare compares two arithmetic expressions.
	Compare struct {
		Op          CompareOp
		Left, Right ArithExpr
	}

	// And is the conjunction of its operands.
	And struct {
		Left, Right BooleanExpr
	}

	// Or is the disjunction of its operands.
	Or struct {
		Left, Right BooleanExpr
	}

	// Not is the negation of its operand.
	Not struct {
		Operand BooleanExpr
	}
)

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (c Compare) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}
func (a And) String() string { return "(" + a.Left.String() + " && " + a.Right.String() + ")" }
func (o Or) String() string  { return "(" + o.Left.String() + " || " + o.Right.String() + ")" }
func (n Not) String() string { return "!(" + n.Operand.String() + ")" }

func (Bool) booleanExpr()    {}
func (Compare) booleanExpr() {}
func (And) booleanExpr()     {}
func (Or) booleanExpr()      {}
func (Not) booleanExpr()     {}

// EvalBool evaluates expr against env. A nil expression is true.
// Conjunction and disjunction short-circuit.
func EvalBool(expr BooleanExpr, env Environment) (bool, error) {
	switch e := expr.(type) {
	case nil:
		return true, nil
	case Bool:
		return bool(e), nil
	case Compare:
		left, err := EvalArith(e.Left, env)
		if err != nil {
			return false, err
		}
		right, err := EvalArith(e.Right, env)
		if err != nil {
			return false, err
		}
		switch e.Op {
		case Eq:
			return left == right, nil
		case Ne:
			return left != right, nil
		case Lt:
			return left < right, nil
		case Le:
			return left <= right, nil
		case Gt:
			return left > right, nil
		case Ge:
			return left >= right, nil
		}
		return false, errors.Errorf("unknown comparison operator %d", e.Op)
	case And:
		left, err := EvalBool(e.Left, env)
		if err != nil || !left {
			return false, err
		}
		return EvalBool(e.Right, env)
	case Or:
		left, err := EvalBool(e.Left, env)
		if err != nil || left {
			return left, err
		}
		return EvalBool(e.Right, env)
	case Not:
		v, err := EvalBool(e.Operand, env)
		return !v, err
	}
	return false, errors.Errorf("unknown boolean expression %T", expr)
}

// SymbolExpression computes a symbol: its label is fixed, its parameters are evaluated.
type SymbolExpression struct {
	Label  string
	Params []ArithExpr
}

// Produce is shorthand for building a SymbolExpression.
func Produce(label string, params ...ArithExpr) SymbolExpression {
	return SymbolExpression{Label: label, Params: params}
}

func (se SymbolExpression) String() string {
	if len(se.Params) == 0 {
		return se.Label
	}
	s := se.Label + "("
	for i, p := range se.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

// Eval builds the symbol described by se in env.
func (se SymbolExpression) Eval(env Environment) (aristid.Symbol, error) {
	params := make([]float64, len(se.Params))
	for i, p := range se.Params {
		v, err := EvalArith(p, env)
		if err != nil {
			return aristid.Symbol{}, errors.Wrapf(err, "parameter %d of %s", i, se.Label)
		}
		params[i] = v
	}
	return aristid.Symbol{Label: se.Label, Params: params}, nil
}
