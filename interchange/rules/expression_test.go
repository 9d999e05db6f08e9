package rules

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/cromo/aristid"
)

func TestEvalArith(t *testing.T) {
	env := Environment{}.Bind("x", 3).Bind("y", 4)

	tests := []struct {
		expr ArithExpr
		want float64
	}{
		{Const(2.5), 2.5},
		{Var("x"), 3},
		{Neg{Var("y")}, -4},
		{Arith{Add, Var("x"), Const(1)}, 4},
		{Arith{Sub, Var("x"), Var("y")}, -1},
		{Arith{Mul, Var("x"), Var("y")}, 12},
		{Arith{Div, Var("x"), Const(2)}, 1.5},
		{Arith{Mod, Var("y"), Var("x")}, 1},
		{Arith{Mul, Arith{Add, Var("x"), Const(1)}, Var("y")}, 16},
	}
	for _, tt := range tests {
		t.Run(tt.expr.String(), func(t *testing.T) {
			got, err := EvalArith(tt.expr, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalArith_Errors(t *testing.T) {
	env := Environment{}.Bind("x", 3)

	_, err := EvalArith(Arith{Add, Var("x"), Var("z")}, env)
	if errors.Cause(err) != aristid.ErrUnboundVariable {
		t.Errorf("got %v, want %v", err, aristid.ErrUnboundVariable)
	}
	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) || unbound.Name != "z" {
		t.Errorf("got %v, want an unbound z", err)
	}

	_, err = EvalArith(Arith{Div, Var("x"), Const(0)}, env)
	if errors.Cause(err) != ErrDivisionByZero {
		t.Errorf("got %v, want %v", err, ErrDivisionByZero)
	}
}

func TestEvalBool(t *testing.T) {
	env := Environment{}.Bind("x", 0).Bind("y", 2)

	tests := []struct {
		expr BooleanExpr
		want bool
	}{
		{nil, true},
		{Bool(false), false},
		{Compare{Eq, Var("x"), Const(0)}, true},
		{Compare{Ne, Var("x"), Const(0)}, false},
		{Compare{Lt, Var("x"), Var("y")}, true},
		{Compare{Le, Var("y"), Const(2)}, true},
		{Compare{Gt, Var("x"), Var("y")}, false},
		{Compare{Ge, Var("y"), Const(3)}, false},
		{And{Bool(true), Compare{Eq, Var("y"), Const(2)}}, true},
		{Or{Bool(false), Bool(false)}, false},
		{Not{Bool(false)}, true},
		// Short-circuit: the unbound right operand is never evaluated.
		{And{Bool(false), Compare{Eq, Var("z"), Const(0)}}, false},
		{Or{Bool(true), Compare{Eq, Var("z"), Const(0)}}, true},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.expr != nil {
			name = tt.expr.String()
		}
		t.Run(name, func(t *testing.T) {
			got, err := EvalBool(tt.expr, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := EvalBool(Compare{Eq, Var("z"), Const(0)}, env); !errors.Is(err, aristid.ErrUnboundVariable) {
		t.Errorf("got %v, want %v", err, aristid.ErrUnboundVariable)
	}
}

func TestSymbolExpression_Eval(t *testing.T) {
	env := Environment{}.Bind("y", 2)

	got, err := Produce("A", Const(1), Arith{Add, Var("y"), Const(1)}).Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	if want := aristid.NewSymbol("A", 1, 3); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	if _, err := Produce("A", Var("w")).Eval(env); !errors.Is(err, aristid.ErrUnboundVariable) {
		t.Errorf("got %v, want %v", err, aristid.ErrUnboundVariable)
	}
}
