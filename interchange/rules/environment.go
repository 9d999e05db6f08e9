package rules

import "github.com/cromo/aristid"

// Environment maps the names bound by patterns to their values during one match attempt.
//
// It is persistent: Bind returns a new Environment and leaves the receiver untouched,
// so a failed match never leaks bindings into the next attempt. The zero value is empty.
type Environment struct {
	head *binding
	size int
}

type binding struct {
	name  string
	value float64
	next  *binding
}

// Lookup returns the value bound to name.
func (env Environment) Lookup(name string) (float64, bool) {
	for b := env.head; b != nil; b = b.next {
		if b.name == name {
			return b.value, true
		}
	}
	return 0, false
}

// Get is Lookup reporting an *UnboundVariableError when name is not bound.
func (env Environment) Get(name string) (float64, error) {
	if v, ok := env.Lookup(name); ok {
		return v, nil
	}
	return 0, &UnboundVariableError{Name: name}
}

// Bind returns env extended with name bound to value.
// It does not check whether name is already bound, see Match for that.
func (env Environment) Bind(name string, value float64) Environment {
	return Environment{
		head: &binding{name: name, value: value, next: env.head},
		size: env.size + 1,
	}
}

// Len is the number of bindings.
func (env Environment) Len() int {
	return env.size
}

// Names returns the bound names, most recent first.
func (env Environment) Names() []string {
	names := make([]string, 0, env.size)
	for b := env.head; b != nil; b = b.next {
		names = append(names, b.name)
	}
	return names
}

// UnboundVariableError is returned when an expression reads a name that no pattern bound.
// It is a defect of the grammar, not a non-match.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return aristid.ErrUnboundVariable.Error() + " " + e.Name
}

// Cause allows errors.Cause to unwrap to aristid.ErrUnboundVariable.
func (e *UnboundVariableError) Cause() error {
	return aristid.ErrUnboundVariable
}

// Unwrap allows errors.Is to match aristid.ErrUnboundVariable.
func (e *UnboundVariableError) Unwrap() error {
	return aristid.ErrUnboundVariable
}
