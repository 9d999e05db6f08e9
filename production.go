package aristid

// Shape identifies which neighbours of the target a production needs in order to be considered.
type Shape uint8

const (
	ShapeContextFree Shape = iota
	ShapePriorContext
	ShapeFollowingContext
	ShapeSurroundingContext
)

func (s Shape) String() string {
	switch s {
	case ShapeContextFree:
		return "context-free"
	case ShapePriorContext:
		return "prior-context"
	case ShapeFollowingContext:
		return "following-context"
	case ShapeSurroundingContext:
		return "surrounding-context"
	default:
		return "unknown"
	}
}

// RequiresPredecessor is true for the shapes that need a symbol on the left of the target.
func (s Shape) RequiresPredecessor() bool {
	return s == ShapePriorContext || s == ShapeSurroundingContext
}

// RequiresSuccessor is true for the shapes that need a symbol on the right of the target.
func (s Shape) RequiresSuccessor() bool {
	return s == ShapeFollowingContext || s == ShapeSurroundingContext
}

// A Production rewrites a target symbol given its neighbourhood.
//
// There are exactly four productions: ContextFree, PriorContext, FollowingContext and SurroundingContext.
// The interface is sealed so the engine can dispatch on them exhaustively.
//
// Each one wraps a rewriting function returning the replacement and whether it applies.
// Returning false means "does not apply here", the engine then tries the next production.
// A non-nil error is not a non-match: it aborts the whole derivation.
type Production interface {
	Shape() Shape

	production()
}

// ContextFree only looks at the target.
type ContextFree struct {
	Rewrite func(target Symbol) ([]Symbol, bool, error)
}

// PriorContext requires the symbol preceding the target.
type PriorContext struct {
	Rewrite func(predecessor, target Symbol) ([]Symbol, bool, error)
}

// FollowingContext requires the symbol following the target.
type FollowingContext struct {
	Rewrite func(target, successor Symbol) ([]Symbol, bool, error)
}

// SurroundingContext requires both neighbours of the target.
type SurroundingContext struct {
	Rewrite func(predecessor, target, successor Symbol) ([]Symbol, bool, error)
}

func (ContextFree) Shape() Shape        { return ShapeContextFree }
func (PriorContext) Shape() Shape       { return ShapePriorContext }
func (FollowingContext) Shape() Shape   { return ShapeFollowingContext }
func (SurroundingContext) Shape() Shape { return ShapeSurroundingContext }

func (ContextFree) production()        {}
func (PriorContext) production()       {}
func (FollowingContext) production()   {}
func (SurroundingContext) production() {}

// Replace builds a context-free production rewriting every symbol labelled label into a copy of replacement.
func Replace(label string, replacement ...Symbol) ContextFree {
	return ContextFree{
		Rewrite: func(target Symbol) ([]Symbol, bool, error) {
			if target.Label != label {
				return nil, false, nil
			}
			return replacement, true, nil
		},
	}
}

// rewrite runs the production against the neighbourhood of a position.
// A missing neighbour required by the shape is a non-match.
func rewrite(p Production, predecessor *Symbol, target Symbol, successor *Symbol) ([]Symbol, bool, error) {
	switch p := p.(type) {
	case ContextFree:
		return p.Rewrite(target)
	case PriorContext:
		if predecessor == nil {
			return nil, false, nil
		}
		return p.Rewrite(*predecessor, target)
	case FollowingContext:
		if successor == nil {
			return nil, false, nil
		}
		return p.Rewrite(target, *successor)
	case SurroundingContext:
		if predecessor == nil || successor == nil {
			return nil, false, nil
		}
		return p.Rewrite(*predecessor, target, *successor)
	}
	// Unreachable, Production is sealed and New refuses nil productions.
	return nil, false, nil
}

// hasRewrite reports whether the production carries a rewriting function.
func hasRewrite(p Production) bool {
	switch p := p.(type) {
	case ContextFree:
		return p.Rewrite != nil
	case PriorContext:
		return p.Rewrite != nil
	case FollowingContext:
		return p.Rewrite != nil
	case SurroundingContext:
		return p.Rewrite != nil
	}
	return false
}
