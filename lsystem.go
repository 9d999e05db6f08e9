// Package aristid is a parallel rewriting engine for Lindenmayer systems.
//
// An LSystem holds a generation (a sequence of symbols) and a priority-ordered list of productions.
// Apply derives the next generation by rewriting every symbol simultaneously: each position
// is rewritten by the first production that applies to it, or left as is when none does.
package aristid

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultSubsectionMinimumSize = 64

var DefaultMaxWorkers = uint32(runtime.NumCPU())

// LSystem is one generation of an L-system along with its productions.
//
// An LSystem is a value: Apply never modifies it and returns the next generation instead,
// so a caller may keep every generation around.
type LSystem struct {
	symbols     []Symbol
	productions []Production
	alphabet    Alphabet

	generation uint

	subsectionMinimumSize uint32
	maxWorkers            uint32
}

// New builds generation 0 from an axiom and productions, highest priority first.
// It fails if two symbols of the axiom share a label with different arities.
func New(axiom []Symbol, productions []Production) (LSystem, error) {
	return NewWithAlphabet(Alphabet{}, axiom, productions)
}

// NewWithAlphabet is New with a set of arities known in advance, typically gathered from the grammar.
// The axiom is checked against it. The alphabet is not modified.
func NewWithAlphabet(alphabet Alphabet, axiom []Symbol, productions []Production) (LSystem, error) {
	for i, p := range productions {
		if p == nil || !hasRewrite(p) {
			return LSystem{}, errors.Errorf("production %d has no rewriting function", i)
		}
	}

	learnt, err := alphabet.Clone().learn(axiom)
	if err != nil {
		return LSystem{}, errors.Wrap(err, "invalid axiom")
	}

	return LSystem{
		symbols:               axiom,
		productions:           productions,
		alphabet:              learnt,
		subsectionMinimumSize: DefaultSubsectionMinimumSize,
		maxWorkers:            DefaultMaxWorkers,
	}, nil
}

// WithSubsectionMinimumSize returns a copy whose Apply gives at least size positions to each worker.
func (ls LSystem) WithSubsectionMinimumSize(size uint) LSystem {
	if size == 0 {
		size = 1
	}
	ls.subsectionMinimumSize = uint32(size)
	return ls
}

// WithMaxWorkers returns a copy whose Apply uses at most n goroutines.
func (ls LSystem) WithMaxWorkers(n uint) LSystem {
	if n == 0 {
		n = 1
	}
	ls.maxWorkers = uint32(n)
	return ls
}

// SubsectionMinimumSize is the minimum number of positions given to a worker.
func (ls LSystem) SubsectionMinimumSize() uint {
	return uint(ls.subsectionMinimumSize)
}

// MaxWorkers is the maximum number of goroutines used by Apply.
func (ls LSystem) MaxWorkers() uint {
	return uint(ls.maxWorkers)
}

// Symbols returns the current generation. It must not be modified.
func (ls LSystem) Symbols() Symbols {
	return ls.symbols
}

// Productions returns the productions, highest priority first. It must not be modified.
func (ls LSystem) Productions() []Production {
	return ls.productions
}

// Alphabet returns a copy of the arities known to the system.
func (ls LSystem) Alphabet() Alphabet {
	return ls.alphabet.Clone()
}

// Generation is the number of times Apply was called to get this value, 0 for the axiom.
func (ls LSystem) Generation() uint {
	return ls.generation
}

// Calculate number of splits for a given maximum of workers and minimum of subsection size
func (ls LSystem) splits() (splits uint32, size uint64, rem uint32) {
	l := uint64(len(ls.symbols))

	// The zero LSystem has no tuning
	minimum, workers := ls.subsectionMinimumSize, ls.maxWorkers
	if minimum == 0 {
		minimum = DefaultSubsectionMinimumSize
	}
	if workers == 0 {
		workers = 1
	}

	if v := l / uint64(minimum); v == 0 {
		splits = 1
	} else if v < uint64(workers) {
		splits = uint32(v)
	} else {
		splits = workers
	}

	return splits, l / uint64(splits), uint32(l % uint64(splits))
}

// step selects the replacement of the symbol at position i.
// Neighbours are always read from the current generation, never from replacements.
func (ls LSystem) step(i int) ([]Symbol, error) {
	var predecessor, successor *Symbol
	if i > 0 {
		predecessor = &ls.symbols[i-1]
	}
	if i+1 < len(ls.symbols) {
		successor = &ls.symbols[i+1]
	}
	target := ls.symbols[i]

	for _, p := range ls.productions {
		replacement, ok, err := rewrite(p, predecessor, target, successor)
		if err != nil {
			return nil, err
		}
		if ok {
			return replacement, nil
		}
	}

	// Identity
	return ls.symbols[i : i+1], nil
}

// rewriteSection computes the replacements of positions [from, to) and returns their total length.
func (ls LSystem) rewriteSection(ctx context.Context, replacements [][]Symbol, from, to int) (int, error) {
	n := 0
	for i := from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		replacement, err := ls.step(i)
		if err != nil {
			return 0, errors.Wrapf(err, "position %d (%s)", i, ls.symbols[i])
		}
		replacements[i] = replacement
		n += len(replacement)
	}
	return n, nil
}

/*
Apply derives the next generation.

	0. Split the generation into sections, one per worker
	1 (T). Select the replacement of each position of the section and sum up their lengths
	2. Create the output, and give each section its slot by prefix-sum of the section lengths
	3 (T). Copy the replacements into the slot

Every worker reads the same generation, so no position ever sees the replacement of another.
A production error stops the derivation and is returned along with the unmodified receiver.
*/
func (ls LSystem) Apply(ctx context.Context) (LSystem, error) {
	if err := ctx.Err(); err != nil {
		return ls, err
	}

	// 0. Calculate amount of splits
	splits, size, rem := ls.splits()
	bounds := make([]int, splits+1)
	for i, cursor := uint32(0), uint64(0); i < splits; i++ {
		// This subsection's size can be +1 for the rem first ones
		thisSize := size
		if i < rem {
			thisSize++
		}
		cursor += thisSize
		bounds[i+1] = int(cursor)
	}

	// 1. Select replacements
	replacements := make([][]Symbol, len(ls.symbols))
	sectionOutputSizes := make([]int, splits)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < int(splits); i++ {
		workerNumber := i
		g.Go(func() error {
			n, err := ls.rewriteSection(gctx, replacements, bounds[workerNumber], bounds[workerNumber+1])
			sectionOutputSizes[workerNumber] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return ls, err
	}

	// 2. Add up all output sizes and create output slice
	var outputSize int
	for _, s := range sectionOutputSizes {
		outputSize += s
	}
	output := make([]Symbol, outputSize)

	// 3. Distribute output slice and rewrite on it
	var wg errgroup.Group
	for i, cursor := 0, 0; i < int(splits); i++ {
		slot := output[cursor : cursor+sectionOutputSizes[i]]
		section := replacements[bounds[i]:bounds[i+1]]
		wg.Go(func() error {
			c := 0
			for _, r := range section {
				c += copy(slot[c:], r)
			}
			return nil
		})
		cursor += sectionOutputSizes[i]
	}
	_ = wg.Wait()

	alphabet, err := ls.alphabet.learn(output)
	if err != nil {
		return ls, errors.Wrapf(err, "generation %d", ls.generation+1)
	}

	next := ls
	next.symbols = output
	next.alphabet = alphabet
	next.generation++
	return next, nil
}

// ApplyN applies n times and returns every generation derived, the last one being generation Generation()+n.
func (ls LSystem) ApplyN(ctx context.Context, n uint) ([]LSystem, error) {
	history := make([]LSystem, 0, n)
	current := ls
	for i := uint(0); i < n; i++ {
		next, err := current.Apply(ctx)
		if err != nil {
			return history, err
		}
		history = append(history, next)
		current = next
	}
	return history, nil
}

// Advance applies n times and only returns the last generation.
func (ls LSystem) Advance(ctx context.Context, n uint) (LSystem, error) {
	current := ls
	for i := uint(0); i < n; i++ {
		next, err := current.Apply(ctx)
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}
