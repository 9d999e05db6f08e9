// Command aristid derives the L-systems of an LSIF stream.
//
// Every document of the stream is derived for its number of generations and the last
// generation is written on its own line, in the order of the stream.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cromo/aristid/interchange/lsif"
)

const (
	sequencerQueueSize = 5
	orderInQueueSize   = 5
	outQueueSize       = 5
)

type options struct {
	input       string
	generations int
	workers     int
	history     bool
	noColor     bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "aristid",
		Short:         "Derive the L-systems of an LSIF stream",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}

			in := cmd.InOrStdin()
			if opts.input != "" && opts.input != "-" {
				f, err := os.Open(opts.input)
				if err != nil {
					return errors.Wrap(err, "Couldn't open input")
				}
				defer f.Close()
				in = f
			}

			err := listen(cmd.Context(), cmd.OutOrStdout(), in, cmd.ErrOrStderr(), opts)
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "-", "LSIF stream to read, - for stdin")
	flags.IntVarP(&opts.generations, "generations", "n", -1, "generations to derive, overriding the stream's")
	flags.IntVarP(&opts.workers, "workers", "w", 1, "L-systems derived concurrently")
	flags.BoolVar(&opts.history, "history", false, "write every generation, not only the last")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colours on stderr")
	return cmd
}

// listen decodes the stream, derives every document and writes them in order.
// A decoding error stops the stream; a derivation error is reported and returned once the stream is done.
func listen(ctx context.Context, w io.Writer, r io.Reader, ew io.Writer, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in, out := buildPipeline(ctx, opts)

	progress := color.New(color.FgGreen)
	failure := color.New(color.FgRed)

	// Signal that the pipeline is empty
	closed := make(chan error)
	go func() {
		var firstErr error
		for o := range out {
			if o.err != nil {
				failure.Fprintf(ew, "Sequence %d failed: %v\n", o.seq, o.err)
				if firstErr == nil {
					firstErr = errors.Wrapf(o.err, "sequence %d", o.seq)
				}
				continue
			}

			progress.Fprintf(ew, "Sequence %d derived (%d generations)\n", o.seq, o.generations[len(o.generations)-1].Generation())
			for _, ls := range o.generations {
				if _, err := io.WriteString(w, ls.Symbols().String()+"\n"); err != nil && firstErr == nil {
					firstErr = errors.Wrap(err, "Error in writing to out")
				}
			}
		}
		closed <- firstErr
	}()

	lsifDecoder := lsif.NewDecoder(r)
	seq := 0
	for {
		format, err := lsifDecoder.Decode()
		if err == io.EOF {
			close(in)
			break
		} else if err != nil {
			log.Fatalf("Error while decoding lsif: %v\n", err)
		}

		grammar, err := format.Import()
		if err != nil {
			log.Fatalf("Error while importing format: %v\n", err)
		}

		o := &order{seq: seq, generations: grammar.Generations}
		if opts.generations >= 0 {
			o.generations = uint(opts.generations)
		}
		o.ls, o.err = grammar.Build()
		in <- o
		seq++
	}

	return <-closed
}
