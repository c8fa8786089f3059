package cmd

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/debuglog/format"
	"github.com/ardnew/debuglog/lang"
	"github.com/ardnew/debuglog/log"
	"github.com/ardnew/debuglog/pkg"
)

// Emit logs its arguments as one statement at the given level.
type Emit struct {
	Level log.Level `arg:"" help:"Severity level (${levels})."`

	Args []string `arg:"" help:"Statement arguments. Numeric words are logged as numbers." optional:""`

	Base      string `default:"dec" enum:"dec,hex,oct,bin" help:"Integer base of the statement."              short:"b"`
	Precision int    `default:"2"                         help:"Floating-point precision of the statement." short:"p"`
	Raw       bool   `                                    help:"Log every word as a string."                short:"r"`
}

// Run executes the emit command.
func (e *Emit) Run(ctx context.Context, r *log.Router) error {
	args, err := statement(e.Base, e.Precision, e.Raw, e.Args)
	if err != nil {
		return err
	}

	r.Log(e.Level, args...)

	return nil
}

// statement builds the argument list of a command-line statement. The base
// and precision pseudo-values are only prepended when they differ from the
// defaults, leaving the router's pinned state alone otherwise.
func statement(base string, prec int, raw bool, words []string) ([]any, error) {
	b, err := format.ParseBase(base)
	if err != nil {
		return nil, ErrArgument.Wrap(err).With(slog.String("base", base))
	}

	args := make([]any, 0, len(words)+2)

	if b != format.DefaultBase {
		args = append(args, b)
	}

	if p := format.Precision(prec); p != format.DefaultPrecision {
		args = append(args, p)
	}

	if raw {
		return append(args, slices.Collect(pkg.AnyValues(words...))...), nil
	}

	return append(args, lang.ParseWords(words...)...), nil
}
