package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/debuglog/lang"
	"github.com/ardnew/debuglog/log"
	"github.com/ardnew/debuglog/pkg"
)

// Eval evaluates expressions and logs each result as one statement.
type Eval struct {
	Exprs []string `arg:"" help:"Expressions to evaluate. Read one per line from the global sources or stdin when omitted." name:"expr" optional:""`

	Level log.Level `default:"info" help:"Severity level of the results (${levels})." short:"l"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, r *log.Router) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs := e.Exprs
	if len(exprs) == 0 {
		if exprs, err = readLines(ctx); err != nil {
			return err
		}
	}

	for _, src := range exprs {
		args, err := lang.Evaluate(src)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(slog.String("expr", src))
		}

		r.Log(e.Level, args...)
	}

	return nil
}

// readLines returns the non-blank lines of the global sources, skipping
// lines starting with '#'.
func readLines(ctx context.Context) ([]string, error) {
	src, err := openSources(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer src.Close()

	var lines []string

	scan := bufio.NewScanner(src)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines = append(lines, line)
	}

	if err := scan.Err(); err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return lines, nil
}
