package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/debuglog/lang"
	"github.com/ardnew/debuglog/log"
)

// Assert evaluates a boolean expression and halts when it is false.
//
// The location flags let scripts report their own position, for example:
//
//	debuglog assert --file "$0" --line "$LINENO" 'env("HOME") != ""'
type Assert struct {
	Expr    string   `arg:"" help:"Boolean expression."`
	Message []string `arg:"" help:"Message appended to the assertion line." optional:""`

	File string `default:"-" help:"Source file reported on failure."`
	Line int    `default:"0" help:"Source line reported on failure."`
	Func string `default:"-" help:"Function reported on failure."`
}

// Run executes the assert command. A failed assertion does not return.
func (a *Assert) Run(ctx context.Context, r *log.Router) error {
	p, err := lang.Compile(a.Expr, lang.AsBool())
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.String("expr", a.Expr))
	}

	ok, err := p.Test()
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.String("expr", a.Expr))
	}

	r.AssertAt(
		ok,
		log.Location{File: a.File, Line: a.Line, Func: a.Func},
		p.Source(),
		lang.ParseWords(a.Message...)...,
	)

	return nil
}
