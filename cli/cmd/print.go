package cmd

import (
	"context"

	"github.com/ardnew/debuglog/log"
)

// Print writes its arguments without header, color or level check.
type Print struct {
	Args []string `arg:"" help:"Statement arguments. Numeric words are printed as numbers." optional:""`

	Base      string `default:"dec" enum:"dec,hex,oct,bin" help:"Integer base of the statement."              short:"b"`
	Precision int    `default:"2"                         help:"Floating-point precision of the statement." short:"p"`
	Raw       bool   `                                    help:"Print every word as a string."              short:"r"`
	Newline   bool   `default:"true"                      help:"Terminate the statement with a newline."    negatable:""`
	File      bool   `                                    help:"Write to the file sink instead of the primary sink."`
}

// Run executes the print command.
func (p *Print) Run(ctx context.Context, r *log.Router) error {
	args, err := statement(p.Base, p.Precision, p.Raw, p.Args)
	if err != nil {
		return err
	}

	switch {
	case p.File && p.Newline:
		r.PrintlnFile(args...)
	case p.File:
		r.PrintFile(args...)
	case p.Newline:
		r.Println(args...)
	default:
		r.Print(args...)
	}

	return nil
}
