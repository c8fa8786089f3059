package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/debuglog/log"
	"github.com/ardnew/debuglog/pkg"
)

// Fmt decodes YAML or JSON documents and renders each one as a statement.
type Fmt struct {
	Source []string `arg:"" help:"Source input file(s) or '-' for stdin. Defaults to the global sources." optional:""`

	Level string `default:"" enum:",none,error,warn,info,debug,trace" help:"Log each document at this level instead of printing it." short:"l"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context, r *log.Router) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := openSources(ctx, f.Source)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, src.Close()) }()

	emit := r.Println

	if f.Level != "" {
		var level log.Level
		if err := level.UnmarshalText([]byte(f.Level)); err != nil {
			return ErrArgument.Wrap(err).With(slog.String("level", f.Level))
		}

		emit = func(args ...any) { r.Log(level, args...) }
	}

	return decodeEach(ctx, src, func(doc any) { emit(doc) })
}

// decodeEach decodes every document in src, preserving mapping order, and
// passes each to fn.
func decodeEach(ctx context.Context, src io.Reader, fn func(any)) error {
	dec := yaml.NewDecoder(src, yaml.UseOrderedMap())

	for n := 0; ; n++ {
		if err := context.Cause(ctx); err != nil {
			return err
		}

		var doc any

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return ErrDecode.
				Wrap(pkg.ErrDecode.Wrap(err)).
				With(slog.Int("document", n))
		}

		fn(doc)
	}
}
