package cli

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/debuglog/log"
)

// haltCode is the exit status of a process halted by a failed assertion.
const haltCode = 134

// primaryLevel configures the primary sink threshold of the default router
// as a side effect of parsing via encoding.TextUnmarshaler.
type primaryLevel log.Level

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the router early enough to affect error messages during parsing.
func (l *primaryLevel) UnmarshalText(text []byte) error {
	var v log.Level
	if err := v.UnmarshalText(text); err != nil {
		return err
	}

	*l = primaryLevel(v)
	log.SetLevel(v)

	return nil
}

func (l primaryLevel) String() string { return log.Level(l).String() }

// fileLevel is the file sink counterpart of primaryLevel.
type fileLevel log.Level

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *fileLevel) UnmarshalText(text []byte) error {
	var v log.Level
	if err := v.UnmarshalText(text); err != nil {
		return err
	}

	*l = fileLevel(v)
	log.SetFileLevel(v)

	return nil
}

func (l fileLevel) String() string { return log.Level(l).String() }

type logConfig struct {
	Level     primaryLevel `default:"${logLevel}"     help:"Primary sink threshold (${levels})."                          placeholder:"LEVEL"`
	FileLevel fileLevel    `default:"${logFileLevel}" help:"File sink threshold (${levels})."                             placeholder:"LEVEL"`
	File      string       `                          help:"Append file sink output to PATH."                             placeholder:"PATH" type:"path"`
	AutoFlush bool         `default:"true"            help:"Flush the file sink after every write."                                          negatable:""`
	Delimiter string       `default:"${logDelimiter}" help:"Separator written between arguments."`
	Color     bool         `default:"${logColor}"     help:"Wrap primary sink output in color tags."                                         negatable:""`
	BaseReset bool         `default:"${logBaseReset}" help:"Restore decimal base and default precision after every statement." negatable:""`
}

// vars exposes the default router's configuration, which already includes
// the environment, as flag defaults.
func (*logConfig) vars() kong.Vars {
	r := log.Default()

	return kong.Vars{
		"levels":       strings.Join(slices.Collect(log.Levels()), ", "),
		"logLevel":     r.Level().String(),
		"logFileLevel": r.FileLevel().String(),
		"logDelimiter": r.Delimiter(),
		"logColor":     strconv.FormatBool(r.Color()),
		"logBaseReset": strconv.FormatBool(r.BaseReset()),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies every parsed flag to the default router and attaches the file
// sink, if any. The returned function detaches and closes it.
func (f *logConfig) start(ctx context.Context) (stop func(), err error) {
	opts := []log.Option{
		log.WithLevel(log.Level(f.Level)),
		log.WithFileLevel(log.Level(f.FileLevel)),
		log.WithDelimiter(f.Delimiter),
		log.WithColor(f.Color),
		log.WithBaseReset(f.BaseReset),
		log.WithHalt(log.HaltExit(haltCode)),
	}

	stop = func() {}

	if f.File != "" {
		sink, err := log.OpenFile(f.File)
		if err != nil {
			return stop, err
		}

		opts = append(opts, log.WithFile(sink, f.AutoFlush))

		stop = func() {
			log.DetachFile()

			if err := sink.Close(); err != nil {
				Diagnostics().WarnContext(ctx, "close file sink",
					slog.String("path", sink.Name()),
					slog.Any("error", err),
				)
			}
		}
	}

	log.Config(opts...)

	Diagnostics().DebugContext(ctx, "router initialized",
		slog.String("level", f.Level.String()),
		slog.String("file-level", f.FileLevel.String()),
		slog.String("file", f.File),
		slog.Bool("auto-flush", f.AutoFlush),
		slog.Bool("color", f.Color),
		slog.Bool("base-reset", f.BaseReset),
	)

	return stop, nil
}

// scan performs an early pass over command-line arguments to extract and
// apply router configuration before Kong begins parsing. This ensures the
// diagnostics are configured properly regardless of flag position on the
// command line.
//
// The level types implement encoding.TextUnmarshaler to configure the router
// as flags are encountered during parsing, but boolean flags like --log-color
// don't go through that interface.
func (f *logConfig) scan(args []string) {
	const (
		logPrefix   = "--log-"
		noLogPrefix = "--no-log-"
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		if !strings.HasPrefix(arg, logPrefix) && !strings.HasPrefix(arg, noLogPrefix) {
			continue
		}

		name, value, assigned := strings.Cut(arg, "=")

		// Non-boolean flags consume the next arg as value if not assigned.
		next := func() string {
			if !assigned && i+1 < len(args) && args[i+1] != "" && args[i+1][0] != '-' {
				i++

				return args[i]
			}

			return value
		}

		// Boolean flags only parse a value if explicitly assigned with =.
		flag := func(negated bool) (bool, bool) {
			if !assigned {
				return !negated, true
			}

			v, err := strconv.ParseBool(value)
			if err != nil {
				return false, false
			}

			return v != negated, true
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-file-level":
			_ = f.FileLevel.UnmarshalText([]byte(next()))

		case "--log-delimiter":
			f.Delimiter = next()
			log.SetDelimiter(f.Delimiter)

		case "--log-color", "--no-log-color":
			if v, ok := flag(name == "--no-log-color"); ok {
				f.Color = v
				log.Default().SetColor(v)
			}

		case "--log-base-reset", "--no-log-base-reset":
			if v, ok := flag(name == "--no-log-base-reset"); ok {
				f.BaseReset = v
				log.SetBaseReset(v)
			}
		}
	}
}

// Diagnostics returns the logger used for the tool's own messages. It writes
// to standard error with the default router's current configuration.
func Diagnostics() *slog.Logger {
	return slog.New(log.NewHandler(log.Default().Wrap(
		log.WithPrimary(log.WriterSink(os.Stderr)),
		log.WithFile(nil, false),
	)))
}
