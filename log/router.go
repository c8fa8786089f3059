package log

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardnew/debuglog/format"
)

// Router formats variadic argument lists and routes the resulting lines to a
// primary sink and an optional file sink, each with its own threshold.
//
// A Router is not safe for concurrent use. It assumes a single producer;
// callers that log from several goroutines must serialize access themselves
// or log through [NewHandler].
type Router struct {
	config
	printer format.Printer
}

// New creates a [Router] with the default configuration, overridden by any
// provided options.
func New(opts ...Option) *Router {
	return &Router{
		config:  makeConfig(opts...),
		printer: *format.NewPrinter(),
	}
}

// Config applies the given options to the router.
func (r *Router) Config(opts ...Option) {
	r.config = apply(r.config, opts...)
}

// Wrap returns a new [Router] with a copy of the receiver's configuration and
// formatting state, overridden by any provided options.
// Sinks are shared with the receiver.
func (r *Router) Wrap(opts ...Option) *Router {
	return &Router{
		config:  apply(r.config, opts...),
		printer: r.printer,
	}
}

// Enabled reports whether a message at level would reach any sink.
func (r *Router) Enabled(level Level) bool {
	return r.level.Admits(level) ||
		(r.file != nil && r.fileLevel.Admits(level))
}

// Log writes args at the given level.
//
// The primary sink receives the line if level passes its threshold: the color
// tag (when colors are enabled), the level header, the delimiter-joined
// arguments, the clear tag and a newline. The file sink, when attached,
// independently receives the header, arguments and newline if level passes
// its own threshold, and is flushed when auto-flush is enabled.
func (r *Router) Log(level Level, args ...any) {
	primary := r.level.Admits(level)
	file := r.file != nil && r.fileLevel.Admits(level)

	if !primary && !file {
		return
	}

	defer r.finish()

	body := r.render(args...)
	header := r.headers.get(level)

	if primary {
		var sb strings.Builder

		if r.color {
			sb.WriteString(r.colorTags.get(level))
		}

		sb.WriteString(header)
		sb.WriteString(body)

		if r.color {
			sb.WriteString(r.clearTag)
		}

		sb.WriteByte('\n')
		r.writePrimary(sb.String())
	}

	if file {
		r.writeFile(header + body + "\n")
	}
}

// Logf formats according to a format specifier and logs the result as a
// single argument at the given level.
func (r *Router) Logf(level Level, layout string, args ...any) {
	if !r.Enabled(level) {
		return
	}

	r.Log(level, fmt.Sprintf(layout, args...))
}

// Error logs args at [LevelError].
func (r *Router) Error(args ...any) { r.Log(LevelError, args...) }

// Warn logs args at [LevelWarn].
func (r *Router) Warn(args ...any) { r.Log(LevelWarn, args...) }

// Info logs args at [LevelInfo].
func (r *Router) Info(args ...any) { r.Log(LevelInfo, args...) }

// Debug logs args at [LevelDebug].
func (r *Router) Debug(args ...any) { r.Log(LevelDebug, args...) }

// Trace logs args at [LevelTrace].
func (r *Router) Trace(args ...any) { r.Log(LevelTrace, args...) }

// Print writes the delimiter-joined args to the primary sink with no header,
// color or threshold check.
func (r *Router) Print(args ...any) {
	defer r.finish()

	r.writePrimary(r.render(args...))
}

// Println is like [Router.Print] followed by a newline.
func (r *Router) Println(args ...any) {
	defer r.finish()

	r.writePrimary(r.render(args...) + "\n")
}

// PrintFile writes the delimiter-joined args to the file sink with no header
// or threshold check. It does nothing when no file sink is attached.
func (r *Router) PrintFile(args ...any) {
	if r.file == nil {
		return
	}

	defer r.finish()

	r.writeFile(r.render(args...))
}

// PrintlnFile is like [Router.PrintFile] followed by a newline.
func (r *Router) PrintlnFile(args ...any) {
	if r.file == nil {
		return
	}

	defer r.finish()

	r.writeFile(r.render(args...) + "\n")
}

// Level returns the primary sink threshold.
func (r *Router) Level() Level { return r.level }

// SetLevel sets the primary sink threshold.
func (r *Router) SetLevel(level Level) { r.Config(WithLevel(level)) }

// FileLevel returns the file sink threshold.
func (r *Router) FileLevel() Level { return r.fileLevel }

// SetFileLevel sets the file sink threshold.
func (r *Router) SetFileLevel(level Level) { r.Config(WithFileLevel(level)) }

// Delimiter returns the text written between consecutive arguments.
func (r *Router) Delimiter() string { return r.delimiter }

// SetDelimiter sets the text written between consecutive arguments.
func (r *Router) SetDelimiter(delim string) { r.Config(WithDelimiter(delim)) }

// BaseReset reports whether formatting state is reset after every statement.
func (r *Router) BaseReset() bool { return r.baseReset }

// SetBaseReset sets whether formatting state is reset after every statement.
func (r *Router) SetBaseReset(enable bool) { r.Config(WithBaseReset(enable)) }

// Color reports whether primary sink lines are colorized.
func (r *Router) Color() bool { return r.color }

// SetColor sets whether primary sink lines are colorized.
func (r *Router) SetColor(enable bool) { r.Config(WithColor(enable)) }

// Header returns the header of the given level, or "" for unknown levels.
func (r *Router) Header(level Level) string { return r.headers.get(level) }

// SetHeader sets the header of the given level.
func (r *Router) SetHeader(level Level, header string) {
	r.Config(WithHeader(level, header))
}

// ColorTag returns the color tag of the given level, or "" for unknown levels.
func (r *Router) ColorTag(level Level) string { return r.colorTags.get(level) }

// SetColorTag sets the color tag of the given level.
func (r *Router) SetColorTag(level Level, tag string) {
	r.Config(WithColorTag(level, tag))
}

// State returns the current formatting state.
func (r *Router) State() format.State { return r.printer.State }

// ResetState restores the default formatting state regardless of the
// base-reset policy.
func (r *Router) ResetState() { r.printer.Reset() }

// AttachPrimary replaces the primary sink.
func (r *Router) AttachPrimary(s Sink) { r.Config(WithPrimary(s)) }

// AttachFile attaches the file sink.
func (r *Router) AttachFile(s Sink, autoFlush bool) {
	r.Config(WithFile(s, autoFlush))
}

// DetachFile detaches the file sink and returns it, or nil if none was
// attached. The sink is not flushed or closed.
func (r *Router) DetachFile() Sink {
	s := r.file
	r.file = nil

	return s
}

// HasFile reports whether a file sink is attached.
func (r *Router) HasFile() bool { return r.file != nil }

// Flush flushes both sinks.
func (r *Router) Flush() error {
	var errs []error

	if r.file != nil {
		errs = append(errs, r.file.Flush())
	}

	if r.primary != nil {
		errs = append(errs, r.primary.Flush())
	}

	return errors.Join(errs...)
}

func (r *Router) render(args ...any) string {
	var sb strings.Builder

	r.printer.Join(&sb, r.delimiter, args...)

	return sb.String()
}

// finish applies the reset policy at the end of a statement.
func (r *Router) finish() {
	if r.baseReset {
		r.printer.Reset()
	}
}

func (r *Router) writePrimary(s string) {
	if s == "" || r.primary == nil {
		return
	}

	_, _ = r.primary.Write([]byte(s))
}

func (r *Router) writeFile(s string) {
	if s != "" {
		_, _ = r.file.Write([]byte(s))
	}

	if r.autoFlush {
		_ = r.file.Flush()
	}
}
