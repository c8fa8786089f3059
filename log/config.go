package log

import (
	"github.com/valyala/fasttemplate"
)

// DefaultDelimiter is written between consecutive arguments of a statement.
const DefaultDelimiter = " "

// DefaultBaseReset is the default setting for restoring the numeric base and
// precision at the end of every statement.
const DefaultBaseReset = true

// DefaultColor is the default setting for colorizing primary sink output.
const DefaultColor = false

// DefaultAutoFlush is the default setting for flushing the file sink after
// every write.
const DefaultAutoFlush = true

// DefaultAssertTemplate is the layout of the line emitted by a failed
// assertion. The tags {file}, {line}, {func} and {expr} are substituted.
const DefaultAssertTemplate = "[ASSERT] {file} {line} {func} : {expr}"

// config holds the configuration options for a Router.
type config struct {
	primary   Sink
	file      Sink
	halt      func()
	assert    *fasttemplate.Template
	delimiter string
	clearTag  string
	headers   table
	colorTags table
	level     Level
	fileLevel Level
	baseReset bool
	color     bool
	autoFlush bool
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(opts ...Option) config {
	return apply(apply(config{}, WithDefaults()), opts...)
}

// WithDefaults returns a functional option that restores the default
// configuration: console primary sink, no file sink, [DefaultLevel],
// [DefaultFileLevel], [DefaultDelimiter], base reset enabled, colors
// disabled, and the default headers, color tags and assertion layout.
func WithDefaults() Option {
	return func(config) config {
		return config{
			primary:   Console(),
			halt:      haltForever,
			assert:    mustTemplate(DefaultAssertTemplate),
			delimiter: DefaultDelimiter,
			clearTag:  DefaultClearTag,
			headers:   defaultHeaders(),
			colorTags: defaultColorTags(),
			level:     DefaultLevel,
			fileLevel: DefaultFileLevel,
			baseReset: DefaultBaseReset,
			color:     DefaultColor,
			autoFlush: DefaultAutoFlush,
		}
	}
}

// WithLevel returns a functional option that sets the primary sink threshold.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFileLevel returns a functional option that sets the file sink threshold.
func WithFileLevel(level Level) Option {
	return func(c config) config {
		c.fileLevel = level

		return c
	}
}

// WithDelimiter returns a functional option that sets the text written
// between consecutive arguments. An empty delimiter is allowed.
func WithDelimiter(delim string) Option {
	return func(c config) config {
		c.delimiter = delim

		return c
	}
}

// WithBaseReset returns a functional option that controls whether the numeric
// base and precision are restored to their defaults after every statement.
// When disabled, a base selected in one statement stays in effect for the
// following ones.
func WithBaseReset(enable bool) Option {
	return func(c config) config {
		c.baseReset = enable

		return c
	}
}

// WithColor returns a functional option that controls whether leveled lines
// on the primary sink are wrapped in color tags.
func WithColor(enable bool) Option {
	return func(c config) config {
		c.color = enable

		return c
	}
}

// WithHeader returns a functional option that sets the header written before
// the arguments of a message at the given level.
func WithHeader(level Level, header string) Option {
	return func(c config) config {
		c.headers.set(level, header)

		return c
	}
}

// WithColorTag returns a functional option that sets the color tag written
// before a message at the given level when colors are enabled.
func WithColorTag(level Level, tag string) Option {
	return func(c config) config {
		c.colorTags.set(level, tag)

		return c
	}
}

// WithClearTag returns a functional option that sets the tag written at the
// end of a colorized line.
func WithClearTag(tag string) Option {
	return func(c config) config {
		c.clearTag = tag

		return c
	}
}

// WithPrimary returns a functional option that sets the primary sink.
// A nil sink discards output.
func WithPrimary(s Sink) Option {
	return func(c config) config {
		if s == nil {
			s = Discard()
		}

		c.primary = s

		return c
	}
}

// WithFile returns a functional option that attaches the file sink.
// A nil sink detaches it. When autoFlush is set the sink is flushed after
// every write.
func WithFile(s Sink, autoFlush bool) Option {
	return func(c config) config {
		c.file = s
		c.autoFlush = autoFlush

		return c
	}
}

// WithHalt returns a functional option that sets the function invoked after a
// failed assertion has been reported. It should not return; if it does, the
// calling goroutine is blocked forever anyway.
// A nil function restores the default, which blocks forever.
func WithHalt(halt func()) Option {
	return func(c config) config {
		if halt == nil {
			halt = haltForever
		}

		c.halt = halt

		return c
	}
}

// WithAssertTemplate returns a functional option that sets the layout of the
// line emitted by a failed assertion. See [DefaultAssertTemplate] for the
// recognized tags. An unparsable layout leaves the current one in place.
func WithAssertTemplate(layout string) Option {
	return func(c config) config {
		t, err := fasttemplate.NewTemplate(layout, "{", "}")
		if err == nil {
			c.assert = t
		}

		return c
	}
}

func mustTemplate(layout string) *fasttemplate.Template {
	return fasttemplate.New(layout, "{", "}")
}
