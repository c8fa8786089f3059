package log

import (
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/ardnew/debuglog/pkg"
)

// EnvPrefix is prepended to the name of every environment variable read by
// [LoadEnv].
const EnvPrefix = "DEBUGLOG_"

// Env is the router configuration read from the environment.
//
// The delimiter, headers and color tags are optional; nil means "keep the
// default", while a variable set to the empty string selects an empty value.
// Their values may contain Go escape sequences such as \033 or \t.
type Env struct {
	ErrorHeader   *string `env:"ERROR_HEADER"`
	WarnHeader    *string `env:"WARN_HEADER"`
	InfoHeader    *string `env:"INFO_HEADER"`
	DebugHeader   *string `env:"DEBUG_HEADER"`
	TraceHeader   *string `env:"TRACE_HEADER"`
	ErrorColorTag *string `env:"ERROR_COLOR_TAG"`
	WarnColorTag  *string `env:"WARN_COLOR_TAG"`
	InfoColorTag  *string `env:"INFO_COLOR_TAG"`
	DebugColorTag *string `env:"DEBUG_COLOR_TAG"`
	TraceColorTag *string `env:"TRACE_COLOR_TAG"`
	ClearColorTag *string `env:"CLEAR_COLOR_TAG"`
	Delimiter     *string `env:"DELIMITER"`
	Level         Level   `env:"LEVEL"       envDefault:"info"`
	FileLevel     Level   `env:"FILE_LEVEL"  envDefault:"error"`
	BaseReset     bool    `env:"BASE_RESET"  envDefault:"true"`
	Color         bool    `env:"USE_COLORS"  envDefault:"false"`
}

// LoadEnv reads the router configuration from the process environment.
func LoadEnv() (Env, error) {
	return loadEnv(nil)
}

// loadEnv reads the router configuration from environ, or from the process
// environment if environ is nil.
func loadEnv(environ map[string]string) (Env, error) {
	var e Env

	err := env.ParseWithOptions(&e, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return e, pkg.ErrEnvConfig.Wrap(err)
	}

	lookup := os.LookupEnv
	if environ != nil {
		lookup = func(key string) (string, bool) {
			v, ok := environ[key]

			return v, ok
		}
	}

	e.keepEmpty(lookup)

	return e, nil
}

// keepEmpty points each optional field whose variable is set but empty at an
// empty string. The env parser skips empty values, which would otherwise be
// indistinguishable from unset ones.
func (e *Env) keepEmpty(lookup func(string) (string, bool)) {
	for key, field := range map[string]**string{
		"DELIMITER":       &e.Delimiter,
		"ERROR_HEADER":    &e.ErrorHeader,
		"WARN_HEADER":     &e.WarnHeader,
		"INFO_HEADER":     &e.InfoHeader,
		"DEBUG_HEADER":    &e.DebugHeader,
		"TRACE_HEADER":    &e.TraceHeader,
		"ERROR_COLOR_TAG": &e.ErrorColorTag,
		"WARN_COLOR_TAG":  &e.WarnColorTag,
		"INFO_COLOR_TAG":  &e.InfoColorTag,
		"DEBUG_COLOR_TAG": &e.DebugColorTag,
		"TRACE_COLOR_TAG": &e.TraceColorTag,
		"CLEAR_COLOR_TAG": &e.ClearColorTag,
	} {
		if *field != nil {
			continue
		}

		if v, ok := lookup(EnvPrefix + key); ok && v == "" {
			*field = new(string)
		}
	}
}

// Options returns the functional options equivalent to e.
func (e Env) Options() []Option {
	opts := []Option{
		WithLevel(e.Level),
		WithFileLevel(e.FileLevel),
		WithBaseReset(e.BaseReset),
		WithColor(e.Color),
	}

	if e.Delimiter != nil {
		opts = append(opts, WithDelimiter(unescape(*e.Delimiter)))
	}

	for level, s := range map[Level]*string{
		LevelError: e.ErrorHeader,
		LevelWarn:  e.WarnHeader,
		LevelInfo:  e.InfoHeader,
		LevelDebug: e.DebugHeader,
		LevelTrace: e.TraceHeader,
	} {
		if s != nil {
			opts = append(opts, WithHeader(level, unescape(*s)))
		}
	}

	for level, s := range map[Level]*string{
		LevelError: e.ErrorColorTag,
		LevelWarn:  e.WarnColorTag,
		LevelInfo:  e.InfoColorTag,
		LevelDebug: e.DebugColorTag,
		LevelTrace: e.TraceColorTag,
	} {
		if s != nil {
			opts = append(opts, WithColorTag(level, unescape(*s)))
		}
	}

	if e.ClearColorTag != nil {
		opts = append(opts, WithClearTag(unescape(*e.ClearColorTag)))
	}

	return opts
}

// WithEnv returns a functional option that applies the configuration read
// from the environment.
func WithEnv(e Env) Option {
	return func(c config) config {
		return apply(c, e.Options()...)
	}
}

// unescape interprets Go escape sequences in s, returning s unchanged if it
// contains none or is not a valid quoted string body.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return s
	}

	return u
}
