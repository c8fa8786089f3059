package log

import (
	"sync"
)

//nolint:gochecknoglobals
var defaultRouter = sync.OnceValue(func() *Router {
	r := New()

	if e, err := LoadEnv(); err == nil {
		r.Config(WithEnv(e))
	}

	return r
})

// Default returns the process-wide router. It is created on first use with
// the default configuration overridden by the environment (see [LoadEnv]).
func Default() *Router { return defaultRouter() }

// Config applies the given options to the default router.
func Config(opts ...Option) { Default().Config(opts...) }

// Log writes args at the given level using the default router.
func Log(level Level, args ...any) { Default().Log(level, args...) }

// Logf formats and logs a message at the given level using the default
// router.
func Logf(level Level, layout string, args ...any) {
	Default().Logf(level, layout, args...)
}

// Error logs args at [LevelError] using the default router.
func Error(args ...any) { Default().Log(LevelError, args...) }

// Warn logs args at [LevelWarn] using the default router.
func Warn(args ...any) { Default().Log(LevelWarn, args...) }

// Info logs args at [LevelInfo] using the default router.
func Info(args ...any) { Default().Log(LevelInfo, args...) }

// Debug logs args at [LevelDebug] using the default router.
func Debug(args ...any) { Default().Log(LevelDebug, args...) }

// Trace logs args at [LevelTrace] using the default router.
func Trace(args ...any) { Default().Log(LevelTrace, args...) }

// Print writes args to the primary sink of the default router.
func Print(args ...any) { Default().Print(args...) }

// Println writes args and a newline to the primary sink of the default
// router.
func Println(args ...any) { Default().Println(args...) }

// PrintFile writes args to the file sink of the default router, if any.
func PrintFile(args ...any) { Default().PrintFile(args...) }

// PrintlnFile writes args and a newline to the file sink of the default
// router, if any.
func PrintlnFile(args ...any) { Default().PrintlnFile(args...) }

// Assert halts after reporting the caller's location if ok is false.
// See [Router.Assert].
func Assert(ok bool, expr string, args ...any) {
	if ok {
		return
	}

	Default().AssertAt(false, Caller(1), expr, args...)
}

// GetLevel returns the primary sink threshold of the default router.
func GetLevel() Level { return Default().Level() }

// SetLevel sets the primary sink threshold of the default router.
func SetLevel(level Level) { Default().SetLevel(level) }

// GetFileLevel returns the file sink threshold of the default router.
func GetFileLevel() Level { return Default().FileLevel() }

// SetFileLevel sets the file sink threshold of the default router.
func SetFileLevel(level Level) { Default().SetFileLevel(level) }

// SetDelimiter sets the argument delimiter of the default router.
func SetDelimiter(delim string) { Default().SetDelimiter(delim) }

// SetBaseReset sets the reset policy of the default router.
func SetBaseReset(enable bool) { Default().SetBaseReset(enable) }

// AttachPrimary replaces the primary sink of the default router.
func AttachPrimary(s Sink) { Default().AttachPrimary(s) }

// AttachFile attaches a file sink to the default router.
func AttachFile(s Sink, autoFlush bool) { Default().AttachFile(s, autoFlush) }

// DetachFile detaches and returns the file sink of the default router.
func DetachFile() Sink { return Default().DetachFile() }
