package log

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/debuglog/pkg"
)

// Level represents the severity of a log message and, when used as a sink
// threshold, the most verbose severity that sink accepts.
type Level int

const (
	LevelNone  Level = iota // none
	LevelError              // error
	LevelWarn               // warn
	LevelInfo               // info
	LevelDebug              // debug
	LevelTrace              // trace
)

const levelCount = int(LevelTrace) + 1

var levelNames = [levelCount]string{
	"none",
	"error",
	"warn",
	"info",
	"debug",
	"trace",
}

// DefaultLevel is the default threshold of the primary sink.
const DefaultLevel = LevelInfo

// DefaultFileLevel is the default threshold of the file sink.
const DefaultFileLevel = LevelError

// Levels returns an iterator over all defined level names, from least to
// most verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range levelNames {
			if !yield(name) {
				return
			}
		}
	}
}

// String returns the lower-case name of the level.
func (l Level) String() string {
	if l.valid() {
		return levelNames[l]
	}

	return "Level(" + strconv.Itoa(int(l)) + ")"
}

func (l Level) valid() bool {
	return l >= LevelNone && int(l) < levelCount
}

// Admits reports whether a message at level msg passes the threshold l.
// Messages at [LevelNone] never pass, and a [LevelNone] threshold passes
// nothing.
func (l Level) Admits(msg Level) bool {
	return msg != LevelNone && msg <= l
}

// ParseLevel parses a level name such as "info" or "TRACE", or its numeric
// value. Unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	if l, ok := parseLevel(s); ok {
		return l
	}

	return DefaultLevel
}

func parseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	for i, name := range levelNames {
		if s == name {
			return Level(i), true
		}
	}

	switch s {
	case "warning":
		return LevelWarn, true
	case "err":
		return LevelError, true
	}

	if n, err := strconv.Atoi(s); err == nil && Level(n).valid() {
		return Level(n), true
	}

	return LevelNone, false
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, pkg.ErrInvalidLevel.Wrapf("%d", int(l))
	}

	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Unlike [ParseLevel], unrecognized input is an error.
func (l *Level) UnmarshalText(text []byte) error {
	v, ok := parseLevel(string(text))
	if !ok {
		return pkg.ErrInvalidLevel.Wrapf("%q", text)
	}

	*l = v

	return nil
}

// FromSlog maps a [slog.Level] onto the nearest level at or below it in
// severity. Anything more verbose than [slog.LevelDebug] becomes [LevelTrace].
func FromSlog(level slog.Level) Level {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarn
	case level >= slog.LevelInfo:
		return LevelInfo
	case level >= slog.LevelDebug:
		return LevelDebug
	default:
		return LevelTrace
	}
}
