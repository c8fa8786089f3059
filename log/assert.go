package log

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Location identifies the source position of an assertion.
type Location struct {
	File string
	Func string
	Line int
}

// Caller returns the location of the caller of the function calling Caller,
// skipping skip additional frames.
//
// Func is the function name without its package path, e.g. "(*T).Method".
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???", Func: "???"}
	}

	name := "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = funcName(fn.Name())
	}

	return Location{File: file, Func: name, Line: line}
}

func funcName(qualified string) string {
	name := qualified[strings.LastIndexByte(qualified, '/')+1:]
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// Assert does nothing if ok is true. Otherwise it reports the caller's
// location, expr and the delimiter-joined args to every attached sink,
// flushes the file sink, and halts. It never returns when ok is false.
func (r *Router) Assert(ok bool, expr string, args ...any) {
	if ok {
		return
	}

	r.fail(Caller(1), expr, args...)
}

// AssertAt is like [Router.Assert] with an explicit location.
func (r *Router) AssertAt(ok bool, loc Location, expr string, args ...any) {
	if ok {
		return
	}

	r.fail(loc, expr, args...)
}

func (r *Router) fail(loc Location, expr string, args ...any) {
	line := r.assertLine(loc, expr, args...) + "\n"

	r.writePrimary(line)

	if r.file != nil {
		_, _ = r.file.Write([]byte(line))
		_ = r.file.Flush()
	}

	r.halt()

	// halt is not supposed to return.
	haltForever()
}

func (r *Router) assertLine(loc Location, expr string, args ...any) string {
	line := r.assert.ExecuteString(map[string]any{
		"file": loc.File,
		"line": strconv.Itoa(loc.Line),
		"func": loc.Func,
		"expr": expr,
	})

	if msg := r.render(args...); msg != "" {
		line += " => " + msg
	}

	r.finish()

	return line
}

// haltForever blocks the calling goroutine permanently.
func haltForever() {
	for {
		time.Sleep(time.Hour)
	}
}

// HaltExit returns a halt function that terminates the process with the
// given exit code.
func HaltExit(code int) func() {
	return func() { os.Exit(code) }
}
