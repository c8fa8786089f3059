// Package profile provides optional runtime profiling for the debuglog
// command.
//
// Profiling is backed by [github.com/pkg/profile] and is only compiled in
// when building with the "pprof" build tag:
//
//	go build -tags pprof .
//	debuglog --pprof-mode=cpu emit info "hello"
//
// Without the tag, [Profiler.Start] returns a no-op and [Modes] is empty, so
// callers never need to guard their use of this package.
//
// Profile data is written beneath the configured path, which defaults to the
// per-user cache directory when run from the CLI. Inspect it with:
//
//	go tool pprof -http=: ~/.cache/debuglog/cpu.pprof
package profile
