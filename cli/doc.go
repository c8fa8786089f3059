// Package cli contains the command line interface for debuglog.
//
// # Usage
//
// The default command logs its arguments at the given level:
//
//	debuglog info "listening on" 8080
//	debuglog emit --base hex debug mask 255
//
// Other commands print unconditionally, render YAML or JSON documents, log
// the results of expressions, check assertions and run an interactive
// session. Run "debuglog --help" for the full list.
//
// # Configuration
//
// Flag defaults are read from the DEBUGLOG_* environment (see
// [log.LoadEnv]), then from config.json, config.toml and config.yaml in the
// user configuration directory, then from the command line. Nested tables in
// the TOML and YAML files are flattened with hyphens:
//
//	log:
//	  level: debug
//	  file: /tmp/debuglog.txt
//
// "debuglog init" writes config.yaml from the current flag values.
//
// # Logging Options
//
//   - --log-level: Primary sink threshold (none, error, warn, info, debug,
//     trace)
//   - --log-file-level: File sink threshold
//   - --log-file: Append file sink output to a path
//   - --[no-]log-auto-flush: Flush the file sink after every write
//   - --log-delimiter: Separator written between arguments
//   - --[no-]log-color: Wrap primary output in color tags
//   - --[no-]log-base-reset: Restore base and precision after each statement
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o debuglog .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/debuglog/pprof)
package cli
