package lang

// This file defines the built-in evaluation environment available to every
// expression. The environment is lazily initialized once per process and
// cloned on every access so callers may add variables to the returned map
// without affecting the shared copy.

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/debuglog/format"
	"github.com/ardnew/debuglog/log"
)

// envName is the identifier of the process environment lookup function.
const envName = "env"

//nolint:gochecknoglobals
var builtinEnv = sync.OnceValue(
	func() map[string]any {
		return map[string]any{
			// Formatting pseudo-values.
			"hex":       format.Hex,
			"dec":       format.Dec,
			"oct":       format.Oct,
			"bin":       format.Bin,
			"precision": precision,
			"kv":        format.KV,

			"levels": slices.Collect(log.Levels()),

			// Host information.
			"platform": getPlatform(),
			"hostname": getHostname(),
			"cwd":      getCwd,

			// Filesystem functions.
			"file": map[string]any{
				"exists":    fileExists,
				"isDir":     fileIsDir,
				"isRegular": fileIsRegular,
				"isSymlink": fileIsSymlink,
			},

			// Path manipulation functions.
			"path": map[string]any{
				"abs":  pathAbs,
				"base": filepath.Base,
				"cat":  pathCat,
				"dir":  filepath.Dir,
				"rel":  pathRel,
			},

			// PATH-like string manipulation via mung.
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	},
)

// makeEnv returns the built-in environment extended with the env lookup
// function over processEnv.
func makeEnv(processEnv map[string]string) map[string]any {
	env := maps.Clone(builtinEnv())
	env[envName] = envFunc(processEnv)

	return env
}

// BuiltinEnvCache returns a copy of the built-in environment.
// This is useful for reflection-based signature introspection.
func BuiltinEnvCache() map[string]any {
	return maps.Clone(builtinEnv())
}

// BuiltinEnvKeys returns the sorted top-level keys in the built-in
// environment. This is useful for code completion and introspection.
func BuiltinEnvKeys() []string {
	return slices.Sorted(maps.Keys(makeEnv(nil)))
}

// BuiltinEnvLookup looks up a dot-separated path in the built-in environment
// and returns the sorted keys of any map found at that path. Returns nil if
// the path doesn't exist or doesn't point to a map.
//
// Special case: "env" returns environment variable names from os.Environ().
func BuiltinEnvLookup(path string) []string {
	if path == "" {
		return BuiltinEnvKeys()
	}

	if path == envName {
		return slices.Sorted(maps.Keys(buildProcessEnvMap(nil)))
	}

	var current any = builtinEnv()

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		if current, ok = m[seg]; !ok {
			return nil
		}
	}

	if m, ok := current.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}

func precision(n int) format.Precision { return format.Precision(n) }

// ---------------------------------------------------------------------------
// Host information helpers
// ---------------------------------------------------------------------------

// target contains string identifiers for an operating system and
// instruction set architecture.
type target struct {
	OS   string
	Arch string
}

// getPlatform returns the host target using Go conventions.
func getPlatform() target {
	var (
		o, a string
		ok   bool
	)

	if o, ok = os.LookupEnv("GOHOSTOS"); !ok {
		o = runtime.GOOS
	}

	if a, ok = os.LookupEnv("GOHOSTARCH"); !ok {
		a = runtime.GOARCH
	}

	return target{OS: o, Arch: a}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

// ---------------------------------------------------------------------------
// Filesystem functions
// ---------------------------------------------------------------------------

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

// ---------------------------------------------------------------------------
// Path manipulation functions
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// ---------------------------------------------------------------------------
// PATH-like string manipulation (mung)
// ---------------------------------------------------------------------------

func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// ---------------------------------------------------------------------------
// Environment variable function
// ---------------------------------------------------------------------------

// buildProcessEnvMap converts a "KEY=VALUE" string slice to a map.
// If envList is nil, os.Environ() is used.
func buildProcessEnvMap(envList []string) map[string]string {
	if envList == nil {
		envList = os.Environ()
	}

	result := make(map[string]string, len(envList))

	for _, entry := range envList {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns the built-in env() function that provides
// process environment access to expressions.
func envFunc(processEnv map[string]string) func(string) string {
	if processEnv == nil {
		processEnv = buildProcessEnvMap(nil)
	}

	return func(key string) string {
		return processEnv[key]
	}
}
