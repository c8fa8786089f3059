// Package cmd implements the debuglog subcommands.
//
// Each command writes through the [log.Router] bound by the CLI, so the
// level thresholds, delimiter, base-reset policy and sinks configured by the
// global flags apply to everything a command emits.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
