package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/ardnew/debuglog/pkg"
)

// decoder unmarshals a configuration document into v.
type decoder func(data []byte, v any) error

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
func loadYAML(r io.Reader) (kong.Resolver, error) { return load(r, yaml.Unmarshal) }

// loadTOML is a [kong.ConfigurationLoader] for TOML configuration files.
func loadTOML(r io.Reader) (kong.Resolver, error) { return load(r, toml.Unmarshal) }

// load reads a configuration document mapping flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// The document is converted as follows:
//   - Nested mappings are flattened by joining keys with hyphens, so a
//     "log" table with a "file-level" key sets --log-file-level
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Numbers are converted to strings for Kong's decoders
//   - Sequences become lists
//
// Example YAML config file:
//
//	log:
//	  level: debug
//	  file: /tmp/debug.log
//	  color: true
//
// Command-line flags override config file values.
func load(r io.Reader, decode decoder) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrDecode.Wrap(err)
	}

	var doc map[string]any
	if err := decode(data, &doc); err != nil {
		return nil, pkg.ErrDecode.Wrap(err)
	}

	return flatten(config{}, "", doc), nil
}

// config implements [kong.Resolver] for flattened configuration documents.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config keys
	// may use underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten adds every leaf of m to c, keyed by its hyphen-joined path.
func flatten(c config, prefix string, m map[string]any) config {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		if sub, ok := v.(map[string]any); ok {
			flatten(c, key, sub)

			continue
		}

		c[key] = scalar(v)
	}

	return c
}

// scalar converts a decoded value into a form Kong's mappers accept.
func scalar(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = scalar(e)
		}

		return list

	default:
		return fmt.Sprint(v)
	}
}
