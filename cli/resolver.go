package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/mdt/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the mapping stored under key name in a YAML document:
//
//	config:
//	  log-level: debug
//	  log_format: text
//	  cache: false
//
// Keys are flag names; underscores may stand in for hyphens. Command-line
// flags override config file values. A document that does not parse, or has
// no mapping under name, resolves nothing.
func resolve(name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).Decode(&doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn("ignoring configuration file",
					slog.String("key", name),
					slog.String("error", err.Error()),
				)
			}

			return config{}, nil
		}

		section, ok := doc[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		cfg := make(config, len(section))
		for key, value := range section {
			cfg[key] = flagValue(value)
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML scalar into a value kong can parse.
// Kong expects numbers as strings.
func flagValue(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = flagValue(e)
		}

		return out
	default:
		return v
	}
}
