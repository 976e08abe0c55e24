package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/mdt/log"
	"github.com/ardnew/mdt/profile"
)

// defaultConfigIndent is the indent width of the generated configuration.
const defaultConfigIndent = 2

// Init writes the current global flag values to the configuration file.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	data, err := yaml.MarshalWithOptions(
		yaml.MapSlice{{Key: ConfigIdentifier, Value: configValues(ktx)}},
		yaml.Indent(defaultConfigIndent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, data, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configValues returns the application-level flags and their current values
// in declaration order. Help, version, and profiling flags are skipped, as
// are hidden flags and empty strings.
func configValues(ktx *kong.Context) yaml.MapSlice {
	skip := []string{"help", "version", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || hasAnyPrefix(flag.Name, skip) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		if s, ok := val.(string); ok && s == "" {
			continue
		}

		if tm, ok := val.(interface{ MarshalText() ([]byte, error) }); ok {
			if text, err := tm.MarshalText(); err == nil {
				val = string(text)
			}
		}

		values = append(values, yaml.MapItem{Key: flag.Name, Value: val})
	}

	return values
}

func hasAnyPrefix(s string, prefix []string) bool {
	for _, p := range prefix {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
