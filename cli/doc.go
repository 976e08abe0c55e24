// Package cli contains the command line interface for mdt.
//
// # Usage
//
//	mdt [flags] <command> [args]
//
// Commands operate on one NOVA .m export, named by path or "-" for stdin:
//
//	mdt info scan.m
//	mdt fmt json -i 0 scan.m
//	mdt eval scan.m 'max(spectrum(0, 0))'
//	mdt spectrum --axis raman scan.m 0 0
//	mdt repl scan.m
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/mdt/config.yaml, a YAML
// document whose "config" mapping holds flag values keyed by flag name:
//
//	config:
//	  log-level: debug
//	  cache: false
//
// A kong JSON file at config.json in the same directory is also honored.
// Flags given on the command line override both. "mdt init" writes the
// current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, RFC3339Nano, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize text output
//
// Logger flags are applied before kong parses the command line, so they take
// effect regardless of their position.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine, heap,
//     mem, mutex, thread, trace)
//   - --pprof-dir: output directory (default $XDG_CACHE_HOME/mdt/pprof)
package cli
