// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Level, format, time layout, caller information, and colorized output are
// applied at logger creation time using functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("dataset loaded", slog.Int("variables", 5))
//	logger.Error("load failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that the command line reconfigures with [Config].
//
// # Zero Value
//
// The zero [Logger] discards everything. Library packages accept a Logger
// through their own options and never write unless one is provided.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's Debug and is used
// for per-statement parser events.
package log
