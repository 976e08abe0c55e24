// Package cmd implements the mdt subcommands.
//
// Every command reads one NOVA .m export named by its FILE argument, or
// standard input when FILE is "-". Load options chosen by global flags are
// passed to commands with [WithLoadOptions]; the kong context with
// [WithContext]; and tests may redirect input and output with [WithStreams].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file. It is also the top-level key of that file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path
	// to the REPL history file.
	HistoryIdentifier = "history"
)
