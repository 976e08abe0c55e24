package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mdt/cli/cmd"
	"github.com/ardnew/mdt/log"
	"github.com/ardnew/mdt/mfile"
	"github.com/ardnew/mdt/pkg"
)

// CLI is the top-level command-line interface for mdt.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version     kong.VersionFlag `                         help:"Print version and exit."                     short:"V"`
	Cache       bool             `default:"true"           help:"Reuse datasets parsed from identical input." negatable:""`
	MaxLineSize int              `default:"${maxLineSize}" help:"Longest accepted input line in bytes."       placeholder:"BYTES"`

	Info     cmd.Info     `cmd:"" help:"List the variables of a NOVA export."`
	Fmt      cmd.Fmt      `cmd:"" help:"Re-emit a NOVA export as .m, JSON, or YAML."`
	Eval     cmd.Eval     `cmd:"" help:"Evaluate an expression against a NOVA export."`
	Spectrum cmd.Spectrum `cmd:"" help:"Print the calibrated spectrum at one map pixel."`
	Repl     cmd.Repl     `cmd:"" help:"Explore a NOVA export interactively."`
	Init     cmd.Init     `cmd:"" help:"Write the current flag values to the configuration file."`
}

// Run executes the mdt CLI with the given context and arguments.
// The exit function is called by kong for --help and --version.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":             pkg.Version,
		"maxLineSize":         strconv.Itoa(mfile.DefaultMaxLineSize),
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cacheDir(),
		cmd.HistoryIdentifier: cachePath(baseHistory),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode was selected.
	defer cli.Pprof.start(ctx)()

	// The singleton provider bound above returns ctx as reassigned here.
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithLoadOptions(ctx,
		mfile.WithLogger(log.Default()),
		mfile.WithCache(cli.Cache),
		mfile.WithMaxLineSize(cli.MaxLineSize),
	)

	log.DebugContext(ctx, "running command",
		slog.String("command", ktx.Command()),
		slog.Bool("cache", cli.Cache),
	)

	return ktx.Run()
}
