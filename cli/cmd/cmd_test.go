package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mdt/mfile"
)

const scanFile = "testdata/scan.m"

// testCLI mirrors the command tree without the interactive repl.
type testCLI struct {
	Cache bool   `default:"true" negatable:""`
	Level string `default:"info" name:"log-level"`
	Mode  string `default:""     name:"pprof-mode"`

	Info     Info     `cmd:""`
	Fmt      Fmt      `cmd:""`
	Eval     Eval     `cmd:""`
	Spectrum Spectrum `cmd:""`
	Init     Init     `cmd:""`
}

// run parses args into a fresh testCLI and runs the selected command with
// stdin and stdout redirected. configPath is the init target.
func run(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var (
		cli testCLI
		out bytes.Buffer
	)

	parser, err := kong.New(&cli,
		kong.Vars{ConfigIdentifier: configPath},
		kong.Exit(func(code int) { t.Fatalf("kong exited with %d", code) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}

	ctx := WithStreams(context.Background(), strings.NewReader(stdin), &out)
	ctx = WithContext(ctx, ktx)
	ctx = WithLoadOptions(ctx, mfile.WithCache(cli.Cache))

	ktx.BindTo(ctx, (*context.Context)(nil))

	err = ktx.Run()

	return out.String(), err
}

func TestLoadSource(t *testing.T) {
	src, err := os.ReadFile(scanFile)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithStreams(context.Background(), bytes.NewReader(src), nil)

	fromStdin, err := loadSource(ctx, stdinSource)
	if err != nil {
		t.Fatalf("loadSource(stdin): %v", err)
	}

	fromFile, err := loadSource(ctx, scanFile)
	if err != nil {
		t.Fatalf("loadSource(file): %v", err)
	}

	if !fromStdin.Equal(fromFile) {
		t.Error("stdin and file datasets differ")
	}

	_, err = loadSource(ctx, filepath.Join(t.TempDir(), "missing.m"))
	if !errors.Is(err, ErrLoad) || !errors.Is(err, mfile.ErrReadInput) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLoadOptions(t *testing.T) {
	ctx := context.Background()
	if opts := loadOptionsFrom(ctx); opts != nil {
		t.Errorf("default options = %v, want nil", opts)
	}

	ctx = WithLoadOptions(ctx, mfile.WithMaxLineSize(8))
	if got := len(loadOptionsFrom(ctx)); got != 1 {
		t.Fatalf("got %d options, want 1", got)
	}

	_, err := loadSource(WithStreams(ctx, strings.NewReader("LongName = [1 2 3];\n"), nil), stdinSource)
	if !errors.Is(err, mfile.ErrReadInput) {
		t.Errorf("max line size not applied: %v", err)
	}
}

func TestStreamsDefault(t *testing.T) {
	s := streamsFrom(context.Background())
	if s.in != os.Stdin || s.out != os.Stdout {
		t.Error("default streams are not stdin/stdout")
	}

	if kongVar(context.Background(), ConfigIdentifier) != "" {
		t.Error("kongVar without kong context should be empty")
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrWriteConfig.With().Wrap(ErrFileExists)

	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
		t.Errorf("errors.Is failed for %v", err)
	}

	if errors.Is(err, ErrLoad) {
		t.Error("unrelated sentinel matched")
	}

	if got := err.Error(); got != "write configuration file: file exists (use --force to overwrite)" {
		t.Errorf("Error() = %q", got)
	}
}
