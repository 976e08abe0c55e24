package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/mdt/mfile"
)

func TestInfo(t *testing.T) {
	out, err := run(t, "", "", "info", scanFile)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"NAME", "SHAPE",
		"Map", "tensor", "3x3x2", "18",
		"WavelengthCalibr", "nm",
		"RamanShiftCalibr", "1/cm",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "Map") > strings.Index(out, "X ") {
		t.Errorf("rows not in name order:\n%s", out)
	}
}

func TestFmt(t *testing.T) {
	src, err := os.ReadFile(scanFile)
	if err != nil {
		t.Fatal(err)
	}

	want, err := mfile.LoadString(t.Context(), string(src))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("native round trip", func(t *testing.T) {
		out, err := run(t, "", string(src), "fmt", "-")
		if err != nil {
			t.Fatal(err)
		}

		got, err := mfile.LoadString(t.Context(), out)
		if err != nil {
			t.Fatalf("reload: %v\n%s", err, out)
		}

		if !got.Equal(want) {
			t.Errorf("native output does not reload equal:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "", "fmt", "json", "-i", "0", scanFile)
		if err != nil {
			t.Fatal(err)
		}

		if strings.Count(strings.TrimSpace(out), "\n") != 0 {
			t.Errorf("indent 0 produced several lines:\n%s", out)
		}

		var doc map[string]any
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if len(doc) != want.Len() {
			t.Errorf("got %d keys, want %d", len(doc), want.Len())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "", "", "fmt", "yaml", scanFile)
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(out, "WavelengthCalibr:") {
			t.Errorf("yaml output:\n%s", out)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := run(t, "", "X = [1  2];\n", "fmt", "json", "-")

		var lerr *mfile.LineError
		if !errors.Is(err, ErrLoad) || !errors.As(err, &lerr) || lerr.Line != 1 {
			t.Errorf("error = %v", err)
		}
	})
}

func TestEval(t *testing.T) {
	tests := []struct {
		expr    string
		want    string
		wantErr error
	}{
		{"max(spectrum(2, 2))", "17", nil},
		{"spectrum(1, 2)", "[10 11]", nil},
		{"shape(\"Map\")", "[3 3 2]", nil},
		{"len(X) + len(Y)", "6", nil},
		{"unknownName * 2", "", mfile.ErrExprCompile},
		{"spectrum(5, 5)", "", mfile.ErrExprEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := run(t, "", "", "eval", scanFile, tt.expr)

			if tt.wantErr != nil {
				if !errors.Is(err, ErrEvaluate) || !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("eval %q = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSpectrum(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "wavelength",
			args: []string{"spectrum", scanFile, "1", "2"},
			want: "# wavelength [nm]\tintensity\n535.9459\t10\n535.9609\t11\n",
		},
		{
			name: "raman",
			args: []string{"spectrum", "--axis", "raman", scanFile, "0", "0"},
			want: "# raman [1/cm]\tintensity\n138.3936\t0\n138.9163\t1\n",
		},
		{
			name: "raw without header",
			args: []string{"spectrum", "--raw", "--no-header", scanFile, "2", "1"},
			want: "14\n15\n",
		},
		{
			name:    "out of range",
			args:    []string{"spectrum", scanFile, "3", "0"},
			wantErr: mfile.ErrIndexRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", "", tt.args...)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestSpectrumCalibrationMismatch(t *testing.T) {
	src := "WavelengthCalibr = [1 2 3];\nMap = zeros(1,1,2);\n"

	_, err := run(t, "", src, "spectrum", "-", "0", "0")
	if !errors.Is(err, mfile.ErrRankMismatch) {
		t.Errorf("error = %v, want %v", err, mfile.ErrRankMismatch)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := run(t, path, "", "--no-cache", "--log-level", "debug", "init"); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	got := string(data)
	for _, want := range []string{"config:\n", "  cache: false\n", "  log-level: debug\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("config missing %q:\n%s", want, got)
		}
	}

	for _, unwanted := range []string{"help", "pprof"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("config contains %q:\n%s", unwanted, got)
		}
	}

	_, err = run(t, path, "", "init")
	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
		t.Errorf("second init error = %v, want %v", err, ErrFileExists)
	}

	if _, err := run(t, path, "", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "  cache: true\n") {
		t.Errorf("forced init did not rewrite:\n%s", data)
	}
}
