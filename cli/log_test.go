package cli

import (
	"strings"
	"testing"

	"github.com/ardnew/mdt/log"
)

func TestLogConfigScan(t *testing.T) {
	saved := log.Default()
	t.Cleanup(func() { log.SetDefault(saved) })

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		wantLv log.Level
	}{
		{
			name:   "separate value",
			args:   []string{"info", "--log-level", "debug", "scan.m"},
			want:   logConfig{Level: "debug", Pretty: true},
			wantLv: log.LevelDebug,
		},
		{
			name:   "assigned value",
			args:   []string{"--log-level=trace", "--log-format=json"},
			want:   logConfig{Level: "trace", Format: "json", Pretty: true},
			wantLv: log.LevelTrace,
		},
		{
			name:   "value looks like flag",
			args:   []string{"--log-level", "--cache"},
			want:   logConfig{Pretty: true},
			wantLv: log.DefaultLevel,
		},
		{
			name:   "negated bool",
			args:   []string{"--no-log-pretty", "--log-caller"},
			want:   logConfig{Caller: true},
			wantLv: log.DefaultLevel,
		},
		{
			name:   "assigned bool",
			args:   []string{"--log-pretty=false", "--no-log-caller=false"},
			want:   logConfig{Caller: true},
			wantLv: log.DefaultLevel,
		},
		{
			name:   "invalid bool ignored",
			args:   []string{"--log-caller=maybe"},
			want:   logConfig{Pretty: true},
			wantLv: log.DefaultLevel,
		},
		{
			name:   "unrelated flags",
			args:   []string{"--cache", "--level", "debug"},
			want:   logConfig{Pretty: true},
			wantLv: log.DefaultLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetDefault(log.Make(nil))

			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, f, tt.want)
			}

			if got := log.Default().Level(); got != tt.wantLv {
				t.Errorf("logger level = %v, want %v", got, tt.wantLv)
			}
		})
	}
}

func TestLogConfigVars(t *testing.T) {
	var f logConfig

	vars := f.vars()

	if got := vars["logLevelEnum"]; got != "trace,debug,info,warn,error" {
		t.Errorf("logLevelEnum = %q", got)
	}

	if got := vars["logFormatEnum"]; !strings.Contains(got, "json") ||
		!strings.Contains(got, "text") {
		t.Errorf("logFormatEnum = %q", got)
	}

	if g := f.group(); g.Key != "log" || g.Title == "" {
		t.Errorf("group() = %+v", g)
	}
}
