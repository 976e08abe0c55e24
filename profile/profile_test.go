package profile

import (
	"slices"
	"testing"
)

func TestProfiler_StartWithoutMode(t *testing.T) {
	s := Profiler{Path: t.TempDir()}.Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("expected no-op stopper, got %T", s)
	}

	s.Stop()
}

func TestProfiler_UnknownMode(t *testing.T) {
	s := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("expected no-op stopper for unknown mode, got %T", s)
	}

	s.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}

	if slices.Contains(modes, "quiet") {
		t.Error("quiet listed as a mode")
	}

	if Enabled() != (len(modes) > 0) {
		t.Error("Enabled disagrees with Modes")
	}
}
