//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// modes maps each mode name accepted by --pprof-mode to the profile it
// enables.
var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the mode names in sorted order.
var Modes = sync.OnceValue(
	func() []string { return slices.Sorted(maps.Keys(modes)) },
)

func start(mode, path string, quiet bool) Stopper {
	opts := sessionOptions(mode, path, quiet)
	if opts == nil {
		return ignore{}
	}

	return profile.Start(opts...)
}

// sessionOptions returns the pkg/profile options for one session, or nil
// if mode is unknown.
func sessionOptions(mode, path string, quiet bool) []func(*profile.Profile) {
	enable, ok := modes[mode]
	if !ok {
		return nil
	}

	opts := []func(*profile.Profile){enable}

	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}

	if quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}
