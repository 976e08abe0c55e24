package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty selects the working directory
	Quiet bool   // suppress the profiler's own log output
}

// Start begins profiling and returns a Stopper that ends it.
// If the pprof build tag or p.Mode is unset, Start returns a no-op.
// Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
