// Package profile provides optional runtime profiling for mdt.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without it, [Profiler.Start] returns a no-op and
// [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/mdt"}
//	defer p.Start().Stop()
//
// Profiles are written to Path using the file names chosen by
// [github.com/pkg/profile] (cpu.pprof, mem.pprof, and so on). The mdt command
// exposes the same settings as flags:
//
//	go build -tags pprof .
//	./mdt --pprof-mode heap --pprof-dir ./profiles info scan.m
//	go tool pprof -http=: ./profiles/mem.pprof
//
// The default directory is $XDG_CACHE_HOME/mdt/pprof.
//
// Building with the tag also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
