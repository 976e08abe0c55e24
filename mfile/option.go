package mfile

import "github.com/ardnew/mdt/log"

// DefaultMaxLineSize is the default limit on the length of one input line.
// A slice assignment holds an entire map plane on a single line.
const DefaultMaxLineSize = 64 << 20

// Option configures loading.
type Option func(*options)

type options struct {
	logger      log.Logger
	maxLineSize int
	cache       bool
}

func makeOptions(opts ...Option) options {
	o := options{maxLineSize: DefaultMaxLineSize}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger that receives load and statement events.
// The zero Logger, used by default, discards them.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache enables the process-wide content cache. Loading identical
// content again returns the Dataset assembled the first time, so every such
// caller shares its storage. Arrays from [Dataset.Get], [Dataset.Matrix] and
// [Dataset.Tensor] must be treated as read-only.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}

// WithMaxLineSize sets the longest accepted input line in bytes.
// Values less than 1 select [DefaultMaxLineSize].
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxLineSize
		}

		o.maxLineSize = n
	}
}
