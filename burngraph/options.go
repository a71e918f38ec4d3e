package burngraph

const (
	// DefaultDistMax is the maximum segment length before an edge is
	// subdivided.
	DefaultDistMax float32 = 0.005

	// DefaultSubdivMax caps the number of subdivisions per edge.
	DefaultSubdivMax = 1
)

// Options configures graph construction. The zero value is not used
// directly; resolveOptions starts from the defaults above.
type Options struct {
	DistMax   float32
	SubdivMax int
}

// Option is a functional option for Build.
type Option func(*Options)

// WithDistMax sets the maximum segment length before subdivision.
// Panics if d <= 0: a non-positive threshold would subdivide every edge
// infinitely.
func WithDistMax(d float32) Option {
	if d <= 0 {
		panic("burngraph: WithDistMax requires a positive threshold")
	}
	return func(o *Options) {
		o.DistMax = d
	}
}

// WithSubdivMax caps the number of subdivisions per edge. Panics if
// n < 1: every edge keeps at least its single original segment.
func WithSubdivMax(n int) Option {
	if n < 1 {
		panic("burngraph: WithSubdivMax requires at least 1")
	}
	return func(o *Options) {
		o.SubdivMax = n
	}
}

func resolveOptions(opts ...Option) Options {
	cfg := Options{DistMax: DefaultDistMax, SubdivMax: DefaultSubdivMax}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
