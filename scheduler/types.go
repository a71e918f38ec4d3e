// Package scheduler implements the burn-front propagation: a Dijkstra-like
// priority-queue state machine that advances a grassfire burn-front
// across a burngraph.Graph, maintaining per-sector exposure state as it
// goes.
//
// Complexity:
//
//   - Time: each node is reinserted into the queue at most once per
//     strictly-decreasing time value, and each sector burns at most once,
//     so the loop runs in O((N + Σ|sectors|) log N) with the lazy-heap
//     strategy below.
//   - Space: O(N + Σ|link edges|), dominated by the sector decomposition
//     passed in by the caller.
package scheduler

import "log"

// Options configures a scheduler run. The zero value is usable: no
// logging, default behavior.
type Options struct {
	// Logger, if non-nil, receives one line per main-loop step (extracted
	// node, queue size, arrival time). Off by default.
	Logger *log.Logger
}

// Option is a functional option for Run.
type Option func(*Options)

// WithLogger attaches a step/queue logger to the run.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func resolveOptions(opts ...Option) Options {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
