package serving

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/forest/pkg/log"
)

// Option is a function that configures an Engine
type Option func(*Engine)

// WithNumWorkers sets the number of goroutines of a batch. n <= 0 means one
// per CPU core.
func WithNumWorkers(n int) Option {
	return func(e *Engine) {
		e.numWorkers = n
	}
}

// WithDeterministic forces sequential execution of batches
func WithDeterministic(deterministic bool) Option {
	return func(e *Engine) {
		e.deterministic = deterministic
	}
}

// WithParallelThreshold sets the batch size below which a batch runs on the
// calling goroutine
func WithParallelThreshold(rows int) Option {
	return func(e *Engine) {
		e.parallelThreshold = rows
	}
}

// WithLogger sets the logger of the engine
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegisterer registers the engine metrics on reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}
