// config.go: batch driver configuration for arion
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package arion

import "runtime"

// batchConfig holds the tunables for a BatchDriver run. The slot arrays
// themselves carry no runtime configuration (no TTL, no eviction
// policy) since capacity is fixed at construction; everything
// configurable lives at the batch boundary.
type batchConfig struct {
	workers      int
	minChunkSize int
	logger       Logger
	metrics      MetricsCollector
}

// BatchOption configures a batch operation. Options are applied in
// order, so a later option overrides an earlier one.
type BatchOption func(*batchConfig)

// WithWorkers sets the number of goroutines the batch driver partitions
// work across. n <= 0 is ignored (falls back to GOMAXPROCS).
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMinChunkSize sets the operand count per worker used to cap the
// number of workers: the driver never spawns more workers than
// ceil(len(operands)/minChunkSize), so an individual chunk can still be
// smaller than n. n <= 0 is ignored.
func WithMinChunkSize(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.minChunkSize = n
		}
	}
}

// WithLogger sets the Logger used by the batch driver. nil is ignored.
func WithLogger(l Logger) BatchOption {
	return func(c *batchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the MetricsCollector used by the batch driver. nil is
// ignored.
func WithMetrics(m MetricsCollector) BatchOption {
	return func(c *batchConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// newBatchConfig builds the default configuration and applies opts.
func newBatchConfig(opts []BatchOption) *batchConfig {
	c := &batchConfig{
		workers:      runtime.GOMAXPROCS(0),
		minChunkSize: defaultMinChunkSize,
		logger:       NoOpLogger{},
		metrics:      NoOpMetricsCollector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

// chunks splits n operands into the static, contiguous, equal-sized
// partitions the driver hands to each worker: spec.md's "static work
// partitioning". Chunk sizes differ by at most one. It never produces
// more chunks than workers nor more than ceil(n/minChunkSize); chunks
// can be smaller than minChunkSize (n=250 with minChunkSize 100 gives
// three chunks of 84, 83 and 83).
func (c *batchConfig) chunks(n int) [][2]int {
	if n == 0 {
		return nil
	}
	workers := c.workers
	if max := (n + c.minChunkSize - 1) / c.minChunkSize; max < workers {
		workers = max
	}
	if workers < 1 {
		workers = 1
	}

	base := n / workers
	rem := n % workers
	out := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		out = append(out, [2]int{start, start + size})
		start += size
	}
	return out
}
