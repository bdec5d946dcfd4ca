// batch.go: static-partitioned worker pool driving bulk operations
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package arion

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// runChunks is the shared batch driver: it partitions [0, n) into
// contiguous, equal-sized chunks per batchConfig.chunks and runs work
// on each chunk in its own goroutine via errgroup, which gives a
// static-schedule shared-memory parallel-for primitive equivalent to
// spec.md's BatchDriver. No ordering is guaranteed between chunks, or
// between operands within or across chunks: the per-slot protocol
// invoked by work is the only linearizability boundary.
//
// work returns the number of slots probed and CAS attempts lost to a
// racing writer across its chunk, which runChunks folds into cfg's
// MetricsCollector alongside the per-chunk timing it already reports.
//
// ctx is checked between chunk dispatches only — individual per-slot
// operations are never preempted mid-probe, matching the "no
// thread-internal suspension points" requirement of the source.
func runChunks(ctx context.Context, cfg *batchConfig, op string, n int, work func(workerID, start, end int) (probes, casRetries int)) error {
	ranges := cfg.chunks(n)
	g, gctx := errgroup.WithContext(ctx)
	for workerID, r := range ranges {
		workerID, r := workerID, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			probes, casRetries := work(workerID, r[0], r[1])
			cfg.metrics.RecordBatchChunk(workerID, r[1]-r[0], time.Since(start))
			cfg.metrics.RecordProbeLength(op, probes)
			for i := 0; i < casRetries; i++ {
				cfg.metrics.RecordCASRetry(op)
			}
			cfg.logger.Debug("batch chunk complete", "op", op, "worker", workerID, "n", r[1]-r[0], "probes", probes, "casRetries", casRetries)
			return nil
		})
	}
	return g.Wait()
}

// BatchInsert inserts every key in keys into s. Keys may be applied in
// any order and in parallel; the only guarantee is that the batch as a
// whole is equivalent to some sequential interleaving of its operands.
func (s *Set) BatchInsert(ctx context.Context, keys []uint32, opts ...BatchOption) error {
	cfg := newBatchConfig(opts)
	return runChunks(ctx, cfg, "set.insert", len(keys), func(_, start, end int) (probes, casRetries int) {
		for _, k := range keys[start:end] {
			p, r := s.insertProbed(k)
			probes += p
			casRetries += r
		}
		return probes, casRetries
	})
}

// BatchContains reports, for each key in keys, whether it is present
// in s. result[i] corresponds to keys[i].
func (s *Set) BatchContains(ctx context.Context, keys []uint32, opts ...BatchOption) ([]bool, error) {
	cfg := newBatchConfig(opts)
	result := make([]bool, len(keys))
	err := runChunks(ctx, cfg, "set.contains", len(keys), func(_, start, end int) (probes, casRetries int) {
		for i := start; i < end; i++ {
			found, p := s.containsProbed(keys[i])
			result[i] = found
			probes += p
		}
		return probes, 0
	})
	return result, err
}

// BatchDelete deletes every key in keys from s, if present.
func (s *Set) BatchDelete(ctx context.Context, keys []uint32, opts ...BatchOption) error {
	cfg := newBatchConfig(opts)
	return runChunks(ctx, cfg, "set.delete", len(keys), func(_, start, end int) (probes, casRetries int) {
		for _, k := range keys[start:end] {
			probes += s.deleteProbed(k)
		}
		return probes, 0
	})
}

// BatchInsert inserts every (keys[i], values[i]) pair into t. keys and
// values must be the same length.
func (t *Table) BatchInsert(ctx context.Context, keys, values []uint32, opts ...BatchOption) error {
	cfg := newBatchConfig(opts)
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	return runChunks(ctx, cfg, "table.insert", n, func(_, start, end int) (probes, casRetries int) {
		for i := start; i < end; i++ {
			p, r := t.insertProbed(keys[i], values[i])
			probes += p
			casRetries += r
		}
		return probes, casRetries
	})
}

// BatchLookup returns, for each key in keys, its stored value (or
// NotFound). result[i] corresponds to keys[i].
func (t *Table) BatchLookup(ctx context.Context, keys []uint32, opts ...BatchOption) ([]uint32, error) {
	cfg := newBatchConfig(opts)
	result := make([]uint32, len(keys))
	err := runChunks(ctx, cfg, "table.lookup", len(keys), func(_, start, end int) (probes, casRetries int) {
		for i := start; i < end; i++ {
			v, _, p := t.lookupProbed(keys[i])
			result[i] = v
			probes += p
		}
		return probes, 0
	})
	return result, err
}

// BatchDelete deletes every key in keys from t, if present.
func (t *Table) BatchDelete(ctx context.Context, keys []uint32, opts ...BatchOption) error {
	cfg := newBatchConfig(opts)
	return runChunks(ctx, cfg, "table.delete", len(keys), func(_, start, end int) (probes, casRetries int) {
		for _, k := range keys[start:end] {
			probes += t.deleteProbed(k)
		}
		return probes, 0
	})
}
