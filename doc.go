// Package arion provides lock-free, open-addressed, fixed-capacity
// concurrent associative containers keyed by uint32: Set (presence-only)
// and Table (key -> value).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
//
// # Overview
//
// Both containers are backed by a contiguous array of power-of-two
// capacity, mutated in place by any number of goroutines through
// sync/atomic compare-and-swap, load and store operations. There are no
// locks, no hazard pointers, no epoch-based reclamation, and no resizing:
// capacity is fixed at construction time and callers are responsible for
// keeping the load factor below 1.
//
//	set, err := arion.NewSet(1 << 20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	set.Insert(42)
//	set.Contains(42) // true
//
//	table, err := arion.NewTable(1 << 20)
//	table.Insert(42, 100)
//	v, ok := table.LookupFull(42) // 100, true
//
// # Concurrency model
//
// Insert, Contains, Lookup and Delete are linearizable against the slot
// array: each appears to take effect atomically at some point between
// its invocation and its return. Delete is tombstone-free, which means a
// lookup for a key whose probe chain passes through a slot emptied by a
// delete of an unrelated, earlier key on the same chain (whether that
// delete ran before the lookup or concurrently with it) can observe a
// false negative. This is a documented property of the
// algorithm (see Table.Delete), not a bug: callers that need exact
// lookup semantics across concurrent deletes must externally
// synchronize, or accept the false-negative window.
//
// # Batch operations
//
// BatchInsert, BatchContains, BatchLookup and BatchDelete fan an operand
// slice across a static-partitioned worker pool (golang.org/x/sync/errgroup).
// No ordering is defined between distinct operands in the same batch:
// the result is equivalent to some sequential interleaving of the
// per-operand operations, nothing more.
//
// # Non-goals
//
// arion deliberately does not provide dynamic resizing, safe reclamation
// of keys that collide past a deleted slot, iteration, persistence,
// ordering, custom hash functions, or variable-width keys.
package arion
