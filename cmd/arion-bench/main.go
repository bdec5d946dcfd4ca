// arion-bench is the benchmark harness for the arion slot arrays: a
// narrow external collaborator (spec.md §1) that is not part of the
// core protocol. It reproduces the parallel-vs-serial comparison of
// original_source/hashset/benchmark.c and hashtable/benchmark.c for
// both container variants.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/agilira/go-timecache"
	"github.com/spf13/pflag"

	"github.com/agilira/arion"
)

// systemTimeProvider is the production arion.TimeProvider for this
// harness: it delegates to go-timecache's background-refreshed clock
// instead of calling time.Now on every sample.
type systemTimeProvider struct{}

func (systemTimeProvider) Now() int64 { return timecache.CachedTimeNano() }

func main() {
	numKeys := pflag.IntP("keys", "k", 10_000_000, "number of operands to benchmark")
	numThreads := pflag.IntP("threads", "t", 4, "number of worker goroutines for the parallel driver")
	pflag.Parse()

	runtime.GOMAXPROCS(*numThreads)

	fmt.Println("Benchmarking Lock-Free Hash Set/Table with goroutine worker pools")
	fmt.Printf("Number of Keys: %d\n\n", *numKeys)
	fmt.Printf("Number of Threads: %d\n\n", *numThreads)

	capacity := arion.NextPowerOfTwo(uint32(*numKeys))
	fmt.Printf("Capacity: %d\n\n", capacity)

	var tp arion.TimeProvider = systemTimeProvider{}

	if err := runSetBenchmark(tp, *numKeys, *numThreads, capacity); err != nil {
		fmt.Fprintln(os.Stderr, "set benchmark failed:", err)
		os.Exit(1)
	}
	if err := runTableBenchmark(tp, *numKeys, *numThreads, capacity); err != nil {
		fmt.Fprintln(os.Stderr, "table benchmark failed:", err)
		os.Exit(1)
	}
}

func elapsedSeconds(startNanos, endNanos int64) float64 {
	return float64(endNanos-startNanos) / 1e9
}

func runSetBenchmark(tp arion.TimeProvider, numKeys, threads int, capacity uint32) error {
	fmt.Println("===== Set =====")
	keys := arion.GenerateKeys(numKeys, capacity)

	parallel, err := arion.NewSet(capacity)
	if err != nil {
		return err
	}
	serial, err := arion.NewSet(capacity)
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := []arion.BatchOption{arion.WithWorkers(threads)}

	start := tp.Now()
	if err := parallel.BatchInsert(ctx, keys, opts...); err != nil {
		return err
	}
	parallelInsert := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for _, k := range keys {
		serial.Insert(k)
	}
	serialInsert := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	if _, err := parallel.BatchContains(ctx, keys, opts...); err != nil {
		return err
	}
	parallelContains := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for _, k := range keys {
		serial.Contains(k)
	}
	serialContains := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	if err := parallel.BatchDelete(ctx, keys, opts...); err != nil {
		return err
	}
	parallelDelete := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for _, k := range keys {
		serial.Delete(k)
	}
	serialDelete := elapsedSeconds(start, tp.Now())

	printSummary("Insert", parallelInsert, serialInsert)
	printSummary("Contains", parallelContains, serialContains)
	printSummary("Delete", parallelDelete, serialDelete)
	fmt.Println()
	return nil
}

func runTableBenchmark(tp arion.TimeProvider, numKeys, threads int, capacity uint32) error {
	fmt.Println("===== Table =====")
	keys := arion.GenerateKeys(numKeys, capacity)
	values := arion.GenerateKeys(numKeys, capacity)

	parallel, err := arion.NewTable(capacity)
	if err != nil {
		return err
	}
	serial, err := arion.NewTable(capacity)
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := []arion.BatchOption{arion.WithWorkers(threads)}

	start := tp.Now()
	if err := parallel.BatchInsert(ctx, keys, values, opts...); err != nil {
		return err
	}
	parallelInsert := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for i, k := range keys {
		serial.Insert(k, values[i])
	}
	serialInsert := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	if _, err := parallel.BatchLookup(ctx, keys, opts...); err != nil {
		return err
	}
	parallelLookup := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for _, k := range keys {
		serial.Lookup(k)
	}
	serialLookup := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	if err := parallel.BatchDelete(ctx, keys, opts...); err != nil {
		return err
	}
	parallelDelete := elapsedSeconds(start, tp.Now())

	start = tp.Now()
	for _, k := range keys {
		serial.Delete(k)
	}
	serialDelete := elapsedSeconds(start, tp.Now())

	printSummary("Insert", parallelInsert, serialInsert)
	printSummary("Lookup", parallelLookup, serialLookup)
	printSummary("Delete", parallelDelete, serialDelete)
	fmt.Println()
	return nil
}

func printSummary(op string, parallel, serial float64) {
	speedup := 0.0
	if parallel > 0 {
		speedup = serial / parallel
	}
	fmt.Printf("%-8s - Parallel: %f s | Serial: %f s | Speedup: %.2fx\n", op, parallel, serial, speedup)
}
