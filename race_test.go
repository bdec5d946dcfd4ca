// race_test.go: comprehensive data race tests for arion's slot arrays
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package arion

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRace_SetConcurrentInsertContains exercises concurrent Insert and
// Contains on a heavily colliding key space.
func TestRace_SetConcurrentInsertContains(t *testing.T) {
	s, err := NewSet(1024)
	require.NoError(t, err)

	const numGoroutines = 100
	const numOperations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				k := uint32((id*numOperations+j)%100) + 1
				if j%2 == 0 {
					s.Insert(k)
				} else {
					s.Contains(k)
				}
			}
		}(i)
	}
	wg.Wait()
}

// TestRace_SetConcurrentSameKeyInsert has every goroutine race to
// insert the same key: exactly one CAS should win, all others should
// observe their own key already present and return.
func TestRace_SetConcurrentSameKeyInsert(t *testing.T) {
	s, err := NewSet(64)
	require.NoError(t, err)

	const numGoroutines = 200
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			s.Insert(42)
		}()
	}
	wg.Wait()

	require.True(t, s.Contains(42))
	occupied := 0
	for i := range s.slots {
		if s.slots[i].Load() != Empty {
			occupied++
		}
	}
	require.Equal(t, 1, occupied, "concurrent inserts of the same key must occupy exactly one slot")
}

// TestRace_TableConcurrentInsertLookupDelete hammers Insert, Lookup and
// Delete on the same small key space concurrently; it makes no
// assertion of its own and only checks that the race detector stays
// quiet and that every operation returns.
func TestRace_TableConcurrentInsertLookupDelete(t *testing.T) {
	tbl, err := NewTable(256)
	require.NoError(t, err)

	const numGoroutines = 64
	const numOperations = 2000
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				k := uint32(j%50) + 1
				switch j % 3 {
				case 0:
					tbl.Insert(k, uint32(id*numOperations+j))
				case 1:
					tbl.Lookup(k)
				case 2:
					tbl.Delete(k)
				}
			}
		}(i)
	}
	wg.Wait()
}

// TestRace_TableUniqueKeysNoMemoryBarrierViolation uses one unique key
// per goroutine, so every Insert immediately followed by a Lookup must
// observe exactly the value just written: no other goroutine can ever
// race on that key.
func TestRace_TableUniqueKeysNoMemoryBarrierViolation(t *testing.T) {
	tbl, err := NewTable(8192)
	require.NoError(t, err)

	const numGoroutines = 32
	const numOperations = 200
	var wg sync.WaitGroup
	var inconsistencies int64
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				k := uint32(id*numOperations+j) + 1
				v := k * 3
				tbl.Insert(k, v)
				if got, ok := tbl.LookupFull(k); !ok || got != v {
					atomic.AddInt64(&inconsistencies, 1)
				}
			}
		}(i)
	}
	wg.Wait()

	require.Zero(t, inconsistencies)
}

// TestRace_BatchDriverConcurrentWithDirectCalls mixes BatchInsert
// against a Set that direct-call goroutines are simultaneously
// mutating, to confirm the worker pool shares the same atomics and not
// a stale copy.
func TestRace_BatchDriverConcurrentWithDirectCalls(t *testing.T) {
	s, err := NewSet(4096)
	require.NoError(t, err)

	keys := make([]uint32, 2000)
	for i := range keys {
		keys[i] = uint32(i) + 1
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, k := range keys[:1000] {
			s.Insert(k)
		}
	}()

	require.NoError(t, s.BatchInsert(context.Background(), keys[1000:], WithWorkers(8)))
	wg.Wait()

	for _, k := range keys {
		require.True(t, s.Contains(k))
	}
}
