// keygen.go: random key generation for tests and benchmarks
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package arion

import "math/rand"

// GenerateKeys returns n keys drawn uniformly from [0, capacity/2),
// deliberately producing duplicates (the workload this container is
// tuned for is dense, collision-heavy integer IDs). Any generated key
// equal to Empty is remapped to Empty+1, mirroring the original
// generator's assumption that the sentinel is the maximum
// representable key.
//
// GenerateKeys is a test/benchmark helper, not part of the core
// protocol: the core never generates its own keys.
func GenerateKeys(n int, capacity uint32) []uint32 {
	keys := make([]uint32, n)
	half := capacity / 2
	if half == 0 {
		half = 1
	}
	for i := range keys {
		k := uint32(rand.Int63n(int64(half)))
		if k == Empty {
			k = Empty + 1
		}
		keys[i] = k
	}
	return keys
}
