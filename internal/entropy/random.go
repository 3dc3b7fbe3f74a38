// Package entropy provides the seedable random sources used by terrain
// generation, placement and animal decisions.
// A nil or ambient global generator is never used inside the core.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
)

// Source is the uniform random source consumed by the core.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// New returns a deterministic source for the given seed.
func New(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// Stream returns the source for one concern of a run. Concerns use fixed
// offsets from the run seed so each stays reproducible on its own.
func Stream(seed, offset int64) *mrand.Rand {
	return New(seed + offset)
}

// Seed draws a fresh non-zero seed from crypto/rand. Used when a caller
// asked for seed 0.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed seed.
		slog.Warn("crypto seed unavailable, using fallback", "error", err)
		return 1
	}
	s := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}
