// Package entropy provides the seeded random source injected into the
// growth engine for pest and disease dice rolls. Keeping the source explicit
// makes every simulation run reproducible from its seed.
package entropy

import "math/rand/v2"

// Source wraps a seeded PCG generator. A nil Source falls back to the
// process-global generator, so zero-value wiring still works.
type Source struct {
	r *rand.Rand
}

// NewSource creates a deterministic source from seed.
func NewSource(seed int64) *Source {
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	if s == nil {
		return rand.Float64()
	}
	return s.r.Float64()
}

// Range returns a uniform float64 in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Float()*(hi-lo)
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if s == nil {
		return rand.IntN(n)
	}
	return s.r.IntN(n)
}
