// Package outcome supplies the success/failure decisions for the
// simulated login and registration backends.
//
// The workbench has no real authentication service; forms succeed or
// fail locally. Handlers take a Source instead of reaching for ambient
// randomness so tests can force either outcome deterministically.
package outcome

import (
	"math/rand"
	"sync"
	"time"
)

// Source decides whether a simulated backend call succeeds.
type Source interface {
	Allow() bool
}

// Random is a Source that succeeds with probability Bias.
type Random struct {
	mu   sync.Mutex
	rng  *rand.Rand
	bias float64
}

// NewRandom creates a Random source. bias is the success probability in
// [0,1]; values outside the range are clamped. A zero seed draws one
// from the clock; any other seed makes the sequence reproducible.
func NewRandom(bias float64, seed int64) *Random {
	if bias < 0 {
		bias = 0
	}
	if bias > 1 {
		bias = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		rng:  rand.New(rand.NewSource(seed)),
		bias: bias,
	}
}

// Allow reports a biased coin flip.
func (r *Random) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.bias
}

// Fixed is a Source that always returns its value. Use in tests.
type Fixed bool

// Allow returns the fixed value.
func (f Fixed) Allow() bool {
	return bool(f)
}
