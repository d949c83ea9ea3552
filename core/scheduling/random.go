package scheduling

import (
	"math/rand"
	"time"
)

// RandomSource picks disruption targets. Intn returns a value in [0, n).
type RandomSource interface {
	Intn(n int) int
}

// NewRandom returns a math/rand source. A zero seed is replaced by the
// current time.
func NewRandom(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
