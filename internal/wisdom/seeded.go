package wisdom

import (
	"strconv"
	"strings"
)

// Seeded is a linear congruential generator keyed by a calendar date. Every
// call with the same date string produces the identical value sequence, so
// selections stay stable for the whole day. This is the only generator the
// daily selection path may use; presentation helpers use ordinary randomness
// and live in ambient.go.
type Seeded struct {
	seed int64
}

// NewSeeded derives the seed from a YYYY-MM-DD date by concatenating its
// digits into an integer.
func NewSeeded(date string) *Seeded {
	n, _ := strconv.ParseInt(strings.ReplaceAll(date, "-", ""), 10, 64)
	return &Seeded{seed: n}
}

// Next returns the next value in [0, 1).
func (r *Seeded) Next() float64 {
	r.seed = (r.seed*9301 + 49297) % 233280
	return float64(r.seed) / 233280
}

// pick indexes a slice of length n with one draw.
func (r *Seeded) pick(n int) int {
	return int(r.Next() * float64(n))
}
