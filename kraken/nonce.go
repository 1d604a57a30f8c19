package kraken

import (
	"strconv"
	"time"

	"go.uber.org/atomic"
)

// NonceGenerator issues strictly increasing nonces of the form
// <unix seconds><6 digit microseconds>. When the clock does not advance
// between two calls (or steps back) the previous value plus one is issued.
// The zero value reads the wall clock.
type NonceGenerator struct {
	now  func() time.Time
	last atomic.Int64
}

func NewNonceGenerator() *NonceGenerator {
	return &NonceGenerator{now: time.Now}
}

// newNonceGeneratorWithClock is used by tests to pin the clock.
func newNonceGeneratorWithClock(now func() time.Time) *NonceGenerator {
	return &NonceGenerator{now: now}
}

// Next is safe for concurrent use.
func (g *NonceGenerator) Next() string {
	now := g.now
	if now == nil {
		now = time.Now
	}
	candidate := clockNonce(now())
	for {
		last := g.last.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if g.last.CAS(last, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}

// clockNonce renders t as seconds followed by exactly six microsecond digits.
func clockNonce(t time.Time) int64 {
	micros := int64(t.Nanosecond() / 1000)
	return t.Unix()*1000000 + micros
}
