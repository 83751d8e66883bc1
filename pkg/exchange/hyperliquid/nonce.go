package hyperliquid

import (
	"sync"
	"time"
)

// NonceClock issues strictly increasing millisecond nonces. Calls landing in
// the same millisecond, or after a backward wall-clock step, bump the last
// issued value by one instead of reusing it.
type NonceClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewNonceClock builds a NonceClock on the given time source. A nil now uses
// time.Now.
func NewNonceClock(now func() time.Time) *NonceClock {
	if now == nil {
		now = time.Now
	}
	return &NonceClock{now: now}
}

// Next returns the next nonce.
func (c *NonceClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	nonce := c.now().UnixMilli()
	if nonce <= c.last {
		nonce = c.last + 1
	}
	c.last = nonce
	return nonce
}
