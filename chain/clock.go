package chain

import "time"

// HeadTimeClock yields the head block time for the operation being applied.
// The processor sets it once per block, so every decision keyed on "now" is
// identical across independently executing nodes.
type HeadTimeClock struct {
	now time.Time
}

// NewHeadTimeClock creates a clock starting at the given head time
func NewHeadTimeClock(now time.Time) *HeadTimeClock {
	return &HeadTimeClock{now: now}
}

// Now returns the current head block time
func (c *HeadTimeClock) Now() time.Time {
	return c.now
}

// SetHeadTime advances the clock to the next block's timestamp
func (c *HeadTimeClock) SetHeadTime(now time.Time) {
	c.now = now
}
