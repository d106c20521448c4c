package services

import "time"

// Waiter paces browser interactions. The target site re-renders forms and
// confirmation banners asynchronously with no reliable completion event,
// so production uses fixed settle delays; tests inject an instant waiter.
type Waiter interface {
	Settle(d time.Duration)
}

type fixedWaiter struct{}

func (fixedWaiter) Settle(d time.Duration) {
	time.Sleep(d)
}

// NewFixedWaiter returns the production wait policy: sleep the full
// settle duration.
func NewFixedWaiter() Waiter {
	return fixedWaiter{}
}
