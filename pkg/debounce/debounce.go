// Package debounce delays actions and lets callers cancel them before they
// run.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

// A Token cancels one scheduled action.
type Token struct {
	timer    *time.Timer
	canceled atomic.Bool
}

// Cancel prevents the action from running. It reports whether the action
// was still pending. Cancel on a nil Token is a no-op.
func (t *Token) Cancel() bool {
	if t == nil {
		return false
	}
	if t.canceled.Swap(true) {
		return false
	}
	return t.timer.Stop()
}

func (t *Token) Canceled() bool {
	return t != nil && t.canceled.Load()
}

// Schedule runs action in its own goroutine after delay unless the returned
// token is canceled first.
func Schedule(delay time.Duration, action func()) *Token {
	t := new(Token)
	t.timer = time.AfterFunc(delay, func() {
		if t.canceled.Load() {
			return
		}
		action()
	})
	return t
}

// A Debouncer runs only the last of a burst of triggered actions, once the
// burst has been quiet for the configured delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending *Token
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels the pending action, if any, and schedules action.
func (d *Debouncer) Trigger(action func()) *Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending.Cancel()
	d.pending = Schedule(d.delay, action)
	return d.pending
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending.Cancel()
	d.pending = nil
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
