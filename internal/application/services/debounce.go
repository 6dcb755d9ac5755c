package services

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period before a search fires
const DefaultDebounceDelay = 500 * time.Millisecond

// Debouncer collapses rapid repeated triggers into one callback invocation:
// each Trigger cancels the pending timer and restarts the window, so only the
// last value of a burst fires after the quiet period.
type Debouncer struct {
	delay time.Duration
	fn    func(value string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer invoking fn after delay. delay <= 0
// selects the 500ms default.
func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger restarts the window with a new value
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(value)
	})
}

// Stop cancels any pending invocation, e.g. on unmount
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
