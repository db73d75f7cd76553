// Package syncer debounces state changes into whole-document writes:
// local cache first, then the remote store, with a status flag the chat
// surface can show.
package syncer

import (
	"sync"
	"time"
)

// Debouncer arms a single delayed action. Re-arming cancels the pending
// timer, so rapid successive changes coalesce into one firing; at most
// one timer is ever pending.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Arm schedules fn after delay, cancelling any previously armed action.
func (d *Debouncer) Arm(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancels any pending action.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
