package schedule

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period before a changed value is saved.
const DefaultAutosaveDelay = 2 * time.Second

// An Autosave watches a value and invokes a save callback at most once
// per quiet period, and only when the value actually changed since the
// last save. The initial value is recorded as already saved so that the
// default document is not persisted before the user touched it.
type Autosave struct {
	mu        sync.Mutex
	delay     time.Duration
	enabled   bool
	save      func(value string)
	timer     *time.Timer
	current   string
	lastSaved string
	closed    bool
}

// NewAutosave returns an Autosave tracking initial.
// A delay of 0 selects DefaultAutosaveDelay.
func NewAutosave(initial string, delay time.Duration, enabled bool, save func(string)) *Autosave {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}

	return &Autosave{
		delay:     delay,
		enabled:   enabled,
		save:      save,
		current:   initial,
		lastSaved: initial,
	}
}

// Observe records the current value. A change arms (or re-arms) the save
// timer; observing the last-saved value again leaves any pending timer
// to notice the revert when it fires.
func (a *Autosave) Observe(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	a.current = value
	if !a.enabled || value == a.lastSaved {
		return
	}

	a.cancelLocked()
	a.timer = time.AfterFunc(a.delay, a.fire)
}

// fire performs the scheduled save, skipping it if the value was
// reverted to the last saved state in the meantime.
func (a *Autosave) fire() {
	a.mu.Lock()

	if a.closed || !a.enabled || a.current == a.lastSaved {
		a.mu.Unlock()
		return
	}

	value := a.current
	a.lastSaved = value
	save := a.save
	a.mu.Unlock()

	save(value)
}

// ForceSave cancels any pending timer and saves the current value
// immediately, without an equality check. It is a no-op while disabled.
func (a *Autosave) ForceSave() {
	a.mu.Lock()

	if a.closed || !a.enabled {
		a.mu.Unlock()
		return
	}

	a.cancelLocked()
	value := a.current
	a.lastSaved = value
	save := a.save
	a.mu.Unlock()

	save(value)
}

// SetEnabled toggles the autosave. Disabling cancels any pending timer.
func (a *Autosave) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.enabled = enabled
	if !enabled {
		a.cancelLocked()
	}
}

// SetCallback replaces the save callback. A pending timer keeps running
// and fires against the new callback.
func (a *Autosave) SetCallback(save func(string)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.save = save
}

// Close cancels any pending timer. The callback is never invoked afterwards.
func (a *Autosave) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.cancelLocked()
}

func (a *Autosave) cancelLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
