// Package schedule contains the timing primitives of the editing
// pipeline: the debounced render scheduler and the throttled autosave.
package schedule

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultRenderDelay is the quiet period before a render is performed.
const DefaultRenderDelay = 300 * time.Millisecond

// A RenderScheduler debounces render requests so that rapid successive
// submissions produce at most one render per quiet period. Only the last
// submitted source is rendered; intermediate states are discarded.
type RenderScheduler struct {
	mu        sync.Mutex
	debounced func(func())
	render    func(source string) string
	sink      func(html string)
	closed    bool
}

// NewRenderScheduler returns a scheduler pushing rendered HTML to sink.
// A delay of 0 selects DefaultRenderDelay.
func NewRenderScheduler(delay time.Duration, render func(string) string, sink func(string)) *RenderScheduler {
	if delay <= 0 {
		delay = DefaultRenderDelay
	}

	return &RenderScheduler{
		debounced: debounce.New(delay),
		render:    render,
		sink:      sink,
	}
}

// Submit schedules a render of source. Any previously pending render is
// superseded, not queued.
func (s *RenderScheduler) Submit(source string) {
	s.debounced(func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.sink(s.render(source))
	})
}

// Close drops any pending render. The sink is never invoked afterwards.
func (s *RenderScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
