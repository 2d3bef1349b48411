package editor

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Health is the supervisor's state.
type Health string

// The two supervisor states.
const (
	Healthy Health = "healthy"
	Faulted Health = "faulted"
)

// A Supervisor wraps pipeline calls at the composition root. A panic in
// a wrapped call faults the supervisor; a reset transition restores the
// initial state through the reset callback.
type Supervisor struct {
	mu    sync.Mutex
	state Health
	fault error
	reset func()
	log   logrus.FieldLogger
}

// NewSupervisor returns a healthy Supervisor. reset is invoked on Reset
// to bring the supervised pipeline back to its initial state.
func NewSupervisor(reset func(), log logrus.FieldLogger) *Supervisor {
	return &Supervisor{state: Healthy, reset: reset, log: log}
}

// Do runs fn, converting a panic into a recorded fault. While faulted,
// calls are refused with the recorded fault until Reset is requested.
func (s *Supervisor) Do(fn func()) (err error) {
	s.mu.Lock()
	if s.state == Faulted {
		fault := s.fault
		s.mu.Unlock()
		return fault
	}
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, false)
			s.log.Errorf("[PANIC RECOVER] %s %s", err, stack[:length])

			s.mu.Lock()
			s.state = Faulted
			s.fault = err
			s.mu.Unlock()
		}
	}()

	fn()
	return nil
}

// State returns the current supervisor state.
func (s *Supervisor) State() Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fault returns the recorded fault, or nil while healthy.
func (s *Supervisor) Fault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Reset clears the fault and transitions back to Healthy, restoring the
// supervised pipeline through the reset callback.
func (s *Supervisor) Reset() {
	s.mu.Lock()
	s.state = Healthy
	s.fault = nil
	reset := s.reset
	s.mu.Unlock()

	if reset != nil {
		reset()
	}
}
