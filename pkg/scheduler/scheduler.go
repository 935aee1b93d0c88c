// Package scheduler is the consumer-side boundary for replaying a
// Solution's moves onto a host-owned mutable State handle: an ordered
// move queue, pacing between steps, and a typed observer list notified
// after each applied move. Per spec.md §4.C13 this is an interface
// contract only — the teacher's CLI has no playback/UI layer to ground
// it on, so it is modeled as a typed observer list rather than the
// inheritance-style notification hooks some GUI toolkits use.
package scheduler

import (
	"sync"
	"time"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// Observer is notified after each move is applied to the current state.
type Observer interface {
	OnStateChanged(current *model.State, applied model.Move)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(current *model.State, applied model.Move)

func (f ObserverFunc) OnStateChanged(current *model.State, applied model.Move) { f(current, applied) }

// Scheduler replays an ordered queue of Moves onto a current State,
// pacing applications by StepDelay and notifying observers after each
// one. It is safe for concurrent Enqueue/Clear calls while Run is
// draining the queue on another goroutine.
type Scheduler struct {
	mu        sync.Mutex
	current   *model.State
	queue     []model.Move
	observers []Observer
	stepDelay time.Duration
	interrupt chan struct{}
}

// New creates a Scheduler seeded with the given initial state.
func New(initial *model.State) *Scheduler {
	return &Scheduler{current: initial, interrupt: make(chan struct{}, 1)}
}

// Current returns the scheduler's current state.
func (s *Scheduler) Current() *model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetStepDelay sets the pacing delay applied between steps during Run.
func (s *Scheduler) SetStepDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepDelay = d
}

// AddObserver registers an observer notified after every applied move.
func (s *Scheduler) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Enqueue appends a single move to the playback queue.
func (s *Scheduler) Enqueue(m model.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, m)
}

// EnqueueAll appends an ordered move list to the playback queue. Replaying
// a Solution is equivalent to calling EnqueueAll(sol.Moves).
func (s *Scheduler) EnqueueAll(moves []model.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, moves...)
}

// Clear empties the pending queue without affecting a step currently in
// flight.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
}

// ClearInterrupt empties the pending queue and aborts the step currently
// playing, if Run is paced with a non-zero StepDelay and waiting between
// steps.
func (s *Scheduler) ClearInterrupt() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
	select {
	case s.interrupt <- struct{}{}:
	default:
	}
}

// Run drains the queue in order, applying each move via model.Apply,
// pacing by StepDelay between applications, and notifying every observer
// after each one. It returns when the queue is empty, when a move fails
// to apply, or early if ClearInterrupt fires mid-wait; it takes no
// context, so Clear/ClearInterrupt are the only abort paths. Returns the
// number of moves actually applied.
func (s *Scheduler) Run() (int, error) {
	applied := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return applied, nil
		}
		m := s.queue[0]
		s.queue = s.queue[1:]
		delay := s.stepDelay
		cur := s.current
		s.mu.Unlock()

		next, err := model.Apply(cur, m)
		if err != nil {
			return applied, err
		}

		s.mu.Lock()
		s.current = next
		observers := append([]Observer(nil), s.observers...)
		s.mu.Unlock()

		for _, o := range observers {
			o.OnStateChanged(next, m)
		}
		applied++

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-s.interrupt:
				return applied, nil
			}
		}
	}
}
