package overview

import (
	"sync"
	"time"
)

// DefaultSettleDelay is the quiet period after the last resize before the
// height is measured again.
const DefaultSettleDelay = 200 * time.Millisecond

// Sizer owns the overview height. Mount measures once; each resize clears
// the height and schedules a single trailing re-measure.
//
// The measure and change callbacks run on whichever goroutine triggered
// them, including the clock's timer goroutine.
type Sizer struct {
	measure  func() int
	source   ResizeSource
	clock    Clock
	delay    time.Duration
	onChange func()

	mu          sync.Mutex
	height      int
	measured    bool
	mounted     bool
	seq         uint64
	pending     Timer
	unsubscribe func()
}

// SizerOption configures a Sizer.
type SizerOption func(*Sizer)

// WithClock replaces the system clock.
func WithClock(c Clock) SizerOption {
	return func(s *Sizer) { s.clock = c }
}

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) SizerOption {
	return func(s *Sizer) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithOnChange registers a callback invoked whenever the height changes,
// including when it is cleared.
func WithOnChange(fn func()) SizerOption {
	return func(s *Sizer) { s.onChange = fn }
}

// NewSizer creates an unmounted sizer.
func NewSizer(measure func() int, source ResizeSource, opts ...SizerOption) *Sizer {
	s := &Sizer{
		measure: measure,
		source:  source,
		clock:   SystemClock{},
		delay:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Height returns the stored height; ok is false while unset.
func (s *Sizer) Height() (height int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height, s.measured
}

// Mounted reports whether the sizer is currently mounted.
func (s *Sizer) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Mount measures synchronously and starts listening for resizes.
// Mounting twice is a no-op.
func (s *Sizer) Mount() {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	h := s.measure()

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.height = h
	s.measured = true
	s.mu.Unlock()

	unsubscribe := s.source.Subscribe(s.handleResize)

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		unsubscribe()
		return
	}
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.notify()
}

// Unmount stops listening and cancels any pending re-measure.
func (s *Sizer) Unmount() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = false
	s.seq++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *Sizer) handleResize() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.height = 0
	s.measured = false
	s.seq++
	seq := s.seq
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = s.clock.AfterFunc(s.delay, func() { s.settle(seq) })
	s.mu.Unlock()

	s.notify()
}

// settle re-measures unless a newer resize or an unmount superseded it.
func (s *Sizer) settle(seq uint64) {
	s.mu.Lock()
	if !s.mounted || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	h := s.measure()

	s.mu.Lock()
	if !s.mounted || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.height = h
	s.measured = true
	s.mu.Unlock()

	s.notify()
}

func (s *Sizer) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
