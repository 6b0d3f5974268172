// /home/krylon/go/src/github.com/blicero/spesen/scheduler/clock.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 21:15:42 krylon>

package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock is the source of time for a Scheduler.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the Clock backed by the time package.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc calls f in its own goroutine after d has elapsed.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
} // func (SystemClock) AfterFunc(d time.Duration, f func()) Timer

// ManualClock is a Clock that only moves when told to. Callbacks run
// synchronously inside Advance, in the order they are due.
type ManualClock struct {
	lock   sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	due   time.Time
	seq   int
	f     func()
	done  bool
}

// NewManualClock returns a ManualClock set to t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
} // func NewManualClock(t time.Time) *ManualClock

// Now returns the clock's current time.
func (m *ManualClock) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
} // func (m *ManualClock) Now() time.Time

// AfterFunc registers f to be called once the clock has advanced by d.
func (m *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.seq++
	var t = &manualTimer{
		clock: m,
		due:   m.now.Add(d),
		seq:   m.seq,
		f:     f,
	}

	m.timers = append(m.timers, t)
	return t
} // func (m *ManualClock) AfterFunc(d time.Duration, f func()) Timer

// Stop cancels the timer. It returns false if the timer had already fired
// or been stopped.
func (t *manualTimer) Stop() bool {
	var m = t.clock
	m.lock.Lock()
	defer m.lock.Unlock()

	if t.done {
		return false
	}

	t.done = true
	m.remove(t)
	return true
} // func (t *manualTimer) Stop() bool

func (m *ManualClock) remove(t *manualTimer) {
	for i, x := range m.timers {
		if x == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
} // func (m *ManualClock) remove(t *manualTimer)

// Advance moves the clock forward by d, firing every timer that becomes due
// on the way. Timers registered by callbacks fire as well if they fall
// within the interval.
func (m *ManualClock) Advance(d time.Duration) {
	m.lock.Lock()
	var target = m.now.Add(d)

	for {
		sort.Slice(m.timers, func(i, j int) bool {
			var a, b = m.timers[i], m.timers[j]
			if a.due.Equal(b.due) {
				return a.seq < b.seq
			}
			return a.due.Before(b.due)
		})

		if len(m.timers) == 0 || m.timers[0].due.After(target) {
			break
		}

		var t = m.timers[0]
		m.timers = m.timers[1:]
		t.done = true
		if t.due.After(m.now) {
			m.now = t.due
		}

		m.lock.Unlock()
		t.f()
		m.lock.Lock()
	}

	m.now = target
	m.lock.Unlock()
} // func (m *ManualClock) Advance(d time.Duration)

// Set moves the clock forward to t. It does nothing if t is in the past.
func (m *ManualClock) Set(t time.Time) {
	var d = t.Sub(m.Now())
	if d > 0 {
		m.Advance(d)
	}
} // func (m *ManualClock) Set(t time.Time)

// Pending returns the number of timers that have not fired yet.
func (m *ManualClock) Pending() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.timers)
} // func (m *ManualClock) Pending() int
