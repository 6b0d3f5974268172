// /home/krylon/go/src/github.com/blicero/spesen/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 21:52:36 krylon>

// Package scheduler runs callbacks at some point in the future, either once
// or at recurring times of day.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/logdomain"
)

// Task is the handle to a scheduled callback.
type Task struct {
	ID     string
	Name   string
	lock   sync.Mutex
	timer  Timer
	due    time.Time
	active bool
}

// Stop cancels the Task. It returns false if the Task was not active
// anymore, i.e. a one-shot Task had already run or the Task had been
// stopped before.
func (t *Task) Stop() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.active {
		return false
	}

	t.active = false
	t.timer.Stop()
	return true
} // func (t *Task) Stop() bool

// Active returns true if the Task is still waiting to run.
func (t *Task) Active() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.active
} // func (t *Task) Active() bool

// Due returns the time the Task is going to run next.
func (t *Task) Due() time.Time {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.due
} // func (t *Task) Due() time.Time

func (t *Task) String() string {
	return fmt.Sprintf("Task{ ID: %s, Name: %q, Due: %s }",
		t.ID,
		t.Name,
		t.Due().Format(common.TimestampFormat))
} // func (t *Task) String() string

// Scheduler creates Tasks on top of a Clock.
type Scheduler struct {
	clock Clock
	log   *log.Logger
}

// New creates a Scheduler. If clock is nil, the system clock is used.
func New(clock Clock) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{clock: clock}
	)

	if s.clock == nil {
		s.clock = SystemClock{}
	}

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return s, nil
} // func New(clock Clock) (*Scheduler, error)

// Clock returns the Scheduler's Clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
} // func (s *Scheduler) Clock() Clock

// After runs fn once, after d has elapsed.
func (s *Scheduler) After(d time.Duration, name string, fn func()) *Task {
	var t = &Task{
		ID:     common.GetUUID(),
		Name:   name,
		active: true,
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.due = s.clock.Now().Add(d)
	t.timer = s.clock.AfterFunc(d, func() {
		t.lock.Lock()
		if !t.active {
			t.lock.Unlock()
			return
		}
		t.active = false
		t.lock.Unlock()

		s.log.Printf("[TRACE] Run %s\n", t.Name)
		fn()
	})

	s.log.Printf("[DEBUG] Scheduled %s (%s) in %s\n",
		t.Name,
		t.ID,
		d)

	return t
} // func (s *Scheduler) After(d time.Duration, name string, fn func()) *Task

// Every runs fn at each occurrence of sched, until the returned Task is
// stopped. After each run, the Task is rescheduled for the next occurrence
// following the current time.
func (s *Scheduler) Every(sched *Daily, name string, fn func()) *Task {
	var t = &Task{
		ID:     common.GetUUID(),
		Name:   name,
		active: true,
	}

	var fire func()

	fire = func() {
		t.lock.Lock()
		if !t.active {
			t.lock.Unlock()
			return
		}
		t.lock.Unlock()

		s.log.Printf("[TRACE] Run %s\n", t.Name)
		fn()

		t.lock.Lock()
		defer t.lock.Unlock()
		if !t.active {
			return
		}

		var now = s.clock.Now()
		t.due = sched.After(now)
		t.timer = s.clock.AfterFunc(t.due.Sub(now), fire)
		s.log.Printf("[DEBUG] Rescheduled %s for %s\n",
			t.Name,
			t.due.Format(common.TimestampFormat))
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	var now = s.clock.Now()
	t.due = sched.Next(now)
	t.timer = s.clock.AfterFunc(t.due.Sub(now), fire)

	s.log.Printf("[DEBUG] Scheduled %s (%s, %s) for %s\n",
		t.Name,
		t.ID,
		sched,
		t.due.Format(common.TimestampFormat))

	return t
} // func (s *Scheduler) Every(sched *Daily, name string, fn func()) *Task
