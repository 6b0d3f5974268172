// /home/krylon/go/src/github.com/blicero/spesen/platform/recorder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 23:10:44 krylon>

package platform

import "sync"

// Recorder is a Toaster and Pusher that remembers what it was asked to
// deliver. Setting PushErr makes Push fail.
type Recorder struct {
	lock      sync.Mutex
	Toasts    []string
	Pushed    []string
	Cancelled int
	PushErr   error
}

// Toast records msg.
func (r *Recorder) Toast(msg string) {
	r.lock.Lock()
	r.Toasts = append(r.Toasts, msg)
	r.lock.Unlock()
} // func (r *Recorder) Toast(msg string)

// Push records the notification as "title: body".
func (r *Recorder) Push(title, body string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.PushErr != nil {
		return r.PushErr
	}

	r.Pushed = append(r.Pushed, title+": "+body)
	return nil
} // func (r *Recorder) Push(title, body string) error

// CancelAll counts the call and forgets the pushed notifications.
func (r *Recorder) CancelAll() error {
	r.lock.Lock()
	r.Cancelled++
	r.Pushed = nil
	r.lock.Unlock()
	return nil
} // func (r *Recorder) CancelAll() error

// Snapshot returns copies of the recorded toasts and pushes.
func (r *Recorder) Snapshot() (toasts, pushed []string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	toasts = append([]string(nil), r.Toasts...)
	pushed = append([]string(nil), r.Pushed...)
	return
} // func (r *Recorder) Snapshot() (toasts, pushed []string)
