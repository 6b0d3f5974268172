// /home/krylon/go/src/github.com/blicero/spesen/platform/platform.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 22:41:30 krylon>

// Package platform delivers notifications to the user, as a short in-app
// message (a "toast") and as a desktop notification.
package platform

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
)

// Toaster displays a short, transient message.
type Toaster interface {
	Toast(msg string)
}

// Pusher posts notifications through the operating system and can withdraw
// them again.
type Pusher interface {
	Push(title, body string) error
	CancelAll() error
}

// ConsoleToaster writes toasts to an io.Writer, one per line.
type ConsoleToaster struct {
	lock sync.Mutex
	w    io.Writer
}

// NewConsoleToaster returns a Toaster writing to w.
func NewConsoleToaster(w io.Writer) *ConsoleToaster {
	return &ConsoleToaster{w: w}
} // func NewConsoleToaster(w io.Writer) *ConsoleToaster

// Toast writes msg along with the current time.
func (c *ConsoleToaster) Toast(msg string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	fmt.Fprintf(c.w, "%s [%s] %s\n", // nolint: errcheck
		time.Now().Format(common.TimestampFormatTime),
		common.AppName,
		msg)
} // func (c *ConsoleToaster) Toast(msg string)

// NopPusher discards all notifications. It is used when no notification
// service is available.
type NopPusher struct{}

// Push does nothing.
func (NopPusher) Push(title, body string) error { return nil }

// CancelAll does nothing.
func (NopPusher) CancelAll() error { return nil }
