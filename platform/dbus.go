// /home/krylon/go/src/github.com/blicero/spesen/platform/dbus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 23:02:58 krylon>

package platform

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/logdomain"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	closeMethod  = "org.freedesktop.Notifications.CloseNotification"
)

// Caller is the part of a DBus object DBusPusher needs.
type Caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusPusher posts desktop notifications via the freedesktop.org
// notification service on the session bus.
type DBusPusher struct {
	log  *log.Logger
	obj  Caller
	lock sync.Mutex
	ids  []uint32
}

// NewDBusPusher connects to the session bus.
func NewDBusPusher() (*DBusPusher, error) {
	var (
		err error
		bus *dbus.Conn
	)

	if bus, err = dbus.SessionBus(); err != nil {
		return nil, fmt.Errorf("cannot connect to DBus session bus: %w", err)
	}

	return NewDBusPusherWith(bus.Object(notifyObj, notifyPath))
} // func NewDBusPusher() (*DBusPusher, error)

// NewDBusPusherWith creates a DBusPusher that talks to obj.
func NewDBusPusherWith(obj Caller) (*DBusPusher, error) {
	var (
		err error
		p   = &DBusPusher{obj: obj}
	)

	if p.log, err = common.GetLogger(logdomain.Platform); err != nil {
		return nil, err
	}

	return p, nil
} // func NewDBusPusherWith(obj Caller) (*DBusPusher, error)

// Push posts a notification and remembers its ID, so CancelAll can close it.
func (p *DBusPusher) Push(title, body string) error {
	var (
		err error
		id  uint32
		res = p.obj.Call(
			notifyMethod,
			0,
			common.AppName,
			uint32(0),
			"",
			title,
			body,
			[]string{},
			map[string]dbus.Variant{},
			int32(-1),
		)
	)

	if res.Err != nil {
		p.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			title,
			res.Err.Error())
		return res.Err
	} else if err = res.Store(&id); err != nil {
		p.log.Printf("[ERROR] Cannot read ID of Notification %q: %s\n",
			title,
			err.Error())
		return err
	}

	p.lock.Lock()
	p.ids = append(p.ids, id)
	p.lock.Unlock()

	return nil
} // func (p *DBusPusher) Push(title, body string) error

// CancelAll closes every notification posted by this DBusPusher.
// It tries all of them and returns the last error it encountered.
func (p *DBusPusher) CancelAll() error {
	var (
		err error
		ids []uint32
	)

	p.lock.Lock()
	ids, p.ids = p.ids, nil
	p.lock.Unlock()

	for _, id := range ids {
		var res = p.obj.Call(closeMethod, 0, id)
		if res.Err != nil {
			p.log.Printf("[ERROR] Cannot close Notification %d: %s\n",
				id,
				res.Err.Error())
			err = res.Err
		}
	}

	return err
} // func (p *DBusPusher) CancelAll() error

// Outstanding returns the number of notifications posted and not yet
// cancelled.
func (p *DBusPusher) Outstanding() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.ids)
} // func (p *DBusPusher) Outstanding() int
