// /home/krylon/go/src/github.com/blicero/spesen/platform/platform_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 23:24:17 krylon>

package platform

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBus struct {
	calls  []string
	args   [][]interface{}
	nextID uint32
	fail   error
}

func (f *fakeBus) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, method)
	f.args = append(f.args, args)

	if f.fail != nil {
		return &dbus.Call{Err: f.fail}
	}

	f.nextID++
	return &dbus.Call{Body: []interface{}{f.nextID}}
} // func (f *fakeBus) Call(...) *dbus.Call

func TestConsoleToaster(t *testing.T) {
	var (
		buf bytes.Buffer
		c   = NewConsoleToaster(&buf)
	)

	c.Toast("New transaction: 12.5 for Food")

	var line = buf.String()
	assert.True(t, strings.HasSuffix(line, "New transaction: 12.5 for Food\n"), line)
	assert.Contains(t, line, "[Spesen]")
} // func TestConsoleToaster(t *testing.T)

func TestDBusPusher(t *testing.T) {
	var bus = &fakeBus{}

	p, err := NewDBusPusherWith(bus)
	require.NoError(t, err)

	require.NoError(t, p.Push("Transaction", "New transaction: 500 for Rent"))
	require.NoError(t, p.Push("Reminder", "Reminder: ..."))
	assert.Equal(t, 2, p.Outstanding())

	require.Len(t, bus.args, 2)
	assert.Equal(t, notifyMethod, bus.calls[0])
	assert.Equal(t, "Transaction", bus.args[0][3])
	assert.Equal(t, "New transaction: 500 for Rent", bus.args[0][4])

	require.NoError(t, p.CancelAll())
	assert.Equal(t, 0, p.Outstanding())
	assert.Equal(t, []string{notifyMethod, notifyMethod, closeMethod, closeMethod}, bus.calls)
	assert.Equal(t, uint32(1), bus.args[2][0])
	assert.Equal(t, uint32(2), bus.args[3][0])
} // func TestDBusPusher(t *testing.T)

func TestDBusPusherFailure(t *testing.T) {
	var bus = &fakeBus{fail: errors.New("no notification daemon")}

	p, err := NewDBusPusherWith(bus)
	require.NoError(t, err)

	assert.Error(t, p.Push("System", "Do you want to add this transaction?"))
	assert.Equal(t, 0, p.Outstanding())
	assert.NoError(t, p.CancelAll())
} // func TestDBusPusherFailure(t *testing.T)

func TestNopPusher(t *testing.T) {
	var p Pusher = NopPusher{}

	assert.NoError(t, p.Push("a", "b"))
	assert.NoError(t, p.CancelAll())
} // func TestNopPusher(t *testing.T)
