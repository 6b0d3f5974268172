// /home/krylon/go/src/github.com/blicero/spesen/clients/clientlib/lib_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:47:02 krylon>

package clientlib

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/blicero/spesen/objects"
	"github.com/blicero/spesen/objects/category"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend imitates the parts of the daemon's API the Client uses.
type backend struct {
	lock  sync.Mutex
	notes []objects.Notification
	forms map[string]map[string]string
}

func (b *backend) reply(w http.ResponseWriter, v interface{}) {
	var buf, _ = ffjson.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf) // nolint: errcheck
} // func (b *backend) reply(w http.ResponseWriter, v interface{})

func (b *backend) record(r *http.Request) {
	r.ParseForm() // nolint: errcheck
	var m = make(map[string]string)
	for k := range r.PostForm {
		m[k] = r.PostForm.Get(k)
	}

	b.lock.Lock()
	b.forms[r.URL.Path] = m
	b.lock.Unlock()
} // func (b *backend) record(r *http.Request)

func newBackend(t *testing.T) (*backend, *Client) {
	var (
		b = &backend{
			forms: make(map[string]map[string]string),
			notes: []objects.Notification{
				{ID: "2", Message: "two", Category: category.System, Timestamp: time.Now()},
				{ID: "1", Message: "one", Category: category.Transaction, Timestamp: time.Now()},
			},
		}
		r = mux.NewRouter()
	)

	r.HandleFunc("/session/launch", func(w http.ResponseWriter, _ *http.Request) {
		b.reply(w, &objects.Response{ID: 1, Status: true, Next: "pin"})
	})
	r.HandleFunc("/session/pin/submit", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		var ok = req.PostForm.Get("pin") == "1234"
		var res = objects.Response{ID: 2, Status: ok, Next: "pin", Message: "Incorrect PIN. Please try again."}
		if ok {
			res.Next, res.Message = "home", "PIN accepted"
		}
		b.reply(w, &res)
	})
	r.HandleFunc("/expense/add", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		b.reply(w, &objects.Response{ID: 3, Status: true, Message: "t000042"})
	})
	r.HandleFunc("/notification/all", func(w http.ResponseWriter, _ *http.Request) {
		b.lock.Lock()
		defer b.lock.Unlock()
		b.reply(w, b.notes)
	})
	r.HandleFunc("/notification/{id}/delete", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		b.reply(w, &objects.Response{ID: 4, Status: true})
	})
	r.HandleFunc("/session/register", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		b.reply(w, &objects.Response{ID: 6, Status: true, Next: "login"})
	})
	r.HandleFunc("/session/password/reset", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		b.reply(w, &objects.Response{ID: 7, Message: "Invalid or expired code"})
	})
	r.HandleFunc("/account/delete", func(w http.ResponseWriter, req *http.Request) {
		b.record(req)
		b.reply(w, &objects.Response{ID: 8, Status: true, Next: "login"})
	})
	r.HandleFunc("/notification/clear", func(w http.ResponseWriter, _ *http.Request) {
		b.reply(w, &objects.Response{ID: 5, Status: false, Message: "database is locked"})
	})

	var srv = httptest.NewServer(r)
	t.Cleanup(srv.Close)

	var c, err = NewClient(srv.Listener.Addr().String())
	require.NoError(t, err)

	return b, c
} // func newBackend(t *testing.T) (*backend, *Client)

func TestLaunchAndPin(t *testing.T) {
	var _, c = newBackend(t)

	next, err := c.Launch()
	require.NoError(t, err)
	assert.Equal(t, "pin", next)

	msg, next, err := c.EnterPin("0000")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "pin", next)
	assert.Equal(t, "Incorrect PIN. Please try again.", msg)

	_, next, err = c.EnterPin("1234")
	assert.NoError(t, err)
	assert.Equal(t, "home", next)
} // func TestLaunchAndPin(t *testing.T)

func TestAddExpense(t *testing.T) {
	var b, c = newBackend(t)

	id, err := c.AddExpense("12.50", "Food", "Lunch")
	require.NoError(t, err)
	assert.Equal(t, "t000042", id)
	assert.Equal(t,
		map[string]string{"amount": "12.50", "category": "Food", "description": "Lunch"},
		b.forms["/expense/add"])
} // func TestAddExpense(t *testing.T)

func TestNotifications(t *testing.T) {
	var b, c = newBackend(t)

	list, err := c.Notifications()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Message)

	assert.NoError(t, c.DeleteNotification("1"))
	_, seen := b.forms["/notification/1/delete"]
	assert.True(t, seen)

	err = c.ClearNotifications()
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "database is locked")
} // func TestNotifications(t *testing.T)

func TestAccount(t *testing.T) {
	var b, c = newBackend(t)

	require.NoError(t, c.Register("Gina", "gina@example.com", "s3cret", "s3cret"))
	assert.Equal(t,
		map[string]string{
			"name":     "Gina",
			"email":    "gina@example.com",
			"password": "s3cret",
			"confirm":  "s3cret",
		},
		b.forms["/session/register"])

	var err = c.ResetPassword("gina@example.com", "000000", "n3w", "n3w")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "Invalid or expired code")
	assert.Equal(t, "000000", b.forms["/session/password/reset"]["code"])

	assert.NoError(t, c.DeleteAccount())
	_, seen := b.forms["/account/delete"]
	assert.True(t, seen)
} // func TestAccount(t *testing.T)

func TestUnreachable(t *testing.T) {
	var c, err = NewClient("127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.Launch()
	assert.Error(t, err)
} // func TestUnreachable(t *testing.T)
