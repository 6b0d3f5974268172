// /home/krylon/go/src/github.com/blicero/spesen/backend/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 20:44:19 krylon>

package backend

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/config"
	"github.com/blicero/spesen/objects"
	"github.com/blicero/spesen/platform"
	"github.com/blicero/spesen/remote/remotetest"
	"github.com/blicero/spesen/scheduler"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = filepath.Join(
			os.TempDir(),
			fmt.Sprintf("spesen_backend_test_%s",
				time.Now().Format("20060102_150405")))
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

// fixture is a Daemon wired to a fake web API, a manual clock and a
// recording notification platform.
type fixture struct {
	d     *Daemon
	srv   *remotetest.Server
	clock *scheduler.ManualClock
	rec   *platform.Recorder
	user  objects.User
}

var seq int

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var (
		err error
		f   = &fixture{
			srv:   remotetest.New(),
			clock: scheduler.NewManualClock(time.Date(2026, 10, 12, 10, 30, 0, 0, time.UTC)),
			rec:   &platform.Recorder{},
		}
		base, _, _ = common.Path()
		cfg        = &config.Config{
			APIBaseURL:       f.srv.URL,
			APITimeout:       2 * time.Second,
			ListenAddr:       "localhost:0",
			MorningSchedule:  "0 9 * * *",
			EveningSchedule:  "0 18 * * *",
			SecurePassphrase: "correct horse battery staple",
			DBPoolSize:       2,
		}
	)

	t.Cleanup(f.srv.Close)

	seq++
	f.d, err = summon(cfg, wiring{
		dbPath:  filepath.Join(base, fmt.Sprintf("test%03d.db", seq)),
		clock:   f.clock,
		toaster: f.rec,
		pusher:  f.rec,
	})
	require.NoError(t, err)
	t.Cleanup(func() { f.d.Banish() }) // nolint: errcheck

	f.user = f.srv.AddUser("Frank", "frank@example.com", "pw")

	return f
} // func newFixture(t *testing.T) *fixture

func (f *fixture) call(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var (
		req *http.Request
		rec = httptest.NewRecorder()
	)

	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	f.d.router.ServeHTTP(rec, req)
	return rec
} // func (f *fixture) call(...) *httptest.ResponseRecorder

func (f *fixture) request(t *testing.T, method, path string, form url.Values) objects.Response {
	t.Helper()

	var (
		res objects.Response
		rec = f.call(t, method, path, form)
	)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, ffjson.Unmarshal(rec.Body.Bytes(), &res))

	return res
} // func (f *fixture) request(...) objects.Response

func (f *fixture) notifications(t *testing.T) []objects.Notification {
	t.Helper()

	var (
		list []objects.Notification
		rec  = f.call(t, http.MethodGet, "/notification/all", nil)
	)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, ffjson.Unmarshal(rec.Body.Bytes(), &list))

	return list
} // func (f *fixture) notifications(t *testing.T) []objects.Notification

func (f *fixture) login(t *testing.T) {
	t.Helper()

	var res = f.request(t, http.MethodPost, "/session/login", url.Values{
		"email":    {f.user.Email},
		"password": {"pw"},
	})

	require.True(t, res.Status, res.Message)
} // func (f *fixture) login(t *testing.T)
