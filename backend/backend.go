// /home/krylon/go/src/github.com/blicero/spesen/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:24:55 krylon>

// Package backend implements the ... backend of the application,
// the part that ties the local stores, the web API and the notification
// service together and offers them to front-ends via HTTP.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/config"
	"github.com/blicero/spesen/database"
	"github.com/blicero/spesen/kv"
	"github.com/blicero/spesen/logdomain"
	"github.com/blicero/spesen/notify"
	"github.com/blicero/spesen/platform"
	"github.com/blicero/spesen/remote"
	"github.com/blicero/spesen/scheduler"
	"github.com/blicero/spesen/session"
	"github.com/gorilla/mux"
)

const (
	maintenanceSchedule = "45 3 * * *"
	shutdownTimeout     = time.Second * 3
)

// Daemon is the centerpiece of the backend, coordinating between the
// local stores, the web API, the notification service and the clients.
type Daemon struct {
	log     *log.Logger
	cfg     config.Config
	pool    *database.Pool
	general *database.Store
	secure  kv.Store
	sched   *scheduler.Scheduler
	notes   *notify.Service
	api     *remote.Client
	gate    *session.Gate
	maint   *scheduler.Task
	lock    sync.RWMutex
	active  bool
	web     http.Server
	router  *mux.Router
	idLock  sync.Mutex
	idCnt   int64
}

// wiring carries the parts of a Daemon that tests want to replace.
// Zero values select the real thing.
type wiring struct {
	dbPath  string
	clock   scheduler.Clock
	toaster platform.Toaster
	pusher  platform.Pusher
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(cfg *config.Config) (*Daemon, error) {
	var (
		err error
		d   *Daemon
	)

	if d, err = summon(cfg, wiring{}); err != nil {
		return nil, err
	}

	d.notes.StartSystemNotifications()

	go d.serveHTTP()

	return d, nil
} // func Summon(cfg *config.Config) (*Daemon, error)

func summon(cfg *config.Config, w wiring) (*Daemon, error) {
	var (
		err              error
		morning, evening *scheduler.Daily
		maint            *scheduler.Daily
		secure           *database.Store
		d                = &Daemon{
			cfg:    *cfg,
			active: true,
			router: mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	if w.dbPath == "" {
		_, _, w.dbPath = common.Path()
	}

	if w.toaster == nil {
		w.toaster = platform.NewConsoleToaster(os.Stdout)
	}

	if w.pusher == nil {
		w.pusher = d.pickPusher()
	}

	if morning, err = scheduler.ParseDaily(cfg.MorningSchedule); err != nil {
		d.log.Printf("[ERROR] Invalid morning schedule: %s\n",
			err.Error())
		return nil, err
	} else if evening, err = scheduler.ParseDaily(cfg.EveningSchedule); err != nil {
		d.log.Printf("[ERROR] Invalid evening schedule: %s\n",
			err.Error())
		return nil, err
	} else if maint, err = scheduler.ParseDaily(maintenanceSchedule); err != nil {
		d.log.Printf("[CANTHAPPEN] Invalid maintenance schedule: %s\n",
			err.Error())
		return nil, err
	}

	if d.pool, err = database.NewPool(w.dbPath, cfg.DBPoolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	}

	d.general = database.NewStore(d.pool, database.NamespaceGeneral)
	secure = database.NewStore(d.pool, database.NamespaceSecure)

	if d.secure, err = kv.NewSealed(secure, cfg.SecurePassphrase); err != nil {
		d.log.Printf("[ERROR] Cannot open secure store: %s\n",
			err.Error())
		goto FAIL
	} else if d.sched, err = scheduler.New(w.clock); err != nil {
		d.log.Printf("[ERROR] Cannot create Scheduler: %s\n",
			err.Error())
		goto FAIL
	} else if d.notes, err = notify.New(d.general, d.sched, w.toaster, w.pusher, morning, evening); err != nil {
		d.log.Printf("[ERROR] Cannot create notification service: %s\n",
			err.Error())
		goto FAIL
	} else if d.api, err = remote.NewClient(cfg.APIBaseURL, cfg.APITimeout); err != nil {
		d.log.Printf("[ERROR] Cannot create client for %s: %s\n",
			cfg.APIBaseURL,
			err.Error())
		goto FAIL
	} else if d.gate, err = session.NewGate(d.secure, d.api, cfg.APITimeout); err != nil {
		d.log.Printf("[ERROR] Cannot create session gate: %s\n",
			err.Error())
		goto FAIL
	}

	d.api.SetUnauthorizedHook(d.gate.HandleUnauthorized)
	d.maint = d.sched.Every(maint, "db-maintenance", d.dbMaintenance)

	d.web.Addr = cfg.ListenAddr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		goto FAIL
	}

	return d, nil

FAIL:
	if d.maint != nil {
		d.maint.Stop()
	}
	d.pool.Close() // nolint: errcheck
	return nil, err
} // func summon(cfg *config.Config, w wiring) (*Daemon, error)

func (d *Daemon) pickPusher() platform.Pusher {
	if !d.cfg.DesktopNotify {
		return platform.NopPusher{}
	}

	var p, err = platform.NewDBusPusher()
	if err != nil {
		d.log.Printf("[WARN] Desktop notifications are not available: %s\n",
			err.Error())
		return platform.NopPusher{}
	}

	return p
} // func (d *Daemon) pickPusher() platform.Pusher

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, stops all timers, shuts down the
// web server and closes the database.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	)
	defer cancel()

	d.lock.Lock()
	if !d.active {
		d.lock.Unlock()
		return nil
	}
	d.active = false
	d.lock.Unlock()

	d.notes.StopSystemNotifications()
	d.maint.Stop()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	if cerr := d.pool.Close(); cerr != nil {
		d.log.Printf("[ERROR] Cannot close database pool: %s\n",
			cerr.Error())
		if err == nil {
			err = cerr
		}
	}

	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) dbMaintenance() {
	var (
		err error
		db  *database.Database
	)

	if db, err = d.pool.Get(); err != nil {
		d.log.Printf("[ERROR] Cannot get database connection for maintenance: %s\n",
			err.Error())
		return
	}

	defer d.pool.Put(db)

	if err = db.PerformMaintenance(); err != nil {
		d.log.Printf("[ERROR] Database maintenance failed: %s\n",
			err.Error())
	}
} // func (d *Daemon) dbMaintenance()

// deleteAccount removes every trace of the user from this device: the
// credentials in the secure store, and the notification log and settings
// in the general store.
func (d *Daemon) deleteAccount() error {
	var (
		err   error
		items map[string]string
	)

	if err = d.gate.DeleteAccount(); err != nil {
		d.log.Printf("[ERROR] Cannot remove credentials: %s\n",
			err.Error())
		return err
	} else if items, err = d.general.All(); err != nil {
		d.log.Printf("[ERROR] Cannot list general store: %s\n",
			err.Error())
		return err
	}

	d.log.Printf("[INFO] Removing %d items from the general store\n",
		len(items))

	d.notes.ClearAllNotifications()

	if err = d.general.Clear(); err != nil {
		d.log.Printf("[ERROR] Cannot clear general store: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (d *Daemon) deleteAccount() error

// Notifications returns the Daemon's notification service.
func (d *Daemon) Notifications() *notify.Service {
	return d.notes
} // func (d *Daemon) Notifications() *notify.Service

// Gate returns the Daemon's session gate.
func (d *Daemon) Gate() *session.Gate {
	return d.gate
} // func (d *Daemon) Gate() *session.Gate
