// /home/krylon/go/src/github.com/blicero/spesen/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 19:40:08 krylon>

package database

import (
	"errors"
	"log"
	"sync"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/logdomain"
)

// ErrPoolClosed is returned when a connection is requested from a Pool that
// has been closed.
var ErrPoolClosed = errors.New("database pool has been closed")

// Pool is a pool of database connections, all opened on the same file.
type Pool struct {
	path   string
	cnt    int
	log    *log.Logger
	lock   sync.RWMutex
	closed bool
	empty  chan *Database
}

// NewPool creates a Pool of at most cnt connections to the database at path.
func NewPool(path string, cnt int) (*Pool, error) {
	if cnt < 1 {
		cnt = 1
	}

	var (
		err  error
		db   *Database
		pool = &Pool{
			path:  path,
			cnt:   cnt,
			empty: make(chan *Database, cnt),
		}
	)

	if pool.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	// Opening the first connection creates the schema if needed.
	if db, err = Open(path); err != nil {
		pool.log.Printf("[ERROR] Cannot open database %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	pool.empty <- db

	for i := 1; i < cnt; i++ {
		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database %s: %s\n",
				path,
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.empty <- db
	}

	return pool, nil
} // func NewPool(path string, cnt int) (*Pool, error)

// Get returns an idle connection from the pool, opening a new one if none
// is available.
func (pool *Pool) Get() (*Database, error) {
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	if pool.closed {
		return nil, ErrPoolClosed
	}

	select {
	case db := <-pool.empty:
		return db, nil
	default:
		return Open(pool.path)
	}
} // func (pool *Pool) Get() (*Database, error)

// Put returns a connection to the pool. If the pool is full or closed, the
// connection is closed instead.
func (pool *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	pool.lock.RLock()
	defer pool.lock.RUnlock()

	if !pool.closed {
		select {
		case pool.empty <- db:
			return
		default:
		}
	}

	if err := db.Close(); err != nil {
		pool.log.Printf("[ERROR] Cannot close surplus connection: %s\n",
			err.Error())
	}
} // func (pool *Pool) Put(db *Database)

// Close closes all idle connections. Connections that are checked out are
// closed when they are returned.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		return nil
	}

	pool.closed = true

	var err error

	for {
		select {
		case db := <-pool.empty:
			if e := db.Close(); e != nil {
				pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
					e.Error())
				err = e
			}
		default:
			return err
		}
	}
} // func (pool *Pool) Close() error
