// /home/krylon/go/src/github.com/blicero/spesen/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 19:22:51 krylon>

// Package database provides persistence for the application's local state.
// It stores namespaced key-value pairs in an SQLite database.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/database/query"
	"github.com/blicero/spesen/logdomain"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("a transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("there is no transaction in progress")

const (
	retryDelay = 25 * time.Millisecond
	maxRetries = 10
)

// worthARetry returns true if an error returned from the database
// indicates the database was busy or locked.
func worthARetry(e error) bool {
	var ex sqlite3.Error

	if errors.As(e, &ex) {
		return ex.Code == sqlite3.ErrBusy || ex.Code == sqlite3.ErrLocked
	}

	return strings.Contains(e.Error(), "database is locked")
} // func worthARetry(e error) bool

// Database is the storage backend for the local state.
//
// It is not safe to share a Database instance between goroutines, however
// opening multiple connections to the same Database is safe.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	spath   string
	queries map[query.ID]*sql.Stmt
	hasTx   bool
}

// Open opens a Database. If the database specified by the path does not
// exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			spath:   fmt.Sprintf("file:%s?_locking=NORMAL&_journal=WAL&_fk=1&_busy_timeout=5000", path),
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = db.spath

	if _, err = os.Stat(path); err == nil {
		dbExists = true
	} else if !errors.Is(err, os.ErrNotExist) {
		db.log.Printf("[ERROR] Cannot stat database %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open database %q: %s\n",
			path,
			err.Error())
		return nil, err
	}

	db.db.SetMaxOpenConns(1)

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if common.Debug {
		db.log.Printf("[DEBUG] Initialize fresh database at %s\n",
			db.path)
	}

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
		db.hasTx = false
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt    *sql.Stmt
		found   bool
		err     error
		retries int
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// PerformMaintenance performs some maintenance operations on the database.
// It cannot be called while a transaction is in progress.
func (db *Database) PerformMaintenance() error {
	if db.tx != nil {
		return ErrTxInProgress
	}

	var err error

	for _, q := range []string{"PRAGMA wal_checkpoint(TRUNCATE)", "VACUUM", "REINDEX", "ANALYZE"} {
		if _, err = db.db.Exec(q); err != nil {
			db.log.Printf("[ERROR] Failed to execute %s: %s\n",
				q,
				err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) PerformMaintenance() error

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for i := 0; i < maxRetries; i++ {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				time.Sleep(retryDelay)
				continue BEGIN_TX
			}
			db.log.Printf("[ERROR] Failed to start transaction: %s\n",
				err.Error())
			return err
		}
		break
	}

	if db.tx == nil {
		return err
	}

	db.hasTx = true
	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil
	db.hasTx = false

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	db.hasTx = false
	return nil
} // func (db *Database) Commit() error

// stmt returns the prepared statement for id, bound to the pending
// transaction if there is one.
func (db *Database) stmt(id query.ID) (*sql.Stmt, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(id); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	return stmt, nil
} // func (db *Database) stmt(id query.ID) (*sql.Stmt, error)

// ItemGet loads the value stored under key in the given namespace.
// The second return value is false if there is no such item.
func (db *Database) ItemGet(ns, key string) (string, bool, error) {
	const qid query.ID = query.ItemGet
	var (
		err     error
		stmt    *sql.Stmt
		rows    *sql.Rows
		retries int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return "", false, err
	}

EXEC_QUERY:
	if rows, err = stmt.Query(ns, key); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		return "", false, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var val string

		if err = rows.Scan(&val); err != nil {
			var ex = fmt.Errorf("Cannot scan row: %s", err.Error())
			db.log.Printf("[ERROR] %s\n", ex.Error())
			return "", false, ex
		}

		return val, true, nil
	}

	return "", false, rows.Err()
} // func (db *Database) ItemGet(ns, key string) (string, bool, error)

// ItemSet stores value under key in the given namespace, replacing any
// previous value.
func (db *Database) ItemSet(ns, key, value string) error {
	const qid query.ID = query.ItemSet
	var (
		err     error
		stmt    *sql.Stmt
		retries int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return err
	}

EXEC_QUERY:
	if _, err = stmt.Exec(ns, key, value, time.Now().Unix()); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot store item %s/%s: %s",
			ns,
			key,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	return nil
} // func (db *Database) ItemSet(ns, key, value string) error

// ItemDelete removes key from the given namespace.
func (db *Database) ItemDelete(ns, key string) error {
	const qid query.ID = query.ItemDelete
	var (
		err     error
		stmt    *sql.Stmt
		retries int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return err
	}

EXEC_QUERY:
	if _, err = stmt.Exec(ns, key); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot delete item %s/%s: %s",
			ns,
			key,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	return nil
} // func (db *Database) ItemDelete(ns, key string) error

// ItemList returns all items in the given namespace.
func (db *Database) ItemList(ns string) (map[string]string, error) {
	krylib.Trace()
	defer db.log.Printf("[TRACE] EXIT %s\n",
		krylib.TraceInfo())

	const qid query.ID = query.ItemList
	var (
		err     error
		stmt    *sql.Stmt
		rows    *sql.Rows
		retries int
		items   = make(map[string]string)
	)

	if stmt, err = db.stmt(qid); err != nil {
		return nil, err
	}

EXEC_QUERY:
	if rows, err = stmt.Query(ns); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	for rows.Next() {
		var key, val string

		if err = rows.Scan(&key, &val); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		items[key] = val
	}

	return items, rows.Err()
} // func (db *Database) ItemList(ns string) (map[string]string, error)

// ItemPurge deletes all items in the given namespace.
func (db *Database) ItemPurge(ns string) error {
	const qid query.ID = query.ItemPurge
	var (
		err     error
		stmt    *sql.Stmt
		retries int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return err
	}

EXEC_QUERY:
	if _, err = stmt.Exec(ns); err != nil {
		if worthARetry(err) && retries < maxRetries {
			retries++
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot purge namespace %s: %s\n",
			ns,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) ItemPurge(ns string) error
