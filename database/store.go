// /home/krylon/go/src/github.com/blicero/spesen/database/store.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 19:48:21 krylon>

package database

// Namespaces for the key-value stores kept in the database.
const (
	NamespaceGeneral = "general"
	NamespaceSecure  = "secure"
)

// Store is a key-value store backed by one namespace of the database.
// It implements kv.Store and is safe for concurrent use.
type Store struct {
	pool *Pool
	ns   string
}

// NewStore returns a Store for the namespace ns.
func NewStore(pool *Pool, ns string) *Store {
	return &Store{pool: pool, ns: ns}
} // func NewStore(pool *Pool, ns string) *Store

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.pool.Get(); err != nil {
		return "", false, err
	}
	defer s.pool.Put(db)

	return db.ItemGet(s.ns, key)
} // func (s *Store) Get(key string) (string, bool, error)

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	var (
		err error
		db  *Database
	)

	if db, err = s.pool.Get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	return db.ItemSet(s.ns, key, value)
} // func (s *Store) Set(key, value string) error

// Delete removes key from the store.
func (s *Store) Delete(key string) error {
	var (
		err error
		db  *Database
	)

	if db, err = s.pool.Get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	return db.ItemDelete(s.ns, key)
} // func (s *Store) Delete(key string) error

// All returns every item in the store.
func (s *Store) All() (map[string]string, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.pool.Get(); err != nil {
		return nil, err
	}
	defer s.pool.Put(db)

	return db.ItemList(s.ns)
} // func (s *Store) All() (map[string]string, error)

// Clear removes every item from the store, in a single transaction.
func (s *Store) Clear() error {
	var (
		err error
		db  *Database
	)

	if db, err = s.pool.Get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	if err = db.Begin(); err != nil {
		return err
	} else if err = db.ItemPurge(s.ns); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	}

	return db.Commit()
} // func (s *Store) Clear() error
