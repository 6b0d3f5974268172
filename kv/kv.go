// /home/krylon/go/src/github.com/blicero/spesen/kv/kv.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:31:18 krylon>

// Package kv defines the interface to the key-value stores the application
// keeps its local state in, along with an in-memory implementation and an
// encrypting wrapper.
package kv

import (
	"sort"
	"sync"
)

// Store is a flat mapping of string keys to string values.
// Get reports whether the key was present. Deleting a key that does not
// exist is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is a Store that keeps its data in RAM. It is mainly useful for
// testing; the Err* fields can be set to make the corresponding method fail.
type Memory struct {
	lock      sync.RWMutex
	items     map[string]string
	GetErr    error
	SetErr    error
	DeleteErr error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
} // func NewMemory() *Memory

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.GetErr != nil {
		return "", false, m.GetErr
	}

	var val, ok = m.items[key]
	return val, ok, nil
} // func (m *Memory) Get(key string) (string, bool, error)

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.SetErr != nil {
		return m.SetErr
	}

	m.items[key] = value
	return nil
} // func (m *Memory) Set(key, value string) error

// Delete removes key from the store.
func (m *Memory) Delete(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	delete(m.items, key)
	return nil
} // func (m *Memory) Delete(key string) error

// Keys returns the keys currently present, sorted.
func (m *Memory) Keys() []string {
	m.lock.RLock()
	var keys = make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	m.lock.RUnlock()

	sort.Strings(keys)
	return keys
} // func (m *Memory) Keys() []string

// Fail sets or clears the error returned by all methods.
func (m *Memory) Fail(err error) {
	m.lock.Lock()
	m.GetErr, m.SetErr, m.DeleteErr = err, err, err
	m.lock.Unlock()
} // func (m *Memory) Fail(err error)
