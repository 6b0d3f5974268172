// /home/krylon/go/src/github.com/blicero/spesen/database/03_store_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 20:33:05 krylon>

package database

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ kv.Store = (*Store)(nil)

func TestStoreConcurrent(t *testing.T) {
	var (
		base, _, _ = common.Path()
		pool, err  = NewPool(filepath.Join(base, "store_test.db"), 2)
	)

	require.NoError(t, err)
	defer pool.Close() // nolint: errcheck

	var (
		s  = NewStore(pool, NamespaceSecure)
		wg sync.WaitGroup
	)

	// More workers than pooled connections forces Get to open extras.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				var key = fmt.Sprintf("w%d_%d", n, j)
				assert.NoError(t, s.Set(key, key))
			}
		}(i)
	}

	wg.Wait()

	items, err := s.All()
	require.NoError(t, err)
	assert.Len(t, items, 32)

	val, found, err := s.Get("w3_7")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "w3_7", val)

	require.NoError(t, s.Delete("w3_7"))
	_, found, err = s.Get("w3_7")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Clear())
	items, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, items)
} // func TestStoreConcurrent(t *testing.T)

func TestStoreSealed(t *testing.T) {
	var (
		base, _, _ = common.Path()
		pool, err  = NewPool(filepath.Join(base, "sealed_test.db"), 1)
	)

	require.NoError(t, err)

	var sealed *kv.Sealed
	sealed, err = kv.NewSealed(NewStore(pool, NamespaceSecure), "passphrase")
	require.NoError(t, err)
	require.NoError(t, sealed.Set("token", "ey.abc.def"))

	val, found, err := sealed.Get("token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ey.abc.def", val)

	require.NoError(t, pool.Close())

	_, err = pool.Get()
	assert.ErrorIs(t, err, ErrPoolClosed)
} // func TestStoreSealed(t *testing.T)
