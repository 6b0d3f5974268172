// /home/krylon/go/src/github.com/blicero/spesen/common/01_common_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 20:14:02 krylon>

package common

import (
	"os"
	"strings"
	"testing"

	"github.com/blicero/spesen/logdomain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger(t *testing.T) {
	var (
		err error
		dir = t.TempDir()
	)

	require.NoError(t, SetBaseDir(dir))
	defer SetLogLevel("TRACE") // nolint: errcheck

	require.NoError(t, SetLogLevel("INFO"))

	for _, dom := range logdomain.AllDomains() {
		var l, err = GetLogger(dom)
		require.NoError(t, err, "GetLogger(%s)", dom)
		require.NotNil(t, l)
	}

	l, err := GetLogger(logdomain.Common)
	require.NoError(t, err)

	l.Println("[DEBUG] this should be filtered")
	l.Println("[INFO] this should be logged")

	var _, logPath, _ = Path()
	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var content = string(raw)
	assert.True(t, strings.Contains(content, "this should be logged"))
	assert.False(t, strings.Contains(content, "this should be filtered"))
} // func TestGetLogger(t *testing.T)

func TestSetLogLevelInvalid(t *testing.T) {
	assert.Error(t, SetLogLevel("VERBOSE"))
} // func TestSetLogLevelInvalid(t *testing.T)

func TestGetUUID(t *testing.T) {
	const cnt = 256
	var seen = make(map[string]bool, cnt)

	for i := 0; i < cnt; i++ {
		var id = GetUUID()
		require.Len(t, id, 36)
		require.False(t, seen[id], "duplicate UUID %s", id)
		seen[id] = true
	}
} // func TestGetUUID(t *testing.T)
