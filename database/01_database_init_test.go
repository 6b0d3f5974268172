// /home/krylon/go/src/github.com/blicero/spesen/database/01_database_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 20:04:36 krylon>

package database

import (
	"testing"

	"github.com/blicero/spesen/common"
)

var db *Database

func TestCreateDatabase(t *testing.T) {
	var (
		err    error
		dbPath string
	)

	_, _, dbPath = common.Path()

	if db, err = Open(dbPath); err != nil {
		db = nil
		t.Fatalf("Cannot open database at %s: %s",
			dbPath,
			err.Error())
	}
} // func TestCreateDatabase(t *testing.T)

// We prepare each query once to make sure there are no syntax errors in the SQL.
func TestPrepareQueries(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for id := range dbQueries {
		var err error
		if _, err = db.getQuery(id); err != nil {
			t.Errorf("Cannot prepare query %s: %s",
				id,
				err.Error())
		}
	}
} // func TestPrepareQueries(t *testing.T)
