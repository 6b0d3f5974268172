// /home/krylon/go/src/github.com/blicero/spesen/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 22:11:02 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE item (
    namespace   TEXT NOT NULL,
    key         TEXT NOT NULL,
    value       TEXT NOT NULL,
    changed     INTEGER NOT NULL,
    PRIMARY KEY (namespace, key),
    CHECK (namespace <> '')
) WITHOUT ROWID
`,
	"CREATE INDEX item_changed_idx ON item (changed)",
}
