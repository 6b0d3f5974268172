// /home/krylon/go/src/github.com/blicero/spesen/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 22:14:37 krylon>

package database

import "github.com/blicero/spesen/database/query"

var dbQueries = map[query.ID]string{
	query.ItemGet: "SELECT value FROM item WHERE namespace = ? AND key = ?",
	query.ItemSet: `
INSERT INTO item (namespace, key, value, changed)
VALUES           (        ?,   ?,     ?,       ?)
ON CONFLICT (namespace, key) DO UPDATE
SET value = excluded.value,
    changed = excluded.changed
`,
	query.ItemDelete: "DELETE FROM item WHERE namespace = ? AND key = ?",
	query.ItemList: `
SELECT
    key,
    value
FROM item
WHERE namespace = ?
ORDER BY key
`,
	query.ItemPurge: "DELETE FROM item WHERE namespace = ?",
}
