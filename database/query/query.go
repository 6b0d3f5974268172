// /home/krylon/go/src/github.com/blicero/spesen/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 22:10:14 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

import "fmt"

// ID identifies a prepared query.
type ID uint8

const (
	ItemGet ID = iota
	ItemSet
	ItemDelete
	ItemList
	ItemPurge
)

var names = map[ID]string{
	ItemGet:    "ItemGet",
	ItemSet:    "ItemSet",
	ItemDelete: "ItemDelete",
	ItemList:   "ItemList",
	ItemPurge:  "ItemPurge",
}

func (id ID) String() string {
	if s, ok := names[id]; ok {
		return s
	}

	return fmt.Sprintf("ID(%d)", id)
} // func (id ID) String() string
