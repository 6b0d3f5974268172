// /home/krylon/go/src/github.com/blicero/spesen/objects/category/category.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-12 17:30:12 krylon>

// Package category contains symbolic constants
// to specify what kind of event a Notification
// tells the user about.
package category

// Category describes the kind of a Notification. The string values are
// what ends up in the persisted notification log.
type Category string

// Transaction is sent when the user saved a transaction.
// TransactionUpdate confirms a transaction was processed.
// Reminder nudges the user about a transaction.
// System is the twice-daily reminder to record expenses.
const (
	Transaction       Category = "Transaction"
	TransactionUpdate Category = "Transaction Update"
	Reminder          Category = "Reminder"
	System            Category = "System"
)

// All returns all known Categories.
func All() []Category {
	return []Category{
		Transaction,
		TransactionUpdate,
		Reminder,
		System,
	}
} // func All() []Category

// Valid returns true if c is one of the known Categories.
func (c Category) Valid() bool {
	switch c {
	case Transaction, TransactionUpdate, Reminder, System:
		return true
	default:
		return false
	}
} // func (c Category) Valid() bool

func (c Category) String() string {
	return string(c)
} // func (c Category) String() string
