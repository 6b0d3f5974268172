// /home/krylon/go/src/github.com/blicero/spesen/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 19:02:44 krylon>

// Package logdomain provides constants for log sources.
package logdomain

import "fmt"

// ID represents an area of concern.
type ID uint8

// These constants identify the various logging domains.
const (
	Common ID = iota
	Backend
	Client
	Config
	Database
	Notify
	Platform
	Remote
	Scheduler
	Session
)

var domainNames = [...]string{
	"Common",
	"Backend",
	"Client",
	"Config",
	"Database",
	"Notify",
	"Platform",
	"Remote",
	"Scheduler",
	"Session",
}

func (id ID) String() string {
	if int(id) < len(domainNames) {
		return domainNames[id]
	}

	return fmt.Sprintf("ID(%d)", id)
} // func (id ID) String() string

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	var domains = make([]ID, len(domainNames))

	for i := range domains {
		domains[i] = ID(i)
	}

	return domains
} // func AllDomains() []ID
