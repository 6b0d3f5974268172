// /home/krylon/go/src/github.com/blicero/spesen/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 19:47:03 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
// Next, if set, names the screen the client should go to.
type Response struct {
	ID      int64
	Status  bool
	Message string
	Next    string `json:",omitempty"`
}
