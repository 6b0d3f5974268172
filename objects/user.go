// /home/krylon/go/src/github.com/blicero/spesen/objects/user.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 22:15:49 krylon>

package objects

//go:generate ffjson user.go

// User is the account information the web API returns on login.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is the web API's answer to a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
