// /home/krylon/go/src/github.com/blicero/spesen/session/pin.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 10:31:02 krylon>

package session

import (
	"context"
	"crypto/subtle"
)

func validPin(pin string) bool {
	if len(pin) != PinLength {
		return false
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
} // func validPin(pin string) bool

func samePin(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
} // func samePin(a, b string) bool

// SetupPin sets up a new PIN. The token is verified first; if the web API
// rejects it, the session is evicted and ErrSessionExpired is returned.
func (g *Gate) SetupPin(ctx context.Context, pin, confirm string) error {
	var (
		err   error
		token string
	)

	if !validPin(pin) {
		return ErrPinFormat
	} else if !samePin(pin, confirm) {
		return ErrPinMismatch
	} else if token, err = g.Token(); err != nil {
		return err
	} else if err = g.verify(ctx, token); err != nil {
		g.Evict() // nolint: errcheck
		return ErrSessionExpired
	} else if err = g.store.Set(KeyPin, pin); err != nil {
		g.log.Printf("[ERROR] Cannot save PIN: %s\n", err.Error())
		return err
	} else if err = g.store.Set(KeyPinSet, "true"); err != nil {
		g.log.Printf("[ERROR] Cannot save PIN flag: %s\n", err.Error())
		return err
	}

	g.log.Println("[INFO] PIN has been set up")
	return nil
} // func (g *Gate) SetupPin(ctx context.Context, pin, confirm string) error

// ChangePin replaces the PIN stored under the key the change and remove
// screens have always used, which is not the one SetupPin writes.
func (g *Gate) ChangePin(current, next, confirm string) error {
	var (
		err    error
		stored string
		found  bool
	)

	if !validPin(current) || !validPin(next) {
		return ErrPinFormat
	} else if !samePin(next, confirm) {
		return ErrPinMismatch
	} else if stored, found, err = g.store.Get(KeyPinLegacy); err != nil {
		g.log.Printf("[ERROR] Cannot read PIN: %s\n", err.Error())
		return err
	} else if !found || !samePin(stored, current) {
		return ErrWrongPin
	} else if err = g.store.Set(KeyPinLegacy, next); err != nil {
		g.log.Printf("[ERROR] Cannot save PIN: %s\n", err.Error())
		return err
	}

	return nil
} // func (g *Gate) ChangePin(current, next, confirm string) error

// RemovePin removes the PIN and logs the user out.
func (g *Gate) RemovePin(pin string) error {
	var (
		err    error
		stored string
		found  bool
	)

	if !validPin(pin) {
		return ErrPinFormat
	} else if stored, found, err = g.store.Get(KeyPinLegacy); err != nil {
		g.log.Printf("[ERROR] Cannot read PIN: %s\n", err.Error())
		return err
	} else if !found || !samePin(stored, pin) {
		return ErrWrongPin
	}

	for _, key := range []string{KeyPinLegacy, KeyPinSet, KeyToken} {
		if err = g.store.Delete(key); err != nil {
			g.log.Printf("[ERROR] Cannot delete %s: %s\n",
				key,
				err.Error())
			return err
		}
	}

	g.setState(NoToken)
	return nil
} // func (g *Gate) RemovePin(pin string) error

// DisablePin removes the PIN the lock screen checks against, after making
// sure the token is still good. If it is not, the session is evicted.
func (g *Gate) DisablePin(ctx context.Context) error {
	var (
		err   error
		token string
	)

	if token, err = g.Token(); err != nil {
		return err
	} else if err = g.verify(ctx, token); err != nil {
		g.Evict() // nolint: errcheck
		return ErrSessionExpired
	} else if err = g.store.Delete(KeyPin); err != nil {
		g.log.Printf("[ERROR] Cannot delete PIN: %s\n", err.Error())
		return err
	}

	g.pins.Reset()
	return nil
} // func (g *Gate) DisablePin(ctx context.Context) error
