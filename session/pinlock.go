// /home/krylon/go/src/github.com/blicero/spesen/session/pinlock.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 10:36:47 krylon>

package session

import (
	"context"
	"crypto/subtle"
	"sync"
	"unicode/utf8"
)

// PinResult is the outcome of submitting a PIN.
type PinResult uint8

// The possible outcomes of PinLock.Submit.
const (
	PinIncomplete PinResult = iota
	PinAccepted
	PinRejected
	PinTooManyAttempts
	PinSessionExpired
	PinNotSet
	PinError
)

// Message returns the text to show the user.
func (r PinResult) Message() string {
	switch r {
	case PinIncomplete:
		return "Please enter a complete 4-digit PIN"
	case PinAccepted:
		return "PIN accepted"
	case PinRejected:
		return "Incorrect PIN. Please try again."
	case PinTooManyAttempts:
		return "You have exceeded the maximum number of attempts. Please try again later."
	case PinSessionExpired:
		return "Your session has expired. Please log in again."
	case PinNotSet:
		return "No PIN has been set up"
	default:
		return "Failed to verify PIN. Please try again."
	}
} // func (r PinResult) Message() string

func (r PinResult) String() string {
	switch r {
	case PinIncomplete:
		return "Incomplete"
	case PinAccepted:
		return "Accepted"
	case PinRejected:
		return "Rejected"
	case PinTooManyAttempts:
		return "TooManyAttempts"
	case PinSessionExpired:
		return "SessionExpired"
	case PinNotSet:
		return "NotSet"
	default:
		return "Error"
	}
} // func (r PinResult) String() string

// PinLock collects the digits of a PIN and checks them against the stored
// one. The number of consecutive failures is counted; there is no lockout
// period once MaxAttempts is reached, the counter simply starts over.
type PinLock struct {
	g        *Gate
	lock     sync.Mutex
	buf      []byte
	attempts int
}

// Press adds a digit. Anything but the digits 0-9 is ignored, as are digits
// beyond the fourth.
func (p *PinLock) Press(r rune) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if r < '0' || r > '9' || len(p.buf) >= PinLength {
		return false
	}

	p.buf = append(p.buf, byte(r))
	return true
} // func (p *PinLock) Press(r rune) bool

// Backspace removes the last digit.
func (p *PinLock) Backspace() {
	p.lock.Lock()
	if len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
	}
	p.lock.Unlock()
} // func (p *PinLock) Backspace()

// Entered returns the number of digits entered so far.
func (p *PinLock) Entered() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.buf)
} // func (p *PinLock) Entered() int

// Attempts returns the number of consecutive failed attempts.
func (p *PinLock) Attempts() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.attempts
} // func (p *PinLock) Attempts() int

// Reset clears the input and the failure counter.
func (p *PinLock) Reset() {
	p.lock.Lock()
	p.clear()
	p.attempts = 0
	p.lock.Unlock()
} // func (p *PinLock) Reset()

func (p *PinLock) clear() {
	for i := range p.buf {
		p.buf[i] = 0
	}
	p.buf = p.buf[:0]
} // func (p *PinLock) clear()

// Enter replaces the input with pin. If pin is not made of digits only, or
// is longer than PinLength, the input is left empty and Enter returns false.
func (p *PinLock) Enter(pin string) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.clear()

	if utf8.RuneCountInString(pin) > PinLength {
		return false
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			p.clear()
			return false
		}
		p.buf = append(p.buf, byte(r))
	}

	return true
} // func (p *PinLock) Enter(pin string) bool

// Submit checks the entered PIN. If it matches, the token is verified with
// the web API before the user is let in.
func (p *PinLock) Submit(ctx context.Context) (PinResult, Destination) {
	var (
		err    error
		stored string
		token  string
		found  bool
		g      = p.g
	)

	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.buf) < PinLength {
		return PinIncomplete, PinEntry
	} else if stored, found, err = g.store.Get(KeyPin); err != nil {
		g.log.Printf("[ERROR] Cannot read PIN: %s\n", err.Error())
		return PinError, PinEntry
	} else if !found || stored == "" {
		p.clear()
		p.lock.Unlock()
		var dst = g.Launch(ctx)
		p.lock.Lock()
		return PinNotSet, dst
	}

	if subtle.ConstantTimeCompare(p.buf, []byte(stored)) != 1 {
		p.clear()
		p.attempts++

		if p.attempts >= MaxAttempts {
			g.log.Printf("[INFO] %d wrong PINs in a row\n", p.attempts)
			p.attempts = 0
			return PinTooManyAttempts, PinEntry
		}

		return PinRejected, PinEntry
	}

	p.clear()
	p.attempts = 0

	if token, found, err = g.store.Get(KeyToken); err != nil {
		g.log.Printf("[ERROR] Cannot read token: %s\n", err.Error())
		return PinError, PinEntry
	} else if !found || token == "" {
		p.lock.Unlock()
		g.Evict() // nolint: errcheck
		p.lock.Lock()
		return PinSessionExpired, Login
	} else if err = g.verify(ctx, token); err != nil {
		p.lock.Unlock()
		g.Evict() // nolint: errcheck
		p.lock.Lock()
		return PinSessionExpired, Login
	}

	g.setState(Authenticated)
	return PinAccepted, Home
} // func (p *PinLock) Submit(ctx context.Context) (PinResult, Destination)
