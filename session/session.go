// /home/krylon/go/src/github.com/blicero/spesen/session/session.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:20:49 krylon>

// Package session decides which screen the user gets to see: the login
// form, the PIN lock, or the home screen. It keeps the locally stored
// credentials in line with what the web API thinks of the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/kv"
	"github.com/blicero/spesen/logdomain"
	"github.com/blicero/spesen/objects"
)

// Keys in the secure store.
const (
	KeyToken     = "token"
	KeyPin       = "userPin"
	KeyPinLegacy = "userPIN" // used by the change and remove PIN screens
	KeyPinSet    = "isPinSet"
	KeyUserID    = "userId"
	KeyUserName  = "userName"
	KeyUserEmail = "userEmail"
)

// PinLength is the number of digits in a PIN.
const PinLength = 4

// MaxAttempts is the number of consecutive wrong PINs that triggers the
// too-many-attempts alert.
const MaxAttempts = 3

// Errors returned by the Gate. Validation errors are returned before any
// storage or network access takes place.
var (
	ErrPinFormat          = errors.New("PIN must be 4 digits")
	ErrPinMismatch        = errors.New("PINs do not match")
	ErrWrongPin           = errors.New("Incorrect PIN. Please try again.")
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidEmail       = errors.New("Invalid email address")
	ErrNoSession          = errors.New("Not logged in")
	ErrSessionExpired     = errors.New("Session has expired, please log in again")
)

// State is the Gate's idea of where the user stands.
type State uint8

// The states of the Gate.
const (
	NoToken State = iota
	TokenNoPin
	TokenPinUnverified
	Authenticated
)

var stateNames = map[State]string{
	NoToken:            "NoToken",
	TokenNoPin:         "TokenNoPin",
	TokenPinUnverified: "TokenPinUnverified",
	Authenticated:      "Authenticated",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", s)
} // func (s State) String() string

// Destination is the screen the user is sent to.
type Destination uint8

// The screens a Gate can route to.
const (
	Login Destination = iota
	PinEntry
	Home
)

func (d Destination) String() string {
	switch d {
	case Login:
		return "login"
	case PinEntry:
		return "pin"
	case Home:
		return "home"
	default:
		return fmt.Sprintf("Destination(%d)", d)
	}
} // func (d Destination) String() string

// API is the part of the web API the Gate needs.
type API interface {
	VerifyToken(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*objects.LoginResult, error)
}

// Gate guards access to the application.
type Gate struct {
	log     *log.Logger
	store   kv.Store
	api     API
	timeout time.Duration
	lock    sync.Mutex
	state   State
	pins    *PinLock
}

// NewGate creates a Gate. Credentials are kept in store, which should be
// the secure store. Every call to api is cancelled after timeout.
func NewGate(store kv.Store, api API, timeout time.Duration) (*Gate, error) {
	var (
		err error
		g   = &Gate{
			store:   store,
			api:     api,
			timeout: timeout,
		}
	)

	if g.timeout <= 0 {
		g.timeout = 10 * time.Second
	}

	if g.log, err = common.GetLogger(logdomain.Session); err != nil {
		return nil, err
	}

	g.pins = &PinLock{g: g}

	return g, nil
} // func NewGate(store kv.Store, api API, timeout time.Duration) (*Gate, error)

// State returns the Gate's current state.
func (g *Gate) State() State {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state
} // func (g *Gate) State() State

func (g *Gate) setState(s State) {
	g.lock.Lock()
	if g.state != s {
		g.log.Printf("[DEBUG] Session state %s -> %s\n", g.state, s)
	}
	g.state = s
	g.lock.Unlock()
} // func (g *Gate) setState(s State)

// PinLock returns the Gate's PIN lock.
func (g *Gate) PinLock() *PinLock {
	return g.pins
} // func (g *Gate) PinLock() *PinLock

// Token returns the stored token, if any.
func (g *Gate) Token() (string, error) {
	var (
		err   error
		token string
		found bool
	)

	if token, found, err = g.store.Get(KeyToken); err != nil {
		g.log.Printf("[ERROR] Cannot read token: %s\n", err.Error())
		return "", err
	} else if !found || token == "" {
		return "", ErrNoSession
	}

	return token, nil
} // func (g *Gate) Token() (string, error)

func (g *Gate) has(key string) (bool, error) {
	var val, found, err = g.store.Get(key)
	return found && val != "", err
} // func (g *Gate) has(key string) (bool, error)

// verify asks the web API about token, bounded by the Gate's timeout.
func (g *Gate) verify(ctx context.Context, token string) error {
	var (
		err          error
		tctx, cancel = context.WithTimeout(ctx, g.timeout)
	)
	defer cancel()

	if err = g.api.VerifyToken(tctx, token); err != nil {
		g.log.Printf("[INFO] Token verification failed: %s\n", err.Error())
	}

	return err
} // func (g *Gate) verify(ctx context.Context, token string) error

// Launch decides where the user goes when the application starts.
func (g *Gate) Launch(ctx context.Context) Destination {
	var (
		err    error
		token  string
		found  bool
		hasPin bool
	)

	if token, found, err = g.store.Get(KeyToken); err != nil {
		g.log.Printf("[ERROR] Cannot read token: %s\n", err.Error())
		g.Evict() // nolint: errcheck
		return Login
	} else if !found || token == "" {
		g.setState(NoToken)
		return Login
	} else if hasPin, err = g.has(KeyPin); err != nil {
		g.log.Printf("[ERROR] Cannot check for PIN: %s\n", err.Error())
		g.Evict() // nolint: errcheck
		return Login
	} else if hasPin {
		g.setState(TokenPinUnverified)
		g.pins.Reset()
		return PinEntry
	}

	g.setState(TokenNoPin)

	if err = g.verify(ctx, token); err != nil {
		g.Evict() // nolint: errcheck
		return Login
	}

	g.setState(Authenticated)
	return Home
} // func (g *Gate) Launch(ctx context.Context) Destination

// Evict removes the token and PIN from the store, in that order. It tries
// to delete all of them even if one fails, and returns the first error.
func (g *Gate) Evict() error {
	var first error

	for _, key := range []string{KeyToken, KeyPin, KeyPinSet} {
		if err := g.store.Delete(key); err != nil {
			g.log.Printf("[ERROR] Cannot delete %s: %s\n",
				key,
				err.Error())
			if first == nil {
				first = err
			}
		}
	}

	g.setState(NoToken)
	g.pins.Reset()
	g.log.Println("[INFO] Session has been evicted")

	return first
} // func (g *Gate) Evict() error

// HandleUnauthorized is called when the web API rejects the token.
func (g *Gate) HandleUnauthorized() {
	g.Evict() // nolint: errcheck
} // func (g *Gate) HandleUnauthorized()

// Login logs the user in with email and password. On success it stores
// the token and user data and returns where the user should go next.
func (g *Gate) Login(ctx context.Context, email, password string) (Destination, error) {
	var (
		err    error
		res    *objects.LoginResult
		hasPin bool
		pinSet string
	)

	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return Login, ErrMissingCredentials
	} else if _, err = mail.ParseAddress(email); err != nil {
		return Login, ErrInvalidEmail
	}

	var tctx, cancel = context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if res, err = g.api.Login(tctx, email, password); err != nil {
		g.log.Printf("[INFO] Login as %s failed: %s\n",
			email,
			err.Error())
		return Login, err
	}

	var items = []struct{ key, val string }{
		{KeyToken, res.Token},
		{KeyUserID, res.User.ID},
		{KeyUserName, res.User.Name},
		{KeyUserEmail, res.User.Email},
	}

	for _, i := range items {
		if err = g.store.Set(i.key, i.val); err != nil {
			g.log.Printf("[ERROR] Cannot save %s: %s\n",
				i.key,
				err.Error())
			return Login, fmt.Errorf("Failed to save login data: %w", err)
		}
	}

	if hasPin, err = g.has(KeyPin); err != nil {
		return Login, err
	} else if pinSet, _, err = g.store.Get(KeyPinSet); err != nil {
		return Login, err
	} else if hasPin && pinSet == "true" {
		g.setState(TokenPinUnverified)
		g.pins.Reset()
		return PinEntry, nil
	}

	g.setState(Authenticated)
	return Home, nil
} // func (g *Gate) Login(ctx context.Context, email, password string) (Destination, error)

// Logout removes every credential from the store.
func (g *Gate) Logout() error {
	var first error

	for _, key := range []string{KeyToken, KeyPin, KeyPinLegacy, KeyPinSet, KeyUserID, KeyUserName, KeyUserEmail} {
		if err := g.store.Delete(key); err != nil {
			g.log.Printf("[ERROR] Cannot delete %s: %s\n",
				key,
				err.Error())
			if first == nil {
				first = err
			}
		}
	}

	g.setState(NoToken)
	g.pins.Reset()

	return first
} // func (g *Gate) Logout() error

// DeleteAccount forgets everything the Gate knows about the user. The
// account itself lives on the server and is not touched.
func (g *Gate) DeleteAccount() error {
	g.log.Println("[INFO] Account data is being removed from this device")
	return g.Logout()
} // func (g *Gate) DeleteAccount() error
