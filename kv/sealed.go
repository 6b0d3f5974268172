// /home/krylon/go/src/github.com/blicero/spesen/kv/sealed.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 21:04:55 krylon>

package kv

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

// SaltKey is the key under which a Sealed store keeps its salt in the
// underlying Store.
const SaltKey = "__sealed_salt"

const (
	saltLength = 16
	keyLength  = 32
	nonceSize  = 24
	kdfRounds  = 4096
)

// ErrTampered is returned by Sealed.Get if a stored value cannot be decrypted.
var ErrTampered = errors.New("sealed value cannot be opened")

// Sealed is a Store that encrypts values before handing them to another
// Store. Keys are stored in plain text.
type Sealed struct {
	inner Store
	key   [keyLength]byte
}

// NewSealed wraps inner, deriving the encryption key from passphrase.
// The salt is created on first use and stored in inner.
func NewSealed(inner Store, passphrase string) (*Sealed, error) {
	var (
		err     error
		saltStr string
		salt    []byte
		found   bool
	)

	if saltStr, found, err = inner.Get(SaltKey); err != nil {
		return nil, fmt.Errorf("cannot load salt: %w", err)
	} else if found {
		if salt, err = base64.StdEncoding.DecodeString(saltStr); err != nil {
			return nil, fmt.Errorf("cannot decode salt: %w", err)
		}
	} else {
		salt = make([]byte, saltLength)
		if _, err = io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("cannot generate salt: %w", err)
		} else if err = inner.Set(SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return nil, fmt.Errorf("cannot store salt: %w", err)
		}
	}

	var s = &Sealed{inner: inner}
	copy(s.key[:], pbkdf2.Key([]byte(passphrase), salt, kdfRounds, keyLength, sha256.New))

	return s, nil
} // func NewSealed(inner Store, passphrase string) (*Sealed, error)

// Get looks up key and decrypts its value.
func (s *Sealed) Get(key string) (string, bool, error) {
	var (
		err      error
		raw      string
		box      []byte
		found    bool
		ok       bool
		nonce    [nonceSize]byte
		cleartxt []byte
	)

	if raw, found, err = s.inner.Get(key); err != nil || !found {
		return "", found, err
	} else if box, err = base64.StdEncoding.DecodeString(raw); err != nil {
		return "", false, ErrTampered
	} else if len(box) < nonceSize+secretbox.Overhead {
		return "", false, ErrTampered
	}

	copy(nonce[:], box[:nonceSize])
	if cleartxt, ok = secretbox.Open(nil, box[nonceSize:], &nonce, &s.key); !ok {
		return "", false, ErrTampered
	}

	return string(cleartxt), true, nil
} // func (s *Sealed) Get(key string) (string, bool, error)

// Set encrypts value and stores it under key.
func (s *Sealed) Set(key, value string) error {
	var nonce [nonceSize]byte

	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("cannot generate nonce: %w", err)
	}

	var box = secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)

	return s.inner.Set(key, base64.StdEncoding.EncodeToString(box))
} // func (s *Sealed) Set(key, value string) error

// Delete removes key from the underlying Store.
func (s *Sealed) Delete(key string) error {
	return s.inner.Delete(key)
} // func (s *Sealed) Delete(key string) error
