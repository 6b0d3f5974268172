// /home/krylon/go/src/github.com/blicero/spesen/remote/remote.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 13:40:21 krylon>

// Package remote is the client for the expense tracker's web API.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/logdomain"
	"github.com/pquerna/ffjson/ffjson"
)

// DefaultTimeout is used if NewClient is given a zero timeout.
const DefaultTimeout = 10 * time.Second

// ErrUnauthorized is returned when the web API rejects the token.
var ErrUnauthorized = errors.New("not authorized")

// ErrUnreachable wraps errors that occur before a response is received,
// e.g. network failures or timeouts.
var ErrUnreachable = errors.New("web API unreachable")

// StatusError is returned for responses with a non-success status other
// than 401.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("web API returned %d %s",
			e.Status,
			http.StatusText(e.Status))
	}

	return fmt.Sprintf("web API returned %d: %s",
		e.Status,
		e.Message)
} // func (e *StatusError) Error() string

// Client talks to the web API.
type Client struct {
	base     *url.URL
	http     http.Client
	log      *log.Logger
	lock     sync.RWMutex
	onUnauth func()
}

// NewClient creates a Client for the web API at base. Every request is
// aborted after timeout.
func NewClient(base string, timeout time.Duration) (*Client, error) {
	var (
		err error
		c   = &Client{}
	)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c.http.Timeout = timeout

	if c.log, err = common.GetLogger(logdomain.Remote); err != nil {
		return nil, err
	} else if c.base, err = url.Parse(strings.TrimRight(base, "/")); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			base,
			err.Error())
		return nil, err
	} else if c.base.Scheme == "" || c.base.Host == "" {
		err = fmt.Errorf("Invalid base URL %q", base)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return nil, err
	}

	return c, nil
} // func NewClient(base string, timeout time.Duration) (*Client, error)

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
} // func (c *Client) Timeout() time.Duration

// SetUnauthorizedHook registers fn to be called whenever a data request is
// answered with 401.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.lock.Lock()
	c.onUnauth = fn
	c.lock.Unlock()
} // func (c *Client) SetUnauthorizedHook(fn func())

type request struct {
	method string
	path   string
	token  string
	body   interface{}
	result interface{}
	// evict marks requests on behalf of a logged-in user, for which a 401
	// means the session is gone.
	evict bool
}

type errorBody struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, r request) error {
	var (
		err     error
		sendBuf []byte
		body    io.Reader
		req     *http.Request
		res     *http.Response
		rcvBuf  bytes.Buffer
		addr    = c.base.String() + r.path
	)

	if r.body != nil {
		if sendBuf, err = ffjson.Marshal(r.body); err != nil {
			c.log.Printf("[ERROR] Cannot serialize request body: %s\n",
				err.Error())
			return err
		}

		defer ffjson.Pool(sendBuf)
		body = bytes.NewReader(sendBuf)
	}

	if req, err = http.NewRequestWithContext(ctx, r.method, addr, body); err != nil {
		c.log.Printf("[ERROR] Cannot create request for %s: %s\n",
			addr,
			err.Error())
		return err
	}

	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	if res, err = c.http.Do(req); err != nil {
		c.log.Printf("[ERROR] %s %s failed: %s\n",
			r.method,
			addr,
			err.Error())
		return fmt.Errorf("%w: %s", ErrUnreachable, err.Error())
	}

	defer res.Body.Close() // nolint: errcheck

	if _, err = io.Copy(&rcvBuf, res.Body); err != nil {
		c.log.Printf("[ERROR] Cannot read response from %s: %s\n",
			addr,
			err.Error())
		return fmt.Errorf("%w: %s", ErrUnreachable, err.Error())
	}

	c.log.Printf("[TRACE] %s %s -> %s\n",
		r.method,
		addr,
		res.Status)

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		if r.evict {
			c.lock.RLock()
			var hook = c.onUnauth
			c.lock.RUnlock()

			if hook != nil {
				c.log.Printf("[INFO] %s %s returned 401, evicting session\n",
					r.method,
					r.path)
				hook()
			}
		}
		return ErrUnauthorized
	case res.StatusCode < 200 || res.StatusCode > 299:
		var (
			eb errorBody
			ex = &StatusError{Status: res.StatusCode}
		)

		if ffjson.Unmarshal(rcvBuf.Bytes(), &eb) == nil {
			if eb.Msg != "" {
				ex.Message = eb.Msg
			} else {
				ex.Message = eb.Message
			}
		}

		c.log.Printf("[ERROR] %s %s: %s\n",
			r.method,
			addr,
			ex.Error())
		return ex
	}

	if r.result == nil || rcvBuf.Len() == 0 {
		return nil
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), r.result); err != nil {
		c.log.Printf("[ERROR] Cannot parse response from %s: %s\n%s\n",
			addr,
			err.Error(),
			rcvBuf.String())
		return err
	}

	return nil
} // func (c *Client) do(ctx context.Context, r request) error
