// /home/krylon/go/src/github.com/blicero/spesen/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:41:30 krylon>

// Package clientlib provides the basic framework for building front-ends
// that talk to the backend.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/logdomain"
	"github.com/blicero/spesen/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	pathLaunch        = "/session/launch"
	pathLogin         = "/session/login"
	pathLogout        = "/session/logout"
	pathPinSubmit     = "/session/pin/submit"
	pathPinSetup      = "/session/pin/setup"
	pathPinDisable    = "/session/pin/disable"
	pathRegister      = "/session/register"
	pathPwForgot      = "/session/password/forgot"
	pathPwVerify      = "/session/password/verify"
	pathPwReset       = "/session/password/reset"
	pathAccountDelete = "/account/delete"
	pathExpenseAdd    = "/expense/add"
	pathSavingAdd     = "/saving/add"
	pathNotifications = "/notification/all"
	pathNotifyClear   = "/notification/clear"
	pathNotifyDelete  = "/notification/%s/delete"
	pathSettings      = "/settings"
)

// ErrRequestFailed is returned when the backend processed a request but
// reported a failure. The error message carries the backend's explanation.
var ErrRequestFailed = errors.New("request failed")

// Client is the basic implementation of a Spesen client,
// it implements the fundamental communication with the backend.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client talking to the backend at srv, which may
// be a bare host:port.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if !strings.Contains(srv, "://") {
		srv = "http://" + srv
	}

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) url(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) url(path string) string

// fetch performs a request and decodes the response body into v.
func (c *Client) fetch(method, path string, values url.Values, v interface{}) error {
	var (
		err    error
		addr   = c.url(path)
		rcvBuf bytes.Buffer
		hres   *http.Response
	)

	if method == http.MethodPost {
		hres, err = c.Client.PostForm(addr, values)
	} else {
		hres, err = c.Client.Get(addr)
	}

	if err != nil {
		c.log.Printf("[ERROR] Failed to %s %s: %s\n",
			method,
			addr,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		err = fmt.Errorf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return err
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), v); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) fetch(method, path string, values url.Values, v interface{}) error

// submit POSTs values to path and returns the backend's Response. If the
// backend reports a failure, the Response is returned along with an error
// wrapping ErrRequestFailed.
func (c *Client) submit(path string, values url.Values) (*objects.Response, error) {
	var (
		err  error
		ores objects.Response
	)

	if values == nil {
		values = make(url.Values)
	}

	if err = c.fetch(http.MethodPost, path, values, &ores); err != nil {
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("%w: %s", ErrRequestFailed, ores.Message)
		c.log.Printf("[DEBUG] Request to %s failed: %s\n",
			path,
			ores.Message)
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		path,
		ores.Message)

	return &ores, nil
} // func (c *Client) submit(path string, values url.Values) (*objects.Response, error)

// Launch asks the backend where the user should go and returns the name
// of that screen: "login", "pin" or "home".
func (c *Client) Launch() (string, error) {
	var ores objects.Response

	if err := c.fetch(http.MethodGet, pathLaunch, nil, &ores); err != nil {
		return "", err
	}

	return ores.Next, nil
} // func (c *Client) Launch() (string, error)

// Login logs in with email and password and returns the next screen.
func (c *Client) Login(email, password string) (string, error) {
	var res, err = c.submit(pathLogin, url.Values{
		"email":    {email},
		"password": {password},
	})

	if res == nil {
		return "", err
	}

	return res.Next, err
} // func (c *Client) Login(email, password string) (string, error)

// Logout removes all credentials.
func (c *Client) Logout() error {
	var _, err = c.submit(pathLogout, nil)
	return err
} // func (c *Client) Logout() error

// EnterPin submits a PIN to the lock screen. It returns the backend's
// message and the next screen even if the PIN was rejected.
func (c *Client) EnterPin(pin string) (string, string, error) {
	var res, err = c.submit(pathPinSubmit, url.Values{"pin": {pin}})

	if res == nil {
		return "", "", err
	}

	return res.Message, res.Next, err
} // func (c *Client) EnterPin(pin string) (string, string, error)

// SetupPin sets up a new PIN.
func (c *Client) SetupPin(pin, confirm string) error {
	var _, err = c.submit(pathPinSetup, url.Values{
		"pin":     {pin},
		"confirm": {confirm},
	})
	return err
} // func (c *Client) SetupPin(pin, confirm string) error

// DisablePin turns off the PIN lock.
func (c *Client) DisablePin() error {
	var _, err = c.submit(pathPinDisable, nil)
	return err
} // func (c *Client) DisablePin() error

// Register creates a new account with the web API.
func (c *Client) Register(name, email, password, confirm string) error {
	var _, err = c.submit(pathRegister, url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
		"confirm":  {confirm},
	})
	return err
} // func (c *Client) Register(name, email, password, confirm string) error

// ForgotPassword asks for a reset code to be sent to email.
func (c *Client) ForgotPassword(email string) error {
	var _, err = c.submit(pathPwForgot, url.Values{"email": {email}})
	return err
} // func (c *Client) ForgotPassword(email string) error

// VerifyCode checks a reset code before the new password is asked for.
func (c *Client) VerifyCode(email, code string) error {
	var _, err = c.submit(pathPwVerify, url.Values{
		"email": {email},
		"code":  {code},
	})
	return err
} // func (c *Client) VerifyCode(email, code string) error

// ResetPassword sets a new password using a reset code.
func (c *Client) ResetPassword(email, code, password, confirm string) error {
	var _, err = c.submit(pathPwReset, url.Values{
		"email":    {email},
		"code":     {code},
		"password": {password},
		"confirm":  {confirm},
	})
	return err
} // func (c *Client) ResetPassword(email, code, password, confirm string) error

// DeleteAccount removes all of the user's data from the device.
func (c *Client) DeleteAccount() error {
	var _, err = c.submit(pathAccountDelete, nil)
	return err
} // func (c *Client) DeleteAccount() error

// AddExpense records an expense and returns its ID.
func (c *Client) AddExpense(amount, category, description string) (string, error) {
	var res, err = c.submit(pathExpenseAdd, url.Values{
		"amount":      {amount},
		"category":    {category},
		"description": {description},
	})

	if err != nil {
		return "", err
	}

	return res.Message, nil
} // func (c *Client) AddExpense(amount, category, description string) (string, error)

// AddSaving puts money aside under label and returns the transaction's ID.
func (c *Client) AddSaving(amount, label, note string) (string, error) {
	var res, err = c.submit(pathSavingAdd, url.Values{
		"amount": {amount},
		"label":  {label},
		"note":   {note},
	})

	if err != nil {
		return "", err
	}

	return res.Message, nil
} // func (c *Client) AddSaving(amount, label, note string) (string, error)

// Notifications returns the notification log, newest first.
func (c *Client) Notifications() ([]objects.Notification, error) {
	var list []objects.Notification

	if err := c.fetch(http.MethodGet, pathNotifications, nil, &list); err != nil {
		return nil, err
	}

	return list, nil
} // func (c *Client) Notifications() ([]objects.Notification, error)

// DeleteNotification removes a single Notification.
func (c *Client) DeleteNotification(id string) error {
	var _, err = c.submit(fmt.Sprintf(pathNotifyDelete, url.PathEscape(id)), nil)
	return err
} // func (c *Client) DeleteNotification(id string) error

// ClearNotifications empties the notification log.
func (c *Client) ClearNotifications() error {
	var _, err = c.submit(pathNotifyClear, nil)
	return err
} // func (c *Client) ClearNotifications() error

// Settings returns the notification preferences.
func (c *Client) Settings() (*objects.Settings, error) {
	var s objects.Settings

	if err := c.fetch(http.MethodGet, pathSettings, nil, &s); err != nil {
		return nil, err
	}

	return &s, nil
} // func (c *Client) Settings() (*objects.Settings, error)
