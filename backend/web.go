// /home/krylon/go/src/github.com/blicero/spesen/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:20:13 krylon>

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/objects"
	"github.com/blicero/spesen/objects/category"
	"github.com/blicero/spesen/remote"
	"github.com/blicero/spesen/session"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/shopspring/decimal"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/session/launch", d.handleLaunch).Methods(http.MethodGet)
	d.router.HandleFunc("/session/login", d.handleLogin).Methods(http.MethodPost)
	d.router.HandleFunc("/session/logout", d.handleLogout).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/digit", d.handlePinDigit).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/submit", d.handlePinSubmit).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/setup", d.handlePinSetup).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/change", d.handlePinChange).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/remove", d.handlePinRemove).Methods(http.MethodPost)
	d.router.HandleFunc("/session/pin/disable", d.handlePinDisable).Methods(http.MethodPost)
	d.router.HandleFunc("/session/register", d.handleRegister).Methods(http.MethodPost)
	d.router.HandleFunc("/session/password/forgot", d.handlePasswordForgot).Methods(http.MethodPost)
	d.router.HandleFunc("/session/password/verify", d.handlePasswordVerify).Methods(http.MethodPost)
	d.router.HandleFunc("/session/password/reset", d.handlePasswordReset).Methods(http.MethodPost)
	d.router.HandleFunc("/account/delete", d.handleAccountDelete).Methods(http.MethodPost)
	d.router.HandleFunc("/expense/add", d.handleExpenseAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/saving/add", d.handleSavingAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/notification/all", d.handleNotificationGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/notification/clear", d.handleNotificationClear).Methods(http.MethodPost)
	d.router.HandleFunc("/notification/{id:(?:\\d+)}/delete", d.handleNotificationDelete).Methods(http.MethodPost)
	d.router.HandleFunc("/settings", d.handleSettingsGet).Methods(http.MethodGet)
	d.router.HandleFunc("/settings", d.handleSettingsSet).Methods(http.MethodPost)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

////////////////////////////////////////////////////////////////////////////////
///// Session //////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleLaunch(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		dst = d.gate.Launch(r.Context())
		res = objects.Response{
			ID:      d.getID(),
			Status:  true,
			Message: d.gate.State().String(),
			Next:    dst.String(),
		}
	)

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleLaunch(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleLogin(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		dst session.Destination
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	dst, err = d.gate.Login(r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("password"))
	res.Next = dst.String()

	if err != nil {
		res.Message = d.remoteMessage(err)
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "Login successful"

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleLogin(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleLogout(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{ID: d.getID(), Next: session.Login.String()}

	if err := d.gate.Logout(); err != nil {
		res.Message = fmt.Sprintf("Failed to remove credentials: %s",
			err.Error())
	} else {
		res.Status = true
		res.Message = "Logged out"
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleLogout(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinDigit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		key   string
		pins  = d.gate.PinLock()
		res   = objects.Response{ID: d.getID(), Next: session.PinEntry.String()}
		taken bool
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	key = r.PostFormValue("key")

	switch {
	case key == "back":
		pins.Backspace()
		taken = true
	case len(key) == 1:
		taken = pins.Press(rune(key[0]))
	}

	res.Status = taken
	res.Message = strconv.Itoa(pins.Entered())

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinDigit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinSubmit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		result session.PinResult
		dst    session.Destination
		pins   = d.gate.PinLock()
		res    = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	if pin := r.PostFormValue("pin"); pin != "" && !pins.Enter(pin) {
		d.log.Printf("[INFO] Malformed PIN submitted from %s\n",
			r.RemoteAddr)
	}

	result, dst = pins.Submit(r.Context())

	res.Status = result == session.PinAccepted
	res.Message = result.Message()
	res.Next = dst.String()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinSubmit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinSetup(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	} else if err = d.gate.SetupPin(r.Context(), r.PostFormValue("pin"), r.PostFormValue("confirm")); err != nil {
		res.Message = err.Error()
		if err == session.ErrSessionExpired || err == session.ErrNoSession {
			res.Next = session.Login.String()
		}
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "PIN has been set up"
	res.Next = session.Home.String()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinSetup(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinChange(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
	} else if err = d.gate.ChangePin(
		r.PostFormValue("current"),
		r.PostFormValue("pin"),
		r.PostFormValue("confirm")); err != nil {
		res.Message = err.Error()
	} else {
		res.Status = true
		res.Message = "PIN has been changed"
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinChange(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinRemove(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
	} else if err = d.gate.RemovePin(r.PostFormValue("pin")); err != nil {
		res.Message = err.Error()
	} else {
		res.Status = true
		res.Message = "PIN has been removed, please log in again"
		res.Next = session.Login.String()
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinRemove(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePinDisable(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		res = objects.Response{ID: d.getID()}
	)

	if err = d.gate.DisablePin(r.Context()); err != nil {
		res.Message = err.Error()
		if err == session.ErrSessionExpired || err == session.ErrNoSession {
			res.Next = session.Login.String()
		}
	} else {
		res.Status = true
		res.Message = "PIN has been disabled"
		res.Next = session.Home.String()
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePinDisable(w http.ResponseWriter, r *http.Request)

////////////////////////////////////////////////////////////////////////////////
///// Account //////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

const msgUnreachable = "Could not connect to the server. Please try again later."

// remoteMessage turns an error from the web API into something fit for the
// user. Transport failures get a fixed message, the details go to the log.
func (d *Daemon) remoteMessage(err error) string {
	var serr *remote.StatusError

	if errors.Is(err, remote.ErrUnreachable) {
		d.log.Printf("[ERROR] %s\n", err.Error())
		return msgUnreachable
	} else if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}

	return err.Error()
} // func (d *Daemon) remoteMessage(err error) string

func validEmail(s string) bool {
	var _, err = mail.ParseAddress(s)
	return err == nil
} // func validEmail(s string) bool

func (d *Daemon) handleRegister(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                        error
		name, email, pass, confirm string
		res                        = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	name = strings.TrimSpace(r.PostFormValue("name"))
	email = strings.TrimSpace(r.PostFormValue("email"))
	pass = r.PostFormValue("password")
	confirm = r.PostFormValue("confirm")

	if name == "" || email == "" || pass == "" || confirm == "" {
		res.Message = "Please fill in all fields"
		goto SEND_RESPONSE
	} else if !validEmail(email) {
		res.Message = session.ErrInvalidEmail.Error()
		goto SEND_RESPONSE
	} else if pass != confirm {
		res.Message = "Passwords do not match"
		goto SEND_RESPONSE
	} else if err = d.api.Register(r.Context(), name, email, pass); err != nil {
		res.Message = d.remoteMessage(err)
		goto SEND_RESPONSE
	}

	d.log.Printf("[INFO] Registered account for %s\n", email)

	res.Status = true
	res.Message = "Registration successful, please log in"
	res.Next = session.Login.String()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleRegister(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePasswordForgot(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		email string
		res   = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	email = strings.TrimSpace(r.PostFormValue("email"))

	if !validEmail(email) {
		res.Message = session.ErrInvalidEmail.Error()
		goto SEND_RESPONSE
	} else if err = d.api.ForgotPassword(r.Context(), email); err != nil {
		res.Message = d.remoteMessage(err)
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "A reset code has been sent to " + email

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePasswordForgot(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePasswordVerify(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err         error
		email, code string
		res         = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	email = strings.TrimSpace(r.PostFormValue("email"))
	code = strings.TrimSpace(r.PostFormValue("code"))

	if email == "" || code == "" {
		res.Message = "Please enter the code you received"
		goto SEND_RESPONSE
	} else if err = d.api.VerifyCode(r.Context(), email, code); err != nil {
		res.Message = d.remoteMessage(err)
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "Code verified"

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePasswordVerify(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                        error
		email, code, pass, confirm string
		res                        = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	email = strings.TrimSpace(r.PostFormValue("email"))
	code = strings.TrimSpace(r.PostFormValue("code"))
	pass = r.PostFormValue("password")
	confirm = r.PostFormValue("confirm")

	if email == "" || code == "" || pass == "" || confirm == "" {
		res.Message = "Please fill in all fields"
		goto SEND_RESPONSE
	} else if pass != confirm {
		res.Message = "Passwords do not match"
		goto SEND_RESPONSE
	} else if err = d.api.ResetPassword(r.Context(), email, code, pass); err != nil {
		res.Message = d.remoteMessage(err)
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "Your password has been reset, please log in"
	res.Next = session.Login.String()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handlePasswordReset(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{ID: d.getID(), Next: session.Login.String()}

	if err := d.deleteAccount(); err != nil {
		res.Message = fmt.Sprintf("Failed to remove account data: %s",
			err.Error())
	} else {
		res.Status = true
		res.Message = "Account data has been removed"
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleAccountDelete(w http.ResponseWriter, r *http.Request)

////////////////////////////////////////////////////////////////////////////////
///// Transactions /////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	} else if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(common.TimestampFormatDate, s)
} // func parseDate(s string) (time.Time, error)

func (d *Daemon) handleExpenseAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                     error
		token, amtStr, cat, msg string
		amount                  decimal.Decimal
		tx                      objects.Transaction
		saved                   *objects.Transaction
		res                     = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	amtStr = strings.TrimSpace(r.PostFormValue("amount"))
	cat = strings.TrimSpace(r.PostFormValue("category"))
	tx.Note = strings.TrimSpace(r.PostFormValue("description"))

	if amtStr == "" || cat == "" || tx.Note == "" {
		res.Message = "Please fill in all fields"
		goto SEND_RESPONSE
	} else if amount, err = decimal.NewFromString(amtStr); err != nil {
		msg = fmt.Sprintf("Cannot parse amount %q: %s",
			amtStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if tx.Date, err = parseDate(r.PostFormValue("date")); err != nil {
		msg = fmt.Sprintf("Cannot parse date %q: %s",
			r.PostFormValue("date"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if token, err = d.gate.Token(); err != nil {
		res.Message = err.Error()
		res.Next = session.Login.String()
		goto SEND_RESPONSE
	}

	tx.Type = objects.TxExpense
	tx.Category = cat
	tx.Amount = amount.Abs().Neg()

	if saved, err = d.api.AddTransaction(r.Context(), token, &tx); err != nil {
		msg = fmt.Sprintf("Failed to save expense: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		if d.gate.State() == session.NoToken {
			res.Next = session.Login.String()
		}
		goto SEND_RESPONSE
	}

	d.notes.SendTransactionNotification(amount, cat)
	d.notes.SendTransactionUpdateNotification(amount, cat)
	d.notes.SendReminderNotification(amount, cat)

	res.Status = true
	res.Message = saved.ID

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleExpenseAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSavingAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                          error
		token, amtStr, label, editID string
		msg                          string
		amount                       decimal.Decimal
		tx                           objects.Transaction
		saved                        *objects.Transaction
		res                          = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	amtStr = strings.TrimSpace(r.PostFormValue("amount"))
	label = strings.TrimSpace(r.PostFormValue("label"))
	editID = r.PostFormValue("id")

	if amtStr == "" || label == "" {
		res.Message = "Please select a category and enter a valid amount"
		goto SEND_RESPONSE
	} else if amount, err = decimal.NewFromString(amtStr); err != nil {
		res.Message = "Please select a category and enter a valid amount"
		goto SEND_RESPONSE
	} else if tx.Date, err = parseDate(r.PostFormValue("date")); err != nil {
		msg = fmt.Sprintf("Cannot parse date %q: %s",
			r.PostFormValue("date"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if token, err = d.gate.Token(); err != nil {
		res.Message = err.Error()
		res.Next = session.Login.String()
		goto SEND_RESPONSE
	}

	tx.ID = editID
	tx.Type = objects.TxExpense
	tx.Category = label
	tx.Amount = amount.Abs().Neg()
	tx.Note = r.PostFormValue("note")
	tx.BudgetCategory = objects.BudgetSavings

	if editID != "" {
		saved, err = d.api.UpdateTransaction(r.Context(), token, &tx)
	} else {
		saved, err = d.api.AddTransaction(r.Context(), token, &tx)
	}

	if err != nil {
		msg = fmt.Sprintf("Failed to save transaction: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		if d.gate.State() == session.NoToken {
			res.Next = session.Login.String()
		}
		goto SEND_RESPONSE
	}

	msg = fmt.Sprintf("Savings: %s (%s)", amtStr, label)
	d.notes.AddNotification(msg, category.Transaction)

	res.Status = true
	res.Message = saved.ID
	res.Next = session.Home.String()

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSavingAdd(w http.ResponseWriter, r *http.Request)

////////////////////////////////////////////////////////////////////////////////
///// Notifications ////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleNotificationGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.sendJSON(w, d.notes.GetAllNotifications())
} // func (d *Daemon) handleNotificationGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleNotificationDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		id  = mux.Vars(r)["id"]
		res = objects.Response{ID: d.getID()}
	)

	d.notes.DeleteNotification(id)

	res.Status = true
	res.Message = fmt.Sprintf("Notification %s was deleted", id)

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleNotificationDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleNotificationClear(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{ID: d.getID(), Status: true, Message: "OK"}

	d.notes.ClearAllNotifications()
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleNotificationClear(w http.ResponseWriter, r *http.Request)

////////////////////////////////////////////////////////////////////////////////
///// Settings /////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var s = d.notes.Settings()
	d.sendJSON(w, &s)
} // func (d *Daemon) handleSettingsGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSettingsSet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		msg string
		cfg objects.Settings
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	} else if cfg.NotificationsEnabled, err = strconv.ParseBool(r.PostFormValue("notificationsEnabled")); err != nil {
		msg = fmt.Sprintf("Invalid value for notificationsEnabled: %q",
			r.PostFormValue("notificationsEnabled"))
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if cfg.TransactionNotifications, err = strconv.ParseBool(r.PostFormValue("transactionNotifications")); err != nil {
		msg = fmt.Sprintf("Invalid value for transactionNotifications: %q",
			r.PostFormValue("transactionNotifications"))
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = d.notes.ApplySettings(cfg); err != nil {
		res.Message = fmt.Sprintf("Failed to save settings: %s",
			err.Error())
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleSettingsSet(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendJSON(w http.ResponseWriter, v interface{}) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(v); err != nil {
		d.log.Printf("[ERROR] Cannot serialize %T: %s\n",
			v,
			err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendJSON(w http.ResponseWriter, v interface{})

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	d.sendJSON(w, res)
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
