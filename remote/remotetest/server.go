// /home/krylon/go/src/github.com/blicero/spesen/remote/remotetest/server.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 14:36:12 krylon>

// Package remotetest provides an in-process imitation of the expense
// tracker's web API for use in tests.
package remotetest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/objects"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/shopspring/decimal"
)

// ResetCode is the code the fake server "mails" on forgot-password.
const ResetCode = "424242"

type account struct {
	user     objects.User
	password string
}

// Server is a fake web API. It issues HS256 tokens and keeps all data
// in memory.
type Server struct {
	*httptest.Server
	secret       []byte
	router       *mux.Router
	lock         sync.Mutex
	accounts     map[string]*account
	revoked      map[string]bool
	txs          map[string][]objects.Transaction
	codes        map[string]string
	verifyStatus int
	verifyCount  int
	requests     []string
	delay        time.Duration
	idCnt        int
}

// New starts a fake server.
func New() *Server {
	var srv = &Server{
		secret:   []byte(common.GetUUID()),
		router:   mux.NewRouter(),
		accounts: make(map[string]*account),
		revoked:  make(map[string]bool),
		txs:      make(map[string][]objects.Transaction),
		codes:    make(map[string]string),
	}

	srv.router.HandleFunc("/api/auth/login", srv.handleLogin).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/auth/register", srv.handleRegister).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/auth/verify-token", srv.handleVerify).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/auth/forgot-password", srv.handleForgot).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/auth/verify-code", srv.handleVerifyCode).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/auth/reset-password", srv.handleReset).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/transactions", srv.auth(srv.handleTxList)).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/transactions", srv.auth(srv.handleTxAdd)).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/transactions/budget", srv.auth(srv.handleBudget)).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/transactions/date/{date}", srv.auth(srv.handleTxByDate)).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/transactions/expenses/{period:(?:daily|monthly|yearly)}",
		srv.auth(srv.handleExpenses)).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/transactions/{id}", srv.auth(srv.handleTxUpdate)).Methods(http.MethodPut)
	srv.router.HandleFunc("/api/transactions/{id}", srv.auth(srv.handleTxDelete)).Methods(http.MethodDelete)

	srv.Server = httptest.NewServer(srv)

	return srv
} // func New() *Server

// ServeHTTP records the request and passes it on to the router.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.lock.Lock()
	srv.requests = append(srv.requests, r.Method+" "+r.URL.Path)
	var delay = srv.delay
	srv.lock.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	srv.router.ServeHTTP(w, r)
} // func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request)

// AddUser creates an account and returns the User.
func (srv *Server) AddUser(name, email, password string) objects.User {
	srv.lock.Lock()
	defer srv.lock.Unlock()

	srv.idCnt++
	var acc = &account{
		user: objects.User{
			ID:    fmt.Sprintf("u%04d", srv.idCnt),
			Name:  name,
			Email: email,
		},
		password: password,
	}

	srv.accounts[strings.ToLower(email)] = acc
	return acc.user
} // func (srv *Server) AddUser(name, email, password string) objects.User

// Token issues a token for userID that is valid for ttl.
func (srv *Server) Token(userID string, ttl time.Duration) string {
	var (
		now   = time.Now()
		token = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   userID,
			ID:        common.GetUUID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		})
	)

	var str, err = token.SignedString(srv.secret)
	if err != nil {
		panic(fmt.Sprintf("Cannot sign token: %s", err.Error()))
	}

	return str
} // func (srv *Server) Token(userID string, ttl time.Duration) string

// Revoke invalidates a token.
func (srv *Server) Revoke(token string) {
	srv.lock.Lock()
	srv.revoked[token] = true
	srv.lock.Unlock()
} // func (srv *Server) Revoke(token string)

// SetVerifyStatus forces verify-token to answer with status. Zero restores
// the normal behavior.
func (srv *Server) SetVerifyStatus(status int) {
	srv.lock.Lock()
	srv.verifyStatus = status
	srv.lock.Unlock()
} // func (srv *Server) SetVerifyStatus(status int)

// SetDelay makes the server wait for d before handling each request.
func (srv *Server) SetDelay(d time.Duration) {
	srv.lock.Lock()
	srv.delay = d
	srv.lock.Unlock()
} // func (srv *Server) SetDelay(d time.Duration)

// VerifyCount returns the number of verify-token requests handled.
func (srv *Server) VerifyCount() int {
	srv.lock.Lock()
	defer srv.lock.Unlock()
	return srv.verifyCount
} // func (srv *Server) VerifyCount() int

// Requests returns "METHOD /path" for every request received.
func (srv *Server) Requests() []string {
	srv.lock.Lock()
	defer srv.lock.Unlock()
	return append([]string(nil), srv.requests...)
} // func (srv *Server) Requests() []string

// Transactions returns the stored transactions of a user.
func (srv *Server) Transactions(userID string) []objects.Transaction {
	srv.lock.Lock()
	defer srv.lock.Unlock()
	return append([]objects.Transaction(nil), srv.txs[userID]...)
} // func (srv *Server) Transactions(userID string) []objects.Transaction

////////////////////////////////////////////////////////////////////////////////
///// Helpers //////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

func (srv *Server) userOf(token string) (string, error) {
	srv.lock.Lock()
	var revoked = srv.revoked[token]
	srv.lock.Unlock()

	if token == "" {
		return "", errors.New("no token")
	} else if revoked {
		return "", errors.New("token has been revoked")
	}

	var claims jwt.RegisteredClaims
	var _, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return srv.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return "", err
	}

	return claims.Subject, nil
} // func (srv *Server) userOf(token string) (string, error)

func bearer(r *http.Request) string {
	var hdr = r.Header.Get("Authorization")
	return strings.TrimPrefix(hdr, "Bearer ")
} // func bearer(r *http.Request) string

func (srv *Server) auth(h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uid, err = srv.userOf(bearer(r))
		if err != nil {
			sendJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token is not valid"})
			return
		}

		h(w, r, uid)
	}
} // func (srv *Server) auth(...) http.HandlerFunc

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf, err = ffjson.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf) // nolint: errcheck
} // func sendJSON(w http.ResponseWriter, status int, v interface{})

func readJSON(r *http.Request, v interface{}) error {
	var buf, err = io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	return ffjson.Unmarshal(buf, v)
} // func readJSON(r *http.Request, v interface{}) error

type msg struct {
	Msg string `json:"msg"`
}

////////////////////////////////////////////////////////////////////////////////
///// Handlers /////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////////////

type authBody struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (srv *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body authBody

	if err := readJSON(r, &body); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed request"})
		return
	}

	srv.lock.Lock()
	var acc, ok = srv.accounts[strings.ToLower(body.Email)]
	srv.lock.Unlock()

	if !ok || acc.password != body.Password {
		sendJSON(w, http.StatusBadRequest, msg{"Invalid credentials"})
		return
	}

	sendJSON(w, http.StatusOK, &objects.LoginResult{
		Token: srv.Token(acc.user.ID, time.Hour),
		User:  acc.user,
	})
} // func (srv *Server) handleLogin(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body authBody

	if err := readJSON(r, &body); err != nil || body.Email == "" || body.Password == "" {
		sendJSON(w, http.StatusBadRequest, msg{"Please enter all fields"})
		return
	}

	srv.lock.Lock()
	var _, exists = srv.accounts[strings.ToLower(body.Email)]
	srv.lock.Unlock()

	if exists {
		sendJSON(w, http.StatusBadRequest, msg{"User already exists"})
		return
	}

	srv.AddUser(body.Name, body.Email, body.Password)
	sendJSON(w, http.StatusCreated, msg{"User registered"})
} // func (srv *Server) handleRegister(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	srv.lock.Lock()
	srv.verifyCount++
	var forced = srv.verifyStatus
	srv.lock.Unlock()

	if forced != 0 {
		sendJSON(w, forced, msg{http.StatusText(forced)})
		return
	} else if _, err := srv.userOf(bearer(r)); err != nil {
		sendJSON(w, http.StatusUnauthorized, msg{"Token is not valid"})
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"valid": true})
} // func (srv *Server) handleVerify(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	var body authBody

	if err := readJSON(r, &body); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed request"})
		return
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if _, ok := srv.accounts[strings.ToLower(body.Email)]; !ok {
		sendJSON(w, http.StatusNotFound, msg{"User not found"})
		return
	}

	srv.codes[strings.ToLower(body.Email)] = ResetCode
	sendJSON(w, http.StatusOK, msg{"Reset code sent"})
} // func (srv *Server) handleForgot(w http.ResponseWriter, r *http.Request)

func (srv *Server) checkCode(body *authBody) bool {
	var code, ok = srv.codes[strings.ToLower(body.Email)]
	return ok && code == body.Code
} // func (srv *Server) checkCode(body *authBody) bool

func (srv *Server) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var body authBody

	if err := readJSON(r, &body); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed request"})
		return
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if !srv.checkCode(&body) {
		sendJSON(w, http.StatusBadRequest, msg{"Invalid or expired code"})
		return
	}

	sendJSON(w, http.StatusOK, msg{"Code verified"})
} // func (srv *Server) handleVerifyCode(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var body authBody

	if err := readJSON(r, &body); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed request"})
		return
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if !srv.checkCode(&body) {
		sendJSON(w, http.StatusBadRequest, msg{"Invalid or expired code"})
		return
	}

	var email = strings.ToLower(body.Email)
	srv.accounts[email].password = body.NewPassword
	delete(srv.codes, email)
	sendJSON(w, http.StatusOK, msg{"Password reset"})
} // func (srv *Server) handleReset(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleTxList(w http.ResponseWriter, r *http.Request, uid string) {
	sendJSON(w, http.StatusOK, srv.Transactions(uid))
} // func (srv *Server) handleTxList(w http.ResponseWriter, r *http.Request, uid string)

func (srv *Server) handleTxByDate(w http.ResponseWriter, r *http.Request, uid string) {
	var (
		err  error
		day  time.Time
		list = make([]objects.Transaction, 0)
	)

	if day, err = time.Parse(common.TimestampFormatDate, mux.Vars(r)["date"]); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Invalid date"})
		return
	}

	for _, tx := range srv.Transactions(uid) {
		if tx.Date.UTC().Format(common.TimestampFormatDate) == day.Format(common.TimestampFormatDate) {
			list = append(list, tx)
		}
	}

	sendJSON(w, http.StatusOK, list)
} // func (srv *Server) handleTxByDate(w http.ResponseWriter, r *http.Request, uid string)

func (srv *Server) handleTxAdd(w http.ResponseWriter, r *http.Request, uid string) {
	var tx objects.Transaction

	if err := readJSON(r, &tx); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed transaction"})
		return
	} else if tx.Type != objects.TxIncome && tx.Type != objects.TxExpense {
		sendJSON(w, http.StatusBadRequest, msg{"Invalid transaction type"})
		return
	}

	srv.lock.Lock()
	srv.idCnt++
	tx.ID = fmt.Sprintf("t%06d", srv.idCnt)
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}
	srv.txs[uid] = append(srv.txs[uid], tx)
	srv.lock.Unlock()

	sendJSON(w, http.StatusCreated, map[string]*objects.Transaction{"transaction": &tx})
} // func (srv *Server) handleTxAdd(w http.ResponseWriter, r *http.Request, uid string)

func (srv *Server) handleTxUpdate(w http.ResponseWriter, r *http.Request, uid string) {
	var (
		tx objects.Transaction
		id = mux.Vars(r)["id"]
	)

	if err := readJSON(r, &tx); err != nil {
		sendJSON(w, http.StatusBadRequest, msg{"Malformed transaction"})
		return
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	for i, old := range srv.txs[uid] {
		if old.ID == id {
			tx.ID = id
			srv.txs[uid][i] = tx
			sendJSON(w, http.StatusOK, map[string]*objects.Transaction{"transaction": &tx})
			return
		}
	}

	sendJSON(w, http.StatusNotFound, msg{"Transaction not found"})
} // func (srv *Server) handleTxUpdate(w http.ResponseWriter, r *http.Request, uid string)

func (srv *Server) handleTxDelete(w http.ResponseWriter, r *http.Request, uid string) {
	var id = mux.Vars(r)["id"]

	srv.lock.Lock()
	defer srv.lock.Unlock()

	for i, old := range srv.txs[uid] {
		if old.ID == id {
			srv.txs[uid] = append(srv.txs[uid][:i], srv.txs[uid][i+1:]...)
			sendJSON(w, http.StatusOK, msg{"Transaction deleted"})
			return
		}
	}

	sendJSON(w, http.StatusNotFound, msg{"Transaction not found"})
} // func (srv *Server) handleTxDelete(w http.ResponseWriter, r *http.Request, uid string)

func (srv *Server) handleBudget(w http.ResponseWriter, r *http.Request, uid string) {
	var stats objects.BudgetStats

	for _, tx := range srv.Transactions(uid) {
		if !tx.IsExpense() {
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		}

		if tx.BudgetCategory == objects.BudgetSavings {
			stats.Savings = stats.Savings.Add(tx.Amount.Abs())
		}
	}

	var half = decimal.NewFromFloat(0.5)
	stats.Needs = stats.TotalIncome.Mul(half)
	stats.Wants = stats.TotalIncome.Mul(decimal.NewFromFloat(0.3))

	sendJSON(w, http.StatusOK, map[string]objects.BudgetStats{"budgetStats": stats})
} // func (srv *Server) handleBudget(w http.ResponseWriter, r *http.Request, uid string)

type expenseEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func (srv *Server) handleExpenses(w http.ResponseWriter, r *http.Request, uid string) {
	var (
		period = objects.Period(mux.Vars(r)["period"])
		layout string
		sums   = make(map[string]decimal.Decimal)
		order  []string
	)

	switch period {
	case objects.Daily:
		layout = "2006-01-02"
	case objects.Monthly:
		layout = "2006-01"
	default:
		layout = "2006"
	}

	for _, tx := range srv.Transactions(uid) {
		if !tx.IsExpense() {
			continue
		}

		var key = tx.Date.UTC().Format(layout)
		if _, ok := sums[key]; !ok {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(tx.Amount.Abs())
	}

	var list = make([]expenseEntry, 0, len(order))
	for _, key := range order {
		list = append(list, expenseEntry{Label: key, Amount: sums[key]})
	}

	sendJSON(w, http.StatusOK, list)
} // func (srv *Server) handleExpenses(w http.ResponseWriter, r *http.Request, uid string)
