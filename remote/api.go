// /home/krylon/go/src/github.com/blicero/spesen/remote/api.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 13:58:47 krylon>

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/blicero/spesen/objects"
)

// Paths of the web API.
const (
	PathLogin          = "/api/auth/login"
	PathRegister       = "/api/auth/register"
	PathVerifyToken    = "/api/auth/verify-token"
	PathForgotPassword = "/api/auth/forgot-password"
	PathVerifyCode     = "/api/auth/verify-code"
	PathResetPassword  = "/api/auth/reset-password"
	PathTransactions   = "/api/transactions"
	PathBudget         = "/api/transactions/budget"
	PathByDate         = "/api/transactions/date/"
	PathExpenses       = "/api/transactions/expenses/"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword,omitempty"`
}

// Login exchanges email and password for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*objects.LoginResult, error) {
	var (
		err error
		res objects.LoginResult
	)

	if err = c.do(ctx, request{
		method: http.MethodPost,
		path:   PathLogin,
		body:   &credentials{Email: email, Password: password},
		result: &res,
	}); err != nil {
		return nil, err
	}

	return &res, nil
} // func (c *Client) Login(ctx context.Context, email, password string) (*objects.LoginResult, error)

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathRegister,
		body:   &credentials{Name: name, Email: email, Password: password},
	})
} // func (c *Client) Register(ctx context.Context, name, email, password string) error

// ForgotPassword asks the web API to mail a reset code to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathForgotPassword,
		body:   &credentials{Email: email},
	})
} // func (c *Client) ForgotPassword(ctx context.Context, email string) error

// VerifyCode checks a password reset code.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathVerifyCode,
		body:   &resetRequest{Email: email, Code: code},
	})
} // func (c *Client) VerifyCode(ctx context.Context, email, code string) error

// ResetPassword sets a new password, authorized by a reset code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   PathResetPassword,
		body:   &resetRequest{Email: email, Code: code, NewPassword: newPassword},
	})
} // func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error

// VerifyToken asks the web API if token is still valid. A nil error means
// it is. A rejected token does not trigger the unauthorized hook, the
// caller decides what to do about it.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   PathVerifyToken,
		token:  token,
	})
} // func (c *Client) VerifyToken(ctx context.Context, token string) error

// ListTransactions returns all of the user's transactions.
func (c *Client) ListTransactions(ctx context.Context, token string) ([]objects.Transaction, error) {
	var (
		err  error
		list []objects.Transaction
	)

	if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   PathTransactions,
		token:  token,
		result: &list,
		evict:  true,
	}); err != nil {
		return nil, err
	}

	return list, nil
} // func (c *Client) ListTransactions(ctx context.Context, token string) ([]objects.Transaction, error)

// TransactionsByDate returns the transactions of a single day.
func (c *Client) TransactionsByDate(ctx context.Context, token string, day time.Time) ([]objects.Transaction, error) {
	var (
		err  error
		list []objects.Transaction
	)

	if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   PathByDate + day.Format(common.TimestampFormatDate),
		token:  token,
		result: &list,
		evict:  true,
	}); err != nil {
		return nil, err
	}

	return list, nil
} // func (c *Client) TransactionsByDate(ctx context.Context, token string, day time.Time) ([]objects.Transaction, error)

type txEnvelope struct {
	Transaction *objects.Transaction `json:"transaction"`
}

// AddTransaction stores a new transaction and returns it as saved by the
// web API.
func (c *Client) AddTransaction(ctx context.Context, token string, tx *objects.Transaction) (*objects.Transaction, error) {
	var (
		err error
		res txEnvelope
	)

	if err = c.do(ctx, request{
		method: http.MethodPost,
		path:   PathTransactions,
		token:  token,
		body:   tx,
		result: &res,
		evict:  true,
	}); err != nil {
		return nil, err
	} else if res.Transaction == nil {
		return tx, nil
	}

	return res.Transaction, nil
} // func (c *Client) AddTransaction(ctx context.Context, token string, tx *objects.Transaction) (*objects.Transaction, error)

// UpdateTransaction replaces the transaction with tx.ID.
func (c *Client) UpdateTransaction(ctx context.Context, token string, tx *objects.Transaction) (*objects.Transaction, error) {
	var (
		err error
		res txEnvelope
	)

	if tx.ID == "" {
		return nil, fmt.Errorf("Transaction has no ID")
	}

	if err = c.do(ctx, request{
		method: http.MethodPut,
		path:   PathTransactions + "/" + url.PathEscape(tx.ID),
		token:  token,
		body:   tx,
		result: &res,
		evict:  true,
	}); err != nil {
		return nil, err
	} else if res.Transaction == nil {
		return tx, nil
	}

	return res.Transaction, nil
} // func (c *Client) UpdateTransaction(ctx context.Context, token string, tx *objects.Transaction) (*objects.Transaction, error)

// DeleteTransaction deletes the transaction with the given ID.
func (c *Client) DeleteTransaction(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   PathTransactions + "/" + url.PathEscape(id),
		token:  token,
		evict:  true,
	})
} // func (c *Client) DeleteTransaction(ctx context.Context, token, id string) error

type budgetEnvelope struct {
	BudgetStats objects.BudgetStats `json:"budgetStats"`
}

// Budget returns the user's budget summary.
func (c *Client) Budget(ctx context.Context, token string) (*objects.BudgetStats, error) {
	var (
		err error
		res budgetEnvelope
	)

	if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   PathBudget,
		token:  token,
		result: &res,
		evict:  true,
	}); err != nil {
		return nil, err
	}

	return &res.BudgetStats, nil
} // func (c *Client) Budget(ctx context.Context, token string) (*objects.BudgetStats, error)

// Expenses returns the expense report for period. The shape of the report
// differs between periods, so it is returned unparsed.
func (c *Client) Expenses(ctx context.Context, token string, period objects.Period) (json.RawMessage, error) {
	var (
		err error
		res json.RawMessage
	)

	if !period.Valid() {
		return nil, fmt.Errorf("Invalid period %q", period)
	} else if err = c.do(ctx, request{
		method: http.MethodGet,
		path:   PathExpenses + string(period),
		token:  token,
		result: &res,
		evict:  true,
	}); err != nil {
		return nil, err
	}

	return res, nil
} // func (c *Client) Expenses(ctx context.Context, token string, period objects.Period) (json.RawMessage, error)
