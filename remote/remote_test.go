// /home/krylon/go/src/github.com/blicero/spesen/remote/remote_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 13. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 15:02:33 krylon>

package remote

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/blicero/spesen/objects"
	"github.com/blicero/spesen/remote/remotetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPair(t *testing.T) (*remotetest.Server, *Client) {
	var srv = remotetest.New()
	t.Cleanup(srv.Close)

	var c, err = NewClient(srv.URL, 2*time.Second)
	require.NoError(t, err)

	return srv, c
} // func newPair(t *testing.T) (*remotetest.Server, *Client)

func TestLogin(t *testing.T) {
	var (
		srv, c = newPair(t)
		ctx    = context.Background()
		user   = srv.AddUser("Alice", "alice@example.com", "hunter2")
	)

	res, err := c.Login(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user, res.User)
	assert.NoError(t, c.VerifyToken(ctx, res.Token))

	_, err = c.Login(ctx, "alice@example.com", "wrong")
	var se *StatusError
	require.True(t, errors.As(err, &se), "%v", err)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Invalid credentials", se.Message)
} // func TestLogin(t *testing.T)

func TestPasswordReset(t *testing.T) {
	var (
		srv, c = newPair(t)
		ctx    = context.Background()
	)

	require.NoError(t, c.Register(ctx, "Bob", "bob@example.com", "old"))
	require.NoError(t, c.ForgotPassword(ctx, "bob@example.com"))
	assert.Error(t, c.VerifyCode(ctx, "bob@example.com", "000000"))
	require.NoError(t, c.VerifyCode(ctx, "bob@example.com", remotetest.ResetCode))
	require.NoError(t, c.ResetPassword(ctx, "bob@example.com", remotetest.ResetCode, "new"))

	_, err := c.Login(ctx, "bob@example.com", "new")
	assert.NoError(t, err)
	assert.Contains(t, srv.Requests(), "POST /api/auth/reset-password")
} // func TestPasswordReset(t *testing.T)

func TestTransactions(t *testing.T) {
	var (
		srv, c = newPair(t)
		ctx    = context.Background()
		user   = srv.AddUser("Carol", "carol@example.com", "pw")
		token  = srv.Token(user.ID, time.Hour)
		day    = time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC)
	)

	saved, err := c.AddTransaction(ctx, token, &objects.Transaction{
		Type:     objects.TxExpense,
		Category: "Food",
		Amount:   decimal.RequireFromString("-12.50"),
		Date:     day,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.True(t, saved.Amount.Equal(decimal.RequireFromString("-12.5")))

	_, err = c.AddTransaction(ctx, token, &objects.Transaction{
		Type:           objects.TxIncome,
		Category:       "Salary",
		Amount:         decimal.NewFromInt(1000),
		BudgetCategory: objects.BudgetSavings,
		Date:           day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	list, err := c.ListTransactions(ctx, token)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = c.TransactionsByDate(ctx, token, day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Food", list[0].Category)

	saved.Note = "Lunch"
	updated, err := c.UpdateTransaction(ctx, token, saved)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", updated.Note)

	stats, err := c.Budget(ctx, token)
	require.NoError(t, err)
	assert.True(t, stats.TotalIncome.Equal(decimal.NewFromInt(1000)), stats.TotalIncome.String())

	report, err := c.Expenses(ctx, token, objects.Monthly)
	require.NoError(t, err)
	assert.Contains(t, string(report), "2026-10")

	_, err = c.Expenses(ctx, token, objects.Period("weekly"))
	assert.Error(t, err)

	require.NoError(t, c.DeleteTransaction(ctx, token, saved.ID))
	assert.Len(t, srv.Transactions(user.ID), 1)
} // func TestTransactions(t *testing.T)

func TestUnauthorizedHook(t *testing.T) {
	var (
		srv, c  = newPair(t)
		ctx     = context.Background()
		user    = srv.AddUser("Dave", "dave@example.com", "pw")
		token   = srv.Token(user.ID, time.Hour)
		evicted int
	)

	c.SetUnauthorizedHook(func() { evicted++ })
	srv.Revoke(token)

	_, err := c.ListTransactions(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, evicted)

	_, err = c.Budget(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 2, evicted)

	// Token verification leaves the decision to the caller.
	assert.ErrorIs(t, c.VerifyToken(ctx, token), ErrUnauthorized)
	assert.Equal(t, 2, evicted)
} // func TestUnauthorizedHook(t *testing.T)

func TestTimeout(t *testing.T) {
	var srv = remotetest.New()
	defer srv.Close()

	var c, err = NewClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	srv.SetDelay(time.Second)
	err = c.VerifyToken(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrUnreachable)
} // func TestTimeout(t *testing.T)

func TestNewClientInvalid(t *testing.T) {
	var _, err = NewClient("not a url", time.Second)
	assert.Error(t, err)
} // func TestNewClientInvalid(t *testing.T)
