// /home/krylon/go/src/github.com/blicero/spesen/objects/01_objects_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 21:10:27 krylon>

package objects

import (
	"strings"
	"testing"
	"time"

	"github.com/blicero/spesen/objects/category"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A notification log as written by earlier versions of the mobile app.
const legacyLog = `[
  {"id":"1718000000123","message":"Savings: 500 (Emergency fund)","type":"Transaction","timestamp":"2024-06-10T06:13:20.123Z"},
  {"id":"1717990000000","message":"Do you want to add this transaction?","type":"System","timestamp":"2024-06-10T03:26:40.000Z"}
]`

func TestNotificationLegacyLog(t *testing.T) {
	var log []Notification

	require.NoError(t, ffjson.Unmarshal([]byte(legacyLog), &log))
	require.Len(t, log, 2)

	assert.Equal(t, "1718000000123", log[0].ID)
	assert.Equal(t, category.Transaction, log[0].Category)
	assert.Equal(t, category.System, log[1].Category)
	assert.Equal(t,
		time.Date(2024, 6, 10, 6, 13, 20, 123000000, time.UTC),
		log[0].Timestamp.UTC())

	var title, body = log[0].Payload()
	assert.Equal(t, "Transaction", title)
	assert.Equal(t, "Savings: 500 (Emergency fund)", body)
} // func TestNotificationLegacyLog(t *testing.T)

func TestTransactionAmountIsNumber(t *testing.T) {
	var tx = Transaction{
		Type:     TxExpense,
		Category: "Food",
		Amount:   decimal.RequireFromString("-12.50"),
		Date:     time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	buf, err := ffjson.Marshal(&tx)
	require.NoError(t, err)

	var str = string(buf)
	assert.True(t, strings.Contains(str, `"amount":-12.5`), str)
	assert.False(t, strings.Contains(str, `"_id"`), str)
	assert.True(t, tx.IsExpense())
} // func TestTransactionAmountIsNumber(t *testing.T)

func TestCategoryValid(t *testing.T) {
	for _, c := range category.All() {
		assert.True(t, c.Valid(), c.String())
	}

	assert.False(t, category.Category("Spam").Valid())
} // func TestCategoryValid(t *testing.T)
