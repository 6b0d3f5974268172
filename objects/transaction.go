// /home/krylon/go/src/github.com/blicero/spesen/objects/transaction.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 18:02:31 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate ffjson transaction.go

func init() {
	// The web API expects amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Kinds of Transactions as understood by the web API.
const (
	TxIncome  = "income"
	TxExpense = "expense"
)

// BudgetSavings is the budget category for money put aside.
const BudgetSavings = "savings"

// Transaction is a single income or expense record kept by the web API.
// Expenses carry a negative Amount.
type Transaction struct {
	ID             string          `json:"_id,omitempty"`
	Type           string          `json:"type"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note,omitempty"`
	BudgetCategory string          `json:"budgetCategory,omitempty"`
	Date           time.Time       `json:"date"`
}

// IsExpense returns true if the Transaction takes money out.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
} // func (t *Transaction) IsExpense() bool

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{ ID: %q, Type: %s, Category: %q, Amount: %s, Date: %s }",
		t.ID,
		t.Type,
		t.Category,
		t.Amount,
		t.Date.Format(time.RFC3339))
} // func (t *Transaction) String() string

// BudgetStats is the budget summary computed by the web API.
type BudgetStats struct {
	TotalIncome decimal.Decimal `json:"totalIncome"`
	Needs       decimal.Decimal `json:"needs"`
	Wants       decimal.Decimal `json:"wants"`
	Savings     decimal.Decimal `json:"savings"`
}

// Period is the granularity of an expense report.
type Period string

// The periods the web API can aggregate expenses by.
const (
	Daily   Period = "daily"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Valid returns true if p is a known Period.
func (p Period) Valid() bool {
	return p == Daily || p == Monthly || p == Yearly
} // func (p Period) Valid() bool
