package models

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the cash direction recorded against a transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	TransactionDebt    TransactionType = "debt"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountAsset     AccountType = "Asset"
	AccountLiability AccountType = "Liability"
	AccountEquity    AccountType = "Equity"
	AccountIncome    AccountType = "Income"
	AccountExpense   AccountType = "Expense"
)

// Transaction is a read-only ledger row fetched from the platform API
// for the selected date range.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      Amount          `json:"amount"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	Category    *string         `json:"category"`
	AccountID   string          `json:"account_id"`
}

// CategoryName returns the category or "Uncategorized" when none is set.
func (t Transaction) CategoryName() string {
	if t.Category == nil || *t.Category == "" {
		return "Uncategorized"
	}
	return *t.Category
}

// Account is temporally stable reference data; the full list is fetched
// regardless of the reporting date range.
type Account struct {
	ID   string      `json:"id"`
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// Asset is a fixed, depreciable asset. Only the balance sheet uses it.
type Asset struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Cost                    Amount `json:"cost"`
	DateReceived            Date   `json:"date_received"`
	AccumulatedDepreciation Amount `json:"accumulated_depreciation"`
}

// NetBookValue is cost minus accumulated depreciation. Derived, never stored.
func (a Asset) NetBookValue() decimal.Decimal {
	return a.Cost.Sub(a.AccumulatedDepreciation.Decimal)
}

// Amount is a decimal that tolerates sloppy upstream JSON: numbers, quoted
// numbers, null. Unparseable values contribute nothing instead of failing
// the whole fetch.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// Date is a calendar date serialized as YYYY-MM-DD. Some upstream endpoints
// send full RFC3339 timestamps, so that is accepted as a fallback.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// OnOrBefore reports whether d falls on or before the cutoff date.
func (d Date) OnOrBefore(cutoff Date) bool {
	return !d.After(cutoff.Time)
}

// ParseDate parses a YYYY-MM-DD query parameter.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}
