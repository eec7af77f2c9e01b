package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) models.Date {
	return models.NewDate(year, month, d)
}

func strPtr(s string) *string {
	return &s
}

type txSpec struct {
	id          string
	txType      models.TransactionType
	amount      string
	description string
	category    *string
	accountID   string
	date        models.Date
}

func makeTx(spec txSpec) models.Transaction {
	if spec.date.IsZero() {
		spec.date = day(2024, time.March, 15)
	}
	return models.Transaction{
		ID:          spec.id,
		Type:        spec.txType,
		Amount:      models.NewAmount(dec(spec.amount)),
		Description: spec.description,
		Date:        spec.date,
		Category:    spec.category,
		AccountID:   spec.accountID,
	}
}

func testAccounts() []models.Account {
	return []models.Account{
		{ID: "bank", Code: "1010", Name: "Bank Account", Type: models.AccountAsset},
		{ID: "ar", Code: "1020", Name: "Accounts Receivable", Type: models.AccountAsset},
		{ID: "inv", Code: "1030", Name: "Inventory", Type: models.AccountAsset},
		{ID: "ap", Code: "2010", Name: "Accounts Payable", Type: models.AccountLiability},
		{ID: "std", Code: "2020", Name: "Short-term Debt", Type: models.AccountLiability},
		{ID: "ltd", Code: "2030", Name: "Long-term Debt", Type: models.AccountLiability},
		{ID: "oc", Code: "3010", Name: "Owner's Capital", Type: models.AccountEquity},
		{ID: "sales", Code: "4010", Name: "Sales Income", Type: models.AccountIncome},
		{ID: "rent", Code: "5010", Name: "Rent Expense", Type: models.AccountExpense},
	}
}
