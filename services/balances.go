package services

import (
	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

// balanceSet holds per-account net balances keyed by account ID, plus the
// transactions that referenced an unknown account.
type balanceSet struct {
	byAccount map[string]decimal.Decimal
	orphans   []models.OrphanedTransaction
}

// netBalances accumulates one net balance per account.
//
// Polarity rules: on Asset and Expense accounts an income transaction adds
// its amount, expense and debt transactions subtract it. On Liability,
// Equity and Income accounts the polarity is inverted, except that a debt
// transaction always adds its signed amount (a positive loan received
// increases the balance, a negative repayment decreases it).
func netBalances(transactions []models.Transaction, accounts []models.Account) balanceSet {
	index := make(map[string]models.Account, len(accounts))
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		index[a.ID] = a
		balances[a.ID] = decimal.Zero
	}

	var orphans []models.OrphanedTransaction
	for _, t := range transactions {
		account, ok := index[t.AccountID]
		if !ok {
			orphans = append(orphans, models.OrphanedTransaction{
				TransactionID: t.ID,
				AccountID:     t.AccountID,
			})
			continue
		}

		amount := t.Amount.Decimal
		balance := balances[account.ID]

		switch account.Type {
		case models.AccountAsset, models.AccountExpense:
			if t.Type == models.TransactionIncome {
				balance = balance.Add(amount)
			} else {
				balance = balance.Sub(amount)
			}
		case models.AccountLiability, models.AccountEquity, models.AccountIncome:
			switch t.Type {
			case models.TransactionIncome:
				balance = balance.Sub(amount)
			default:
				// expense and debt both add; debt carries its own sign
				balance = balance.Add(amount)
			}
		}

		balances[account.ID] = balance
	}

	return balanceSet{byAccount: balances, orphans: orphans}
}

// debitNormal reports whether the account type presents a non-negative net
// balance in the debit column.
func debitNormal(t models.AccountType) bool {
	return t == models.AccountAsset || t == models.AccountExpense
}
