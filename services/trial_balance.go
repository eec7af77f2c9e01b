package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

// DeriveTrialBalance lists every account's net balance split into debit and
// credit columns. Accounts that net to zero are dropped. Rows are ordered by
// account name.
func DeriveTrialBalance(transactions []models.Transaction, accounts []models.Account) models.TrialBalance {
	set := netBalances(transactions, accounts)

	sorted := make([]models.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	report := models.TrialBalance{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Orphans:     set.orphans,
	}

	for _, account := range sorted {
		balance := set.byAccount[account.ID]
		if balance.IsZero() {
			continue
		}

		row := models.TrialBalanceRow{
			AccountName: account.Name,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		positive := !balance.IsNegative()
		if debitNormal(account.Type) == positive {
			row.Debit = balance.Abs()
		} else {
			row.Credit = balance.Abs()
		}

		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	return report
}
