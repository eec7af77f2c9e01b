package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacore/financials-api/models"
)

func TestDeriveTrialBalance_BalancedLedger(t *testing.T) {
	accounts := testAccounts()

	// Double-entry pairs: every debit-side row has a matching credit-side
	// row, so the columns must balance.
	transactions := []models.Transaction{
		// Sale of 1000: bank up, sales income credited via the mirror leg
		makeTx(txSpec{id: "t1", txType: models.TransactionIncome, amount: "1000", accountID: "bank"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionIncome, amount: "-1000", accountID: "sales"}),
		// Rent of 200 paid from the bank
		makeTx(txSpec{id: "t3", txType: models.TransactionExpense, amount: "200", accountID: "bank"}),
		makeTx(txSpec{id: "t4", txType: models.TransactionIncome, amount: "200", accountID: "rent"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	assert.True(t, report.TotalDebit.Equal(report.TotalCredit),
		"total debits %s != total credits %s", report.TotalDebit, report.TotalCredit)
	assert.True(t, report.TotalDebit.Equal(dec("1000")))

	byName := map[string]models.TrialBalanceRow{}
	for _, row := range report.Rows {
		byName[row.AccountName] = row
	}

	require.Contains(t, byName, "Bank Account")
	assert.True(t, byName["Bank Account"].Debit.Equal(dec("800")))
	require.Contains(t, byName, "Sales Income")
	assert.True(t, byName["Sales Income"].Credit.Equal(dec("1000")))
	require.Contains(t, byName, "Rent Expense")
	assert.True(t, byName["Rent Expense"].Debit.Equal(dec("200")))
}

func TestDeriveTrialBalance_ZeroBalancesDropped(t *testing.T) {
	accounts := testAccounts()
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionIncome, amount: "100", accountID: "bank"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionIncome, amount: "-100", accountID: "bank"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	// The bank nets to zero and no other account saw activity.
	assert.Empty(t, report.Rows)
	assert.True(t, report.TotalDebit.IsZero())
	assert.True(t, report.TotalCredit.IsZero())
}

func TestDeriveTrialBalance_NegativeNetFlipsColumn(t *testing.T) {
	accounts := testAccounts()

	// An asset driven negative presents as a credit (absolute value), and a
	// liability driven negative presents as a debit.
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionExpense, amount: "300", accountID: "bank"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionDebt, amount: "-250", accountID: "std"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	byName := map[string]models.TrialBalanceRow{}
	for _, row := range report.Rows {
		byName[row.AccountName] = row
	}

	require.Contains(t, byName, "Bank Account")
	assert.True(t, byName["Bank Account"].Credit.Equal(dec("300")))
	assert.True(t, byName["Bank Account"].Debit.IsZero())

	require.Contains(t, byName, "Short-term Debt")
	assert.True(t, byName["Short-term Debt"].Debit.Equal(dec("250")))
	assert.True(t, byName["Short-term Debt"].Credit.IsZero())
}

func TestDeriveTrialBalance_DebtIncreasesLiability(t *testing.T) {
	accounts := testAccounts()
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionDebt, amount: "500", accountID: "std"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Short-term Debt", report.Rows[0].AccountName)
	assert.True(t, report.Rows[0].Credit.Equal(dec("500")))
}

func TestDeriveTrialBalance_OrphansSurfaced(t *testing.T) {
	accounts := testAccounts()
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionIncome, amount: "100", accountID: "bank"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionIncome, amount: "999", accountID: "deleted-account"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	require.Len(t, report.Orphans, 1)
	assert.Equal(t, "t2", report.Orphans[0].TransactionID)
	assert.Equal(t, "deleted-account", report.Orphans[0].AccountID)

	// Orphans contribute nothing to the columns.
	assert.True(t, report.TotalDebit.Equal(dec("100")))
	assert.True(t, report.TotalCredit.IsZero())
}

func TestDeriveTrialBalance_RowsOrderedByAccountName(t *testing.T) {
	accounts := testAccounts()
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionIncome, amount: "50", accountID: "rent"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionIncome, amount: "100", accountID: "bank"}),
		makeTx(txSpec{id: "t3", txType: models.TransactionDebt, amount: "75", accountID: "ap"}),
	}

	report := DeriveTrialBalance(transactions, accounts)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Accounts Payable", report.Rows[0].AccountName)
	assert.Equal(t, "Bank Account", report.Rows[1].AccountName)
	assert.Equal(t, "Rent Expense", report.Rows[2].AccountName)
}

func TestDeriveTrialBalance_Idempotent(t *testing.T) {
	accounts := testAccounts()
	transactions := []models.Transaction{
		makeTx(txSpec{id: "t1", txType: models.TransactionIncome, amount: "1000", accountID: "bank"}),
		makeTx(txSpec{id: "t2", txType: models.TransactionExpense, amount: "410.55", accountID: "bank"}),
		makeTx(txSpec{id: "t3", txType: models.TransactionDebt, amount: "500", accountID: "std"}),
	}

	first := DeriveTrialBalance(transactions, accounts)
	second := DeriveTrialBalance(transactions, accounts)

	assert.Equal(t, first, second)
}
