package services

import (
	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

// Balance sheet account names. The platform's chart of accounts seeds these
// exact names; the statement pulls them by name match.
var (
	currentAssetAccounts      = []string{"Bank Account", "Accounts Receivable", "Inventory"}
	currentLiabilityAccounts  = []string{"Accounts Payable", "Short-term Debt"}
	longTermLiabilityAccounts = []string{"Long-term Debt"}
	shareCapitalAccount       = "Owner's Capital"
)

// DeriveBalanceSheet produces the assets, liabilities and equity sections as
// of the given date. Transactions after the as-of date and assets received
// after it are ignored. Income and Expense accounts do not appear; equity
// carries cumulative retained earnings computed from raw income and expense
// amounts independently of account mapping.
//
// The statement does not enforce Assets = Liabilities + Equity; both sides
// are reported and the caller decides what to do with a mismatch.
func DeriveBalanceSheet(transactions []models.Transaction, accounts []models.Account, assets []models.Asset, asOf models.Date) models.BalanceSheet {
	var inRange []models.Transaction
	for _, t := range transactions {
		if t.Date.OnOrBefore(asOf) {
			inRange = append(inRange, t)
		}
	}

	var sheetAccounts []models.Account
	for _, a := range accounts {
		switch a.Type {
		case models.AccountAsset, models.AccountLiability, models.AccountEquity:
			sheetAccounts = append(sheetAccounts, a)
		}
	}

	set := netBalances(inRange, sheetAccounts)

	byName := make(map[string]decimal.Decimal, len(sheetAccounts))
	for _, a := range sheetAccounts {
		byName[a.Name] = set.byAccount[a.ID]
	}

	report := models.BalanceSheet{AsOf: asOf, Orphans: set.orphans}

	// Current assets
	totalCurrent := decimal.Zero
	for _, name := range currentAssetAccounts {
		balance := byName[name]
		if balance.IsZero() {
			continue
		}
		report.Assets = append(report.Assets, models.BalanceSheetRow{Item: name, Amount: balance})
		totalCurrent = totalCurrent.Add(balance)
	}
	report.Assets = append(report.Assets, models.BalanceSheetRow{
		Item: "Total Current Assets", Amount: totalCurrent, IsTotal: true,
	})

	// Non-current assets at net book value
	totalNonCurrent := decimal.Zero
	for _, asset := range assets {
		if !asset.DateReceived.OnOrBefore(asOf) {
			continue
		}
		nbv := asset.NetBookValue()
		if !nbv.IsPositive() {
			continue
		}
		report.Assets = append(report.Assets, models.BalanceSheetRow{Item: asset.Name, Amount: nbv})
		totalNonCurrent = totalNonCurrent.Add(nbv)
	}
	report.Assets = append(report.Assets, models.BalanceSheetRow{
		Item: "Total Non-Current Assets", Amount: totalNonCurrent, IsTotal: true,
	})

	report.TotalAssets = totalCurrent.Add(totalNonCurrent)
	report.Assets = append(report.Assets, models.BalanceSheetRow{
		Item: "Total Assets", Amount: report.TotalAssets, IsTotal: true,
	})

	// Liabilities
	totalLiabilities := decimal.Zero
	appendLiabilities := func(names []string, totalLabel string) {
		sectionTotal := decimal.Zero
		for _, name := range names {
			balance := byName[name]
			if balance.IsZero() {
				continue
			}
			report.Liabilities = append(report.Liabilities, models.BalanceSheetRow{Item: name, Amount: balance})
			sectionTotal = sectionTotal.Add(balance)
		}
		report.Liabilities = append(report.Liabilities, models.BalanceSheetRow{
			Item: totalLabel, Amount: sectionTotal, IsTotal: true,
		})
		totalLiabilities = totalLiabilities.Add(sectionTotal)
	}
	appendLiabilities(currentLiabilityAccounts, "Total Current Liabilities")
	appendLiabilities(longTermLiabilityAccounts, "Total Non-Current Liabilities")

	report.TotalLiabilities = totalLiabilities
	report.Liabilities = append(report.Liabilities, models.BalanceSheetRow{
		Item: "Total Liabilities", Amount: totalLiabilities, IsTotal: true,
	})

	// Equity: share capital plus cumulative retained earnings. Retained
	// earnings is a second, account-independent pass over the raw amounts.
	shareCapital := byName[shareCapitalAccount]
	retained := decimal.Zero
	for _, t := range inRange {
		switch t.Type {
		case models.TransactionIncome:
			retained = retained.Add(t.Amount.Decimal)
		case models.TransactionExpense:
			retained = retained.Sub(t.Amount.Decimal)
		}
	}

	report.Equity = append(report.Equity, models.BalanceSheetRow{Item: "Share Capital", Amount: shareCapital})
	report.Equity = append(report.Equity, models.BalanceSheetRow{Item: "Retained Earnings", Amount: retained})
	report.TotalEquity = shareCapital.Add(retained)
	report.Equity = append(report.Equity, models.BalanceSheetRow{
		Item: "Total Equity", Amount: report.TotalEquity, IsTotal: true,
	})

	return report
}
