package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

// Income statement bucket categories. Matching is by exact category string,
// the same keys the platform's transaction forms write.
const (
	categorySalesRevenue  = "Sales Revenue"
	categoryTradingIncome = "Trading Income"
	categoryCOGS          = "Cost of Goods Sold"
)

// DeriveIncomeStatement partitions income and expense transactions into a
// fixed statement layout:
//
//	Sales Revenue
//	Cost of Goods Sold
//	Gross Profit              (subtotal)
//	Other Income
//	Total Operating Expenses
//	  ...one row per expense category (detail-expense)
//	Net Income                (total)
//
// Zero-amount rows are suppressed except revenue, subtotals and totals,
// which always display.
func DeriveIncomeStatement(transactions []models.Transaction) models.IncomeStatement {
	salesRevenue := decimal.Zero
	otherIncome := decimal.Zero
	cogs := decimal.Zero
	operating := map[string]decimal.Decimal{}

	for _, t := range transactions {
		amount := t.Amount.Decimal
		switch t.Type {
		case models.TransactionIncome:
			switch t.CategoryName() {
			case categorySalesRevenue, categoryTradingIncome:
				salesRevenue = salesRevenue.Add(amount)
			default:
				otherIncome = otherIncome.Add(amount)
			}
		case models.TransactionExpense:
			category := t.CategoryName()
			if category == categoryCOGS {
				cogs = cogs.Add(amount)
			} else {
				operating[category] = operating[category].Add(amount)
			}
		}
	}

	totalOperating := decimal.Zero
	categories := make([]string, 0, len(operating))
	for category, amount := range operating {
		totalOperating = totalOperating.Add(amount)
		categories = append(categories, category)
	}
	sort.Strings(categories)

	grossProfit := salesRevenue.Sub(cogs)
	netIncome := grossProfit.Add(otherIncome).Sub(totalOperating)

	report := models.IncomeStatement{
		GrossProfit: grossProfit,
		NetIncome:   netIncome,
	}

	add := func(lineType models.LineItemType, item string, amount decimal.Decimal, alwaysShow bool) {
		if amount.IsZero() && !alwaysShow {
			return
		}
		report.Lines = append(report.Lines, models.IncomeStatementLine{
			Type:   lineType,
			Item:   item,
			Amount: amount,
		})
	}

	add(models.LineRevenue, "Sales Revenue", salesRevenue, true)
	add(models.LineExpense, "Cost of Goods Sold", cogs, false)
	add(models.LineSubtotal, "Gross Profit", grossProfit, true)
	add(models.LineIncome, "Other Income", otherIncome, false)
	add(models.LineExpense, "Total Operating Expenses", totalOperating, false)
	for _, category := range categories {
		add(models.LineDetailExpense, category, operating[category], false)
	}
	add(models.LineTotal, "Net Income", netIncome, true)

	return report
}
