package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finacore/financials-api/models"
)

// --- STATIC KEYWORD RULES ---
// Checked in order against category first, then description, both lowered.
// Category overrides from the classification_rules table run before these.
var investingKeywords = []string{
	"equipment", "machinery", "vehicle", "property",
	"asset purchase", "purchase of asset", "asset sale", "sale of asset",
	"investment",
}

var financingKeywords = []string{
	"loan", "owner capital", "owner's capital", "capital contribution",
	"drawings", "dividend", "share capital",
}

// ClassifyActivity routes a transaction to exactly one cash flow activity.
// Debt transactions are always financing regardless of keywords. Overrides
// map a category to a fixed activity; everything else falls through the
// keyword heuristics and defaults to operating.
func ClassifyActivity(t models.Transaction, overrides map[string]models.Activity) models.Activity {
	if t.Type == models.TransactionDebt {
		return models.ActivityFinancing
	}

	if len(overrides) > 0 && t.Category != nil {
		if activity, ok := overrides[strings.ToLower(strings.TrimSpace(*t.Category))]; ok {
			return activity
		}
	}

	haystack := strings.ToLower(t.CategoryName() + " " + t.Description)
	for _, keyword := range investingKeywords {
		if strings.Contains(haystack, keyword) {
			return models.ActivityInvesting
		}
	}
	for _, keyword := range financingKeywords {
		if strings.Contains(haystack, keyword) {
			return models.ActivityFinancing
		}
	}

	return models.ActivityOperating
}

// cashContribution is the signed cash movement of a transaction: income and
// debt contribute their stored amount (a negative debt is a repayment),
// expenses contribute the negated amount.
func cashContribution(t models.Transaction) decimal.Decimal {
	if t.Type == models.TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount.Decimal
}

// DeriveCashFlow builds the three activity sections. Rows are grouped and
// summed by transaction description within each section, in first-seen
// order; transactions sharing identical descriptive text collapse into one
// row. Net change is the sum of the three section totals.
func DeriveCashFlow(transactions []models.Transaction, overrides map[string]models.Activity) models.CashFlowStatement {
	type section struct {
		order   []string
		amounts map[string]decimal.Decimal
		total   decimal.Decimal
	}
	newSection := func() *section {
		return &section{amounts: map[string]decimal.Decimal{}, total: decimal.Zero}
	}

	sections := map[models.Activity]*section{
		models.ActivityOperating: newSection(),
		models.ActivityInvesting: newSection(),
		models.ActivityFinancing: newSection(),
	}

	for _, t := range transactions {
		s := sections[ClassifyActivity(t, overrides)]
		amount := cashContribution(t)
		if _, seen := s.amounts[t.Description]; !seen {
			s.order = append(s.order, t.Description)
		}
		s.amounts[t.Description] = s.amounts[t.Description].Add(amount)
		s.total = s.total.Add(amount)
	}

	build := func(label string, activity models.Activity) models.CashFlowSection {
		s := sections[activity]
		out := models.CashFlowSection{Label: label, Total: s.total}
		for _, description := range s.order {
			out.Rows = append(out.Rows, models.CashFlowRow{
				Item:   description,
				Amount: s.amounts[description],
			})
		}
		return out
	}

	report := models.CashFlowStatement{
		Operating: build("Operating Activities", models.ActivityOperating),
		Investing: build("Investing Activities", models.ActivityInvesting),
		Financing: build("Financing Activities", models.ActivityFinancing),
	}
	report.NetChange = report.Operating.Total.
		Add(report.Investing.Total).
		Add(report.Financing.Total)

	return report
}
