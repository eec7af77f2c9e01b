package models

import "github.com/shopspring/decimal"

// OrphanedTransaction records a transaction whose account_id resolved to no
// fetched account. Derivers exclude these from balances but surface them to
// the caller instead of swallowing them.
type OrphanedTransaction struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
}

// TrialBalanceRow is one account's net balance presented as debit or credit.
type TrialBalanceRow struct {
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

type TrialBalance struct {
	Rows        []TrialBalanceRow     `json:"rows"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
	Orphans     []OrphanedTransaction `json:"orphans,omitempty"`
}

// LineItemType tags an income statement row for rendering.
type LineItemType string

const (
	LineRevenue       LineItemType = "revenue"
	LineExpense       LineItemType = "expense"
	LineSubtotal      LineItemType = "subtotal"
	LineIncome        LineItemType = "income"
	LineDetailExpense LineItemType = "detail-expense"
	LineTotal         LineItemType = "total"
)

type IncomeStatementLine struct {
	Type   LineItemType    `json:"type"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}

type IncomeStatement struct {
	Lines       []IncomeStatementLine `json:"lines"`
	GrossProfit decimal.Decimal       `json:"gross_profit"`
	NetIncome   decimal.Decimal       `json:"net_income"`
}

// BalanceSheetRow is a single line in one of the three balance sheet sections.
type BalanceSheetRow struct {
	Item    string          `json:"item"`
	Amount  decimal.Decimal `json:"amount"`
	IsTotal bool            `json:"is_total,omitempty"`
}

type BalanceSheet struct {
	AsOf             Date                  `json:"as_of"`
	Assets           []BalanceSheetRow     `json:"assets"`
	Liabilities      []BalanceSheetRow     `json:"liabilities"`
	Equity           []BalanceSheetRow     `json:"equity"`
	TotalAssets      decimal.Decimal       `json:"total_assets"`
	TotalLiabilities decimal.Decimal       `json:"total_liabilities"`
	TotalEquity      decimal.Decimal       `json:"total_equity"`
	Orphans          []OrphanedTransaction `json:"orphans,omitempty"`
}

// Activity is a cash flow statement classification.
type Activity string

const (
	ActivityOperating Activity = "operating"
	ActivityInvesting Activity = "investing"
	ActivityFinancing Activity = "financing"
)

// CashFlowRow groups transactions sharing the same description within an
// activity section.
type CashFlowRow struct {
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}

type CashFlowSection struct {
	Label string          `json:"label"`
	Rows  []CashFlowRow   `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

type CashFlowStatement struct {
	Operating CashFlowSection `json:"operating"`
	Investing CashFlowSection `json:"investing"`
	Financing CashFlowSection `json:"financing"`
	NetChange decimal.Decimal `json:"net_change"`
}

// ClassificationRule pins a transaction category to a fixed cash flow
// activity, overriding the keyword heuristics.
type ClassificationRule struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Activity Activity `json:"activity"`
}
