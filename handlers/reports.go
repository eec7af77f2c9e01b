package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finacore/financials-api/models"
	"github.com/finacore/financials-api/services"
	"github.com/finacore/financials-api/utils"
)

// Report type keys used for snapshot caching and WebSocket broadcasts.
const (
	ReportTrialBalance    = "trial_balance"
	ReportIncomeStatement = "income_statement"
	ReportBalanceSheet    = "balance_sheet"
	ReportCashFlow        = "cash_flow"
)

// Balance sheets are cumulative, so the transaction fetch starts at the
// platform's epoch rather than the selected range.
var ledgerEpoch = models.NewDate(1970, time.January, 1)

type ReportsHandler struct {
	Ledger    *services.LedgerClient
	Snapshots *services.SnapshotService // nil disables caching
	Rules     *services.RuleStore       // nil disables category overrides
	WS        *WSHandler                // nil disables refresh broadcasts
}

func NewReportsHandler(ledger *services.LedgerClient, snapshots *services.SnapshotService, rules *services.RuleStore, ws *WSHandler) *ReportsHandler {
	return &ReportsHandler{Ledger: ledger, Snapshots: snapshots, Rules: rules, WS: ws}
}

// dateRange reads fromDate/toDate query params. Both are required for the
// range-based reports.
func (h *ReportsHandler) dateRange(c *gin.Context) (models.Date, models.Date, bool) {
	from, err := models.ParseDate(c.Query("fromDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be YYYY-MM-DD"})
		return models.Date{}, models.Date{}, false
	}
	to, err := models.ParseDate(c.Query("toDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must be YYYY-MM-DD"})
		return models.Date{}, models.Date{}, false
	}
	if to.Before(from.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate is before fromDate"})
		return models.Date{}, models.Date{}, false
	}
	return from, to, true
}

func upstreamError(c *gin.Context, source string, err error) {
	utils.SafeError("Upstream %s fetch failed: %v", source, err)
	c.JSON(http.StatusBadGateway, gin.H{
		"error":  "Failed to fetch " + source + " from ledger API",
		"source": source,
	})
}

// respond serves the cached snapshot when the derivation inputs are
// unchanged, otherwise derives, stores, and broadcasts a refresh.
func (h *ReportsHandler) respond(c *gin.Context, reportType string, from, to models.Date, derive func() interface{}, inputs ...interface{}) {
	refresh := c.Query("refresh") == "true"

	var hash string
	if h.Snapshots != nil {
		hash = services.InputHash(inputs...)
		if !refresh {
			payload, found, err := h.Snapshots.Lookup(c.Request.Context(), reportType, from, to, hash)
			if err != nil {
				utils.SafeWarn("Snapshot lookup failed for %s: %v", reportType, err)
			}
			if found {
				c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
				return
			}
		}
	}

	report := derive()

	if h.Snapshots != nil {
		if err := h.Snapshots.Store(c.Request.Context(), reportType, from, to, hash, report); err != nil {
			utils.SafeWarn("Snapshot store failed for %s: %v", reportType, err)
		}
	}
	if h.WS != nil {
		h.WS.BroadcastRefresh(reportType)
	}

	c.JSON(http.StatusOK, report)
}

// overrides loads the classification rules, degrading to pure keyword
// heuristics when the store is unavailable.
func (h *ReportsHandler) overrides(c *gin.Context) map[string]models.Activity {
	if h.Rules == nil {
		return nil
	}
	overrides, err := h.Rules.Overrides(c.Request.Context())
	if err != nil {
		utils.SafeWarn("Failed to load classification rules: %v", err)
		return nil
	}
	return overrides
}

// GetTrialBalance handles GET /reports/trial-balance?fromDate&toDate
func (h *ReportsHandler) GetTrialBalance(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	data := h.Ledger.FetchAll(c.Request.Context(), from, to)
	if data.Errors.Transactions != nil {
		upstreamError(c, "transactions", data.Errors.Transactions)
		return
	}
	if data.Errors.Accounts != nil {
		upstreamError(c, "accounts", data.Errors.Accounts)
		return
	}

	h.respond(c, ReportTrialBalance, from, to, func() interface{} {
		return services.DeriveTrialBalance(data.Transactions, data.Accounts)
	}, data.Transactions, data.Accounts)
}

// GetIncomeStatement handles GET /reports/income-statement?fromDate&toDate
func (h *ReportsHandler) GetIncomeStatement(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	data := h.Ledger.FetchAll(c.Request.Context(), from, to)
	if data.Errors.Transactions != nil {
		upstreamError(c, "transactions", data.Errors.Transactions)
		return
	}

	h.respond(c, ReportIncomeStatement, from, to, func() interface{} {
		return services.DeriveIncomeStatement(data.Transactions)
	}, data.Transactions)
}

// GetBalanceSheet handles GET /reports/balance-sheet?asOf (default today).
func (h *ReportsHandler) GetBalanceSheet(c *gin.Context) {
	asOf := models.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	if s := c.Query("asOf"); s != "" {
		parsed, err := models.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	data := h.Ledger.FetchAll(c.Request.Context(), ledgerEpoch, asOf)
	if data.Errors.Transactions != nil {
		upstreamError(c, "transactions", data.Errors.Transactions)
		return
	}
	if data.Errors.Accounts != nil {
		upstreamError(c, "accounts", data.Errors.Accounts)
		return
	}
	if data.Errors.Assets != nil {
		upstreamError(c, "assets", data.Errors.Assets)
		return
	}

	h.respond(c, ReportBalanceSheet, ledgerEpoch, asOf, func() interface{} {
		return services.DeriveBalanceSheet(data.Transactions, data.Accounts, data.Assets, asOf)
	}, data.Transactions, data.Accounts, data.Assets)
}

// GetCashFlow handles GET /reports/cash-flow?fromDate&toDate
func (h *ReportsHandler) GetCashFlow(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	data := h.Ledger.FetchAll(c.Request.Context(), from, to)
	if data.Errors.Transactions != nil {
		upstreamError(c, "transactions", data.Errors.Transactions)
		return
	}

	overrides := h.overrides(c)

	h.respond(c, ReportCashFlow, from, to, func() interface{} {
		return services.DeriveCashFlow(data.Transactions, overrides)
	}, data.Transactions, overrides)
}

// GetSummary handles GET /reports/summary?fromDate&toDate and derives all
// four statements in one pass. The range reports share a single fetch; the
// balance sheet pulls the cumulative history separately. Each statement
// derives independently: a failed source empties only the reports that need
// it, mirroring how the dashboards render whatever data arrived.
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	data := h.Ledger.FetchAll(c.Request.Context(), from, to)

	response := gin.H{}
	sourceErrors := gin.H{}

	if data.Errors.Transactions != nil {
		sourceErrors["transactions"] = data.Errors.Transactions.Error()
	}
	if data.Errors.Accounts != nil {
		sourceErrors["accounts"] = data.Errors.Accounts.Error()
	}
	if data.Errors.Assets != nil {
		sourceErrors["assets"] = data.Errors.Assets.Error()
	}

	if data.Errors.Transactions == nil {
		response["income_statement"] = services.DeriveIncomeStatement(data.Transactions)
		response["cash_flow"] = services.DeriveCashFlow(data.Transactions, h.overrides(c))

		if data.Errors.Accounts == nil {
			response["trial_balance"] = services.DeriveTrialBalance(data.Transactions, data.Accounts)
		}
	}

	// The balance sheet is cumulative as of toDate, so it needs the full
	// transaction history rather than the selected range.
	if data.Errors.Accounts == nil && data.Errors.Assets == nil {
		history, err := h.Ledger.GetTransactions(c.Request.Context(), ledgerEpoch, to)
		if err != nil {
			sourceErrors["transactions"] = err.Error()
		} else {
			response["balance_sheet"] = services.DeriveBalanceSheet(history, data.Accounts, data.Assets, to)
		}
	}

	if len(sourceErrors) > 0 {
		response["errors"] = sourceErrors
	}

	c.JSON(http.StatusOK, response)
}
