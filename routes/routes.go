package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/finacore/financials-api/handlers"
	"github.com/finacore/financials-api/services"
)

// SetupReportRoutes wires the four statement endpoints plus the combined
// summary. db may be nil, which disables snapshot caching and rule
// overrides but keeps every report available.
func SetupReportRoutes(rg *gin.RouterGroup, db *sql.DB, wsHandler *handlers.WSHandler) {
	ledger := services.NewLedgerClient()

	var snapshots *services.SnapshotService
	var rules *services.RuleStore
	if db != nil {
		snapshots = services.NewSnapshotService(db)
		rules = services.NewRuleStore(db)
	}

	h := handlers.NewReportsHandler(ledger, snapshots, rules, wsHandler)

	rg.GET("/reports/trial-balance", h.GetTrialBalance)
	rg.GET("/reports/income-statement", h.GetIncomeStatement)
	rg.GET("/reports/balance-sheet", h.GetBalanceSheet)
	rg.GET("/reports/cash-flow", h.GetCashFlow)
	rg.GET("/reports/summary", h.GetSummary)
}

// SetupClassificationRoutes wires management of cash flow category
// overrides. Requires a database.
func SetupClassificationRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.ClassificationHandler{Rules: services.NewRuleStore(db)}

	rg.GET("/classification-rules", h.ListRules)
	rg.PUT("/classification-rules", h.UpsertRule)
	rg.DELETE("/classification-rules/:category", h.DeleteRule)
}
