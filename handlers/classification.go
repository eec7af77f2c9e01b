package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finacore/financials-api/models"
	"github.com/finacore/financials-api/services"
)

// ClassificationHandler manages cash flow category overrides.
type ClassificationHandler struct {
	Rules *services.RuleStore
}

func (h *ClassificationHandler) ListRules(c *gin.Context) {
	rules, err := h.Rules.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rules"})
		return
	}
	if rules == nil {
		rules = []models.ClassificationRule{}
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type upsertRuleRequest struct {
	Category string          `json:"category" binding:"required"`
	Activity models.Activity `json:"activity" binding:"required"`
}

func (h *ClassificationHandler) UpsertRule(c *gin.Context) {
	var req upsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.Rules.Upsert(c.Request.Context(), req.Category, req.Activity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *ClassificationHandler) DeleteRule(c *gin.Context) {
	category := c.Param("category")
	if err := h.Rules.Delete(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": category})
}
