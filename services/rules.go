package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finacore/financials-api/models"
)

// RuleStore manages cash flow classification overrides: a category pinned to
// a fixed activity, keyed by the normalized category string rather than the
// keyword heuristics.
type RuleStore struct {
	db *sql.DB
}

func NewRuleStore(db *sql.DB) *RuleStore {
	return &RuleStore{db: db}
}

func validActivity(a models.Activity) bool {
	switch a {
	case models.ActivityOperating, models.ActivityInvesting, models.ActivityFinancing:
		return true
	}
	return false
}

// List returns all stored rules ordered by category.
func (s *RuleStore) List(ctx context.Context) ([]models.ClassificationRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, activity FROM classification_rules ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ClassificationRule
	for rows.Next() {
		var rule models.ClassificationRule
		if err := rows.Scan(&rule.ID, &rule.Category, &rule.Activity); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Overrides returns the rules as a lookup map keyed by lowercased category.
func (s *RuleStore) Overrides(ctx context.Context) (map[string]models.Activity, error) {
	rules, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]models.Activity, len(rules))
	for _, rule := range rules {
		overrides[strings.ToLower(rule.Category)] = rule.Activity
	}
	return overrides, nil
}

// Upsert inserts or replaces the rule for a category.
func (s *RuleStore) Upsert(ctx context.Context, category string, activity models.Activity) (*models.ClassificationRule, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if !validActivity(activity) {
		return nil, fmt.Errorf("invalid activity %q", activity)
	}

	rule := &models.ClassificationRule{
		ID:       uuid.New().String(),
		Category: category,
		Activity: activity,
	}

	query := `
		INSERT INTO classification_rules (id, category, activity)
		VALUES ($1, $2, $3)
		ON CONFLICT (category) DO UPDATE SET activity = EXCLUDED.activity
		RETURNING id
	`
	if err := s.db.QueryRowContext(ctx, query, rule.ID, rule.Category, rule.Activity).Scan(&rule.ID); err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes the rule for a category.
func (s *RuleStore) Delete(ctx context.Context, category string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM classification_rules WHERE category = $1`, strings.TrimSpace(category))
	return err
}
