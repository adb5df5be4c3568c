package recurring

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles recurring rule persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new recurring rule repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new recurring rule
func (r *Repository) Create(ctx context.Context, rule *Rule) (*Rule, error) {
	query := `
		INSERT INTO recurring_rules
			(group_id, description, day_of_month, default_payer_id, is_variable, default_amount, interval_months, split_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, group_id, description, day_of_month, default_payer_id, is_variable, default_amount, interval_months, split_type, created_at
	`

	created := &Rule{}
	err := r.db.QueryRowContext(ctx, query,
		rule.GroupID, rule.Description, rule.DayOfMonth, rule.DefaultPayerID,
		rule.IsVariable, rule.DefaultAmount, rule.IntervalMonths, rule.SplitType,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.Description,
		&created.DayOfMonth,
		&created.DefaultPayerID,
		&created.IsVariable,
		&created.DefaultAmount,
		&created.IntervalMonths,
		&created.SplitType,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring rule: %w", err)
	}

	return created, nil
}

// GetByID retrieves a recurring rule by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Rule, error) {
	query := `
		SELECT id, group_id, description, day_of_month, default_payer_id, is_variable, default_amount, interval_months, split_type, created_at
		FROM recurring_rules
		WHERE id = $1
	`

	rule := &Rule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rule.ID,
		&rule.GroupID,
		&rule.Description,
		&rule.DayOfMonth,
		&rule.DefaultPayerID,
		&rule.IsVariable,
		&rule.DefaultAmount,
		&rule.IntervalMonths,
		&rule.SplitType,
		&rule.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recurring rule: %w", err)
	}

	return rule, nil
}

// ListByGroupID retrieves all recurring rules for a group
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64) ([]*Rule, error) {
	query := `
		SELECT id, group_id, description, day_of_month, default_payer_id, is_variable, default_amount, interval_months, split_type, created_at
		FROM recurring_rules
		WHERE group_id = $1
		ORDER BY day_of_month, id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule := &Rule{}
		if err := rows.Scan(
			&rule.ID, &rule.GroupID, &rule.Description, &rule.DayOfMonth,
			&rule.DefaultPayerID, &rule.IsVariable, &rule.DefaultAmount,
			&rule.IntervalMonths, &rule.SplitType, &rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// Update modifies a recurring rule
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateRuleRequest) (*Rule, error) {
	query := `
		UPDATE recurring_rules
		SET description     = COALESCE($2, description),
		    day_of_month    = COALESCE($3, day_of_month),
		    default_payer_id = COALESCE($4, default_payer_id),
		    is_variable     = COALESCE($5, is_variable),
		    default_amount  = COALESCE($6, default_amount),
		    interval_months = COALESCE($7, interval_months)
		WHERE id = $1
		RETURNING id, group_id, description, day_of_month, default_payer_id, is_variable, default_amount, interval_months, split_type, created_at
	`

	rule := &Rule{}
	err := r.db.QueryRowContext(ctx, query, id,
		req.Description, req.DayOfMonth, req.DefaultPayerID,
		req.IsVariable, req.DefaultAmount, req.IntervalMonths,
	).Scan(
		&rule.ID,
		&rule.GroupID,
		&rule.Description,
		&rule.DayOfMonth,
		&rule.DefaultPayerID,
		&rule.IsVariable,
		&rule.DefaultAmount,
		&rule.IntervalMonths,
		&rule.SplitType,
		&rule.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update recurring rule: %w", err)
	}

	return rule, nil
}

// Delete removes a recurring rule
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recurring_rules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recurring rule: %w", err)
	}
	return nil
}
