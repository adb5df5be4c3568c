package recurring

import "github.com/warikanhq/warikan/internal/payment/split"

// CreateRuleRequest represents the request to create a recurring rule
type CreateRuleRequest struct {
	GroupID        int64  `json:"group_id" validate:"required"`
	Description    string `json:"description" validate:"required,min=1,max=255"`
	DayOfMonth     int    `json:"day_of_month" validate:"required,min=1,max=31"`
	DefaultPayerID int64  `json:"default_payer_id" validate:"required"`
	IsVariable     bool   `json:"is_variable"`
	DefaultAmount  *int64 `json:"default_amount,omitempty" validate:"omitempty,gt=0"`
	IntervalMonths int    `json:"interval_months" validate:"required,min=1,max=12"`
	// Rule-sourced entries carry no per-member amounts, so only EQUAL is accepted
	SplitType string `json:"split_type" validate:"required,oneof=EQUAL"`
}

// UpdateRuleRequest represents the request to update a recurring rule
type UpdateRuleRequest struct {
	Description    *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	DayOfMonth     *int    `json:"day_of_month,omitempty" validate:"omitempty,min=1,max=31"`
	DefaultPayerID *int64  `json:"default_payer_id,omitempty"`
	IsVariable     *bool   `json:"is_variable,omitempty"`
	DefaultAmount  *int64  `json:"default_amount,omitempty" validate:"omitempty,gt=0"`
	IntervalMonths *int    `json:"interval_months,omitempty" validate:"omitempty,min=1,max=12"`
}

// RuleResponse represents the response for a recurring rule
type RuleResponse struct {
	ID             int64      `json:"id"`
	GroupID        int64      `json:"group_id"`
	Description    string     `json:"description"`
	DayOfMonth     int        `json:"day_of_month"`
	DefaultPayerID int64      `json:"default_payer_id"`
	IsVariable     bool       `json:"is_variable"`
	DefaultAmount  *int64     `json:"default_amount,omitempty"`
	IntervalMonths int        `json:"interval_months"`
	SplitType      split.Type `json:"split_type"`
	CreatedAt      string     `json:"created_at"`
}

// ToResponse converts a Rule model to a RuleResponse DTO
func (r *Rule) ToResponse() *RuleResponse {
	return &RuleResponse{
		ID:             r.ID,
		GroupID:        r.GroupID,
		Description:    r.Description,
		DayOfMonth:     r.DayOfMonth,
		DefaultPayerID: r.DefaultPayerID,
		IsVariable:     r.IsVariable,
		DefaultAmount:  r.DefaultAmount,
		IntervalMonths: r.IntervalMonths,
		SplitType:      r.SplitType,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
