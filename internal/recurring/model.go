package recurring

import (
	"time"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Rule represents a recurring household charge (rent, utilities, subscriptions)
type Rule struct {
	ID             int64      `json:"id"`
	GroupID        int64      `json:"group_id"`
	Description    string     `json:"description"`
	DayOfMonth     int        `json:"day_of_month"`    // 1-31, clamped to shorter months
	DefaultPayerID int64      `json:"default_payer_id"`
	IsVariable     bool       `json:"is_variable"`     // amount confirmed per period when true
	DefaultAmount  *int64     `json:"default_amount,omitempty"`
	IntervalMonths int        `json:"interval_months"` // 1-12, anchored at the creation month
	SplitType      split.Type `json:"split_type"`
	CreatedAt      time.Time  `json:"created_at"`
}
