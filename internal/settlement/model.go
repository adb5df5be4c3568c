package settlement

import (
	"fmt"
	"time"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// SessionStatus is the settlement session state machine:
// draft -> confirmed -> pending_payment -> settled
type SessionStatus string

const (
	SessionStatusDraft          SessionStatus = "DRAFT"
	SessionStatusConfirmed      SessionStatus = "CONFIRMED"
	SessionStatusPendingPayment SessionStatus = "PENDING_PAYMENT"
	SessionStatusSettled        SessionStatus = "SETTLED"
)

// Session represents one settlement period for a group.
// Periods are inclusive date ranges at day granularity.
type Session struct {
	ID          int64         `json:"id"`
	PublicID    string        `json:"public_id"`
	GroupID     int64         `json:"group_id"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// EntrySourceType identifies where an entry's obligation came from
type EntrySourceType string

const (
	SourcePayment       EntrySourceType = "PAYMENT"
	SourceRecurringRule EntrySourceType = "RECURRING_RULE"
)

// EntryStatus is the per-entry resolution state
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "PENDING"
	EntryStatusFilled  EntryStatus = "FILLED"
	EntryStatusSkipped EntryStatus = "SKIPPED"
)

// Entry is one obligation tracked inside a draft session, resolved manually
// before the session can be confirmed. Filled and skipped entries are
// immutable under refresh.
type Entry struct {
	ID             int64           `json:"id"`
	SessionID      int64           `json:"session_id"`
	SourceType     EntrySourceType `json:"source_type"`
	SourceID       int64           `json:"source_id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	PayerID        int64           `json:"payer_id"`
	BeneficiaryID  *int64          `json:"beneficiary_id,omitempty"`
	SplitType      split.Type      `json:"split_type"`
	ExpectedAmount *int64          `json:"expected_amount,omitempty"`
	ActualAmount   *int64          `json:"actual_amount,omitempty"`
	Status         EntryStatus     `json:"status"`
}

// SourceKey identifies the obligation an entry tracks. Payments are keyed by
// ID alone so date edits stay updates; recurring rules can fire more than
// once per period, so the fire date is part of the key.
func (e *Entry) SourceKey() string {
	if e.SourceType == SourceRecurringRule {
		return fmt.Sprintf("%s:%d:%s", e.SourceType, e.SourceID, e.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s:%d", e.SourceType, e.SourceID)
}

// Member is a group member as the settlement calculations see one
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberBalance is one member's aggregate over a period.
// Balance > 0 means net creditor, < 0 net debtor.
type MemberBalance struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Paid    int64  `json:"paid"`
	Owed    int64  `json:"owed"`
	Balance int64  `json:"balance"`
}

// NetTransfer is one minimal point-to-point payment instruction
type NetTransfer struct {
	FromID   int64  `json:"from_id"`
	FromName string `json:"from_name"`
	ToID     int64  `json:"to_id"`
	ToName   string `json:"to_name"`
	Amount   int64  `json:"amount"`
}

// NettingResult carries the solved transfers. IsZero distinguishes "nothing
// to settle at all" from "non-empty but structurally balanced".
type NettingResult struct {
	Transfers []NetTransfer `json:"transfers"`
	IsZero    bool          `json:"is_zero"`
}
