package payment

import (
	"time"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Payment represents one logged household payment, in whole yen
type Payment struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"group_id"`
	PayerID     int64      `json:"payer_id"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Date        time.Time  `json:"date"`
	SplitType   split.Type `json:"split_type"`
	// Set when a confirmed settlement session covers this payment
	SettledSessionID *int64    `json:"settled_session_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// PaymentWithShares combines a payment with its calculated shares
type PaymentWithShares struct {
	Payment *Payment
	Shares  []split.Share
}
