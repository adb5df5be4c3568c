package payment

import "github.com/warikanhq/warikan/internal/payment/split"

// CreatePaymentRequest represents the request to create a payment
type CreatePaymentRequest struct {
	GroupID     int64  `json:"group_id" validate:"required"`
	Description string `json:"description" validate:"required,min=1,max=255"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	SplitType   string `json:"split_type" validate:"required,oneof=EQUAL CUSTOM PROXY"`

	// EQUAL and PROXY: the members taking part in this payment
	ParticipantIDs []int64 `json:"participant_ids,omitempty"`
	// CUSTOM: userID -> amount string; empty string excludes the member
	CustomAmounts map[int64]string `json:"custom_amounts,omitempty"`
	// PROXY: who the payment was made on behalf of
	BeneficiaryID *int64 `json:"beneficiary_id,omitempty"`
}

// UpdatePaymentRequest represents the request to update an unsettled payment
type UpdatePaymentRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Amount      *int64  `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ShareResponse represents the response for one payment share
type ShareResponse struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID               int64            `json:"id"`
	GroupID          int64            `json:"group_id"`
	PayerID          int64            `json:"payer_id"`
	PayerName        string           `json:"payer_name,omitempty"`
	Description      string           `json:"description"`
	Amount           int64            `json:"amount"`
	Date             string           `json:"date"`
	SplitType        split.Type       `json:"split_type"`
	SettledSessionID *int64           `json:"settled_session_id,omitempty"`
	CreatedAt        string           `json:"created_at"`
	Shares           []*ShareResponse `json:"shares,omitempty"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		GroupID:          p.GroupID,
		PayerID:          p.PayerID,
		PayerName:        p.PayerName,
		Description:      p.Description,
		Amount:           p.Amount,
		Date:             p.Date.Format("2006-01-02"),
		SplitType:        p.SplitType,
		SettledSessionID: p.SettledSessionID,
		CreatedAt:        p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a payment with shares to a response DTO
func (pw *PaymentWithShares) ToResponse() *PaymentResponse {
	resp := pw.Payment.ToResponse()
	resp.Shares = make([]*ShareResponse, len(pw.Shares))
	for i, s := range pw.Shares {
		resp.Shares[i] = &ShareResponse{UserID: s.UserID, Amount: s.Amount}
	}
	return resp
}
