package settlement

import "time"

// CreateSessionRequest opens a new draft session. Period dates use
// YYYY-MM-DD and the range is inclusive.
type CreateSessionRequest struct {
	GroupID     int64  `json:"group_id" validate:"required"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}

// ResolveEntryRequest fills, skips or reopens one entry
type ResolveEntryRequest struct {
	Status       string `json:"status" validate:"required,oneof=PENDING FILLED SKIPPED"`
	ActualAmount *int64 `json:"actual_amount,omitempty" validate:"omitempty,gt=0"`
}

// SessionResponse represents a settlement session
type SessionResponse struct {
	ID          int64  `json:"id"`
	PublicID    string `json:"public_id"`
	GroupID     int64  `json:"group_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// ToResponse converts a Session model to a SessionResponse DTO
func (s *Session) ToResponse() *SessionResponse {
	return &SessionResponse{
		ID:          s.ID,
		PublicID:    s.PublicID,
		GroupID:     s.GroupID,
		PeriodStart: s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

// EntryResponse represents one entry of a session
type EntryResponse struct {
	ID             int64  `json:"id"`
	SourceType     string `json:"source_type"`
	SourceID       int64  `json:"source_id"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	PayerID        int64  `json:"payer_id"`
	BeneficiaryID  *int64 `json:"beneficiary_id,omitempty"`
	SplitType      string `json:"split_type"`
	ExpectedAmount *int64 `json:"expected_amount,omitempty"`
	ActualAmount   *int64 `json:"actual_amount,omitempty"`
	Status         string `json:"status"`
}

// ToResponse converts an Entry model to an EntryResponse DTO
func (e *Entry) ToResponse() *EntryResponse {
	return &EntryResponse{
		ID:             e.ID,
		SourceType:     string(e.SourceType),
		SourceID:       e.SourceID,
		Date:           e.Date.Format("2006-01-02"),
		Description:    e.Description,
		PayerID:        e.PayerID,
		BeneficiaryID:  e.BeneficiaryID,
		SplitType:      string(e.SplitType),
		ExpectedAmount: e.ExpectedAmount,
		ActualAmount:   e.ActualAmount,
		Status:         string(e.Status),
	}
}

// SessionDetailResponse is a session together with its entries
type SessionDetailResponse struct {
	Session *SessionResponse `json:"session"`
	Entries []*EntryResponse `json:"entries"`
}

// RefreshResponse reports the outcome of an entry refresh
type RefreshResponse struct {
	AddedCount int `json:"added_count"`
}

// TransfersResponse carries solved transfers. IsZero is true only when there
// was nothing to settle at all.
type TransfersResponse struct {
	Transfers []NetTransfer `json:"transfers"`
	IsZero    bool          `json:"is_zero"`
}
