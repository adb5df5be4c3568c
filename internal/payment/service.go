package payment

import (
	"context"
	"errors"
	"time"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Common errors
var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentSettled      = errors.New("payment is covered by a confirmed settlement")
	ErrNoParticipants      = errors.New("at least one participant is required")
	ErrMissingBeneficiary  = errors.New("beneficiary is required for a proxy payment")
	ErrCustomSplitMismatch = errors.New("custom amounts must sum to the payment amount")
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")
)

// Notifier receives payment lifecycle events
type Notifier interface {
	PaymentAdded(ctx context.Context, recipientID int64, payerName string, amount, paymentID int64) error
}

// Service handles payment business logic
type Service struct {
	repo     *Repository
	notifier Notifier
}

// NewService creates a new payment service
func NewService(repo *Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create logs a payment and calculates its shares under the requested policy.
// Custom shares must sum to the payment amount; the equal and proxy
// calculators guarantee that themselves.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreatePaymentRequest) (*PaymentWithShares, error) {
	splitType, err := split.ParseType(req.SplitType)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	shares, err := s.calculateShares(splitType, req.Amount, payerID, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateWithShares(ctx, &Payment{
		GroupID:     req.GroupID,
		PayerID:     payerID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		SplitType:   splitType,
	}, shares)
	if err != nil {
		return nil, err
	}

	s.notifyShareHolders(ctx, created)

	return created, nil
}

func (s *Service) calculateShares(splitType split.Type, amount, payerID int64, req *CreatePaymentRequest) ([]split.Share, error) {
	switch splitType {
	case split.TypeEqual:
		if len(req.ParticipantIDs) == 0 {
			return nil, ErrNoParticipants
		}
		if !contains(req.ParticipantIDs, payerID) {
			return nil, ErrPayerNotParticipant
		}
		// paymentID is filled in by the repository after insert
		return split.CalculateEqualSplit(0, amount, req.ParticipantIDs, payerID), nil

	case split.TypeCustom:
		shares := split.CalculateCustomSplits(0, req.CustomAmounts)
		if len(shares) == 0 {
			return nil, ErrNoParticipants
		}
		var sum int64
		for _, sh := range shares {
			sum += sh.Amount
		}
		if sum != amount {
			return nil, ErrCustomSplitMismatch
		}
		return shares, nil

	case split.TypeProxy:
		if len(req.ParticipantIDs) == 0 {
			return nil, ErrNoParticipants
		}
		if req.BeneficiaryID == nil {
			return nil, ErrMissingBeneficiary
		}
		return split.CalculateProxySplit(0, amount, payerID, *req.BeneficiaryID, req.ParticipantIDs)

	default:
		return nil, split.ErrUnknownSplitType
	}
}

func (s *Service) notifyShareHolders(ctx context.Context, pw *PaymentWithShares) {
	if s.notifier == nil {
		return
	}
	for _, share := range pw.Shares {
		if share.UserID == pw.Payment.PayerID || share.Amount == 0 {
			continue
		}
		// Notification failure never fails the payment itself
		_ = s.notifier.PaymentAdded(ctx, share.UserID, pw.Payment.PayerName, share.Amount, pw.Payment.ID)
	}
}

// GetByID retrieves a payment with its shares
func (s *Service) GetByID(ctx context.Context, id int64) (*PaymentWithShares, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	shares, err := s.repo.GetShares(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PaymentWithShares{Payment: p, Shares: shares}, nil
}

// ListByGroupID retrieves payments for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Update modifies an unsettled payment. Equal and proxy shares are
// recalculated from the stored participant set; custom shares are scaled
// only when the amount is unchanged, otherwise the caller must re-submit.
func (s *Service) Update(ctx context.Context, id int64, req *UpdatePaymentRequest) (*PaymentWithShares, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPaymentNotFound
	}
	if existing.SettledSessionID != nil {
		return nil, ErrPaymentSettled
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		existing.Date = date
	}

	shares, err := s.repo.GetShares(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		switch existing.SplitType {
		case split.TypeEqual:
			memberIDs := make([]int64, len(shares))
			for i, sh := range shares {
				memberIDs[i] = sh.UserID
			}
			shares = split.CalculateEqualSplit(id, existing.Amount, memberIDs, existing.PayerID)
		case split.TypeProxy:
			for i := range shares {
				if shares[i].Amount != 0 {
					shares[i].Amount = existing.Amount
				}
			}
		case split.TypeCustom:
			var sum int64
			for _, sh := range shares {
				sum += sh.Amount
			}
			if sum != existing.Amount {
				return nil, ErrCustomSplitMismatch
			}
		}
	}

	updated, err := s.repo.UpdateWithShares(ctx, existing, shares)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPaymentSettled
	}

	return updated, nil
}

// Delete removes an unsettled payment
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPaymentNotFound
	}
	if existing.SettledSessionID != nil {
		return ErrPaymentSettled
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentSettled
	}

	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
