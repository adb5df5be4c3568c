package recurring

import (
	"context"
	"errors"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Common errors
var (
	ErrRuleNotFound   = errors.New("recurring rule not found")
	ErrAmountRequired = errors.New("default amount is required for a fixed rule")
)

// Service handles recurring rule business logic
type Service struct {
	repo *Repository
}

// NewService creates a new recurring rule service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a recurring rule. Fixed rules need a default amount;
// variable rules are confirmed per settlement period.
func (s *Service) Create(ctx context.Context, req *CreateRuleRequest) (*Rule, error) {
	splitType, err := split.ParseType(req.SplitType)
	if err != nil {
		return nil, err
	}

	if !req.IsVariable && req.DefaultAmount == nil {
		return nil, ErrAmountRequired
	}

	return s.repo.Create(ctx, &Rule{
		GroupID:        req.GroupID,
		Description:    req.Description,
		DayOfMonth:     req.DayOfMonth,
		DefaultPayerID: req.DefaultPayerID,
		IsVariable:     req.IsVariable,
		DefaultAmount:  req.DefaultAmount,
		IntervalMonths: req.IntervalMonths,
		SplitType:      splitType,
	})
}

// GetByID retrieves a recurring rule by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Rule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// ListByGroupID retrieves all recurring rules for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64) ([]*Rule, error) {
	return s.repo.ListByGroupID(ctx, groupID)
}

// Update modifies a recurring rule. Already-filled settlement entries keep
// the values they were filled with; only future refreshes see the change.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRuleRequest) (*Rule, error) {
	rule, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// Delete removes a recurring rule
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRuleNotFound
	}

	return s.repo.Delete(ctx, id)
}
