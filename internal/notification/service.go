package notification

import (
	"context"
	"errors"
	"strconv"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a notification by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Event helpers, wired into the payment and settlement services

// PaymentAdded notifies a member that a payment splitting to them was logged
func (s *Service) PaymentAdded(ctx context.Context, recipientID int64, payerName string, amount, paymentID int64) error {
	message := payerName + " logged a payment of ¥" + strconv.FormatInt(amount, 10) + " that includes your share"
	entityType := "PAYMENT"
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &paymentID)
	return err
}

// SessionConfirmed notifies a member that their group's settlement was confirmed
func (s *Service) SessionConfirmed(ctx context.Context, recipientID, sessionID int64) error {
	message := "A settlement for your group has been confirmed"
	entityType := "SETTLEMENT"
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &sessionID)
	return err
}

// TransferAssigned notifies a debtor about the transfer they owe
func (s *Service) TransferAssigned(ctx context.Context, recipientID, amount int64, toName string, sessionID int64) error {
	message := "You owe ¥" + strconv.FormatInt(amount, 10) + " to " + toName
	entityType := "SETTLEMENT"
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &sessionID)
	return err
}
