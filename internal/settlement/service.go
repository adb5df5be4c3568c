package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/warikanhq/warikan/internal/group"
	"github.com/warikanhq/warikan/internal/payment"
	"github.com/warikanhq/warikan/internal/payment/split"
	"github.com/warikanhq/warikan/internal/recurring"
	"github.com/warikanhq/warikan/pkg/metrics"
)

// Common errors
var (
	ErrSessionNotFound     = errors.New("settlement session not found")
	ErrEntryNotFound       = errors.New("settlement entry not found")
	ErrNotGroupMember      = errors.New("user is not a member of this group")
	ErrSessionNotDraft     = errors.New("settlement session is not in draft")
	ErrEntriesPending      = errors.New("session still has pending entries")
	ErrInvalidStatusChange = errors.New("invalid session status change")
	ErrActualRequired      = errors.New("actual amount is required to fill this entry")
	ErrAmountMismatch      = errors.New("custom and proxy entries must be filled at the payment amount; edit the payment instead")
	ErrInvalidPeriod       = errors.New("period start must not be after period end")
)

// Store is the persistence boundary of the settlement feature. ApplyEntryDiff
// and ConfirmSession must be atomic: on failure the stored state is unchanged.
type Store interface {
	CreateSession(ctx context.Context, groupID int64, periodStart, periodEnd time.Time) (*Session, error)
	GetSession(ctx context.Context, id int64) (*Session, error)
	ListSessionsByGroupID(ctx context.Context, groupID int64) ([]*Session, error)
	LastConfirmedSession(ctx context.Context, groupID int64) (*Session, error)
	UpdateSessionStatus(ctx context.Context, id int64, status SessionStatus) (*Session, error)

	GetEntries(ctx context.Context, sessionID int64) ([]Entry, error)
	GetEntry(ctx context.Context, entryID int64) (*Entry, error)
	ApplyEntryDiff(ctx context.Context, sessionID int64, diff EntryDiff) (inserted int, err error)
	UpdateEntryResolution(ctx context.Context, entryID int64, status EntryStatus, actualAmount *int64) (*Entry, error)

	ConfirmSession(ctx context.Context, sessionID int64, transfers []NetTransfer, settledPaymentIDs []int64) error
	GetTransfers(ctx context.Context, sessionID int64) ([]NetTransfer, error)
	GetTransfersByGroupID(ctx context.Context, groupID int64, statuses []SessionStatus) ([][]NetTransfer, error)
}

// PaymentSource supplies unsettled payments; implemented by payment.Repository
type PaymentSource interface {
	ListUnsettled(ctx context.Context, groupID int64, periodStart, periodEnd time.Time) ([]*payment.PaymentWithShares, error)
	GetShares(ctx context.Context, paymentID int64) ([]split.Share, error)
	UnsettledDateBounds(ctx context.Context, groupID int64) (oldest, newest *time.Time, count int, err error)
	HasUnsettledOnDate(ctx context.Context, groupID int64, date time.Time) (bool, error)
}

// RuleSource supplies recurring rules; implemented by recurring.Repository
type RuleSource interface {
	ListByGroupID(ctx context.Context, groupID int64) ([]*recurring.Rule, error)
}

// GroupSource supplies membership facts; implemented by group.Repository
type GroupSource interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	GetMembers(ctx context.Context, groupID int64) ([]*group.Member, error)
}

// Notifier receives settlement lifecycle events
type Notifier interface {
	SessionConfirmed(ctx context.Context, recipientID, sessionID int64) error
	TransferAssigned(ctx context.Context, recipientID, amount int64, toName string, sessionID int64) error
}

// Service handles settlement business logic
type Service struct {
	store    Store
	payments PaymentSource
	rules    RuleSource
	groups   GroupSource
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new settlement service
func NewService(store Store, payments PaymentSource, rules RuleSource, groups GroupSource, notifier Notifier) *Service {
	return &Service{
		store:    store,
		payments: payments,
		rules:    rules,
		groups:   groups,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateSession opens a new draft session for the period and runs an initial
// entry refresh so the draft starts populated.
func (s *Service) CreateSession(ctx context.Context, groupID, userID int64, periodStart, periodEnd time.Time) (*Session, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	if periodStart.After(periodEnd) {
		return nil, ErrInvalidPeriod
	}

	session, err := s.store.CreateSession(ctx, groupID, dateOnly(periodStart), dateOnly(periodEnd))
	if err != nil {
		return nil, err
	}

	if _, err := s.RefreshEntries(ctx, session.ID, userID); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSession retrieves a session with its entries
func (s *Service) GetSession(ctx context.Context, sessionID, userID int64) (*Session, []Entry, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		return nil, nil, err
	}

	entries, err := s.store.GetEntries(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	return session, entries, nil
}

// ListSessions retrieves all sessions for a group
func (s *Service) ListSessions(ctx context.Context, groupID, userID int64) ([]*Session, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListSessionsByGroupID(ctx, groupID)
}

// SuggestPeriod proposes the window for the group's next draft session
func (s *Service) SuggestPeriod(ctx context.Context, groupID, userID int64) (PeriodSuggestion, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return PeriodSuggestion{}, err
	}

	oldest, newest, count, err := s.payments.UnsettledDateBounds(ctx, groupID)
	if err != nil {
		return PeriodSuggestion{}, err
	}

	input := PeriodInput{
		OldestUnsettled: oldest,
		NewestUnsettled: newest,
		UnsettledCount:  count,
		Today:           s.now(),
	}

	last, err := s.store.LastConfirmedSession(ctx, groupID)
	if err != nil {
		return PeriodSuggestion{}, err
	}
	if last != nil {
		end := last.PeriodEnd
		input.LastConfirmedEnd = &end

		onEnd, err := s.payments.HasUnsettledOnDate(ctx, groupID, end)
		if err != nil {
			return PeriodSuggestion{}, err
		}
		input.HasUnsettledOnLastEnd = onEnd
	}

	return SuggestPeriod(input), nil
}

// RefreshEntries reconciles a draft session's entries against the current
// unsettled payments and recurring-rule fire dates. Filled and skipped
// entries are never touched. Returns the number of newly inserted entries;
// running it again with unchanged sources inserts, updates and deletes
// nothing.
func (s *Service) RefreshEntries(ctx context.Context, sessionID, userID int64) (int, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, ErrSessionNotFound
	}

	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		metrics.RefreshesTotal.WithLabelValues("forbidden").Inc()
		return 0, err
	}

	if session.Status != SessionStatusDraft {
		metrics.RefreshesTotal.WithLabelValues("conflict").Inc()
		return 0, ErrSessionNotDraft
	}

	desired, err := s.computeObligations(ctx, session)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.GetEntries(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	diff := ComputeEntryDiff(existing, desired)
	if diff.Empty() {
		metrics.RefreshesTotal.WithLabelValues("noop").Inc()
		return 0, nil
	}

	added, err := s.store.ApplyEntryDiff(ctx, sessionID, diff)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		return 0, err
	}

	metrics.RefreshesTotal.WithLabelValues("applied").Inc()
	metrics.EntriesAdded.Add(float64(added))

	slog.Debug("settlement entries refreshed",
		"session_id", sessionID,
		"inserted", len(diff.ToInsert),
		"updated", len(diff.ToUpdate),
		"deleted", len(diff.ToDelete),
	)

	return added, nil
}

// computeObligations builds the expected entry set for the session's period
// from unsettled payments and recurring-rule fire dates.
func (s *Service) computeObligations(ctx context.Context, session *Session) ([]Obligation, error) {
	payments, err := s.payments.ListUnsettled(ctx, session.GroupID, session.PeriodStart, session.PeriodEnd)
	if err != nil {
		return nil, err
	}

	var desired []Obligation
	for _, pw := range payments {
		p := pw.Payment
		amount := p.Amount
		o := Obligation{
			SourceType:     SourcePayment,
			SourceID:       p.ID,
			Date:           dateOnly(p.Date),
			Description:    p.Description,
			PayerID:        p.PayerID,
			SplitType:      p.SplitType,
			ExpectedAmount: &amount,
		}
		if beneficiary := proxyBeneficiary(pw); beneficiary != nil {
			o.BeneficiaryID = beneficiary
		}
		desired = append(desired, o)
	}

	rules, err := s.rules.ListByGroupID(ctx, session.GroupID)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		for _, fireDate := range recurring.DatesInPeriod(rule, session.PeriodStart, session.PeriodEnd) {
			o := Obligation{
				SourceType:  SourceRecurringRule,
				SourceID:    rule.ID,
				Date:        fireDate,
				Description: rule.Description,
				PayerID:     rule.DefaultPayerID,
				SplitType:   rule.SplitType,
			}
			if !rule.IsVariable && rule.DefaultAmount != nil {
				amount := *rule.DefaultAmount
				o.ExpectedAmount = &amount
			}
			desired = append(desired, o)
		}
	}

	return desired, nil
}

// ResolveEntry fills or skips one entry of a draft session. Filling a
// variable entry requires an actual amount; fixed entries default to their
// expected amount. Custom and proxy payment entries can only be filled at
// the payment amount: their stored shares were calculated from it, and an
// edited actual would unbalance the paid/owed totals at confirm time.
// Reverting to pending is allowed while the session is still a draft.
func (s *Service) ResolveEntry(ctx context.Context, sessionID, entryID, userID int64, status EntryStatus, actualAmount *int64) (*Entry, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		return nil, err
	}
	if session.Status != SessionStatusDraft {
		return nil, ErrSessionNotDraft
	}

	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.SessionID != sessionID {
		return nil, ErrEntryNotFound
	}

	switch status {
	case EntryStatusFilled:
		if actualAmount == nil {
			if entry.ExpectedAmount == nil {
				return nil, ErrActualRequired
			}
			actualAmount = entry.ExpectedAmount
		} else if entry.SourceType == SourcePayment && entry.SplitType != split.TypeEqual &&
			entry.ExpectedAmount != nil && *actualAmount != *entry.ExpectedAmount {
			return nil, ErrAmountMismatch
		}
	case EntryStatusSkipped, EntryStatusPending:
		actualAmount = nil
	default:
		return nil, ErrInvalidStatusChange
	}

	return s.store.UpdateEntryResolution(ctx, entryID, status, actualAmount)
}

// Confirm aggregates a fully resolved draft into balances, nets them into
// minimal transfers, persists the transfers and advances the session to
// confirmed, all atomically. Skipped entries are excluded; payments covered
// by filled entries are stamped settled.
func (s *Service) Confirm(ctx context.Context, sessionID, userID int64) (NettingResult, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return NettingResult{}, err
	}
	if session == nil {
		return NettingResult{}, ErrSessionNotFound
	}
	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		return NettingResult{}, err
	}
	if session.Status != SessionStatusDraft {
		return NettingResult{}, ErrSessionNotDraft
	}

	entries, err := s.store.GetEntries(ctx, sessionID)
	if err != nil {
		return NettingResult{}, err
	}

	groupMembers, err := s.groups.GetMembers(ctx, session.GroupID)
	if err != nil {
		return NettingResult{}, err
	}
	members := make([]Member, len(groupMembers))
	for i, m := range groupMembers {
		members[i] = Member{ID: m.UserID, Name: m.DisplayName}
	}

	balanceEntries, settledPaymentIDs, err := s.resolveForBalances(ctx, entries)
	if err != nil {
		return NettingResult{}, err
	}

	balances := ComputeBalances(members, balanceEntries)
	result := SolveTransfers(balances)

	if err := s.store.ConfirmSession(ctx, sessionID, result.Transfers, settledPaymentIDs); err != nil {
		return NettingResult{}, err
	}

	s.notifyConfirmed(ctx, sessionID, members, result.Transfers)

	slog.Info("settlement session confirmed",
		"session_id", sessionID,
		"group_id", session.GroupID,
		"transfers", len(result.Transfers),
	)

	return result, nil
}

// resolveForBalances converts filled entries into balance aggregation input.
// An entry still pending fails the confirm; skipped entries contribute
// nothing. Payment-sourced entries carry their stored shares so custom and
// proxy splits replay exactly.
func (s *Service) resolveForBalances(ctx context.Context, entries []Entry) ([]BalanceEntry, []int64, error) {
	var balanceEntries []BalanceEntry
	var settledPaymentIDs []int64

	for _, e := range entries {
		switch e.Status {
		case EntryStatusPending:
			return nil, nil, ErrEntriesPending
		case EntryStatusSkipped:
			continue
		}

		if e.ActualAmount == nil {
			return nil, nil, fmt.Errorf("entry %d is filled without an actual amount", e.ID)
		}

		be := BalanceEntry{
			PayerID:   e.PayerID,
			Amount:    *e.ActualAmount,
			SplitType: e.SplitType,
		}

		if e.SourceType == SourcePayment {
			settledPaymentIDs = append(settledPaymentIDs, e.SourceID)

			if e.SplitType != split.TypeEqual {
				shares, err := s.payments.GetShares(ctx, e.SourceID)
				if err != nil {
					return nil, nil, err
				}
				be.Shares = shares
			}
		}

		balanceEntries = append(balanceEntries, be)
	}

	return balanceEntries, settledPaymentIDs, nil
}

// Advance moves a session along confirmed -> pending_payment -> settled
func (s *Service) Advance(ctx context.Context, sessionID, userID int64) (*Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		return nil, err
	}

	var next SessionStatus
	switch session.Status {
	case SessionStatusConfirmed:
		next = SessionStatusPendingPayment
	case SessionStatusPendingPayment:
		next = SessionStatusSettled
	default:
		return nil, ErrInvalidStatusChange
	}

	return s.store.UpdateSessionStatus(ctx, sessionID, next)
}

// GetTransfers retrieves the confirmed transfers of a session
func (s *Service) GetTransfers(ctx context.Context, sessionID, userID int64) ([]NetTransfer, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := s.requireMember(ctx, session.GroupID, userID); err != nil {
		return nil, err
	}

	return s.store.GetTransfers(ctx, sessionID)
}

// Consolidated nets the outstanding transfers of every not-yet-settled
// confirmed session in the group into one minimal list.
func (s *Service) Consolidated(ctx context.Context, groupID, userID int64) (NettingResult, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return NettingResult{}, err
	}

	transferLists, err := s.store.GetTransfersByGroupID(ctx, groupID,
		[]SessionStatus{SessionStatusConfirmed, SessionStatusPendingPayment})
	if err != nil {
		return NettingResult{}, err
	}

	return ConsolidateTransfers(transferLists), nil
}

func (s *Service) requireMember(ctx context.Context, groupID, userID int64) error {
	isMember, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotGroupMember
	}
	return nil
}

func (s *Service) notifyConfirmed(ctx context.Context, sessionID int64, members []Member, transfers []NetTransfer) {
	if s.notifier == nil {
		return
	}
	for _, m := range members {
		_ = s.notifier.SessionConfirmed(ctx, m.ID, sessionID)
	}
	for _, t := range transfers {
		_ = s.notifier.TransferAssigned(ctx, t.FromID, t.Amount, t.ToName, sessionID)
	}
}

func proxyBeneficiary(pw *payment.PaymentWithShares) *int64 {
	if pw.Payment.SplitType != split.TypeProxy {
		return nil
	}
	for _, share := range pw.Shares {
		if share.Amount != 0 {
			userID := share.UserID
			return &userID
		}
	}
	return nil
}
