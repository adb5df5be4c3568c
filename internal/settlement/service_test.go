package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warikanhq/warikan/internal/group"
	"github.com/warikanhq/warikan/internal/payment"
	"github.com/warikanhq/warikan/internal/payment/split"
	"github.com/warikanhq/warikan/internal/recurring"
)

// fakeStore keeps sessions, entries and transfers in memory and applies
// diffs the way the SQL store does
type fakeStore struct {
	sessions    map[int64]*Session
	entries     map[int64]*Entry
	transfers   map[int64][]NetTransfer
	nextID      int64
	nextEntryID int64
	settled     []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:  make(map[int64]*Session),
		entries:   make(map[int64]*Entry),
		transfers: make(map[int64][]NetTransfer),
	}
}

func (f *fakeStore) CreateSession(_ context.Context, groupID int64, periodStart, periodEnd time.Time) (*Session, error) {
	f.nextID++
	s := &Session{
		ID:          f.nextID,
		PublicID:    "fake-public-id",
		GroupID:     groupID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      SessionStatusDraft,
		CreatedAt:   time.Now(),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetSession(_ context.Context, id int64) (*Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) ListSessionsByGroupID(_ context.Context, groupID int64) ([]*Session, error) {
	var out []*Session
	for _, s := range f.sessions {
		if s.GroupID == groupID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) LastConfirmedSession(_ context.Context, groupID int64) (*Session, error) {
	var last *Session
	for _, s := range f.sessions {
		if s.GroupID != groupID || s.Status == SessionStatusDraft {
			continue
		}
		if last == nil || s.PeriodEnd.After(last.PeriodEnd) {
			last = s
		}
	}
	if last == nil {
		return nil, nil
	}
	copied := *last
	return &copied, nil
}

func (f *fakeStore) UpdateSessionStatus(_ context.Context, id int64, status SessionStatus) (*Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	s.Status = status
	copied := *s
	return &copied, nil
}

func (f *fakeStore) GetEntries(_ context.Context, sessionID int64) ([]Entry, error) {
	var out []Entry
	for id := int64(1); id <= f.nextEntryID; id++ {
		if e, ok := f.entries[id]; ok && e.SessionID == sessionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetEntry(_ context.Context, entryID int64) (*Entry, error) {
	e, ok := f.entries[entryID]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeStore) ApplyEntryDiff(_ context.Context, sessionID int64, diff EntryDiff) (int, error) {
	for _, id := range diff.ToDelete {
		delete(f.entries, id)
	}
	for _, e := range diff.ToUpdate {
		copied := e
		f.entries[e.ID] = &copied
	}
	for _, o := range diff.ToInsert {
		f.nextEntryID++
		f.entries[f.nextEntryID] = &Entry{
			ID:             f.nextEntryID,
			SessionID:      sessionID,
			SourceType:     o.SourceType,
			SourceID:       o.SourceID,
			Date:           o.Date,
			Description:    o.Description,
			PayerID:        o.PayerID,
			BeneficiaryID:  o.BeneficiaryID,
			SplitType:      o.SplitType,
			ExpectedAmount: o.ExpectedAmount,
			Status:         EntryStatusPending,
		}
	}
	return len(diff.ToInsert), nil
}

func (f *fakeStore) UpdateEntryResolution(_ context.Context, entryID int64, status EntryStatus, actualAmount *int64) (*Entry, error) {
	e, ok := f.entries[entryID]
	if !ok {
		return nil, nil
	}
	e.Status = status
	e.ActualAmount = actualAmount
	copied := *e
	return &copied, nil
}

func (f *fakeStore) ConfirmSession(_ context.Context, sessionID int64, transfers []NetTransfer, settledPaymentIDs []int64) error {
	s, ok := f.sessions[sessionID]
	if !ok || s.Status != SessionStatusDraft {
		return ErrSessionNotDraft
	}
	s.Status = SessionStatusConfirmed
	f.transfers[sessionID] = transfers
	f.settled = append(f.settled, settledPaymentIDs...)
	return nil
}

func (f *fakeStore) GetTransfers(_ context.Context, sessionID int64) ([]NetTransfer, error) {
	return f.transfers[sessionID], nil
}

func (f *fakeStore) GetTransfersByGroupID(_ context.Context, groupID int64, statuses []SessionStatus) ([][]NetTransfer, error) {
	allowed := make(map[SessionStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out [][]NetTransfer
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.sessions[id]
		if !ok || s.GroupID != groupID || !allowed[s.Status] {
			continue
		}
		out = append(out, f.transfers[id])
	}
	return out, nil
}

type fakePayments struct {
	unsettled []*payment.PaymentWithShares
}

func (f *fakePayments) ListUnsettled(_ context.Context, _ int64, periodStart, periodEnd time.Time) ([]*payment.PaymentWithShares, error) {
	var out []*payment.PaymentWithShares
	for _, pw := range f.unsettled {
		d := pw.Payment.Date
		if !d.Before(periodStart) && !d.After(periodEnd) {
			out = append(out, pw)
		}
	}
	return out, nil
}

func (f *fakePayments) GetShares(_ context.Context, paymentID int64) ([]split.Share, error) {
	for _, pw := range f.unsettled {
		if pw.Payment.ID == paymentID {
			return pw.Shares, nil
		}
	}
	return nil, nil
}

func (f *fakePayments) UnsettledDateBounds(_ context.Context, _ int64) (*time.Time, *time.Time, int, error) {
	if len(f.unsettled) == 0 {
		return nil, nil, 0, nil
	}
	oldest := f.unsettled[0].Payment.Date
	newest := oldest
	for _, pw := range f.unsettled[1:] {
		if pw.Payment.Date.Before(oldest) {
			oldest = pw.Payment.Date
		}
		if pw.Payment.Date.After(newest) {
			newest = pw.Payment.Date
		}
	}
	return &oldest, &newest, len(f.unsettled), nil
}

func (f *fakePayments) HasUnsettledOnDate(_ context.Context, _ int64, d time.Time) (bool, error) {
	for _, pw := range f.unsettled {
		if pw.Payment.Date.Equal(d) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRules struct {
	rules []*recurring.Rule
}

func (f *fakeRules) ListByGroupID(_ context.Context, _ int64) ([]*recurring.Rule, error) {
	return f.rules, nil
}

type fakeGroups struct {
	members []*group.Member
}

func (f *fakeGroups) IsMember(_ context.Context, _ int64, userID int64) (bool, error) {
	for _, m := range f.members {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroups) GetMembers(_ context.Context, _ int64) ([]*group.Member, error) {
	return f.members, nil
}

func householdGroups() *fakeGroups {
	return &fakeGroups{members: []*group.Member{
		{GroupID: 1, UserID: 1, DisplayName: "Aiko"},
		{GroupID: 1, UserID: 2, DisplayName: "Ben"},
	}}
}

func equalPayment(id, payerID, amount int64, day int) *payment.PaymentWithShares {
	return &payment.PaymentWithShares{
		Payment: &payment.Payment{
			ID:          id,
			GroupID:     1,
			PayerID:     payerID,
			Description: "payment",
			Amount:      amount,
			Date:        date(2026, time.April, day),
			SplitType:   split.TypeEqual,
		},
	}
}

func newTestService(store *fakeStore, payments *fakePayments, rules *fakeRules) *Service {
	return NewService(store, payments, rules, householdGroups(), nil)
}

func TestRefreshEntries_PopulatesFromPaymentsAndRules(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	defaultRent := int64(80000)
	rules := &fakeRules{rules: []*recurring.Rule{{
		ID:             5,
		GroupID:        1,
		Description:    "rent",
		DayOfMonth:     27,
		DefaultPayerID: 2,
		DefaultAmount:  &defaultRent,
		IntervalMonths: 1,
		SplitType:      split.TypeEqual,
		CreatedAt:      date(2026, time.January, 1),
	}}}
	svc := newTestService(store, payments, rules)

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	entries, err := store.GetEntries(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, SourcePayment, entries[0].SourceType)
	assert.Equal(t, int64(10), entries[0].SourceID)
	require.NotNil(t, entries[0].ExpectedAmount)
	assert.Equal(t, int64(3000), *entries[0].ExpectedAmount)

	assert.Equal(t, SourceRecurringRule, entries[1].SourceType)
	assert.Equal(t, date(2026, time.April, 27), entries[1].Date)
	require.NotNil(t, entries[1].ExpectedAmount)
	assert.Equal(t, int64(80000), *entries[1].ExpectedAmount)
}

func TestRefreshEntries_VariableRuleHasNoExpectedAmount(t *testing.T) {
	store := newFakeStore()
	rules := &fakeRules{rules: []*recurring.Rule{{
		ID:             6,
		GroupID:        1,
		Description:    "electricity",
		DayOfMonth:     15,
		DefaultPayerID: 1,
		IsVariable:     true,
		IntervalMonths: 1,
		SplitType:      split.TypeEqual,
		CreatedAt:      date(2026, time.January, 1),
	}}}
	svc := newTestService(store, &fakePayments{}, rules)

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	entries, err := store.GetEntries(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ExpectedAmount)
}

func TestRefreshEntries_SecondRefreshAddsNothing(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
		equalPayment(11, 2, 1200, 8),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	added, err := svc.RefreshEntries(context.Background(), session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestRefreshEntries_PreservesFilledOnSourceChange(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	actual := int64(3000)
	_, err = svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, &actual)
	require.NoError(t, err)

	// Source amount changes after the entry was filled
	payments.unsettled[0].Payment.Amount = 9999

	added, err := svc.RefreshEntries(context.Background(), session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	entry, err := store.GetEntry(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusFilled, entry.Status)
	assert.Equal(t, int64(3000), *entry.ActualAmount)
	assert.Equal(t, int64(3000), *entry.ExpectedAmount)
}

func TestRefreshEntries_NonMemberForbidden(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakePayments{}, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.RefreshEntries(context.Background(), session.ID, 99)
	assert.ErrorIs(t, err, ErrNotGroupMember)
}

func TestRefreshEntries_ConfirmedSessionConflicts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakePayments{}, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	_, err = svc.RefreshEntries(context.Background(), session.ID, 1)
	assert.ErrorIs(t, err, ErrSessionNotDraft)
}

func TestResolveEntry_VariableRequiresActualAmount(t *testing.T) {
	store := newFakeStore()
	rules := &fakeRules{rules: []*recurring.Rule{{
		ID:             6,
		GroupID:        1,
		Description:    "electricity",
		DayOfMonth:     15,
		DefaultPayerID: 1,
		IsVariable:     true,
		IntervalMonths: 1,
		SplitType:      split.TypeEqual,
		CreatedAt:      date(2026, time.January, 1),
	}}}
	svc := newTestService(store, &fakePayments{}, rules)

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, nil)
	assert.ErrorIs(t, err, ErrActualRequired)
}

func TestResolveEntry_FixedDefaultsToExpected(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	entry, err := svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, nil)
	require.NoError(t, err)
	require.NotNil(t, entry.ActualAmount)
	assert.Equal(t, int64(3000), *entry.ActualAmount)
}

func customPayment(id, payerID, amount int64, day int, shares []split.Share) *payment.PaymentWithShares {
	return &payment.PaymentWithShares{
		Payment: &payment.Payment{
			ID:          id,
			GroupID:     1,
			PayerID:     payerID,
			Description: "payment",
			Amount:      amount,
			Date:        date(2026, time.April, day),
			SplitType:   split.TypeCustom,
		},
		Shares: shares,
	}
}

func TestResolveEntry_CustomEntryRejectsEditedAmount(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		customPayment(10, 1, 3000, 5, []split.Share{
			{PaymentID: 10, UserID: 1, Amount: 1000},
			{PaymentID: 10, UserID: 2, Amount: 2000},
		}),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	// The stored shares sum to 3000; filling at any other amount would
	// unbalance paid against owed
	edited := int64(5000)
	_, err = svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, &edited)
	assert.ErrorIs(t, err, ErrAmountMismatch)

	matching := int64(3000)
	entry, err := svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, &matching)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusFilled, entry.Status)

	result, err := svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	// paid: 1 -> 3000; owed: 1 -> 1000, 2 -> 2000
	require.Len(t, result.Transfers, 1)
	assert.Equal(t, int64(2), result.Transfers[0].FromID)
	assert.Equal(t, int64(1), result.Transfers[0].ToID)
	assert.Equal(t, int64(2000), result.Transfers[0].Amount)

	assertTransfersSettle(t, []MemberBalance{
		{UserID: 1, Balance: 2000},
		{UserID: 2, Balance: -2000},
	}, result.Transfers)
}

func TestResolveEntry_EqualEntryAcceptsEditedAmount(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	// Equal entries re-split from the actual amount, so balances stay
	// conserved under an edit
	edited := int64(3500)
	entry, err := svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, &edited)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), *entry.ActualAmount)

	result, err := svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	var sum int64
	for _, tr := range result.Transfers {
		sum += tr.Amount
	}
	assert.Equal(t, int64(1750), sum)
}

func TestConfirm_FilledEntryWithoutActualAmountFails(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakePayments{}, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	// A row written out-of-band can violate the filled-implies-actual
	// invariant; confirm must fail instead of panicking
	store.nextEntryID++
	store.entries[store.nextEntryID] = &Entry{
		ID:         store.nextEntryID,
		SessionID:  session.ID,
		SourceType: SourcePayment,
		SourceID:   10,
		Date:       date(2026, time.April, 5),
		PayerID:    1,
		SplitType:  split.TypeEqual,
		Status:     EntryStatusFilled,
	}

	_, err = svc.Confirm(context.Background(), session.ID, 1)
	assert.Error(t, err)
}

func TestConfirm_PendingEntriesConflict(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), session.ID, 1)
	assert.ErrorIs(t, err, ErrEntriesPending)
}

func TestConfirm_ProducesTransfersAndSettlesPayments(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusFilled, nil)
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, int64(2), result.Transfers[0].FromID)
	assert.Equal(t, int64(1), result.Transfers[0].ToID)
	assert.Equal(t, int64(1500), result.Transfers[0].Amount)
	assert.False(t, result.IsZero)

	assert.Equal(t, []int64{10}, store.settled)

	confirmed, err := store.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusConfirmed, confirmed.Status)
}

func TestConfirm_SkippedEntriesExcluded(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(10, 1, 3000, 5),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	_, err = svc.ResolveEntry(context.Background(), session.ID, 1, 1, EntryStatusSkipped, nil)
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	assert.True(t, result.IsZero)
	assert.Empty(t, result.Transfers)
	assert.Empty(t, store.settled)
}

func TestAdvance_WalksTheStatusChain(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakePayments{}, &fakeRules{})

	session, err := svc.CreateSession(context.Background(), 1, 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	// Draft cannot advance directly
	_, err = svc.Advance(context.Background(), session.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	_, err = svc.Confirm(context.Background(), session.ID, 1)
	require.NoError(t, err)

	s, err := svc.Advance(context.Background(), session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusPendingPayment, s.Status)

	s, err = svc.Advance(context.Background(), session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusSettled, s.Status)

	_, err = svc.Advance(context.Background(), session.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestConsolidated_NetsAcrossSessions(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakePayments{}, &fakeRules{})

	s1, err := store.CreateSession(context.Background(), 1,
		date(2026, time.March, 1), date(2026, time.March, 31))
	require.NoError(t, err)
	s2, err := store.CreateSession(context.Background(), 1,
		date(2026, time.April, 1), date(2026, time.April, 30))
	require.NoError(t, err)

	require.NoError(t, store.ConfirmSession(context.Background(), s1.ID,
		[]NetTransfer{{FromID: 1, FromName: "Aiko", ToID: 2, ToName: "Ben", Amount: 1000}}, nil))
	require.NoError(t, store.ConfirmSession(context.Background(), s2.ID,
		[]NetTransfer{{FromID: 2, FromName: "Ben", ToID: 1, ToName: "Aiko", Amount: 400}}, nil))

	result, err := svc.Consolidated(context.Background(), 1, 1)
	require.NoError(t, err)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, int64(1), result.Transfers[0].FromID)
	assert.Equal(t, int64(2), result.Transfers[0].ToID)
	assert.Equal(t, int64(600), result.Transfers[0].Amount)
}

func TestSuggestPeriod_UsesLastConfirmedSession(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{unsettled: []*payment.PaymentWithShares{
		equalPayment(20, 1, 500, 10),
	}}
	svc := newTestService(store, payments, &fakeRules{})

	s1, err := store.CreateSession(context.Background(), 1,
		date(2026, time.March, 1), date(2026, time.March, 31))
	require.NoError(t, err)
	require.NoError(t, store.ConfirmSession(context.Background(), s1.ID, nil, nil))

	suggestion, err := svc.SuggestPeriod(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, date(2026, time.April, 1), suggestion.Start)
	assert.Equal(t, date(2026, time.April, 10), suggestion.End)
}
