package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warikanhq/warikan/internal/payment/split"
)

func int64Ptr(v int64) *int64 { return &v }

func paymentObligation(sourceID int64, amount int64, desc string) Obligation {
	return Obligation{
		SourceType:     SourcePayment,
		SourceID:       sourceID,
		Date:           date(2026, time.April, 10),
		Description:    desc,
		PayerID:        1,
		SplitType:      split.TypeEqual,
		ExpectedAmount: int64Ptr(amount),
	}
}

func pendingEntry(id, sourceID int64, amount int64, desc string) Entry {
	return Entry{
		ID:             id,
		SessionID:      1,
		SourceType:     SourcePayment,
		SourceID:       sourceID,
		Date:           date(2026, time.April, 10),
		Description:    desc,
		PayerID:        1,
		SplitType:      split.TypeEqual,
		ExpectedAmount: int64Ptr(amount),
		Status:         EntryStatusPending,
	}
}

func TestComputeEntryDiff_InsertsNewObligations(t *testing.T) {
	diff := ComputeEntryDiff(nil, []Obligation{
		paymentObligation(10, 3000, "groceries"),
		paymentObligation(11, 1200, "lunch"),
	})

	assert.Len(t, diff.ToInsert, 2)
	assert.Empty(t, diff.ToUpdate)
	assert.Empty(t, diff.ToDelete)
}

func TestComputeEntryDiff_UnchangedSourceIsNoop(t *testing.T) {
	existing := []Entry{pendingEntry(1, 10, 3000, "groceries")}
	desired := []Obligation{paymentObligation(10, 3000, "groceries")}

	diff := ComputeEntryDiff(existing, desired)

	assert.True(t, diff.Empty())
}

func TestComputeEntryDiff_UpdatesChangedPending(t *testing.T) {
	existing := []Entry{pendingEntry(1, 10, 3000, "groceries")}
	desired := []Obligation{paymentObligation(10, 3500, "groceries")}

	diff := ComputeEntryDiff(existing, desired)

	require.Len(t, diff.ToUpdate, 1)
	assert.Equal(t, int64(1), diff.ToUpdate[0].ID)
	assert.Equal(t, int64Ptr(3500), diff.ToUpdate[0].ExpectedAmount)
	assert.Empty(t, diff.ToInsert)
	assert.Empty(t, diff.ToDelete)
}

func TestComputeEntryDiff_DeletesOrphanedPending(t *testing.T) {
	existing := []Entry{pendingEntry(1, 10, 3000, "groceries")}

	diff := ComputeEntryDiff(existing, nil)

	assert.Equal(t, []int64{1}, diff.ToDelete)
	assert.Empty(t, diff.ToInsert)
	assert.Empty(t, diff.ToUpdate)
}

func TestComputeEntryDiff_FilledSurvivesSourceChange(t *testing.T) {
	filled := pendingEntry(1, 10, 3000, "groceries")
	filled.Status = EntryStatusFilled
	filled.ActualAmount = int64Ptr(3000)

	diff := ComputeEntryDiff([]Entry{filled}, []Obligation{
		paymentObligation(10, 9999, "renamed"),
	})

	// The filled entry claims its obligation: no update, no duplicate insert
	assert.True(t, diff.Empty())
}

func TestComputeEntryDiff_FilledSurvivesSourceDeletion(t *testing.T) {
	filled := pendingEntry(1, 10, 3000, "groceries")
	filled.Status = EntryStatusFilled
	filled.ActualAmount = int64Ptr(3000)

	diff := ComputeEntryDiff([]Entry{filled}, nil)

	assert.True(t, diff.Empty())
}

func TestComputeEntryDiff_SkippedSurvivesRefresh(t *testing.T) {
	skipped := pendingEntry(1, 10, 3000, "groceries")
	skipped.Status = EntryStatusSkipped

	diff := ComputeEntryDiff([]Entry{skipped}, []Obligation{
		paymentObligation(10, 3000, "groceries"),
	})

	assert.True(t, diff.Empty())
}

func TestComputeEntryDiff_RecurringKeyedByFireDate(t *testing.T) {
	// A monthly rule that fired twice in the period yields two distinct keys
	first := Obligation{
		SourceType:  SourceRecurringRule,
		SourceID:    5,
		Date:        date(2026, time.March, 27),
		Description: "rent",
		PayerID:     2,
		SplitType:   split.TypeEqual,
	}
	second := first
	second.Date = date(2026, time.April, 27)

	diff := ComputeEntryDiff(nil, []Obligation{first, second})

	assert.Len(t, diff.ToInsert, 2)
	assert.NotEqual(t, diff.ToInsert[0].Key(), diff.ToInsert[1].Key())
}

func TestComputeEntryDiff_PaymentDateEditStaysAnUpdate(t *testing.T) {
	existing := []Entry{pendingEntry(1, 10, 3000, "groceries")}
	moved := paymentObligation(10, 3000, "groceries")
	moved.Date = date(2026, time.April, 12)

	diff := ComputeEntryDiff(existing, []Obligation{moved})

	require.Len(t, diff.ToUpdate, 1)
	assert.Empty(t, diff.ToInsert)
	assert.Empty(t, diff.ToDelete)
}

func TestComputeEntryDiff_Idempotent(t *testing.T) {
	existing := []Entry{
		pendingEntry(1, 10, 3000, "groceries"),
		pendingEntry(2, 11, 1200, "lunch"),
	}
	desired := []Obligation{
		paymentObligation(10, 3500, "groceries"),
		paymentObligation(12, 800, "coffee"),
	}

	first := ComputeEntryDiff(existing, desired)
	require.Len(t, first.ToInsert, 1)
	require.Len(t, first.ToUpdate, 1)
	require.Len(t, first.ToDelete, 1)

	// Simulate applying the diff, then diff again against the same sources
	after := []Entry{
		first.ToUpdate[0],
		{
			ID:             3,
			SessionID:      1,
			SourceType:     first.ToInsert[0].SourceType,
			SourceID:       first.ToInsert[0].SourceID,
			Date:           first.ToInsert[0].Date,
			Description:    first.ToInsert[0].Description,
			PayerID:        first.ToInsert[0].PayerID,
			SplitType:      first.ToInsert[0].SplitType,
			ExpectedAmount: first.ToInsert[0].ExpectedAmount,
			Status:         EntryStatusPending,
		},
	}

	second := ComputeEntryDiff(after, desired)
	assert.True(t, second.Empty())
}
