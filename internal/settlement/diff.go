package settlement

import (
	"fmt"
	"time"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Obligation is one expected entry computed from current source data
// (an unsettled payment, or a recurring rule fire date within the period).
type Obligation struct {
	SourceType     EntrySourceType
	SourceID       int64
	Date           time.Time
	Description    string
	PayerID        int64
	BeneficiaryID  *int64
	SplitType      split.Type
	ExpectedAmount *int64
}

// Key matches Entry.SourceKey
func (o *Obligation) Key() string {
	if o.SourceType == SourceRecurringRule {
		return fmt.Sprintf("%s:%d:%s", o.SourceType, o.SourceID, o.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s:%d", o.SourceType, o.SourceID)
}

// EntryDiff is the minimal change set a refresh applies, expressed as an
// explicit set difference so it can run in one transaction.
type EntryDiff struct {
	ToInsert []Obligation
	ToUpdate []Entry
	ToDelete []int64 // entry IDs
}

// Empty reports whether the diff changes nothing
func (d *EntryDiff) Empty() bool {
	return len(d.ToInsert) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// ComputeEntryDiff reconciles the existing entries of a draft session with
// freshly computed obligations:
//
//   - filled and skipped entries are preserved untouched, even when their
//     source data changed or disappeared
//   - pending entries whose source still exists are refreshed to the latest
//     source values (only when something actually changed)
//   - pending entries whose source is gone are deleted
//   - obligations matching no entry at all are inserted as pending
//
// Running the diff twice against unchanged sources yields an empty second
// diff.
func ComputeEntryDiff(existing []Entry, desired []Obligation) EntryDiff {
	desiredByKey := make(map[string]*Obligation, len(desired))
	for i := range desired {
		desiredByKey[desired[i].Key()] = &desired[i]
	}

	diff := EntryDiff{}
	claimed := make(map[string]bool, len(existing))

	for _, e := range existing {
		key := e.SourceKey()

		if e.Status == EntryStatusFilled || e.Status == EntryStatusSkipped {
			// Immutable under refresh; still claims its obligation so the
			// insert pass below cannot duplicate it
			claimed[key] = true
			continue
		}

		o, exists := desiredByKey[key]
		if !exists {
			diff.ToDelete = append(diff.ToDelete, e.ID)
			continue
		}

		claimed[key] = true

		if entryDiffers(&e, o) {
			updated := e
			updated.Date = o.Date
			updated.Description = o.Description
			updated.PayerID = o.PayerID
			updated.BeneficiaryID = o.BeneficiaryID
			updated.SplitType = o.SplitType
			updated.ExpectedAmount = o.ExpectedAmount
			diff.ToUpdate = append(diff.ToUpdate, updated)
		}
	}

	for _, o := range desired {
		if !claimed[o.Key()] {
			diff.ToInsert = append(diff.ToInsert, o)
		}
	}

	return diff
}

func entryDiffers(e *Entry, o *Obligation) bool {
	return !e.Date.Equal(o.Date) ||
		e.Description != o.Description ||
		e.PayerID != o.PayerID ||
		e.SplitType != o.SplitType ||
		!int64PtrEqual(e.BeneficiaryID, o.BeneficiaryID) ||
		!int64PtrEqual(e.ExpectedAmount, o.ExpectedAmount)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
