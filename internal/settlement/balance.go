package settlement

import (
	"github.com/warikanhq/warikan/internal/payment/split"
)

// BalanceEntry is the minimal view of a resolved obligation that balance
// aggregation needs: who paid, how much, and how it splits.
type BalanceEntry struct {
	PayerID   int64
	Amount    int64
	SplitType split.Type
	// Explicit shares for custom and proxy entries; ignored for equal
	Shares []split.Share
}

// ComputeBalances folds entries into per-member paid/owed totals.
//
// Equal entries divide over all members through split.SplitEqually, with the
// payer absorbing the remainder. This is the same primitive the equal-split
// calculator uses, so sum(owed) == sum(paid) holds exactly and the resulting
// balances always sum to zero.
func ComputeBalances(members []Member, entries []BalanceEntry) []MemberBalance {
	paid := make(map[int64]int64, len(members))
	owed := make(map[int64]int64, len(members))
	for _, m := range members {
		paid[m.ID] = 0
		owed[m.ID] = 0
	}

	for _, e := range entries {
		paid[e.PayerID] += e.Amount

		if e.SplitType == split.TypeEqual {
			eq, err := split.SplitEqually(e.Amount, len(members))
			if err != nil {
				continue
			}
			for _, m := range members {
				owed[m.ID] += eq.AmountPerPerson
			}
			owed[e.PayerID] += eq.Remainder
			continue
		}

		for _, s := range e.Shares {
			owed[s.UserID] += s.Amount
		}
	}

	balances := make([]MemberBalance, len(members))
	for i, m := range members {
		balances[i] = MemberBalance{
			UserID:  m.ID,
			Name:    m.Name,
			Paid:    paid[m.ID],
			Owed:    owed[m.ID],
			Balance: paid[m.ID] - owed[m.ID],
		}
	}

	return balances
}
