package settlement

// SolveTransfers nets balances into a minimal transfer list by greedy
// two-pointer matching, deterministic in input order. Each step settles
// min(debtor remaining, creditor remaining) and advances whichever side
// reached zero, so the result has at most debtors+creditors-1 transfers.
func SolveTransfers(balances []MemberBalance) NettingResult {
	type side struct {
		member    MemberBalance
		remaining int64
	}

	var debtors, creditors []side
	for _, b := range balances {
		switch {
		case b.Balance < 0:
			debtors = append(debtors, side{member: b, remaining: -b.Balance})
		case b.Balance > 0:
			creditors = append(creditors, side{member: b, remaining: b.Balance})
		}
	}

	if len(debtors) == 0 && len(creditors) == 0 {
		return NettingResult{Transfers: []NetTransfer{}, IsZero: true}
	}

	transfers := []NetTransfer{}
	i, j := 0, 0

	for i < len(debtors) && j < len(creditors) {
		settle := debtors[i].remaining
		if creditors[j].remaining < settle {
			settle = creditors[j].remaining
		}

		if settle > 0 {
			transfers = append(transfers, NetTransfer{
				FromID:   debtors[i].member.UserID,
				FromName: debtors[i].member.Name,
				ToID:     creditors[j].member.UserID,
				ToName:   creditors[j].member.Name,
				Amount:   settle,
			})
		}

		debtors[i].remaining -= settle
		creditors[j].remaining -= settle

		if debtors[i].remaining == 0 {
			i++
		}
		if creditors[j].remaining == 0 {
			j++
		}
	}

	return NettingResult{Transfers: transfers, IsZero: false}
}

// ConsolidateTransfers nets transfers from multiple prior sessions into one
// minimal list. Every transfer is replayed as a debit/credit to rebuild
// per-member balances, which cancels back-and-forth payments across
// sessions, then the same matching pass runs on the result.
func ConsolidateTransfers(sessions [][]NetTransfer) NettingResult {
	balanceOf := make(map[int64]*MemberBalance)
	var order []int64

	touch := func(id int64, name string) *MemberBalance {
		if b, ok := balanceOf[id]; ok {
			return b
		}
		b := &MemberBalance{UserID: id, Name: name}
		balanceOf[id] = b
		order = append(order, id)
		return b
	}

	for _, transfers := range sessions {
		for _, t := range transfers {
			from := touch(t.FromID, t.FromName)
			to := touch(t.ToID, t.ToName)
			from.Balance -= t.Amount
			to.Balance += t.Amount
		}
	}

	balances := make([]MemberBalance, 0, len(order))
	for _, id := range order {
		balances = append(balances, *balanceOf[id])
	}

	return SolveTransfers(balances)
}
