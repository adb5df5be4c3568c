package split

// CalculateEqualSplit divides totalAmount evenly across memberIDs.
// When payerID is a member of the split, the integer-division remainder is
// added to the payer's share so that the shares sum to totalAmount exactly.
// With payerID == 0 the remainder is dropped; callers that need the
// sum invariant must supply the payer.
func CalculateEqualSplit(paymentID, totalAmount int64, memberIDs []int64, payerID int64) []Share {
	if len(memberIDs) == 0 {
		return []Share{}
	}

	shares := make([]Share, len(memberIDs))

	if totalAmount <= 0 {
		for i, id := range memberIDs {
			shares[i] = Share{PaymentID: paymentID, UserID: id, Amount: 0}
		}
		return shares
	}

	// memberIDs is non-empty, so SplitEqually cannot fail here
	eq, _ := SplitEqually(totalAmount, len(memberIDs))

	for i, id := range memberIDs {
		amount := eq.AmountPerPerson
		if payerID != 0 && id == payerID {
			// Payer absorbs the rounding loss
			amount += eq.Remainder
		}
		shares[i] = Share{PaymentID: paymentID, UserID: id, Amount: amount}
	}

	return shares
}
