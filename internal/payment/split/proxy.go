package split

// CalculateProxySplit attributes the full payment to one beneficiary other
// than the payer (the reimbursement pattern: payer fronts the money, the
// beneficiary owes all of it). Every other member, payer included, gets 0.
func CalculateProxySplit(paymentID, totalAmount, payerID, beneficiaryID int64, allMemberIDs []int64) ([]Share, error) {
	if beneficiaryID == payerID {
		return nil, ErrBeneficiaryIsPayer
	}

	found := false
	for _, id := range allMemberIDs {
		if id == beneficiaryID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrBeneficiaryNotMember
	}

	shares := make([]Share, len(allMemberIDs))
	for i, id := range allMemberIDs {
		amount := int64(0)
		if id == beneficiaryID {
			amount = totalAmount
		}
		shares[i] = Share{PaymentID: paymentID, UserID: id, Amount: amount}
	}

	return shares, nil
}
