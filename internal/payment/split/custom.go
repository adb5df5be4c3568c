package split

import (
	"sort"
	"strconv"
)

// CalculateCustomSplits builds shares from user-entered amounts.
// An empty string excludes the member from the payment entirely.
// Non-numeric or negative values coerce to 0; fractional values are floored
// to whole yen. Whether the shares sum to the payment total is a caller-side
// validation concern, not enforced here.
func CalculateCustomSplits(paymentID int64, customAmounts map[int64]string) []Share {
	shares := make([]Share, 0, len(customAmounts))

	for userID, raw := range customAmounts {
		if raw == "" {
			continue
		}

		amount := int64(0)
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			if floored, err := FloorToYen(parsed); err == nil {
				amount = floored
			}
		}

		shares = append(shares, Share{
			PaymentID: paymentID,
			UserID:    userID,
			Amount:    amount,
		})
	}

	// Map iteration order is random; keep the result deterministic
	sort.Slice(shares, func(i, j int) bool { return shares[i].UserID < shares[j].UserID })

	return shares
}
