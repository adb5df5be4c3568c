package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumShares(shares []Share) int64 {
	var sum int64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func TestCalculateEqualSplit(t *testing.T) {
	tests := []struct {
		name        string
		totalAmount int64
		memberIDs   []int64
		payerID     int64
		wantAmounts map[int64]int64
	}{
		{
			name:        "payer absorbs remainder",
			totalAmount: 1000,
			memberIDs:   []int64{1, 2, 3},
			payerID:     1,
			wantAmounts: map[int64]int64{1: 334, 2: 333, 3: 333},
		},
		{
			name:        "divides evenly",
			totalAmount: 900,
			memberIDs:   []int64{1, 2, 3},
			payerID:     2,
			wantAmounts: map[int64]int64{1: 300, 2: 300, 3: 300},
		},
		{
			name:        "no payer drops remainder",
			totalAmount: 1000,
			memberIDs:   []int64{1, 2, 3},
			payerID:     0,
			wantAmounts: map[int64]int64{1: 333, 2: 333, 3: 333},
		},
		{
			name:        "zero amount",
			totalAmount: 0,
			memberIDs:   []int64{1, 2},
			payerID:     1,
			wantAmounts: map[int64]int64{1: 0, 2: 0},
		},
		{
			name:        "negative amount treated as zero",
			totalAmount: -500,
			memberIDs:   []int64{1, 2},
			payerID:     1,
			wantAmounts: map[int64]int64{1: 0, 2: 0},
		},
		{
			name:        "one yen among three goes to the payer",
			totalAmount: 1,
			memberIDs:   []int64{1, 2, 3},
			payerID:     3,
			wantAmounts: map[int64]int64{1: 0, 2: 0, 3: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := CalculateEqualSplit(42, tt.totalAmount, tt.memberIDs, tt.payerID)
			require.Len(t, shares, len(tt.memberIDs))

			for _, s := range shares {
				assert.Equal(t, int64(42), s.PaymentID)
				assert.Equal(t, tt.wantAmounts[s.UserID], s.Amount, "user %d", s.UserID)
			}
		})
	}

	t.Run("empty members", func(t *testing.T) {
		assert.Empty(t, CalculateEqualSplit(42, 1000, nil, 1))
	})
}

// With a payer supplied, shares must always sum to the payment total exactly.
func TestCalculateEqualSplitSumInvariant(t *testing.T) {
	members := []int64{1, 2, 3, 4, 5, 6, 7}
	for amount := int64(1); amount < 500; amount++ {
		shares := CalculateEqualSplit(1, amount, members, 4)
		require.Equal(t, amount, sumShares(shares), "amount %d", amount)
	}
}
