package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateProxySplit(t *testing.T) {
	members := []int64{1, 2, 3}

	t.Run("beneficiary gets the full amount", func(t *testing.T) {
		shares, err := CalculateProxySplit(9, 3000, 1, 2, members)
		require.NoError(t, err)
		require.Len(t, shares, 3)

		byUser := make(map[int64]int64)
		for _, s := range shares {
			byUser[s.UserID] = s.Amount
		}
		assert.Equal(t, int64(0), byUser[1])
		assert.Equal(t, int64(3000), byUser[2])
		assert.Equal(t, int64(0), byUser[3])
	})

	t.Run("exactly one non-zero share", func(t *testing.T) {
		shares, err := CalculateProxySplit(9, 1234, 3, 1, members)
		require.NoError(t, err)

		nonZero := 0
		for _, s := range shares {
			if s.Amount != 0 {
				nonZero++
				assert.Equal(t, int64(1234), s.Amount)
			}
		}
		assert.Equal(t, 1, nonZero)
	})

	t.Run("beneficiary is payer", func(t *testing.T) {
		_, err := CalculateProxySplit(9, 3000, 2, 2, members)
		assert.ErrorIs(t, err, ErrBeneficiaryIsPayer)
	})

	t.Run("beneficiary not a member", func(t *testing.T) {
		_, err := CalculateProxySplit(9, 3000, 1, 99, members)
		assert.ErrorIs(t, err, ErrBeneficiaryNotMember)
	})
}
