package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warikanhq/warikan/internal/payment/split"
)

var threeMembers = []Member{
	{ID: 1, Name: "Aiko"},
	{ID: 2, Name: "Ben"},
	{ID: 3, Name: "Chika"},
}

func TestComputeBalances_EqualSplit(t *testing.T) {
	balances := ComputeBalances(threeMembers, []BalanceEntry{
		{PayerID: 1, Amount: 3000, SplitType: split.TypeEqual},
	})

	require.Len(t, balances, 3)
	assert.Equal(t, int64(3000), balances[0].Paid)
	assert.Equal(t, int64(1000), balances[0].Owed)
	assert.Equal(t, int64(2000), balances[0].Balance)
	assert.Equal(t, int64(-1000), balances[1].Balance)
	assert.Equal(t, int64(-1000), balances[2].Balance)
}

func TestComputeBalances_PayerAbsorbsRemainder(t *testing.T) {
	balances := ComputeBalances(threeMembers, []BalanceEntry{
		{PayerID: 2, Amount: 1000, SplitType: split.TypeEqual},
	})

	// 1000 / 3 = 333 each, remainder 1 charged to the payer
	assert.Equal(t, int64(333), balances[0].Owed)
	assert.Equal(t, int64(334), balances[1].Owed)
	assert.Equal(t, int64(333), balances[2].Owed)
}

func TestComputeBalances_CustomShares(t *testing.T) {
	balances := ComputeBalances(threeMembers, []BalanceEntry{
		{
			PayerID:   1,
			Amount:    5000,
			SplitType: split.TypeCustom,
			Shares: []split.Share{
				{UserID: 1, Amount: 2500},
				{UserID: 2, Amount: 1500},
				{UserID: 3, Amount: 1000},
			},
		},
	})

	assert.Equal(t, int64(2500), balances[0].Balance)
	assert.Equal(t, int64(-1500), balances[1].Balance)
	assert.Equal(t, int64(-1000), balances[2].Balance)
}

func TestComputeBalances_ProxyShares(t *testing.T) {
	// Payer 1 covered 800 entirely on behalf of member 3
	balances := ComputeBalances(threeMembers, []BalanceEntry{
		{
			PayerID:   1,
			Amount:    800,
			SplitType: split.TypeProxy,
			Shares:    []split.Share{{UserID: 3, Amount: 800}},
		},
	})

	assert.Equal(t, int64(800), balances[0].Balance)
	assert.Equal(t, int64(0), balances[1].Balance)
	assert.Equal(t, int64(-800), balances[2].Balance)
}

func TestComputeBalances_SumIsAlwaysZero(t *testing.T) {
	entries := []BalanceEntry{
		{PayerID: 1, Amount: 1000, SplitType: split.TypeEqual},
		{PayerID: 2, Amount: 9999, SplitType: split.TypeEqual},
		{PayerID: 3, Amount: 1, SplitType: split.TypeEqual},
		{
			PayerID:   1,
			Amount:    777,
			SplitType: split.TypeProxy,
			Shares:    []split.Share{{UserID: 2, Amount: 777}},
		},
		{
			PayerID:   3,
			Amount:    450,
			SplitType: split.TypeCustom,
			Shares: []split.Share{
				{UserID: 1, Amount: 200},
				{UserID: 2, Amount: 250},
			},
		},
	}

	balances := ComputeBalances(threeMembers, entries)

	var sum int64
	for _, b := range balances {
		sum += b.Balance
	}
	assert.Equal(t, int64(0), sum)
}

func TestComputeBalances_NoEntries(t *testing.T) {
	balances := ComputeBalances(threeMembers, nil)

	require.Len(t, balances, 3)
	for _, b := range balances {
		assert.Equal(t, int64(0), b.Balance)
	}
}
