package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveTransfers_SimplePair(t *testing.T) {
	result := SolveTransfers([]MemberBalance{
		{UserID: 1, Name: "Aiko", Balance: 1000},
		{UserID: 2, Name: "Ben", Balance: -1000},
	})

	require.Len(t, result.Transfers, 1)
	assert.False(t, result.IsZero)
	assert.Equal(t, NetTransfer{
		FromID: 2, FromName: "Ben", ToID: 1, ToName: "Aiko", Amount: 1000,
	}, result.Transfers[0])
}

func TestSolveTransfers_OneDebtorTwoCreditors(t *testing.T) {
	result := SolveTransfers([]MemberBalance{
		{UserID: 1, Name: "Aiko", Balance: 700},
		{UserID: 2, Name: "Ben", Balance: 300},
		{UserID: 3, Name: "Chika", Balance: -1000},
	})

	require.Len(t, result.Transfers, 2)
	assert.Equal(t, int64(700), result.Transfers[0].Amount)
	assert.Equal(t, int64(1), result.Transfers[0].ToID)
	assert.Equal(t, int64(300), result.Transfers[1].Amount)
	assert.Equal(t, int64(2), result.Transfers[1].ToID)
}

func TestSolveTransfers_TransferCountBound(t *testing.T) {
	balances := []MemberBalance{
		{UserID: 1, Balance: 500},
		{UserID: 2, Balance: 300},
		{UserID: 3, Balance: 200},
		{UserID: 4, Balance: -400},
		{UserID: 5, Balance: -600},
	}

	result := SolveTransfers(balances)

	// n debtors + m creditors never needs more than n+m-1 transfers
	assert.LessOrEqual(t, len(result.Transfers), 4)
	assertTransfersSettle(t, balances, result.Transfers)
}

func TestSolveTransfers_AllZero(t *testing.T) {
	result := SolveTransfers([]MemberBalance{
		{UserID: 1, Balance: 0},
		{UserID: 2, Balance: 0},
	})

	assert.True(t, result.IsZero)
	assert.Empty(t, result.Transfers)
}

func TestSolveTransfers_EmptyInput(t *testing.T) {
	result := SolveTransfers(nil)

	assert.True(t, result.IsZero)
	assert.NotNil(t, result.Transfers)
	assert.Empty(t, result.Transfers)
}

func TestSolveTransfers_DeterministicOrder(t *testing.T) {
	balances := []MemberBalance{
		{UserID: 3, Balance: -200},
		{UserID: 1, Balance: 500},
		{UserID: 2, Balance: -300},
	}

	first := SolveTransfers(balances)
	second := SolveTransfers(balances)

	assert.Equal(t, first, second)
}

func TestConsolidateTransfers_CancelsOpposingDebts(t *testing.T) {
	sessions := [][]NetTransfer{
		{{FromID: 1, FromName: "Aiko", ToID: 2, ToName: "Ben", Amount: 1000}},
		{{FromID: 2, FromName: "Ben", ToID: 1, ToName: "Aiko", Amount: 400}},
	}

	result := ConsolidateTransfers(sessions)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, NetTransfer{
		FromID: 1, FromName: "Aiko", ToID: 2, ToName: "Ben", Amount: 600,
	}, result.Transfers[0])
}

func TestConsolidateTransfers_FullCancellation(t *testing.T) {
	sessions := [][]NetTransfer{
		{{FromID: 1, ToID: 2, Amount: 500}},
		{{FromID: 2, ToID: 1, Amount: 500}},
	}

	result := ConsolidateTransfers(sessions)

	assert.Empty(t, result.Transfers)
}

func TestConsolidateTransfers_ChainsCollapse(t *testing.T) {
	// A owes B, B owes C: consolidation should route A directly to C
	sessions := [][]NetTransfer{
		{{FromID: 1, FromName: "Aiko", ToID: 2, ToName: "Ben", Amount: 300}},
		{{FromID: 2, FromName: "Ben", ToID: 3, ToName: "Chika", Amount: 300}},
	}

	result := ConsolidateTransfers(sessions)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, int64(1), result.Transfers[0].FromID)
	assert.Equal(t, int64(3), result.Transfers[0].ToID)
	assert.Equal(t, int64(300), result.Transfers[0].Amount)
}

func TestConsolidateTransfers_NoSessions(t *testing.T) {
	result := ConsolidateTransfers(nil)

	assert.True(t, result.IsZero)
	assert.Empty(t, result.Transfers)
}

// assertTransfersSettle replays the transfers and checks every balance
// reaches zero
func assertTransfersSettle(t *testing.T, balances []MemberBalance, transfers []NetTransfer) {
	t.Helper()

	remaining := make(map[int64]int64, len(balances))
	for _, b := range balances {
		remaining[b.UserID] = b.Balance
	}
	for _, tr := range transfers {
		remaining[tr.FromID] += tr.Amount
		remaining[tr.ToID] -= tr.Amount
	}
	for id, r := range remaining {
		assert.Zero(t, r, "member %d not settled", id)
	}
}
