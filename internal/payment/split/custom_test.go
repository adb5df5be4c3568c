package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCustomSplits(t *testing.T) {
	tests := []struct {
		name    string
		amounts map[int64]string
		want    []Share
	}{
		{
			name:    "plain amounts",
			amounts: map[int64]string{1: "600", 2: "400"},
			want: []Share{
				{PaymentID: 7, UserID: 1, Amount: 600},
				{PaymentID: 7, UserID: 2, Amount: 400},
			},
		},
		{
			name:    "empty string excludes the member",
			amounts: map[int64]string{1: "1000", 2: "", 3: "500"},
			want: []Share{
				{PaymentID: 7, UserID: 1, Amount: 1000},
				{PaymentID: 7, UserID: 3, Amount: 500},
			},
		},
		{
			name:    "non-numeric coerces to zero",
			amounts: map[int64]string{1: "abc", 2: "250"},
			want: []Share{
				{PaymentID: 7, UserID: 1, Amount: 0},
				{PaymentID: 7, UserID: 2, Amount: 250},
			},
		},
		{
			name:    "negative coerces to zero",
			amounts: map[int64]string{1: "-100", 2: "100"},
			want: []Share{
				{PaymentID: 7, UserID: 1, Amount: 0},
				{PaymentID: 7, UserID: 2, Amount: 100},
			},
		},
		{
			name:    "fractional values floor to yen",
			amounts: map[int64]string{1: "333.75"},
			want: []Share{
				{PaymentID: 7, UserID: 1, Amount: 333},
			},
		},
		{
			name:    "all excluded",
			amounts: map[int64]string{1: "", 2: ""},
			want:    []Share{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCustomSplits(7, tt.amounts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, valid := range []string{"EQUAL", "CUSTOM", "PROXY"} {
		got, err := ParseType(valid)
		require.NoError(t, err)
		assert.Equal(t, Type(valid), got)
	}

	_, err := ParseType("PERCENTAGE")
	assert.ErrorIs(t, err, ErrUnknownSplitType)
}
