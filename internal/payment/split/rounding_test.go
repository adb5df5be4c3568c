package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorToYen(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    int64
		wantErr error
	}{
		{name: "whole amount", amount: 1000, want: 1000},
		{name: "fractional amount floors", amount: 333.99, want: 333},
		{name: "zero", amount: 0, want: 0},
		{name: "negative", amount: -1, wantErr: ErrNegativeAmount},
		{name: "NaN", amount: math.NaN(), wantErr: ErrNotFinite},
		{name: "positive infinity", amount: math.Inf(1), wantErr: ErrNotFinite},
		{name: "negative infinity", amount: math.Inf(-1), wantErr: ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FloorToYen(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		memberCount int
		want        EqualShare
		wantErr     error
	}{
		{
			name:        "1000 yen across 3",
			amount:      1000,
			memberCount: 3,
			want:        EqualShare{AmountPerPerson: 333, Remainder: 1, Total: 999},
		},
		{
			name:        "1 yen across 3",
			amount:      1,
			memberCount: 3,
			want:        EqualShare{AmountPerPerson: 0, Remainder: 1, Total: 0},
		},
		{
			name:        "10000 yen across 7",
			amount:      10000,
			memberCount: 7,
			want:        EqualShare{AmountPerPerson: 1428, Remainder: 4, Total: 9996},
		},
		{
			name:        "divides evenly",
			amount:      900,
			memberCount: 3,
			want:        EqualShare{AmountPerPerson: 300, Remainder: 0, Total: 900},
		},
		{
			name:        "single member",
			amount:      500,
			memberCount: 1,
			want:        EqualShare{AmountPerPerson: 500, Remainder: 0, Total: 500},
		},
		{name: "negative amount", amount: -100, memberCount: 2, wantErr: ErrNegativeAmount},
		{name: "zero members", amount: 100, memberCount: 0, wantErr: ErrInvalidMemberCount},
		{name: "negative members", amount: 100, memberCount: -1, wantErr: ErrInvalidMemberCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitEqually(tt.amount, tt.memberCount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// remainder plus total must reconstruct the amount
			assert.Equal(t, tt.amount, got.Total+got.Remainder)
		})
	}
}
