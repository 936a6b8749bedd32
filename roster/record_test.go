package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   Tally
	}{
		{"standard legend", "21-3-0 (W-L-D)", Tally{Wins: 21, Losses: 3, Draws: 0}},
		{"legend order decides mapping", "21-3-0 (L-W-D)", Tally{Wins: 3, Losses: 21, Draws: 0}},
		{"draws first", "1-10-2 (D-W-L)", Tally{Wins: 10, Losses: 2, Draws: 1}},
		{"loose whitespace", "  14 - 2 - 1 ( W - L - D )  ", Tally{Wins: 14, Losses: 2, Draws: 1}},
		{"lowercase legend", "5-5-5 (w-l-d)", Tally{Wins: 5, Losses: 5, Draws: 5}},
		{"trailing text ignored", "8-1-0 (W-L-D) 1 NC", Tally{Wins: 8, Losses: 1, Draws: 0}},
		{"bare legend", "21-3-0 W-L-D", Tally{Wins: 21, Losses: 3, Draws: 0}},
		{"space separated", "21 3 0 W L D", Tally{Wins: 21, Losses: 3, Draws: 0}},
		{"bracketed legend", "21-3-0 [W-L-D]", Tally{Wins: 21, Losses: 3, Draws: 0}},
		{"bare legend reordered", "4 9 1 D L W", Tally{Wins: 1, Losses: 9, Draws: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecord(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Wins+got.Losses+got.Draws, got.Fights())
		})
	}
}

func TestDecodeRecord_Undecodable(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"empty", ""},
		{"no legend", "21-3-0"},
		{"missing draw letter", "21-3-0 (W-L-L)"},
		{"unknown letter", "21-3-0 (W-L-X)"},
		{"two numbers", "21-3 (W-L)"},
		{"letters only", "W-L-D"},
		{"letters before counts", "W-L-D 21-3-0"},
		{"fourth count in legend", "21-3-0-1 W-L-D"},
		{"repeated letter without parentheses", "21 3 0 W W D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord(tt.record)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUndecodableRecord), "got %v", err)
		})
	}
}
