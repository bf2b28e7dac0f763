package predictor

import (
	"testing"
	"time"

	"megasena-bot/internal/lottery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTicket(t *testing.T) {
	draw, err := lottery.NewDraw(2700, time.Now(), []int{4, 8, 15, 16, 23, 42}, false)
	require.NoError(t, err)

	tests := []struct {
		name    string
		numbers []int
		count   int
		prize   string
	}{
		{"sena", []int{4, 8, 15, 16, 23, 42}, 6, PrizeSena},
		{"quina", []int{4, 8, 15, 16, 23, 60}, 5, PrizeQuina},
		{"quadra", []int{4, 8, 15, 16, 59, 60}, 4, PrizeQuadra},
		{"three hits no prize", []int{4, 8, 15, 57, 58, 59}, 3, ""},
		{"no hits", []int{1, 2, 3, 5, 6, 7}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := lottery.NewTicket(tt.numbers)
			require.NoError(t, err)

			result := CheckTicket(ticket, draw)
			assert.Equal(t, 2700, result.Contest)
			assert.Equal(t, tt.count, result.Count)
			assert.Equal(t, tt.prize, result.Prize)
			assert.Len(t, result.Hits, tt.count)
		})
	}
}

func TestCheckTicketHitsAreSorted(t *testing.T) {
	draw, err := lottery.NewDraw(1, time.Now(), []int{42, 23, 16, 15, 8, 4}, false)
	require.NoError(t, err)

	ticket, err := lottery.NewTicket([]int{4, 8, 15, 16, 23, 42})
	require.NoError(t, err)

	result := CheckTicket(ticket, draw)
	assert.Equal(t, []int{4, 8, 15, 16, 23, 42}, result.Hits)
}
