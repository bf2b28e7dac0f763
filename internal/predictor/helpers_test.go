package predictor

import (
	"testing"
	"time"

	"megasena-bot/internal/config"
	"megasena-bot/internal/lottery"

	"github.com/stretchr/testify/require"
)

// makeHistory 生成n期合成开奖历史，号码按固定步长循环变化
func makeHistory(t *testing.T, n int) []lottery.Draw {
	t.Helper()
	draws := make([]lottery.Draw, 0, n)
	for i := 0; i < n; i++ {
		numbers := []int{
			i%60 + 1, (i+10)%60 + 1, (i+20)%60 + 1,
			(i+30)%60 + 1, (i+40)%60 + 1, (i+50)%60 + 1,
		}
		draw, err := lottery.NewDraw(i+1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*3), numbers, false)
		require.NoError(t, err)
		draws = append(draws, draw)
	}
	return draws
}

// makeConstantHistory 生成n期号码完全相同的开奖历史
func makeConstantHistory(t *testing.T, n int, numbers []int) []lottery.Draw {
	t.Helper()
	draws := make([]lottery.Draw, 0, n)
	for i := 0; i < n; i++ {
		draw, err := lottery.NewDraw(i+1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*3), numbers, false)
		require.NoError(t, err)
		draws = append(draws, draw)
	}
	return draws
}

// testPredictionConfig 测试用的小规模预测配置，保证测试跑得快
func testPredictionConfig() *config.Prediction {
	cfg := config.DefaultPrediction()
	cfg.Forest.Trees = 10
	return &cfg
}

// requireValidTicket 断言一注号码满足全部不变量
func requireValidTicket(t *testing.T, ticket lottery.Ticket) {
	t.Helper()
	require.NoError(t, lottery.ValidateNumbers(ticket.Numbers()))
	for i := 1; i < lottery.DrawSize; i++ {
		require.Less(t, ticket[i-1], ticket[i], "ticket must be sorted ascending")
	}
}
