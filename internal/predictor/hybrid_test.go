package predictor

import (
	"math/rand"
	"testing"

	"megasena-bot/internal/lottery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHybridPredictor(seed int64) *HybridPredictor {
	cfg := testPredictionConfig()
	repairer := NewTicketRepairer(rand.New(rand.NewSource(seed)))
	return NewHybridPredictor(NewStatisticalPredictor(cfg), NewMLPredictor(cfg, repairer), repairer)
}

func TestHybridPredict(t *testing.T) {
	p := newTestHybridPredictor(1)
	history := makeHistory(t, 30)

	result, err := p.Predict(history)
	require.NoError(t, err)

	requireValidTicket(t, result.Ticket)
	assert.Equal(t, MethodHybrid, result.Method)
	assert.Equal(t, 31, result.TargetContest)
	assert.False(t, result.Degraded)
	assert.Len(t, result.Scores, lottery.DrawSize)
}

func TestHybridDegradesOnShortHistory(t *testing.T) {
	p := newTestHybridPredictor(1)
	history := makeHistory(t, 15) // 统计方法可用，ML路径不可用

	result, err := p.Predict(history)
	require.NoError(t, err)

	assert.Equal(t, MethodHybrid, result.Method)
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Notice)

	// 降级结果就是统计方法的预测
	statResult, err := NewStatisticalPredictor(testPredictionConfig()).Predict(history)
	require.NoError(t, err)
	assert.Equal(t, statResult.Ticket, result.Ticket)
}

func TestHybridErrorsBelowStatisticalMinimum(t *testing.T) {
	p := newTestHybridPredictor(1)

	_, err := p.Predict(makeHistory(t, 5))
	require.Error(t, err)
	assert.True(t, lottery.IsInsufficientHistory(err))
}

func TestHybridCombineInterleavesWithStatPriority(t *testing.T) {
	p := newTestHybridPredictor(1)

	stat := lottery.Ticket{1, 2, 3, 4, 5, 6}
	ml := lottery.Ticket{10, 20, 30, 40, 50, 60}

	// 交替取号：stat[0], ml[0], stat[1], ml[1], stat[2], ml[2]
	ticket := p.combine(stat, ml)
	assert.Equal(t, lottery.Ticket{1, 2, 3, 10, 20, 30}, ticket)
}

func TestHybridCombineIdenticalTickets(t *testing.T) {
	p := newTestHybridPredictor(1)

	same := lottery.Ticket{7, 14, 21, 28, 35, 42}
	ticket := p.combine(same, same)
	assert.Equal(t, same, ticket)
}

func TestHybridCombinePartialOverlap(t *testing.T) {
	p := newTestHybridPredictor(1)

	stat := lottery.Ticket{1, 2, 3, 4, 5, 6}
	ml := lottery.Ticket{1, 2, 3, 40, 50, 60}

	// 重叠号码只计一次，交替顺序决定剩余名额归属
	ticket := p.combine(stat, ml)
	requireValidTicket(t, ticket)
	for _, n := range []int{1, 2, 3, 4, 40} {
		assert.True(t, ticket.Contains(n), "expected %d in ticket", n)
	}
}

func TestHybridMinHistorySize(t *testing.T) {
	p := newTestHybridPredictor(1)
	assert.Equal(t, 20, p.MinHistorySize())
}
