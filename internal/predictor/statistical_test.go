package predictor

import (
	"testing"

	"megasena-bot/internal/lottery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticalPredict(t *testing.T) {
	p := NewStatisticalPredictor(testPredictionConfig())
	history := makeHistory(t, 30)

	result, err := p.Predict(history)
	require.NoError(t, err)

	requireValidTicket(t, result.Ticket)
	assert.Equal(t, MethodStatistical, result.Method)
	assert.Equal(t, 31, result.TargetContest)
	assert.False(t, result.Degraded)
	assert.Empty(t, result.Scores)
}

func TestStatisticalPrefersFrequentNumbers(t *testing.T) {
	p := NewStatisticalPredictor(testPredictionConfig())

	// 每期号码完全相同：这6个号码的评分远超其余号码，必须全部入选
	numbers := []int{5, 10, 15, 20, 25, 30}
	history := makeConstantHistory(t, 15, numbers)

	result, err := p.Predict(history)
	require.NoError(t, err)

	assert.Equal(t, lottery.Ticket{5, 10, 15, 20, 25, 30}, result.Ticket)
}

func TestStatisticalParityBalance(t *testing.T) {
	p := NewStatisticalPredictor(testPredictionConfig())

	// 历史全是偶数号码：首轮最多取4个偶数，其余用未出现的号码补齐
	history := makeConstantHistory(t, 15, []int{2, 4, 6, 8, 10, 12})

	result, err := p.Predict(history)
	require.NoError(t, err)

	requireValidTicket(t, result.Ticket)
	assert.Equal(t, 4, result.Ticket.EvenCount())

	// 评分最高的前4个偶数保留（同分时较小号码优先）
	for _, n := range []int{2, 4, 6, 8} {
		assert.True(t, result.Ticket.Contains(n), "expected %d in ticket", n)
	}
}

func TestStatisticalDeterministic(t *testing.T) {
	p := NewStatisticalPredictor(testPredictionConfig())
	history := makeHistory(t, 40)

	a, err := p.Predict(history)
	require.NoError(t, err)
	b, err := p.Predict(history)
	require.NoError(t, err)

	assert.Equal(t, a.Ticket, b.Ticket)
}

func TestStatisticalInsufficientHistory(t *testing.T) {
	p := NewStatisticalPredictor(testPredictionConfig())

	_, err := p.Predict(makeHistory(t, 9))
	require.Error(t, err)
	assert.True(t, lottery.IsInsufficientHistory(err))

	_, err = p.Predict(makeHistory(t, 10))
	assert.NoError(t, err)
}
