package analyzer

import (
	"testing"
	"time"

	"megasena-bot/internal/lottery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDraw(t *testing.T, contest int, date time.Time, numbers []int, accumulated bool) lottery.Draw {
	t.Helper()
	draw, err := lottery.NewDraw(contest, date, numbers, accumulated)
	require.NoError(t, err)
	return draw
}

func makeCyclicHistory(t *testing.T, n int) []lottery.Draw {
	t.Helper()
	draws := make([]lottery.Draw, 0, n)
	for i := 0; i < n; i++ {
		numbers := []int{
			i%60 + 1, (i+10)%60 + 1, (i+20)%60 + 1,
			(i+30)%60 + 1, (i+40)%60 + 1, (i+50)%60 + 1,
		}
		draws = append(draws, makeDraw(t, i+1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*3), numbers, false))
	}
	return draws
}

func TestFrequency(t *testing.T) {
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []lottery.Draw{
		makeDraw(t, 1, base, []int{5, 10, 15, 20, 25, 30}, false),
		makeDraw(t, 2, base.AddDate(0, 0, 3), []int{5, 10, 15, 40, 45, 50}, false),
		makeDraw(t, 3, base.AddDate(0, 0, 6), []int{5, 12, 18, 24, 36, 48}, false),
	}

	table := Frequency(history)

	assert.Equal(t, 3, table.TotalDraws)
	assert.Equal(t, 18, table.TotalNumbers)
	assert.Len(t, table.Entries, lottery.MaxNumber)

	// 5出现3次排第一，10和15各2次紧随其后
	assert.Equal(t, 5, table.Entries[0].Number)
	assert.Equal(t, 3, table.Entries[0].Count)
	assert.InDelta(t, 3.0/18.0, table.Entries[0].Share, 1e-9)

	hottest := table.Hottest(3)
	assert.Equal(t, []int{5, 10, 15}, hottest)

	// 冷号是从未出现的号码，同为0次时较大号码排最后
	coldest := table.Coldest(1)
	assert.Equal(t, []int{60}, coldest)
}

func TestFrequencyEmptyHistory(t *testing.T) {
	table := Frequency(nil)

	assert.Equal(t, 0, table.TotalDraws)
	assert.Len(t, table.Entries, lottery.MaxNumber)
	assert.Equal(t, 0.0, table.CV)
}

func TestPatterns(t *testing.T) {
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []lottery.Draw{
		makeDraw(t, 1, base, []int{1, 2, 3, 10, 15, 21}, false),
		makeDraw(t, 2, base.AddDate(0, 0, 3), []int{4, 8, 16, 32, 48, 60}, false),
	}

	report := Patterns(history)

	// 第一期有一个连号串 1-2-3，第二期没有
	require.Len(t, report.Sequences, 1)
	assert.Equal(t, []int{1, 2, 3}, report.Sequences[0])

	// 偶数分布：第一期2个偶数，第二期6个
	assert.Equal(t, 1, report.EvenDist[2])
	assert.Equal(t, 1, report.EvenDist[6])
	assert.InDelta(t, 4.0, report.EvenMean, 1e-9)

	// 和值统计：52和168
	assert.InDelta(t, 110.0, report.Sum.Mean, 1e-9)
	assert.InDelta(t, 52.0, report.Sum.Min, 1e-9)
	assert.InDelta(t, 168.0, report.Sum.Max, 1e-9)
}

func TestPatternsEmptyHistory(t *testing.T) {
	report := Patterns(nil)
	assert.Equal(t, SummaryStats{}, report.Sum)
	assert.Empty(t, report.Sequences)
}

func TestByYear(t *testing.T) {
	history := []lottery.Draw{
		makeDraw(t, 1, time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC), []int{1, 2, 3, 4, 5, 6}, true),
		makeDraw(t, 2, time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC), []int{7, 8, 9, 10, 11, 12}, false),
		makeDraw(t, 3, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), []int{13, 14, 15, 16, 17, 18}, true),
	}

	years := ByYear(history)
	require.Len(t, years, 2)

	assert.Equal(t, "2022", years[0].Period)
	assert.Equal(t, 2, years[0].Draws)
	assert.InDelta(t, 0.5, years[0].AccumulationRate, 1e-9)
	assert.InDelta(t, (21.0+57.0)/2, years[0].MeanSum, 1e-9)

	assert.Equal(t, "2023", years[1].Period)
	assert.Equal(t, 1, years[1].Draws)
	assert.InDelta(t, 1.0, years[1].AccumulationRate, 1e-9)
}

func TestByMonth(t *testing.T) {
	history := []lottery.Draw{
		makeDraw(t, 1, time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC), []int{1, 2, 3, 4, 5, 6}, false),
		makeDraw(t, 2, time.Date(2023, 1, 7, 0, 0, 0, 0, time.UTC), []int{7, 8, 9, 10, 11, 12}, false),
		makeDraw(t, 3, time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC), []int{13, 14, 15, 16, 17, 18}, false),
	}

	months := ByMonth(history)
	require.Len(t, months, 2)

	// 月份按字符串升序："01" 在 "12" 之前，不同年份的同月合并
	assert.Equal(t, "01", months[0].Period)
	assert.Equal(t, 2, months[0].Draws)
	assert.Equal(t, "12", months[1].Period)
}

func TestCorrelations(t *testing.T) {
	matrix := Correlations(makeCyclicHistory(t, 30))

	require.Equal(t, []string{"sum", "mean", "median", "amplitude", "evens", "odds"}, matrix.Labels)
	require.Len(t, matrix.Values, 6)

	// 对角线为1（方差非零的统计量）
	assert.InDelta(t, 1.0, matrix.Values[0][0], 1e-9)

	// 奇偶个数互补，相关系数恒为-1
	assert.InDelta(t, -1.0, matrix.Values[4][5], 1e-9)

	// 和值与均值线性相关
	assert.InDelta(t, 1.0, matrix.Values[0][1], 1e-9)

	// 矩阵对称
	assert.InDelta(t, matrix.Values[0][3], matrix.Values[3][0], 1e-9)
}

func TestCorrelationsZeroVariance(t *testing.T) {
	// 全部开奖相同：所有统计量方差为零，相关系数按约定为0
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []lottery.Draw{
		makeDraw(t, 1, base, []int{1, 2, 3, 4, 5, 6}, false),
		makeDraw(t, 2, base.AddDate(0, 0, 3), []int{1, 2, 3, 4, 5, 6}, false),
	}

	matrix := Correlations(history)
	assert.Equal(t, 0.0, matrix.Values[0][0])
}
