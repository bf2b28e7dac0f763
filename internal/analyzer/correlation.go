package analyzer

import (
	"math"

	"megasena-bot/internal/lottery"
)

// CorrelationMatrix 开奖统计量之间的皮尔逊相关系数矩阵
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// Correlations 计算和值/均值/中位数/振幅/偶数个数/奇数个数之间的相关性
// 奇偶个数之间应恒为-1，其余强相关多为数学上的自然依赖
func Correlations(history []lottery.Draw) CorrelationMatrix {
	labels := []string{"sum", "mean", "median", "amplitude", "evens", "odds"}

	series := make([][]float64, len(labels))
	for i := range series {
		series[i] = make([]float64, len(history))
	}
	for i, draw := range history {
		series[0][i] = float64(draw.Sum())
		series[1][i] = draw.Mean()
		series[2][i] = draw.Median()
		series[3][i] = float64(draw.Amplitude())
		series[4][i] = float64(draw.EvenCount())
		series[5][i] = float64(draw.OddCount())
	}

	values := make([][]float64, len(labels))
	for i := range values {
		values[i] = make([]float64, len(labels))
		for j := range values[i] {
			values[i][j] = pearson(series[i], series[j])
		}
	}

	return CorrelationMatrix{Labels: labels, Values: values}
}

// pearson 皮尔逊相关系数；任一序列方差为零时返回0
func pearson(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	meanA, _ := meanStdDev(a)
	meanB, _ := meanStdDev(b)

	cov, varA, varB := 0.0, 0.0, 0.0
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}
