package analyzer

import (
	"sort"

	"megasena-bot/internal/lottery"
)

// SummaryStats 描述性统计量
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// PatternReport 开奖形态统计报告
type PatternReport struct {
	Sum       SummaryStats             `json:"sum"`       // 和值分布
	Amplitude SummaryStats             `json:"amplitude"` // 振幅分布
	EvenDist  [lottery.DrawSize + 1]int `json:"even_dist"` // 含0..6个偶数的期数
	EvenMean  float64                  `json:"even_mean"`
	Sequences [][]int                  `json:"sequences"` // 同期内连续号码串
}

// Patterns 统计历史开奖的和值、奇偶、振幅与连号形态
func Patterns(history []lottery.Draw) PatternReport {
	report := PatternReport{}

	sums := make([]float64, len(history))
	amplitudes := make([]float64, len(history))
	evenTotal := 0

	for i, draw := range history {
		sums[i] = float64(draw.Sum())
		amplitudes[i] = float64(draw.Amplitude())

		evens := draw.EvenCount()
		report.EvenDist[evens]++
		evenTotal += evens

		report.Sequences = append(report.Sequences, findSequences(draw)...)
	}

	report.Sum = summarize(sums)
	report.Amplitude = summarize(amplitudes)
	if len(history) > 0 {
		report.EvenMean = float64(evenTotal) / float64(len(history))
	}

	return report
}

// findSequences 找出一期开奖内长度≥2的连续号码串
func findSequences(draw lottery.Draw) [][]int {
	sorted := draw.Sorted()

	var sequences [][]int
	current := []int{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			current = append(current, sorted[i])
			continue
		}
		if len(current) >= 2 {
			sequences = append(sequences, current)
		}
		current = []int{sorted[i]}
	}
	if len(current) >= 2 {
		sequences = append(sequences, current)
	}

	return sequences
}

// summarize 计算一组数值的描述性统计量
func summarize(values []float64) SummaryStats {
	if len(values) == 0 {
		return SummaryStats{}
	}

	stats := SummaryStats{}
	stats.Mean, stats.StdDev = meanStdDev(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	return stats
}
