package analyzer

import (
	"math"
	"sort"

	"megasena-bot/internal/lottery"
)

// FrequencyEntry 单个号码的频率统计
type FrequencyEntry struct {
	Number int     `json:"number"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"` // 相对频率
}

// FrequencyTable 全量号码频率表
type FrequencyTable struct {
	Entries      []FrequencyEntry `json:"entries"` // 按次数降序、号码升序
	TotalDraws   int              `json:"total_draws"`
	TotalNumbers int              `json:"total_numbers"`
	Mean         float64          `json:"mean"`    // 频次均值
	StdDev       float64          `json:"std_dev"` // 频次标准差
	CV           float64          `json:"cv"`      // 变异系数（百分比）
}

// Frequency 统计每个号码在历史开奖中出现的次数
// 理想随机过程下60个号码的频次应近似均匀，变异系数衡量偏离程度
func Frequency(history []lottery.Draw) FrequencyTable {
	counts := make(map[int]int, lottery.MaxNumber)
	for _, draw := range history {
		for _, n := range draw.Numbers {
			counts[n]++
		}
	}

	table := FrequencyTable{
		TotalDraws:   len(history),
		TotalNumbers: len(history) * lottery.DrawSize,
		Entries:      make([]FrequencyEntry, 0, lottery.MaxNumber),
	}

	for n := lottery.MinNumber; n <= lottery.MaxNumber; n++ {
		entry := FrequencyEntry{Number: n, Count: counts[n]}
		if table.TotalNumbers > 0 {
			entry.Share = float64(entry.Count) / float64(table.TotalNumbers)
		}
		table.Entries = append(table.Entries, entry)
	}

	sort.Slice(table.Entries, func(i, j int) bool {
		if table.Entries[i].Count != table.Entries[j].Count {
			return table.Entries[i].Count > table.Entries[j].Count
		}
		return table.Entries[i].Number < table.Entries[j].Number
	})

	table.Mean, table.StdDev = meanStdDev(table.frequencies())
	if table.Mean > 0 {
		table.CV = table.StdDev / table.Mean * 100
	}

	return table
}

// Hottest 返回出现次数最多的n个号码
func (t FrequencyTable) Hottest(n int) []int {
	if n > len(t.Entries) {
		n = len(t.Entries)
	}
	numbers := make([]int, n)
	for i := 0; i < n; i++ {
		numbers[i] = t.Entries[i].Number
	}
	return numbers
}

// Coldest 返回出现次数最少的n个号码
func (t FrequencyTable) Coldest(n int) []int {
	if n > len(t.Entries) {
		n = len(t.Entries)
	}
	numbers := make([]int, n)
	for i := 0; i < n; i++ {
		numbers[i] = t.Entries[len(t.Entries)-1-i].Number
	}
	return numbers
}

// frequencies 提取频次序列
func (t FrequencyTable) frequencies() []float64 {
	values := make([]float64, len(t.Entries))
	for i, entry := range t.Entries {
		values[i] = float64(entry.Count)
	}
	return values
}

// meanStdDev 计算均值与总体标准差
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}
