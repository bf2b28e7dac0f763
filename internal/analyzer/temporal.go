package analyzer

import (
	"fmt"
	"sort"

	"megasena-bot/internal/lottery"
)

// PeriodStats 单个时间段的聚合统计
type PeriodStats struct {
	Period           string  `json:"period"`
	Draws            int     `json:"draws"`
	MeanSum          float64 `json:"mean_sum"`
	MeanEvens        float64 `json:"mean_evens"`
	AccumulationRate float64 `json:"accumulation_rate"` // 滚存比例
}

// ByYear 按年份聚合历史开奖（年份升序）
func ByYear(history []lottery.Draw) []PeriodStats {
	return aggregate(history, func(draw lottery.Draw) string {
		return fmt.Sprintf("%d", draw.Date.Year())
	})
}

// ByMonth 按月份聚合历史开奖（1月到12月），用于观察是否存在月度季节性
func ByMonth(history []lottery.Draw) []PeriodStats {
	return aggregate(history, func(draw lottery.Draw) string {
		return fmt.Sprintf("%02d", int(draw.Date.Month()))
	})
}

// aggregate 按key函数分组聚合
func aggregate(history []lottery.Draw, key func(lottery.Draw) string) []PeriodStats {
	type accumulator struct {
		draws       int
		sumTotal    int
		evenTotal   int
		accumulated int
	}

	groups := make(map[string]*accumulator)
	for _, draw := range history {
		k := key(draw)
		acc, exists := groups[k]
		if !exists {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.draws++
		acc.sumTotal += draw.Sum()
		acc.evenTotal += draw.EvenCount()
		if draw.Accumulated {
			acc.accumulated++
		}
	}

	stats := make([]PeriodStats, 0, len(groups))
	for period, acc := range groups {
		stats = append(stats, PeriodStats{
			Period:           period,
			Draws:            acc.draws,
			MeanSum:          float64(acc.sumTotal) / float64(acc.draws),
			MeanEvens:        float64(acc.evenTotal) / float64(acc.draws),
			AccumulationRate: float64(acc.accumulated) / float64(acc.draws),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Period < stats[j].Period
	})

	return stats
}
