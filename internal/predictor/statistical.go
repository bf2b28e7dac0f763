package predictor

import (
	"sort"
	"time"

	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

const (
	statMinHistory = 10 // 统计方法的最少历史期数
	maxPerParity   = 4  // 首轮选号中单一奇偶性的上限
)

// StatisticalPredictor 加权频率统计预测器
// 综合全量历史频率与近期频率打分，取分值最高且奇偶均衡的6个号码
type StatisticalPredictor struct {
	historyWeight float64
	recentWeight  float64
	recentDraws   int
}

// numberScore 单个号码的综合评分
type numberScore struct {
	number int
	score  float64
}

// NewStatisticalPredictor 创建统计预测器
func NewStatisticalPredictor(cfg *config.Prediction) *StatisticalPredictor {
	return &StatisticalPredictor{
		historyWeight: cfg.HistoryWeight,
		recentWeight:  cfg.RecentWeight,
		recentDraws:   cfg.RecentDraws,
	}
}

// Name 获取算法名称
func (p *StatisticalPredictor) Name() string {
	return MethodStatistical
}

// MinHistorySize 获取所需的最少历史期数
func (p *StatisticalPredictor) MinHistorySize() int {
	return statMinHistory
}

// Predict 根据加权频率选出下一期的6个号码
func (p *StatisticalPredictor) Predict(history []lottery.Draw) (*Result, error) {
	if len(history) < p.MinHistorySize() {
		return nil, &lottery.InsufficientHistoryError{
			Method:   MethodStatistical,
			Required: p.MinHistorySize(),
			Got:      len(history),
		}
	}

	scored := p.scoreNumbers(history)
	numbers := p.selectBalanced(scored)

	ticket, err := lottery.NewTicket(numbers)
	if err != nil {
		// selectBalanced保证6个互不重复且在范围内，此处不可达
		return nil, err
	}

	logger.Infof("Statistical prediction generated: %s (history=%d recent=%d)",
		ticket, len(history), p.recentWindow(len(history)))

	return &Result{
		Method:        MethodStatistical,
		Ticket:        ticket,
		TargetContest: nextContest(history),
		GeneratedAt:   time.Now(),
	}, nil
}

// recentWindow 实际使用的近期窗口期数
func (p *StatisticalPredictor) recentWindow(total int) int {
	if total < p.recentDraws {
		return total
	}
	return p.recentDraws
}

// scoreNumbers 计算每个号码的综合评分并按分值降序排列
// 评分 = historyWeight*全量相对频率 + recentWeight*近期相对频率，
// 同分时较小的号码排前（固定的平局规则，保证输出确定）
func (p *StatisticalPredictor) scoreNumbers(history []lottery.Draw) []numberScore {
	fullCounts := make(map[int]int)
	for _, draw := range history {
		for _, n := range draw.Numbers {
			fullCounts[n]++
		}
	}

	recent := history[len(history)-p.recentWindow(len(history)):]
	recentCounts := make(map[int]int)
	for _, draw := range recent {
		for _, n := range draw.Numbers {
			recentCounts[n]++
		}
	}

	totalNumbers := float64(len(history) * lottery.DrawSize)
	recentNumbers := float64(len(recent) * lottery.DrawSize)

	scored := make([]numberScore, 0, lottery.MaxNumber)
	for n := lottery.MinNumber; n <= lottery.MaxNumber; n++ {
		fullScore := float64(fullCounts[n]) / totalNumbers
		recentScore := float64(recentCounts[n]) / recentNumbers
		scored = append(scored, numberScore{
			number: n,
			score:  fullScore*p.historyWeight + recentScore*p.recentWeight,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].number < scored[j].number
	})

	return scored
}

// selectBalanced 按评分降序选号并施加奇偶均衡约束
// 首轮每种奇偶性最多取4个；不足6个时用后续最高分的未选号码补齐
func (p *StatisticalPredictor) selectBalanced(scored []numberScore) []int {
	selected := make([]int, 0, lottery.DrawSize)
	chosen := make(map[int]bool, lottery.DrawSize)
	evenCount, oddCount := 0, 0

	for _, candidate := range scored {
		if len(selected) == lottery.DrawSize {
			break
		}
		if candidate.number%2 == 0 {
			if evenCount >= maxPerParity {
				continue
			}
			evenCount++
		} else {
			if oddCount >= maxPerParity {
				continue
			}
			oddCount++
		}
		selected = append(selected, candidate.number)
		chosen[candidate.number] = true
	}

	// 约束过紧时放开奇偶限制补齐
	for _, candidate := range scored {
		if len(selected) == lottery.DrawSize {
			break
		}
		if !chosen[candidate.number] {
			selected = append(selected, candidate.number)
			chosen[candidate.number] = true
		}
	}

	return selected
}
