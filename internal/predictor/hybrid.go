package predictor

import (
	"fmt"
	"time"

	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// HybridPredictor 统计方法与机器学习方法的融合预测器
// 历史不足以支撑ML路径时退化为纯统计预测并附带降级提示（非致命）
type HybridPredictor struct {
	statistical *StatisticalPredictor
	ml          *MLPredictor
	repairer    *TicketRepairer
}

// NewHybridPredictor 创建混合预测器
func NewHybridPredictor(statistical *StatisticalPredictor, ml *MLPredictor, repairer *TicketRepairer) *HybridPredictor {
	return &HybridPredictor{
		statistical: statistical,
		ml:          ml,
		repairer:    repairer,
	}
}

// Name 获取算法名称
func (p *HybridPredictor) Name() string {
	return MethodHybrid
}

// MinHistorySize 获取完整混合预测所需的最少历史期数（两个输入方法中较严格者）
func (p *HybridPredictor) MinHistorySize() int {
	return p.ml.MinHistorySize()
}

// Predict 融合两种方法的预测结果
// 两注号码取并集，统计号码优先；并集不足6个时沿用修复器的随机补足策略
func (p *HybridPredictor) Predict(history []lottery.Draw) (*Result, error) {
	if len(history) < p.MinHistorySize() {
		return p.degrade(history)
	}

	statResult, err := p.statistical.Predict(history)
	if err != nil {
		return nil, err
	}

	mlResult, err := p.ml.Predict(history)
	if err != nil {
		if lottery.IsInsufficientHistory(err) {
			return p.degrade(history)
		}
		return nil, err
	}

	ticket := p.combine(statResult.Ticket, mlResult.Ticket)

	overlap := 0
	for _, n := range statResult.Ticket {
		if mlResult.Ticket.Contains(n) {
			overlap++
		}
	}
	logger.Infof("Hybrid prediction generated: %s (method overlap %d/6)", ticket, overlap)

	return &Result{
		Method:        MethodHybrid,
		Ticket:        ticket,
		TargetContest: nextContest(history),
		Scores:        mlResult.Scores,
		GeneratedAt:   time.Now(),
	}, nil
}

// combine 合并两注号码
// 按各自内部排位交替取号，同排位时统计号码优先（对统计方法的信任更高）；
// 去重后截取前6个，不足则随机补足
func (p *HybridPredictor) combine(statistical, ml lottery.Ticket) lottery.Ticket {
	merged := make([]int, 0, 2*lottery.DrawSize)
	seen := make(map[int]bool, 2*lottery.DrawSize)

	for i := 0; i < lottery.DrawSize; i++ {
		for _, n := range []int{statistical[i], ml[i]} {
			if !seen[n] {
				seen[n] = true
				merged = append(merged, n)
			}
		}
	}

	if len(merged) > lottery.DrawSize {
		merged = merged[:lottery.DrawSize]
	}
	return p.repairer.Complete(merged)
}

// degrade 退化为纯统计预测并附带降级提示
func (p *HybridPredictor) degrade(history []lottery.Draw) (*Result, error) {
	statResult, err := p.statistical.Predict(history)
	if err != nil {
		return nil, err
	}

	notice := fmt.Sprintf("history has %d draws, below the %d required for the ML path; returning the statistical ticket alone",
		len(history), p.ml.MinHistorySize())
	logger.Warnf("Hybrid prediction degraded: %s", notice)

	return &Result{
		Method:        MethodHybrid,
		Ticket:        statResult.Ticket,
		TargetContest: statResult.TargetContest,
		Degraded:      true,
		Notice:        notice,
		GeneratedAt:   time.Now(),
	}, nil
}
