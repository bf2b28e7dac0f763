package predictor

import (
	"math/rand"
	"sync"
	"time"

	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// mlMinHistory 机器学习路径的可用性下限
// 窗口规则在更少数据上也能构成样本，但20期以下训练没有参考意义
const mlMinHistory = 20

// MLPredictor 逐位置随机森林预测器
// 对6个号码位置各训练一个独立的回归森林，彼此不共享任何状态
type MLPredictor struct {
	cfg      *config.Prediction
	repairer *TicketRepairer
}

// NewMLPredictor 创建机器学习预测器
func NewMLPredictor(cfg *config.Prediction, repairer *TicketRepairer) *MLPredictor {
	return &MLPredictor{
		cfg:      cfg,
		repairer: repairer,
	}
}

// Name 获取算法名称
func (p *MLPredictor) Name() string {
	return MethodML
}

// MinHistorySize 获取所需的最少历史期数
func (p *MLPredictor) MinHistorySize() int {
	return mlMinHistory
}

// Predict 训练6个位置模型并预测下一期号码
// 原始回归输出经过修复器转为有效投注号码；各位置的保留集R²随结果返回
func (p *MLPredictor) Predict(history []lottery.Draw) (*Result, error) {
	if len(history) < p.MinHistorySize() {
		return nil, &lottery.InsufficientHistoryError{
			Method:   MethodML,
			Required: p.MinHistorySize(),
			Got:      len(history),
		}
	}

	dataset, err := BuildDataset(history)
	if err != nil {
		return nil, err
	}

	splitRng := rand.New(rand.NewSource(p.cfg.Forest.Seed))
	train, eval := dataset.Split(p.cfg.TrainRatio, p.cfg.SplitPolicy, splitRng)
	latest := LatestWindow(history, dataset.Window)

	logger.Infof("Training %d position models: window=%d train=%d eval=%d policy=%s",
		lottery.DrawSize, dataset.Window, train.Len(), eval.Len(), p.cfg.SplitPolicy)

	// 6个位置模型完全独立，可并行训练
	raw := make([]float64, lottery.DrawSize)
	scores := make([]float64, lottery.DrawSize)
	var wg sync.WaitGroup

	for pos := 0; pos < lottery.DrawSize; pos++ {
		wg.Add(1)
		go func(pos int) {
			defer wg.Done()

			forest := TrainForest(train.Features, train.TargetColumn(pos), p.cfg.Forest)
			scores[pos] = forest.Score(eval.Features, eval.TargetColumn(pos))
			raw[pos] = forest.Predict(latest)

			logger.Debugf("Position %d model: raw=%.2f r2=%.4f", pos+1, raw[pos], scores[pos])
		}(pos)
	}
	wg.Wait()

	ticket := p.repairer.Repair(raw)
	logger.Infof("ML prediction generated: %s", ticket)

	return &Result{
		Method:        MethodML,
		Ticket:        ticket,
		TargetContest: nextContest(history),
		Scores:        scores,
		GeneratedAt:   time.Now(),
	}, nil
}
