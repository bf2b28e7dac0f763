package predictor

import (
	"math/rand"

	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// WindowSize 根据历史期数自适应选择滑动窗口大小
func WindowSize(totalDraws int) int {
	switch {
	case totalDraws >= 100:
		return 15
	case totalDraws >= 50:
		return 10
	case totalDraws >= 20:
		return 5
	default:
		window := totalDraws / 4
		if window < 3 {
			window = 3
		}
		return window
	}
}

// Dataset 滑动窗口展开的监督学习数据集
// 每行特征为窗口内Window期开奖的6个号码（原始顺序、从旧到新拼接），
// 目标为窗口后紧邻一期的6个号码，不做任何归一化
type Dataset struct {
	Window   int
	Features [][]float64 // 每行 Window*6 个特征
	Targets  [][]float64 // 每行 6 个目标
}

// BuildDataset 将有序的开奖历史展开为训练样本
// 历史不足以构成任何样本时返回InsufficientHistoryError
func BuildDataset(history []lottery.Draw) (*Dataset, error) {
	total := len(history)
	window := WindowSize(total)

	if total < window+1 {
		return nil, &lottery.InsufficientHistoryError{
			Method:   MethodML,
			Required: window + 1,
			Got:      total,
		}
	}

	samples := total - window
	dataset := &Dataset{
		Window:   window,
		Features: make([][]float64, 0, samples),
		Targets:  make([][]float64, 0, samples),
	}

	for i := window; i < total; i++ {
		dataset.Features = append(dataset.Features, flattenDraws(history[i-window:i]))
		dataset.Targets = append(dataset.Targets, drawNumbers(history[i]))
	}

	logger.Debugf("Dataset built: window=%d samples=%d features=%d",
		window, samples, window*lottery.DrawSize)

	return dataset, nil
}

// Len 样本数
func (d *Dataset) Len() int {
	return len(d.Features)
}

// TargetColumn 提取指定位置的目标列
func (d *Dataset) TargetColumn(position int) []float64 {
	column := make([]float64, len(d.Targets))
	for i, target := range d.Targets {
		column[i] = target[position]
	}
	return column
}

// Split 按比例划分训练/评估集
// chronological策略取时间上最早的部分做训练，避免未来数据泄漏；
// random策略用注入的随机源洗牌后划分（与原始行为对齐的可选项）
func (d *Dataset) Split(ratio float64, policy string, rng *rand.Rand) (train, eval *Dataset) {
	n := d.Len()
	cut := int(float64(n) * ratio)
	if cut < 1 {
		cut = 1
	}
	if cut > n {
		cut = n
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if policy == config.SplitRandom {
		rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	train = &Dataset{Window: d.Window}
	eval = &Dataset{Window: d.Window}
	for i, idx := range order {
		if i < cut {
			train.Features = append(train.Features, d.Features[idx])
			train.Targets = append(train.Targets, d.Targets[idx])
		} else {
			eval.Features = append(eval.Features, d.Features[idx])
			eval.Targets = append(eval.Targets, d.Targets[idx])
		}
	}

	return train, eval
}

// LatestWindow 取最近window期开奖作为预测输入特征
func LatestWindow(history []lottery.Draw, window int) []float64 {
	return flattenDraws(history[len(history)-window:])
}

// flattenDraws 将若干期开奖按原始顺序拼接为特征向量
func flattenDraws(draws []lottery.Draw) []float64 {
	features := make([]float64, 0, len(draws)*lottery.DrawSize)
	for _, draw := range draws {
		for _, n := range draw.Numbers {
			features = append(features, float64(n))
		}
	}
	return features
}

// drawNumbers 将一期开奖号码转为浮点目标向量
func drawNumbers(draw lottery.Draw) []float64 {
	numbers := make([]float64, lottery.DrawSize)
	for i, n := range draw.Numbers {
		numbers[i] = float64(n)
	}
	return numbers
}
