package predictor

import (
	"math"
	"math/rand"
	"sort"

	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// TicketRepairer 将回归器的原始输出修复为一注有效号码
// 修复流程全程确定，唯一的随机性在补足步骤，随机源由调用方注入
type TicketRepairer struct {
	rng *rand.Rand
}

// NewTicketRepairer 创建号码修复器
func NewTicketRepairer(rng *rand.Rand) *TicketRepairer {
	return &TicketRepairer{rng: rng}
}

// Repair 修复原始预测值：四舍五入→截断到[1,60]→按出现顺序去重→随机补足→升序
// 无论输入多么退化（全部相同、全部越界），输出始终满足投注号码不变量
func (r *TicketRepairer) Repair(raw []float64) lottery.Ticket {
	seen := make(map[int]bool, lottery.DrawSize)
	numbers := make([]int, 0, lottery.DrawSize)

	for _, value := range raw {
		if len(numbers) == lottery.DrawSize {
			break
		}

		n := int(math.Round(value))
		if n < lottery.MinNumber {
			n = lottery.MinNumber
		}
		if n > lottery.MaxNumber {
			n = lottery.MaxNumber
		}

		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}

	if len(numbers) < lottery.DrawSize {
		logger.Debugf("Repairing prediction: %d distinct numbers, filling %d randomly",
			len(numbers), lottery.DrawSize-len(numbers))
	}
	numbers = r.fill(numbers, seen)

	sort.Ints(numbers)
	var ticket lottery.Ticket
	copy(ticket[:], numbers)
	return ticket
}

// Complete 用同样的随机补足策略把不足6个的号码集补满并排序
func (r *TicketRepairer) Complete(numbers []int) lottery.Ticket {
	seen := make(map[int]bool, lottery.DrawSize)
	unique := make([]int, 0, lottery.DrawSize)
	for _, n := range numbers {
		if len(unique) == lottery.DrawSize {
			break
		}
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}

	unique = r.fill(unique, seen)
	sort.Ints(unique)

	var ticket lottery.Ticket
	copy(ticket[:], unique)
	return ticket
}

// fill 从[1,60]中均匀抽取未使用的号码直至凑满6个
func (r *TicketRepairer) fill(numbers []int, seen map[int]bool) []int {
	for len(numbers) < lottery.DrawSize {
		candidate := r.rng.Intn(lottery.MaxNumber) + 1
		if !seen[candidate] {
			seen[candidate] = true
			numbers = append(numbers, candidate)
		}
	}
	return numbers
}
