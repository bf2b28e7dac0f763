package predictor

import (
	"megasena-bot/internal/lottery"
)

// Mega-Sena奖级名称
const (
	PrizeSena   = "sena"   // 6个号码全中
	PrizeQuina  = "quina"  // 中5个
	PrizeQuadra = "quadra" // 中4个
)

// MatchResult 一注号码与实际开奖的比对结果
type MatchResult struct {
	Contest int    `json:"contest"`
	Hits    []int  `json:"hits"` // 命中的号码（升序）
	Count   int    `json:"count"`
	Prize   string `json:"prize,omitempty"`
}

// CheckTicket 比对投注号码与实际开奖结果
func CheckTicket(ticket lottery.Ticket, draw lottery.Draw) MatchResult {
	result := MatchResult{Contest: draw.Contest}

	for _, n := range ticket {
		if draw.Contains(n) {
			result.Hits = append(result.Hits, n)
		}
	}
	result.Count = len(result.Hits)
	result.Prize = prizeTier(result.Count)

	return result
}

// prizeTier 根据命中个数判定奖级
func prizeTier(count int) string {
	switch count {
	case 6:
		return PrizeSena
	case 5:
		return PrizeQuina
	case 4:
		return PrizeQuadra
	default:
		return ""
	}
}
