package cache

import (
	"sync"
	"time"

	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
)

// PredictionRecord 一次预测的内存记录
type PredictionRecord struct {
	Method        string         `json:"method"`
	Ticket        lottery.Ticket `json:"ticket"`
	TargetContest int            `json:"target_contest"`
	Scores        []float64      `json:"scores,omitempty"`
	Degraded      bool           `json:"degraded"`
	Notice        string         `json:"notice,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Store 内存数据仓库：开奖历史快照 + 各方法最近一次预测
// 全部状态只存在于进程内，没有任何持久化层
type Store struct {
	mu          sync.RWMutex
	draws       []lottery.Draw
	fetchedAt   time.Time
	ttl         time.Duration
	predictions map[string]PredictionRecord
}

// NewStore 创建内存数据仓库
func NewStore(ttl time.Duration) *Store {
	logger.Info("In-memory store initialized")
	return &Store{
		ttl:         ttl,
		predictions: make(map[string]PredictionRecord),
	}
}

// UpdateHistory 替换开奖历史快照（要求从旧到新有序）
func (s *Store) UpdateHistory(draws []lottery.Draw) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draws = make([]lottery.Draw, len(draws))
	copy(s.draws, draws)
	s.fetchedAt = time.Now()

	logger.Debugf("History snapshot updated: %d draws", len(draws))
}

// History 获取开奖历史快照副本，第二个返回值表示快照是否仍在TTL内
func (s *Store) History() ([]lottery.Draw, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fresh := !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) <= s.ttl
	return s.copyDraws(), fresh
}

// LastKnown 获取最后一次已知的历史快照，允许过期（网络故障时的回退数据）
func (s *Store) LastKnown() []lottery.Draw {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyDraws()
}

// Latest 获取最新一期开奖数据
func (s *Store) Latest() (lottery.Draw, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.draws) == 0 {
		return lottery.Draw{}, false
	}
	return s.draws[len(s.draws)-1], true
}

// SavePrediction 保存一次预测结果（按方法覆盖）
func (s *Store) SavePrediction(record PredictionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.predictions[record.Method] = record
	logger.Debugf("Prediction cached: method=%s target=%d", record.Method, record.TargetContest)
}

// Prediction 获取指定方法的最近一次预测
func (s *Store) Prediction(method string) (PredictionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.predictions[method]
	return record, exists
}

// Predictions 获取全部已缓存的预测记录
func (s *Store) Predictions() []PredictionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]PredictionRecord, 0, len(s.predictions))
	for _, record := range s.predictions {
		records = append(records, record)
	}
	return records
}

// Stats 获取仓库统计信息
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"draws":       len(s.draws),
		"fetched_at":  s.fetchedAt,
		"ttl":         s.ttl,
		"predictions": len(s.predictions),
	}
}

// copyDraws 返回历史切片副本，避免调用方持有内部引用
func (s *Store) copyDraws() []lottery.Draw {
	if len(s.draws) == 0 {
		return nil
	}
	draws := make([]lottery.Draw, len(s.draws))
	copy(draws, s.draws)
	return draws
}
