package predictor

import (
	"fmt"
	"math/rand"
	"time"

	"megasena-bot/internal/config"
	"megasena-bot/internal/lottery"
)

// 预测方法名称
const (
	MethodStatistical = "statistical"
	MethodML          = "ml"
	MethodHybrid      = "hybrid"
)

// Result 一次预测的结果
type Result struct {
	Method        string
	Ticket        lottery.Ticket
	TargetContest int
	Scores        []float64 // 每个位置模型在保留集上的R²（仅ML路径）
	Degraded      bool      // 混合方法退化为单一方法
	Notice        string
	GeneratedAt   time.Time
}

// Predictor 预测算法接口
type Predictor interface {
	// Predict 根据从旧到新有序的历史数据进行预测
	Predict(history []lottery.Draw) (*Result, error)

	// Name 获取算法名称
	Name() string

	// MinHistorySize 获取所需的最少历史期数
	MinHistorySize() int
}

// Manager 预测器注册与调度
type Manager struct {
	predictors map[string]Predictor
}

// NewManager 创建预测器管理器并注册三种预测方法
func NewManager(cfg *config.Prediction, rng *rand.Rand) *Manager {
	repairer := NewTicketRepairer(rng)
	statistical := NewStatisticalPredictor(cfg)
	ml := NewMLPredictor(cfg, repairer)
	hybrid := NewHybridPredictor(statistical, ml, repairer)

	manager := &Manager{predictors: make(map[string]Predictor)}
	manager.Register(statistical)
	manager.Register(ml)
	manager.Register(hybrid)
	return manager
}

// Register 注册预测器
func (m *Manager) Register(p Predictor) {
	m.predictors[p.Name()] = p
}

// Get 获取指定名称的预测器
func (m *Manager) Get(name string) (Predictor, error) {
	p, exists := m.predictors[name]
	if !exists {
		return nil, fmt.Errorf("predictor not found: %s", name)
	}
	return p, nil
}

// Predict 使用指定方法进行预测
func (m *Manager) Predict(name string, history []lottery.Draw) (*Result, error) {
	p, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Predict(history)
}

// Available 获取可用的预测方法列表
func (m *Manager) Available() []string {
	names := make([]string, 0, len(m.predictors))
	for name := range m.predictors {
		names = append(names, name)
	}
	return names
}

// nextContest 根据有序历史推算下一期期号
func nextContest(history []lottery.Draw) int {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1].Contest + 1
}
