package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config 应用程序配置结构
type Config struct {
	API        API        `yaml:"api"`
	Telegram   Telegram   `yaml:"telegram"`
	App        App        `yaml:"app"`
	Prediction Prediction `yaml:"prediction"`
}

// API 外部开奖数据API配置
type API struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// Telegram Bot配置
type Telegram struct {
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// App 应用程序配置
type App struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	LogLevel        string        `yaml:"log_level"`
}

// Prediction 预测算法配置
type Prediction struct {
	HistoryWeight float64 `yaml:"history_weight"` // 全量历史频率权重
	RecentWeight  float64 `yaml:"recent_weight"`  // 近期频率权重
	RecentDraws   int     `yaml:"recent_draws"`   // 近期窗口期数
	SplitPolicy   string  `yaml:"split_policy"`   // chronological 或 random
	TrainRatio    float64 `yaml:"train_ratio"`
	Forest        Forest  `yaml:"forest"`
}

// Forest 随机森林超参数
type Forest struct {
	Trees           int   `yaml:"trees"`
	MaxDepth        int   `yaml:"max_depth"`
	MinSamplesSplit int   `yaml:"min_samples_split"`
	MinSamplesLeaf  int   `yaml:"min_samples_leaf"`
	Seed            int64 `yaml:"seed"`
}

// 训练/评估集划分策略取值
const (
	SplitChronological = "chronological"
	SplitRandom        = "random"
)

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return &config, nil
}

// DefaultPrediction 返回预测算法默认配置
func DefaultPrediction() Prediction {
	return Prediction{
		HistoryWeight: 0.7,
		RecentWeight:  0.3,
		RecentDraws:   20,
		SplitPolicy:   SplitChronological,
		TrainRatio:    0.8,
		Forest: Forest{
			Trees:           100,
			MaxDepth:        10,
			MinSamplesSplit: 5,
			MinSamplesLeaf:  2,
			Seed:            42,
		},
	}
}

// applyDefaults 填充未配置的字段
func (c *Config) applyDefaults() {
	defaults := DefaultPrediction()

	if c.Prediction.HistoryWeight == 0 && c.Prediction.RecentWeight == 0 {
		c.Prediction.HistoryWeight = defaults.HistoryWeight
		c.Prediction.RecentWeight = defaults.RecentWeight
	}
	if c.Prediction.RecentDraws == 0 {
		c.Prediction.RecentDraws = defaults.RecentDraws
	}
	if c.Prediction.SplitPolicy == "" {
		c.Prediction.SplitPolicy = defaults.SplitPolicy
	}
	if c.Prediction.TrainRatio == 0 {
		c.Prediction.TrainRatio = defaults.TrainRatio
	}
	if c.Prediction.Forest.Trees == 0 {
		c.Prediction.Forest = defaults.Forest
	}

	if c.App.RefreshInterval == 0 {
		c.App.RefreshInterval = 30 * time.Minute
	}
	if c.App.CacheTTL == 0 {
		c.App.CacheTTL = 6 * time.Hour
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
}

// validate 校验配置合法性
func (c *Config) validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	if c.Prediction.SplitPolicy != SplitChronological && c.Prediction.SplitPolicy != SplitRandom {
		return fmt.Errorf("prediction.split_policy must be %q or %q, got %q",
			SplitChronological, SplitRandom, c.Prediction.SplitPolicy)
	}
	if c.Prediction.TrainRatio <= 0 || c.Prediction.TrainRatio >= 1 {
		return fmt.Errorf("prediction.train_ratio must be in (0,1), got %v", c.Prediction.TrainRatio)
	}
	return nil
}
