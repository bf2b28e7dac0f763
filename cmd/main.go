package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"megasena-bot/internal/api"
	"megasena-bot/internal/cache"
	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/predictor"
	"megasena-bot/internal/telegram"
)

// App 应用程序主结构
type App struct {
	config       *config.Config
	store        *cache.Store
	apiClient    *api.Client
	predictorMgr *predictor.Manager
	telegramBot  *telegram.Bot

	// 控制通道
	stopChannel chan bool
	wg          sync.WaitGroup

	// 错误状态跟踪（避免重复日志）
	lastAPIError string
}

// NewApp 创建应用程序实例
func NewApp(configPath string) (*App, error) {
	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}

	// 初始化日志
	logger.InitLogger(cfg.App.LogLevel)
	fmt.Println("🚀 启动Mega-Sena分析机器人...")

	// 初始化内存数据仓库
	store := cache.NewStore(cfg.App.CacheTTL)
	fmt.Println("✅ 内存数据仓库初始化完成")

	// 初始化API客户端
	apiClient := api.NewClient(&cfg.API)

	// 初始化预测器管理器（补号随机源按启动时间播种）
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	predictorMgr := predictor.NewManager(&cfg.Prediction, rng)

	// 初始化Telegram机器人
	telegramBot, err := telegram.NewBot(&cfg.Telegram, store, predictorMgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %v", err)
	}
	fmt.Println("✅ Telegram机器人连接成功")

	app := &App{
		config:       cfg,
		store:        store,
		apiClient:    apiClient,
		predictorMgr: predictorMgr,
		telegramBot:  telegramBot,
		stopChannel:  make(chan bool),
	}

	fmt.Println("🎯 应用程序初始化完成")
	return app, nil
}

// Start 启动应用程序
func (a *App) Start() error {
	fmt.Println("🔄 启动所有服务...")

	// 初始化历史数据
	if err := a.refreshHistory(); err != nil {
		logger.Warnf("Failed to initialize draw history: %v", err)
		// 网络故障时回退到最后一次已知数据，没有就继续等下一轮刷新
		if fallback := a.store.LastKnown(); len(fallback) > 0 {
			fmt.Printf("⚠️  使用过期历史数据继续运行（%d期）\n", len(fallback))
		} else {
			fmt.Println("⚠️  暂无历史数据，等待下一轮刷新")
		}
	}

	// 启动Telegram机器人
	a.telegramBot.Start()

	// 启动历史数据刷新协程
	a.wg.Add(1)
	go a.historyRefreshLoop()

	fmt.Println("✅ 所有服务启动完成")
	fmt.Println("📡 开始监控Mega-Sena开奖数据...")
	fmt.Printf("⏰ 刷新间隔: %v\n", a.config.App.RefreshInterval)
	fmt.Println("🔔 机器人仅在私聊中提供服务")
	fmt.Println("💡 按 Ctrl+C 停止程序")
	fmt.Println("")
	return nil
}

// Stop 停止应用程序
func (a *App) Stop() error {
	fmt.Println("🛑 正在停止应用程序...")

	// 发送停止信号
	close(a.stopChannel)

	// 停止Telegram机器人
	a.telegramBot.Stop()

	// 等待所有协程结束
	a.wg.Wait()

	fmt.Println("✅ 应用程序已安全停止")
	return nil
}

// refreshHistory 从公开API拉取全量开奖历史并更新内存快照
func (a *App) refreshHistory() error {
	draws, err := a.apiClient.FetchAllDraws()
	if err != nil {
		// 只在首次出错或错误类型变化时记录
		if a.lastAPIError != err.Error() {
			logger.Errorf("API fetch failed: %v", err)
			a.lastAPIError = err.Error()
		}
		return err
	}
	a.lastAPIError = "" // 清除错误状态

	previous, _ := a.store.History()
	a.store.UpdateHistory(draws)

	// 发现新开奖时打印提示
	if len(previous) > 0 && len(draws) > 0 {
		latest := draws[len(draws)-1]
		if latest.Contest > previous[len(previous)-1].Contest {
			fmt.Printf("🎯 发现新开奖: 第%d期 %v\n", latest.Contest, latest.Sorted())
		}
	}

	return nil
}

// historyRefreshLoop 历史数据刷新循环
func (a *App) historyRefreshLoop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.App.RefreshInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	for {
		select {
		case <-ticker.C:
			if err := a.refreshHistory(); err != nil {
				consecutiveErrors++
				// 只在第一次错误和每30次错误时显示（减少刷屏）
				if consecutiveErrors == 1 {
					fmt.Printf("⚠️  数据获取失败: %v\n", err)
				} else if consecutiveErrors%30 == 0 {
					fmt.Printf("❌ 连续失败 %d 次，仍在重试...\n", consecutiveErrors)
				}
			} else if consecutiveErrors > 0 {
				fmt.Printf("✅ 数据连接已恢复（失败了 %d 次）\n", consecutiveErrors)
				consecutiveErrors = 0
			}
		case <-a.stopChannel:
			return
		}
	}
}

// HealthCheck 健康检查
func (a *App) HealthCheck() map[string]interface{} {
	health := map[string]interface{}{
		"timestamp": time.Now(),
		"status":    "ok",
		"services":  map[string]interface{}{},
	}

	services := health["services"].(map[string]interface{})

	// 检查API健康状态
	if err := a.apiClient.HealthCheck(); err != nil {
		services["api"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
		health["status"] = "degraded"
	} else {
		services["api"] = map[string]interface{}{
			"status": "ok",
		}
	}

	// 检查内存仓库状态
	services["store"] = map[string]interface{}{
		"status": "ok",
		"stats":  a.store.Stats(),
	}

	// 检查Telegram Bot状态
	services["telegram"] = map[string]interface{}{
		"status": "ok",
		"info":   a.telegramBot.GetBotInfo(),
	}

	return health
}

func main() {
	// 配置文件路径
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 创建应用程序实例
	app, err := NewApp(configPath)
	if err != nil {
		fmt.Printf("❌ 应用初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 启动应用程序
	if err := app.Start(); err != nil {
		fmt.Printf("❌ 应用启动失败: %v\n", err)
		os.Exit(1)
	}

	// 设置信号处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 等待停止信号
	<-sigChan

	// 优雅关闭
	if err := app.Stop(); err != nil {
		fmt.Printf("❌ 关闭时出错: %v\n", err)
		os.Exit(1)
	}
}
