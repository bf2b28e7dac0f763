package telegram

import (
	"fmt"

	"megasena-bot/internal/analyzer"
	"megasena-bot/internal/cache"
	"megasena-bot/internal/config"
	"megasena-bot/internal/logger"
	"megasena-bot/internal/lottery"
	"megasena-bot/internal/predictor"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot Telegram机器人
type Bot struct {
	api           *tgbotapi.BotAPI
	store         *cache.Store
	manager       *predictor.Manager
	updateChannel tgbotapi.UpdatesChannel
	stopChannel   chan bool
}

// NewBot 创建新的Telegram机器人
func NewBot(cfg *config.Telegram, store *cache.Store, manager *predictor.Manager) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}

	bot.Debug = false
	logger.Infof("Telegram bot authorized on account: %s", bot.Self.UserName)

	// 配置更新
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(cfg.Timeout.Seconds())

	updates := bot.GetUpdatesChan(u)

	return &Bot{
		api:           bot,
		store:         store,
		manager:       manager,
		updateChannel: updates,
		stopChannel:   make(chan bool),
	}, nil
}

// Start 启动机器人
func (b *Bot) Start() {
	logger.Info("Starting Telegram bot...")

	go b.handleUpdates()
	logger.Info("Telegram bot started successfully")
}

// Stop 停止机器人
func (b *Bot) Stop() {
	logger.Info("Stopping Telegram bot...")
	b.stopChannel <- true
	b.api.StopReceivingUpdates()
	logger.Info("Telegram bot stopped")
}

// handleUpdates 处理更新
func (b *Bot) handleUpdates() {
	for {
		select {
		case update := <-b.updateChannel:
			if update.Message != nil {
				// 只处理私聊消息，忽略群组消息
				if update.Message.Chat.IsPrivate() {
					go b.handleMessage(update.Message)
				}
			} else if update.CallbackQuery != nil {
				// 只处理私聊中的回调查询
				if update.CallbackQuery.Message.Chat.IsPrivate() {
					go b.handleCallbackQuery(update.CallbackQuery)
				}
			}
		case <-b.stopChannel:
			return
		}
	}
}

// handleMessage 处理消息
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// 再次确认是私聊消息
	if !message.Chat.IsPrivate() {
		return
	}

	if message.IsCommand() {
		b.handleCommand(message)
	} else {
		b.handleTextMessage(message)
	}
}

// handleCommand 处理命令
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	// 确保只在私聊中处理命令
	if !message.Chat.IsPrivate() {
		return
	}

	command := message.Command()
	chatID := message.Chat.ID

	logger.Debugf("Received private command: %s from user: %d", command, chatID)

	switch command {
	case "start":
		b.handleStartCommand(chatID)
	case "help":
		b.handleHelpCommand(chatID)
	case "predict":
		b.handlePredictCommand(chatID, predictor.MethodHybrid)
	case "statistical":
		b.handlePredictCommand(chatID, predictor.MethodStatistical)
	case "ml":
		b.handlePredictCommand(chatID, predictor.MethodML)
	case "hybrid":
		b.handlePredictCommand(chatID, predictor.MethodHybrid)
	case "frequency":
		b.handleFrequencyCommand(chatID)
	case "patterns":
		b.handlePatternsCommand(chatID)
	case "report":
		b.handleReportCommand(chatID)
	case "latest":
		b.handleLatestCommand(chatID)
	case "check":
		b.handleCheckCommand(chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Type /help to view available commands.")
	}
}

// handleStartCommand 处理开始命令
func (b *Bot) handleStartCommand(chatID int64) {
	welcomeText := `🍀 Welcome to Mega-Sena Analysis Bot!

🤖 I am your lottery analysis assistant, providing you with:
• 📊 Latest Mega-Sena results
• 🔮 Predicted tickets (statistical / ML / hybrid)
• 📈 Number frequency and pattern analysis
• 🎯 Ticket checking against actual draws

📝 Available commands:
/predict - Generate a hybrid prediction
/statistical - Frequency-based prediction
/ml - Regression ensemble prediction
/frequency - Hot and cold numbers
/patterns - Sum, parity and sequence patterns
/report - Full analysis report
/latest - Latest draw result
/check - Check cached predictions against the latest draw
/help - Help information

⚠️ Note: This bot only provides services in private chats
🎲 Mega-Sena draws are random; predictions carry no guarantee!`

	b.sendMessage(chatID, welcomeText)
}

// handleHelpCommand 处理帮助命令
func (b *Bot) handleHelpCommand(chatID int64) {
	helpText := `📖 Command Help:

/start - Start using the bot
/predict - Hybrid prediction (statistical + ML)
/statistical - Prediction from historical frequency
/ml - Prediction from per-position regression models
/hybrid - Same as /predict
/frequency - Most and least drawn numbers
/patterns - Sum, parity and consecutive-number patterns
/report - Combined analysis report
/latest - Latest draw result
/check - Compare cached predictions with the latest draw
/help - Show this help information

💡 Usage Tips:
• History is refreshed automatically from the public API
• The ML method needs at least 20 past draws
• All six numbers have equal odds; play responsibly

📞 If you have any questions, please contact the administrator.`

	b.sendMessage(chatID, helpText)
}

// handlePredictCommand 处理预测命令
func (b *Bot) handlePredictCommand(chatID int64, method string) {
	history, fresh := b.store.History()
	if len(history) == 0 {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}
	if !fresh {
		logger.Warnf("Serving prediction from stale history snapshot (%d draws)", len(history))
	}

	result, err := b.manager.Predict(method, history)
	if err != nil {
		if lottery.IsInsufficientHistory(err) {
			b.sendMessage(chatID, fmt.Sprintf("⚠️ Not enough history for the %s method yet: %v", method, err))
		} else {
			b.sendMessage(chatID, "❌ Prediction failed, please try again later.")
			logger.Errorf("Prediction failed: method=%s err=%v", method, err)
		}
		return
	}

	// 缓存预测结果，供 /check 使用
	b.store.SavePrediction(cache.PredictionRecord{
		Method:        result.Method,
		Ticket:        result.Ticket,
		TargetContest: result.TargetContest,
		Scores:        result.Scores,
		Degraded:      result.Degraded,
		Notice:        result.Notice,
		GeneratedAt:   result.GeneratedAt,
	})

	b.sendMessage(chatID, b.formatPredictionMessage(result, len(history)))
}

// handleFrequencyCommand 处理频率命令
func (b *Bot) handleFrequencyCommand(chatID int64) {
	history, _ := b.store.History()
	if len(history) == 0 {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}

	table := analyzer.Frequency(history)
	b.sendMessage(chatID, b.formatFrequencyMessage(table))
}

// handlePatternsCommand 处理形态命令
func (b *Bot) handlePatternsCommand(chatID int64) {
	history, _ := b.store.History()
	if len(history) == 0 {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}

	report := analyzer.Patterns(history)
	b.sendMessage(chatID, b.formatPatternsMessage(report, len(history)))
}

// handleReportCommand 处理报告命令
func (b *Bot) handleReportCommand(chatID int64) {
	history, _ := b.store.History()
	if len(history) == 0 {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}

	b.sendMessage(chatID, b.formatReportMessage(history))
}

// handleLatestCommand 处理最新开奖命令
func (b *Bot) handleLatestCommand(chatID int64) {
	latest, exists := b.store.Latest()
	if !exists {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}

	b.sendMessage(chatID, b.formatLatestMessage(latest))
}

// handleCheckCommand 处理核对命令
func (b *Bot) handleCheckCommand(chatID int64) {
	latest, exists := b.store.Latest()
	if !exists {
		b.sendMessage(chatID, "❌ No draw history available yet, please try again later.")
		return
	}

	records := b.store.Predictions()
	if len(records) == 0 {
		b.sendMessage(chatID, "📭 No cached predictions yet. Generate one with /predict first.")
		return
	}

	b.sendMessage(chatID, b.formatCheckMessage(records, latest))
}

// handleTextMessage 处理文本消息
func (b *Bot) handleTextMessage(message *tgbotapi.Message) {
	// 确保只在私聊中处理文本消息
	if !message.Chat.IsPrivate() {
		return
	}

	chatID := message.Chat.ID
	text := message.Text

	// 简单的智能回复
	switch text {
	case "预测", "预测号码":
		b.handlePredictCommand(chatID, predictor.MethodHybrid)
	case "最新", "最新开奖":
		b.handleLatestCommand(chatID)
	case "频率", "冷热号":
		b.handleFrequencyCommand(chatID)
	case "报告":
		b.handleReportCommand(chatID)
	default:
		b.sendMessage(chatID, "Please use commands or keywords, type /help for help.")
	}
}

// handleCallbackQuery 处理回调查询
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	// 确保只在私聊中处理回调查询
	if !callback.Message.Chat.IsPrivate() {
		return
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	logger.Debugf("Received private callback: %s from user: %d", data, chatID)

	switch data {
	case "predict_hybrid":
		b.handlePredictCommand(chatID, predictor.MethodHybrid)
	case "predict_statistical":
		b.handlePredictCommand(chatID, predictor.MethodStatistical)
	case "predict_ml":
		b.handlePredictCommand(chatID, predictor.MethodML)
	case "view_frequency":
		b.handleFrequencyCommand(chatID)
	case "view_latest":
		b.handleLatestCommand(chatID)
	}

	// 应答回调查询
	callbackResponse := tgbotapi.NewCallback(callback.ID, "")
	b.api.Request(callbackResponse)
}

// sendMessage 发送消息（仅发送给私聊）
func (b *Bot) sendMessage(chatID int64, text string) {
	// 确保只向私聊用户发送消息（正数ID）
	if chatID < 0 {
		logger.Debugf("Skipping message to group chat %d", chatID)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.api.Send(msg)
	if err != nil {
		logger.Errorf("Failed to send message to user %d: %v", chatID, err)
	}
}

// CreateInlineKeyboard 创建内联键盘
func (b *Bot) CreateInlineKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("🔮 Hybrid Prediction", "predict_hybrid"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistical", "predict_statistical"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🤖 ML", "predict_ml"),
			tgbotapi.NewInlineKeyboardButtonData("🔥 Frequency", "view_frequency"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🎱 Latest Draw", "view_latest"),
		},
	}
}

// GetBotInfo 获取机器人信息
func (b *Bot) GetBotInfo() map[string]interface{} {
	return map[string]interface{}{
		"username":        b.api.Self.UserName,
		"id":              b.api.Self.ID,
		"first_name":      b.api.Self.FirstName,
		"is_bot":          b.api.Self.IsBot,
		"can_join_groups": b.api.Self.CanJoinGroups,
	}
}
