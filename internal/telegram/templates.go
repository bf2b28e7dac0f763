package telegram

import (
	"fmt"
	"sort"
	"strings"

	"megasena-bot/internal/analyzer"
	"megasena-bot/internal/cache"
	"megasena-bot/internal/lottery"
	"megasena-bot/internal/predictor"
)

// formatPredictionMessage 格式化预测结果消息
func (b *Bot) formatPredictionMessage(result *predictor.Result, historySize int) string {
	var builder strings.Builder

	builder.WriteString("🔮 *Mega-Sena Prediction*\n\n")

	builder.WriteString(fmt.Sprintf("Method: `%s`\n", b.translateMethod(result.Method)))
	builder.WriteString(fmt.Sprintf("Target Contest: `%d`\n", result.TargetContest))
	builder.WriteString(fmt.Sprintf("Numbers: `%s`\n", result.Ticket.String()))
	builder.WriteString(fmt.Sprintf("History Used: `%d draws`\n", historySize))

	// ML路径附带每个位置模型的保留集R²
	if len(result.Scores) > 0 {
		builder.WriteString("\n📐 *Model Scores (R² per position)*\n")
		for i, score := range result.Scores {
			builder.WriteString(fmt.Sprintf("Position %d: `%.3f`\n", i+1, score))
		}
	}

	if result.Degraded {
		builder.WriteString(fmt.Sprintf("\n⚠️ *Degraded Mode*: %s\n", result.Notice))
	}

	builder.WriteString(fmt.Sprintf("\nGenerated: `%s`\n", result.GeneratedAt.Format("2006-01-02 15:04:05")))
	builder.WriteString("\n💡 *Tips*: Every combination has the same odds, play responsibly")

	return builder.String()
}

// formatFrequencyMessage 格式化频率分析消息
func (b *Bot) formatFrequencyMessage(table analyzer.FrequencyTable) string {
	var builder strings.Builder

	builder.WriteString("🔥 *Number Frequency Analysis*\n\n")

	builder.WriteString(fmt.Sprintf("Draws Analyzed: `%d`\n", table.TotalDraws))
	builder.WriteString(fmt.Sprintf("Mean Frequency: `%.1f`\n", table.Mean))
	builder.WriteString(fmt.Sprintf("Std Deviation: `%.1f`\n", table.StdDev))
	builder.WriteString(fmt.Sprintf("Variation Coefficient: `%.1f%%`\n\n", table.CV))

	builder.WriteString("🌡 *Hottest Numbers*\n")
	builder.WriteString(fmt.Sprintf("`%s`\n\n", formatNumbers(table.Hottest(10))))

	builder.WriteString("❄️ *Coldest Numbers*\n")
	builder.WriteString(fmt.Sprintf("`%s`\n\n", formatNumbers(table.Coldest(10))))

	builder.WriteString("💡 *Note*: A low variation coefficient means the draw is close to uniform")

	return builder.String()
}

// formatPatternsMessage 格式化形态分析消息
func (b *Bot) formatPatternsMessage(report analyzer.PatternReport, historySize int) string {
	var builder strings.Builder

	builder.WriteString("📐 *Draw Pattern Analysis*\n\n")

	builder.WriteString("➕ *Sum of Numbers*\n")
	builder.WriteString(fmt.Sprintf("Mean: `%.1f` | Std: `%.1f`\n", report.Sum.Mean, report.Sum.StdDev))
	builder.WriteString(fmt.Sprintf("Range: `%.0f - %.0f` | Median: `%.1f`\n\n", report.Sum.Min, report.Sum.Max, report.Sum.Median))

	builder.WriteString("↔️ *Amplitude (max - min)*\n")
	builder.WriteString(fmt.Sprintf("Mean: `%.1f` | Range: `%.0f - %.0f`\n\n", report.Amplitude.Mean, report.Amplitude.Min, report.Amplitude.Max))

	builder.WriteString("⚖️ *Even Number Distribution*\n")
	for evens, count := range report.EvenDist {
		if count == 0 {
			continue
		}
		share := float64(count) / float64(historySize) * 100
		builder.WriteString(fmt.Sprintf("%d even: `%d draws (%.1f%%)`\n", evens, count, share))
	}
	builder.WriteString(fmt.Sprintf("Mean Evens: `%.2f`\n\n", report.EvenMean))

	builder.WriteString(fmt.Sprintf("🔗 *Consecutive Runs*: `%d` found across `%d` draws\n\n", len(report.Sequences), historySize))

	builder.WriteString("💡 *Note*: 3 even + 3 odd is the most common parity split")

	return builder.String()
}

// formatReportMessage 格式化综合报告消息
func (b *Bot) formatReportMessage(history []lottery.Draw) string {
	var builder strings.Builder

	table := analyzer.Frequency(history)
	report := analyzer.Patterns(history)
	years := analyzer.ByYear(history)

	builder.WriteString("📋 *Mega-Sena Analysis Report*\n\n")

	latest := history[len(history)-1]
	builder.WriteString(fmt.Sprintf("🎱 Draws Analyzed: `%d`\n", len(history)))
	builder.WriteString(fmt.Sprintf("Latest Contest: `%d` (%s)\n\n", latest.Contest, latest.Date.Format("02/01/2006")))

	builder.WriteString("🌡 *Hot / Cold*\n")
	builder.WriteString(fmt.Sprintf("Hottest: `%s`\n", formatNumbers(table.Hottest(6))))
	builder.WriteString(fmt.Sprintf("Coldest: `%s`\n", formatNumbers(table.Coldest(6))))
	builder.WriteString(fmt.Sprintf("Variation Coefficient: `%.1f%%`\n\n", table.CV))

	builder.WriteString("📐 *Patterns*\n")
	builder.WriteString(fmt.Sprintf("Mean Sum: `%.1f` | Mean Evens: `%.2f`\n", report.Sum.Mean, report.EvenMean))
	builder.WriteString(fmt.Sprintf("Mean Amplitude: `%.1f`\n\n", report.Amplitude.Mean))

	// 只显示最近几年的滚存率，完整年表太长
	if len(years) > 0 {
		builder.WriteString("📅 *Recent Years*\n")
		start := len(years) - 3
		if start < 0 {
			start = 0
		}
		for _, year := range years[start:] {
			builder.WriteString(fmt.Sprintf("%s: `%d draws`, accumulation `%.0f%%`\n",
				year.Period, year.Draws, year.AccumulationRate*100))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("💡 *Note*: Statistics describe the past, they do not predict the future")

	return builder.String()
}

// formatLatestMessage 格式化最新开奖消息
func (b *Bot) formatLatestMessage(draw lottery.Draw) string {
	var builder strings.Builder

	builder.WriteString("🎱 *Latest Mega-Sena Draw*\n\n")

	builder.WriteString(fmt.Sprintf("Contest: `%d`\n", draw.Contest))
	builder.WriteString(fmt.Sprintf("Date: `%s`\n", draw.Date.Format("02/01/2006")))
	builder.WriteString(fmt.Sprintf("Numbers: `%s`\n", formatNumbers(draw.Sorted())))
	builder.WriteString(fmt.Sprintf("Sum: `%d` | Evens: `%d` | Amplitude: `%d`\n", draw.Sum(), draw.EvenCount(), draw.Amplitude()))

	if draw.Accumulated {
		builder.WriteString("\n💰 *Prize accumulated, no sena winner!*\n")
	}

	return builder.String()
}

// formatCheckMessage 格式化预测核对消息
func (b *Bot) formatCheckMessage(records []cache.PredictionRecord, latest lottery.Draw) string {
	var builder strings.Builder

	builder.WriteString("🎯 *Prediction Check*\n\n")
	builder.WriteString(fmt.Sprintf("Checked Against Contest: `%d`\n", latest.Contest))
	builder.WriteString(fmt.Sprintf("Drawn Numbers: `%s`\n\n", formatNumbers(latest.Sorted())))

	// 固定方法顺序，map遍历顺序不稳定
	sort.Slice(records, func(i, j int) bool {
		return records[i].Method < records[j].Method
	})

	for _, record := range records {
		match := predictor.CheckTicket(record.Ticket, latest)

		builder.WriteString(fmt.Sprintf("*%s* → `%s`\n", b.translateMethod(record.Method), record.Ticket.String()))
		if record.TargetContest != latest.Contest {
			builder.WriteString(fmt.Sprintf("   Target contest `%d` not drawn yet ⏳\n\n", record.TargetContest))
			continue
		}

		builder.WriteString(fmt.Sprintf("   Hits: `%d`", match.Count))
		if len(match.Hits) > 0 {
			builder.WriteString(fmt.Sprintf(" (`%s`)", formatNumbers(match.Hits)))
		}
		if match.Prize != "" {
			builder.WriteString(fmt.Sprintf(" 🏆 *%s!*", match.Prize))
		}
		builder.WriteString("\n\n")
	}

	builder.WriteString("💡 *Note*: Quadra needs 4 hits, quina 5 and sena all 6")

	return builder.String()
}

// translateMethod 翻译方法名称
func (b *Bot) translateMethod(method string) string {
	switch method {
	case predictor.MethodStatistical:
		return "Statistical Frequency"
	case predictor.MethodML:
		return "Regression Ensemble"
	case predictor.MethodHybrid:
		return "Hybrid"
	default:
		return method
	}
}

// formatNumbers 格式化号码列表
func formatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}
