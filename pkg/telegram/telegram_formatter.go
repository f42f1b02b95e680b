package telegram

import (
	"fmt"
	"strings"
	"time"

	"stocksage/internal/analyzer"
	"stocksage/internal/entity"
	"stocksage/pkg/utils"
)

// FormatAnalysisMessage formats an analysis report into a Markdown string for Telegram.
func FormatAnalysisMessage(report *analyzer.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 **Analysis for %s**\n", report.Symbol))

	var signalIcon string
	switch report.Signal.Signal {
	case "BUY":
		signalIcon = "🟢"
	case "SELL":
		signalIcon = "🔴"
	default:
		signalIcon = "🟡"
	}
	sb.WriteString(fmt.Sprintf("%s Signal: **%s** (%.0f%% confidence)\n", signalIcon, report.Signal.Signal, report.Signal.Confidence))
	sb.WriteString(fmt.Sprintf("💰 Price: %.2f %s\n\n", report.Price, report.Currency))

	// Technical indicators
	sb.WriteString("🔧 **Technical Indicators:**\n")
	sb.WriteString(fmt.Sprintf("• RSI: %.2f\n", report.Indicators.RSI))
	sb.WriteString(fmt.Sprintf("• MACD: %.4f (signal %.4f)\n", report.Indicators.MACD, report.Indicators.MACDSignal))
	sb.WriteString(fmt.Sprintf("• EMA 9/21: %.2f / %.2f\n", report.Indicators.EMA9, report.Indicators.EMA21))
	sb.WriteString(fmt.Sprintf("• SMA 50/200: %.2f / %.2f\n", report.Indicators.SMA50, report.Indicators.SMA200))
	sb.WriteString(fmt.Sprintf("• Bollinger: %.2f / %.2f / %.2f\n\n", report.Indicators.BBLower, report.Indicators.BBMiddle, report.Indicators.BBUpper))

	if len(report.Signal.Reasons) > 0 {
		sb.WriteString("📌 **Signal Reasons:**\n")
		for _, reason := range report.Signal.Reasons {
			sb.WriteString(fmt.Sprintf("• %s\n", reason))
		}
		sb.WriteString("\n")
	}

	// Trend
	sb.WriteString(fmt.Sprintf("📈 **Trend:** %s (score %.0f/100)\n", report.TrendSummary.Direction, report.TrendSummary.Score))
	if report.Prediction != nil {
		p := report.Prediction
		sb.WriteString(fmt.Sprintf("🔮 30-day projection: %.2f → %.2f (%+.2f%%)\n", p.CurrentPrice, p.PredictedEndPrice, p.PriceChangePercent))
	}
	if report.SupportResistance != nil {
		sr := report.SupportResistance
		sb.WriteString(fmt.Sprintf("🛡 Support: %.2f | Resistance: %.2f\n", sr.SupportLevel, sr.ResistanceLevel))
	}
	sb.WriteString("\n")

	// Fundamentals
	if report.Fundamental != nil {
		f := report.Fundamental
		sb.WriteString(fmt.Sprintf("🏦 **Fundamentals:** %s (%.1f/10)\n", f.Rating, f.Score))
		for _, strength := range f.Strengths {
			sb.WriteString(fmt.Sprintf("• ✅ %s\n", strength))
		}
		for _, weakness := range f.Weaknesses {
			sb.WriteString(fmt.Sprintf("• ⚠️ %s\n", weakness))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("📅 _Analyzed at: %s_\n", utils.PrettyDate(report.AnalyzedAt)))

	return sb.String()
}

// FormatErrorAlertMessage formats an operational error notice.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(t), errType, errMsg, data)
}

// FormatPriceAlertMessage formats a triggered price alert into a Markdown string for Telegram.
func FormatPriceAlertMessage(alert *entity.PriceAlert, currentPrice float64) string {
	var sb strings.Builder

	var title, emoji string
	switch alert.Condition {
	case entity.AlertConditionAbove:
		title = "Price Above Target!"
		emoji = "🚀"
	case entity.AlertConditionBelow:
		title = "Price Below Target!"
		emoji = "⚠️"
	default:
		title = "Price Alert"
		emoji = "🔔"
	}

	sb.WriteString(fmt.Sprintf("%s [%s] %s\n", emoji, alert.Symbol, title))
	sb.WriteString(fmt.Sprintf("💰 Current: %.2f (target: %.2f)\n", currentPrice, alert.TargetPrice))
	return sb.String()
}
