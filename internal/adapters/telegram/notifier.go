package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/internal/adapters/config"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

// Notifier delivers consensus alerts to a Telegram chat. It consumes
// ConsensusResult values as immutable handoffs from the engine.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	cfg    *config.TelegramConfig
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{
		api:    bot,
		chatID: cfg.ChatID,
		cfg:    cfg,
	}, nil
}

// SendConsensusAlert sends a consensus result to the configured chat,
// subject to the alert gating flags
func (n *Notifier) SendConsensusAlert(result *models.ConsensusResult) error {
	if !n.shouldAlert(result) {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, n.formatResult(result))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send consensus alert: %w", err)
	}

	return nil
}

// shouldAlert applies the configured gating flags
func (n *Notifier) shouldAlert(result *models.ConsensusResult) bool {
	if result.Degraded {
		return n.cfg.AlertOnDegraded
	}
	if result.AgreementLevel == models.StrongDisagreement {
		return n.cfg.AlertOnDisagreement
	}
	if result.HybridValidationTriggered {
		return n.cfg.AlertOnHybrid
	}
	return true
}

// formatResult renders the result as a plain-text alert
func (n *Notifier) formatResult(result *models.ConsensusResult) string {
	emoji := recommendationEmoji(result.FinalRecommendation)

	text := fmt.Sprintf(
		"%s %s — %s\nConfidence: %.1f%%\nAgreement: %s\nScout %.1f / Refiner %.1f\nTime: %s",
		emoji,
		result.Symbol,
		result.FinalRecommendation,
		result.ConsensusConfidence,
		result.AgreementLevel,
		result.ScoutScore,
		result.RefinerScore,
		result.CreatedAt.Format(time.RFC3339),
	)

	if result.HybridValidationTriggered {
		text += "\n⚠️ Hybrid validation lowered confidence"
	}
	if result.RiskWarning != "" {
		text += "\n⚠️ " + result.RiskWarning
	}
	if result.Degraded {
		text += "\n🛑 Degraded: " + result.DegradedReason
	}

	return text
}

func recommendationEmoji(rec models.Recommendation) string {
	switch rec {
	case models.RecommendationBuy:
		return "🟢"
	case models.RecommendationSell:
		return "🔴"
	default:
		return "⚪"
	}
}
