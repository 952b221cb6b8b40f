package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
)

var _ service.Notifier = (*EventLogger)(nil)

// EventLogger posts payout events to the operator log chat. It does nothing
// when LOG_TELEGRAM_CHAT_ID is unset.
type EventLogger struct {
	sender MessageSender
	cfg    *config.Config
	async  bool
}

func NewEventLogger(sender MessageSender, cfg *config.Config) *EventLogger {
	return &EventLogger{sender: sender, cfg: cfg, async: true}
}

type LogType string

const (
	LogTypePayout LogType = "payout"
	LogTypeOffer  LogType = "offer"
)

func (l *EventLogger) Log(logType LogType, message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}
	if l.async {
		go l.send(logType, message)
		return
	}
	l.send(logType, message)
}

func (l *EventLogger) send(logType LogType, message string) {
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.TelegramLogTimeout)
	defer cancel()

	if err := SendLongMessage(ctx, l.sender, l.cfg.LogTelegramChatID, message, l.topicID(logType)); err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *EventLogger) CustomPayoutCreated(offer domain.Offer, influencer domain.Influencer, cp domain.CustomPayout) {
	msg := fmt.Sprintf("🎯 *Custom Payout Created*\n\n*Offer:* %s\n*Influencer:* %s (%s)\n*Base:* %s\n*Custom:* %s\n*Time:* %s",
		EscapeMarkdown(offer.Title),
		EscapeMarkdown(influencer.Name), EscapeMarkdown(influencer.Email),
		FormatPayout(offer.BasePayout),
		FormatPayout(cp.Payout),
		cp.CreatedAt.Format(time.DateTime))
	l.Log(LogTypePayout, msg)
}

func (l *EventLogger) CustomPayoutDeleted(offerID, influencerID uuid.UUID) {
	msg := fmt.Sprintf("🗑 *Custom Payout Deleted*\n\n*Offer:* `%s`\n*Influencer:* `%s`",
		offerID, influencerID)
	l.Log(LogTypePayout, msg)
}

func (l *EventLogger) OfferDeleted(offer domain.Offer) {
	msg := fmt.Sprintf("❌ *Offer Deleted*\n\n*Offer:* %s\n*ID:* `%s`\n*Base:* %s",
		EscapeMarkdown(offer.Title), offer.ID, FormatPayout(offer.BasePayout))
	l.Log(LogTypeOffer, msg)
}

func (l *EventLogger) topicID(logType LogType) int {
	switch logType {
	case LogTypePayout:
		return l.cfg.LogTopicPayouts
	case LogTypeOffer:
		return l.cfg.LogTopicOffers
	default:
		return 0
	}
}
