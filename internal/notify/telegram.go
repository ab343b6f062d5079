package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lumiere-weddings/concierge/internal/models"
)

// TelegramSink posts hot-lead alerts to an operations chat.
type TelegramSink struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &TelegramSink{api: api, chatID: chatID}, nil
}

func (s *TelegramSink) NotifyHotLead(ctx context.Context, lead *models.VendorLead) error {
	msg := tgbotapi.NewMessage(s.chatID, formatLeadAlert(lead))
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}

func formatLeadAlert(lead *models.VendorLead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 Hot vendor lead (score %d)\n\n", lead.Score)
	fmt.Fprintf(&b, "Business: %s\n", lead.BusinessName)
	fmt.Fprintf(&b, "Category: %s\n", lead.Category)
	if lead.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", lead.Location)
	}
	fmt.Fprintf(&b, "Contact: %s <%s>\n", lead.ContactName, lead.ContactEmail)
	if lead.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", lead.Website)
	}
	return b.String()
}
