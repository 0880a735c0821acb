package notify

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
)

// Discord embed colors per notification variant
const (
	colorInfo    = 0x3498db
	colorSuccess = 0x2ecc71
	colorError   = 0xe74c3c
)

// DiscordNotifier posts notifications to a Discord channel webhook. Webhook
// execution needs no bot token, only the webhook ID and secret.
type DiscordNotifier struct {
	session      *discordgo.Session
	webhookID    string
	webhookToken string
}

// NewDiscordNotifier creates a webhook-backed notifier.
func NewDiscordNotifier(webhookID, webhookToken string) (*DiscordNotifier, error) {
	// An empty token session is enough for webhook execution.
	session, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{
		session:      session,
		webhookID:    webhookID,
		webhookToken: webhookToken,
	}, nil
}

// Notify implements Notifier. Delivery runs in the background; webhook
// failures are logged and dropped.
func (d *DiscordNotifier) Notify(ctx context.Context, n domain.Notification) {
	go func() {
		params := &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       n.Title,
				Description: n.Description,
				Color:       variantColor(n.Variant),
			}},
		}
		if _, err := d.session.WebhookExecute(d.webhookID, d.webhookToken, false, params); err != nil {
			logger.FromContext(context.Background()).Warn("Discord webhook delivery failed", "error", err)
		}
	}()
}

func variantColor(v domain.NotificationVariant) int {
	switch v {
	case domain.NotifySuccess:
		return colorSuccess
	case domain.NotifyError:
		return colorError
	default:
		return colorInfo
	}
}
