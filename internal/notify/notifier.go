// Package notify is the user-facing notification sink: fire-and-forget toasts
// delivered to whatever sinks are configured. Errors are logged, never
// propagated to the game logic.
package notify

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
)

// Notifier delivers a notification. Implementations must not block the
// caller on slow transports.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// printer formats THC amounts with grouping for readability in announcements
var printer = message.NewPrinter(language.English)

// HarvestNotification builds the toast for a completed harvest.
func HarvestNotification(address string, thcProduced, quality float64) domain.Notification {
	return domain.Notification{
		Title:       "Harvest complete",
		Description: printer.Sprintf("%s harvested %.2f THC (quality %.1f)", shortAddress(address), thcProduced, quality),
		Variant:     domain.NotifySuccess,
	}
}

func shortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return fmt.Sprintf("%s…%s", address[:6], address[len(address)-4:])
}

// SlogNotifier writes notifications to the structured log. Always installed;
// richer sinks stack on top of it.
type SlogNotifier struct{}

// Notify implements Notifier.
func (SlogNotifier) Notify(ctx context.Context, n domain.Notification) {
	logger.FromContext(ctx).Info("notification",
		"title", n.Title,
		"description", n.Description,
		"variant", n.Variant)
}

// Multi fans a notification out to several sinks.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, n domain.Notification) {
	for _, sink := range m {
		sink.Notify(ctx, n)
	}
}
