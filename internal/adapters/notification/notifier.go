// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/daytrack/internal/config"
	"github.com/xvierd/daytrack/internal/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message)
}

// NotifyDayComplete displays a notification when every task of a day is done.
func (n *Notifier) NotifyDayComplete(day, totalDays int) error {
	title := "✅ Day Complete!"
	message := fmt.Sprintf("Day %d of %d is done. Keep the streak going!", day, totalDays)
	return n.Notify(title, message)
}

// NotifyChallengeComplete displays a notification when the whole challenge is done.
func (n *Notifier) NotifyChallengeComplete(totalDays int) error {
	title := "🏆 Challenge Complete!"
	message := fmt.Sprintf("You finished all %d days. Incredible work!", totalDays)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
