package notify

import (
	"github.com/cli-notifier/li/internal/config"
)

// FromSettings builds a Manager holding one channel per present notifier
// block, in the order desktop, webhook, pushbullet.
func FromSettings(s config.Settings, opts ...ManagerOption) *Manager {
	opts = append([]ManagerOption{WithSendTimeout(s.NotifyTimeout)}, opts...)
	m := NewManager(opts...)

	n := s.Notifiers
	if n == nil {
		return m
	}
	if n.Desktop != nil {
		m.Add(NewDesktopChannel())
	}
	if n.Webhook != nil {
		m.Add(NewWebhookChannel(n.Webhook.URL, n.Webhook.Secret))
	}
	if n.Pushbullet != nil {
		m.Add(NewPushbulletChannel(n.Pushbullet.APIKey))
	}
	return m
}
