package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

// DesktopChannel shows a local OS notification.
// Linux goes through D-Bus (falling back to notify-send), macOS through
// terminal-notifier or osascript, Windows through toast notifications.
type DesktopChannel struct {
	notify notifyFunc
}

// NewDesktopChannel creates a desktop channel backed by beeep.
func NewDesktopChannel() *DesktopChannel {
	return &DesktopChannel{notify: beeep.Notify}
}

// Name returns "desktop".
func (d *DesktopChannel) Name() string {
	return "desktop"
}

// Send shows one notification titled Title with message as its body.
// The OS call cannot be interrupted, so ctx is only checked before it.
func (d *DesktopChannel) Send(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.notify(Title, message, ""); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}
