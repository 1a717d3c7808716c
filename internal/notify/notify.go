package notify

import (
	"context"
	"fmt"
	"strings"
)

// Title is the heading used by channels that show one.
const Title = "Command Completed"

// Channel delivers a text message through one transport.
// Send returns nil once the transport accepted the message; acceptance does
// not mean a person saw it. Implementations need not be safe for
// concurrent use.
type Channel interface {
	// Name identifies the channel in logs and errors (e.g., "webhook").
	Name() string

	// Send delivers message, honoring ctx cancellation where the transport allows it.
	Send(ctx context.Context, message string) error
}

// FormatMessage builds the completion message for a command and its status.
func FormatMessage(command []string, status string) string {
	return fmt.Sprintf("Command `%s` completed with status: %s", strings.Join(command, " "), status)
}

// StatusError is returned when a remote endpoint answers with a non-2xx status.
type StatusError struct {
	Channel    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Channel, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Channel, e.StatusCode)
}

// ChannelError wraps the failure of a single channel during dispatch.
type ChannelError struct {
	Channel string
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s notifier: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
