package notify

import (
	"context"
	"time"

	"github.com/cli-notifier/li/internal/logger"
)

// Observer is told about each send attempt. It never changes dispatch
// behavior; internal/progress uses it to draw per-channel status.
type Observer interface {
	ChannelStarted(name string)
	ChannelSucceeded(name string)
	ChannelFailed(name string, err error)
}

// Manager holds the active channels and dispatches messages to them.
// The channel list is append-only. Dispatching to an empty Manager is a no-op.
type Manager struct {
	channels []Channel
	timeout  time.Duration
	observer Observer
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSendTimeout gives each channel send its own deadline. Zero or negative
// means no deadline beyond the caller's context.
func WithSendTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = d
	}
}

// WithObserver registers an observer for send attempts.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		m.observer = o
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add appends a channel. Duplicates are kept.
func (m *Manager) Add(ch Channel) {
	m.channels = append(m.channels, ch)
}

// Len returns the number of channels.
func (m *Manager) Len() int {
	return len(m.channels)
}

// Channels returns a copy of the channels in dispatch order.
func (m *Manager) Channels() []Channel {
	out := make([]Channel, len(m.channels))
	copy(out, m.channels)
	return out
}

// SendAll sends message to each channel in order, one at a time.
// It returns the first failure as a *ChannelError and does not call the
// channels after it.
func (m *Manager) SendAll(ctx context.Context, message string) error {
	for _, ch := range m.channels {
		if err := m.send(ctx, ch, message); err != nil {
			return &ChannelError{Channel: ch.Name(), Err: err}
		}
	}
	return nil
}

func (m *Manager) send(ctx context.Context, ch Channel, message string) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	log := logger.WithChannel(ch.Name())
	log.Debug("sending notification")
	if m.observer != nil {
		m.observer.ChannelStarted(ch.Name())
	}

	err := ch.Send(ctx, message)
	if err != nil {
		log.Debug("notification failed", "error", err)
	} else {
		log.Debug("notification sent")
	}

	if m.observer != nil {
		if err != nil {
			m.observer.ChannelFailed(ch.Name(), err)
		} else {
			m.observer.ChannelSucceeded(ch.Name())
		}
	}
	return err
}
