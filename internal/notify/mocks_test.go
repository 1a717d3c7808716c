// Package notify_test provides a recording Channel for dispatch tests.
// Related: internal/notify/notify.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"sync"
)

// MockChannel records every Send call and returns a configured error.
type MockChannel struct {
	mu sync.Mutex

	name     string
	SendErr  error
	SendFunc func(ctx context.Context, message string) error

	Messages  []string
	CallCount int
}

// NewMockChannel creates a mock channel that succeeds by default.
func NewMockChannel(name string) *MockChannel {
	return &MockChannel{name: name, Messages: make([]string, 0)}
}

// WithError makes Send fail with err.
func (m *MockChannel) WithError(err error) *MockChannel {
	m.SendErr = err
	return m
}

// WithSendFunc replaces Send's behavior.
func (m *MockChannel) WithSendFunc(fn func(ctx context.Context, message string) error) *MockChannel {
	m.SendFunc = fn
	return m
}

func (m *MockChannel) Name() string {
	return m.name
}

func (m *MockChannel) Send(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Messages = append(m.Messages, message)
	m.CallCount++

	if m.SendFunc != nil {
		return m.SendFunc(ctx, message)
	}
	return m.SendErr
}

// recordingObserver captures observer callbacks as "event:name" strings.
type recordingObserver struct {
	events []string
}

func (o *recordingObserver) ChannelStarted(name string)   { o.events = append(o.events, "start:"+name) }
func (o *recordingObserver) ChannelSucceeded(name string) { o.events = append(o.events, "ok:"+name) }
func (o *recordingObserver) ChannelFailed(name string, _ error) {
	o.events = append(o.events, "fail:"+name)
}
