package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// CallRecord records a single request received by a WebhookServer.
type CallRecord struct {
	Method    string
	Path      string
	Header    http.Header
	Body      string
	Timestamp time.Time
}

// WebhookServerBuilder provides a fluent API for configuring a fake
// notification endpoint.
type WebhookServerBuilder struct {
	responses []serverResponse
	t         *testing.T
}

type serverResponse struct {
	status int
	body   string
	delay  time.Duration
}

// NewWebhookServerBuilder creates a builder. Unconfigured requests get 200.
func NewWebhookServerBuilder(t *testing.T) *WebhookServerBuilder {
	t.Helper()

	return &WebhookServerBuilder{t: t}
}

// WithStatus queues a response with the given status code.
func (b *WebhookServerBuilder) WithStatus(status int) *WebhookServerBuilder {
	b.responses = append(b.responses, serverResponse{status: status})
	return b
}

// ThenStatus queues another response for the next request.
func (b *WebhookServerBuilder) ThenStatus(status int) *WebhookServerBuilder {
	return b.WithStatus(status)
}

// WithBody sets the body of the last queued response.
func (b *WebhookServerBuilder) WithBody(body string) *WebhookServerBuilder {
	if len(b.responses) > 0 {
		b.responses[len(b.responses)-1].body = body
	}
	return b
}

// WithDelay delays the last queued response (for timeout testing).
func (b *WebhookServerBuilder) WithDelay(d time.Duration) *WebhookServerBuilder {
	if len(b.responses) > 0 {
		b.responses[len(b.responses)-1].delay = d
	}
	return b
}

// Build starts the server. It is closed by t.Cleanup.
func (b *WebhookServerBuilder) Build() *WebhookServer {
	s := &WebhookServer{responses: b.responses}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	b.t.Cleanup(s.server.Close)
	return s
}

// WebhookServer records requests and answers with queued responses.
type WebhookServer struct {
	server    *httptest.Server
	mu        sync.Mutex
	responses []serverResponse
	index     int
	calls     []CallRecord
}

// URL returns the server's base URL.
func (s *WebhookServer) URL() string {
	return s.server.URL
}

func (s *WebhookServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.calls = append(s.calls, CallRecord{
		Method:    r.Method,
		Path:      r.URL.Path,
		Header:    r.Header.Clone(),
		Body:      string(body),
		Timestamp: time.Now(),
	})
	resp := serverResponse{status: http.StatusOK}
	if s.index < len(s.responses) {
		resp = s.responses[s.index]
		s.index++
	}
	s.mu.Unlock()

	if resp.delay > 0 {
		select {
		case <-time.After(resp.delay):
		case <-r.Context().Done():
			return
		}
	}
	w.WriteHeader(resp.status)
	io.WriteString(w, resp.body)
}

// GetCalls returns all recorded requests.
func (s *WebhookServer) GetCalls() []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]CallRecord, len(s.calls))
	copy(result, s.calls)
	return result
}

// GetCallCount returns the number of requests received.
func (s *WebhookServer) GetCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// AssertCallCount verifies the number of requests received.
func (s *WebhookServer) AssertCallCount(t *testing.T, expected int) {
	t.Helper()

	if got := s.GetCallCount(); got != expected {
		t.Errorf("expected %d requests, got %d", expected, got)
	}
}

// AssertReceived verifies that some request body contained substr.
func (s *WebhookServer) AssertReceived(t *testing.T, substr string) {
	t.Helper()

	calls := s.GetCalls()
	for _, call := range calls {
		if strings.Contains(call.Body, substr) {
			return
		}
	}

	t.Errorf("expected a request body containing %q, but was not found in %d requests", substr, len(calls))
}

// Reset clears recorded requests and rewinds the response queue.
func (s *WebhookServer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = nil
	s.index = 0
}
