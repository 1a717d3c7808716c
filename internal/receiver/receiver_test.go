// Package receiver_test tests webhook authentication, payload handling and
// graceful shutdown.
// Related: internal/receiver/receiver.go
// Tags: receiver, webhook, http, gin
package receiver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cli-notifier/li/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// displayRecorder is a notify.Channel that records what it was asked to show.
type displayRecorder struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (d *displayRecorder) Name() string { return "desktop" }

func (d *displayRecorder) Send(_ context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message)
	return d.err
}

func (d *displayRecorder) shown() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}

// syncBuffer is a bytes.Buffer safe to read while a server writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func postWebhook(t *testing.T, h http.Handler, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWebhook(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		auth       string
		body       string
		displayErr error
		wantStatus int
		wantShown  bool
		wantBody   string
	}{
		"accepted": {
			auth: "Bearer s3cret", body: `{"text":"build done"}`,
			wantStatus: http.StatusOK, wantShown: true, wantBody: `{"status":"success"}`,
		},
		"missing authorization": {
			body:       `{"text":"build done"}`,
			wantStatus: http.StatusUnauthorized,
		},
		"wrong secret": {
			auth: "Bearer nope", body: `{"text":"build done"}`,
			wantStatus: http.StatusUnauthorized,
		},
		"not a bearer scheme": {
			auth: "Basic s3cret", body: `{"text":"build done"}`,
			wantStatus: http.StatusUnauthorized,
		},
		"malformed json": {
			auth: "Bearer s3cret", body: `{"text":`,
			wantStatus: http.StatusBadRequest,
		},
		"missing text": {
			auth: "Bearer s3cret", body: `{"message":"build done"}`,
			wantStatus: http.StatusBadRequest,
		},
		"display failure": {
			auth: "Bearer s3cret", body: `{"text":"build done"}`, displayErr: errors.New("no daemon"),
			wantStatus: http.StatusInternalServerError, wantShown: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			display := &displayRecorder{err: tt.displayErr}
			var out bytes.Buffer
			srv := New(Options{Secret: "s3cret", Out: &out, Display: display})

			rec := postWebhook(t, srv.Handler(), tt.auth, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantShown {
				assert.Equal(t, []string{"build done"}, display.shown())
				assert.Equal(t, "Received webhook payload: build done\n", out.String())
			} else {
				assert.Empty(t, display.shown())
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestWebhook_NoDisplay(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	srv := New(Options{Secret: "s3cret", Out: &out})

	rec := postWebhook(t, srv.Handler(), "Bearer s3cret", `{"text":"hi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Received webhook payload: hi\n", out.String())
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	srv := New(Options{Secret: "s3cret"})

	tests := map[string]struct {
		method     string
		path       string
		wantStatus int
	}{
		"health":         {method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		"unknown path":   {method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		"get on webhook": {method: http.MethodGet, path: "/webhook", wantStatus: http.StatusNotFound},
		"post elsewhere": {method: http.MethodPost, path: "/hook", wantStatus: http.StatusNotFound},
		"head on health": {method: http.MethodHead, path: "/health", wantStatus: http.StatusNotFound},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// The receiver must accept exactly what li's webhook channel sends.
func TestWebhook_AcceptsWebhookChannel(t *testing.T) {
	t.Parallel()

	display := &displayRecorder{}
	srv := New(Options{Secret: "s3cret", Display: display})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ch := notify.NewWebhookChannel(ts.URL+"/webhook", "s3cret")
	message := notify.FormatMessage([]string{"make", "build"}, "exit status: 0")
	require.NoError(t, ch.Send(context.Background(), message))
	assert.Equal(t, []string{message}, display.shown())

	wrong := notify.NewWebhookChannel(ts.URL+"/webhook", "other")
	var statusErr *notify.StatusError
	require.ErrorAs(t, wrong.Send(context.Background(), message), &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var out syncBuffer
	srv := New(Options{Secret: "s3cret", Out: &out})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	body, err := json.Marshal(map[string]string{"text": "over the wire"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/webhook", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.Equal(t, "Received webhook payload: over the wire\n", out.String())

	_, err = net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	assert.Error(t, err, "listener should be closed after shutdown")
}

func TestServe_ReturnsListenerErrors(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = New(Options{Secret: "s3cret"}).Serve(context.Background(), ln)
	assert.Error(t, err)
}
