package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// maxErrorBody caps how much of a failed response body ends up in errors.
const maxErrorBody = 512

// WebhookChannel POSTs the message as JSON to a URL with a bearer token.
type WebhookChannel struct {
	url    string
	secret string
	client *http.Client
}

// WebhookPayload is the JSON body sent to the webhook.
type WebhookPayload struct {
	Text string `json:"text"`
}

// NewWebhookChannel creates a webhook channel with its own pooled HTTP client.
func NewWebhookChannel(url, secret string) *WebhookChannel {
	return &WebhookChannel{
		url:    url,
		secret: secret,
		client: cleanhttp.DefaultPooledClient(),
	}
}

// Name returns "webhook".
func (w *WebhookChannel) Name() string {
	return "webhook"
}

// Send POSTs {"text": message}. Any 2xx status is success.
func (w *WebhookChannel) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(WebhookPayload{Text: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.secret)
	req.Header.Set("Content-Type", "application/json")

	return doRequest(w.client, req, w.Name())
}

// doRequest sends req and maps non-2xx responses to *StatusError.
func doRequest(client *http.Client, req *http.Request, channel string) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", channel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Channel:    channel,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
