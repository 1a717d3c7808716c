package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// PushbulletEndpoint is the Pushbullet API used to create pushes.
const PushbulletEndpoint = "https://api.pushbullet.com/v2/pushes"

// PushbulletChannel sends the message as a note push to every device on the account.
type PushbulletChannel struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type pushbulletNote struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewPushbulletChannel creates a Pushbullet channel for the given access token.
func NewPushbulletChannel(apiKey string) *PushbulletChannel {
	return &PushbulletChannel{
		apiKey:   apiKey,
		endpoint: PushbulletEndpoint,
		client:   cleanhttp.DefaultPooledClient(),
	}
}

// Name returns "pushbullet".
func (p *PushbulletChannel) Name() string {
	return "pushbullet"
}

// Send creates a note push titled Title.
func (p *PushbulletChannel) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(pushbulletNote{Type: "note", Title: Title, Body: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building pushbullet request: %w", err)
	}
	req.Header.Set("Access-Token", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return doRequest(p.client, req, p.Name())
}
