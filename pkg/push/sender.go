package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campusmate/reminder-api/pkg/config"
)

// HTTPSender delivers push notifications through the downstream delivery
// endpoint. Delivery is best effort; callers log failures and move on.
type HTTPSender struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSender constructs a sender from config.
func NewHTTPSender(cfg config.PushConfig) *HTTPSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type pushPayload struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// Send posts a single notification to the delivery endpoint.
func (s *HTTPSender) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(pushPayload{Token: token, Title: title, Body: body, Sound: "default"})
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
