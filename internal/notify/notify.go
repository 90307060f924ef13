package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SMSGateway delivers reminder texts through the company SMS provider's
// HTTP API.
type SMSGateway struct {
	url    string
	apiKey string
	client *http.Client
}

// NewSMSGateway creates a notifier against the given gateway endpoint
func NewSMSGateway(url, apiKey string) *SMSGateway {
	return &SMSGateway{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes reminders to the server log instead of sending them.
// Used when no SMS gateway is configured (local development).
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, phone, message string) error {
	log.Printf("SMS to %s: %s", phone, message)
	return nil
}
