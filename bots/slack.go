package bots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tavern-social/tavern/pkg/robusthttp"
)

type SlackWebhookBody struct {
	Text string `json:"text"`
}

// Posts run summaries to a slack channel via an "incoming webhook". The webhook must be already configured in the slack workplace.
type SlackNotifier struct {
	WebhookURL string
	Client     *http.Client
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Client:     robusthttp.NewClient(robusthttp.WithMaxRetries(2)),
	}
}

func (s *SlackNotifier) Send(ctx context.Context, msg string) error {
	body, err := json.Marshal(SlackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("slack webhook POST request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(respBody) != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}

func (s *SlackNotifier) NotifyReport(ctx context.Context, r *Report) error {
	return s.Send(ctx, r.Summary())
}
