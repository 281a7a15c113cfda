package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// feishuMessage is the text-message payload for a Feishu custom bot webhook.
type feishuMessage struct {
	MsgType string        `json:"msg_type"`
	Content feishuContent `json:"content"`
}

type feishuContent struct {
	Text string `json:"text"`
}

// feishuResponse is the webhook's result envelope; a non-zero code is an
// error even on HTTP 200.
type feishuResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// FeishuWebhook delivers reports to a Feishu group via a custom bot webhook.
type FeishuWebhook struct {
	webhookURL string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFeishuWebhook creates a FeishuWebhook for the given webhook URL.
func NewFeishuWebhook(webhookURL string, logger zerolog.Logger) *FeishuWebhook {
	return &FeishuWebhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("component", "feishu").Logger(),
	}
}

// Send posts the report as a text message, framed with a title and a
// generation timestamp.
func (f *FeishuWebhook) Send(ctx context.Context, reportText string) error {
	framed := fmt.Sprintf("Daily Standup Report\n%s\n\nGenerated at %s",
		reportText, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))

	payload, err := json.Marshal(feishuMessage{
		MsgType: "text",
		Content: feishuContent{Text: framed},
	})
	if err != nil {
		return fmt.Errorf("encoding feishu message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating feishu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to feishu webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("feishu webhook returned status %d: %s", resp.StatusCode, body)
	}

	var result feishuResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding feishu response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("feishu API error %d: %s", result.Code, result.Msg)
	}

	f.logger.Debug().Msg("report delivered to feishu")
	return nil
}
