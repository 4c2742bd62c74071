package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// payload is the minimal Discord webhook body.
type payload struct {
	Content string `json:"content"`
}

// Notifier posts alert messages to a Discord-compatible webhook.
// Delivery is best effort: every failure is logged and swallowed, so a
// flaky webhook can never abort a pipeline run.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Notifier. An empty webhook URL disables delivery;
// Send then logs a warning and returns.
func New(webhookURL string, timeout time.Duration) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		// Discord throttles webhooks; one message per second keeps
		// consecutive alerts under its limit.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Send delivers one message to the webhook.
func (n *Notifier) Send(message string) {
	if n.webhookURL == "" {
		log.Warn().Msg("no webhook URL configured, skipping notification")
		return
	}

	data, err := json.Marshal(payload{Content: message})
	if err != nil {
		log.Warn().Err(err).Msg("encoding webhook payload failed")
		return
	}

	if err := n.limiter.Wait(context.Background()); err != nil {
		log.Warn().Err(err).Msg("webhook rate limiter failed")
		return
	}

	req, err := http.NewRequest("POST", n.webhookURL, bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Msg("building webhook request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("sending webhook notification failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		log.Warn().Int("status", resp.StatusCode).Msg("webhook returned unexpected status")
	}
}
