package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// Notifier delivers review-completion events to whatever real-time push
// system sits outside this service. Delivery is best-effort; a failed
// notification never fails the review that produced it.
type Notifier interface {
	ReviewCompleted(ctx context.Context, card models.Card, response models.Response) error
}

// Noop discards all events. Used when no webhook is configured.
type Noop struct{}

func (Noop) ReviewCompleted(context.Context, models.Card, models.Response) error {
	return nil
}

// WebhookClient POSTs review events to a configured URL as JSON.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Default().WithPrefix("notify"),
	}
}

type reviewEvent struct {
	Event        string    `json:"event"`
	CardID       int64     `json:"card_id"`
	GroupID      int64     `json:"group_id"`
	Response     string    `json:"response"`
	NextReviewAt time.Time `json:"next_review_at"`
}

func (c *WebhookClient) ReviewCompleted(ctx context.Context, card models.Card, response models.Response) error {
	log := logger.FromContext(ctx).WithPrefix("notify").WithField("card_id", card.ID)

	payload, err := json.Marshal(reviewEvent{
		Event:        "review.completed",
		CardID:       card.ID,
		GroupID:      card.GroupID,
		Response:     string(response),
		NextReviewAt: card.NextReviewAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create webhook request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("webhook delivery failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("webhook response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("webhook rejected event: status=%d, body=%s", resp.StatusCode, string(body))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
