package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type webhookNotifier struct {
	endpoint   string
	httpClient *http.Client
}

// NewWebhookNotifier posts booking notifications to an external webhook.
// An empty endpoint selects the noop notifier.
func NewWebhookNotifier(endpoint string) domain.BookingNotifier {
	if endpoint == "" {
		return NewNoopNotifier()
	}
	return &webhookNotifier{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (n *webhookNotifier) NotifyBooked(ctx context.Context, notification domain.BookingNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send booking notification",
			slog.String("interview_id", notification.InterviewID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		slog.ErrorContext(ctx, "unexpected status code from notification webhook",
			slog.String("interview_id", notification.InterviewID),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	slog.DebugContext(ctx, "booking notification delivered",
		slog.String("interview_id", notification.InterviewID),
		slog.String("interviewer_id", notification.InterviewerID),
	)
	return nil
}
