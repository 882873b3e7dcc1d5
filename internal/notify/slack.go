package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slack-go/slack"
)

// SlackNotifier posts fix-pack alerts to a Slack incoming webhook. The
// notifier is an optional collaborator: with no webhook configured every
// post is a silent no-op and the pipeline behaves identically.
type SlackNotifier struct {
	webhookURL string
	channel    string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewSlackNotifier constructs a notifier. An empty webhookURL disables it.
func NewSlackNotifier(webhookURL, channel string, timeout time.Duration, logger *slog.Logger) *SlackNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		timeout:    timeout,
		logger:     logger,
	}
}

// Enabled reports whether a webhook is configured.
func (n *SlackNotifier) Enabled() bool {
	return n.webhookURL != ""
}

// Post sends a plain-text message to the configured webhook. Failures are
// logged and swallowed; notification is best-effort by contract.
func (n *SlackNotifier) Post(ctx context.Context, message string) error {
	if !n.Enabled() || message == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := &slack.WebhookMessage{Text: message, Channel: n.channel}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		n.logger.Warn("slack webhook post failed", slog.Any("error", err))
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}
