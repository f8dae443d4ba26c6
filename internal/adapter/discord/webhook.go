package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/communityops/partnerbot/internal/domain"
)

// WebhookSink posts flag reports to a platform webhook. Delivery is
// best-effort: the caller logs failures and the run is never affected.
type WebhookSink struct {
	webhookURL string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWebhookSink creates a sink for the given webhook URL. An empty URL
// yields a sink that drops every report (useful for dry runs).
func NewWebhookSink(webhookURL string, timeout time.Duration, logger *slog.Logger) *WebhookSink {
	return &WebhookSink{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "webhook"),
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Deliver posts one human-readable flag report.
func (s *WebhookSink) Deliver(ctx context.Context, flag domain.AuditFlag, jumpLink string) error {
	if s.webhookURL == "" {
		s.log.DebugContext(ctx, "webhook not configured, dropping report",
			slog.String("record", flag.RecordID.String()),
		)
		return nil
	}

	body, err := json.Marshal(webhookPayload{Content: formatReport(flag, jumpLink)})
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// formatReport renders one flag as a reviewer-facing message.
func formatReport(flag domain.AuditFlag, jumpLink string) string {
	var b strings.Builder
	b.WriteString("**Partnership audit flag**\n")
	fmt.Fprintf(&b, "Owner: <@%s>\n", flag.OwnerID)

	if len(flag.ManagerIDs) > 0 {
		mentions := make([]string, len(flag.ManagerIDs))
		for i, id := range flag.ManagerIDs {
			mentions[i] = "<@" + id + ">"
		}
		fmt.Fprintf(&b, "Manager: %s\n", strings.Join(mentions, ", "))
	} else {
		b.WriteString("Manager: unresolved\n")
	}

	b.WriteString("Reasons:\n")
	for _, r := range flag.Reasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	fmt.Fprintf(&b, "Record: %s", jumpLink)
	return b.String()
}
