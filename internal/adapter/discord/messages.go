package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/communityops/partnerbot/internal/domain"
)

type messageResponse struct {
	Content string `json:"content"`
	Embeds  []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Fields      []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	} `json:"embeds"`
}

// ResolveText fetches each referenced message and returns the concatenated
// plain text plus embed text (title, description, field name/value pairs,
// url), newline-joined. An unresolvable message contributes an empty string
// rather than an error; only whole-boundary failures (every fetch failing
// at transport level) surface as domain.ErrContentUnavailable.
func (c *Client) ResolveText(ctx context.Context, channelRef string, messageRefs []string) (string, error) {
	if len(messageRefs) == 0 {
		return "", nil
	}

	var (
		parts     []string
		transport int
	)
	for _, ref := range messageRefs {
		text, err := c.fetchMessageText(ctx, channelRef, ref)
		if err != nil {
			transport++
			c.log.WarnContext(ctx, "message fetch failed",
				slog.String("channel", channelRef),
				slog.String("message", ref),
				slog.String("error", err.Error()),
			)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	if transport == len(messageRefs) {
		return "", fmt.Errorf("resolve channel %s: %w", channelRef, domain.ErrContentUnavailable)
	}
	return strings.Join(parts, "\n"), nil
}

// fetchMessageText returns the flattened text of one message. A 404 (deleted
// message) is a normal empty result.
func (c *Client) fetchMessageText(ctx context.Context, channelRef, messageRef string) (string, error) {
	path := "/channels/" + url.PathEscape(channelRef) + "/messages/" + url.PathEscape(messageRef)
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return "", err
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("message %s: unexpected status %d", messageRef, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("message %s: read body: %w", messageRef, err)
	}

	var msg messageResponse
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", fmt.Errorf("message %s: decode json: %w", messageRef, err)
	}

	return flattenMessage(msg), nil
}

func flattenMessage(msg messageResponse) string {
	var parts []string
	if msg.Content != "" {
		parts = append(parts, msg.Content)
	}
	for _, e := range msg.Embeds {
		if e.Title != "" {
			parts = append(parts, e.Title)
		}
		if e.Description != "" {
			parts = append(parts, e.Description)
		}
		for _, f := range e.Fields {
			if f.Name != "" {
				parts = append(parts, f.Name)
			}
			if f.Value != "" {
				parts = append(parts, f.Value)
			}
		}
		if e.URL != "" {
			parts = append(parts, e.URL)
		}
	}
	return strings.Join(parts, "\n")
}
