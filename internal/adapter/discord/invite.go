package discord

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/communityops/partnerbot/internal/domain"
)

// inviteResponse is the subset of the invite lookup payload the auditor
// inspects. nsfw_level above zero marks an age-restricted destination.
type inviteResponse struct {
	Code  string `json:"code"`
	Guild struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		NSFWLevel int    `json:"nsfw_level"`
	} `json:"guild"`
}

// Verify classifies one invite code via GET /invites/{code}?with_counts=true.
//
//   - 404 or 400: EXPIRED — the code is permanently unusable.
//   - 2xx: VALID, with NSFW set from the destination's nsfw_level.
//   - anything else (timeout, network error, 5xx, 429): TRANSIENT_ERROR,
//     meaning "cannot confirm this run"; the caller must not flag on it.
//
// The returned error is non-nil only for request construction failures;
// transport-level trouble is folded into the transient outcome so a flaky
// dependency degrades classifications instead of failing the run.
func (c *Client) Verify(ctx context.Context, code domain.InviteCode) (domain.Verification, error) {
	req, err := c.newRequest(ctx, "/invites/"+url.PathEscape(code.String())+"?with_counts=true")
	if err != nil {
		return domain.Verification{Status: domain.VerificationTransient}, err
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.WarnContext(ctx, "invite lookup transport failure",
			slog.String("code", code.String()),
			slog.String("error", err.Error()),
		)
		return domain.Verification{Status: domain.VerificationTransient}, nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return domain.Verification{Status: domain.VerificationExpired}, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return domain.Verification{Status: domain.VerificationTransient}, nil
		}
		var payload inviteResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			c.log.WarnContext(ctx, "invite lookup decode failed",
				slog.String("code", code.String()),
				slog.String("error", err.Error()),
			)
			return domain.Verification{Status: domain.VerificationTransient}, nil
		}
		return domain.Verification{
			Status: domain.VerificationValid,
			NSFW:   payload.Guild.NSFWLevel > 0,
		}, nil

	default:
		c.log.WarnContext(ctx, "invite lookup unexpected status",
			slog.String("code", code.String()),
			slog.Int("status", resp.StatusCode),
		)
		return domain.Verification{Status: domain.VerificationTransient}, nil
	}
}
