package audit

import (
	"regexp"
	"strings"

	"github.com/communityops/partnerbot/internal/domain"
)

// The platform's three invite-link forms, in match priority order.
var invitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdiscord\.gg/([a-zA-Z0-9-]+)`),
	regexp.MustCompile(`(?i)\bdiscord\.com/invite/([a-zA-Z0-9-]+)`),
	regexp.MustCompile(`(?i)\bdiscordapp\.com/invite/([a-zA-Z0-9-]+)`),
}

// ExtractInviteCodes pulls every distinct invite code out of free text,
// lowercased, in first-seen order. An empty result is a normal outcome
// (handled upstream as "missing invite link"), never an error.
func ExtractInviteCodes(text string) []domain.InviteCode {
	var codes []domain.InviteCode
	seen := make(map[domain.InviteCode]struct{})

	for _, re := range invitePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			code := domain.NewInviteCode(m[1])
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}

	return codes
}

// ExtractRecordCodes extracts invite codes for one record: from its text
// first, falling back to the declared invite reference when the text yields
// nothing. The declared reference may be a full invite link or a bare code.
func ExtractRecordCodes(text string, declaredRef *string) []domain.InviteCode {
	if codes := ExtractInviteCodes(text); len(codes) > 0 {
		return codes
	}

	if declaredRef == nil {
		return nil
	}
	ref := strings.TrimSpace(*declaredRef)
	if ref == "" {
		return nil
	}

	if codes := ExtractInviteCodes(ref); len(codes) > 0 {
		return codes[:1]
	}
	return []domain.InviteCode{domain.NewInviteCode(ref)}
}
