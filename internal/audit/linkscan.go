package audit

import "regexp"

// URL-like tokens: raw http(s) and www tokens plus bare platform-invite-style
// tokens. Externally hosted images and GIFs present as URLs, so they are
// caught here too.
var urlTokenRe = regexp.MustCompile(`(?i)(?:https?://\S+|www\.\S+|\bdiscord(?:app)?\.(?:gg|com)/\S+)`)

// Anchored to the token start: an external URL that merely embeds an
// invite-link substring (a redirect or tracking parameter) is still external.
var inviteLinkRe = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?(?:discord\.gg/|discord\.com/invite/|discordapp\.com/invite/)[a-zA-Z0-9-]+`)

// HasExternalLinks reports whether the fingerprint contains any URL-like
// token that is not one of the platform's own invite-link forms.
func HasExternalLinks(fingerprint string) bool {
	for _, token := range urlTokenRe.FindAllString(fingerprint, -1) {
		if !inviteLinkRe.MatchString(token) {
			return true
		}
	}
	return false
}
