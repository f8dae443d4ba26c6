// Package audit implements the partnership audit engine: a retrospective,
// rule-based detector that scans one day's worth of partnership-promotion
// records per owner and forwards advisory flags for human review.
package audit

import (
	"regexp"
	"strings"
)

// Trailing boilerplate appended to partnership announcements. Both lines are
// dynamic (they vary per record) and must not influence text comparison.
var (
	managerLineRe  = regexp.MustCompile(`(?i)^manager:\s*.*$`)
	partneredViaRe = regexp.MustCompile(`(?i)^partnered via\b.*$`)
)

// Normalize converts line endings to \n and trims surrounding whitespace.
// It keeps the manager declaration line intact, so manager attribution
// operates on Normalize output rather than on Fingerprint output.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

// Fingerprint reduces a record's text to its comparable canonical form:
// Normalize, then strip the known trailing boilerplate lines (manager
// declaration, "partnered via" suffix) while present at the end, then trim.
//
// Idempotent: Fingerprint(Fingerprint(x)) == Fingerprint(x).
func Fingerprint(text string) string {
	lines := strings.Split(Normalize(text), "\n")

	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last == "" || managerLineRe.MatchString(last) || partneredViaRe.MatchString(last) {
			lines = lines[:len(lines)-1]
			continue
		}
		break
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
