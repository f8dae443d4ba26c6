package audit

import (
	"regexp"
	"strings"
)

var (
	managerDeclRe = regexp.MustCompile(`(?im)^manager:\s*(.+)$`)
	mentionRe     = regexp.MustCompile(`<@!?(\d+)>`)
)

// ResolveManagers determines which actors are credited for a record.
// Priority order:
//  1. mentions on "Manager: ..." declaration lines (all distinct, in order);
//  2. any generic mention token anywhere in the text;
//  3. the manager declared on the record itself.
//
// The input is Normalize output (the manager declaration line is stripped
// from the canonical fingerprint, not from the normalized text).
// An empty result means missing attribution, which the evaluator flags.
func ResolveManagers(normalized string, declared *string) []string {
	var declLines []string
	for _, line := range managerDeclRe.FindAllStringSubmatch(normalized, -1) {
		declLines = append(declLines, line[1])
	}
	if len(declLines) > 0 {
		if ids := mentionIDs(strings.Join(declLines, "\n")); len(ids) > 0 {
			return ids
		}
	}

	if ids := mentionIDs(normalized); len(ids) > 0 {
		return ids
	}

	if declared != nil && *declared != "" {
		return []string{*declared}
	}
	return nil
}

// mentionIDs extracts distinct mention IDs in first-seen order.
func mentionIDs(s string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, m := range mentionRe.FindAllStringSubmatch(s, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}
