// Package youtube extracts canonical video identifiers from the URL shapes
// editors paste into the admin dashboard.
package youtube

import (
	"regexp"
	"strings"
)

const IDLength = 11

// Order matters: the first pattern that matches wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtu\.be/([\w-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:.*&)?v=([\w-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube\.com/embed/([\w-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/([\w-]{11})`),
}

// ExtractID returns the 11-character video id contained in raw. The check is
// purely syntactic.
func ExtractID(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(trimmed); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}
