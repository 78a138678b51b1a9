package journal

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeTags normalizes user-typed tags: lowercase, leading "#" stripped,
// internal whitespace collapsed to hyphens, duplicates removed, capped at
// MaxTags. Blank tags are dropped.
func SanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		t = strings.TrimPrefix(t, "#")
		t = whitespaceRe.ReplaceAllString(t, "-")
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)

		if len(out) >= MaxTags {
			break
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
