package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// MakeSlug derives a URL-safe slug from a post title: runs of characters
// outside [A-Za-z0-9-] collapse to a single dash, the result is trimmed and
// lower-cased, and the creation timestamp is appended to guarantee
// uniqueness. Slugs are assigned once and never regenerated.
func MakeSlug(title string, now time.Time) string {
	var b strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', unicode.IsDigit(r), r == '-':
			b.WriteRune(unicode.ToLower(r))
			lastDash = r == '-'
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	base := strings.Trim(b.String(), "-")
	if base == "" {
		base = "post"
	}
	return fmt.Sprintf("%s-%d", base, now.Unix())
}
