package slug

import "strings"

// Make derives a URL-safe slug from a display title: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
