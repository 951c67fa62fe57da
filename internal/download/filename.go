package download

import "strings"

const filenameReplacement = '_'

// SanitizeTitle lowercases the title and replaces every character outside
// [a-z0-9] with an underscore, yielding a safe attachment filename stem.
func SanitizeTitle(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(filenameReplacement)
		}
	}
	return b.String()
}
