package utils

import (
	"strings"

	"github.com/google/uuid"
)

var azReplacer = strings.NewReplacer(
	"ə", "e", "ö", "o", "ü", "u", "ı", "i", "ğ", "g", "ş", "s", "ç", "c",
	"Ə", "e", "Ö", "o", "Ü", "u", "İ", "i", "Ğ", "g", "Ş", "s", "Ç", "c",
)

// Slugify builds a URL slug from an Azerbaijani title with a short random
// suffix to keep slugs unique without a retry loop.
func Slugify(title string) string {
	s := azReplacer.Replace(strings.ToLower(strings.TrimSpace(title)))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "advert"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug + "-" + uuid.NewString()[:8]
}
