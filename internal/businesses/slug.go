package businesses

import (
	"fmt"
	"regexp"
	"strings"
)

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleanRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NextSlugCandidate returns the slug to try at the given attempt number.
// Attempt 0 is the base slug itself, later attempts append a counter.
func NextSlugCandidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt+1)
}
