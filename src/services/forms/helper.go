package forms

import (
	"regexp"
	"strings"
)

// reservedSlugs are route names the public form path would shadow.
var reservedSlugs = map[string]bool{
	"admin":   true,
	"api":     true,
	"apply":   true,
	"login":   true,
	"logout":  true,
	"auth":    true,
	"swagger": true,
	"static":  true,
}

var (
	nonSlugChars     = regexp.MustCompile(`[^a-z0-9-]+`)
	duplicateHyphens = regexp.MustCompile(`-{2,}`)
)

// NormalizeSlug lowercases, replaces every illegal run with a hyphen, then
// strips duplicate and edge hyphens. Idempotent: normalizing an already
// normalized slug returns it unchanged.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = duplicateHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsReservedSlug reports whether a normalized slug collides with a reserved
// route name. Callers always normalize first, so the slug charset here is
// [a-z0-9-].
func IsReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}
