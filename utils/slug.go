package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL-safe identifier: accents are
// folded away, everything outside [a-z0-9] collapses to a single hyphen, and
// leading/trailing hyphens are stripped. Empty input stays empty.
func Slugify(name string) string {
	// Normalize accents
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // drop accent marks
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EffectiveSlug picks the slug persisted for a product: the trimmed manual
// override when one was typed, otherwise the name run through Slugify.
// The override is deliberately not re-normalized.
func EffectiveSlug(manual, name string) string {
	if m := strings.TrimSpace(manual); m != "" {
		return m
	}
	return Slugify(name)
}
