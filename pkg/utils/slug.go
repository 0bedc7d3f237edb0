package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile("[^a-z0-9]+")

// Slugify normalizes a display name into a route segment: lowercase, runs of
// anything outside [a-z0-9] collapsed to a single hyphen, no leading or
// trailing hyphen. Permiso endpoints pass through this at creation time so
// catalog keys stay URL-safe.
func Slugify(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
