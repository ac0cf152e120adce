package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CityFromSlug converts a URL slug into a city name, e.g. "new-delhi"
// becomes "New Delhi".
func CityFromSlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// SlugFromCity is the inverse of CityFromSlug for building links.
func SlugFromCity(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(city)), "-"))
}
