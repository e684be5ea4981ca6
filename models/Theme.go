package models

import "strings"

const (
	ThemeDusk     = "dusk"
	ThemeDaylight = "daylight"
	ThemeMeadow   = "meadow"

	// DefaultTheme is applied when no preference has been stored.
	DefaultTheme = ThemeDusk
)

// ValidTheme reports whether value names a supported theme.
func ValidTheme(value string) bool {
	switch value {
	case ThemeDusk, ThemeDaylight, ThemeMeadow:
		return true
	default:
		return false
	}
}

// NormalizeTheme trims and lower-cases value, falling back to DefaultTheme.
func NormalizeTheme(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidTheme(normalized) {
		return normalized
	}
	return DefaultTheme
}
