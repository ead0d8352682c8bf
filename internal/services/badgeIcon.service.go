package services

import (
	"strings"
)

// DefaultBadgeIcon is returned when no table entry matches the badge name.
const DefaultBadgeIcon = "award"

type badgeIconEntry struct {
	key  string
	icon string
}

// badgeIconTable maps badge-name substrings to display icons. Order matters:
// the first matching entry wins, so more specific keys come first.
var badgeIconTable = []badgeIconEntry{
	{"founder", "crown"},
	{"admin", "shield"},
	{"moderator", "gavel"},
	{"developer", "code"},
	{"designer", "palette"},
	{"artist", "brush"},
	{"music", "music"},
	{"verified", "badge-check"},
	{"supporter", "heart"},
	{"early", "sparkles"},
	{"member", "users"},
}

// GetBadgeIcon resolves a badge name to a display icon. The lookup lowercases
// the name and returns the icon of the first table entry whose key is a
// substring of it, falling back to DefaultBadgeIcon.
func GetBadgeIcon(name string) string {
	lowered := strings.ToLower(name)

	for _, entry := range badgeIconTable {
		if strings.Contains(lowered, entry.key) {
			return entry.icon
		}
	}

	return DefaultBadgeIcon
}
