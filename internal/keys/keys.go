package keys

import (
	"strings"
)

// TerritorySlug produces a canonical board identifier from a territory's
// display name. Behavior: trims, lower-cases and replaces spaces with
// hyphens. Suitable for stable IDs referenced by clients and snapshots.
func TerritorySlug(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	return s
}
