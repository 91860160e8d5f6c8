// internal/catalog/links.go
package catalog

import (
	"regexp"
	"strings"
)

const (
	driveHost       = "drive.google.com"
	driveDirectView = "https://drive.google.com/uc?export=view&id="
)

// driveFileID matches ".../d/<id>/..." or "...id=<id>" up to '&' or end of string.
var driveFileID = regexp.MustCompile(`/d/(.*?)/|id=(.*?)(?:&|$)`)

// NormalizeCoverURL turns a raw cover reference into a directly fetchable URL.
// It returns false when there is no reference at all. Drive share links are
// rewritten to the direct-view form; anything else is returned unchanged.
func NormalizeCoverURL(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	if !strings.Contains(raw, driveHost) {
		return raw, true
	}

	m := driveFileID.FindStringSubmatch(raw)
	if m == nil {
		return raw, true
	}
	id := m[1]
	if id == "" {
		id = m[2]
	}
	if id == "" {
		return raw, true
	}
	return driveDirectView + id, true
}
