package clashroyale

import (
	"strings"
	"time"
)

// battleTimeLayout matches the API's compact timestamp, e.g.
// "20240815T094512.000Z".
const battleTimeLayout = "20060102T150405.000Z"

// NormalizeTag upper-cases a player tag and strips the leading '#'.
func NormalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

// EscapeTag produces the URL path form of a tag. The API expects the '#'
// percent-encoded.
func EscapeTag(tag string) string {
	return "%23" + NormalizeTag(tag)
}

// ParseBattleTime parses the API's battleTime field into UTC.
func ParseBattleTime(s string) (time.Time, error) {
	return time.Parse(battleTimeLayout, s)
}
