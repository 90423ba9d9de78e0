package bgg

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// notRankedSentinel is the literal text the service substitutes for an
// absent rank or rating value.
const notRankedSentinel = "Not Ranked"

// atoiOr coerces a numeric attribute, substituting def for empty strings,
// known sentinels and anything else that fails to parse.
func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" || s == notRankedSentinel {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// atofOr is atoiOr for float attributes.
func atofOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == notRankedSentinel {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// isDigits reports whether s is a non-empty, purely numeric string. Poll
// options such as "4+" are category labels, not player counts.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// primaryName returns the name entry tagged "primary", falling back to the
// first entry, then to "Unknown".
func primaryName(names []xmlNameElem) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return "Unknown"
}

// shortenName derives a compact display name: everything before the first
// colon, collapsed to initials when still longer than 20 characters.
func shortenName(name string) string {
	short := name
	if i := strings.Index(short, ":"); i >= 0 {
		short = short[:i]
	}
	if len(short) > 20 {
		var initials strings.Builder
		for _, word := range strings.Fields(short) {
			initials.WriteString(word[:1])
		}
		short = initials.String()
	}
	return short
}

// gameURL builds the canonical page URL for a game id.
func gameURL(id int) string {
	return "https://boardgamegeek.com/boardgame/" + strconv.Itoa(id)
}

// parseXML unmarshals XML data into a value of type T.
func parseXML[T any](body []byte, errMsg string) (*T, error) {
	var result T
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, newParseError(errMsg, err)
	}
	return &result, nil
}

// anyToInt coerces a JSON value that may arrive as number or string.
func anyToInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// anyToFloat coerces a JSON value that may arrive as number or string.
func anyToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
