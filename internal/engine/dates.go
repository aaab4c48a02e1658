package engine

import (
	"sort"
	"time"
)

const ymdLayout = "2006-01-02"

// ParseYMD parses a calendar date in YYYY-MM-DD form.
func ParseYMD(s string) (time.Time, error) {
	return time.Parse(ymdLayout, s)
}

// FormatYMD renders a time as a calendar date string.
func FormatYMD(t time.Time) string {
	return t.Format(ymdLayout)
}

// NightsRange returns the dates of every night in the half-open interval
// [checkIn, checkOut) — the checkout date itself is excluded, that night the
// room is free. Returns nil when either date is missing, unparseable, or the
// interval is empty/inverted.
func NightsRange(checkIn, checkOut string) []string {
	if checkIn == "" || checkOut == "" {
		return nil
	}
	start, err := ParseYMD(checkIn)
	if err != nil {
		return nil
	}
	end, err := ParseYMD(checkOut)
	if err != nil {
		return nil
	}
	if !start.Before(end) {
		return nil
	}
	var nights []string
	for cursor := start; cursor.Before(end); cursor = cursor.AddDate(0, 0, 1) {
		nights = append(nights, FormatYMD(cursor))
	}
	return nights
}

// IsNightOf reports whether target falls on one of the stay's nights, i.e.
// within [checkIn, checkOut).
func IsNightOf(target, checkIn, checkOut string) bool {
	for _, d := range NightsRange(checkIn, checkOut) {
		if d == target {
			return true
		}
	}
	return false
}

// NowISO renders a timestamp in the ISO 8601 form the collections use.
func NowISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// sortedKeys returns map keys in lexicographic order. The remote store
// iterates node keys in exactly this order, so using it everywhere keeps
// recomputation deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
