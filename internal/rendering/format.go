// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"strings"
	"time"
)

// presentLabel is how an open-ended date is always displayed
const presentLabel = "Present"

// yearMonthLayout accepts both "2024-03" and "2024-3"
const yearMonthLayout = "2006-1"

// IsPresent reports whether a stored date token is the "present" marker, in any case.
func IsPresent(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), "present")
}

func parseYearMonth(token string) (time.Time, bool) {
	t, err := time.Parse(yearMonthLayout, strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatMonthYear renders a year-month token as "Mar 2024".
// "present" becomes "Present"; a token that does not parse is returned unchanged.
func FormatMonthYear(token string) string {
	return formatDate(token, "Jan 2006")
}

// FormatYear renders a year-month token as its year only, with the same
// "present" and fallback rules as FormatMonthYear.
func FormatYear(token string) string {
	return formatDate(token, "2006")
}

func formatDate(token, layout string) string {
	if token == "" {
		return ""
	}
	if IsPresent(token) {
		return presentLabel
	}
	t, ok := parseYearMonth(token)
	if !ok {
		return token
	}
	return t.Format(layout)
}

// FormatRange joins two formatted dates with " - ", dropping whichever side is empty.
func FormatRange(start, end string, format func(string) string) string {
	s, e := format(start), format(end)
	switch {
	case s != "" && e != "":
		return s + " - " + e
	case s != "":
		return s
	default:
		return e
	}
}

// LinkHref returns rawURL with "https://" prepended unless it already has an
// http:// or https:// scheme. A host that merely starts with "http", such as
// httpbin.org, still gets one. The stored value is not changed.
func LinkHref(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}
