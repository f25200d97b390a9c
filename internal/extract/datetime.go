package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var tzPattern = regexp.MustCompile(`\(([^)]*)\)`)

// tzZones maps the timezone abbreviations that show up on intake emails to
// IANA zones. Abbreviations are ambiguous in general; these are the US and
// India zones the form actually receives.
var tzZones = map[string]string{
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"IST": "Asia/Kolkata",
	"GMT": "UTC",
	"UTC": "UTC",
	"BST": "Europe/London",
	"CET": "Europe/Berlin",
	"EET": "Europe/Helsinki",
}

// NormalizeDateTime parses an interview datetime of the form
// "March 3, 2024 3:00 PM (EST)" into a UTC instant. Both the datetime text
// and the parenthesized timezone token must be present; any parse failure
// reports false so callers can keep the raw string instead.
func NormalizeDateTime(raw string) (time.Time, bool) {
	m := tzPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return time.Time{}, false
	}
	tz := strings.ToUpper(strings.TrimSpace(raw[m[2]:m[3]]))
	dtText := strings.TrimSpace(raw[:m[0]])
	if tz == "" || dtText == "" {
		return time.Time{}, false
	}

	zone, ok := tzZones[tz]
	if !ok {
		return time.Time{}, false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(dtText, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

var integerToken = regexp.MustCompile(`\d+`)

// Years pulls the first integral token out of a freeform experience value
// such as "7+ years in Java". Absence of a digit is not an error, the field
// is simply unset.
func Years(raw string) (int, bool) {
	tok := integerToken.FindString(raw)
	if tok == "" {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Age derives whole years between a freeform birth date and now. Implausible
// results are discarded along with unparseable input.
func Age(rawBirthDate string, now time.Time) (int, bool) {
	t, err := dateparse.ParseAny(strings.TrimSpace(rawBirthDate))
	if err != nil {
		return 0, false
	}
	years := now.Year() - t.Year()
	if now.YearDay() < t.YearDay() {
		years--
	}
	if years < 0 || years > 120 {
		return 0, false
	}
	return years, true
}
