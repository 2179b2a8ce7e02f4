package normalize

import (
	"regexp"
	"strings"
)

// Present is the open-ended end marker for ongoing date ranges.
const Present = "Present"

var monthNames = map[string]bool{
	"Jan": true, "Feb": true, "Mar": true, "Apr": true, "May": true, "Jun": true,
	"Jul": true, "Aug": true, "Sep": true, "Oct": true, "Nov": true, "Dec": true,
}

var yearRangeRe = regexp.MustCompile(`^(\d{4})\s*-\s*(\d{4})$`)

// ParseDateRange parses loosely formatted résumé date ranges. Two shapes are
// recognized:
//
//	"Mar-May 2020"      -> ("Mar 2020", "May 2020")
//	"2007-2019"         -> ("2007-01", "2019-12")
//
// An "onwards" token means the range is open-ended and the end is Present,
// e.g. "Feb onwards 2021" -> ("Feb 2021", "Present"). Unrecognized shapes
// yield ("", ""); that is a deliberate lossy fallback, not an error.
func ParseDateRange(text string) (start, end string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		return m[1] + "-01", m[2] + "-12"
	}

	return parseMonthRange(text)
}

// parseMonthRange handles "<Mon>[-<Mon>] <Year>" shapes, including the
// "onwards" open-ended variant.
func parseMonthRange(text string) (start, end string) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", ""
	}

	year := fields[len(fields)-1]
	if !isYear(year) {
		return "", ""
	}

	onwards := false
	months := make([]string, 0, 2)
	for _, f := range fields[:len(fields)-1] {
		for _, part := range strings.Split(f, "-") {
			part = strings.TrimSpace(part)
			if strings.EqualFold(part, "onwards") {
				onwards = true
				continue
			}
			if monthNames[normalizeMonth(part)] {
				months = append(months, normalizeMonth(part))
			}
		}
	}

	if len(months) == 0 {
		return "", ""
	}

	start = months[0] + " " + year
	switch {
	case onwards:
		end = Present
	case len(months) > 1:
		end = months[len(months)-1] + " " + year
	default:
		end = start
	}
	return start, end
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeMonth canonicalizes a month token to three-letter title case,
// so "march" and "MAR" both resolve to "Mar".
func normalizeMonth(s string) string {
	if len(s) < 3 {
		return s
	}
	s = s[:3]
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
