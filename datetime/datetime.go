// Package datetime implements ISO-8601 date/time/datetime parsing and
// formatting for IO's annotated `d'…'`, `t'…'`, `dt'…'` literals, in both
// hyphenated and compact forms (§4.2).
package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// anchorDate is the date a time-only value is anchored to, per §4.2.
var anchorDate = struct{ Y, M, D int }{1900, 1, 1}

var (
	hyphenDateTimeRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}(?::?\d{2})?)?$`)
	compactDateTimeRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}\d{0,2})?$`)

	hyphenDateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	compactDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)

	hyphenTimeRe  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}(?::?\d{2})?)?$`)
	compactTimeRe = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}\d{0,2})?$`)
)

// ParseDateTime parses a full ISO-8601 date-time, hyphenated or compact.
// It returns (time, false) when the text does not match either grammar.
func ParseDateTime(s string) (time.Time, bool) {
	if m := hyphenDateTimeRe.FindStringSubmatch(s); m != nil {
		return buildTime(m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	}
	if m := compactDateTimeRe.FindStringSubmatch(s); m != nil {
		return buildTime(m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	}
	return time.Time{}, false
}

// ParseDate parses a date-only value, anchored at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	var m []string
	if m = hyphenDateRe.FindStringSubmatch(s); m == nil {
		m = compactDateRe.FindStringSubmatch(s)
	}
	if m == nil {
		return time.Time{}, false
	}
	return buildTime(m[1], m[2], m[3], "00", "00", "00", "", "")
}

// ParseTime parses a time-only value, anchored to 1900-01-01 UTC unless
// an explicit offset is present.
func ParseTime(s string) (time.Time, bool) {
	var m []string
	if m = hyphenTimeRe.FindStringSubmatch(s); m != nil {
		return buildTime(fmt.Sprint(anchorDate.Y), "01", "01", m[1], m[2], m[3], m[4], m[5])
	}
	if m = compactTimeRe.FindStringSubmatch(s); m != nil {
		return buildTime(fmt.Sprint(anchorDate.Y), "01", "01", m[1], m[2], m[3], m[4], m[5])
	}
	return time.Time{}, false
}

func buildTime(ys, mos, ds, hs, mis, ss, ms, tz string) (time.Time, bool) {
	y, err1 := strconv.Atoi(ys)
	mo, err2 := strconv.Atoi(mos)
	d, err3 := strconv.Atoi(ds)
	h, err4 := strconv.Atoi(hs)
	mi, err5 := strconv.Atoi(mis)
	s, err6 := strconv.Atoi(ss)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
		return time.Time{}, false
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 || s > 60 {
		return time.Time{}, false
	}

	nanos := 0
	if ms != "" {
		padded := (ms + "000000000")[:9]
		n, err := strconv.Atoi(padded)
		if err != nil {
			return time.Time{}, false
		}
		nanos = n
	}

	loc := time.UTC
	if tz != "" && tz != "Z" && tz != "z" {
		off, ok := parseOffset(tz)
		if !ok {
			return time.Time{}, false
		}
		loc = time.FixedZone(tz, off)
	}

	t := time.Date(y, time.Month(mo), d, h, mi, s, nanos, loc)
	return t.UTC(), true
}

// parseOffset parses "+HH:MM", "+HHMM", or "+HH" into a signed seconds offset.
func parseOffset(tz string) (int, bool) {
	if len(tz) < 3 {
		return 0, false
	}
	sign := 1
	switch tz[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, false
	}
	rest := strings.ReplaceAll(tz[1:], ":", "")
	if len(rest) != 2 && len(rest) != 4 {
		return 0, false
	}
	hh, err := strconv.Atoi(rest[:2])
	if err != nil || hh > 23 {
		return 0, false
	}
	mm := 0
	if len(rest) == 4 {
		mm, err = strconv.Atoi(rest[2:4])
		if err != nil || mm > 59 {
			return 0, false
		}
	}
	return sign * (hh*3600 + mm*60), true
}
