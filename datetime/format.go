package datetime

import (
	"fmt"
	"time"
)

// DateToDateString formats t's date part as "YYYY-MM-DD" (hyphenated) or
// "YYYYMMDD" (compact).
func DateToDateString(t time.Time, hyphenated bool) string {
	u := t.UTC()
	if hyphenated {
		return fmt.Sprintf("%04d-%02d-%02d", u.Year(), u.Month(), u.Day())
	}
	return fmt.Sprintf("%04d%02d%02d", u.Year(), u.Month(), u.Day())
}

// DateToTimeString formats t's time-of-day part as "HH:MM:SS.sss[Z]"
// (hyphenated) or "HHMMSS.sss[Z]" (compact). zulu controls whether a UTC
// offset renders as "Z" (true) or "+00:00"/"+0000" (false).
func DateToTimeString(t time.Time, hyphenated, zulu bool) string {
	u := t.UTC()
	ms := u.Nanosecond() / 1_000_000

	var clock string
	if hyphenated {
		clock = fmt.Sprintf("%02d:%02d:%02d.%03d", u.Hour(), u.Minute(), u.Second(), ms)
	} else {
		clock = fmt.Sprintf("%02d%02d%02d.%03d", u.Hour(), u.Minute(), u.Second(), ms)
	}
	return clock + offsetSuffix(hyphenated, zulu)
}

// DateToDatetimeString formats t as a full ISO-8601 datetime, hyphenated
// or compact, with "Z" or an explicit zero offset per zulu.
func DateToDatetimeString(t time.Time, hyphenated, zulu bool) string {
	return DateToDateString(t, hyphenated) + "T" + DateToTimeString(t, hyphenated, zulu)
}

func offsetSuffix(hyphenated, zulu bool) string {
	if zulu {
		return "Z"
	}
	if hyphenated {
		return "+00:00"
	}
	return "+0000"
}
