package date

import (
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// Resolve maps a natural-language date reference to a calendar date relative
// to today:
//
//   - "today" (and the common typo "todays") is today.
//   - "yesterday" is the day before.
//   - "last <weekday>" is the most recent strictly-past occurrence of that
//     weekday. The offset is never zero: when today is the named weekday it
//     resolves to seven days prior.
//   - "last <month>" is the 1st of the most recent past occurrence of that
//     month, in the previous year when the month is not yet past.
//
// Any other phrase yields ok=false, leaving the caller free to try a strict
// ISO date parse instead.
func Resolve(phrase string, today Date) (d Date, ok bool) {
	ref := strings.ToLower(strings.TrimSpace(phrase))

	switch ref {
	case "today", "todays":
		return today, true
	case "yesterday":
		return today.Add(-1), true
	}

	rest, found := strings.CutPrefix(ref, "last ")
	if !found {
		return Date{}, false
	}
	rest = strings.TrimSpace(rest)

	if wd, known := weekdays[rest]; known {
		back := (int(today.Weekday()) - int(wd) + 7) % 7
		if back == 0 {
			back = 7
		}
		return today.Add(-back), true
	}

	if m, known := months[rest]; known {
		year := today.Year()
		if m >= today.Month() {
			year--
		}
		return New(year, m, 1), true
	}

	return Date{}, false
}
