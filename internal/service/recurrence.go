package service

import (
	"regexp"
	"strconv"
	"time"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
)

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// normalizeTime validates an HH:MM 24-hour time string and zero-pads the
// hour ("9:30" becomes "09:30"). Times are kept as strings end to end so
// lexical order equals chronological order.
func normalizeTime(raw string) (string, error) {
	m := timePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", apperr.Validation("invalid time format, expected HH:MM")
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return "", apperr.Validation("invalid time format, expected HH:MM")
	}
	return twoDigits(hours) + ":" + twoDigits(minutes), nil
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func parseDate(raw, field string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid %s, expected YYYY-MM-DD", field)
	}
	return d, nil
}

// occurrenceDates expands a recurring submission into its concrete dates,
// first occurrence and boundary date inclusive.
//
// Monthly steps are anchored to the start day-of-month and clamped to the
// target month's length: Jan 31 yields Feb 29 (leap) or Feb 28, then Mar 31
// again. This replaces the native date rollover of calendar arithmetic with
// a pinned rule.
func occurrenceDates(start, end time.Time, recurringType string) ([]string, error) {
	if end.Before(start) {
		return nil, apperr.Validation("recurringEndDate must not be before date")
	}

	var dates []string
	switch recurringType {
	case model.RecurringDaily, model.RecurringWeekly:
		step := 1
		if recurringType == model.RecurringWeekly {
			step = 7
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, step) {
			dates = append(dates, d.Format(dateLayout))
		}
	case model.RecurringMonthly:
		anchorDay := start.Day()
		for n := 0; ; n++ {
			d := monthStep(start, n, anchorDay)
			if d.After(end) {
				break
			}
			dates = append(dates, d.Format(dateLayout))
		}
	default:
		return nil, apperr.Validation("invalid recurringType, expected daily, weekly or monthly")
	}
	return dates, nil
}

// monthStep returns the start date advanced by n months, clamped to the
// anchor day-of-month.
func monthStep(start time.Time, n, anchorDay int) time.Time {
	year, month, _ := start.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := anchorDay
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
