package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Period selects the bucket granularity for BucketKey.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DurationMinutes returns the whole-minute duration between start and end.
// A nil end yields 0; an end before start is clamped to 0.
func DurationMinutes(start time.Time, end *time.Time) int {
	if end == nil {
		return 0
	}
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// HoursLabel formats a signed minute count as [-]HH:MM, zero-padded,
// with the sign printed only for negative values.
func HoursLabel(minutes int) string {
	abs := minutes
	sign := ""
	if minutes < 0 {
		abs = -minutes
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, abs/60, abs%60)
}

// BucketKey derives the calendar bucket identifier for a timestamp.
// Week keys follow the ISO-8601 rule: the week belongs to the year of
// its Thursday. The zero time maps to "invalid".
func BucketKey(t time.Time, period Period) string {
	if t.IsZero() {
		return "invalid"
	}
	utc := t.UTC()

	switch period {
	case PeriodDay:
		return utc.Format("2006-01-02")
	case PeriodWeek:
		day := StartOfDay(utc)
		dayNum := int(day.Weekday())
		if dayNum == 0 {
			dayNum = 7
		}
		thursday := day.AddDate(0, 0, 4-dayNum)
		yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		week := int(math.Ceil((thursday.Sub(yearStart).Hours()/24 + 1) / 7))
		return fmt.Sprintf("%d-KW%02d", thursday.Year(), week)
	case PeriodMonth:
		return utc.Format("2006-01")
	case PeriodYear:
		return utc.Format("2006")
	default:
		return "unknown"
	}
}

// StartOfDay truncates a timestamp to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay moves a timestamp to the last nanosecond of its UTC day.
func EndOfDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// CountWorkdays counts Monday-Friday calendar dates between rangeStart
// and rangeEnd inclusive. It is a plain calendar scan; public holidays
// are not excluded.
func CountWorkdays(rangeStart, rangeEnd time.Time) int {
	cursor := StartOfDay(rangeStart)
	end := StartOfDay(rangeEnd)

	count := 0
	for !cursor.After(end) {
		switch cursor.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return count
}
