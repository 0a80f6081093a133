package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date addresses one calendar day. Month is zero-based (0 = January) to keep
// stored month and date keys compatible with existing data.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

func (d Date) Validate() error {
	if d.Month < 0 || d.Month > 11 {
		return fmt.Errorf("month %d: %w", d.Month, ErrInvalidDate)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("day %d of %s: %w", d.Day, MonthKey(d.Year, d.Month), ErrInvalidDate)
	}
	return nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.Local)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) MonthKey() string { return MonthKey(d.Year, d.Month) }
func (d Date) DateKey() string  { return DateKey(d.Year, d.Month, d.Day) }

// MonthKey composes "{year}-{zero-based month}".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

// DateKey composes "{year}-{zero-based month}-{day}".
func DateKey(year, month, day int) string {
	return fmt.Sprintf("%d-%d-%d", year, month, day)
}

// SplitDateKey takes the trailing segment of a date key as the day and
// rejoins the rest as the month key.
func SplitDateKey(dateKey string) (string, int, error) {
	i := strings.LastIndex(dateKey, "-")
	if i <= 0 || i == len(dateKey)-1 {
		return "", 0, fmt.Errorf("date key %q: %w", dateKey, ErrParse)
	}
	day, err := strconv.Atoi(dateKey[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("date key %q: %w", dateKey, ErrParse)
	}
	return dateKey[:i], day, nil
}

// DaysInMonth for a zero-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first of the month with Monday as 0.
func FirstWeekday(year, month int) int {
	wd := int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
