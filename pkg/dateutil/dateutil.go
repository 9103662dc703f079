package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDate is returned when a month or day is outside its valid range.
var ErrInvalidDate = errors.New("invalid date")

// KeyLayout is the canonical layout of date keys (zero-padded YYYY-MM-DD).
const KeyLayout = "2006-01-02"

// Tokyo is the single civil calendar every date is evaluated in.
// Japan has observed no daylight saving since 1951, so a fixed zone is exact.
var Tokyo = time.FixedZone("JST", 9*60*60)

var looseKey = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// Date is a civil calendar date without time of day. Its methods assume a
// valid date; build one with NewDate or ParseKey.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date after validating month and day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// FromTime returns the Tokyo calendar date of t.
func FromTime(t time.Time) Date {
	y, m, d := t.In(Tokyo).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns today's date in Tokyo.
func Today() Date {
	return FromTime(time.Now())
}

// Validate rejects months outside 1-12 and days outside the month.
func (d Date) Validate() error {
	if err := validMonth(d.Month); err != nil {
		return err
	}
	if n := daysInMonth(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d out of range for %d-%02d", ErrInvalidDate, d.Day, d.Year, int(d.Month))
	}
	return nil
}

// Key returns the canonical YYYY-MM-DD key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return d.Key()
}

// Time returns midnight UTC of the date. Only the calendar fields are meaningful.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week of the date.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysInMonth returns the length of the date's month.
func (d Date) DaysInMonth() int {
	return daysInMonth(d.Year, d.Month)
}

// AddDays returns the date delta days later (earlier when delta is negative).
func (d Date) AddDays(delta int) Date {
	y, m, day := time.Date(d.Year, d.Month, d.Day+delta, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func validMonth(month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, int(month))
	}
	return nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOf returns the weekday of the given civil date (Sunday = 0).
func WeekdayOf(year int, month time.Month, day int) (time.Weekday, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// DaysInMonth returns the number of days in the month.
func DaysInMonth(year int, month time.Month) (int, error) {
	if err := validMonth(month); err != nil {
		return 0, err
	}
	return daysInMonth(year, month), nil
}

// AddDays shifts a valid civil date by delta days.
func AddDays(year int, month time.Month, day, delta int) (Date, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return d.AddDays(delta), nil
}

// NthWeekdayOfMonth returns the day of month of the n-th occurrence of weekday.
// Example: NthWeekdayOfMonth(2025, time.January, time.Monday, 2) = 13.
// An occurrence past the end of the month is ErrInvalidDate.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (int, error) {
	if err := validMonth(month); err != nil {
		return 0, err
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return 0, fmt.Errorf("%w: weekday %d out of range", ErrInvalidDate, int(weekday))
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: occurrence %d must be positive", ErrInvalidDate, n)
	}

	first := Date{Year: year, Month: month, Day: 1}.Weekday()
	delta := (7 + int(weekday) - int(first)) % 7
	day := 1 + delta + (n-1)*7
	if day > daysInMonth(year, month) {
		return 0, fmt.Errorf("%w: no occurrence %d of %v in %d-%02d", ErrInvalidDate, n, weekday, year, int(month))
	}
	return day, nil
}

// IsWeekend returns true for Saturday and Sunday.
func IsWeekend(weekday time.Weekday) bool {
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseKey parses a date key. Unpadded months and days are accepted.
func ParseKey(s string) (Date, error) {
	m := looseKey.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return NewDate(year, time.Month(month), day)
}

// NormalizeKey returns the canonical zero-padded form of a date key.
func NormalizeKey(s string) (string, error) {
	d, err := ParseKey(s)
	if err != nil {
		return "", err
	}
	return d.Key(), nil
}

// ParseYearMonth parses "YYYY-MM" (or "YYYY-M").
func ParseYearMonth(s string) (int, time.Month, error) {
	d, err := ParseKey(s + "-1")
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not YYYY-MM", ErrInvalidDate, s)
	}
	return d.Year, d.Month, nil
}
