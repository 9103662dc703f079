package attendance

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hyaku122/kintai-final/pkg/dateutil"
)

// ErrMalformedTime is returned for a time that is not hour:minute.
var ErrMalformedTime = errors.New("malformed time")

// 9:30, 09:30, 18:05
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "H:MM" or "HH:MM" on a 24-hour clock.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 {
		return Clock{}, fmt.Errorf("%w: hour %d out of range", ErrMalformedTime, hour)
	}
	if minute > 59 {
		return Clock{}, fmt.Errorf("%w: minute %d out of range", ErrMalformedTime, minute)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// MustClock is ParseClock for constants; it panics on malformed input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the Tokyo wall-clock time of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	t = t.In(dateutil.Tokyo)
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Compare returns -1, 0 or +1 as c is before, equal to or after o.
func (c Clock) Compare(o Clock) int {
	switch a, b := c.Minutes(), o.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// clockPtr parses s, returning nil for empty or malformed input.
func clockPtr(s string) *Clock {
	if s == "" {
		return nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return nil
	}
	return &c
}
