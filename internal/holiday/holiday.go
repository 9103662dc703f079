// Package holiday resolves Japanese public holidays under the National Holiday Act:
// primary holidays from an ordered rule table, then substitute holidays, then
// citizen's holidays.
package holiday

import (
	"time"

	"github.com/hyaku122/kintai-final/pkg/dateutil"
)

// maxSubstituteWalk bounds the backward search for a Sunday holiday.
const maxSubstituteWalk = 7

var (
	substituteEffective = dateutil.Date{Year: 1973, Month: time.April, Day: 12}
	citizensEffective   = dateutil.Date{Year: 1985, Month: time.December, Day: 27}
)

// Entry is a resolved holiday.
type Entry struct {
	Date dateutil.Date `json:"-"`
	Key  string        `json:"date"`
	Name string        `json:"name"`
}

// Primary returns the name of the primary holiday on d, or "".
func Primary(d dateutil.Date) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return primary(d), nil
}

// Resolve returns the holiday name of d, or "" for an ordinary day.
func Resolve(d dateutil.Date) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return resolve(d), nil
}

// NameOf validates the date and resolves it.
func NameOf(year int, month time.Month, day int) (string, error) {
	return Resolve(dateutil.Date{Year: year, Month: month, Day: day})
}

// IsHoliday reports whether d is a holiday of any kind.
func IsHoliday(d dateutil.Date) (bool, error) {
	name, err := Resolve(d)
	return name != "", err
}

func primary(d dateutil.Date) string {
	for _, r := range rules {
		if r.Matches(d.Year, d.Month, d.Day) {
			return r.Name
		}
	}
	return ""
}

func resolve(d dateutil.Date) string {
	if name := primary(d); name != "" {
		return name
	}
	if isSubstitute(d) {
		return Substitute
	}
	if isCitizens(d) {
		return Citizens
	}
	return ""
}

// isSubstitute walks back over consecutive holidays looking for a Sunday that
// is itself a primary holiday.
func isSubstitute(d dateutil.Date) bool {
	if d.Before(substituteEffective) || d.Weekday() == time.Sunday || primary(d) != "" {
		return false
	}

	for back := 1; back <= maxSubstituteWalk; back++ {
		prev := d.AddDays(-back)
		name := primary(prev)
		if name == "" && !isCitizens(prev) {
			return false
		}
		if name != "" && prev.Weekday() == time.Sunday {
			return true
		}
	}
	return false
}

func isCitizens(d dateutil.Date) bool {
	if d.Before(citizensEffective) || d.Weekday() == time.Sunday || primary(d) != "" {
		return false
	}
	return primary(d.AddDays(-1)) != "" && primary(d.AddDays(1)) != ""
}

// InYear lists every holiday of the year in date order.
func InYear(year int) []Entry {
	var out []Entry
	d := dateutil.Date{Year: year, Month: time.January, Day: 1}
	for d.Year == year {
		if name := resolve(d); name != "" {
			out = append(out, Entry{Date: d, Key: d.Key(), Name: name})
		}
		d = d.AddDays(1)
	}
	return out
}
