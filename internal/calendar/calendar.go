package calendar

import (
	"sort"
	"sync"
	"time"

	"github.com/hyaku122/kintai-final/internal/holiday"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
)

// Badge labels used when a day has no holiday name.
const (
	BadgeCompanyHoliday = "会社休日"
	BadgeSunday         = "日"
	BadgeSaturday       = "土"
	BadgeWeekday        = "平日"
)

var weekdayJa = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayJa returns the one-character Japanese weekday name.
func WeekdayJa(wd time.Weekday) string {
	return weekdayJa[wd]
}

// CompanyHolidays is the set of company-specific days off, keyed by YYYY-MM-DD.
type CompanyHolidays interface {
	Contains(key string) bool
}

// DayMeta describes a calendar day. It is derived, never stored.
type DayMeta struct {
	Date             dateutil.Date `json:"-"`
	Key              string        `json:"date"`
	Weekday          time.Weekday  `json:"weekday"`
	WeekdayJa        string        `json:"weekdayJa"`
	IsHoliday        bool          `json:"isHoliday"`
	HolidayName      string        `json:"holidayName,omitempty"`
	IsCompanyHoliday bool          `json:"isCompanyHoliday"`
	IsWeekend        bool          `json:"isWeekend"`
	BadgeText        string        `json:"badgeText"`
}

// IsOffDay reports whether the day is a weekend, a legal holiday or a company holiday.
func (m DayMeta) IsOffDay() bool {
	return m.IsWeekend || m.IsHoliday || m.IsCompanyHoliday
}

// IsPlannedWorkday reports whether the day counts toward planned working days.
func (m DayMeta) IsPlannedWorkday() bool {
	return !m.IsOffDay()
}

// ClassifyDay validates the date and computes its metadata.
// A nil set means no company holidays.
func ClassifyDay(year int, month time.Month, day int, set CompanyHolidays) (DayMeta, error) {
	return Classify(dateutil.Date{Year: year, Month: month, Day: day}, set)
}

// Classify computes the metadata of d. An invalid date is ErrInvalidDate.
func Classify(d dateutil.Date, set CompanyHolidays) (DayMeta, error) {
	name, err := holiday.Resolve(d)
	if err != nil {
		return DayMeta{}, err
	}
	wd := d.Weekday()
	key := d.Key()

	meta := DayMeta{
		Date:             d,
		Key:              key,
		Weekday:          wd,
		WeekdayJa:        WeekdayJa(wd),
		IsHoliday:        name != "",
		HolidayName:      name,
		IsCompanyHoliday: set != nil && set.Contains(key),
		IsWeekend:        dateutil.IsWeekend(wd),
	}

	switch {
	case meta.IsCompanyHoliday:
		meta.BadgeText = BadgeCompanyHoliday
	case meta.IsHoliday:
		meta.BadgeText = name
	case wd == time.Sunday:
		meta.BadgeText = BadgeSunday
	case wd == time.Saturday:
		meta.BadgeText = BadgeSaturday
	default:
		meta.BadgeText = BadgeWeekday
	}

	return meta, nil
}

// MonthInfo is the calendar of one month.
type MonthInfo struct {
	Year            int        `json:"year"`
	Month           time.Month `json:"month"`
	WorkDays        int        `json:"workDays"`
	Weekends        int        `json:"weekends"`
	Holidays        int        `json:"holidays"`
	CompanyHolidays int        `json:"companyHolidays"`
	Days            []DayMeta  `json:"days"`
}

// Month classifies every day of the month.
// A weekend legal holiday counts as a holiday, not a weekend.
func Month(year int, month time.Month, set CompanyHolidays) (*MonthInfo, error) {
	first, err := dateutil.NewDate(year, month, 1)
	if err != nil {
		return nil, err
	}

	n := first.DaysInMonth()
	info := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayMeta, 0, n),
	}

	for day := 1; day <= n; day++ {
		meta, err := Classify(dateutil.Date{Year: year, Month: month, Day: day}, set)
		if err != nil {
			return nil, err
		}
		info.Days = append(info.Days, meta)

		switch {
		case meta.IsPlannedWorkday():
			info.WorkDays++
		case meta.IsHoliday:
			info.Holidays++
		case meta.IsCompanyHoliday && !meta.IsWeekend:
			info.CompanyHolidays++
		default:
			info.Weekends++
		}
	}

	return info, nil
}

// HolidaySet is an in-memory CompanyHolidays safe for concurrent use.
type HolidaySet struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewHolidaySet builds a set from date keys. Keys are normalized; invalid keys are dropped.
func NewHolidaySet(keys ...string) *HolidaySet {
	s := &HolidaySet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		_ = s.Add(k)
	}
	return s
}

// Contains reports membership of a canonical key.
func (s *HolidaySet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Add normalizes the key and adds it.
func (s *HolidaySet) Add(key string) error {
	k, err := dateutil.NormalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.keys[k] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Remove deletes the key and reports whether it was present.
func (s *HolidaySet) Remove(key string) bool {
	k, err := dateutil.NormalizeKey(key)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[k]; !ok {
		return false
	}
	delete(s.keys, k)
	return true
}

// Keys returns the sorted keys.
func (s *HolidaySet) Keys() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Len returns the number of keys.
func (s *HolidaySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
