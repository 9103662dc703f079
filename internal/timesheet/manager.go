package timesheet

import (
	"fmt"
	"time"

	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/hyaku122/kintai-final/internal/holiday"
	"github.com/hyaku122/kintai-final/internal/store"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"go.uber.org/zap"
)

// RecordUpdate is a partial edit of a day. Nil fields are left alone; an
// empty Start or End clears that time.
type RecordUpdate struct {
	Kind  *string `json:"kind,omitempty"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// Manager binds the store, the pay policy and the calendar for callers
// that edit and read attendance.
type Manager struct {
	store  *store.Store
	policy attendance.Policy
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a new timesheet manager
func NewManager(st *store.Store, policy attendance.Policy, logger *zap.Logger) *Manager {
	return &Manager{
		store:  st,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Policy returns the pay policy in use.
func (m *Manager) Policy() attendance.Policy {
	return m.policy
}

// Today returns the current date in Tokyo.
func (m *Manager) Today() dateutil.Date {
	return dateutil.FromTime(m.now())
}

// Day returns the view of a date key.
func (m *Manager) Day(key string) (*DayView, error) {
	d, err := dateutil.ParseKey(key)
	if err != nil {
		return nil, err
	}
	view, err := BuildDay(d, m.store.Record, m.store.CompanyHolidays(), m.policy)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Month returns the summary of a month.
func (m *Manager) Month(year int, month time.Month) (*MonthlySummary, error) {
	summary, err := SummarizeMonth(year, month, m.store.Record, m.store.CompanyHolidays(), m.policy)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Month summarized",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("actual_days", summary.ActualWorkingDays),
		zap.Int64("total_pay", summary.TotalPay))

	return summary, nil
}

// Holidays lists the legal holidays of a year.
func (m *Manager) Holidays(year int) []holiday.Entry {
	return holiday.InYear(year)
}

// edit applies fn to the record of key. fn receives the day's metadata so it
// can check what input the day accepts.
func (m *Manager) edit(key string, fn func(rec *attendance.DayRecord, meta calendar.DayMeta) error) (*DayView, error) {
	d, err := dateutil.ParseKey(key)
	if err != nil {
		return nil, err
	}
	holidays := m.store.CompanyHolidays()
	meta, err := calendar.Classify(d, holidays)
	if err != nil {
		return nil, err
	}

	if _, err := m.store.Upsert(d.Key(), func(rec *attendance.DayRecord) error {
		return fn(rec, meta)
	}); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", d.Key(), err)
	}

	view, err := BuildDay(d, m.store.Record, holidays, m.policy)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// SetStart sets the clock-in time. An empty value clears it.
func (m *Manager) SetStart(key, value string) (*DayView, error) {
	return m.Apply(key, RecordUpdate{Start: &value})
}

// SetEnd sets the clock-out time. An empty value clears it.
func (m *Manager) SetEnd(key, value string) (*DayView, error) {
	return m.Apply(key, RecordUpdate{End: &value})
}

// PunchIn records the standard start on an ordinary workday.
func (m *Manager) PunchIn(key string) (*DayView, error) {
	return m.edit(key, func(rec *attendance.DayRecord, meta calendar.DayMeta) error {
		if err := attendance.ModeFor(*rec, meta).CheckPunch(); err != nil {
			return err
		}
		rec.PunchIn(m.policy)
		return nil
	})
}

// PunchOut records the standard end on an ordinary workday.
func (m *Manager) PunchOut(key string) (*DayView, error) {
	return m.edit(key, func(rec *attendance.DayRecord, meta calendar.DayMeta) error {
		if err := attendance.ModeFor(*rec, meta).CheckPunch(); err != nil {
			return err
		}
		rec.PunchOut(m.policy)
		return nil
	})
}

// SetKind switches the work kind.
func (m *Manager) SetKind(key, kind string) (*DayView, error) {
	return m.Apply(key, RecordUpdate{Kind: &kind})
}

// SetNote replaces the note.
func (m *Manager) SetNote(key, note string) (*DayView, error) {
	return m.Apply(key, RecordUpdate{Note: &note})
}

// Clear resets the day, removing its record.
func (m *Manager) Clear(key string) (*DayView, error) {
	return m.edit(key, func(rec *attendance.DayRecord, _ calendar.DayMeta) error {
		rec.Clear()
		return nil
	})
}

// Apply performs a partial edit: kind first, then times, then note.
// Times may only be set on days that take them; clearing is always allowed.
func (m *Manager) Apply(key string, upd RecordUpdate) (*DayView, error) {
	var kind attendance.WorkKind
	if upd.Kind != nil {
		k, err := attendance.LookupWorkKind(*upd.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	start, err := parseOptionalClock(upd.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalClock(upd.End)
	if err != nil {
		return nil, err
	}

	view, err := m.edit(key, func(rec *attendance.DayRecord, meta calendar.DayMeta) error {
		if upd.Kind != nil {
			rec.SetKind(kind, meta.IsOffDay())
		}

		mode := attendance.ModeFor(*rec, meta)
		if upd.Start != nil {
			if start != nil {
				if err := mode.CheckTimes(); err != nil {
					return err
				}
			}
			rec.SetStart(start)
		}
		if upd.End != nil {
			if end != nil {
				if err := mode.CheckTimes(); err != nil {
					return err
				}
			}
			rec.SetEnd(end)
		}

		if upd.Note != nil {
			rec.SetNote(*upd.Note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Day updated",
		zap.String("date", view.Meta.Key),
		zap.String("kind", string(view.Record.Kind)),
		zap.String("judgment", view.Judgment))

	return view, nil
}

func parseOptionalClock(s *string) (*attendance.Clock, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, err := attendance.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CompanyHolidays returns the sorted company holiday keys.
func (m *Manager) CompanyHolidays() []string {
	return m.store.CompanyHolidays().Keys()
}

// AddCompanyHolidays adds days off and returns how many were new.
func (m *Manager) AddCompanyHolidays(keys ...string) (int, error) {
	return m.store.AddCompanyHolidays(keys...)
}

// RemoveCompanyHoliday removes a day off.
func (m *Manager) RemoveCompanyHoliday(key string) (bool, error) {
	return m.store.RemoveCompanyHoliday(key)
}

// ResetCompanyHolidays removes every day off.
func (m *Manager) ResetCompanyHolidays() error {
	return m.store.ResetCompanyHolidays()
}

// ImportCompanyHolidays loads a company holiday file and adds its days.
func (m *Manager) ImportCompanyHolidays(path string) (int, error) {
	file := calendar.NewCompanyHolidayFile(path, m.logger)
	if err := file.Load(); err != nil {
		return 0, err
	}

	added, err := m.store.AddCompanyHolidays(file.Keys()...)
	if err != nil {
		return 0, fmt.Errorf("failed to import company holidays: %w", err)
	}
	return added, nil
}
