// Package timesheet folds day classification and payroll into day and month views.
package timesheet

import (
	"time"

	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RecordLookup returns the sanitized record for a canonical date key,
// or the default record when none is stored.
type RecordLookup func(key string) attendance.DayRecord

// DayView is everything shown for one date.
type DayView struct {
	Meta     calendar.DayMeta     `json:"meta"`
	Record   attendance.DayRecord `json:"record"`
	Pay      attendance.DayPay    `json:"pay"`
	Judgment string               `json:"judgment"`
	Warning  bool                 `json:"warning"`
	Mode     attendance.InputMode `json:"mode"`
}

// MonthlySummary aggregates a month. Pay is in whole yen, rounded once here.
type MonthlySummary struct {
	Year               int        `json:"year"`
	Month              time.Month `json:"month"`
	PlannedWorkingDays int        `json:"plannedWorkingDays"`
	ActualWorkingDays  int        `json:"actualWorkingDays"`
	TotalMinutes       int        `json:"totalMinutes"`
	RegularMinutes     int        `json:"regularMinutes"`
	OvertimeMinutes    int        `json:"overtimeMinutes"`
	RegularPay         int64      `json:"regularPay"`
	OvertimePay        int64      `json:"overtimePay"`
	TotalPay           int64      `json:"totalPay"`
	Days               []DayView  `json:"days"`
}

// BuildDay computes the view of a date. An invalid date is ErrInvalidDate.
func BuildDay(d dateutil.Date, lookup RecordLookup, set calendar.CompanyHolidays, p attendance.Policy) (DayView, error) {
	meta, err := calendar.Classify(d, set)
	if err != nil {
		return DayView{}, err
	}
	rec := lookup(d.Key()).Sanitize()
	judgment := attendance.ComputeJudgment(rec, meta, p)

	return DayView{
		Meta:     meta,
		Record:   rec,
		Pay:      attendance.ComputePayroll(rec, meta, p),
		Judgment: judgment,
		Warning:  attendance.IsWarning(judgment),
		Mode:     attendance.ModeFor(rec, meta),
	}, nil
}

// SummarizeMonth builds the month's day views and totals.
//
// Planned working days are ordinary weekdays, paid leave included. Actual
// working days are paid days plus days with both clock times. Regular pay,
// overtime pay and total pay are each rounded half-up from their exact sums.
func SummarizeMonth(year int, month time.Month, lookup RecordLookup, set calendar.CompanyHolidays, p attendance.Policy) (*MonthlySummary, error) {
	first, err := dateutil.NewDate(year, month, 1)
	if err != nil {
		return nil, err
	}

	n := first.DaysInMonth()
	summary := &MonthlySummary{
		Year:  year,
		Month: month,
		Days:  make([]DayView, 0, n),
	}

	regularPay, overtimePay := decimal.Zero, decimal.Zero
	for day := 1; day <= n; day++ {
		view, err := BuildDay(dateutil.Date{Year: year, Month: month, Day: day}, lookup, set, p)
		if err != nil {
			return nil, err
		}
		summary.Days = append(summary.Days, view)

		if view.Meta.IsPlannedWorkday() {
			summary.PlannedWorkingDays++
		}
		if view.Record.Kind == attendance.Paid || view.Record.HasTimes() {
			summary.ActualWorkingDays++
		}

		summary.TotalMinutes += view.Pay.WorkMinutes
		summary.RegularMinutes += view.Pay.RegularMinutes
		summary.OvertimeMinutes += view.Pay.OvertimeMinutes
		regularPay = regularPay.Add(view.Pay.RegularPay)
		overtimePay = overtimePay.Add(view.Pay.OvertimePay)
	}

	summary.RegularPay = attendance.RoundYen(regularPay)
	summary.OvertimePay = attendance.RoundYen(overtimePay)
	summary.TotalPay = attendance.RoundYen(regularPay.Add(overtimePay))

	return summary, nil
}
