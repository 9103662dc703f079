package attendance

import (
	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// DayPay is the unrounded pay of one day.
type DayPay struct {
	WorkMinutes     int             `json:"workMinutes"`
	RegularMinutes  int             `json:"regularMinutes"`
	OvertimeMinutes int             `json:"overtimeMinutes"`
	RegularPay      decimal.Decimal `json:"regularPay"`
	OvertimePay     decimal.Decimal `json:"overtimePay"`
}

// Total returns regular plus overtime pay, unrounded.
func (d DayPay) Total() decimal.Decimal {
	return d.RegularPay.Add(d.OvertimePay)
}

// WorkedMinutes returns end minus start minus the break, floored at zero.
// A record missing either time has worked nothing.
func WorkedMinutes(rec DayRecord, p Policy) int {
	if !rec.HasTimes() {
		return 0
	}
	return max(0, rec.End.Minutes()-rec.Start.Minutes()-p.BreakMinutes)
}

// ComputePayroll splits the day's minutes into regular and overtime and prices them.
// Pay is left fractional; rounding happens once per month.
func ComputePayroll(rec DayRecord, _ calendar.DayMeta, p Policy) DayPay {
	rec = rec.Sanitize()

	switch rec.Kind {
	case Paid:
		return DayPay{
			WorkMinutes:    p.FullDayMinutes,
			RegularMinutes: p.FullDayMinutes,
			RegularPay:     p.regularPay(p.FullDayMinutes),
			OvertimePay:    decimal.Zero,
		}
	case HolidayWork:
		work := WorkedMinutes(rec, p)
		return DayPay{
			WorkMinutes:     work,
			OvertimeMinutes: work,
			RegularPay:      decimal.Zero,
			OvertimePay:     p.overtimePay(work),
		}
	}

	work := WorkedMinutes(rec, p)
	regular := min(work, p.FullDayMinutes)
	overtime := max(0, work-p.FullDayMinutes)

	return DayPay{
		WorkMinutes:     work,
		RegularMinutes:  regular,
		OvertimeMinutes: overtime,
		RegularPay:      p.regularPay(regular),
		OvertimePay:     p.overtimePay(overtime),
	}
}

func (p Policy) regularPay(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(p.HourlyWage).Div(sixty)
}

func (p Policy) overtimePay(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(p.HourlyWage).Mul(p.OvertimeRate).Div(sixty)
}
