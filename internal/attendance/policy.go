package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy holds the pay and shift constants.
type Policy struct {
	HourlyWage     decimal.Decimal
	BreakMinutes   int
	StandardStart  Clock
	StandardEnd    Clock
	FullDayMinutes int
	OvertimeRate   decimal.Decimal
}

// DefaultPolicy returns 1500 yen/hour, a 60 minute break, a 09:30-18:30 shift,
// an 8 hour full day and overtime at 125%.
func DefaultPolicy() Policy {
	return Policy{
		HourlyWage:     decimal.NewFromInt(1500),
		BreakMinutes:   60,
		StandardStart:  Clock{Hour: 9, Minute: 30},
		StandardEnd:    Clock{Hour: 18, Minute: 30},
		FullDayMinutes: 480,
		OvertimeRate:   decimal.RequireFromString("1.25"),
	}
}

// Validate checks the policy is usable.
func (p Policy) Validate() error {
	if !p.HourlyWage.IsPositive() {
		return fmt.Errorf("hourly wage must be positive, got %s", p.HourlyWage)
	}
	if p.BreakMinutes < 0 {
		return fmt.Errorf("break minutes must not be negative, got %d", p.BreakMinutes)
	}
	if p.FullDayMinutes <= 0 {
		return fmt.Errorf("full day minutes must be positive, got %d", p.FullDayMinutes)
	}
	if p.OvertimeRate.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("overtime rate must be at least 1, got %s", p.OvertimeRate)
	}
	if p.StandardStart.Compare(p.StandardEnd) >= 0 {
		return fmt.Errorf("standard start %s must be before standard end %s", p.StandardStart, p.StandardEnd)
	}
	return nil
}
