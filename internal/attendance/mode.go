package attendance

import (
	"errors"

	"github.com/hyaku122/kintai-final/internal/calendar"
)

// ErrInputNotAllowed is returned when times are entered on a day that does not take them.
var ErrInputNotAllowed = errors.New("input not allowed for this day")

// InputMode says which inputs a day accepts.
type InputMode struct {
	CanInputTimes bool   `json:"canInputTimes"`
	CanPunch      bool   `json:"canPunch"`
	Hint          string `json:"hint"`
}

// ModeFor derives the input mode from the day and its record.
// Off days take times only as holiday work; punching is for ordinary workdays.
func ModeFor(rec DayRecord, meta calendar.DayMeta) InputMode {
	rec = rec.Sanitize()
	off := meta.IsOffDay()

	switch {
	case rec.Kind == Paid:
		return InputMode{Hint: "（有給）"}
	case rec.Kind == Normal && off:
		return InputMode{Hint: "（休日）"}
	case off:
		return InputMode{CanInputTimes: true, Hint: "休日出勤は手入力"}
	}

	return InputMode{
		CanInputTimes: true,
		CanPunch:      rec.Kind == Normal,
		Hint:          "時刻は編集可",
	}
}

// CheckTimes returns ErrInputNotAllowed unless the day accepts clock times.
func (m InputMode) CheckTimes() error {
	if !m.CanInputTimes {
		return ErrInputNotAllowed
	}
	return nil
}

// CheckPunch returns ErrInputNotAllowed unless the day accepts punches.
func (m InputMode) CheckPunch() error {
	if !m.CanPunch {
		return ErrInputNotAllowed
	}
	return nil
}
