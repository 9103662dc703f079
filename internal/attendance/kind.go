package attendance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownWorkKind is returned by the strict kind parser used for user input.
var ErrUnknownWorkKind = errors.New("unknown work kind")

// WorkKind classifies a day's attendance record.
type WorkKind string

const (
	Normal      WorkKind = "normal"
	Paid        WorkKind = "paid"
	HolidayWork WorkKind = "holidayWork"
)

var kindLabels = map[WorkKind]string{
	Normal:      "通常",
	Paid:        "有給",
	HolidayWork: "休日出勤",
}

// ParseWorkKind reads a stored kind. Anything unrecognized becomes Normal.
func ParseWorkKind(s string) WorkKind {
	k, err := LookupWorkKind(s)
	if err != nil {
		return Normal
	}
	return k
}

// LookupWorkKind parses a kind from user input. It accepts the stored names
// case-insensitively, "holiday-work", "holiday_work" and the Japanese labels.
func LookupWorkKind(s string) (WorkKind, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "normal", "":
		return Normal, nil
	case "paid":
		return Paid, nil
	case "holidaywork", "holiday-work", "holiday_work":
		return HolidayWork, nil
	}
	for k, label := range kindLabels {
		if s == label {
			return k, nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownWorkKind, s)
}

// Valid reports whether k is one of the defined kinds.
func (k WorkKind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns the Japanese display name.
func (k WorkKind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return kindLabels[Normal]
}
