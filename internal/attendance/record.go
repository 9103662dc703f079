package attendance

import (
	"encoding/json"
	"fmt"
)

// DayRecord is the attendance of one date. The zero value is the default
// record and is equivalent to no record at all.
type DayRecord struct {
	Kind   WorkKind
	Start  *Clock
	End    *Clock
	Note   string
	Judged bool
}

// storedRecord is the persisted shape: times are "HH:MM" or null.
type storedRecord struct {
	Kind   WorkKind `json:"kind"`
	Start  *Clock   `json:"start"`
	End    *Clock   `json:"end"`
	Note   string   `json:"note"`
	Judged bool     `json:"judged"`
}

// rawRecord accepts anything a previous version or a hand edit may have stored.
type rawRecord struct {
	Kind   any `json:"kind"`
	Start  any `json:"start"`
	End    any `json:"end"`
	Note   any `json:"note"`
	Judged any `json:"judged"`
}

// Sanitize returns the record with its invariants restored: unknown kinds
// become Normal, paid days carry no times, and only Normal days are judged.
func (r DayRecord) Sanitize() DayRecord {
	if !r.Kind.Valid() {
		r.Kind = Normal
	}
	switch r.Kind {
	case Paid:
		r.Start, r.End = nil, nil
		r.Judged = false
	case HolidayWork:
		r.Judged = false
	}
	return r
}

// IsDefault reports whether the record carries no information.
func (r DayRecord) IsDefault() bool {
	return (r.Kind == Normal || r.Kind == "") &&
		r.Start == nil && r.End == nil &&
		r.Note == "" && !r.Judged
}

// HasTimes reports whether both clock times are present.
func (r DayRecord) HasTimes() bool {
	return r.Start != nil && r.End != nil
}

// MarshalJSON writes the persisted shape.
func (r DayRecord) MarshalJSON() ([]byte, error) {
	r = r.Sanitize()
	return json.Marshal(storedRecord{
		Kind:   r.Kind,
		Start:  r.Start,
		End:    r.End,
		Note:   r.Note,
		Judged: r.Judged,
	})
}

// UnmarshalJSON is forgiving: fields of the wrong type or malformed times are
// treated as absent. Only invalid JSON is an error.
func (r *DayRecord) UnmarshalJSON(b []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("failed to parse record: %w", err)
	}

	kind, _ := raw.Kind.(string)
	note, _ := raw.Note.(string)
	start, _ := raw.Start.(string)
	end, _ := raw.End.(string)

	*r = DayRecord{
		Kind:   ParseWorkKind(kind),
		Start:  clockPtr(start),
		End:    clockPtr(end),
		Note:   note,
		Judged: truthy(raw.Judged),
	}.Sanitize()
	return nil
}

// truthy follows the loose boolean reading of older stores.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case nil:
		return false
	default:
		return true
	}
}

func (r *DayRecord) refreshJudged() {
	r.Judged = r.Kind == Normal && (r.Start != nil || r.End != nil)
}

// SetStart sets or clears (nil) the clock-in time.
func (r *DayRecord) SetStart(c *Clock) {
	*r = r.Sanitize()
	r.Start = c
	r.refreshJudged()
	*r = r.Sanitize()
}

// SetEnd sets or clears (nil) the clock-out time.
func (r *DayRecord) SetEnd(c *Clock) {
	*r = r.Sanitize()
	r.End = c
	r.refreshJudged()
	*r = r.Sanitize()
}

// PunchIn records the standard start time.
func (r *DayRecord) PunchIn(p Policy) {
	start := p.StandardStart
	r.SetStart(&start)
}

// PunchOut records the standard end time.
func (r *DayRecord) PunchOut(p Policy) {
	end := p.StandardEnd
	r.SetEnd(&end)
}

// SetKind switches the kind and tidies the fields. Returning to Normal on an
// off day drops the times so they do not linger unseen.
func (r *DayRecord) SetKind(kind WorkKind, offDay bool) {
	if !kind.Valid() {
		kind = Normal
	}
	r.Kind = kind

	switch kind {
	case Paid:
		r.Start, r.End = nil, nil
		r.Judged = false
	case HolidayWork:
		r.Judged = false
	case Normal:
		if offDay {
			r.Start, r.End = nil, nil
			r.Judged = false
		}
	}
}

// SetNote replaces the note.
func (r *DayRecord) SetNote(note string) {
	r.Note = note
}

// Clear resets the record to its default state.
func (r *DayRecord) Clear() {
	*r = DayRecord{Kind: Normal}
}
