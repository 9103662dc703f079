package attendance

import (
	"regexp"
	"strings"

	"github.com/hyaku122/kintai-final/internal/calendar"
)

// Judgment tags.
const (
	TagLate         = "遅刻"
	TagEarlyArrival = "早出"
	TagEarlyLeave   = "早退"
	TagOvertime     = "残業"
	TagOnTime       = "定時"

	tagSeparator = "・"
)

var warningTags = regexp.MustCompile(TagLate + "|" + TagEarlyLeave + "|" + TagOvertime)

// ComputeJudgment compares the clock times with the standard shift.
// It returns "" for holiday work, paid leave, unjudged records and records
// without times.
func ComputeJudgment(rec DayRecord, _ calendar.DayMeta, p Policy) string {
	rec = rec.Sanitize()

	if rec.Kind != Normal || !rec.Judged {
		return ""
	}
	if rec.Start == nil && rec.End == nil {
		return ""
	}

	var tags []string
	if rec.Start != nil {
		switch rec.Start.Compare(p.StandardStart) {
		case 1:
			tags = append(tags, TagLate)
		case -1:
			tags = append(tags, TagEarlyArrival)
		}
	}
	if rec.End != nil {
		switch rec.End.Compare(p.StandardEnd) {
		case -1:
			tags = append(tags, TagEarlyLeave)
		case 1:
			tags = append(tags, TagOvertime)
		}
	}

	if len(tags) == 0 && rec.HasTimes() {
		return TagOnTime
	}
	return strings.Join(tags, tagSeparator)
}

// IsWarning reports whether a judgment label should be shown as a warning.
func IsWarning(label string) bool {
	return warningTags.MatchString(label)
}
