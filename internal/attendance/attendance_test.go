package attendance

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/shopspring/decimal"
)

func clk(s string) *Clock {
	c := MustClock(s)
	return &c
}

func meta(y int, m time.Month, d int) calendar.DayMeta {
	dm, err := calendar.ClassifyDay(y, m, d, nil)
	if err != nil {
		panic(err)
	}
	return dm
}

func TestComputePayroll(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name         string
		rec          DayRecord
		wantWork     int
		wantRegular  int
		wantOvertime int
		wantRegPay   string
		wantOTPay    string
	}{
		{
			name:        "standard day",
			rec:         DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("18:30")},
			wantWork:    480,
			wantRegular: 480,
			wantRegPay:  "12000",
			wantOTPay:   "0",
		},
		{
			name:         "two hours overtime",
			rec:          DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("20:30")},
			wantWork:     600,
			wantRegular:  480,
			wantOvertime: 120,
			wantRegPay:   "12000",
			wantOTPay:    "3750",
		},
		{
			name:         "holiday work is all overtime",
			rec:          DayRecord{Kind: HolidayWork, Start: clk("10:00"), End: clk("15:00")},
			wantWork:     240,
			wantOvertime: 240,
			wantRegPay:   "0",
			wantOTPay:    "7500",
		},
		{
			name:        "paid leave ignores times",
			rec:         DayRecord{Kind: Paid, Start: clk("13:00"), End: clk("14:00")},
			wantWork:    480,
			wantRegular: 480,
			wantRegPay:  "12000",
			wantOTPay:   "0",
		},
		{
			name:        "paid leave without times",
			rec:         DayRecord{Kind: Paid},
			wantWork:    480,
			wantRegular: 480,
			wantRegPay:  "12000",
			wantOTPay:   "0",
		},
		{
			name:       "start only",
			rec:        DayRecord{Kind: Normal, Start: clk("09:30")},
			wantRegPay: "0",
			wantOTPay:  "0",
		},
		{
			name:       "shorter than the break",
			rec:        DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("10:00")},
			wantRegPay: "0",
			wantOTPay:  "0",
		},
		{
			name:       "end before start",
			rec:        DayRecord{Kind: Normal, Start: clk("18:00"), End: clk("09:00")},
			wantRegPay: "0",
			wantOTPay:  "0",
		},
		{
			name:         "one minute overtime stays fractional",
			rec:          DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("18:31")},
			wantWork:     481,
			wantRegular:  480,
			wantOvertime: 1,
			wantRegPay:   "12000",
			wantOTPay:    "31.25",
		},
		{
			name:         "unknown kind is normal",
			rec:          DayRecord{Kind: "bogus", Start: clk("09:30"), End: clk("19:30")},
			wantWork:     540,
			wantRegular:  480,
			wantOvertime: 60,
			wantRegPay:   "12000",
			wantOTPay:    "1875",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePayroll(tt.rec, calendar.DayMeta{}, policy)

			if got.WorkMinutes != tt.wantWork {
				t.Errorf("WorkMinutes = %d, want %d", got.WorkMinutes, tt.wantWork)
			}
			if got.RegularMinutes != tt.wantRegular {
				t.Errorf("RegularMinutes = %d, want %d", got.RegularMinutes, tt.wantRegular)
			}
			if got.OvertimeMinutes != tt.wantOvertime {
				t.Errorf("OvertimeMinutes = %d, want %d", got.OvertimeMinutes, tt.wantOvertime)
			}
			if !got.RegularPay.Equal(decimal.RequireFromString(tt.wantRegPay)) {
				t.Errorf("RegularPay = %s, want %s", got.RegularPay, tt.wantRegPay)
			}
			if !got.OvertimePay.Equal(decimal.RequireFromString(tt.wantOTPay)) {
				t.Errorf("OvertimePay = %s, want %s", got.OvertimePay, tt.wantOTPay)
			}
		})
	}
}

func TestComputePayroll_CustomPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.HourlyWage = decimal.NewFromInt(1200)
	policy.BreakMinutes = 45

	rec := DayRecord{Kind: Normal, Start: clk("09:00"), End: clk("18:45")}
	got := ComputePayroll(rec, calendar.DayMeta{}, policy)

	if got.WorkMinutes != 540 {
		t.Errorf("WorkMinutes = %d, want 540", got.WorkMinutes)
	}
	// 60 minutes at 1200 * 1.25
	if !got.OvertimePay.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("OvertimePay = %s, want 1500", got.OvertimePay)
	}
}

func TestComputeJudgment(t *testing.T) {
	policy := DefaultPolicy()
	weekday := meta(2025, time.June, 10)

	tests := []struct {
		name string
		rec  DayRecord
		want string
	}{
		{"late", DayRecord{Kind: Normal, Start: clk("09:45"), Judged: true}, TagLate},
		{"early leave", DayRecord{Kind: Normal, End: clk("18:00"), Judged: true}, TagEarlyLeave},
		{"on time", DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("18:30"), Judged: true}, TagOnTime},
		{"early arrival and overtime", DayRecord{Kind: Normal, Start: clk("09:00"), End: clk("19:00"), Judged: true}, "早出・残業"},
		{"late and early leave", DayRecord{Kind: Normal, Start: clk("10:00"), End: clk("17:00"), Judged: true}, "遅刻・早退"},
		{"late and overtime", DayRecord{Kind: Normal, Start: clk("09:31"), End: clk("18:31"), Judged: true}, "遅刻・残業"},
		{"standard start only", DayRecord{Kind: Normal, Start: clk("09:30"), Judged: true}, ""},
		{"not judged", DayRecord{Kind: Normal, Start: clk("09:45"), End: clk("18:30")}, ""},
		{"holiday work", DayRecord{Kind: HolidayWork, Start: clk("09:45"), End: clk("20:00"), Judged: true}, ""},
		{"paid", DayRecord{Kind: Paid, Judged: true}, ""},
		{"no times", DayRecord{Kind: Normal, Judged: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeJudgment(tt.rec, weekday, policy); got != tt.want {
				t.Errorf("ComputeJudgment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsWarning(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"遅刻", true},
		{"早退", true},
		{"残業", true},
		{"早出・残業", true},
		{"早出", false},
		{"定時", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWarning(tt.label); got != tt.want {
			t.Errorf("IsWarning(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"09:30", Clock{9, 30}, false},
		{"9:30", Clock{9, 30}, false},
		{" 18:05 ", Clock{18, 5}, false},
		{"00:00", Clock{0, 0}, false},
		{"23:59", Clock{23, 59}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"930", Clock{}, true},
		{"9.30", Clock{}, true},
		{"", Clock{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrMalformedTime) {
			t.Errorf("ParseClock(%q) error = %v, want ErrMalformedTime", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLookupWorkKind(t *testing.T) {
	tests := []struct {
		input   string
		want    WorkKind
		wantErr bool
	}{
		{"normal", Normal, false},
		{"PAID", Paid, false},
		{"holidayWork", HolidayWork, false},
		{"holiday-work", HolidayWork, false},
		{"有給", Paid, false},
		{"休日出勤", HolidayWork, false},
		{"vacation", Normal, true},
	}

	for _, tt := range tests {
		got, err := LookupWorkKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("LookupWorkKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("LookupWorkKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if got := ParseWorkKind("vacation"); got != Normal {
		t.Errorf("ParseWorkKind(vacation) = %q, want normal", got)
	}
}

func TestDayRecord_UnmarshalSanitizes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want DayRecord
	}{
		{
			name: "stored record",
			data: `{"kind":"normal","start":"09:30","end":"18:30","note":"ok","judged":true}`,
			want: DayRecord{Kind: Normal, Start: clk("09:30"), End: clk("18:30"), Note: "ok", Judged: true},
		},
		{
			name: "unknown kind",
			data: `{"kind":"sick","start":"09:30"}`,
			want: DayRecord{Kind: Normal, Start: clk("09:30")},
		},
		{
			name: "paid drops times",
			data: `{"kind":"paid","start":"09:30","end":"18:30","judged":true}`,
			want: DayRecord{Kind: Paid},
		},
		{
			name: "holiday work is never judged",
			data: `{"kind":"holidayWork","start":"10:00","end":"15:00","judged":true}`,
			want: DayRecord{Kind: HolidayWork, Start: clk("10:00"), End: clk("15:00")},
		},
		{
			name: "malformed values are absent",
			data: `{"kind":3,"start":"25:00","end":930,"note":["x"],"judged":1}`,
			want: DayRecord{Kind: Normal, Judged: true},
		},
		{
			name: "empty object",
			data: `{}`,
			want: DayRecord{Kind: Normal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DayRecord
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !sameRecord(got, tt.want) {
				t.Errorf("Unmarshal() = %s, want %s", describe(got), describe(tt.want))
			}
		})
	}
}

func TestDayRecord_MarshalShape(t *testing.T) {
	rec := DayRecord{Kind: Normal, Start: clk("9:05"), Judged: true}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"kind":"normal","start":"09:05","end":null,"note":"","judged":true}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestDayRecord_Lifecycle(t *testing.T) {
	policy := DefaultPolicy()

	var rec DayRecord
	if !rec.IsDefault() {
		t.Fatal("zero record should be default")
	}

	rec.SetStart(clk("09:40"))
	if !rec.Judged {
		t.Error("SetStart() should mark the record judged")
	}

	rec.PunchOut(policy)
	if rec.End == nil || *rec.End != policy.StandardEnd {
		t.Errorf("PunchOut() End = %v, want %v", rec.End, policy.StandardEnd)
	}

	rec.SetStart(nil)
	rec.SetEnd(nil)
	if rec.Judged {
		t.Error("clearing both times should reset judged")
	}
	if !rec.IsDefault() {
		t.Errorf("record should be default again, got %s", describe(rec))
	}

	rec.PunchIn(policy)
	rec.SetKind(Paid, false)
	if rec.Start != nil || rec.End != nil || rec.Judged {
		t.Errorf("SetKind(Paid) left %s", describe(rec))
	}

	rec.SetKind(HolidayWork, true)
	rec.SetStart(clk("10:00"))
	if rec.Judged {
		t.Error("holiday work must not be judged")
	}

	rec.SetKind(Normal, true)
	if rec.Start != nil || rec.Judged {
		t.Errorf("SetKind(Normal) on an off day left %s", describe(rec))
	}

	rec.SetStart(clk("09:00"))
	rec.SetKind(Normal, false)
	if rec.Start == nil {
		t.Error("SetKind(Normal) on a workday should keep times")
	}

	rec.SetNote("memo")
	rec.Clear()
	if !rec.IsDefault() {
		t.Errorf("Clear() left %s", describe(rec))
	}
}

func TestModeFor(t *testing.T) {
	workday := meta(2025, time.June, 10)
	saturday := meta(2025, time.June, 7)

	tests := []struct {
		name      string
		rec       DayRecord
		meta      calendar.DayMeta
		wantTimes bool
		wantPunch bool
		wantHint  string
	}{
		{"normal workday", DayRecord{Kind: Normal}, workday, true, true, "時刻は編集可"},
		{"paid", DayRecord{Kind: Paid}, workday, false, false, "（有給）"},
		{"normal off day", DayRecord{Kind: Normal}, saturday, false, false, "（休日）"},
		{"holiday work off day", DayRecord{Kind: HolidayWork}, saturday, true, false, "休日出勤は手入力"},
		{"holiday work on workday", DayRecord{Kind: HolidayWork}, workday, true, false, "時刻は編集可"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModeFor(tt.rec, tt.meta)
			if got.CanInputTimes != tt.wantTimes {
				t.Errorf("CanInputTimes = %v, want %v", got.CanInputTimes, tt.wantTimes)
			}
			if got.CanPunch != tt.wantPunch {
				t.Errorf("CanPunch = %v, want %v", got.CanPunch, tt.wantPunch)
			}
			if got.Hint != tt.wantHint {
				t.Errorf("Hint = %q, want %q", got.Hint, tt.wantHint)
			}
		})
	}

	if err := ModeFor(DayRecord{}, saturday).CheckTimes(); !errors.Is(err, ErrInputNotAllowed) {
		t.Errorf("CheckTimes() on an off day error = %v, want ErrInputNotAllowed", err)
	}
}

func TestFormatting(t *testing.T) {
	minutes := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{480, "8:00"},
		{9601, "160:01"},
	}
	for _, tt := range minutes {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}

	yen := []struct {
		in   int64
		want string
	}{
		{0, "0円"},
		{999, "999円"},
		{12000, "12,000円"},
		{1234567, "1,234,567円"},
	}
	for _, tt := range yen {
		if got := FormatYen(tt.in); got != tt.want {
			t.Errorf("FormatYen(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := RoundYen(decimal.RequireFromString("62.5")); got != 63 {
		t.Errorf("RoundYen(62.5) = %d, want 63", got)
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("DefaultPolicy().Validate() error = %v", err)
	}

	bad := DefaultPolicy()
	bad.StandardEnd = Clock{9, 0}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted end before start")
	}

	bad = DefaultPolicy()
	bad.OvertimeRate = decimal.RequireFromString("0.9")
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted overtime rate below 1")
	}
}

func sameRecord(a, b DayRecord) bool {
	return a.Kind == b.Kind && sameClock(a.Start, b.Start) && sameClock(a.End, b.End) &&
		a.Note == b.Note && a.Judged == b.Judged
}

func sameClock(a, b *Clock) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func describe(r DayRecord) string {
	data, _ := json.Marshal(r)
	return string(data)
}
