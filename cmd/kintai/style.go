package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/hyaku122/kintai-final/internal/timesheet"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	holidayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	weekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func badge(meta calendar.DayMeta) string {
	switch {
	case meta.IsHoliday || meta.IsCompanyHoliday:
		return holidayStyle.Render(meta.BadgeText)
	case meta.IsWeekend:
		return weekendStyle.Render(meta.BadgeText)
	default:
		return silentStyle.Render(meta.BadgeText)
	}
}

func judgment(view timesheet.DayView) string {
	if view.Judgment == "" {
		return ""
	}
	if view.Warning {
		return warningStyle.Render(view.Judgment)
	}
	return infoStyle.Render(view.Judgment)
}

func clockText(c *attendance.Clock) string {
	if c == nil {
		return "--:--"
	}
	return c.String()
}

func printDay(view timesheet.DayView) {
	meta := view.Meta
	rec := view.Record
	pay := view.Pay

	fmt.Printf("%s (%s) %s\n", headerStyle.Render(meta.Key), meta.WeekdayJa, badge(meta))
	if meta.IsHoliday && meta.IsCompanyHoliday {
		fmt.Printf("  祝日: %s\n", meta.HolidayName)
	}
	fmt.Printf("  区分: %s  出勤: %s  退勤: %s\n", rec.Kind.Label(), clockText(rec.Start), clockText(rec.End))
	if rec.Note != "" {
		fmt.Printf("  メモ: %s\n", rec.Note)
	}
	fmt.Printf("  勤務: %s (通常 %s / 残業 %s)\n",
		attendance.FormatMinutes(pay.WorkMinutes),
		attendance.FormatMinutes(pay.RegularMinutes),
		attendance.FormatMinutes(pay.OvertimeMinutes))
	if j := judgment(view); j != "" {
		fmt.Printf("  判定: %s\n", j)
	}
	fmt.Printf("  日給: %s\n", attendance.FormatYen(attendance.RoundYen(pay.Total())))
	fmt.Printf("  %s\n", silentStyle.Render(view.Mode.Hint))
}

const (
	monthHeader = "  日付       | 曜 | 区分     | 出勤  | 退勤  | 勤務  | 表示       | 判定"
	monthRule   = "-------------+----+----------+-------+-------+-------+------------+----------"
)

func monthRow(day timesheet.DayView) string {
	return fmt.Sprintf("  %s | %s | %-8s | %s | %s | %5s | %-10s | %s",
		day.Meta.Key,
		day.Meta.WeekdayJa,
		day.Record.Kind.Label(),
		clockText(day.Record.Start),
		clockText(day.Record.End),
		attendance.FormatMinutes(day.Pay.WorkMinutes),
		badge(day.Meta),
		judgment(day))
}

func printMonth(summary *timesheet.MonthlySummary) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d年%d月", summary.Year, int(summary.Month))))
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println(monthHeader)
	fmt.Println(monthRule)
	for _, day := range summary.Days {
		fmt.Println(monthRow(day))
	}

	fmt.Println()
	fmt.Printf("  所定労働日数: %d日\n", summary.PlannedWorkingDays)
	fmt.Printf("  実働日数:     %d日\n", summary.ActualWorkingDays)
	fmt.Printf("  総労働時間:   %s (通常 %s / 残業 %s)\n",
		attendance.FormatMinutes(summary.TotalMinutes),
		attendance.FormatMinutes(summary.RegularMinutes),
		attendance.FormatMinutes(summary.OvertimeMinutes))
	fmt.Printf("  通常給:       %s\n", attendance.FormatYen(summary.RegularPay))
	fmt.Printf("  残業給:       %s\n", attendance.FormatYen(summary.OvertimePay))
	fmt.Printf("  合計:         %s\n", headerStyle.Render(attendance.FormatYen(summary.TotalPay)))
}
