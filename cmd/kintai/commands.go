package main

import (
	"fmt"
	"strconv"

	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/hyaku122/kintai-final/internal/timesheet"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"github.com/spf13/cobra"
)

func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show a day: calendar, record, pay and judgment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			key := manager.Today().Key()
			if len(args) == 1 {
				key = args[0]
			}

			view, err := manager.Day(key)
			if err != nil {
				return err
			}
			printDay(*view)
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show every day of a month and the monthly summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			today := manager.Today()
			year, month := today.Year, today.Month
			if len(args) == 1 {
				year, month, err = dateutil.ParseYearMonth(args[0])
				if err != nil {
					return err
				}
			}

			summary, err := manager.Month(year, month)
			if err != nil {
				return err
			}
			printMonth(summary)
			return nil
		},
	}
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [YYYY]",
		Short: "List the national holidays of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := dateutil.Today().Year
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
				year = y
			}

			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			entries := manager.Holidays(year)
			fmt.Println(headerStyle.Render(fmt.Sprintf("%d年の祝日 (%d日)", year, len(entries))))
			for _, e := range entries {
				fmt.Printf("  %s (%s) %s\n", e.Key, calendar.WeekdayJa(e.Date.Weekday()), holidayStyle.Render(e.Name))
			}
			return nil
		},
	}
}

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Edit the record of a day",
	}

	// value-taking edits; an empty value clears start/end/note
	edits := []struct {
		use   string
		short string
		apply func(m *timesheet.Manager, key, value string) (*timesheet.DayView, error)
	}{
		{"start", "Set the clock-in time (HH:MM, empty clears)", (*timesheet.Manager).SetStart},
		{"end", "Set the clock-out time (HH:MM, empty clears)", (*timesheet.Manager).SetEnd},
		{"kind", "Set the work kind (normal, paid, holidayWork)", (*timesheet.Manager).SetKind},
		{"note", "Set the note", (*timesheet.Manager).SetNote},
	}
	for _, e := range edits {
		e := e
		cmd.AddCommand(&cobra.Command{
			Use:   e.use + " <YYYY-MM-DD> [value]",
			Short: e.short,
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				manager, err := initializeManager(cfg)
				if err != nil {
					return err
				}
				value := ""
				if len(args) == 2 {
					value = args[1]
				}
				view, err := e.apply(manager, args[0], value)
				if err != nil {
					return err
				}
				printDay(*view)
				return nil
			},
		})
	}

	// date-only edits
	actions := []struct {
		use   string
		short string
		apply func(m *timesheet.Manager, key string) (*timesheet.DayView, error)
	}{
		{"punch-in", "Record the standard start time", (*timesheet.Manager).PunchIn},
		{"punch-out", "Record the standard end time", (*timesheet.Manager).PunchOut},
		{"clear", "Reset the day to an empty normal record", (*timesheet.Manager).Clear},
	}
	for _, a := range actions {
		a := a
		cmd.AddCommand(&cobra.Command{
			Use:   a.use + " [YYYY-MM-DD]",
			Short: a.short + " (default: today)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				manager, err := initializeManager(cfg)
				if err != nil {
					return err
				}
				key := manager.Today().Key()
				if len(args) == 1 {
					key = args[0]
				}
				view, err := a.apply(manager, key)
				if err != nil {
					return err
				}
				printDay(*view)
				return nil
			},
		})
	}

	return cmd
}

func companyHolidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "company-holiday",
		Aliases: []string{"ch"},
		Short:   "Manage company-specific days off",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List company holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			keys := manager.CompanyHolidays()
			if len(keys) == 0 {
				fmt.Println(silentStyle.Render("No company holidays"))
				return nil
			}
			for _, key := range keys {
				fmt.Println("  " + key)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <YYYY-MM-DD>...",
		Short: "Add company holidays (YYYY-M-D accepted)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			added, err := manager.AddCompanyHolidays(args...)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Added %d company holiday(s)\n", added)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <YYYY-MM-DD>",
		Short: "Remove a company holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			removed, err := manager.RemoveCompanyHoliday(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(warningStyle.Render(args[0] + " is not a company holiday"))
				return nil
			}
			fmt.Printf("✅ Removed %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import company holidays from a text file (YYYY-MM-DD [note] per line)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			added, err := manager.ImportCompanyHolidays(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✅ Imported %d new company holiday(s) from %s\n", added, args[0])
			return nil
		},
	})

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove every company holiday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			if err := manager.ResetCompanyHolidays(); err != nil {
				return err
			}
			fmt.Println("✅ Company holidays cleared")
			return nil
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "Confirm removal of all company holidays")
	cmd.AddCommand(reset)

	return cmd
}
