package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateShifts <start-date> <end-date>",
		Short: "Bulk-create early and late shifts for the patrol dates in a range",
		Long: `Bulk-create early and late shifts for every patrol date in [start, end].
Patrol dates come from the recurrence rule (--rrule, falling back to the
configured default) plus, with --holidays, the public holiday calendar.
Dates that already have shifts are skipped, so re-running is safe.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeStart, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("start-date must be YYYY-MM-DD: %w", err)
			}
			rangeEnd, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("end-date must be YYYY-MM-DD: %w", err)
			}

			rule, _ := cmd.Flags().GetString("rrule")
			includeHolidays, _ := cmd.Flags().GetBool("holidays")

			if rule == "" {
				rule = app.Cfg.DefaultRRule
			}

			app.Logger.Debug("generateShifts command",
				zap.String("rrule", rule),
				zap.Bool("holidays", includeHolidays))

			var feed services.HolidayFeed
			if includeHolidays {
				calendarClient, err := app.CalendarClient()
				if err != nil {
					return err
				}
				feed = calendarClient
			}

			result, err := services.GenerateShifts(app.Ctx, app.Database, feed, app.Logger, services.GenerateParams{
				RangeStart:      rangeStart,
				RangeEnd:        rangeEnd,
				RRule:           rule,
				IncludeHolidays: includeHolidays,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift generation complete: %d created, %d skipped\n\n", len(result.Created), result.Skipped)
			for _, shift := range result.Created {
				line := fmt.Sprintf("  %s %-5s", shift.DateString(), shift.Slot)
				if shift.Label != "" {
					line += "  (" + shift.Label + ")"
				}
				fmt.Println(line)
			}
			if len(result.Created) > 0 {
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("rrule", "", "Recurrence rule for patrol dates (defaults to the configured rule)")
	cmd.Flags().Bool("holidays", false, "Also create shifts on public holidays, labelled with the holiday name")

	return cmd
}
