package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listShifts",
		Short: "List upcoming shifts with their remaining capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, _ := cmd.Flags().GetInt("weeks")
			if weeks < 1 {
				return fmt.Errorf("weeks must be a positive integer")
			}

			app.Logger.Debug("listShifts command", zap.Int("weeks", weeks))

			rangeStart := time.Now().UTC().Truncate(24 * time.Hour)
			rangeEnd := rangeStart.AddDate(0, 0, weeks*7)

			summaries, err := services.UpcomingShifts(app.Ctx, app.Database, app.Logger, rangeStart, rangeEnd)
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Printf("\nNo shifts scheduled in the next %d week(s).\n", weeks)
				return nil
			}

			// ANSI color codes
			const (
				colorReset = "\033[0m"
				colorGreen = "\033[32m"
				colorRed   = "\033[31m"
				colorDim   = "\033[2m"
			)

			fmt.Printf("\nUpcoming shifts (next %d week(s))\n\n", weeks)
			fmt.Printf("%-38s %-12s %-7s %-14s %-14s %-14s\n",
				"Shift ID", "Date", "Slot", "Team Leader", "Level 1", "Level 2")
			fmt.Println(strings.Repeat("-", 95))

			for _, summary := range summaries {
				shift := summary.Shift

				date := shift.DateString()
				if shift.Label != "" {
					date = fmt.Sprintf("%s %s(%s)%s", date, colorDim, shift.Label, colorReset)
				}

				fmt.Printf("%-38s %-12s %-7s %s %s %s\n",
					shift.ID,
					date,
					shift.Slot,
					capacityCell(summary.SpotsFor(model.RoleTeamLeader), roster.TeamLeaderSlots, colorGreen, colorRed, colorReset),
					capacityCell(summary.SpotsFor(model.RoleLevel1), roster.Level1Slots, colorGreen, colorRed, colorReset),
					capacityCell(summary.SpotsFor(model.RoleLevel2), roster.Level2Slots, colorGreen, colorRed, colorReset))
			}

			fmt.Println()
			fmt.Println("Legend: open/total per role. Red = full.")
			return nil
		},
	}

	cmd.Flags().Int("weeks", 4, "Number of weeks ahead to list")

	return cmd
}

func capacityCell(open, total int, colorGreen, colorRed, colorReset string) string {
	cell := fmt.Sprintf("%-14s", fmt.Sprintf("%d/%d open", open, total))
	if open == 0 {
		return colorRed + cell + colorReset
	}
	return colorGreen + cell + colorReset
}
