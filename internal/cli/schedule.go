package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glare-project/glare/internal/schedule"
)

var scheduleCount int

var scheduleCmd = &cobra.Command{
	Use:   "schedule <cron-expression>",
	Short: "Show the next run times of a backup schedule",
	Long: `Show the next run times of a backup schedule.

Accepts the five-field cron syntax backup plans use (minute, hour,
day-of-month, month, day-of-week) with lists, ranges, and steps. When
both day fields are restricted, a time matching either one runs.

Examples:
  glare schedule "0 3 * * *"        # Daily at 03:00
  glare schedule "*/30 * * * *" -n 5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := schedule.Parse(args[0])
		if err != nil {
			exitErr("parse schedule", err)
		}

		runs := make([]time.Time, 0, scheduleCount)
		cursor := time.Now()
		for i := 0; i < scheduleCount; i++ {
			next := s.Next(cursor)
			if next.IsZero() {
				break
			}
			runs = append(runs, next)
			cursor = next
		}

		if jsonOutput {
			outputJSON(runs)
			return
		}

		if len(runs) == 0 {
			fmt.Println("Schedule never fires.")
			return
		}
		for _, run := range runs {
			fmt.Println(run.Format("2006-01-02 15:04 MST"))
		}
	},
}

func init() {
	scheduleCmd.Flags().IntVarP(&scheduleCount, "count", "n", 3, "number of upcoming runs to show")
	rootCmd.AddCommand(scheduleCmd)
}
