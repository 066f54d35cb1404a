package commands

import (
	"fmt"
	"os"

	"noebook-backend/internal/present"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [YYYY-MM-DD]",
	Short: "Shows every station's slots for a day, defaults to the first bookable date.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		schedule, err := client.GetSchedule(cmd.Context(), date)
		if err != nil {
			return err
		}
		if len(schedule.Slots) == 0 {
			fmt.Fprintln(os.Stdout, present.ScheduleText(schedule))
			return nil
		}
		present.ScheduleTable(os.Stdout, schedule)
		return nil
	},
}
