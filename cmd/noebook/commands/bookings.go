package commands

import (
	"fmt"
	"os"

	"noebook-backend/internal/present"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bookingsCmd)
}

var bookingsCmd = &cobra.Command{
	Use:     "bookings",
	Aliases: []string{"reservations"},
	Short:   "Lists upcoming reservations.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		reservations, err := client.GetMyBookings(cmd.Context())
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			fmt.Fprintln(os.Stdout, present.BookingsText(reservations))
			return nil
		}
		present.BookingsTable(os.Stdout, reservations)
		return nil
	},
}
