package commands

import (
	"fmt"
	"os"

	"noebook-backend/internal/present"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(cancelCmd)
}

var bookCmd = &cobra.Command{
	Use:   "book <station> <YYYY-MM-DD> <time>",
	Short: "Reserves a slot, the station is a name like 'Noe 1' or an id like 140.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.BookSlot(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		text := present.BookingResultText(result)
		if !result.Ok() {
			return fmt.Errorf("%s", text)
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <station> <YYYY-MM-DD> <time>",
	Short: "Cancels one of your reservations.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.CancelBooking(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		text := present.CancelResultText(result)
		if !result.Success {
			return fmt.Errorf("%s", text)
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}
