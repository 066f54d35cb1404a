package commands

import (
	"fmt"
	"os"

	"noebook-backend/internal/present"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(creditsCmd)
}

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Shows the remaining booking credits.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		credits, err := client.GetCredits(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, present.CreditsText(credits))
		return nil
	},
}
