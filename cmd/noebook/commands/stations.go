package commands

import (
	"os"

	"noebook-backend/internal/present"
	"noebook-backend/internal/scrapers/noe"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stationsCmd)
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Lists the stations that can be booked.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		present.StationsTable(os.Stdout, noe.Stations())
	},
}
