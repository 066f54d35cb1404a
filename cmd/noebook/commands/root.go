package commands

import (
	"context"
	"fmt"
	"os"

	"noebook-backend/internal/components/restyutil"
	"noebook-backend/internal/components/telemetry"
	"noebook-backend/internal/config"
	"noebook-backend/internal/scrapers/noe"

	"github.com/spf13/cobra"
)

var configPath *string
var verbose *bool
var captureDir *string

var rootCmd = &cobra.Command{
	Use:           "noebook",
	Short:         "noebook is a CLI for viewing and booking stations at the gym.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The json5 config file to read the booking site and credentials from.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logs.")
	captureDir = rootCmd.PersistentFlags().String("capture-http", "", "Write every request and response to this directory (cleared first).")
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// newClient builds a booking client from the --config file and the environment.
func newClient() (*noe.Client, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !*verbose {
		telemetry.InitSlog(true)
	}

	opts, err := cfg.ClientOptions(telemetry.SlogAPI{})
	if err != nil {
		return nil, err
	}
	if *captureDir != "" {
		output, err := restyutil.NewFilesystemOutput(*captureDir)
		if err != nil {
			return nil, err
		}
		opts.Capture = output
	}
	return noe.NewClient(opts)
}
