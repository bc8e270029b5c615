package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	date       string
}

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "weekendbets",
		Short:        "Fixture, odds and standings enrichment pipeline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file used beneath environment values")
	root.PersistentFlags().StringVar(&opts.date, "date", "", "Run day (YYYY-MM-DD) the windows are relative to; defaults to today")

	root.AddCommand(runCmd(opts))
	root.AddCommand(stageCmd(opts, "odds", "Extract bookmaker odds for the odds window"))
	root.AddCommand(stageCmd(opts, "fixtures", "Extract fixtures and attach odds for the fixtures window"))
	root.AddCommand(stageCmd(opts, "enrich", "Join standings and compute expected goals for the enrich window"))
	root.AddCommand(scheduleCmd(opts))
	root.AddCommand(syncReferenceCmd(opts))
	return root
}
