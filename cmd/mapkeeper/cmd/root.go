package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "mapkeeper",
	Short:   "mapkeeper document store administration",
	Long:    `mapkeeper maps domain models to persistence entities declaratively; this CLI manages the schema of the bundled document store.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
