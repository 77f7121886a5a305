package cmd

import (
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "rhythmdex",
	Short: "Rhythm trainer",
	Long: `Rhythm trainer. Listen to the count-in, then tap the bar back on the
trigger key and see how close you got.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
