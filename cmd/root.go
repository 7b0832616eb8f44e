// Package cmd defines the upv command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/upv-tools/upv-cli/common"
	"github.com/upv-tools/upv-cli/config"
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "upv",
	Short: "Manage the UPV VPN and the Disco W network drive",
	Long: `upv manages the UPV university VPN profiles and the "Disco W"
network drive from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load()
		if err != nil {
			common.LogWarn("could not load configuration: %v", err)
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		level := common.LevelInfo
		if verbose || cfg.Verbose {
			level = common.LevelDebug
		}
		if err := common.InitLogger(common.LogConfig{Level: level, EnableFile: true}); err != nil {
			common.LogWarn("file logging disabled: %v", err)
		}
	},
}

// Execute runs the command tree and returns the first error encountered.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(vpnCmd)
	rootCmd.AddCommand(driveCmd)
	rootCmd.AddCommand(completionsCmd)
	rootCmd.AddCommand(versionCmd)
}
