package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionsCmd = &cobra.Command{
	Use:   "completions",
	Short: "Generate PowerShell completions",
	Long: `Generate a PowerShell completion script on stdout. Load it with:

  upv completions | Out-String | Invoke-Expression`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
	},
}
