// Package cli implements the skillfence command-line interface.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/SkillFence/skillfence/internal/cli.version=1.2.3"
	version = "0.4.0"
	logo    = "\n" +
		"  ____  _    _ _ _ _____\n" +
		" / ___|| | _(_) | |  ___|__ _ __   ___ ___\n" +
		" \\___ \\| |/ / | | | |_ / _ \\ '_ \\ / __/ _ \\\n" +
		"  ___) |   <| | | |  _|  __/ | | | (_|  __/\n" +
		" |____/|_|\\_\\_|_|_|_|  \\___|_| |_|\\___\\___|\n"
)

var rootCmd = &cobra.Command{
	Use:   "skillfence",
	Short: "SkillFence - install gate for agent skills",
	Long:  color.CyanString(logo) + "\nA static-analysis security gate for externally sourced agent skills.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(historyCmd)
}
