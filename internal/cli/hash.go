package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SkillFence/skillfence/internal/guard"
)

var hashCmd = &cobra.Command{
	Use:   "hash <path>",
	Short: "Print the content hash of a skill directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), guard.ContentHash(args[0]))
		return nil
	},
}
